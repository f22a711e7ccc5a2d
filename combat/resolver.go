package combat

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Report summarizes one resolution pass
type Report struct {
	Effects Effects

	Events   int // events delivered
	Began    int // began events considered
	Resolved int // events that matched a rule and applied effects
	Skipped  int // began events dropped because a member was already removed
	Consumed int // survivors removed under AttackerConsume
	Kills    int
	Damage   int // damage points that changed health

	PlayerDied bool
}

// Option configures a Resolver
type Option func(*Resolver)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithAttackerPolicy sets how second attackers on a removed target are handled
func WithAttackerPolicy(p AttackerPolicy) Option {
	return func(r *Resolver) {
		r.policy = p
	}
}

// WithPhaseHook registers a callback observing every frame phase transition.
// It runs with the resolver lock held and must not call back into the resolver.
func WithPhaseHook(fn func(from, to FramePhase)) Option {
	return func(r *Resolver) {
		r.phaseHook = fn
	}
}

// Resolver applies the collision rules to a frame's overlap events.
// Passes are serialized; each pass runs single-threaded over its batch.
type Resolver struct {
	mu        sync.Mutex
	session   *Session
	policy    AttackerPolicy
	logger    *zap.Logger
	phase     atomic.Uint32
	phaseHook func(from, to FramePhase)
}

// NewResolver creates a resolver that writes into session
func NewResolver(session *Session, opts ...Option) *Resolver {
	r := &Resolver{
		session: session,
		policy:  AttackerConsume,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Phase returns the current frame phase
func (r *Resolver) Phase() FramePhase {
	return FramePhase(r.phase.Load())
}

// Policy returns the configured attacker policy
func (r *Resolver) Policy() AttackerPolicy {
	return r.policy
}

// Session returns the session this resolver writes to
func (r *Resolver) Session() *Session {
	return r.session
}

func (r *Resolver) setPhase(to FramePhase) {
	from := FramePhase(r.phase.Swap(uint32(to)))
	if r.phaseHook != nil {
		r.phaseHook(from, to)
	}
}

// pass is the state owned by a single call to ResolveFrame
type pass struct {
	r       *Resolver
	cls     Classifier
	ledger  *Ledger
	kinds   map[Handle]Kind
	effects Effects
	report  Report
}

func (p *pass) classify(h Handle) Kind {
	if k, ok := p.kinds[h]; ok {
		return k
	}
	k := KindUnknown
	if p.cls != nil {
		k = p.cls.Classify(h)
	}
	p.kinds[h] = k
	return k
}

// remove marks h and queues its removal. It returns false when h was
// already removed earlier in this pass.
func (p *pass) remove(h Handle) bool {
	if !p.ledger.TryMark(h) {
		return false
	}
	p.effects.Remove(h)
	return true
}

// ResolveFrame drains one frame's batch of events in delivery order and
// returns the commands to apply. Only began events are resolved.
func (r *Resolver) ResolveFrame(events []OverlapEvent, cls Classifier) Report {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.setPhase(FrameDraining)
	p := &pass{
		r:      r,
		cls:    cls,
		ledger: NewLedger(),
		kinds:  make(map[Handle]Kind, len(events)*2),
	}
	p.report.Events = len(events)

	for _, ev := range events {
		if ev.Phase != ContactBegan || ev.A == ev.B {
			continue
		}
		p.report.Began++
		p.resolve(ev.A, ev.B)
	}

	r.setPhase(FrameCommitted)
	p.report.Effects = p.effects
	report := p.report
	p.ledger = nil

	if report.Resolved > 0 || report.Consumed > 0 {
		r.logger.Debug("collision pass",
			zap.Int("events", report.Events),
			zap.Int("resolved", report.Resolved),
			zap.Int("skipped", report.Skipped),
			zap.Int("consumed", report.Consumed),
			zap.Int("kills", report.Kills),
			zap.Int("damage", report.Damage),
			zap.Int("removals", len(report.Effects.Removals)),
		)
	}
	if report.PlayerDied {
		snap := r.session.Snapshot()
		r.logger.Info("player destroyed",
			zap.String("run", snap.RunID.String()),
			zap.Int("score", snap.Score),
		)
	}

	r.setPhase(FrameIdle)
	return report
}

func (p *pass) resolve(a, b Handle) {
	markedA, markedB := p.ledger.Contains(a), p.ledger.Contains(b)
	if markedA || markedB {
		p.report.Skipped++
		if !markedA || !markedB {
			p.consumeSurvivor(a, b, markedA)
		}
		return
	}

	ka, kb := p.classify(a), p.classify(b)
	rl, swapped, ok := lookupRule(ka, kb)
	if !ok {
		return
	}
	first, second := a, b
	if swapped {
		first, second = b, a
	}

	p.report.Resolved++
	if rl.damageFirst {
		p.damagePlayer(first)
	}
	if rl.removeSecond && p.remove(second) && rl.kill {
		p.r.session.credit()
		p.effects.PlaySound(SoundHit)
		p.report.Kills++
	}
	if rl.removeFirst {
		p.remove(first)
	}
}

// consumeSurvivor applies AttackerConsume to a pair with exactly one member
// already removed
func (p *pass) consumeSurvivor(a, b Handle, aGone bool) {
	if p.r.policy != AttackerConsume {
		return
	}
	rl, swapped, ok := lookupRule(p.classify(a), p.classify(b))
	if !ok {
		return
	}
	survivor, survivorIsB := a, false
	if aGone {
		survivor, survivorIsB = b, true
	}
	// position of the survivor in rule orientation
	idx := 0
	if survivorIsB != swapped {
		idx = 1
	}
	if rl.consumes[idx] && p.remove(survivor) {
		p.report.Consumed++
	}
}

// damagePlayer is the only path that changes player health
func (p *pass) damagePlayer(player Handle) {
	if p.ledger.Contains(player) {
		return
	}
	switch p.r.session.damage() {
	case DamageFatal:
		p.report.Damage++
		p.report.PlayerDied = true
		p.effects.PlaySound(SoundDeath)
		p.remove(player)
	case DamageWounded:
		p.report.Damage++
		p.effects.PlaySound(SoundHit)
	}
}
