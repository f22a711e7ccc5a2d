package world

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
	"github.com/yohamta/donburi/query"
	"go.uber.org/zap"

	"spaceshooter/combat"
	"spaceshooter/config"
)

// boundsPadding extends detector coverage past the playfield so objects
// entering from the edges are still tested before cleanup reaps them
const boundsPadding = 256.0

// ErrInvalidStep is returned by Step for a negative or non-finite dt
var ErrInvalidStep = errors.New("invalid step")

// SoundPlayer plays sound effects queued by the simulation
type SoundPlayer interface {
	Play(s combat.Sound)
}

// StepReport summarizes one simulation step
type StepReport struct {
	Resolution combat.Report

	Spawned  int
	Cleaned  int
	Contacts int

	PlayerDied bool
}

// Option configures a World
type Option func(*World)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(w *World) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithSoundPlayer routes sound effects to p
func WithSoundPlayer(p SoundPlayer) Option {
	return func(w *World) {
		w.sounds = p
	}
}

// WithDetector overrides the detector chosen by config
func WithDetector(d Detector) Option {
	return func(w *World) {
		w.detector = d
	}
}

// WithSeed overrides the config seed
func WithSeed(seed uint64) Option {
	return func(w *World) {
		w.rng = NewRand(seed)
	}
}

// World owns every live object of a run and advances the simulation
type World struct {
	cfg    config.Config
	logger *zap.Logger

	ecs      donburi.World
	index    *combat.KindIndex
	session  *combat.Session
	resolver *combat.Resolver
	detector Detector
	contacts *ContactTracker
	sounds   SoundPlayer
	rng      *rand.Rand

	player    donburi.Entity
	hasPlayer bool

	fireTimer   Timer
	enemyTimer  Timer
	volleyTimer Timer
	debrisTimer Timer
}

// New creates a world for cfg writing health and score into session
func New(cfg config.Config, session *combat.Session, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	policy, ok := combat.ParseAttackerPolicy(cfg.Collision.AttackerPolicy)
	if !ok {
		return nil, fmt.Errorf("%w: attacker policy %q", config.ErrInvalidConfig, cfg.Collision.AttackerPolicy)
	}

	w := &World{
		cfg:      cfg,
		logger:   zap.NewNop(),
		index:    combat.NewKindIndex(),
		session:  session,
		contacts: NewContactTracker(),
		rng:      NewRand(SeedFrom(cfg.Seed)),
	}
	for _, opt := range opts {
		opt(w)
	}

	if w.detector == nil {
		bounds := w.DetectorBounds()
		switch cfg.Collision.Detector {
		case "grid":
			w.detector = NewGridDetector(bounds, cfg.Collision.CellSize, cfg.Collision.Workers)
		default:
			w.detector = NewSpaceDetector(bounds, cfg.Collision.CellSize)
		}
	}

	w.resolver = combat.NewResolver(session,
		combat.WithLogger(w.logger.Named("combat")),
		combat.WithAttackerPolicy(policy),
	)
	w.clear()
	return w, nil
}

// DetectorBounds is the playfield padded on every side
func (w *World) DetectorBounds() Bounds {
	hw, hh := w.cfg.Playfield.HalfWidth(), w.cfg.Playfield.HalfHeight()
	return Bounds{
		MinX: -hw - boundsPadding,
		MinY: -hh - boundsPadding,
		MaxX: hw + boundsPadding,
		MaxY: hh + boundsPadding,
	}
}

func (w *World) clear() {
	w.ecs = donburi.NewWorld()
	w.index.Reset()
	w.contacts.Reset()
	w.hasPlayer = false
	w.fireTimer = NewTimer(w.cfg.Player.FireInterval)
	w.enemyTimer = NewTimer(w.cfg.Enemy.SpawnInterval)
	w.volleyTimer = NewTimer(w.cfg.Enemy.VolleyInterval)
	w.debrisTimer = NewTimer(w.cfg.Debris.SpawnInterval)
}

// Reset discards every object, starts a new run with the given health and
// spawns the player
func (w *World) Reset(health int) {
	w.clear()
	w.session.Reset(health)
	w.spawnPlayer()
	w.logger.Info("new run",
		zap.String("run", w.session.RunID().String()),
		zap.Int("health", health),
	)
}

// Session returns the run's health and score
func (w *World) Session() *combat.Session { return w.session }

// Resolver returns the collision resolver
func (w *World) Resolver() *combat.Resolver { return w.resolver }

// Config returns the configuration the world was built with
func (w *World) Config() config.Config { return w.cfg }

// Index returns the handle to kind table
func (w *World) Index() *combat.KindIndex { return w.index }

// Tags returns a tag oracle reading the entity store directly
func (w *World) Tags() ECSTags { return ECSTags{ECS: w.ecs} }

// Classifier returns the classifier selected by config
func (w *World) Classifier() combat.Classifier {
	if w.cfg.Collision.Classifier == "tags" {
		return combat.TagClassifier{Tags: w.Tags()}
	}
	return w.index
}

// HasPlayer reports whether the player ship is alive in the world
func (w *World) HasPlayer() bool { return w.hasPlayer }

// PlayerPosition returns the player's position if it exists
func (w *World) PlayerPosition() (x, y float64, ok bool) {
	if !w.hasPlayer || !w.ecs.Valid(w.player) {
		return 0, 0, false
	}
	t := TransformComponent.Get(w.ecs.Entry(w.player))
	return t.X, t.Y, true
}

// spawn creates an entity of the given kind and records it in the index
func (w *World) spawn(kind combat.Kind, t Transform, v Velocity, b Body) donburi.Entity {
	if t.Scale == 0 {
		t.Scale = 1
	}
	e := w.ecs.Create(TransformComponent, VelocityComponent, BodyComponent, tagFor(kind))
	entry := w.ecs.Entry(e)
	TransformComponent.SetValue(entry, t)
	VelocityComponent.SetValue(entry, v)
	BodyComponent.SetValue(entry, b)
	w.index.Track(handleOf(e), kind)
	return e
}

// Remove despawns h. Removing an unknown or already removed handle does nothing.
func (w *World) Remove(h combat.Handle) {
	e := entityOf(h)
	w.index.Forget(h)
	w.contacts.Forget(h)
	if w.hasPlayer && e == w.player {
		w.hasPlayer = false
	}
	if !w.ecs.Valid(e) {
		return
	}
	w.ecs.Remove(e)
}

// PlaySound forwards a sound effect to the player, if any
func (w *World) PlaySound(s combat.Sound) {
	if w.sounds != nil {
		w.sounds.Play(s)
	}
}

var _ combat.CommandSink = (*World)(nil)

// Objects returns a view of every live object sorted by handle
func (w *World) Objects() []Object {
	objects := make([]Object, 0, w.ecs.Len())
	query.NewQuery(filter.Contains(TransformComponent, BodyComponent)).Each(w.ecs, func(entry *donburi.Entry) {
		h := handleOf(entry.Entity())
		objects = append(objects, Object{
			Handle:    h,
			Kind:      w.index.Classify(h),
			Transform: *TransformComponent.Get(entry),
			Body:      *BodyComponent.Get(entry),
		})
	})
	slices.SortFunc(objects, func(a, b Object) int {
		switch {
		case a.Handle < b.Handle:
			return -1
		case a.Handle > b.Handle:
			return 1
		default:
			return 0
		}
	})
	return objects
}

// Count returns the number of live objects of kind k
func (w *World) Count(k combat.Kind) int {
	return w.index.Count(k)
}

// Step advances the simulation by dt seconds: spawn, move, detect overlaps,
// resolve them, apply the resulting commands and reap off-field objects
func (w *World) Step(ctx context.Context, dt float64, controls Controls) (StepReport, error) {
	var rep StepReport
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return rep, fmt.Errorf("%w: dt %v", ErrInvalidStep, dt)
	}

	before := w.index.Len()
	w.steerPlayer(controls)
	if w.fireTimer.Tick(dt) && controls != nil && controls.Firing() {
		w.firePlayerBullet()
	}
	if w.enemyTimer.Tick(dt) {
		w.spawnEnemyWave()
	}
	if w.volleyTimer.Tick(dt) {
		w.enemyVolley()
	}
	if w.debrisTimer.Tick(dt) {
		w.spawnDebris()
	}
	rep.Spawned = w.index.Len() - before

	w.integrate(dt)

	pairs, err := w.detector.Detect(ctx, w.Objects())
	if err != nil {
		return rep, fmt.Errorf("step: %w", err)
	}
	events := w.contacts.Update(pairs)
	rep.Contacts = w.contacts.Active()

	rep.Resolution = w.resolver.ResolveFrame(events, w.Classifier())
	rep.Resolution.Effects.Apply(w)
	rep.PlayerDied = rep.Resolution.PlayerDied

	rep.Cleaned = w.cleanup()
	return rep, nil
}
