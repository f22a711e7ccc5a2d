package combat

import (
	"sync"

	"github.com/google/uuid"
)

// DamageOutcome describes what one unit of player damage did
type DamageOutcome uint8

const (
	// DamageIgnored means the player was already dead this life
	DamageIgnored DamageOutcome = iota
	// DamageWounded means health dropped by one and stayed positive
	DamageWounded
	// DamageFatal means health reached zero
	DamageFatal
)

// Session holds player health and score for one run.
// Readers may be called from any goroutine. Only the resolver writes.
type Session struct {
	mu        sync.Mutex
	runID     uuid.UUID
	health    int
	maxHealth int
	score     int
	alive     bool
}

// Snapshot is a consistent copy of the session counters
type Snapshot struct {
	RunID     uuid.UUID
	Health    int
	MaxHealth int
	Score     int
	Alive     bool
}

// NewSession starts a run with full health
func NewSession(maxHealth int) *Session {
	if maxHealth < 1 {
		maxHealth = 1
	}
	return &Session{
		runID:     uuid.New(),
		health:    maxHealth,
		maxHealth: maxHealth,
		alive:     true,
	}
}

// Reset starts a new run: score goes to zero and health to the given value.
// A health above the current maximum raises the maximum.
func (s *Session) Reset(health int) {
	if health < 1 {
		health = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runID = uuid.New()
	s.health = health
	s.maxHealth = max(s.maxHealth, health)
	s.score = 0
	s.alive = true
}

func (s *Session) Health() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.health
}

func (s *Session) MaxHealth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxHealth
}

func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

func (s *Session) Alive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alive
}

func (s *Session) RunID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runID
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		RunID:     s.runID,
		Health:    s.health,
		MaxHealth: s.maxHealth,
		Score:     s.score,
		Alive:     s.alive,
	}
}

// damage applies one point of damage. The terminal and non-terminal cases are
// decided under the same lock as the decrement.
func (s *Session) damage() DamageOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.alive {
		return DamageIgnored
	}
	if s.health <= 1 {
		s.health = 0
		s.alive = false
		return DamageFatal
	}
	s.health--
	return DamageWounded
}

// credit adds one confirmed kill
func (s *Session) credit() {
	s.mu.Lock()
	s.score++
	s.mu.Unlock()
}
