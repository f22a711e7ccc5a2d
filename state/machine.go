package state

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"
)

// ErrInvalidTransition is returned by Set for moves the game flow forbids
var ErrInvalidTransition = errors.New("invalid state transition")

// GameState is a top-level screen of the game
type GameState uint8

const (
	MainMenu GameState = iota
	Loading
	Playing
	Paused
	GameOver
	Settings
)

func (s GameState) String() string {
	switch s {
	case MainMenu:
		return "main_menu"
	case Loading:
		return "loading"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case GameOver:
		return "game_over"
	case Settings:
		return "settings"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

var validTransitions = map[GameState][]GameState{
	MainMenu: {Loading, Playing, Settings},
	Loading:  {Playing, MainMenu},
	Playing:  {Paused, GameOver, MainMenu},
	Paused:   {Playing, MainMenu},
	GameOver: {Playing, MainMenu},
	Settings: {MainMenu},
}

// CanTransition reports whether from may move to to
func CanTransition(from, to GameState) bool {
	return slices.Contains(validTransitions[from], to)
}

// Hook runs on a transition. from and to are the states either side of it.
type Hook func(from, to GameState)

// Machine holds the current game state and runs enter and exit hooks
type Machine struct {
	mu      sync.Mutex
	current GameState
	onEnter map[GameState][]Hook
	onExit  map[GameState][]Hook
	logger  *zap.Logger
}

// NewMachine starts in MainMenu
func NewMachine(logger *zap.Logger) *Machine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Machine{
		current: MainMenu,
		onEnter: make(map[GameState][]Hook),
		onExit:  make(map[GameState][]Hook),
		logger:  logger,
	}
}

// Current returns the active state
func (m *Machine) Current() GameState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Is reports whether the active state is any of states
func (m *Machine) Is(states ...GameState) bool {
	return slices.Contains(states, m.Current())
}

// OnEnter registers a hook run after entering s
func (m *Machine) OnEnter(s GameState, h Hook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onEnter[s] = append(m.onEnter[s], h)
}

// OnExit registers a hook run before leaving s
func (m *Machine) OnExit(s GameState, h Hook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onExit[s] = append(m.onExit[s], h)
}

// Set moves to next. Setting the current state is a no-op. Hooks run
// without the lock held so they may read the machine.
func (m *Machine) Set(next GameState) error {
	m.mu.Lock()
	from := m.current
	if from == next {
		m.mu.Unlock()
		return nil
	}
	if !CanTransition(from, next) {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, next)
	}
	exits := slices.Clone(m.onExit[from])
	enters := slices.Clone(m.onEnter[next])
	m.current = next
	m.mu.Unlock()

	for _, h := range exits {
		h(from, next)
	}
	for _, h := range enters {
		h(from, next)
	}
	m.logger.Debug("state changed", zap.Stringer("from", from), zap.Stringer("to", next))
	return nil
}

// TogglePause switches between Playing and Paused and ignores every other state
func (m *Machine) TogglePause() {
	switch m.Current() {
	case Playing:
		_ = m.Set(Paused)
	case Paused:
		_ = m.Set(Playing)
	}
}
