package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var allStates = []GameState{MainMenu, Loading, Playing, Paused, GameOver, Settings}

func TestCanTransition(t *testing.T) {
	valid := map[GameState][]GameState{
		MainMenu: {Loading, Playing, Settings},
		Loading:  {Playing, MainMenu},
		Playing:  {Paused, GameOver, MainMenu},
		Paused:   {Playing, MainMenu},
		GameOver: {Playing, MainMenu},
		Settings: {MainMenu},
	}
	for _, from := range allStates {
		for _, to := range allStates {
			want := false
			for _, v := range valid[from] {
				want = want || v == to
			}
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestMachineStartsInMainMenu(t *testing.T) {
	m := NewMachine(nil)
	assert.Equal(t, MainMenu, m.Current())
	assert.True(t, m.Is(Settings, MainMenu))
	assert.False(t, m.Is(Playing, Paused))
}

func TestSetRejectsInvalid(t *testing.T) {
	m := NewMachine(zap.NewNop())
	err := m.Set(Paused)
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Contains(t, err.Error(), "main_menu -> paused")
	assert.Equal(t, MainMenu, m.Current())
}

func TestHooks(t *testing.T) {
	m := NewMachine(zap.NewNop())
	var log []string
	m.OnExit(MainMenu, func(from, to GameState) { log = append(log, "exit "+from.String()) })
	m.OnEnter(Playing, func(from, to GameState) {
		log = append(log, "enter "+to.String())
		assert.Equal(t, Playing, m.Current(), "hooks can read the machine")
	})

	require.NoError(t, m.Set(Playing))
	require.NoError(t, m.Set(Playing), "self transition is a no-op")
	assert.Equal(t, []string{"exit main_menu", "enter playing"}, log)
}

func TestGameFlow(t *testing.T) {
	m := NewMachine(zap.NewNop())
	plays := 0
	m.OnEnter(Playing, func(from, to GameState) {
		if from == MainMenu || from == GameOver {
			plays++
		}
	})

	require.NoError(t, m.Set(Playing))
	m.TogglePause()
	assert.Equal(t, Paused, m.Current())
	m.TogglePause()
	assert.Equal(t, Playing, m.Current())
	require.NoError(t, m.Set(GameOver))
	m.TogglePause()
	assert.Equal(t, GameOver, m.Current(), "pause only toggles during play")
	require.NoError(t, m.Set(Playing))

	assert.Equal(t, 2, plays, "resuming from pause is not a new game")
}
