package combat

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionDamage(t *testing.T) {
	s := NewSession(2)

	assert.Equal(t, DamageWounded, s.damage())
	assert.Equal(t, 1, s.Health())
	assert.Equal(t, DamageFatal, s.damage())
	assert.Equal(t, 0, s.Health())
	assert.False(t, s.Alive())
	assert.Equal(t, DamageIgnored, s.damage(), "death happens once per life")
	assert.Equal(t, 0, s.Health(), "health never goes below zero")
}

func TestSessionReset(t *testing.T) {
	s := NewSession(5)
	first := s.RunID()
	s.credit()
	s.credit()
	s.damage()

	s.Reset(10)
	snap := s.Snapshot()
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, 10, snap.Health)
	assert.Equal(t, 10, snap.MaxHealth, "new game health raises the maximum")
	assert.True(t, snap.Alive)
	assert.NotEqual(t, first, snap.RunID, "each run gets a new id")
}

func TestSessionConcurrentDamage(t *testing.T) {
	s := NewSession(10)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		outcomes = map[DamageOutcome]int{}
	)
	for range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o := s.damage()
			mu.Lock()
			outcomes[o]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Equal(t, 0, s.Health())
	assert.Equal(t, 9, outcomes[DamageWounded])
	assert.Equal(t, 1, outcomes[DamageFatal], "exactly one branch sees the terminal case")
	assert.Equal(t, 54, outcomes[DamageIgnored])
}
