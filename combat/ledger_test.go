package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedgerTryMark(t *testing.T) {
	l := NewLedger()

	assert.False(t, l.Contains(5), "new ledger is empty")
	assert.True(t, l.TryMark(5), "first mark should succeed")
	assert.False(t, l.TryMark(5), "second mark of the same handle should fail")
	assert.True(t, l.Contains(5))
	assert.True(t, l.TryMark(2))
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, []Handle{5, 2}, l.Handles(), "handles keep mark order")
}

func TestLedgerHandlesIsCopy(t *testing.T) {
	l := NewLedger()
	l.TryMark(1)
	hs := l.Handles()
	hs[0] = 42
	assert.Equal(t, []Handle{1}, l.Handles())
}

func TestEffectsApply(t *testing.T) {
	var e Effects
	assert.True(t, e.Empty())
	e.Remove(3)
	e.PlaySound(SoundHit)
	e.Remove(4)

	var sink Effects
	e.Apply(&sink)
	assert.Equal(t, []Handle{3, 4}, sink.Removals)
	assert.Equal(t, []Sound{SoundHit}, sink.Sounds)
	assert.False(t, e.Empty())
}
