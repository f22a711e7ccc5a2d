package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type tagSet map[Handle][]Kind

func (t tagSet) HasTag(h Handle, k Kind) bool {
	for _, tag := range t[h] {
		if tag == k {
			return true
		}
	}
	return false
}

func TestClassifyPrecedence(t *testing.T) {
	tags := tagSet{
		1: {KindDebris, KindPlayer},
		2: {KindEnemyBullet, KindEnemy},
		3: {KindDebris, KindEnemyBullet, KindPlayerBullet},
		4: {KindDebris},
		5: {},
	}

	assert.Equal(t, KindPlayer, Classify(1, tags), "player outranks debris")
	assert.Equal(t, KindEnemy, Classify(2, tags), "enemy outranks enemy bullet")
	assert.Equal(t, KindPlayerBullet, Classify(3, tags), "player bullet outranks enemy bullet")
	assert.Equal(t, KindDebris, Classify(4, tags))
	assert.Equal(t, KindUnknown, Classify(5, tags), "untagged object is unknown")
	assert.Equal(t, KindUnknown, Classify(99, tags), "stale handle is unknown")
	assert.Equal(t, KindUnknown, Classify(1, nil), "nil oracle is unknown")
}

func TestTagClassifier(t *testing.T) {
	c := TagClassifier{Tags: tagSet{7: {KindEnemy}}}
	assert.Equal(t, KindEnemy, c.Classify(7))
	assert.Equal(t, KindUnknown, c.Classify(8))
}

func TestKindIndex(t *testing.T) {
	idx := NewKindIndex()
	idx.Track(1, KindPlayer)
	idx.Track(2, KindEnemy)
	idx.Track(3, KindEnemy)
	idx.Track(4, KindUnknown)

	assert.Equal(t, 3, idx.Len(), "unknown objects are not stored")
	assert.Equal(t, 2, idx.Count(KindEnemy))
	assert.Equal(t, KindPlayer, idx.Classify(1))
	assert.True(t, idx.HasTag(2, KindEnemy))
	assert.False(t, idx.HasTag(2, KindPlayer))
	assert.False(t, idx.HasTag(4, KindUnknown))

	idx.Forget(2)
	assert.Equal(t, KindUnknown, idx.Classify(2), "forgotten handle is stale")
	assert.Equal(t, KindUnknown, Classify(2, idx), "index also works as an oracle")

	idx.Reset()
	assert.Equal(t, 0, idx.Len())
}

func TestKindFaction(t *testing.T) {
	assert.Equal(t, FactionPlayer, KindPlayerBullet.Faction())
	assert.Equal(t, FactionEnemy, KindEnemyBullet.Faction())
	assert.Equal(t, FactionNeutral, KindDebris.Faction())
	assert.True(t, KindEnemyBullet.IsProjectile())
	assert.False(t, KindEnemy.IsProjectile())
}
