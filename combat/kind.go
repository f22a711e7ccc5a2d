package combat

import "sync"

// Handle identifies a live game object for the current frame only.
// The engine may reuse a handle once its removal has been committed.
type Handle uint64

// Kind is the semantic classification of an object for collision rules
type Kind uint8

const (
	KindUnknown Kind = iota
	KindPlayer
	KindEnemy
	KindPlayerBullet
	KindEnemyBullet
	KindDebris
)

// classifyOrder is the fixed precedence used when an object carries several tags
var classifyOrder = [...]Kind{
	KindPlayer,
	KindEnemy,
	KindPlayerBullet,
	KindEnemyBullet,
	KindDebris,
}

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindPlayerBullet:
		return "player_bullet"
	case KindEnemyBullet:
		return "enemy_bullet"
	case KindDebris:
		return "debris"
	default:
		return "unknown"
	}
}

// Faction returns which side a kind fights for
func (k Kind) Faction() Faction {
	switch k {
	case KindPlayer, KindPlayerBullet:
		return FactionPlayer
	case KindEnemy, KindEnemyBullet:
		return FactionEnemy
	default:
		return FactionNeutral
	}
}

// IsProjectile reports whether the kind is a bullet of either faction
func (k Kind) IsProjectile() bool {
	return k == KindPlayerBullet || k == KindEnemyBullet
}

// Faction represents which side an object belongs to
type Faction uint8

const (
	FactionNeutral Faction = iota
	FactionPlayer
	FactionEnemy
)

// TagOracle answers whether a handle currently carries the tag for a kind.
// It must answer false for handles the engine no longer knows about.
type TagOracle interface {
	HasTag(h Handle, k Kind) bool
}

// Classify returns the first kind in precedence order whose tag h carries.
// Stale or untagged handles classify as KindUnknown.
func Classify(h Handle, tags TagOracle) Kind {
	if tags == nil {
		return KindUnknown
	}
	for _, k := range classifyOrder {
		if tags.HasTag(h, k) {
			return k
		}
	}
	return KindUnknown
}

// Classifier maps a handle to its kind
type Classifier interface {
	Classify(h Handle) Kind
}

// TagClassifier classifies through a tag oracle with fixed precedence
type TagClassifier struct {
	Tags TagOracle
}

func (c TagClassifier) Classify(h Handle) Kind {
	return Classify(h, c.Tags)
}

// KindIndex is a handle to kind table kept current at spawn and despawn time.
// It is safe for concurrent readers.
type KindIndex struct {
	mu    sync.RWMutex
	kinds map[Handle]Kind
}

// NewKindIndex creates an empty index
func NewKindIndex() *KindIndex {
	return &KindIndex{kinds: make(map[Handle]Kind, 256)}
}

// Track records the kind of a newly spawned object.
// KindUnknown objects are not stored; they classify as unknown anyway.
func (x *KindIndex) Track(h Handle, k Kind) {
	if k == KindUnknown {
		return
	}
	x.mu.Lock()
	x.kinds[h] = k
	x.mu.Unlock()
}

// Forget drops a despawned object
func (x *KindIndex) Forget(h Handle) {
	x.mu.Lock()
	delete(x.kinds, h)
	x.mu.Unlock()
}

// Classify is a single table lookup
func (x *KindIndex) Classify(h Handle) Kind {
	x.mu.RLock()
	k := x.kinds[h]
	x.mu.RUnlock()
	return k
}

// HasTag lets the index stand in wherever a TagOracle is expected
func (x *KindIndex) HasTag(h Handle, k Kind) bool {
	return k != KindUnknown && x.Classify(h) == k
}

// Len returns the number of tracked objects
func (x *KindIndex) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.kinds)
}

// Count returns how many tracked objects have kind k
func (x *KindIndex) Count(k Kind) int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	n := 0
	for _, kind := range x.kinds {
		if kind == k {
			n++
		}
	}
	return n
}

// Reset forgets every object
func (x *KindIndex) Reset() {
	x.mu.Lock()
	clear(x.kinds)
	x.mu.Unlock()
}
