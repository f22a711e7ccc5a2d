package combat

// rule is one row of the resolution table. Roles are positional: first is
// the kind in the first slot of the key, second the other.
type rule struct {
	name string

	// damageFirst applies one point of player damage to the first member
	damageFirst bool

	removeFirst  bool
	removeSecond bool

	// kill credits the score and plays the hit sound when the second member
	// is removed by this rule
	kill bool

	// consumes marks the projectile members this rule always destroys.
	// Used when the other member was already removed earlier in the pass.
	consumes [2]bool
}

type pairKey struct {
	first, second Kind
}

var ruleTable = map[pairKey]rule{
	{KindPlayer, KindEnemy}: {
		name:         "player_enemy",
		damageFirst:  true,
		removeSecond: true,
	},
	{KindPlayer, KindEnemyBullet}: {
		name:         "player_enemy_bullet",
		damageFirst:  true,
		removeSecond: true,
		consumes:     [2]bool{false, true},
	},
	{KindPlayerBullet, KindDebris}: {
		name:        "player_bullet_debris",
		removeFirst: true,
		consumes:    [2]bool{true, false},
	},
	{KindEnemyBullet, KindDebris}: {
		name:        "enemy_bullet_debris",
		removeFirst: true,
		consumes:    [2]bool{true, false},
	},
	{KindPlayerBullet, KindEnemy}: {
		name:         "player_bullet_enemy",
		removeFirst:  true,
		removeSecond: true,
		kill:         true,
		consumes:     [2]bool{true, false},
	},
	{KindPlayerBullet, KindEnemyBullet}: {
		name:         "bullet_bullet",
		removeFirst:  true,
		removeSecond: true,
		consumes:     [2]bool{true, true},
	},
}

// lookupRule finds the rule for an unordered kind pair. swapped reports that
// the table key is (b, a), so the caller must swap the handles as well.
func lookupRule(a, b Kind) (r rule, swapped bool, ok bool) {
	if r, ok = ruleTable[pairKey{a, b}]; ok {
		return r, false, true
	}
	if r, ok = ruleTable[pairKey{b, a}]; ok {
		return r, true, true
	}
	return rule{}, false, false
}
