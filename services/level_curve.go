package services

import "math"

const (
	// baseXP is the cost of going from level 1 to level 2. Every further
	// level costs 1.5x the previous level's increment, floored per level.
	baseXP          = 1000
	levelMultiplier = 1.5
)

// XPThreshold returns the cumulative XP required to reach level. Level 1 (and
// below) requires 0. The per-level increments are floored individually, so
// the thresholds are not a closed-form geometric sum and must be accumulated
// iteratively.
func XPThreshold(level int) int {
	if level <= 1 {
		return 0
	}
	total := 0
	for i := 2; i <= level; i++ {
		total += int(math.Floor(baseXP * math.Pow(levelMultiplier, float64(i-2))))
	}
	return total
}

// LevelFromXP returns the largest level >= 1 whose threshold is within xp.
func LevelFromXP(xp int) int {
	level := 1
	for xp >= XPThreshold(level+1) {
		level++
	}
	return level
}
