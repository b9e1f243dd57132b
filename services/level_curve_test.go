package services

import "testing"

func TestXPThreshold_KnownLevels(t *testing.T) {
	cases := []struct {
		level int
		want  int
	}{
		{0, 0},
		{1, 0},
		{2, 1000},
		{3, 2500},
		{4, 4750},
		{5, 8125},
		{6, 13187}, // 1000*1.5^4 = 5062.5 floors to 5062
	}
	for _, tc := range cases {
		if got := XPThreshold(tc.level); got != tc.want {
			t.Errorf("XPThreshold(%d) = %d, want %d", tc.level, got, tc.want)
		}
	}
}

func TestLevelFromXP_Boundaries(t *testing.T) {
	cases := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{999, 1},
		{1000, 2},
		{2499, 2},
		{2500, 3},
		{4749, 3},
		{4750, 4},
	}
	for _, tc := range cases {
		if got := LevelFromXP(tc.xp); got != tc.want {
			t.Errorf("LevelFromXP(%d) = %d, want %d", tc.xp, got, tc.want)
		}
	}
}

func TestLevelCurve_ThresholdAndLevelAgree(t *testing.T) {
	for level := 2; level <= 20; level++ {
		threshold := XPThreshold(level)
		if got := LevelFromXP(threshold); got != level {
			t.Errorf("LevelFromXP(XPThreshold(%d)) = %d, want %d", level, got, level)
		}
		if got := LevelFromXP(threshold - 1); got != level-1 {
			t.Errorf("LevelFromXP(XPThreshold(%d)-1) = %d, want %d", level, got, level-1)
		}
	}
}

func TestXPThreshold_StrictlyIncreasing(t *testing.T) {
	prev := XPThreshold(1)
	for level := 2; level <= 30; level++ {
		cur := XPThreshold(level)
		if cur <= prev {
			t.Fatalf("XPThreshold(%d) = %d, not greater than XPThreshold(%d) = %d", level, cur, level-1, prev)
		}
		prev = cur
	}
}
