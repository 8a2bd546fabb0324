package scoring

import "testing"

func TestDetermineTierBoundaries(t *testing.T) {
	cases := []struct {
		score int
		want  Tier
	}{
		{0, TierD},
		{39, TierD},
		{40, TierC},
		{59, TierC},
		{60, TierB},
		{79, TierB},
		{80, TierA},
		{100, TierA},
	}
	for _, tc := range cases {
		if got := DetermineTier(tc.score); got != tc.want {
			t.Errorf("DetermineTier(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestDetermineTierCoversAllScores(t *testing.T) {
	valid := map[Tier]bool{TierA: true, TierB: true, TierC: true, TierD: true}
	for s := 0; s <= 100; s++ {
		if !valid[DetermineTier(s)] {
			t.Fatalf("DetermineTier(%d) returned an unexpected tier", s)
		}
	}
}
