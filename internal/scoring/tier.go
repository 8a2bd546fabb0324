package scoring

// Tier is the coarse routing bucket derived from a lead's total score.
type Tier string

const (
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
	TierD Tier = "D"
)

// DetermineTier maps a total score to its tier. Brackets are inclusive on
// the lower bound; every integer maps to exactly one tier.
func DetermineTier(score int) Tier {
	switch {
	case score >= 80:
		return TierA
	case score >= 60:
		return TierB
	case score >= 40:
		return TierC
	default:
		return TierD
	}
}
