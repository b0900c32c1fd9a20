package rank

// Unranked sorts below every ranked score.
const Unranked = -1

const (
	tierScale     = 10_000
	divisionScale = 1_000
)

var tiers = []string{
	"IRON",
	"BRONZE",
	"SILVER",
	"GOLD",
	"PLATINUM",
	"DIAMOND",
	"MASTER",
	"GRANDMASTER",
	"CHALLENGER",
}

var tierIndex = func() map[string]int {
	m := make(map[string]int, len(tiers))
	for i, t := range tiers {
		m[t] = i
	}
	return m
}()

var divisionIndex = map[string]int{
	"IV":  0,
	"III": 1,
	"II":  2,
	"I":   3,
}

// Score collapses a tier/division/points triple into a single ordinal.
// One division step outweighs any point total, one tier step outweighs
// any division/points combination.
func Score(tier, division string, leaguePoints int) int {
	ti, ok := tierIndex[tier]
	if !ok {
		return Unranked
	}
	di, ok := divisionIndex[division]
	if !ok {
		// apex tiers carry no real division, treat as the top one
		di = len(divisionIndex) - 1
	}
	return ti*tierScale + di*divisionScale + leaguePoints
}

func IsRanked(score int) bool {
	return score >= 0
}

// Bucket maps a score to its tier level. The unranked sentinel keeps its
// own bucket below IRON; plain integer division would round it up to 0.
func Bucket(score int) int {
	if score < 0 {
		return -1
	}
	return score / tierScale
}

func TierName(bucket int) string {
	if bucket < 0 || bucket >= len(tiers) {
		return "UNRANKED"
	}
	return tiers[bucket]
}
