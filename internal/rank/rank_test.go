package rank_test

import (
	"testing"

	"league-tracker/internal/rank"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreOrdering(t *testing.T) {
	ordered := []struct {
		name     string
		tier     string
		division string
		lp       int
	}{
		{"iron four zero", "IRON", "IV", 0},
		{"iron four max", "IRON", "IV", 99},
		{"iron three zero", "IRON", "III", 0},
		{"gold four zero", "GOLD", "IV", 0},
		{"gold four high", "GOLD", "IV", 87},
		{"gold three zero", "GOLD", "III", 0},
		{"gold two zero", "GOLD", "II", 0},
		{"gold one zero", "GOLD", "I", 0},
		{"platinum four zero", "PLATINUM", "IV", 0},
		{"diamond one high", "DIAMOND", "I", 99},
		{"master zero", "MASTER", "I", 0},
		{"grandmaster", "GRANDMASTER", "I", 240},
		{"challenger", "CHALLENGER", "I", 1130},
	}

	prev := rank.Unranked
	for _, tc := range ordered {
		score := rank.Score(tc.tier, tc.division, tc.lp)
		assert.Greater(t, score, prev, "%s must outrank the previous step", tc.name)
		prev = score
	}
}

func TestScoreDivisionOutweighsPoints(t *testing.T) {
	lower := rank.Score("GOLD", "IV", 99)
	higher := rank.Score("GOLD", "III", 0)
	assert.Greater(t, higher, lower)
}

func TestScoreTierOutweighsDivision(t *testing.T) {
	lower := rank.Score("GOLD", "I", 99)
	higher := rank.Score("PLATINUM", "IV", 0)
	assert.Greater(t, higher, lower)
}

func TestScoreUnranked(t *testing.T) {
	assert.Equal(t, rank.Unranked, rank.Score("", "", 0))
	assert.Equal(t, rank.Unranked, rank.Score("WOOD", "IV", 50))
	assert.False(t, rank.IsRanked(rank.Unranked))
	assert.True(t, rank.IsRanked(rank.Score("IRON", "IV", 0)))
}

func TestScoreApexDivisionFallback(t *testing.T) {
	// apex entries sometimes omit a usable division, which must not
	// drop them below their own tier
	withDivision := rank.Score("MASTER", "I", 50)
	withoutDivision := rank.Score("MASTER", "", 50)
	assert.Equal(t, withDivision, withoutDivision)
	assert.Greater(t, withoutDivision, rank.Score("DIAMOND", "I", 99))
}

func TestBucket(t *testing.T) {
	assert.Equal(t, -1, rank.Bucket(rank.Unranked))
	assert.Equal(t, 0, rank.Bucket(rank.Score("IRON", "IV", 0)))
	assert.Equal(t, 3, rank.Bucket(rank.Score("GOLD", "II", 40)))
	assert.Equal(t, 3, rank.Bucket(rank.Score("GOLD", "I", 99)))
	assert.Equal(t, 4, rank.Bucket(rank.Score("PLATINUM", "IV", 0)))
	assert.Equal(t, 8, rank.Bucket(rank.Score("CHALLENGER", "I", 900)))
}

func TestBucketStableWithinTier(t *testing.T) {
	gold := rank.Bucket(rank.Score("GOLD", "IV", 0))
	for _, division := range []string{"IV", "III", "II", "I"} {
		for _, lp := range []int{0, 55, 99} {
			require.Equal(t, gold, rank.Bucket(rank.Score("GOLD", division, lp)))
		}
	}
}

func TestTierName(t *testing.T) {
	assert.Equal(t, "UNRANKED", rank.TierName(-1))
	assert.Equal(t, "IRON", rank.TierName(0))
	assert.Equal(t, "GOLD", rank.TierName(3))
	assert.Equal(t, "CHALLENGER", rank.TierName(8))
	assert.Equal(t, "UNRANKED", rank.TierName(9))
}
