package service

import (
	"league-tracker/internal/domain"
	"league-tracker/internal/rank"
)

// fetchPlan decides which upstream calls one roster entry needs this
// cycle, based on what is already persisted for it.
type fetchPlan struct {
	entry domain.RosterEntry
	prior *domain.Player
}

func planFetch(entry domain.RosterEntry, prior *domain.Player) fetchPlan {
	return fetchPlan{entry: entry, prior: prior}
}

// needsIdentity is true only until the puuid has been resolved once.
func (p fetchPlan) needsIdentity() bool {
	return p.prior == nil
}

// priorScore returns the pre-cycle score, ok=false when the player has
// never been observed.
func (p fetchPlan) priorScore() (int, bool) {
	if p.prior == nil {
		return 0, false
	}
	return rank.Score(p.prior.Tier, p.prior.Division, p.prior.LeaguePoints), true
}

// needsMatchList gates match listing on the win/loss counters. Only a
// strict increase can mean new ranked games, so equal counters skip
// the listing call entirely.
func (p fetchPlan) needsMatchList(wins, losses int) bool {
	var prevWins, prevLosses int
	if p.prior != nil {
		prevWins, prevLosses = p.prior.Wins, p.prior.Losses
	}
	return wins+losses > prevWins+prevLosses
}
