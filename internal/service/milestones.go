package service

import (
	"sort"
	"time"

	"league-tracker/internal/domain"
	"league-tracker/internal/rank"
)

// detectTransition reports a tier change for one player, nil when the
// player stayed inside the same tier bucket. LP swings within a tier
// are never an event.
func detectTransition(puuid string, pre, post int, now time.Time) *domain.Milestone {
	preBucket := rank.Bucket(pre)
	postBucket := rank.Bucket(post)

	switch {
	case postBucket > preBucket && rank.IsRanked(post):
		return &domain.Milestone{
			Kind:       domain.MilestonePromoted,
			PUUID:      puuid,
			FromTier:   rank.TierName(preBucket),
			ToTier:     rank.TierName(postBucket),
			OccurredAt: now,
		}
	case postBucket < preBucket && rank.IsRanked(pre):
		return &domain.Milestone{
			Kind:       domain.MilestoneDemoted,
			PUUID:      puuid,
			FromTier:   rank.TierName(preBucket),
			ToTier:     rank.TierName(postBucket),
			OccurredAt: now,
		}
	}
	return nil
}

// detectOvertakes scans every ordered pair of players over the scores
// captured before the cycle touched anything and the scores after it
// finished. Players first seen this cycle have no pre-cycle score and
// sit out the pairing. Quadratic over a roster of tens.
func detectOvertakes(pre, post map[string]int, now time.Time) []domain.Milestone {
	puuids := make([]string, 0, len(pre))
	for puuid := range pre {
		puuids = append(puuids, puuid)
	}
	sort.Strings(puuids)

	var events []domain.Milestone
	for _, actor := range puuids {
		for _, target := range puuids {
			if actor == target {
				continue
			}
			if pre[actor] <= pre[target] && post[actor] > post[target] && rank.IsRanked(post[actor]) {
				events = append(events, domain.Milestone{
					Kind:        domain.MilestoneSurpassed,
					PUUID:       actor,
					TargetPUUID: target,
					ActorScore:  post[actor],
					TargetScore: post[target],
					OccurredAt:  now,
				})
			}
		}
	}
	return events
}
