package service

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"league-tracker/internal/config"
	"league-tracker/internal/constants"
	"league-tracker/internal/domain"
	"league-tracker/internal/rank"

	"github.com/rs/zerolog"
)

// SnapshotService serves reads from persisted state only. It never
// touches the upstream and never takes the sync lock, so a slow cycle
// cannot block a reader.
type SnapshotService struct {
	cfg        *config.Config
	players    PlayerStore
	history    HistoryStore
	matches    MatchStore
	milestones MilestoneStore
	logger     zerolog.Logger
}

func NewSnapshotService(
	cfg *config.Config,
	players PlayerStore,
	history HistoryStore,
	matches MatchStore,
	milestones MilestoneStore,
	logger zerolog.Logger,
) *SnapshotService {
	return &SnapshotService{
		cfg:        cfg,
		players:    players,
		history:    history,
		matches:    matches,
		milestones: milestones,
		logger:     logger,
	}
}

func (s *SnapshotService) Leaderboard(ctx context.Context) (*domain.Leaderboard, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	players, err := s.players.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(s.cfg.Roster))
	resolved := make(map[string]bool, len(players))
	var lastUpdated time.Time

	for i := range players {
		player := players[i]
		resolved[strings.ToLower(player.RiotID())] = true
		if player.LastUpdatedAt.After(lastUpdated) {
			lastUpdated = player.LastUpdatedAt
		}

		recent, err := s.matches.ListRecentByPlayer(ctx, player.PUUID, s.cfg.MatchCount)
		if err != nil {
			return nil, fmt.Errorf("failed to list matches for %s: %w", player.PUUID, err)
		}
		// stored newest first, shown oldest first
		slices.Reverse(recent)

		entries = append(entries, domain.LeaderboardEntry{
			PUUID:         player.PUUID,
			GameName:      player.GameName,
			TagLine:       player.TagLine,
			ProfileIconID: player.ProfileIconID,
			SummonerLevel: player.SummonerLevel,
			Tier:          player.Tier,
			Division:      player.Division,
			LeaguePoints:  player.LeaguePoints,
			Wins:          player.Wins,
			Losses:        player.Losses,
			Score:         rank.Score(player.Tier, player.Division, player.LeaguePoints),
			InGame:        player.InGame,
			RecentMatches: recent,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return strings.ToLower(entries[i].GameName+"#"+entries[i].TagLine) <
			strings.ToLower(entries[j].GameName+"#"+entries[j].TagLine)
	})

	// roster entries that never resolved still get a row, below the board
	for _, entry := range s.cfg.Roster {
		if resolved[strings.ToLower(entry.RiotID())] {
			continue
		}
		entries = append(entries, domain.LeaderboardEntry{
			GameName:   entry.GameName,
			TagLine:    entry.TagLine,
			Score:      rank.Unranked,
			Unresolved: true,
		})
	}

	return &domain.Leaderboard{Entries: entries, LastUpdatedAt: lastUpdated}, nil
}

// PlayerHistory returns the stored player and its rank change log,
// oldest first. A nil player means the riot id is unknown.
func (s *SnapshotService) PlayerHistory(ctx context.Context, gameName, tagLine string, limit int) (*domain.Player, []domain.RankHistory, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	player, err := s.players.GetByRiotID(ctx, gameName, tagLine)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up player: %w", err)
	}
	if player == nil {
		return nil, nil, nil
	}

	records, err := s.history.ListByPlayer(ctx, player.PUUID, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list rank history: %w", err)
	}
	slices.Reverse(records)

	return player, records, nil
}

func (s *SnapshotService) Milestones(ctx context.Context, limit int) ([]domain.Milestone, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.milestones.ListRecent(ctx, limit)
}
