package service

import (
	"context"
	"time"

	"league-tracker/internal/domain"
	"league-tracker/internal/riot"
)

// RiotAPI is the slice of the upstream client the sync needs. Tests
// substitute a fake, production binds *riot.Client.
type RiotAPI interface {
	GetAccount(ctx context.Context, gameName, tagLine string) (*riot.Account, error)
	GetSummoner(ctx context.Context, puuid string) (*riot.Summoner, error)
	GetLeagueEntries(ctx context.Context, puuid string) ([]riot.LeagueEntry, error)
	GetActiveGame(ctx context.Context, puuid string) (*riot.CurrentGameInfo, error)
	GetMatchIDs(ctx context.Context, puuid string, queueID, count int) ([]string, error)
	GetMatch(ctx context.Context, matchID string) (*riot.MatchData, error)
}

type PlayerStore interface {
	Upsert(ctx context.Context, player *domain.Player) error
	GetByPUUID(ctx context.Context, puuid string) (*domain.Player, error)
	GetByRiotID(ctx context.Context, gameName, tagLine string) (*domain.Player, error)
	List(ctx context.Context) ([]domain.Player, error)
	LastUpdatedAt(ctx context.Context) (time.Time, error)
}

type HistoryStore interface {
	Append(ctx context.Context, record domain.RankHistory) error
	ListByPlayer(ctx context.Context, puuid string, limit int) ([]domain.RankHistory, error)
}

type MatchStore interface {
	FilterKnown(ctx context.Context, matchIDs []string) (map[string]bool, error)
	GetMatch(ctx context.Context, matchID string) (*domain.Match, error)
	UpsertBatch(ctx context.Context, matches []domain.Match, participations []domain.PlayerMatch) error
	ListRecentByPlayer(ctx context.Context, puuid string, limit int) ([]domain.PlayerMatch, error)
	Count(ctx context.Context) (int64, error)
}

type MilestoneStore interface {
	Insert(ctx context.Context, milestone domain.Milestone) error
	ListRecent(ctx context.Context, limit int) ([]domain.Milestone, error)
}
