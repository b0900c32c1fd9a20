package repository

import (
	"context"
	"database/sql"
	"fmt"

	"league-tracker/internal/db"
	"league-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type HistoryRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewHistoryRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *HistoryRepository {
	return &HistoryRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *HistoryRepository) Append(ctx context.Context, record domain.RankHistory) error {
	id := record.ID
	if id == "" {
		var err error
		id, err = gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate nanoid: %w", err)
		}
	}

	err := r.queries.InsertRankHistory(ctx, db.InsertRankHistoryParams{
		ID:           id,
		Puuid:        record.PUUID,
		Tier:         nullString(record.Tier),
		Division:     nullString(record.Division),
		LeaguePoints: int64(record.LeaguePoints),
		Wins:         int64(record.Wins),
		Losses:       int64(record.Losses),
		Score:        int64(record.Score),
		RecordedAt:   record.RecordedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to insert rank history: %w", err)
	}
	return nil
}

func (r *HistoryRepository) ListByPlayer(ctx context.Context, puuid string, limit int) ([]domain.RankHistory, error) {
	rows, err := r.queries.ListRankHistoryByPuuid(ctx, db.ListRankHistoryByPuuidParams{
		Puuid: puuid,
		Limit: int64(limit),
	})
	if err != nil {
		return nil, err
	}

	result := make([]domain.RankHistory, len(rows))
	for i, row := range rows {
		result[i] = domain.RankHistory{
			ID:           row.ID,
			PUUID:        row.Puuid,
			Tier:         row.Tier.String,
			Division:     row.Division.String,
			LeaguePoints: int(row.LeaguePoints),
			Wins:         int(row.Wins),
			Losses:       int(row.Losses),
			Score:        int(row.Score),
			RecordedAt:   row.RecordedAt,
		}
	}
	return result, nil
}
