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

type MilestoneRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewMilestoneRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *MilestoneRepository {
	return &MilestoneRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *MilestoneRepository) Insert(ctx context.Context, milestone domain.Milestone) error {
	id := milestone.ID
	if id == "" {
		var err error
		id, err = gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate nanoid: %w", err)
		}
	}

	params := db.InsertMilestoneParams{
		ID:         id,
		Kind:       milestone.Kind,
		Puuid:      milestone.PUUID,
		OccurredAt: milestone.OccurredAt,
	}

	// tier columns only make sense for promotions and demotions, the
	// target columns only for overtakes
	switch milestone.Kind {
	case domain.MilestoneSurpassed:
		params.TargetPuuid = sql.NullString{String: milestone.TargetPUUID, Valid: true}
		params.ActorScore = sql.NullInt64{Int64: int64(milestone.ActorScore), Valid: true}
		params.TargetScore = sql.NullInt64{Int64: int64(milestone.TargetScore), Valid: true}
	case domain.MilestonePromoted, domain.MilestoneDemoted:
		params.FromTier = nullString(milestone.FromTier)
		params.ToTier = nullString(milestone.ToTier)
	default:
		return fmt.Errorf("unknown milestone kind %q", milestone.Kind)
	}

	if err := r.queries.InsertMilestone(ctx, params); err != nil {
		return fmt.Errorf("failed to insert milestone: %w", err)
	}
	return nil
}

func (r *MilestoneRepository) ListRecent(ctx context.Context, limit int) ([]domain.Milestone, error) {
	rows, err := r.queries.ListRecentMilestones(ctx, int64(limit))
	if err != nil {
		return nil, err
	}

	milestones := make([]domain.Milestone, len(rows))
	for i, row := range rows {
		milestones[i] = domain.Milestone{
			ID:             row.ID,
			Kind:           row.Kind,
			PUUID:          row.Puuid,
			TargetPUUID:    row.TargetPuuid.String,
			FromTier:       row.FromTier.String,
			ToTier:         row.ToTier.String,
			ActorScore:     int(row.ActorScore.Int64),
			TargetScore:    int(row.TargetScore.Int64),
			OccurredAt:     row.OccurredAt,
			GameName:       row.GameName,
			TagLine:        row.TagLine,
			TargetGameName: row.TargetGameName.String,
			TargetTagLine:  row.TargetTagLine.String,
		}
	}
	return milestones, nil
}
