package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"league-tracker/internal/constants"
	"league-tracker/internal/db"
	"league-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type MatchRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewMatchRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// FilterKnown reports which of the given match IDs are already stored.
func (r *MatchRepository) FilterKnown(ctx context.Context, matchIDs []string) (map[string]bool, error) {
	known := make(map[string]bool, len(matchIDs))
	if len(matchIDs) == 0 {
		return known, nil
	}

	stored, err := r.queries.FilterKnownMatchIDs(ctx, matchIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range stored {
		known[id] = true
	}
	return known, nil
}

func (r *MatchRepository) UpsertBatch(ctx context.Context, matches []domain.Match, participations []domain.PlayerMatch) error {
	if len(matches) == 0 && len(participations) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	for i := 0; i < len(matches); i += constants.DBBatchSize {
		end := i + constants.DBBatchSize
		if end > len(matches) {
			end = len(matches)
		}

		for _, match := range matches[i:end] {
			participants, err := json.Marshal(match.Participants)
			if err != nil {
				return fmt.Errorf("failed to marshal participants for %s: %w", match.MatchID, err)
			}

			err = qtx.UpsertMatch(ctx, db.UpsertMatchParams{
				MatchID:      match.MatchID,
				QueueID:      int64(match.QueueID),
				GameEndedAt:  match.GameEndedAt,
				Participants: string(participants),
				FetchedAt:    match.FetchedAt,
			})
			if err != nil {
				return fmt.Errorf("failed to upsert match %s: %w", match.MatchID, err)
			}
		}
	}

	for i := 0; i < len(participations); i += constants.DBBatchSize {
		end := i + constants.DBBatchSize
		if end > len(participations) {
			end = len(participations)
		}

		for _, pm := range participations[i:end] {
			err := qtx.UpsertPlayerMatch(ctx, db.UpsertPlayerMatchParams{
				Puuid:    pm.PUUID,
				MatchID:  pm.MatchID,
				Win:      pm.Win,
				Champion: pm.Champion,
				Kills:    int64(pm.Kills),
				Deaths:   int64(pm.Deaths),
				Assists:  int64(pm.Assists),
				PlayedAt: pm.PlayedAt,
			})
			if err != nil {
				return fmt.Errorf("failed to upsert player match %s/%s: %w", pm.MatchID, pm.PUUID, err)
			}
		}
	}

	return tx.Commit()
}

func (r *MatchRepository) GetMatch(ctx context.Context, matchID string) (*domain.Match, error) {
	row, err := r.queries.GetMatch(ctx, matchID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	match, err := toDomainMatch(row)
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// ListRecentByPlayer returns the player's stored participations, newest first.
func (r *MatchRepository) ListRecentByPlayer(ctx context.Context, puuid string, limit int) ([]domain.PlayerMatch, error) {
	rows, err := r.queries.ListRecentPlayerMatches(ctx, db.ListRecentPlayerMatchesParams{
		Puuid: puuid,
		Limit: int64(limit),
	})
	if err != nil {
		return nil, err
	}

	result := make([]domain.PlayerMatch, len(rows))
	for i, row := range rows {
		result[i] = domain.PlayerMatch{
			PUUID:    row.Puuid,
			MatchID:  row.MatchID,
			Win:      row.Win,
			Champion: row.Champion,
			Kills:    int(row.Kills),
			Deaths:   int(row.Deaths),
			Assists:  int(row.Assists),
			PlayedAt: row.PlayedAt,
		}
	}
	return result, nil
}

func (r *MatchRepository) Count(ctx context.Context) (int64, error) {
	return r.queries.CountMatches(ctx)
}

func toDomainMatch(m db.Match) (domain.Match, error) {
	var participants []domain.MatchParticipant
	if err := json.Unmarshal([]byte(m.Participants), &participants); err != nil {
		return domain.Match{}, fmt.Errorf("failed to unmarshal participants for %s: %w", m.MatchID, err)
	}

	return domain.Match{
		MatchID:      m.MatchID,
		QueueID:      int(m.QueueID),
		GameEndedAt:  m.GameEndedAt,
		Participants: participants,
		FetchedAt:    m.FetchedAt,
	}, nil
}
