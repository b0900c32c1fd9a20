package repository

import (
	"context"
	"database/sql"
	"time"

	"league-tracker/internal/db"
	"league-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type PlayerRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewPlayerRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *PlayerRepository) Upsert(ctx context.Context, player *domain.Player) error {
	return r.queries.UpsertPlayer(ctx, db.UpsertPlayerParams{
		Puuid:         player.PUUID,
		GameName:      player.GameName,
		TagLine:       player.TagLine,
		ProfileIconID: int64(player.ProfileIconID),
		SummonerLevel: int64(player.SummonerLevel),
		Tier:          nullString(player.Tier),
		Division:      nullString(player.Division),
		LeaguePoints:  int64(player.LeaguePoints),
		Wins:          int64(player.Wins),
		Losses:        int64(player.Losses),
		InGame:        player.InGame,
		LastUpdatedAt: player.LastUpdatedAt,
	})
}

func (r *PlayerRepository) GetByPUUID(ctx context.Context, puuid string) (*domain.Player, error) {
	row, err := r.queries.GetPlayerByPuuid(ctx, puuid)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	player := toDomainPlayer(row)
	return &player, nil
}

func (r *PlayerRepository) GetByRiotID(ctx context.Context, gameName, tagLine string) (*domain.Player, error) {
	row, err := r.queries.GetPlayerByRiotID(ctx, db.GetPlayerByRiotIDParams{
		GameName: gameName,
		TagLine:  tagLine,
	})
	if err == sql.ErrNoRows {
		r.logger.Debug().Str("game_name", gameName).Str("tag_line", tagLine).Msg("player not known yet")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	player := toDomainPlayer(row)
	return &player, nil
}

func (r *PlayerRepository) List(ctx context.Context) ([]domain.Player, error) {
	rows, err := r.queries.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	players := make([]domain.Player, len(rows))
	for i, row := range rows {
		players[i] = toDomainPlayer(row)
	}
	return players, nil
}

// LastUpdatedAt returns the zero time when no player has ever been stored.
func (r *PlayerRepository) LastUpdatedAt(ctx context.Context) (time.Time, error) {
	ts, err := r.queries.GetLastUpdatedAt(ctx)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return ts, nil
}

func toDomainPlayer(p db.Player) domain.Player {
	return domain.Player{
		PUUID:         p.Puuid,
		GameName:      p.GameName,
		TagLine:       p.TagLine,
		ProfileIconID: int(p.ProfileIconID),
		SummonerLevel: int(p.SummonerLevel),
		Tier:          p.Tier.String,
		Division:      p.Division.String,
		LeaguePoints:  int(p.LeaguePoints),
		Wins:          int(p.Wins),
		Losses:        int(p.Losses),
		InGame:        p.InGame,
		LastUpdatedAt: p.LastUpdatedAt,
	}
}

// empty string maps to NULL, tier and division are both unset for
// unranked players
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
