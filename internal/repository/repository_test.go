package repository_test

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"league-tracker/internal/config"
	"league-tracker/internal/database"
	"league-tracker/internal/db"
	"league-tracker/internal/domain"
	"league-tracker/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDB opens a uniquely named shared-cache in-memory database so
// each test sees its own schema while the pool can hand out multiple
// connections.
func newTestDB(t *testing.T) (*sql.DB, *db.Queries) {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	cfg := &config.Config{
		DatabasePath: fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	}

	sqlDB, err := database.New(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return sqlDB, db.New(sqlDB)
}

func testPlayer(puuid, gameName, tagLine, tier, division string, lp int) domain.Player {
	return domain.Player{
		PUUID:         puuid,
		GameName:      gameName,
		TagLine:       tagLine,
		ProfileIconID: 4321,
		SummonerLevel: 250,
		Tier:          tier,
		Division:      division,
		LeaguePoints:  lp,
		Wins:          40,
		Losses:        38,
		LastUpdatedAt: time.Now().UTC(),
	}
}

func TestPlayerRepositoryUpsertAndGet(t *testing.T) {
	sqlDB, queries := newTestDB(t)
	repo := repository.NewPlayerRepository(sqlDB, queries, zerolog.Nop())
	ctx := context.Background()

	player := testPlayer("puuid-1", "Faker", "KR1", "CHALLENGER", "I", 1204)
	require.NoError(t, repo.Upsert(ctx, &player))

	got, err := repo.GetByPUUID(ctx, "puuid-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Faker", got.GameName)
	assert.Equal(t, "CHALLENGER", got.Tier)
	assert.Equal(t, 1204, got.LeaguePoints)
	assert.WithinDuration(t, player.LastUpdatedAt, got.LastUpdatedAt, time.Second)

	missing, err := repo.GetByPUUID(ctx, "puuid-unknown")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPlayerRepositoryGetByRiotIDIgnoresCase(t *testing.T) {
	sqlDB, queries := newTestDB(t)
	repo := repository.NewPlayerRepository(sqlDB, queries, zerolog.Nop())
	ctx := context.Background()

	player := testPlayer("puuid-1", "Caps", "EUW", "GRANDMASTER", "", 612)
	require.NoError(t, repo.Upsert(ctx, &player))

	got, err := repo.GetByRiotID(ctx, "caps", "euw")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "puuid-1", got.PUUID)

	missing, err := repo.GetByRiotID(ctx, "Caps", "NA1")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPlayerRepositoryUpsertUpdatesInPlace(t *testing.T) {
	sqlDB, queries := newTestDB(t)
	repo := repository.NewPlayerRepository(sqlDB, queries, zerolog.Nop())
	ctx := context.Background()

	player := testPlayer("puuid-1", "Rekkles", "EUW", "GOLD", "II", 40)
	require.NoError(t, repo.Upsert(ctx, &player))

	player.Tier = "PLATINUM"
	player.Division = "IV"
	player.LeaguePoints = 12
	require.NoError(t, repo.Upsert(ctx, &player))

	players, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "PLATINUM", players[0].Tier)
	assert.Equal(t, "IV", players[0].Division)
	assert.Equal(t, 12, players[0].LeaguePoints)
}

func TestPlayerRepositoryUnrankedRoundTrip(t *testing.T) {
	sqlDB, queries := newTestDB(t)
	repo := repository.NewPlayerRepository(sqlDB, queries, zerolog.Nop())
	ctx := context.Background()

	player := testPlayer("puuid-1", "Smurf", "EUW", "", "", 0)
	require.NoError(t, repo.Upsert(ctx, &player))

	got, err := repo.GetByPUUID(ctx, "puuid-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.Tier)
	assert.Empty(t, got.Division)
}

func TestPlayerRepositoryLastUpdatedAt(t *testing.T) {
	sqlDB, queries := newTestDB(t)
	repo := repository.NewPlayerRepository(sqlDB, queries, zerolog.Nop())
	ctx := context.Background()

	ts, err := repo.LastUpdatedAt(ctx)
	require.NoError(t, err)
	assert.True(t, ts.IsZero())

	older := testPlayer("puuid-1", "One", "EUW", "SILVER", "I", 10)
	older.LastUpdatedAt = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, repo.Upsert(ctx, &older))

	newer := testPlayer("puuid-2", "Two", "EUW", "GOLD", "IV", 20)
	newer.LastUpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Upsert(ctx, &newer))

	ts, err = repo.LastUpdatedAt(ctx)
	require.NoError(t, err)
	assert.WithinDuration(t, newer.LastUpdatedAt, ts, time.Second)
}

func TestHistoryRepositoryAppendAndList(t *testing.T) {
	sqlDB, queries := newTestDB(t)
	players := repository.NewPlayerRepository(sqlDB, queries, zerolog.Nop())
	history := repository.NewHistoryRepository(sqlDB, queries, zerolog.Nop())
	ctx := context.Background()

	player := testPlayer("puuid-1", "Jankos", "EUW", "DIAMOND", "II", 30)
	require.NoError(t, players.Upsert(ctx, &player))

	base := time.Now().UTC().Add(-time.Hour)
	for i, score := range []int{62_030, 62_055, 63_001} {
		require.NoError(t, history.Append(ctx, domain.RankHistory{
			PUUID:        "puuid-1",
			Tier:         "DIAMOND",
			Division:     "II",
			LeaguePoints: score % 1000,
			Score:        score,
			RecordedAt:   base.Add(time.Duration(i) * time.Minute),
		}))
	}

	records, err := history.ListByPlayer(ctx, "puuid-1", 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 63_001, records[0].Score)
	assert.Equal(t, 62_055, records[1].Score)
	assert.NotEmpty(t, records[0].ID)
	assert.Equal(t, "DIAMOND", records[0].Tier)
}

func TestMatchRepositoryBatchFilterAndList(t *testing.T) {
	sqlDB, queries := newTestDB(t)
	repo := repository.NewMatchRepository(sqlDB, queries, zerolog.Nop())
	ctx := context.Background()

	known, err := repo.FilterKnown(ctx, []string{"EUW1_1"})
	require.NoError(t, err)
	assert.Empty(t, known)

	endedAt := time.Now().UTC().Add(-30 * time.Minute)
	matches := []domain.Match{
		{
			MatchID:     "EUW1_1",
			QueueID:     420,
			GameEndedAt: endedAt,
			Participants: []domain.MatchParticipant{
				{PUUID: "puuid-1", Win: true, Champion: "Ahri", Kills: 9, Deaths: 2, Assists: 7},
				{PUUID: "puuid-2", Win: false, Champion: "Zed", Kills: 4, Deaths: 8, Assists: 1},
			},
			FetchedAt: time.Now().UTC(),
		},
		{
			MatchID:     "EUW1_2",
			QueueID:     420,
			GameEndedAt: endedAt.Add(10 * time.Minute),
			Participants: []domain.MatchParticipant{
				{PUUID: "puuid-1", Win: false, Champion: "Orianna", Kills: 3, Deaths: 5, Assists: 10},
			},
			FetchedAt: time.Now().UTC(),
		},
	}
	participations := []domain.PlayerMatch{
		{PUUID: "puuid-1", MatchID: "EUW1_1", Win: true, Champion: "Ahri", Kills: 9, Deaths: 2, Assists: 7, PlayedAt: endedAt},
		{PUUID: "puuid-2", MatchID: "EUW1_1", Win: false, Champion: "Zed", Kills: 4, Deaths: 8, Assists: 1, PlayedAt: endedAt},
		{PUUID: "puuid-1", MatchID: "EUW1_2", Win: false, Champion: "Orianna", Kills: 3, Deaths: 5, Assists: 10, PlayedAt: endedAt.Add(10 * time.Minute)},
	}
	require.NoError(t, repo.UpsertBatch(ctx, matches, participations))

	known, err = repo.FilterKnown(ctx, []string{"EUW1_1", "EUW1_2", "EUW1_3"})
	require.NoError(t, err)
	assert.True(t, known["EUW1_1"])
	assert.True(t, known["EUW1_2"])
	assert.False(t, known["EUW1_3"])

	match, err := repo.GetMatch(ctx, "EUW1_1")
	require.NoError(t, err)
	require.NotNil(t, match)
	require.Len(t, match.Participants, 2)
	assert.Equal(t, "Ahri", match.Participants[0].Champion)

	missing, err := repo.GetMatch(ctx, "EUW1_3")
	require.NoError(t, err)
	assert.Nil(t, missing)

	recent, err := repo.ListRecentByPlayer(ctx, "puuid-1", 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "EUW1_2", recent[0].MatchID)
	assert.Equal(t, "EUW1_1", recent[1].MatchID)

	recent, err = repo.ListRecentByPlayer(ctx, "puuid-2", 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "Zed", recent[0].Champion)
}

func TestMatchRepositoryUpsertBatchIdempotent(t *testing.T) {
	sqlDB, queries := newTestDB(t)
	repo := repository.NewMatchRepository(sqlDB, queries, zerolog.Nop())
	ctx := context.Background()

	matches := []domain.Match{{
		MatchID:      "EUW1_9",
		QueueID:      420,
		GameEndedAt:  time.Now().UTC(),
		Participants: []domain.MatchParticipant{{PUUID: "puuid-1", Champion: "Lux"}},
		FetchedAt:    time.Now().UTC(),
	}}
	participations := []domain.PlayerMatch{
		{PUUID: "puuid-1", MatchID: "EUW1_9", Champion: "Lux", PlayedAt: time.Now().UTC()},
	}

	require.NoError(t, repo.UpsertBatch(ctx, matches, participations))
	require.NoError(t, repo.UpsertBatch(ctx, matches, participations))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMilestoneRepositoryInsertAndList(t *testing.T) {
	sqlDB, queries := newTestDB(t)
	players := repository.NewPlayerRepository(sqlDB, queries, zerolog.Nop())
	repo := repository.NewMilestoneRepository(sqlDB, queries, zerolog.Nop())
	ctx := context.Background()

	actor := testPlayer("puuid-1", "Caps", "EUW", "MASTER", "", 120)
	target := testPlayer("puuid-2", "Perkz", "EUW", "MASTER", "", 80)
	require.NoError(t, players.Upsert(ctx, &actor))
	require.NoError(t, players.Upsert(ctx, &target))

	now := time.Now().UTC()
	require.NoError(t, repo.Insert(ctx, domain.Milestone{
		Kind:       domain.MilestonePromoted,
		PUUID:      "puuid-1",
		FromTier:   "DIAMOND",
		ToTier:     "MASTER",
		OccurredAt: now.Add(-time.Minute),
	}))
	require.NoError(t, repo.Insert(ctx, domain.Milestone{
		Kind:        domain.MilestoneSurpassed,
		PUUID:       "puuid-1",
		TargetPUUID: "puuid-2",
		ActorScore:  90_120,
		TargetScore: 90_080,
		OccurredAt:  now,
	}))

	milestones, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, milestones, 2)

	surpassed := milestones[0]
	assert.Equal(t, domain.MilestoneSurpassed, surpassed.Kind)
	assert.Equal(t, "Caps", surpassed.GameName)
	assert.Equal(t, "Perkz", surpassed.TargetGameName)
	assert.Equal(t, 90_120, surpassed.ActorScore)
	assert.Equal(t, 90_080, surpassed.TargetScore)
	assert.Empty(t, surpassed.FromTier)

	promoted := milestones[1]
	assert.Equal(t, domain.MilestonePromoted, promoted.Kind)
	assert.Equal(t, "DIAMOND", promoted.FromTier)
	assert.Equal(t, "MASTER", promoted.ToTier)
	assert.Empty(t, promoted.TargetGameName)
	assert.NotEmpty(t, promoted.ID)
}

func TestMilestoneRepositoryListRecentLimit(t *testing.T) {
	sqlDB, queries := newTestDB(t)
	players := repository.NewPlayerRepository(sqlDB, queries, zerolog.Nop())
	repo := repository.NewMilestoneRepository(sqlDB, queries, zerolog.Nop())
	ctx := context.Background()

	actor := testPlayer("puuid-1", "Caps", "EUW", "GOLD", "I", 50)
	require.NoError(t, players.Upsert(ctx, &actor))

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Insert(ctx, domain.Milestone{
			Kind:       domain.MilestonePromoted,
			PUUID:      "puuid-1",
			FromTier:   "SILVER",
			ToTier:     "GOLD",
			OccurredAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	milestones, err := repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, milestones, 3)
	assert.WithinDuration(t, base.Add(4*time.Minute), milestones[0].OccurredAt, time.Second)
}

func TestMilestoneRepositoryRejectsUnknownKind(t *testing.T) {
	sqlDB, queries := newTestDB(t)
	repo := repository.NewMilestoneRepository(sqlDB, queries, zerolog.Nop())

	err := repo.Insert(context.Background(), domain.Milestone{
		Kind:  "ascended",
		PUUID: "puuid-1",
	})
	require.Error(t, err)
}
