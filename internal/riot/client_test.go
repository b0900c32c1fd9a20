package riot_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"league-tracker/internal/config"
	"league-tracker/internal/metrics"
	"league-tracker/internal/riot"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler, interval time.Duration) *riot.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		RiotAPIKey:      "test-key",
		PlatformHost:    srv.URL,
		RegionalHost:    srv.URL,
		RequestInterval: interval,
	}
	return riot.New(cfg, metrics.New(), zerolog.Nop())
}

func TestClientGetAccount(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /riot/account/v1/accounts/by-riot-id/{name}/{tag}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-Riot-Token"))
		assert.Equal(t, "Faker", r.PathValue("name"))
		w.Write([]byte(`{"puuid":"puuid-1","gameName":"Faker","tagLine":"KR1"}`))
	})
	client := newTestClient(t, mux, 0)

	account, err := client.GetAccount(context.Background(), "Faker", "KR1")
	require.NoError(t, err)
	assert.Equal(t, "puuid-1", account.PUUID)
	assert.Equal(t, "Faker", account.GameName)
	assert.Equal(t, "KR1", account.TagLine)
}

func TestClientGetAccountNotFound(t *testing.T) {
	client := newTestClient(t, http.NotFoundHandler(), 0)

	_, err := client.GetAccount(context.Background(), "Nobody", "EUW")
	require.ErrorIs(t, err, riot.ErrNotFound)
}

func TestClientGetLeagueEntries(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /lol/league/v4/entries/by-puuid/{puuid}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"queueType":"RANKED_FLEX_SR","tier":"GOLD","rank":"I","leaguePoints":10,"wins":3,"losses":2},
			{"queueType":"RANKED_SOLO_5x5","tier":"DIAMOND","rank":"II","leaguePoints":56,"wins":120,"losses":110}
		]`))
	})
	client := newTestClient(t, mux, 0)

	entries, err := client.GetLeagueEntries(context.Background(), "puuid-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "RANKED_SOLO_5x5", entries[1].QueueType)
	assert.Equal(t, "DIAMOND", entries[1].Tier)
	assert.Equal(t, 56, entries[1].LeaguePoints)
}

func TestClientGetActiveGameNotInGame(t *testing.T) {
	client := newTestClient(t, http.NotFoundHandler(), 0)

	game, err := client.GetActiveGame(context.Background(), "puuid-1")
	require.NoError(t, err)
	assert.Nil(t, game)
}

func TestClientGetActiveGameUpstreamTroubleMeansAbsent(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	client := newTestClient(t, handler, 0)

	game, err := client.GetActiveGame(context.Background(), "puuid-1")
	require.NoError(t, err)
	assert.Nil(t, game)
}

func TestClientGetActiveGameLive(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /lol/spectator/v5/active-games/by-summoner/{puuid}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"gameId":123,"gameQueueConfigId":420,"gameLength":600}`))
	})
	client := newTestClient(t, mux, 0)

	game, err := client.GetActiveGame(context.Background(), "puuid-1")
	require.NoError(t, err)
	require.NotNil(t, game)
	assert.Equal(t, int64(123), game.GameID)
	assert.Equal(t, 420, game.GameQueueConfigID)
}

func TestClientGetMatchIDs(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /lol/match/v5/matches/by-puuid/{puuid}/ids", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "420", r.URL.Query().Get("queue"))
		assert.Equal(t, "5", r.URL.Query().Get("count"))
		w.Write([]byte(`["EUW1_1","EUW1_2"]`))
	})
	client := newTestClient(t, mux, 0)

	ids, err := client.GetMatchIDs(context.Background(), "puuid-1", 420, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"EUW1_1", "EUW1_2"}, ids)
}

func TestClientGetMatch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /lol/match/v5/matches/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"metadata":{"matchId":"EUW1_1","participants":["puuid-1"]},
			"info":{
				"queueId":420,
				"gameEndTimestamp":1700000000000,
				"participants":[
					{"puuid":"puuid-1","riotIdGameName":"Faker","riotIdTagline":"KR1","championName":"Ahri","kills":9,"deaths":2,"assists":7,"win":true}
				]
			}
		}`))
	})
	client := newTestClient(t, mux, 0)

	match, err := client.GetMatch(context.Background(), "EUW1_1")
	require.NoError(t, err)
	assert.Equal(t, "EUW1_1", match.Metadata.MatchID)
	assert.Equal(t, 420, match.Info.QueueID)
	require.Len(t, match.Info.Participants, 1)
	assert.Equal(t, "Ahri", match.Info.Participants[0].ChampionName)
	assert.True(t, match.Info.Participants[0].Win)
}

func TestClientUpstreamError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	client := newTestClient(t, handler, 0)

	_, err := client.GetSummoner(context.Background(), "puuid-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

// The limiter must space out consecutive calls even when the upstream
// answers instantly.
func TestClientSpacesConsecutiveCalls(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	client := newTestClient(t, handler, 50*time.Millisecond)

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := client.GetLeagueEntries(context.Background(), "puuid-1")
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}
