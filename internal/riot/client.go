package riot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"league-tracker/internal/config"
	"league-tracker/internal/constants"
	"league-tracker/internal/metrics"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"go.uber.org/fx"
	"golang.org/x/time/rate"
)

// ErrNotFound is returned for upstream 404s so callers can tell "no
// such thing" apart from a real failure.
var ErrNotFound = errors.New("riot: not found")

type Client struct {
	apiKey      string
	platformURL string
	regionalURL string
	client      *fasthttp.Client
	limiter     *rate.Limiter
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

func New(cfg *config.Config, m *metrics.Metrics, logger zerolog.Logger) *Client {
	return &Client{
		apiKey:      cfg.RiotAPIKey,
		platformURL: normalizeBaseURL(cfg.PlatformHost),
		regionalURL: normalizeBaseURL(cfg.RegionalHost),
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		// one shared limiter, every call to either host pays the same
		// inter-request delay
		limiter: rate.NewLimiter(rate.Every(cfg.RequestInterval), 1),
		metrics: m,
		logger:  logger,
	}
}

func (c *Client) GetAccount(ctx context.Context, gameName, tagLine string) (*Account, error) {
	reqURL := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.regionalURL, url.PathEscape(gameName), url.PathEscape(tagLine))
	return doRequest[Account](ctx, c, "account", reqURL)
}

func (c *Client) GetSummoner(ctx context.Context, puuid string) (*Summoner, error) {
	reqURL := fmt.Sprintf("%s/lol/summoner/v4/summoners/by-puuid/%s", c.platformURL, puuid)
	return doRequest[Summoner](ctx, c, "summoner", reqURL)
}

func (c *Client) GetLeagueEntries(ctx context.Context, puuid string) ([]LeagueEntry, error) {
	reqURL := fmt.Sprintf("%s/lol/league/v4/entries/by-puuid/%s", c.platformURL, puuid)
	entries, err := doRequest[[]LeagueEntry](ctx, c, "league", reqURL)
	if err != nil {
		return nil, err
	}
	return *entries, nil
}

// GetActiveGame returns nil without error when the player is not in a
// live game. Live status is best effort, upstream trouble here must
// never fail a sync.
func (c *Client) GetActiveGame(ctx context.Context, puuid string) (*CurrentGameInfo, error) {
	reqURL := fmt.Sprintf("%s/lol/spectator/v5/active-games/by-summoner/%s", c.platformURL, puuid)
	game, err := doRequest[CurrentGameInfo](ctx, c, "spectator", reqURL)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.logger.Debug().Err(err).Str("puuid", puuid).Msg("live game lookup failed")
		}
		return nil, nil
	}
	return game, nil
}

func (c *Client) GetMatchIDs(ctx context.Context, puuid string, queueID, count int) ([]string, error) {
	reqURL := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?queue=%d&start=0&count=%d",
		c.regionalURL, puuid, queueID, count)
	ids, err := doRequest[[]string](ctx, c, "match_ids", reqURL)
	if err != nil {
		return nil, err
	}
	return *ids, nil
}

func (c *Client) GetMatch(ctx context.Context, matchID string) (*MatchData, error) {
	reqURL := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.regionalURL, matchID)
	return doRequest[MatchData](ctx, c, "match", reqURL)
}

func doRequest[T any](ctx context.Context, client *Client, endpoint, reqURL string) (*T, error) {
	if err := client.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(reqURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("X-Riot-Token", client.apiKey)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			client.metrics.UpstreamRequests.WithLabelValues(endpoint, "error").Inc()
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			client.metrics.UpstreamRequests.WithLabelValues(endpoint, "error").Inc()
			return nil, err
		}
	}

	status := resp.StatusCode()
	client.metrics.UpstreamRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()

	if status == fasthttp.StatusNotFound {
		return nil, ErrNotFound
	}
	if status != fasthttp.StatusOK {
		client.logger.Warn().Int("status", status).Str("endpoint", endpoint).Msg("riot API error")
		return nil, fmt.Errorf("riot API error: %d", status)
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func normalizeBaseURL(host string) string {
	if strings.Contains(host, "://") {
		return strings.TrimSuffix(host, "/")
	}
	return "https://" + host
}

type Account struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

type Summoner struct {
	PUUID         string `json:"puuid"`
	ProfileIconID int    `json:"profileIconId"`
	RevisionDate  int64  `json:"revisionDate"`
	SummonerLevel int    `json:"summonerLevel"`
}

type LeagueEntry struct {
	LeagueID     string `json:"leagueId"`
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	Veteran      bool   `json:"veteran"`
	Inactive     bool   `json:"inactive"`
	FreshBlood   bool   `json:"freshBlood"`
	HotStreak    bool   `json:"hotStreak"`
}

type CurrentGameInfo struct {
	GameID            int64  `json:"gameId"`
	GameType          string `json:"gameType"`
	GameStartTime     int64  `json:"gameStartTime"`
	GameLength        int64  `json:"gameLength"`
	PlatformID        string `json:"platformId"`
	GameMode          string `json:"gameMode"`
	GameQueueConfigID int    `json:"gameQueueConfigId"`
	Participants      []struct {
		PUUID      string `json:"puuid"`
		ChampionID int64  `json:"championId"`
	} `json:"participants"`
}

type MatchData struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"`
}

type MatchInfo struct {
	QueueID          int                `json:"queueId"`
	GameCreation     int64              `json:"gameCreation"`
	GameDuration     int64              `json:"gameDuration"`
	GameEndTimestamp int64              `json:"gameEndTimestamp"`
	GameMode         string             `json:"gameMode"`
	Participants     []MatchParticipant `json:"participants"`
}

type MatchParticipant struct {
	PUUID          string `json:"puuid"`
	RiotIDGameName string `json:"riotIdGameName"`
	RiotIDTagline  string `json:"riotIdTagline"`
	ChampionName   string `json:"championName"`
	TeamID         int    `json:"teamId"`
	Kills          int    `json:"kills"`
	Deaths         int    `json:"deaths"`
	Assists        int    `json:"assists"`
	Win            bool   `json:"win"`
}

var Module = fx.Provide(New)
