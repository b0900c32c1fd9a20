package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"league-tracker/internal/constants"
	"league-tracker/internal/domain"
	"league-tracker/internal/metrics"
	"league-tracker/internal/service"

	"github.com/rs/zerolog"
)

// Refresher triggers a sync cycle, or reports that the persisted
// snapshot is still fresh enough to serve as is.
type Refresher interface {
	Refresh(ctx context.Context, force bool) (service.RefreshResult, error)
}

// Snapshot assembles views from persisted state only.
type Snapshot interface {
	Leaderboard(ctx context.Context) (*domain.Leaderboard, error)
	PlayerHistory(ctx context.Context, gameName, tagLine string, limit int) (*domain.Player, []domain.RankHistory, error)
	Milestones(ctx context.Context, limit int) ([]domain.Milestone, error)
}

type Server struct {
	refresher Refresher
	snapshot  Snapshot
	db        *sql.DB
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

func New(refresher Refresher, snapshot Snapshot, sqlDB *sql.DB, m *metrics.Metrics, logger zerolog.Logger) *Server {
	return &Server{
		refresher: refresher,
		snapshot:  snapshot,
		db:        sqlDB,
		metrics:   m,
		logger:    logger,
	}
}

func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/leaderboard", s.handleLeaderboard)
	mux.HandleFunc("GET /api/players/{gameName}/{tagLine}/history", s.handlePlayerHistory)
	mux.HandleFunc("GET /api/milestones", s.handleMilestones)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeout)
	defer cancel()

	force := r.URL.Query().Get("force") == "true"

	result, err := s.refresher.Refresh(ctx, force)
	if err != nil {
		// whatever is persisted is still worth serving
		s.logger.Error().Err(err).Msg("refresh failed, falling back to persisted state")
	}

	board, err := s.snapshot.Leaderboard(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to assemble leaderboard")
		s.respondError(w, http.StatusInternalServerError, "leaderboard unavailable")
		return
	}

	s.respond(w, http.StatusOK, toLeaderboardResponse(board, result))
}

func (s *Server) handlePlayerHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeout)
	defer cancel()

	gameName := r.PathValue("gameName")
	tagLine := r.PathValue("tagLine")
	limit := parseLimit(r.URL.Query().Get("limit"), constants.DefaultHistoryLimit)

	player, records, err := s.snapshot.PlayerHistory(ctx, gameName, tagLine, limit)
	if err != nil {
		s.logger.Error().Err(err).Str("game_name", gameName).Str("tag_line", tagLine).Msg("failed to load player history")
		s.respondError(w, http.StatusInternalServerError, "history unavailable")
		return
	}
	if player == nil {
		s.respondError(w, http.StatusNotFound, "player not found")
		return
	}

	s.respond(w, http.StatusOK, toHistoryResponse(player, records))
}

func (s *Server) handleMilestones(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeout)
	defer cancel()

	limit := parseLimit(r.URL.Query().Get("limit"), constants.DefaultMilestoneLimit)

	milestones, err := s.snapshot.Milestones(ctx, limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load milestones")
		s.respondError(w, http.StatusInternalServerError, "milestones unavailable")
		return
	}

	s.respond(w, http.StatusOK, toMilestonesResponse(milestones))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.DatabaseTimeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Error().Err(err).Msg("health check failed")
		s.respondError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}

	s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respond(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respond(w, status, errorResponse{Error: message})
}

// parseLimit clamps a limit query parameter, falling back on anything
// unusable rather than erroring a read endpoint.
func parseLimit(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	if n > constants.MaxListLimit {
		return constants.MaxListLimit
	}
	return n
}

type errorResponse struct {
	Error string `json:"error"`
}

type leaderboardResponse struct {
	Players       []leaderboardRow `json:"players"`
	LastUpdatedAt time.Time        `json:"lastUpdatedAt"`
	FromCache     bool             `json:"fromCache"`
	Stale         bool             `json:"stale"`
}

type leaderboardRow struct {
	PUUID         string       `json:"puuid,omitempty"`
	GameName      string       `json:"gameName"`
	TagLine       string       `json:"tagLine"`
	ProfileIconID int          `json:"profileIconId"`
	SummonerLevel int          `json:"summonerLevel"`
	Rank          *rankEntry   `json:"rank,omitempty"`
	InGame        bool         `json:"inGame"`
	Unresolved    bool         `json:"unresolved,omitempty"`
	UpdateFailed  bool         `json:"updateFailed,omitempty"`
	RecentMatches []matchEntry `json:"recentMatches"`
}

type rankEntry struct {
	Tier         string `json:"tier"`
	Division     string `json:"division"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	Score        int    `json:"score"`
}

type matchEntry struct {
	MatchID  string    `json:"matchId"`
	Win      bool      `json:"win"`
	Champion string    `json:"champion"`
	Kills    int       `json:"kills"`
	Deaths   int       `json:"deaths"`
	Assists  int       `json:"assists"`
	PlayedAt time.Time `json:"playedAt"`
}

func toLeaderboardResponse(board *domain.Leaderboard, result service.RefreshResult) leaderboardResponse {
	failed := make(map[string]bool, len(result.FailedRiotIDs))
	for riotID := range result.FailedRiotIDs {
		failed[strings.ToLower(riotID)] = true
	}

	rows := make([]leaderboardRow, len(board.Entries))
	for i, entry := range board.Entries {
		row := leaderboardRow{
			PUUID:         entry.PUUID,
			GameName:      entry.GameName,
			TagLine:       entry.TagLine,
			ProfileIconID: entry.ProfileIconID,
			SummonerLevel: entry.SummonerLevel,
			InGame:        entry.InGame,
			Unresolved:    entry.Unresolved,
			UpdateFailed:  failed[strings.ToLower(entry.GameName+"#"+entry.TagLine)],
			RecentMatches: make([]matchEntry, len(entry.RecentMatches)),
		}
		if entry.Tier != "" {
			row.Rank = &rankEntry{
				Tier:         entry.Tier,
				Division:     entry.Division,
				LeaguePoints: entry.LeaguePoints,
				Wins:         entry.Wins,
				Losses:       entry.Losses,
				Score:        entry.Score,
			}
		}
		for j, match := range entry.RecentMatches {
			row.RecentMatches[j] = matchEntry{
				MatchID:  match.MatchID,
				Win:      match.Win,
				Champion: match.Champion,
				Kills:    match.Kills,
				Deaths:   match.Deaths,
				Assists:  match.Assists,
				PlayedAt: match.PlayedAt,
			}
		}
		rows[i] = row
	}

	return leaderboardResponse{
		Players:       rows,
		LastUpdatedAt: board.LastUpdatedAt,
		FromCache:     result.FromCache(),
		Stale:         result.Stale(),
	}
}

type historyResponse struct {
	PUUID    string         `json:"puuid"`
	GameName string         `json:"gameName"`
	TagLine  string         `json:"tagLine"`
	Records  []historyEntry `json:"records"`
}

type historyEntry struct {
	Tier         string    `json:"tier,omitempty"`
	Division     string    `json:"division,omitempty"`
	LeaguePoints int       `json:"leaguePoints"`
	Wins         int       `json:"wins"`
	Losses       int       `json:"losses"`
	Score        int       `json:"score"`
	RecordedAt   time.Time `json:"recordedAt"`
}

func toHistoryResponse(player *domain.Player, records []domain.RankHistory) historyResponse {
	resp := historyResponse{
		PUUID:    player.PUUID,
		GameName: player.GameName,
		TagLine:  player.TagLine,
		Records:  make([]historyEntry, len(records)),
	}
	for i, record := range records {
		resp.Records[i] = historyEntry{
			Tier:         record.Tier,
			Division:     record.Division,
			LeaguePoints: record.LeaguePoints,
			Wins:         record.Wins,
			Losses:       record.Losses,
			Score:        record.Score,
			RecordedAt:   record.RecordedAt,
		}
	}
	return resp
}

type milestonesResponse struct {
	Milestones []milestoneEntry `json:"milestones"`
}

type milestoneEntry struct {
	Kind           string    `json:"kind"`
	GameName       string    `json:"gameName"`
	TagLine        string    `json:"tagLine"`
	TargetGameName string    `json:"targetGameName,omitempty"`
	TargetTagLine  string    `json:"targetTagLine,omitempty"`
	FromTier       string    `json:"fromTier,omitempty"`
	ToTier         string    `json:"toTier,omitempty"`
	ActorScore     int       `json:"actorScore"`
	TargetScore    int       `json:"targetScore"`
	OccurredAt     time.Time `json:"occurredAt"`
}

func toMilestonesResponse(milestones []domain.Milestone) milestonesResponse {
	resp := milestonesResponse{Milestones: make([]milestoneEntry, len(milestones))}
	for i, m := range milestones {
		resp.Milestones[i] = milestoneEntry{
			Kind:           m.Kind,
			GameName:       m.GameName,
			TagLine:        m.TagLine,
			TargetGameName: m.TargetGameName,
			TargetTagLine:  m.TargetTagLine,
			FromTier:       m.FromTier,
			ToTier:         m.ToTier,
			ActorScore:     m.ActorScore,
			TargetScore:    m.TargetScore,
			OccurredAt:     m.OccurredAt,
		}
	}
	return resp
}
