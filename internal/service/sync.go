package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"league-tracker/internal/config"
	"league-tracker/internal/constants"
	"league-tracker/internal/domain"
	"league-tracker/internal/metrics"
	"league-tracker/internal/rank"
	"league-tracker/internal/riot"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type Outcome string

const (
	OutcomeBuilt    Outcome = "built"
	OutcomeCached   Outcome = "cached"
	OutcomeWaited   Outcome = "waited"
	OutcomeTimedOut Outcome = "timed_out"
	OutcomeFailed   Outcome = "failed"
)

type RefreshResult struct {
	Outcome       Outcome
	LastUpdatedAt time.Time

	// riot ids that failed in the most recent completed cycle
	FailedRiotIDs map[string]bool
}

func (r RefreshResult) FromCache() bool {
	return r.Outcome != OutcomeBuilt
}

func (r RefreshResult) Stale() bool {
	return r.Outcome == OutcomeFailed || r.Outcome == OutcomeTimedOut
}

type SyncService struct {
	cfg        *config.Config
	riot       RiotAPI
	players    PlayerStore
	history    HistoryStore
	matches    MatchStore
	milestones MilestoneStore
	metrics    *metrics.Metrics
	logger     zerolog.Logger

	mu      sync.Mutex
	running bool
	done    chan struct{}

	failedMu   sync.RWMutex
	lastFailed map[string]bool
}

func NewSyncService(
	cfg *config.Config,
	riotAPI RiotAPI,
	players PlayerStore,
	history HistoryStore,
	matches MatchStore,
	milestones MilestoneStore,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *SyncService {
	return &SyncService{
		cfg:        cfg,
		riot:       riotAPI,
		players:    players,
		history:    history,
		matches:    matches,
		milestones: milestones,
		metrics:    m,
		logger:     logger,
	}
}

// Refresh brings the persisted snapshot up to date. Fresh data short
// circuits, a stale snapshot runs exactly one sync cycle no matter how
// many callers trigger at once; the extra callers wait, bounded.
func (s *SyncService) Refresh(ctx context.Context, force bool) (RefreshResult, error) {
	lastUpdated, err := s.players.LastUpdatedAt(ctx)
	if err != nil {
		s.metrics.RefreshOutcomes.WithLabelValues(string(OutcomeFailed)).Inc()
		return RefreshResult{Outcome: OutcomeFailed}, fmt.Errorf("failed to read last update time: %w", err)
	}

	if !force && !lastUpdated.IsZero() && time.Since(lastUpdated) < s.cfg.FreshnessWindow {
		s.logger.Debug().Time("last_updated_at", lastUpdated).Msg("snapshot still fresh")
		return s.result(ctx, OutcomeCached), nil
	}

	s.mu.Lock()
	if s.running {
		done := s.done
		s.mu.Unlock()
		return s.awaitRunning(ctx, done)
	}
	s.running = true
	s.done = make(chan struct{})
	s.mu.Unlock()

	s.logger.Info().Bool("force", force).Msg("starting sync cycle")
	outcome := s.runGuardedCycle()
	return s.result(ctx, outcome), nil
}

func (s *SyncService) awaitRunning(ctx context.Context, done <-chan struct{}) (RefreshResult, error) {
	s.logger.Debug().Msg("sync cycle already running, waiting")

	timer := time.NewTimer(s.cfg.BuildWaitTimeout)
	defer timer.Stop()

	select {
	case <-done:
		return s.result(ctx, OutcomeWaited), nil
	case <-timer.C:
		s.logger.Warn().Dur("timeout", s.cfg.BuildWaitTimeout).Msg("gave up waiting for running sync cycle")
		return s.result(ctx, OutcomeTimedOut), nil
	case <-ctx.Done():
		s.metrics.RefreshOutcomes.WithLabelValues(string(OutcomeTimedOut)).Inc()
		return RefreshResult{Outcome: OutcomeTimedOut}, ctx.Err()
	}
}

// runGuardedCycle releases the lock and closes the done channel no
// matter how the cycle ends, panics included.
func (s *SyncService) runGuardedCycle() (outcome Outcome) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Msg("sync cycle panicked")
			outcome = OutcomeFailed
		}

		s.mu.Lock()
		s.running = false
		close(s.done)
		s.mu.Unlock()

		s.metrics.SyncCycleDuration.Observe(time.Since(start).Seconds())
	}()

	// detached from the triggering request so a dropped client cannot
	// abort a half-finished cycle
	ctx, cancel := context.WithTimeout(context.Background(), constants.CycleTimeout)
	defer cancel()

	failed, err := s.runCycle(ctx)
	if failed != nil {
		s.storeFailures(failed)
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("sync cycle failed")
		return OutcomeFailed
	}
	return OutcomeBuilt
}

func (s *SyncService) runCycle(ctx context.Context) (map[string]bool, error) {
	known, err := s.players.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	roster := newRosterIndex(s.cfg.Roster)
	priorByRiotID := make(map[string]*domain.Player, len(known))
	preScores := make(map[string]int, len(known))
	postScores := make(map[string]int, len(known))

	for i := range known {
		player := &known[i]
		priorByRiotID[strings.ToLower(player.RiotID())] = player
		roster.addPUUID(player.PUUID)

		score := rank.Score(player.Tier, player.Division, player.LeaguePoints)
		preScores[player.PUUID] = score
		postScores[player.PUUID] = score
	}

	failed := make(map[string]bool)

	for _, entry := range s.cfg.Roster {
		prior := priorByRiotID[strings.ToLower(entry.RiotID())]

		player, err := s.syncEntity(ctx, entry, prior, roster)
		if err != nil {
			s.logger.Error().Err(err).Str("riot_id", entry.RiotID()).Msg("failed to sync player")
			failed[entry.RiotID()] = true
			s.metrics.EntityFailures.Inc()
			continue
		}

		post := rank.Score(player.Tier, player.Division, player.LeaguePoints)
		if pre, ok := preScores[player.PUUID]; ok {
			if event := detectTransition(player.PUUID, pre, post, time.Now().UTC()); event != nil {
				s.recordMilestone(ctx, *event)
			}
		}
		postScores[player.PUUID] = post
		roster.addPUUID(player.PUUID)
	}

	for _, event := range detectOvertakes(preScores, postScores, time.Now().UTC()) {
		s.recordMilestone(ctx, event)
	}

	s.updateGauges(ctx, len(postScores))

	s.logger.Info().
		Int("roster_size", len(s.cfg.Roster)).
		Int("failed", len(failed)).
		Msg("sync cycle finished")
	return failed, nil
}

// syncEntity fetches and persists one roster entry. Nothing is written
// until every required fetch for the entry has succeeded, so a failed
// entry leaves its previous state untouched.
func (s *SyncService) syncEntity(ctx context.Context, entry domain.RosterEntry, prior *domain.Player, roster *rosterIndex) (*domain.Player, error) {
	plan := planFetch(entry, prior)

	var puuid, gameName, tagLine string
	if plan.needsIdentity() {
		account, err := s.riot.GetAccount(ctx, entry.GameName, entry.TagLine)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", entry.RiotID(), err)
		}
		puuid, gameName, tagLine = account.PUUID, account.GameName, account.TagLine
		s.logger.Info().Str("riot_id", entry.RiotID()).Str("puuid", puuid).Msg("resolved player identity")
	} else {
		puuid, gameName, tagLine = prior.PUUID, prior.GameName, prior.TagLine
	}

	state, err := s.fetchState(ctx, puuid)
	if err != nil {
		return nil, err
	}

	player := &domain.Player{
		PUUID:         puuid,
		GameName:      gameName,
		TagLine:       tagLine,
		ProfileIconID: state.summoner.ProfileIconID,
		SummonerLevel: state.summoner.SummonerLevel,
		InGame:        state.activeGame != nil,
		LastUpdatedAt: time.Now().UTC(),
	}
	if state.soloQueue != nil {
		player.Tier = state.soloQueue.Tier
		player.Division = state.soloQueue.Rank
		player.LeaguePoints = state.soloQueue.LeaguePoints
		player.Wins = state.soloQueue.Wins
		player.Losses = state.soloQueue.Losses
	}

	var newMatches []domain.Match
	var participations []domain.PlayerMatch
	if plan.needsMatchList(player.Wins, player.Losses) {
		newMatches, participations, err = s.fetchNewMatches(ctx, puuid, roster)
		if err != nil {
			return nil, err
		}
	}

	if err := s.players.Upsert(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to upsert player: %w", err)
	}

	post := rank.Score(player.Tier, player.Division, player.LeaguePoints)
	if pre, ok := plan.priorScore(); !ok || pre != post {
		record := domain.RankHistory{
			PUUID:        puuid,
			Tier:         player.Tier,
			Division:     player.Division,
			LeaguePoints: player.LeaguePoints,
			Wins:         player.Wins,
			Losses:       player.Losses,
			Score:        post,
			RecordedAt:   player.LastUpdatedAt,
		}
		if err := s.history.Append(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to append rank history: %w", err)
		}
	}

	if err := s.matches.UpsertBatch(ctx, newMatches, participations); err != nil {
		return nil, fmt.Errorf("failed to store matches: %w", err)
	}

	return player, nil
}

type entityState struct {
	summoner   *riot.Summoner
	soloQueue  *riot.LeagueEntry
	activeGame *riot.CurrentGameInfo
}

func (s *SyncService) fetchState(ctx context.Context, puuid string) (*entityState, error) {
	state := &entityState{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summoner, err := s.riot.GetSummoner(gctx, puuid)
		if err != nil {
			return fmt.Errorf("failed to fetch summoner: %w", err)
		}
		state.summoner = summoner
		return nil
	})
	g.Go(func() error {
		entries, err := s.riot.GetLeagueEntries(gctx, puuid)
		if err != nil {
			return fmt.Errorf("failed to fetch league entries: %w", err)
		}
		for i := range entries {
			if entries[i].QueueType == constants.RankedSoloQueueType {
				state.soloQueue = &entries[i]
				break
			}
		}
		return nil
	})
	g.Go(func() error {
		// live status is optional, absence or failure must not fail
		// the entry
		game, err := s.riot.GetActiveGame(gctx, puuid)
		if err != nil {
			return nil
		}
		state.activeGame = game
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *SyncService) fetchNewMatches(ctx context.Context, puuid string, roster *rosterIndex) ([]domain.Match, []domain.PlayerMatch, error) {
	ids, err := s.riot.GetMatchIDs(ctx, puuid, constants.RankedSoloQueueID, s.cfg.MatchCount)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list match ids: %w", err)
	}

	known, err := s.matches.FilterKnown(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to filter known matches: %w", err)
	}

	var newMatches []domain.Match
	var participations []domain.PlayerMatch

	for _, id := range ids {
		if known[id] {
			// a match cached before this player entered the roster can
			// lack their participation row; rebuild it from the stored
			// copy, a match detail is never fetched twice
			repaired, err := s.repairParticipations(ctx, id, puuid, roster)
			if err != nil {
				s.logger.Warn().Err(err).Str("match_id", id).Msg("failed to read stored match")
				continue
			}
			participations = append(participations, repaired...)
			continue
		}

		data, err := s.riot.GetMatch(ctx, id)
		if err != nil {
			// skip just this match, it resurfaces next listing
			s.logger.Warn().Err(err).Str("match_id", id).Msg("failed to fetch match")
			continue
		}
		if data.Info.QueueID != constants.RankedSoloQueueID {
			continue
		}

		match := domain.Match{
			MatchID:     data.Metadata.MatchID,
			QueueID:     data.Info.QueueID,
			GameEndedAt: time.UnixMilli(data.Info.GameEndTimestamp).UTC(),
			FetchedAt:   time.Now().UTC(),
		}
		for _, p := range data.Info.Participants {
			match.Participants = append(match.Participants, domain.MatchParticipant{
				PUUID:    p.PUUID,
				Win:      p.Win,
				Champion: p.ChampionName,
				Kills:    p.Kills,
				Deaths:   p.Deaths,
				Assists:  p.Assists,
			})
			if roster.contains(p.PUUID, p.RiotIDGameName, p.RiotIDTagline) {
				participations = append(participations, domain.PlayerMatch{
					PUUID:    p.PUUID,
					MatchID:  match.MatchID,
					Win:      p.Win,
					Champion: p.ChampionName,
					Kills:    p.Kills,
					Deaths:   p.Deaths,
					Assists:  p.Assists,
					PlayedAt: match.GameEndedAt,
				})
			}
		}
		newMatches = append(newMatches, match)
	}

	return newMatches, participations, nil
}

func (s *SyncService) repairParticipations(ctx context.Context, matchID, puuid string, roster *rosterIndex) ([]domain.PlayerMatch, error) {
	stored, err := s.matches.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, nil
	}

	var participations []domain.PlayerMatch
	for _, p := range stored.Participants {
		if p.PUUID != puuid && !roster.contains(p.PUUID, "", "") {
			continue
		}
		participations = append(participations, domain.PlayerMatch{
			PUUID:    p.PUUID,
			MatchID:  stored.MatchID,
			Win:      p.Win,
			Champion: p.Champion,
			Kills:    p.Kills,
			Deaths:   p.Deaths,
			Assists:  p.Assists,
			PlayedAt: stored.GameEndedAt,
		})
	}
	return participations, nil
}

func (s *SyncService) recordMilestone(ctx context.Context, event domain.Milestone) {
	if err := s.milestones.Insert(ctx, event); err != nil {
		s.logger.Error().Err(err).Str("kind", event.Kind).Str("puuid", event.PUUID).Msg("failed to record milestone")
		return
	}
	s.metrics.MilestonesEmitted.WithLabelValues(event.Kind).Inc()
	s.logger.Info().
		Str("kind", event.Kind).
		Str("puuid", event.PUUID).
		Str("target_puuid", event.TargetPUUID).
		Msg("milestone recorded")
}

func (s *SyncService) result(ctx context.Context, outcome Outcome) RefreshResult {
	s.metrics.RefreshOutcomes.WithLabelValues(string(outcome)).Inc()

	lastUpdated, err := s.players.LastUpdatedAt(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to read last update time")
	}

	return RefreshResult{
		Outcome:       outcome,
		LastUpdatedAt: lastUpdated,
		FailedRiotIDs: s.failureSet(),
	}
}

func (s *SyncService) storeFailures(failed map[string]bool) {
	s.failedMu.Lock()
	s.lastFailed = failed
	s.failedMu.Unlock()
}

func (s *SyncService) failureSet() map[string]bool {
	s.failedMu.RLock()
	defer s.failedMu.RUnlock()

	set := make(map[string]bool, len(s.lastFailed))
	for id := range s.lastFailed {
		set[id] = true
	}
	return set
}

func (s *SyncService) updateGauges(ctx context.Context, players int) {
	s.metrics.PlayersTracked.Set(float64(players))
	if count, err := s.matches.Count(ctx); err == nil {
		s.metrics.MatchesStored.Set(float64(count))
	}
}

// rosterIndex answers "is this match participant one of ours", either
// by resolved puuid or by the riot id the roster was configured with.
type rosterIndex struct {
	puuids  map[string]bool
	riotIDs map[string]bool
}

func newRosterIndex(roster []domain.RosterEntry) *rosterIndex {
	idx := &rosterIndex{
		puuids:  make(map[string]bool),
		riotIDs: make(map[string]bool, len(roster)),
	}
	for _, entry := range roster {
		idx.riotIDs[strings.ToLower(entry.RiotID())] = true
	}
	return idx
}

func (idx *rosterIndex) addPUUID(puuid string) {
	idx.puuids[puuid] = true
}

func (idx *rosterIndex) contains(puuid, gameName, tagLine string) bool {
	return idx.puuids[puuid] || idx.riotIDs[strings.ToLower(gameName+"#"+tagLine)]
}
