package domain

import (
	"time"
)

type RosterEntry struct {
	GameName string
	TagLine  string
}

func (e RosterEntry) RiotID() string {
	return e.GameName + "#" + e.TagLine
}

type Player struct {
	PUUID         string
	GameName      string
	TagLine       string
	ProfileIconID int
	SummonerLevel int
	Tier          string // empty = unranked
	Division      string
	LeaguePoints  int
	Wins          int
	Losses        int
	InGame        bool
	LastUpdatedAt time.Time
}

func (p Player) RiotID() string {
	return p.GameName + "#" + p.TagLine
}

type RankHistory struct {
	ID           string // nanoid
	PUUID        string
	Tier         string
	Division     string
	LeaguePoints int
	Wins         int
	Losses       int
	Score        int
	RecordedAt   time.Time
}

type MatchParticipant struct {
	PUUID    string `json:"puuid"`
	Win      bool   `json:"win"`
	Champion string `json:"champion"`
	Kills    int    `json:"kills"`
	Deaths   int    `json:"deaths"`
	Assists  int    `json:"assists"`
}

type Match struct {
	MatchID      string
	QueueID      int
	GameEndedAt  time.Time
	Participants []MatchParticipant
	FetchedAt    time.Time
}

type PlayerMatch struct {
	PUUID    string
	MatchID  string
	Win      bool
	Champion string
	Kills    int
	Deaths   int
	Assists  int
	PlayedAt time.Time
}

const (
	MilestonePromoted  = "promoted"
	MilestoneDemoted   = "demoted"
	MilestoneSurpassed = "surpassed"
)

type Milestone struct {
	ID          string // nanoid
	Kind        string
	PUUID       string
	TargetPUUID string
	FromTier    string
	ToTier      string
	ActorScore  int
	TargetScore int
	OccurredAt  time.Time

	// display names, filled on reads only
	GameName       string
	TagLine        string
	TargetGameName string
	TargetTagLine  string
}

type LeaderboardEntry struct {
	PUUID         string
	GameName      string
	TagLine       string
	ProfileIconID int
	SummonerLevel int
	Tier          string
	Division      string
	LeaguePoints  int
	Wins          int
	Losses        int
	Score         int
	InGame        bool
	Unresolved    bool
	RecentMatches []PlayerMatch
}

type Leaderboard struct {
	Entries       []LeaderboardEntry
	LastUpdatedAt time.Time
}
