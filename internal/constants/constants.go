package constants

import "time"

const (
	RankedSoloQueueID   = 420
	RankedSoloQueueType = "RANKED_SOLO_5x5"
)

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
	CycleTimeout       = 10 * time.Minute
)

const (
	DBMaxOpenConns    = 25
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBatchSize       = 100
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	DefaultHistoryLimit   = 50
	DefaultMilestoneLimit = 20
	MaxListLimit          = 200
)
