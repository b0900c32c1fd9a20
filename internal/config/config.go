package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"league-tracker/internal/domain"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	RiotAPIKey     string
	Roster         []domain.RosterEntry
	PlatformHost   string
	RegionalHost   string
	DatabasePath   string
	ServerPort     string
	AllowedOrigins []string
	LogLevel       string

	FreshnessWindow  time.Duration
	BuildWaitTimeout time.Duration
	RequestInterval  time.Duration
	RefreshInterval  time.Duration
	MatchCount       int
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		RiotAPIKey:     getEnv("RIOT_API_KEY", ""),
		PlatformHost:   getEnv("PLATFORM_HOST", "https://euw1.api.riotgames.com"),
		RegionalHost:   getEnv("REGIONAL_HOST", "https://europe.api.riotgames.com"),
		DatabasePath:   getEnv("DATABASE_PATH", "league-tracker.db"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "*")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	if cfg.RiotAPIKey == "" {
		return nil, fmt.Errorf("RIOT_API_KEY is required")
	}

	roster, err := ParseRoster(getEnv("ROSTER", ""))
	if err != nil {
		return nil, err
	}
	cfg.Roster = roster

	if cfg.FreshnessWindow, err = getDuration("FRESHNESS_WINDOW", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.BuildWaitTimeout, err = getDuration("BUILD_WAIT_TIMEOUT", 25*time.Second); err != nil {
		return nil, err
	}
	if cfg.RequestInterval, err = getDuration("REQUEST_INTERVAL", 1300*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getDuration("REFRESH_INTERVAL", 0); err != nil {
		return nil, err
	}
	if cfg.MatchCount, err = getInt("MATCH_COUNT", 5); err != nil {
		return nil, err
	}

	logger.Info().
		Int("roster_size", len(cfg.Roster)).
		Str("platform_host", cfg.PlatformHost).
		Str("regional_host", cfg.RegionalHost).
		Str("database_path", cfg.DatabasePath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Dur("freshness_window", cfg.FreshnessWindow).
		Dur("build_wait_timeout", cfg.BuildWaitTimeout).
		Dur("request_interval", cfg.RequestInterval).
		Dur("refresh_interval", cfg.RefreshInterval).
		Int("match_count", cfg.MatchCount).
		Msg("configuration loaded")

	return cfg, nil
}

// ParseRoster reads the tracked identities from a comma separated list of
// "Name#Tag" pairs. Order is preserved, it drives the sync order.
func ParseRoster(raw string) ([]domain.RosterEntry, error) {
	var roster []domain.RosterEntry
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, tag, ok := strings.Cut(part, "#")
		name, tag = strings.TrimSpace(name), strings.TrimSpace(tag)
		if !ok || name == "" || tag == "" {
			return nil, fmt.Errorf("invalid roster entry %q, expected Name#Tag", part)
		}
		roster = append(roster, domain.RosterEntry{GameName: name, TagLine: tag})
	}
	if len(roster) == 0 {
		return nil, fmt.Errorf("ROSTER is required")
	}
	return roster, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

var Module = fx.Provide(Load)
