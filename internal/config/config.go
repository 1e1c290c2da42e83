package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration for the simulation runner.
type Config struct {
	Port            int // 0 disables the monitor API
	LogLevel        string
	Turns           int
	Seed            int64
	CommoditiesFile string
	Planets         int
	Colonists       int
	MarketMakers    int
	TurnDelay       time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applies defaults,
// and validates values. It returns an error for any invalid value.
func Load() (*Config, error) {
	port, err := getInt("PORT", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}
	if port < 0 {
		return nil, fmt.Errorf("invalid PORT: must be >= 0")
	}

	logLevel := getStr("LOG_LEVEL", "info")
	if !isValidLogLevel(logLevel) {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %q, must be one of: debug, info, warn, error", logLevel)
	}

	turns, err := getInt("TURNS", 100)
	if err != nil {
		return nil, fmt.Errorf("invalid TURNS: %w", err)
	}
	if turns <= 0 {
		return nil, fmt.Errorf("invalid TURNS: must be positive")
	}

	seed, err := getInt64("SEED", 1)
	if err != nil {
		return nil, fmt.Errorf("invalid SEED: %w", err)
	}

	commoditiesFile := getStr("COMMODITIES_FILE", "data/commodities.yaml")

	planets, err := getInt("PLANETS", 1)
	if err != nil {
		return nil, fmt.Errorf("invalid PLANETS: %w", err)
	}
	if planets <= 0 {
		return nil, fmt.Errorf("invalid PLANETS: must be positive")
	}

	colonists, err := getInt("COLONISTS", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid COLONISTS: %w", err)
	}
	if colonists < 0 {
		return nil, fmt.Errorf("invalid COLONISTS: must be >= 0")
	}

	makers, err := getInt("MARKET_MAKERS", 1)
	if err != nil {
		return nil, fmt.Errorf("invalid MARKET_MAKERS: %w", err)
	}
	if makers < 0 {
		return nil, fmt.Errorf("invalid MARKET_MAKERS: must be >= 0")
	}

	turnDelay, err := getDuration("TURN_DELAY", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid TURN_DELAY: %w", err)
	}

	shutdownTimeout, err := getDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	return &Config{
		Port:            port,
		LogLevel:        logLevel,
		Turns:           turns,
		Seed:            seed,
		CommoditiesFile: commoditiesFile,
		Planets:         planets,
		Colonists:       colonists,
		MarketMakers:    makers,
		TurnDelay:       turnDelay,
		ShutdownTimeout: shutdownTimeout,
	}, nil
}

func getStr(key, defaultVal string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v
}

func getInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(v)
}

func getInt64(key string, defaultVal int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.ParseInt(v, 10, 64)
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return time.ParseDuration(v)
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
