package config

import (
	"os"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "TURNS", "SEED", "COMMODITIES_FILE",
		"PLANETS", "COLONISTS", "MARKET_MAKERS", "TURN_DELAY",
		"SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != 0 {
		t.Errorf("Port = %d, want 0", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.Turns != 100 {
		t.Errorf("Turns = %d, want 100", cfg.Turns)
	}
	if cfg.Seed != 1 {
		t.Errorf("Seed = %d, want 1", cfg.Seed)
	}
	if cfg.CommoditiesFile != "data/commodities.yaml" {
		t.Errorf("CommoditiesFile = %q, want data/commodities.yaml", cfg.CommoditiesFile)
	}
	if cfg.Planets != 1 {
		t.Errorf("Planets = %d, want 1", cfg.Planets)
	}
	if cfg.Colonists != 5 {
		t.Errorf("Colonists = %d, want 5", cfg.Colonists)
	}
	if cfg.MarketMakers != 1 {
		t.Errorf("MarketMakers = %d, want 1", cfg.MarketMakers)
	}
	if cfg.TurnDelay != 0 {
		t.Errorf("TurnDelay = %v, want 0", cfg.TurnDelay)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 10s", cfg.ShutdownTimeout)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TURNS", "500")
	t.Setenv("SEED", "42")
	t.Setenv("COMMODITIES_FILE", "/etc/commodities.yaml")
	t.Setenv("PLANETS", "3")
	t.Setenv("COLONISTS", "10")
	t.Setenv("MARKET_MAKERS", "2")
	t.Setenv("TURN_DELAY", "250ms")
	t.Setenv("SHUTDOWN_TIMEOUT", "15s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.Turns != 500 {
		t.Errorf("Turns = %d, want 500", cfg.Turns)
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Seed)
	}
	if cfg.CommoditiesFile != "/etc/commodities.yaml" {
		t.Errorf("CommoditiesFile = %q, want /etc/commodities.yaml", cfg.CommoditiesFile)
	}
	if cfg.Planets != 3 {
		t.Errorf("Planets = %d, want 3", cfg.Planets)
	}
	if cfg.Colonists != 10 {
		t.Errorf("Colonists = %d, want 10", cfg.Colonists)
	}
	if cfg.MarketMakers != 2 {
		t.Errorf("MarketMakers = %d, want 2", cfg.MarketMakers)
	}
	if cfg.TurnDelay != 250*time.Millisecond {
		t.Errorf("TurnDelay = %v, want 250ms", cfg.TurnDelay)
	}
	if cfg.ShutdownTimeout != 15*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 15s", cfg.ShutdownTimeout)
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "verbose")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid LOG_LEVEL")
	}
}

func TestLoad_InvalidInts(t *testing.T) {
	for _, key := range []string{"PORT", "TURNS", "SEED", "PLANETS", "COLONISTS", "MARKET_MAKERS"} {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, "not-a-number")

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for invalid %s", key)
			}
		})
	}
}

func TestLoad_RejectsNonPositive(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"PORT", "-1"},
		{"TURNS", "0"},
		{"PLANETS", "0"},
		{"COLONISTS", "-1"},
		{"MARKET_MAKERS", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	for _, key := range []string{"TURN_DELAY", "SHUTDOWN_TIMEOUT"} {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, "not-a-duration")

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for invalid %s", key)
			}
		})
	}
}
