package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.FirstRoundBudget <= cfg.RoundBudget {
		t.Errorf("first-round budget (%v) must exceed per-round budget (%v)",
			cfg.FirstRoundBudget, cfg.RoundBudget)
	}
	if cfg.MaxLevel <= 0 {
		t.Errorf("MaxLevel = %d", cfg.MaxLevel)
	}
	if cfg.MaxOutputLength <= 0 {
		t.Errorf("MaxOutputLength = %d", cfg.MaxOutputLength)
	}
	if cfg.ReplayDir == "" {
		t.Error("ReplayDir is empty")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JUDGER_ROUND_MS", "250")
	t.Setenv("JUDGER_MAX_LEVEL", "7")

	cfg := Load()
	if cfg.RoundBudget != 250*time.Millisecond {
		t.Errorf("RoundBudget = %v, want 250ms", cfg.RoundBudget)
	}
	if cfg.MaxLevel != 7 {
		t.Errorf("MaxLevel = %d, want 7", cfg.MaxLevel)
	}
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("JUDGER_MAX_LEVEL", "seven")

	cfg := Load()
	if cfg.MaxLevel != 3 {
		t.Errorf("MaxLevel = %d, want default 3", cfg.MaxLevel)
	}
}
