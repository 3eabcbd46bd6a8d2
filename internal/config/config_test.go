package config

import (
	"os"
	"path/filepath"
	"testing"

	"euchre/internal/domain"
)

func TestDefaultsWithoutLoadedConfig(t *testing.T) {
	cfg = nil
	if got := GetTargetScore(); got != domain.DefaultTargetScore {
		t.Fatalf("target score = %d, want %d", got, domain.DefaultTargetScore)
	}
	if got := GetTurnDurationSeconds(); got != 0 {
		t.Fatalf("turn duration = %d, want 0", got)
	}
}

func TestLoadGameConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game_config.json")
	if err := os.WriteFile(path, []byte(`{"target_score": 5, "turn_duration_seconds": 30}`), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := LoadGameConfig(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := GetTargetScore(); got != 5 {
		t.Fatalf("target score = %d, want 5", got)
	}
	if got := GetTurnDurationSeconds(); got != 30 {
		t.Fatalf("turn duration = %d, want 30", got)
	}

	// The loader runs once; a second call with a bad path keeps the result.
	if err := LoadGameConfig("does-not-exist.json"); err != nil {
		t.Fatalf("second load: %v", err)
	}
	if got := GetTargetScore(); got != 5 {
		t.Fatalf("target score after second load = %d, want 5", got)
	}
}
