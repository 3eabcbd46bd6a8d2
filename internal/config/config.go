package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"euchre/internal/domain"
)

type GameConfig struct {
	// TargetScore is the winning score; the standard game plays to ten.
	TargetScore int `json:"target_score"`
	// TurnDurationSeconds bounds how long a seat may sit on its turn before
	// the match handler flags a timeout. Zero disables the timer.
	TurnDurationSeconds int `json:"turn_duration_seconds"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration.
func GetGameConfig() *GameConfig {
	return cfg
}

// GetTargetScore returns the configured winning score, or the standard ten
// when no configuration was loaded or the value is not positive.
func GetTargetScore() int {
	if cfg == nil || cfg.TargetScore <= 0 {
		return domain.DefaultTargetScore
	}
	return cfg.TargetScore
}

// GetTurnDurationSeconds returns the configured turn timer, or zero when
// turns are untimed.
func GetTurnDurationSeconds() int {
	if cfg == nil || cfg.TurnDurationSeconds < 0 {
		return 0
	}
	return cfg.TurnDurationSeconds
}
