// Package config loads pipeline configuration from the environment.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	AppName     = "garmentpipe"
	EnvFileName = "config.env"
)

// LoadEnvFile loads environment variables from the config file in the user's
// config directory. Errors are ignored since the file may not exist.
func LoadEnvFile() {
	configBase, err := os.UserConfigDir()
	if err != nil {
		return
	}
	configPath := filepath.Join(configBase, AppName, EnvFileName)
	_ = godotenv.Load(configPath)
}

// Tunables are the empirically chosen pipeline constants, overridable per
// deployment. Values come from the environment; unset or invalid values
// fall back to the defaults used by the original product.
type Tunables struct {
	// PaddingRatio expands each detected bounding box before cropping.
	PaddingRatio float64
	// CropWorkers bounds concurrent per-item crops.
	CropWorkers int
	// MatchThreshold is the minimum weighted score to accept a closet match.
	MatchThreshold float64
}

// LoadTunables reads tunables from the environment.
func LoadTunables() Tunables {
	return Tunables{
		PaddingRatio:   envFloat("CROP_PADDING_RATIO", 0.1),
		CropWorkers:    envInt("CROP_WORKERS", 4),
		MatchThreshold: envFloat("MATCH_THRESHOLD", 0.5),
	}
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
