package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadTunables_Defaults(t *testing.T) {
	got := LoadTunables()
	assert.Equal(t, 0.1, got.PaddingRatio)
	assert.Equal(t, 4, got.CropWorkers)
	assert.Equal(t, 0.5, got.MatchThreshold)
}

func TestLoadTunables_FromEnv(t *testing.T) {
	t.Setenv("CROP_PADDING_RATIO", "0.25")
	t.Setenv("CROP_WORKERS", "8")
	t.Setenv("MATCH_THRESHOLD", "0.65")

	got := LoadTunables()
	assert.Equal(t, 0.25, got.PaddingRatio)
	assert.Equal(t, 8, got.CropWorkers)
	assert.Equal(t, 0.65, got.MatchThreshold)
}

func TestLoadTunables_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("CROP_PADDING_RATIO", "lots")
	t.Setenv("CROP_WORKERS", "-3")
	t.Setenv("MATCH_THRESHOLD", "0")

	got := LoadTunables()
	assert.Equal(t, 0.1, got.PaddingRatio)
	assert.Equal(t, 4, got.CropWorkers)
	assert.Equal(t, 0.5, got.MatchThreshold)
}
