package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Equal(t, Default(), cfg)
}

func TestLoadMalformedFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window: [not a map"), 0o644))

	cfg := Load(path)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
window:
  title: Night Circuit
track:
  radius: 55
motion:
  auto_speed: 0.05
`), 0o644))

	cfg := Load(path)
	assert.Equal(t, "Night Circuit", cfg.Window.Title)
	assert.InDelta(t, 55, cfg.Track.Radius, 1e-6)
	assert.InDelta(t, 0.05, cfg.Motion.AutoSpeed, 1e-6)

	// Untouched fields keep their defaults.
	def := Default()
	assert.Equal(t, def.Window.Width, cfg.Window.Width)
	assert.Equal(t, def.Camera, cfg.Camera)
}

func TestLoadClampsDegenerateValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
window:
  width: -100
track:
  radius: 0
  control_points: 2
camera:
  smoothing: 7
engine:
  tick_rate: -5
`), 0o644))

	cfg := Load(path)
	def := Default()
	assert.Equal(t, def.Window.Width, cfg.Window.Width)
	assert.InDelta(t, def.Track.Radius, cfg.Track.Radius, 1e-6)
	assert.Equal(t, def.Track.ControlPoints, cfg.Track.ControlPoints)
	assert.InDelta(t, def.Camera.Smoothing, cfg.Camera.Smoothing, 1e-6)
	assert.InDelta(t, def.Engine.TickRate, cfg.Engine.TickRate, 1e-9)
}
