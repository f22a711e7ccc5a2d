package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 500.0, cfg.Playfield.HalfWidth())
	assert.Equal(t, 5, cfg.Player.MaxHealth)
	assert.Equal(t, 10, cfg.Player.NewGameHealth)
}

func TestLoadReaderOverlaysDefaults(t *testing.T) {
	src := `
player:
  speed: 300
enemy:
  max_per_wave: 6
collision:
  detector: grid
  attacker_policy: skip
seed: arcade
`
	cfg, err := LoadReader(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, 300.0, cfg.Player.Speed)
	assert.Equal(t, 40.0, cfg.Player.Width, "unset keys keep defaults")
	assert.Equal(t, 6, cfg.Enemy.MaxPerWave)
	assert.Equal(t, "grid", cfg.Collision.Detector)
	assert.Equal(t, "skip", cfg.Collision.AttackerPolicy)
	assert.Equal(t, "arcade", cfg.Seed)
}

func TestLoadReaderEmptyInput(t *testing.T) {
	cfg, err := LoadReader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadReaderRejectsUnknownKeys(t *testing.T) {
	_, err := LoadReader(strings.NewReader("playr:\n  speed: 1\n"))
	assert.Error(t, err)
}

func TestLoadReaderValidates(t *testing.T) {
	_, err := LoadReader(strings.NewReader("enemy:\n  min_per_wave: 5\n  max_per_wave: 2\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "enemy wave range")
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Collision.Detector = "quadtree"
	cfg.Audio.Volume = 2

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision.detector")
	assert.Contains(t, err.Error(), "audio.volume")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestWriteRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = "roundtrip"

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, cfg))

	back, err := LoadReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LogConfig{Level: "debug"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = NewLogger(LogConfig{Level: "warn", Development: true})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))

	_, err = NewLogger(LogConfig{Level: "loud"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidateLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Log.Level = "verbose"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestNewLoggerWritesToPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	logger, err := NewLogger(LogConfig{Level: "info", Path: path})
	require.NoError(t, err)
	logger.Info("hello")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}
