package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThakurMayank5/Collect-Server/game"
)

func parse(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	var cfg Config
	parser, err := kong.New(&cfg, kong.Name("collect-server"), kong.Exit(func(int) {}))
	require.NoError(t, err)
	if _, err := parser.Parse(args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := parse(t)
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Second, cfg.TickInterval)
	assert.Equal(t, []string{"*"}, cfg.AllowOrigins)
	assert.True(t, cfg.AllowsAnyOrigin())
	assert.Equal(t, game.DefaultConfig(), cfg.Game())
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("PORT", "4100")
	t.Setenv("ROUND_DURATION", "90s")
	t.Setenv("ALLOW_ORIGINS", "https://a.example,https://b.example")

	cfg, err := parse(t, "--max-collectibles=12", "--palette=#000000,#ffffff")
	require.NoError(t, err)

	assert.Equal(t, 4100, cfg.Port)
	assert.Equal(t, 90*time.Second, cfg.RoundDuration)
	assert.Equal(t, 12, cfg.MaxCollectibles)
	assert.Equal(t, []string{"#000000", "#ffffff"}, cfg.Game().Palette)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowOrigins)
	assert.False(t, cfg.AllowsAnyOrigin())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "floor above ceiling", args: []string{"--min-collectibles=11"}},
		{name: "batch above ceiling", args: []string{"--initial-collectibles=20"}},
		{name: "batch below floor", args: []string{"--initial-collectibles=2"}},
		{name: "empty batch", args: []string{"--initial-collectibles=0", "--min-collectibles=0"}},
		{name: "zero ceiling", args: []string{"--max-collectibles=0", "--min-collectibles=0", "--initial-collectibles=0"}},
		{name: "sub-second round", args: []string{"--round-duration=500ms"}},
		{name: "bad color", args: []string{"--palette=red"}},
		{name: "bad port", args: []string{"--port=70000"}},
		{name: "unknown log level", args: []string{"--log-level=loud"}},
		{name: "negative field", args: []string{"--field-width=-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestParse_BatchBetweenFloorAndCeiling(t *testing.T) {
	cfg, err := parse(t, "--initial-collectibles=3", "--min-collectibles=2", "--max-collectibles=4")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Game().InitialCollectibles)
	assert.Equal(t, 2, cfg.Game().MinCollectibles)
}

func TestLoadEnv(t *testing.T) {
	require.NoError(t, os.Unsetenv("MESSAGE_BURST"))
	t.Cleanup(func() { os.Unsetenv("MESSAGE_BURST") })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MESSAGE_BURST=7\n"), 0o644))

	LoadEnv(path)

	cfg, err := parse(t)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MessageBurst)

	assert.NotPanics(t, func() {
		LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	})
}
