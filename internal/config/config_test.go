package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Garsondee/Footy-Sense/internal/game"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "footy.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "console", s.LogFormat)
	assert.Equal(t, int64(1), s.Seed)
	assert.False(t, s.AutoResume)
	assert.False(t, s.OtelEnabled)
	assert.Equal(t, 10*time.Second, s.OtelInterval)
	assert.Equal(t, game.DefaultConfig(), s.Game)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := writeConfig(t, `{
		"logLevel": "debug",
		"logFormat": "json",
		"match": { "seed": 42, "quarterSeconds": 600, "autoResume": true },
		"fatigue": { "tired": 35, "reengageChance": 0.5 }
	}`)
	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "json", s.LogFormat)
	assert.Equal(t, int64(42), s.Seed)
	assert.True(t, s.AutoResume)
	assert.Equal(t, 600, s.Game.QuarterSeconds)
	assert.Equal(t, 35, s.Game.Fatigue.Tired)
	assert.InDelta(t, 0.5, s.Game.Fatigue.ReengageChance, 1e-9)
	assert.Equal(t, 4, s.Game.Quarters, "unset keys keep their defaults")
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("FOOTY_MATCH_SEED", "77")
	t.Setenv("FOOTY_LOGLEVEL", "warn")

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(77), s.Seed)
	assert.Equal(t, "warn", s.LogLevel)
}

func TestLoad_FormationOverride(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := writeConfig(t, `{
		"formation": {
			"defender": [[1, 8]],
			"forward": [[38, 15], [34, 15]]
		}
	}`)
	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []game.Point{{X: 1, Y: 8}}, s.Game.Formation[game.RoleDefender])
	assert.Equal(t, []game.Point{{X: 38, Y: 15}, {X: 34, Y: 15}}, s.Game.Formation[game.RoleForward])
	assert.Empty(t, s.Game.Formation[game.RoleMidfielder])
}

func TestLoad_UnknownRole(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := writeConfig(t, `{ "formation": { "ruck": [[20, 15]] } }`)
	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, game.ErrInvalidConfig)
}

func TestLoad_InvalidThresholds(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := writeConfig(t, `{ "fatigue": { "tired": 5 } }`)
	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, game.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "match config")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	_, err := Load("/nonexistent/path/footy.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_FieldAndStaminaOverride(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := writeConfig(t, `{
		"match": { "scoringRange": 3 },
		"field": { "defensiveThird": 0.25, "forwardThird": 0.75, "pocketRows": [10, 11, 19, 20] },
		"stamina": { "chase": -4, "idle": 3 },
		"otel": { "interval": "2s" }
	}`)
	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, s.Game.ScoringRange)
	assert.InDelta(t, 0.25, s.Game.DefensiveThird, 1e-9)
	assert.InDelta(t, 0.75, s.Game.ForwardThird, 1e-9)
	assert.Equal(t, []int{10, 11, 19, 20}, s.Game.PocketRows)
	assert.Equal(t, -4, s.Game.StaminaDelta[game.StateChase])
	assert.Equal(t, 3, s.Game.StaminaDelta[game.StateIdle])
	assert.Equal(t, -3, s.Game.StaminaDelta[game.StateCarry], "unset states keep their defaults")
	assert.Equal(t, 2*time.Second, s.OtelInterval)
}

func TestLoad_StaminaEnvOverride(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("FOOTY_STAMINA_RECOVER", "5")

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5, s.Game.StaminaDelta[game.StateRecover])
}
