package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// GIVEN: No configuration in the environment
	t.Setenv("PORT", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("LOG_LEVEL", "")

	// WHEN: Loading
	cfg, err := Load()

	// THEN: Sensible defaults apply
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "rotation.db", cfg.DBPath)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("DB_PATH", ":memory:")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
}

func TestLoad_InvalidPortFails(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	_, err := Load()

	assert.Error(t, err)
}

func TestLoad_InvalidLogLevelFails(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "shouting")

	_, err := Load()

	assert.Error(t, err)
}
