package cmd

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("db", "test.db")
	viper.Set("log_level", "debug")
	viper.Set("output", "json")
	t.Setenv("WRAPDEMO_OTEL_ENDPOINT", "http://localhost:4318")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "test.db", cfg.DB)
	assert.True(t, cfg.IsJSON())
	assert.Equal(t, "http://localhost:4318", cfg.Telemetry.Endpoint)
}

func TestLoadConfig_InvalidOutput(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("output", "xml")

	_, err := loadConfig()
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger("warn")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = newLogger("loud")
	assert.Error(t, err)
}
