package telemetry

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config controls trace export.
type Config struct {
	Enabled  bool   `env:"WRAPDEMO_OTEL_ENABLED" envDefault:"true" yaml:"enabled"`
	Endpoint string `env:"WRAPDEMO_OTEL_ENDPOINT" yaml:"endpoint"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse telemetry env: %w", err)
	}
	return cfg, nil
}

// Active reports whether Setup will export spans.
func (c Config) Active() bool {
	return c.Enabled && c.Endpoint != ""
}
