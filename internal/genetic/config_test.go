package genetic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"PopulationTooSmall", func(c *Config) { c.PopulationSize = 1 }, "PopulationSize"},
		{"ElitesFillPopulation", func(c *Config) { c.EliteCount = c.PopulationSize }, "EliteCount"},
		{"TournamentLargerThanPopulation", func(c *Config) { c.TournamentSize = c.PopulationSize + 1 }, "TournamentSize"},
		{"CrossoverAboveOne", func(c *Config) { c.CrossoverRate = 1.5 }, "CrossoverRate"},
		{"NegativeMutation", func(c *Config) { c.MutationRate = -0.1 }, "MutationRate"},
		{"ZeroGenerations", func(c *Config) { c.MaxGenerations = 0 }, "MaxGenerations"},
		{"NegativeTolerance", func(c *Config) { c.Tolerance = -1 }, "Tolerance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
