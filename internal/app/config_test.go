package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Prefix:     "disc",
		RunDirs:    []string{"runs/a"},
		SetupFiles: []string{"input/disc.setup"},
		InFiles:    []string{"input/disc.in"},
		Setup:      "disc",
		System:     "gfortran",
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	t.Parallel()

	config, err := NewConfig(validConfig())
	require.NoError(t, err)

	assert.Equal(t, DefaultPhantomDir, config.PhantomDir)
	assert.Equal(t, DefaultLogFile, config.LogFile)
	assert.Equal(t, "text", config.LogFormat)
	assert.Equal(t, "info", config.LogLevel)
}

func TestNewConfig_CountMismatch(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.RunDirs = []string{"runs/a", "runs/b"}

	_, err := NewConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "same number")
}

func TestNewConfig_RequiredFields(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name   string
		mutate func(*Config)
	}{
		{"prefix", func(c *Config) { c.Prefix = "" }},
		{"setup", func(c *Config) { c.Setup = "" }},
		{"system", func(c *Config) { c.System = "" }},
		{"run dirs", func(c *Config) { c.RunDirs = nil }},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tc.mutate(&cfg)
			_, err := NewConfig(cfg)
			require.Error(t, err)
		})
	}
}

func TestNewConfig_PlanModeSkipsFlagValidation(t *testing.T) {
	t.Parallel()

	config, err := NewConfig(Config{PlanPath: "plan.hcl"})
	require.NoError(t, err)
	assert.Equal(t, "plan.hcl", config.PlanPath)
}
