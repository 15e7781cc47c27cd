package app

import (
	"errors"
	"fmt"

	"github.com/vk/phantombuild/internal/phantom"
)

// DefaultLogFile is where the process-wide append log lives unless
// overridden with --log-file.
const DefaultLogFile = "~/.phantom-build.log"

// DefaultPhantomDir is used when no phantom directory is given.
const DefaultPhantomDir = "./phantom"

// Config holds everything one invocation needs. Either PlanPath is set and
// the run and build fields come from the plan file, or the fields are
// populated directly from flags.
type Config struct {
	PlanPath string // HCL plan file; empty means flag mode

	Prefix     string
	RunDirs    []string
	SetupFiles []string
	InFiles    []string
	JobScript  string

	PhantomDir string
	Version    string
	Patches    []string
	Setup      string
	System     string
	ExtraFlags []phantom.MakeOption
	HDF5Dir    string

	LogFile         string
	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates cfg and fills in defaults. Validation happens before
// any external command runs.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.PlanPath == "" {
		if cfg.Prefix == "" {
			return nil, errors.New("run-prefix is required")
		}
		if cfg.Setup == "" {
			return nil, errors.New("phantom-setup is required")
		}
		if cfg.System == "" {
			return nil, errors.New("phantom-system is required")
		}
		if len(cfg.RunDirs) == 0 {
			return nil, errors.New("at least one run-dir is required")
		}
		if len(cfg.RunDirs) != len(cfg.SetupFiles) || len(cfg.RunDirs) != len(cfg.InFiles) {
			return nil, fmt.Errorf(
				"must supply the same number of run-dir, run-setup-file, and run-in-file options (got %d, %d, %d)",
				len(cfg.RunDirs), len(cfg.SetupFiles), len(cfg.InFiles),
			)
		}
	}

	if cfg.PhantomDir == "" {
		cfg.PhantomDir = DefaultPhantomDir
	}
	if cfg.LogFile == "" {
		cfg.LogFile = DefaultLogFile
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return &cfg, nil
}
