package app

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"

	"github.com/vk/phantombuild/internal/fsutil"
	"github.com/vk/phantombuild/internal/phantom"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	logFile *os.File
	config  *Config
	pb      *phantom.Phantom

	stage      atomic.Value // current pipeline stage, for the healthcheck
	httpServer *http.Server
}

// NewApp constructs the application: it opens the persistent log file in
// append mode, builds the dual-sink logger, and wires the pipeline to the
// given command runner.
func NewApp(outW io.Writer, cfg *Config, runner phantom.Runner) (*App, error) {
	logPath, err := fsutil.Resolve(cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("resolving log file: %w", err)
	}
	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	a := &App{
		outW:    outW,
		logger:  newLogger(cfg.LogLevel, cfg.LogFormat, outW, logFile),
		logFile: logFile,
		config:  cfg,
		pb:      phantom.New(runner, outW),
	}
	a.stage.Store("idle")
	a.logger.Debug("Logger configured successfully.", "log_file", fsutil.NicePath(logPath))
	return a, nil
}

// Close releases the persistent log file.
func (a *App) Close() error {
	return a.logFile.Close()
}

func (a *App) setStage(stage string) {
	a.stage.Store(stage)
	a.logger.Debug("Pipeline stage changed.", "stage", stage)
}
