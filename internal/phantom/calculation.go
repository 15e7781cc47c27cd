package phantom

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/vk/phantombuild/internal/ctxlog"
	"github.com/vk/phantombuild/internal/fsutil"
)

// SetupCalculation instantiates a run directory: compiled binaries and the
// prefix-named input files are copied in, then the phantomsetup binary runs
// with its output streamed to both the console and <prefix>00.log. On
// success the .in file is copied once more, restoring a pristine copy of the
// input the setup binary may have rewritten in place.
func (p *Phantom) SetupCalculation(ctx context.Context, prefix, runDir, inputDir, phantomDir string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Setting up Phantom calculation", "prefix", prefix)

	run, err := fsutil.Resolve(runDir)
	if err != nil {
		return NewSetupError(err, "resolving run dir")
	}
	input, err := fsutil.Resolve(inputDir)
	if err != nil {
		return NewSetupError(err, "resolving input dir")
	}
	source, err := fsutil.Resolve(phantomDir)
	if err != nil {
		return NewSetupError(err, "resolving phantom dir")
	}

	if err := os.MkdirAll(run, 0o755); err != nil {
		return NewSetupError(err, "creating run dir")
	}

	for _, name := range []string{mainBinary, setupBinary, versionMarker} {
		if err := fsutil.CopyFile(filepath.Join(source, "bin", name), run); err != nil {
			return NewSetupError(err, "copying build artifacts")
		}
	}

	if err := fsutil.CopyFile(filepath.Join(input, prefix+".setup"), run); err != nil {
		return NewSetupError(err, "copying setup file")
	}
	if err := fsutil.CopyFile(filepath.Join(input, prefix+".in"), run); err != nil {
		return NewSetupError(err, "copying in file")
	}

	setupLog, err := os.Create(filepath.Join(run, prefix+"00.log"))
	if err != nil {
		return NewSetupError(err, "creating setup log")
	}

	runErr := p.runner.Run(ctx, run, io.MultiWriter(p.stdout, setupLog), "./"+setupBinary, prefix)
	if closeErr := setupLog.Close(); runErr == nil && closeErr != nil {
		runErr = closeErr
	}
	if runErr != nil {
		logger.Error("Phantom failed to set up calculation", "prefix", prefix)
		return NewSetupError(runErr, "Phantom failed to set up calculation")
	}
	logger.Info("Successfully set up Phantom calculation", "run_dir", fsutil.NicePath(run))

	// phantomsetup rewrites the .in file it was given; put back the
	// original so the run starts from the user's input.
	if err := fsutil.CopyFile(filepath.Join(input, prefix+".in"), run); err != nil {
		return NewSetupError(err, "restoring in file")
	}

	return nil
}
