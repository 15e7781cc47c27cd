package phantom

import (
	"context"
	"os"
	"path/filepath"

	"github.com/vk/phantombuild/internal/ctxlog"
	"github.com/vk/phantombuild/internal/fsutil"
)

// buildLogName is the file inside the source tree's build directory that
// captures all make output. It is truncated on every build.
const buildLogName = "build_output.log"

// BuildOptions selects what to compile and how.
type BuildOptions struct {
	Dir        string       // Phantom working copy
	Setup      string       // makefile SETUP variable, e.g. "disc"
	System     string       // makefile SYSTEM variable, e.g. "gfortran"
	HDF5Dir    string       // HDF5 installation; empty disables HDF5
	ExtraFlags []MakeOption // appended KEY=VALUE pairs, in order
}

// Build compiles the phantom and setup targets, capturing all build
// output to build/build_output.log in the working copy.
func (p *Phantom) Build(ctx context.Context, opts BuildOptions) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Building Phantom", "setup", opts.Setup, "system", opts.System)

	phantomDir, err := fsutil.Resolve(opts.Dir)
	if err != nil {
		return NewCompileError(err, "resolving phantom dir")
	}

	args := []string{"SETUP=" + opts.Setup, "SYSTEM=" + opts.System, mainBinary, setupTarget}

	if opts.HDF5Dir != "" {
		hdf5Dir, err := fsutil.Resolve(opts.HDF5Dir)
		if err != nil {
			return NewHDF5NotFoundError(opts.HDF5Dir)
		}
		if _, err := os.Stat(hdf5Dir); err != nil {
			logger.Error("Cannot determine HDF5 library location", "hdf5_dir", fsutil.NicePath(hdf5Dir))
			return NewHDF5NotFoundError(hdf5Dir)
		}
		args = append(args, "HDF5=yes", "HDF5ROOT="+hdf5Dir)
	}

	for _, opt := range opts.ExtraFlags {
		args = append(args, opt.String())
	}

	buildLog := filepath.Join(phantomDir, "build", buildLogName)
	logFile, err := os.Create(buildLog)
	if err != nil {
		return NewCompileError(err, "creating build log")
	}
	defer logFile.Close()

	runErr := p.runner.Run(ctx, phantomDir, logFile, "make", args...)
	if runErr != nil {
		logger.Error("Phantom failed to compile", "build_log", buildLogName)
		return NewCompileError(runErr, "Phantom failed to compile")
	}

	logger.Info("Successfully compiled Phantom", "build_log", buildLogName)
	return nil
}
