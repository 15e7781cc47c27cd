package app

import (
	"context"
	"path/filepath"

	"github.com/vk/phantombuild/internal/ctxlog"
	"github.com/vk/phantombuild/internal/fsutil"
	"github.com/vk/phantombuild/internal/phantom"
	"github.com/vk/phantombuild/internal/plan"
)

// runSpec is one fully resolved calculation: where to set it up and which
// input files seed it.
type runSpec struct {
	prefix    string
	dir       string
	setupFile string
	inFile    string
	jobScript string
}

// Run executes the whole pipeline: obtain the repository, pin the version,
// apply patches, compile, then set up (and optionally schedule) each run in
// order. The first failing step aborts everything after it.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer()
		defer a.closeHealthcheckServer(ctx)
	}

	build, runs, err := a.resolve(ctx)
	if err != nil {
		return err
	}

	a.setStage("repository")
	if err := a.pb.GetRepository(ctx, build.Dir); err != nil {
		return err
	}

	if build.Version != "" {
		a.setStage("checkout")
		if err := a.pb.CheckoutVersion(ctx, build.Dir, build.Version); err != nil {
			return err
		}
	}

	for _, patch := range build.Patches {
		a.setStage("patch")
		if err := a.pb.ApplyPatch(ctx, build.Dir, patch); err != nil {
			return err
		}
	}

	a.setStage("build")
	err = a.pb.Build(ctx, phantom.BuildOptions{
		Dir:        build.Dir,
		Setup:      build.Setup,
		System:     build.System,
		HDF5Dir:    build.HDF5Dir,
		ExtraFlags: build.ExtraFlags,
	})
	if err != nil {
		return err
	}

	for _, run := range runs {
		a.setStage("setup")

		// The setup and in files must live in the same directory,
		// named <prefix>.setup and <prefix>.in; the input directory is
		// the parent of the setup file.
		setupFile, err := fsutil.Resolve(run.setupFile)
		if err != nil {
			return err
		}
		inputDir := filepath.Dir(setupFile)

		if err := a.pb.SetupCalculation(ctx, run.prefix, run.dir, inputDir, build.Dir); err != nil {
			return err
		}

		if run.jobScript != "" {
			a.setStage("schedule")
			if err := a.pb.ScheduleJob(ctx, run.dir, run.jobScript); err != nil {
				return err
			}
		}
	}

	a.setStage("done")
	a.logger.Info("All runs completed.", "count", len(runs))
	return nil
}

// resolve turns the configuration into a build description and the ordered
// run list, loading the plan file when one was given.
func (a *App) resolve(ctx context.Context) (plan.Build, []runSpec, error) {
	if a.config.PlanPath != "" {
		p, err := plan.Load(ctx, a.config.PlanPath)
		if err != nil {
			return plan.Build{}, nil, err
		}
		build := p.Phantom
		if build.Dir == "" {
			build.Dir = DefaultPhantomDir
		}
		runs := make([]runSpec, 0, len(p.Runs))
		for _, r := range p.Runs {
			runs = append(runs, runSpec{
				prefix:    r.Prefix,
				dir:       r.Dir,
				setupFile: r.SetupFile,
				inFile:    r.InFile,
				jobScript: r.JobScript,
			})
		}
		return build, runs, nil
	}

	build := plan.Build{
		Dir:        a.config.PhantomDir,
		Version:    a.config.Version,
		Patches:    a.config.Patches,
		Setup:      a.config.Setup,
		System:     a.config.System,
		ExtraFlags: a.config.ExtraFlags,
		HDF5Dir:    a.config.HDF5Dir,
	}

	runs := make([]runSpec, 0, len(a.config.RunDirs))
	for i := range a.config.RunDirs {
		runs = append(runs, runSpec{
			prefix:    a.config.Prefix,
			dir:       a.config.RunDirs[i],
			setupFile: a.config.SetupFiles[i],
			inFile:    a.config.InFiles[i],
			jobScript: a.config.JobScript,
		})
	}
	return build, runs, nil
}
