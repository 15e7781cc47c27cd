package phantom

import (
	"context"
	"path/filepath"

	"github.com/vk/phantombuild/internal/ctxlog"
	"github.com/vk/phantombuild/internal/fsutil"
)

// ScheduleJob copies a Slurm job script into the run directory and submits
// it with sbatch from there.
func (p *Phantom) ScheduleJob(ctx context.Context, runDir, jobScript string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Scheduling Phantom calculation")

	run, err := fsutil.Resolve(runDir)
	if err != nil {
		return NewScheduleError(err, "resolving run dir")
	}
	script, err := fsutil.Resolve(jobScript)
	if err != nil {
		return NewScheduleError(err, "resolving job script")
	}

	if err := fsutil.CopyFile(script, run); err != nil {
		return NewScheduleError(err, "copying job script")
	}

	if err := p.runner.Run(ctx, run, p.stdout, "sbatch", filepath.Base(script)); err != nil {
		logger.Error("Failed to schedule calculation", "job_script", fsutil.NicePath(script))
		return NewScheduleError(err, "failed to schedule calculation")
	}

	logger.Info("Successfully scheduled calculation", "job_script", filepath.Base(script))
	return nil
}
