package phantom

import (
	"context"

	"github.com/vk/phantombuild/internal/ctxlog"
	"github.com/vk/phantombuild/internal/fsutil"
)

// CheckoutVersion pins the working copy in dir to the required commit hash,
// then restores a clean working tree. The clean sequence runs whenever the
// tree is dirty, even if no checkout was needed.
func (p *Phantom) CheckoutVersion(ctx context.Context, dir, commit string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Checking out required Phantom version")

	phantomDir, err := fsutil.Resolve(dir)
	if err != nil {
		return NewRepoError(err, "resolving phantom dir")
	}

	head, _ := p.runner.Output(ctx, phantomDir, "git", "rev-parse", "HEAD")
	shortHash, _ := p.runner.Output(ctx, phantomDir, "git", "rev-parse", "--short", commit)

	if head != commit {
		logger.Info("Checking out required version", "commit", shortHash)
		if err := p.runner.Run(ctx, phantomDir, p.stdout, "git", "checkout", commit); err != nil {
			logger.Error("Failed to checkout required version", "commit", shortHash)
			return NewRepoError(err, "failed to checkout required version")
		}
		logger.Info("Successfully checked out required version")
	} else {
		logger.Info("Required version of Phantom already checked out", "commit", shortHash)
	}

	status, _ := p.runner.Output(ctx, phantomDir, "git", "status", "--porcelain")
	if status == "" {
		return nil
	}

	logger.Info("Cleaning repository")
	cleanSteps := [][]string{
		{"git", "reset", "HEAD"},
		{"git", "clean", "--force"},
		// The asterisk is a literal git pathspec, not a shell glob.
		{"git", "checkout", "--", "*"},
	}
	for _, step := range cleanSteps {
		if err := p.runner.Run(ctx, phantomDir, p.stdout, step[0], step[1:]...); err != nil {
			logger.Error("Failed to clean repo", "error", err)
			return NewRepoError(err, "failed to clean repo")
		}
	}
	logger.Info("Successfully cleaned repo")

	return nil
}
