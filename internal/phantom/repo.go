package phantom

import (
	"context"
	"os"
	"path/filepath"
	"slices"

	"github.com/vk/phantombuild/internal/ctxlog"
	"github.com/vk/phantombuild/internal/fsutil"
)

// GetRepository ensures dir holds a working copy of the Phantom repository.
// A missing directory is cloned fresh from upstream; an existing one must
// have a remote origin matching one of the accepted canonical URLs, else the
// pipeline refuses to build the wrong source tree.
func (p *Phantom) GetRepository(ctx context.Context, dir string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Getting Phantom")

	phantomDir, err := fsutil.Resolve(dir)
	if err != nil {
		return NewRepoError(err, "resolving phantom dir")
	}

	if _, err := os.Stat(phantomDir); os.IsNotExist(err) {
		logger.Info("Cloning fresh copy of Phantom", "phantom_dir", fsutil.NicePath(phantomDir))
		if err := os.MkdirAll(filepath.Dir(phantomDir), 0o755); err != nil {
			return NewRepoError(err, "creating parent directory")
		}
		err := p.runner.Run(
			ctx, filepath.Dir(phantomDir), p.stdout,
			"git", "clone", upstreamURL, filepath.Base(phantomDir),
		)
		if err != nil {
			logger.Error("Phantom clone failed", "error", err)
			return NewRepoError(err, "failed to clone repo")
		}
		logger.Info("Phantom successfully cloned")
		return nil
	}

	// The query's exit status is irrelevant: a missing or unreadable
	// origin yields an empty string, which simply fails the match.
	origin, _ := p.runner.Output(ctx, phantomDir, "git", "config", "--local", "--get", "remote.origin.url")
	if !slices.Contains(acceptedOriginURLs, origin) {
		logger.Error("phantom_dir is not Phantom", "phantom_dir", fsutil.NicePath(phantomDir), "origin", origin)
		return NewRepoError(nil, "phantom_dir is not Phantom")
	}

	logger.Info("Phantom already cloned", "phantom_dir", fsutil.NicePath(phantomDir))
	return nil
}
