package phantom

import (
	"context"

	"github.com/vk/phantombuild/internal/ctxlog"
	"github.com/vk/phantombuild/internal/fsutil"
)

// ApplyPatch applies a single patch file to the working copy in dir. A patch
// that does not apply cleanly, including one already applied, fails with a
// PatchError.
func (p *Phantom) ApplyPatch(ctx context.Context, dir, patch string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Applying patch to Phantom")

	phantomDir, err := fsutil.Resolve(dir)
	if err != nil {
		return NewPatchError(err, "resolving phantom dir")
	}
	patchFile, err := fsutil.Resolve(patch)
	if err != nil {
		return NewPatchError(err, "resolving patch file")
	}

	logger.Info("Patch file", "patch", fsutil.NicePath(patchFile))

	if err := p.runner.Run(ctx, phantomDir, p.stdout, "git", "apply", patchFile); err != nil {
		logger.Error("Failed to patch Phantom", "patch", fsutil.NicePath(patchFile))
		return NewPatchError(err, "failed to patch Phantom")
	}

	logger.Info("Successfully patched Phantom")
	return nil
}
