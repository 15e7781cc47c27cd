package phantom

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/phantombuild/internal/testutil"
)

func TestScheduleJob(t *testing.T) {
	t.Parallel()

	runDir := t.TempDir()
	script := filepath.Join(t.TempDir(), "slurm.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/bash\n#SBATCH --time=24:00:00\n"), 0o755))

	runner := &testutil.FakeRunner{}
	pb := New(runner, &bytes.Buffer{})

	err := pb.ScheduleJob(context.Background(), runDir, script)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(runDir, "slurm.sh"))

	require.Len(t, runner.Calls, 1)
	assert.Equal(t, "sbatch slurm.sh", runner.Calls[0].Argv())
	assert.Equal(t, runDir, runner.Calls[0].Dir)
}

func TestScheduleJob_SubmitFailure(t *testing.T) {
	t.Parallel()

	runDir := t.TempDir()
	script := filepath.Join(t.TempDir(), "slurm.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/bash\n"), 0o755))

	runner := &testutil.FakeRunner{Errors: map[string]error{
		"sbatch slurm.sh": errors.New("exit status 1"),
	}}
	pb := New(runner, &bytes.Buffer{})

	err := pb.ScheduleJob(context.Background(), runDir, script)

	var schedErr *ScheduleError
	require.ErrorAs(t, err, &schedErr)
}
