package phantom

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/phantombuild/internal/testutil"
)

// newPhantomDir lays out the minimal source tree a build needs.
func newPhantomDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "build"), 0o755))
	return dir
}

func TestBuild_MakeInvocation(t *testing.T) {
	t.Parallel()

	runner := &testutil.FakeRunner{}
	pb := New(runner, &bytes.Buffer{})
	dir := newPhantomDir(t)

	err := pb.Build(context.Background(), BuildOptions{
		Dir:    dir,
		Setup:  "disc",
		System: "gfortran",
	})
	require.NoError(t, err)

	require.Len(t, runner.Calls, 1)
	call := runner.Calls[0]
	assert.Equal(t, "make", call.Name)
	assert.Equal(t, []string{"SETUP=disc", "SYSTEM=gfortran", "phantom", "setup"}, call.Args)
	assert.Equal(t, dir, call.Dir)
}

func TestBuild_ExtraFlagsAppendedInOrder(t *testing.T) {
	t.Parallel()

	runner := &testutil.FakeRunner{}
	pb := New(runner, &bytes.Buffer{})

	err := pb.Build(context.Background(), BuildOptions{
		Dir:    newPhantomDir(t),
		Setup:  "disc",
		System: "gfortran",
		ExtraFlags: []MakeOption{
			{Key: "ISOTHERMAL", Value: "yes"},
			{Key: "DUST", Value: "yes"},
		},
	})
	require.NoError(t, err)

	args := runner.Calls[0].Args
	assert.Equal(t, []string{"ISOTHERMAL=yes", "DUST=yes"}, args[len(args)-2:])
}

func TestBuild_HDF5(t *testing.T) {
	t.Parallel()

	runner := &testutil.FakeRunner{}
	pb := New(runner, &bytes.Buffer{})
	hdf5Dir := t.TempDir()

	err := pb.Build(context.Background(), BuildOptions{
		Dir:     newPhantomDir(t),
		Setup:   "disc",
		System:  "gfortran",
		HDF5Dir: hdf5Dir,
	})
	require.NoError(t, err)

	args := runner.Calls[0].Args
	assert.Contains(t, args, "HDF5=yes")
	assert.Contains(t, args, "HDF5ROOT="+hdf5Dir)
}

func TestBuild_MissingHDF5Dir(t *testing.T) {
	t.Parallel()

	runner := &testutil.FakeRunner{}
	pb := New(runner, &bytes.Buffer{})

	err := pb.Build(context.Background(), BuildOptions{
		Dir:     newPhantomDir(t),
		Setup:   "disc",
		System:  "gfortran",
		HDF5Dir: filepath.Join(t.TempDir(), "does-not-exist"),
	})

	var notFound *HDF5NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Empty(t, runner.Calls, "no build may be invoked when the HDF5 directory is missing")
}

func TestBuild_CapturesOutputToTruncatedLog(t *testing.T) {
	t.Parallel()

	dir := newPhantomDir(t)
	buildLog := filepath.Join(dir, "build", "build_output.log")
	require.NoError(t, os.WriteFile(buildLog, []byte(strings.Repeat("old output\n", 100)), 0o644))

	runner := &testutil.FakeRunner{
		OnRun: func(c testutil.Call, out io.Writer) error {
			io.WriteString(out, "gfortran -O3 ...\n")
			return nil
		},
	}
	pb := New(runner, &bytes.Buffer{})

	err := pb.Build(context.Background(), BuildOptions{Dir: dir, Setup: "disc", System: "gfortran"})
	require.NoError(t, err)

	data, err := os.ReadFile(buildLog)
	require.NoError(t, err)
	assert.Equal(t, "gfortran -O3 ...\n", string(data), "build log must be truncated, not appended")
}

func TestBuild_CompileFailure(t *testing.T) {
	t.Parallel()

	runner := &testutil.FakeRunner{
		Errors: map[string]error{
			"make SETUP=disc SYSTEM=gfortran phantom setup": errors.New("exit status 2"),
		},
	}
	pb := New(runner, &bytes.Buffer{})

	err := pb.Build(context.Background(), BuildOptions{Dir: newPhantomDir(t), Setup: "disc", System: "gfortran"})

	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
}
