package phantom

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/phantombuild/internal/testutil"
)

const originQuery = "git config --local --get remote.origin.url"

func TestGetRepository_AcceptsCanonicalOrigins(t *testing.T) {
	t.Parallel()

	urls := []string{
		"git@bitbucket.org:danielprice/phantom",
		"git@bitbucket.org:danielprice/phantom.git",
		"https://bitbucket.org/danielprice/phantom",
		"https://bitbucket.org/danielprice/phantom.git",
	}

	for _, url := range urls {
		url := url
		t.Run(url, func(t *testing.T) {
			t.Parallel()

			runner := &testutil.FakeRunner{Outputs: map[string]string{originQuery: url}}
			pb := New(runner, &bytes.Buffer{})

			err := pb.GetRepository(context.Background(), t.TempDir())
			require.NoError(t, err)
			assert.False(t, runner.Issued("git clone"), "existing repository must not be cloned")
		})
	}
}

func TestGetRepository_RejectsForeignOrigin(t *testing.T) {
	t.Parallel()

	runner := &testutil.FakeRunner{Outputs: map[string]string{
		originQuery: "https://bitbucket.org/someone/other-code.git",
	}}
	pb := New(runner, &bytes.Buffer{})

	err := pb.GetRepository(context.Background(), t.TempDir())
	require.Error(t, err)

	var repoErr *RepoError
	require.ErrorAs(t, err, &repoErr)
}

func TestGetRepository_RejectsEmptyOrigin(t *testing.T) {
	t.Parallel()

	// A directory that is not a git repository yields no origin at all.
	runner := &testutil.FakeRunner{}
	pb := New(runner, &bytes.Buffer{})

	err := pb.GetRepository(context.Background(), t.TempDir())
	var repoErr *RepoError
	require.ErrorAs(t, err, &repoErr)
}

func TestGetRepository_ClonesWhenAbsent(t *testing.T) {
	t.Parallel()

	runner := &testutil.FakeRunner{}
	pb := New(runner, &bytes.Buffer{})
	dir := filepath.Join(t.TempDir(), "phantom")

	err := pb.GetRepository(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, runner.Calls, 1)
	call := runner.Calls[0]
	assert.Equal(t, "git clone https://bitbucket.org/danielprice/phantom.git phantom", call.Argv())
	assert.Equal(t, filepath.Dir(dir), call.Dir, "clone must run in the parent directory")
}

func TestGetRepository_CloneFailure(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "phantom")
	runner := &testutil.FakeRunner{Errors: map[string]error{
		"git clone https://bitbucket.org/danielprice/phantom.git phantom": errors.New("exit status 128"),
	}}
	pb := New(runner, &bytes.Buffer{})

	err := pb.GetRepository(context.Background(), dir)
	var repoErr *RepoError
	require.ErrorAs(t, err, &repoErr)
}
