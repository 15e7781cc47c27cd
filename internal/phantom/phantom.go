package phantom

import "io"

const (
	// upstreamURL is the canonical clone source for the Phantom repository.
	upstreamURL = "https://bitbucket.org/danielprice/phantom.git"

	// Artifacts produced in bin/ by a successful build. The makefile
	// target for the setup binary is "setup"; the artifact it produces
	// is named "phantomsetup".
	mainBinary    = "phantom"
	setupBinary   = "phantomsetup"
	setupTarget   = "setup"
	versionMarker = "phantom_version"
)

// acceptedOriginURLs are the exact remote.origin.url values an existing
// working copy may carry to be considered the Phantom repository.
var acceptedOriginURLs = []string{
	"git@bitbucket.org:danielprice/phantom",
	"git@bitbucket.org:danielprice/phantom.git",
	"https://bitbucket.org/danielprice/phantom",
	"https://bitbucket.org/danielprice/phantom.git",
}

// MakeOption is a single KEY=VALUE make variable. Options are carried as an
// ordered slice so they reach the make argv in the order they were given.
type MakeOption struct {
	Key   string
	Value string
}

func (o MakeOption) String() string { return o.Key + "=" + o.Value }

// Phantom runs the build pipeline stages. It owns no state beyond its
// collaborators: the command runner and the console sink streamed output is
// mirrored to.
type Phantom struct {
	runner Runner
	stdout io.Writer
}

// New returns a Phantom that invokes external commands through runner and
// mirrors streamed subprocess output to stdout.
func New(runner Runner, stdout io.Writer) *Phantom {
	return &Phantom{runner: runner, stdout: stdout}
}
