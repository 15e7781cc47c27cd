// Package testutil provides shared test doubles for the pipeline, chiefly a
// scripted fake command runner so tests never spawn git, make, or Slurm.
package testutil

import (
	"context"
	"io"
	"strings"
)

// Call records one external command invocation.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// Argv renders the call as a single command line, the key used to script
// outputs and errors.
func (c Call) Argv() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// FakeRunner implements phantom.Runner with scripted responses. Outputs and
// Errors are keyed by the full command line (see Call.Argv). OnRun, when
// set, is invoked for every streamed command so tests can fake side effects
// such as a clone creating directories or make emitting output.
type FakeRunner struct {
	Outputs map[string]string
	Errors  map[string]error
	OnRun   func(c Call, out io.Writer) error

	Calls []Call
}

func (r *FakeRunner) record(dir, name string, args []string) Call {
	c := Call{Dir: dir, Name: name, Args: args}
	r.Calls = append(r.Calls, c)
	return c
}

// Output returns the scripted output (and error) for the command line.
func (r *FakeRunner) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	c := r.record(dir, name, args)
	return r.Outputs[c.Argv()], r.Errors[c.Argv()]
}

// Run invokes OnRun for side effects, then returns the scripted error.
func (r *FakeRunner) Run(ctx context.Context, dir string, out io.Writer, name string, args ...string) error {
	c := r.record(dir, name, args)
	if r.OnRun != nil {
		if err := r.OnRun(c, out); err != nil {
			return err
		}
	}
	return r.Errors[c.Argv()]
}

// CommandLines returns every recorded invocation as a command line, in order.
func (r *FakeRunner) CommandLines() []string {
	lines := make([]string, 0, len(r.Calls))
	for _, c := range r.Calls {
		lines = append(lines, c.Argv())
	}
	return lines
}

// Issued reports whether any recorded command line starts with prefix.
func (r *FakeRunner) Issued(prefix string) bool {
	for _, line := range r.CommandLines() {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
