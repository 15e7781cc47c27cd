package phantom

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Runner invokes external commands. The pipeline depends on this interface
// rather than os/exec directly so tests can substitute a scripted fake.
type Runner interface {
	// Output runs the command in dir and returns its trimmed combined
	// stdout and stderr. A non-zero exit is returned as an error that
	// includes the captured output.
	Output(ctx context.Context, dir, name string, args ...string) (string, error)

	// Run runs the command in dir, streaming its combined stdout and
	// stderr to out one line at a time. It returns an error on non-zero
	// exit.
	Run(ctx context.Context, dir string, out io.Writer, name string, args ...string) error
}

// ExecRunner is the os/exec-backed Runner used outside of tests.
type ExecRunner struct{}

func (ExecRunner) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	text := strings.TrimSpace(string(out))
	if err != nil {
		return text, fmt.Errorf("%s %s failed: %w: %s", name, strings.Join(args, " "), err, text)
	}
	return text, nil
}

func (ExecRunner) Run(ctx context.Context, dir string, out io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	// StdoutPipe set cmd.Stdout to the write end of the pipe; sharing it
	// with Stderr gives the child one fd carrying both streams, so line
	// interleaving matches what a terminal would see.
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	streamErr := streamLines(stdout, out)

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("%s %s failed: %w", name, strings.Join(args, " "), err)
	}
	return streamErr
}

// streamLines copies r to out one line at a time. Errors from the sink are
// ignored and lines of any length are carried through whole, so the pipe
// always drains and Wait can reap the process. A missing trailing newline
// on the final line is added.
func streamLines(r io.Reader, out io.Writer) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			if !strings.HasSuffix(line, "\n") {
				line += "\n"
			}
			io.WriteString(out, line)
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
