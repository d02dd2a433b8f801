package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/cli/safeexec"
)

// Result holds the structured outcome of an external command invocation.
// A nonzero ExitCode is a normal, inspectable result, not a Go error.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Ok reports whether the command exited with status zero.
func (r *Result) Ok() bool {
	return r.ExitCode == 0
}

// Runner abstracts external command execution so that every pipeline step
// can be exercised in tests without the real tools installed.
type Runner interface {
	// Run executes a command and captures its output. An error is returned
	// only when the process could not be started at all; a process that ran
	// and exited nonzero yields a Result with that exit code and a nil error.
	Run(ctx context.Context, name string, args ...string) (*Result, error)

	// StreamRun executes a command with its stdout and stderr wired to the
	// given writers. Same error contract as Run.
	StreamRun(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) (*Result, error)

	// LookPath resolves a tool name to an executable path.
	LookPath(name string) (string, error)
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct{}

// NewExecRunner creates a new production runner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes a command and captures stdout and stderr separately.
func (e *ExecRunner) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	var stdout, stderr bytes.Buffer

	result, err := e.StreamRun(ctx, &stdout, &stderr, name, args...)
	if err != nil {
		return nil, err
	}

	result.Stdout = stdout.String()
	result.Stderr = stderr.String()
	return result, nil
}

// StreamRun executes a command with output wired to the given writers.
func (e *ExecRunner) StreamRun(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) (*Result, error) {
	path, err := e.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("look up %s: %w", name, err)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		// Context cancellation takes precedence over the exit status
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &Result{ExitCode: exitErr.ExitCode()}, nil
		}
		return nil, fmt.Errorf("run %s: %w", name, err)
	}

	return &Result{ExitCode: 0}, nil
}

// LookPath resolves a tool name using safeexec, which avoids resolving
// executables from the current directory on Windows.
func (e *ExecRunner) LookPath(name string) (string, error) {
	return safeexec.LookPath(name)
}
