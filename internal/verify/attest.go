package verify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/relcheck/relcheck/internal/command"
	"github.com/relcheck/relcheck/internal/config"
)

// attestTool is the external CLI whose exit status decides verification.
const attestTool = "gh"

// Attestor invokes the external attestation-verification CLI. It never
// reinterprets the cryptographic result: the tool's exit status is the
// whole answer.
type Attestor struct {
	runner command.Runner
	log    config.Logger

	// Stdout and Stderr receive the CLI's own report so the operator sees
	// the verification details.
	Stdout io.Writer
	Stderr io.Writer
}

// NewAttestor creates an attestation verifier.
func NewAttestor(runner command.Runner, log config.Logger) *Attestor {
	if log == nil {
		log = config.NopLogger()
	}
	return &Attestor{
		runner: runner,
		log:    log,
		Stdout: io.Discard,
		Stderr: io.Discard,
	}
}

// Verify checks the attestation of file, scoped to the repository owner.
// It returns nil when the external CLI reports success, a *Failed error
// when the CLI ran and rejected the file, and any other error when the CLI
// could not be invoked at all.
func (a *Attestor) Verify(ctx context.Context, file, owner string) error {
	a.log.Debug("verifying attestation", "file", file, "owner", owner)

	result, err := a.runner.StreamRun(ctx, a.Stdout, a.Stderr, attestTool,
		"attestation", "verify", file, "--owner", owner)
	if err != nil {
		return fmt.Errorf("invoke %s: %w", attestTool, err)
	}

	if !result.Ok() {
		return &Failed{File: file, ExitCode: result.ExitCode}
	}

	return nil
}

// Failed reports that the attestation CLI ran and rejected the file.
type Failed struct {
	File     string
	ExitCode int
}

func (f *Failed) Error() string {
	return fmt.Sprintf("attestation verification failed for %s (%s exited %d)",
		f.File, attestTool, f.ExitCode)
}

// IsFailed reports whether err is a verification rejection as opposed to a
// failure to run the CLI.
func IsFailed(err error) bool {
	var failed *Failed
	return errors.As(err, &failed)
}

// FirstLine trims CLI output down to its first non-empty line, for compact
// failure summaries.
func FirstLine(output string) string {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}
