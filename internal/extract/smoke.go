package extract

import (
	"context"
	"fmt"
	"io"

	"github.com/relcheck/relcheck/internal/command"
)

// SmokeTest runs the extracted binary with --version, streaming its output
// so the operator can eyeball the reported version against the release
// tag. The output is never parsed; a clean exit is all this checks.
func SmokeTest(ctx context.Context, runner command.Runner, binaryPath string, stdout, stderr io.Writer) error {
	result, err := runner.StreamRun(ctx, stdout, stderr, binaryPath, "--version")
	if err != nil {
		return fmt.Errorf("execute %s: %w", binaryPath, err)
	}
	if !result.Ok() {
		return fmt.Errorf("%s --version exited with status %d", binaryPath, result.ExitCode)
	}
	return nil
}
