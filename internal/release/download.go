package release

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/relcheck/relcheck/internal/command"
	"github.com/relcheck/relcheck/internal/config"
)

// Downloader fetches release assets with whichever external download tool
// the prerequisite check selected. No integrity checking happens here;
// correctness of the artifact is established by attestation verification,
// not by the transport.
type Downloader struct {
	runner command.Runner
	tool   string // "curl" or "wget"
	log    config.Logger

	// Stdout and Stderr receive the download tool's progress output.
	Stdout io.Writer
	Stderr io.Writer
}

// NewDownloader creates a downloader around the selected tool.
func NewDownloader(runner command.Runner, tool string, log config.Logger) *Downloader {
	if log == nil {
		log = config.NopLogger()
	}
	return &Downloader{
		runner: runner,
		tool:   tool,
		log:    log,
		Stdout: io.Discard,
		Stderr: io.Discard,
	}
}

// Fetch downloads url into dest. When dest already exists and is non-empty
// the download is skipped and Fetch reports skipped=true, so re-runs are
// idempotent and never clobber a previously inspected file.
func (d *Downloader) Fetch(ctx context.Context, url, dest string) (skipped bool, err error) {
	if fileExists(dest) {
		d.log.Debug("artifact already present, skipping download", "path", dest)
		return true, nil
	}

	args, err := d.args(url, dest)
	if err != nil {
		return false, err
	}

	d.log.Debug("downloading", "tool", d.tool, "url", url, "dest", dest)

	result, err := d.runner.StreamRun(ctx, d.Stdout, d.Stderr, d.tool, args...)
	if err != nil {
		return false, fmt.Errorf("run %s: %w", d.tool, err)
	}
	if !result.Ok() {
		// A partial file from a failed transfer would shadow the failure on
		// the next run, so drop it.
		os.Remove(dest)
		return false, fmt.Errorf("%s exited with status %d downloading %s", d.tool, result.ExitCode, url)
	}

	return false, nil
}

// args builds the tool-specific argument list for a quiet, fail-on-error
// download to a named file.
func (d *Downloader) args(url, dest string) ([]string, error) {
	switch d.tool {
	case "curl":
		return []string{"-fSL", "--output", dest, url}, nil
	case "wget":
		return []string{"-q", "-O", dest, url}, nil
	default:
		return nil, fmt.Errorf("unsupported download tool: %s", d.tool)
	}
}

// fileExists checks whether path is an existing non-empty regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Size() > 0
}
