// Package extract pulls a named binary out of a release tarball with the
// external tar tool and smoke-tests the result. Everything here runs only
// when binary verification was requested, and every failure is downgraded
// to a warning by the pipeline.
package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/relcheck/relcheck/internal/command"
	"github.com/relcheck/relcheck/internal/config"
)

// archiveExtensions are the artifact suffixes the extractor understands.
var archiveExtensions = []string{".tar.gz", ".tgz"}

// SupportedArchive reports whether the artifact filename carries a
// recognized archive extension.
func SupportedArchive(artifact string) bool {
	lower := strings.ToLower(artifact)
	for _, ext := range archiveExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Extractor extracts single entries from tarballs via the external tar
// tool.
type Extractor struct {
	runner command.Runner
	log    config.Logger
}

// NewExtractor creates an extractor.
func NewExtractor(runner command.Runner, log config.Logger) *Extractor {
	if log == nil {
		log = config.NopLogger()
	}
	return &Extractor{runner: runner, log: log}
}

// Binary extracts the named entry from the archive into destDir and
// returns the path of the extracted file. The extracted binary is marked
// executable.
func (e *Extractor) Binary(ctx context.Context, archive, binaryName, destDir string) (string, error) {
	if !SupportedArchive(archive) {
		return "", fmt.Errorf("%s is not a recognized archive (%s)",
			archive, strings.Join(archiveExtensions, ", "))
	}

	e.log.Debug("extracting binary", "archive", archive, "binary", binaryName)

	result, err := e.runner.Run(ctx, "tar", "-xzf", archive, "-C", destDir, binaryName)
	if err != nil {
		return "", fmt.Errorf("run tar: %w", err)
	}
	if !result.Ok() {
		detail := strings.TrimSpace(result.Stderr)
		if detail == "" {
			detail = fmt.Sprintf("tar exited with status %d", result.ExitCode)
		}
		return "", fmt.Errorf("extract %s from %s: %s", binaryName, archive, detail)
	}

	dest := filepath.Join(destDir, binaryName)
	info, err := os.Stat(dest)
	if err != nil {
		return "", fmt.Errorf("%s not present after extraction: %w", binaryName, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%s extracted to a non-regular file", binaryName)
	}

	if err := os.Chmod(dest, 0755); err != nil {
		return "", fmt.Errorf("mark %s executable: %w", dest, err)
	}

	return dest, nil
}
