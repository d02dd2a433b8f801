// Package prereq checks that the external tools relcheck orchestrates are
// installed before any pipeline step runs. Missing tools are collected and
// reported together rather than failing on the first one.
package prereq

import (
	"context"
	"fmt"
	"strings"

	"github.com/relcheck/relcheck/internal/command"
	"github.com/relcheck/relcheck/internal/config"
)

// Download tool candidates, in order of preference.
var downloaders = []string{"curl", "wget"}

// AttestTool is the external CLI that performs attestation verification.
const AttestTool = "gh"

// ArchiveTool extracts binaries from release tarballs.
const ArchiveTool = "tar"

// Report describes the outcome of the prerequisite check.
type Report struct {
	// Downloader is the download tool selected for the run ("curl" or
	// "wget"); empty when neither is installed.
	Downloader string

	// Missing lists the requirements that could not be satisfied, phrased
	// for the aggregated operator-facing report.
	Missing []string

	// AttestVersion is the first line of `gh --version`, for diagnostics.
	// Empty when the version query failed.
	AttestVersion string
}

// Ok reports whether all prerequisites were satisfied.
func (r *Report) Ok() bool {
	return len(r.Missing) == 0
}

// Checker probes for the external tools through a Runner.
type Checker struct {
	runner command.Runner
	log    config.Logger
}

// NewChecker creates a prerequisite checker.
func NewChecker(runner command.Runner, log config.Logger) *Checker {
	if log == nil {
		log = config.NopLogger()
	}
	return &Checker{runner: runner, log: log}
}

// Check probes every required tool and returns an aggregated report.
// needArchive should be true when binary verification was requested, since
// only that mode extracts from the tarball.
func (c *Checker) Check(ctx context.Context, needArchive bool) *Report {
	report := &Report{}

	for _, tool := range downloaders {
		if path, err := c.runner.LookPath(tool); err == nil {
			report.Downloader = tool
			c.log.Debug("found download tool", "tool", tool, "path", path)
			break
		}
	}
	if report.Downloader == "" {
		report.Missing = append(report.Missing,
			fmt.Sprintf("a download tool (%s)", strings.Join(downloaders, " or ")))
	}

	if path, err := c.runner.LookPath(AttestTool); err == nil {
		c.log.Debug("found attestation CLI", "tool", AttestTool, "path", path)
		report.AttestVersion = c.attestVersion(ctx)
	} else {
		report.Missing = append(report.Missing,
			fmt.Sprintf("the %s CLI (attestation verification)", AttestTool))
	}

	if needArchive {
		if path, err := c.runner.LookPath(ArchiveTool); err == nil {
			c.log.Debug("found archive tool", "tool", ArchiveTool, "path", path)
		} else {
			report.Missing = append(report.Missing,
				fmt.Sprintf("the %s archive tool (binary extraction)", ArchiveTool))
		}
	}

	return report
}

// attestVersion asks the attestation CLI for its version. Failure here is
// only a lost diagnostic, never an error.
func (c *Checker) attestVersion(ctx context.Context) string {
	result, err := c.runner.Run(ctx, AttestTool, "--version")
	if err != nil || !result.Ok() {
		c.log.Warn("could not query attestation CLI version", "tool", AttestTool, "err", err)
		return ""
	}

	line := result.Stdout
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	return strings.TrimSpace(line)
}
