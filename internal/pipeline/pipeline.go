// Package pipeline sequences relcheck's verification steps. The flow is a
// single forward path with no loops:
//
//	CheckPrereqs → Download → Checksum(artifact) → Attest(artifact)
//	  → [Extract → Checksum(binary) → Attest(binary) → SmokeTest]
//
// Only prerequisite failures and artifact-level attestation failures abort
// the run; everything after that guarantee is best-effort and reported as
// warnings. No step is retried, and downloaded or extracted files are left
// in place for the operator.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/relcheck/relcheck/internal/command"
	"github.com/relcheck/relcheck/internal/config"
	"github.com/relcheck/relcheck/internal/extract"
	"github.com/relcheck/relcheck/internal/platform"
	"github.com/relcheck/relcheck/internal/prereq"
	"github.com/relcheck/relcheck/internal/release"
	"github.com/relcheck/relcheck/internal/ui"
	"github.com/relcheck/relcheck/internal/verify"
)

// Pipeline wires the verification steps together around one immutable
// Options value.
type Pipeline struct {
	opts    config.Options
	runner  command.Runner
	printer *ui.Printer
	log     config.Logger

	// WorkDir is where the artifact is downloaded and the binary
	// extracted. Defaults to the current directory.
	WorkDir string

	// Platform carries the detected host platform for diagnostics; may be
	// nil.
	Platform *platform.Info

	// Stdout and Stderr receive the output of the external tools
	// (download progress, the attestation CLI's report, the smoke test).
	Stdout io.Writer
	Stderr io.Writer
}

// New creates a pipeline.
func New(opts config.Options, runner command.Runner, printer *ui.Printer, log config.Logger) *Pipeline {
	if log == nil {
		log = config.NopLogger()
	}
	return &Pipeline{
		opts:    opts,
		runner:  runner,
		printer: printer,
		log:     log,
		WorkDir: ".",
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Run executes the pipeline. The returned error is nil on overall success
// (including runs where only supplementary checks failed) and a *StepError
// with SeverityFatal otherwise.
func (p *Pipeline) Run(ctx context.Context) error {
	report, err := p.checkPrereqs(ctx)
	if err != nil {
		return err
	}

	artifactPath, err := p.download(ctx, report.Downloader)
	if err != nil {
		return err
	}

	p.checksum(artifactPath)

	if err := p.attest(ctx, artifactPath, true); err != nil {
		return err
	}

	if p.opts.KeyringPath != "" {
		p.gpgSupplement(ctx, report.Downloader, artifactPath)
	}

	if p.opts.VerifyBinary() {
		p.binaryPhase(ctx, artifactPath)
	}

	p.printer.Step("done")
	p.printer.Ok("%s %s %s verified", p.opts.Owner+"/"+p.opts.Repo, p.opts.Tag, p.opts.Artifact)
	return nil
}

// checkPrereqs verifies tool availability and prints diagnostics. All
// missing tools are reported together.
func (p *Pipeline) checkPrereqs(ctx context.Context) (*prereq.Report, error) {
	p.printer.Step("checking prerequisites")

	checker := prereq.NewChecker(p.runner, p.log)
	report := checker.Check(ctx, p.opts.VerifyBinary())

	if !report.Ok() {
		for _, missing := range report.Missing {
			p.printer.Error("missing: %s", missing)
		}
		return nil, fatal("prerequisites", fmt.Errorf("%d required tool(s) missing", len(report.Missing)))
	}

	if p.Platform != nil {
		p.printer.Plain("platform: %s", p.Platform.Describe())
	}
	if report.AttestVersion != "" {
		p.printer.Plain("attestation CLI: %s", report.AttestVersion)
	}
	p.printer.Ok("using %s for downloads", report.Downloader)

	return report, nil
}

// download fetches the artifact into the working directory, skipping the
// transfer when the file is already present.
func (p *Pipeline) download(ctx context.Context, tool string) (string, error) {
	url := release.DownloadURL(p.opts.Owner, p.opts.Repo, p.opts.Tag, p.opts.Artifact)
	dest := filepath.Join(p.WorkDir, p.opts.Artifact)

	p.printer.Step("downloading %s", url)

	downloader := release.NewDownloader(p.runner, tool, p.log)
	downloader.Stderr = p.Stderr

	skipped, err := downloader.Fetch(ctx, url, dest)
	if err != nil {
		return "", fatal("download", err)
	}
	if skipped {
		p.printer.Warn("%s already exists, skipping download", p.opts.Artifact)
	} else {
		p.printer.Ok("downloaded %s", p.opts.Artifact)
	}

	return dest, nil
}

// checksum prints the artifact digest for operator cross-checking. The
// digest is informational only, so failures just leave a note.
func (p *Pipeline) checksum(path string) {
	p.printer.Step("computing reference checksum")

	digest, err := verify.SHA256File(path)
	if err != nil {
		p.reportWarning(warning("checksum", err))
		return
	}
	p.printer.Plain("sha256(%s) = %s", filepath.Base(path), digest)
}

// attest runs the external attestation verification. At the artifact level
// a failure is the tool's core correctness failure and aborts the run; at
// the binary level it is a supplementary check and only warns.
func (p *Pipeline) attest(ctx context.Context, path string, isFatal bool) error {
	p.printer.Step("verifying attestation of %s", filepath.Base(path))

	attestor := verify.NewAttestor(p.runner, p.log)
	attestor.Stdout = p.Stdout
	attestor.Stderr = p.Stderr

	err := attestor.Verify(ctx, path, p.opts.Owner)
	if err == nil {
		p.printer.Ok("attestation verified for %s", filepath.Base(path))
		return nil
	}

	if isFatal {
		return fatal("attestation", err)
	}
	p.reportWarning(warning("attestation", err))
	return nil
}

// gpgSupplement downloads the detached signature next to the artifact and
// checks it against the configured keyring. The whole path is best-effort.
func (p *Pipeline) gpgSupplement(ctx context.Context, tool, artifactPath string) {
	p.printer.Step("checking GPG signature (supplementary)")

	url := release.DownloadURL(p.opts.Owner, p.opts.Repo, p.opts.Tag, p.opts.Artifact) + ".asc"
	sigPath := artifactPath + ".asc"

	downloader := release.NewDownloader(p.runner, tool, p.log)
	if _, err := downloader.Fetch(ctx, url, sigPath); err != nil {
		p.reportWarning(warning("gpg", fmt.Errorf("download signature: %w", err)))
		return
	}

	verifier := verify.NewGPGVerifier(p.opts.KeyringPath)
	if err := verifier.VerifyDetached(artifactPath, sigPath); err != nil {
		p.reportWarning(warning("gpg", err))
		return
	}

	p.printer.Ok("GPG signature verified for %s", filepath.Base(artifactPath))
}

// binaryPhase extracts the requested binary and repeats the checks on it.
// Binary attestation support is newer and optional, so every failure in
// this phase is deliberately downgraded to a warning.
func (p *Pipeline) binaryPhase(ctx context.Context, artifactPath string) {
	p.printer.Step("extracting %s", p.opts.Binary)

	if !extract.SupportedArchive(p.opts.Artifact) {
		p.reportWarning(warning("extract",
			fmt.Errorf("%s is not a recognized archive, skipping binary verification", p.opts.Artifact)))
		return
	}

	extractor := extract.NewExtractor(p.runner, p.log)
	binaryPath, err := extractor.Binary(ctx, artifactPath, p.opts.Binary, p.WorkDir)
	if err != nil {
		p.reportWarning(warning("extract", err))
		return
	}
	p.printer.Ok("extracted %s", p.opts.Binary)

	p.checksum(binaryPath)

	p.attest(ctx, binaryPath, false)

	p.smokeTest(ctx, binaryPath)
}

// smokeTest runs the extracted binary with --version so the operator can
// compare the reported version against the release tag.
func (p *Pipeline) smokeTest(ctx context.Context, binaryPath string) {
	p.printer.Step("running %s --version", p.opts.Binary)

	// Force a path with a separator so the lookup never hits $PATH.
	execPath := binaryPath
	if !strings.ContainsRune(execPath, os.PathSeparator) {
		execPath = "." + string(os.PathSeparator) + execPath
	}

	if err := extract.SmokeTest(ctx, p.runner, execPath, p.Stdout, p.Stderr); err != nil {
		p.reportWarning(warning("smoke-test", err))
		return
	}
	p.printer.Ok("%s runs; compare the reported version against %s", p.opts.Binary, p.opts.Tag)
}

// reportWarning prints a warning-severity step failure and logs it.
func (p *Pipeline) reportWarning(err *StepError) {
	p.printer.Warn("%v", err)
	p.log.Warn("step failed", "step", err.Step, "err", err.Err)
}
