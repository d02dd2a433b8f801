// Package platform detects the host OS, architecture, and Linux
// distribution details. relcheck uses the result to derive the default
// release artifact name for the current machine and to log a diagnostic
// line about the environment the verification ran on. Distribution
// detection uses gopsutil and falls back gracefully when it fails.
package platform

import "context"

// Info contains platform detection information.
type Info struct {
	OS       string // "linux", "darwin", "windows"
	Arch     string // "amd64", "arm64" (normalized)
	ArchRaw  string // original GOARCH value
	Platform string // distro ID (Linux only, e.g. "ubuntu")
	Version  string // distro version (Linux only, e.g. "22.04")
}

// Describe returns a one-line human-readable platform summary for
// diagnostics, e.g. "linux/amd64 (ubuntu 22.04)".
func (i *Info) Describe() string {
	base := i.OS + "/" + i.Arch
	if i.Platform == "" {
		return base
	}
	if i.Version == "" {
		return base + " (" + i.Platform + ")"
	}
	return base + " (" + i.Platform + " " + i.Version + ")"
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}

// StaticDetector returns a fixed Info; used in tests and when the caller
// already knows the target platform.
type StaticDetector struct {
	Info Info
}

// Detect returns the fixed Info.
func (s *StaticDetector) Detect(ctx context.Context) (*Info, error) {
	info := s.Info
	return &info, nil
}
