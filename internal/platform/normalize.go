package platform

import (
	"fmt"
	"strings"
)

// normalizeArch converts GOARCH-style values to the architecture names
// used in release artifact filenames. Only amd64 and arm64 artifacts are
// published.
func normalizeArch(arch string) (string, error) {
	switch arch {
	case "amd64", "x86_64":
		return "amd64", nil
	case "arm64", "aarch64":
		return "arm64", nil
	default:
		return "", fmt.Errorf("unsupported architecture: %s (amd64 and arm64 only)", arch)
	}
}

// normalizeToken lowercases and trims a distro identifier from gopsutil.
func normalizeToken(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}
