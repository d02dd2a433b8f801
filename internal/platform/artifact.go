package platform

import "fmt"

// DefaultArtifact builds the conventional release artifact filename for a
// repository on the given platform.
// Pattern: {repo}_{tag}_{os}_{arch}.tar.gz
func DefaultArtifact(repo, tag string, info *Info) string {
	return fmt.Sprintf("%s_%s_%s_%s.tar.gz", repo, tag, info.OS, info.Arch)
}
