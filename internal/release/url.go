// Package release constructs GitHub release download URLs and fetches
// artifacts into the working directory via an external download tool.
package release

import "fmt"

// baseURL is the fixed prefix for GitHub release asset downloads.
const baseURL = "https://github.com"

// DownloadURL builds the download URL for a release artifact.
// Pattern: https://github.com/{owner}/{repo}/releases/download/{tag}/{artifact}
func DownloadURL(owner, repo, tag, artifact string) string {
	return fmt.Sprintf("%s/%s/%s/releases/download/%s/%s", baseURL, owner, repo, tag, artifact)
}
