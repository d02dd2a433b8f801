// Package verify holds the three verification steps of the pipeline: the
// informational SHA-256 checksum report, attestation verification through
// the external gh CLI, and the optional GPG detached-signature check.
//
// Only artifact-level attestation verification gates the run. The checksum
// exists so an operator can cross-check an independently published digest,
// and the GPG check is a best-effort supplement; neither affects the exit
// status.
package verify
