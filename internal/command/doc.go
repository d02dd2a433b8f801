// Package command wraps external tool execution behind a Runner interface
// returning structured results (exit code plus captured output).
//
// relcheck delegates downloading, archive extraction, and attestation
// verification to pre-existing CLI tools; every one of those invocations
// goes through this package so the pipeline can be tested with a scripted
// FakeRunner instead of the real tools.
package command
