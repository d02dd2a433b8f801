package config

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/adrg/xdg"
)

// Built-in defaults point at relcheck's own releases, so a bare invocation
// verifies the tool's latest published artifact.
const (
	DefaultOwner = "relcheck"
	DefaultRepo  = "relcheck"
	DefaultTag   = "v0.4.2"
)

// Options is the fully resolved run configuration. It is populated once
// before any pipeline step runs and treated as immutable afterwards.
type Options struct {
	Owner    string // repository owner
	Repo     string // repository name
	Tag      string // release version tag
	Artifact string // artifact filename within the release

	// Binary is the name of the binary to extract from the artifact.
	// Setting it enables binary verification mode.
	Binary string

	// KeyringPath points at an armored GPG keyring. Setting it enables the
	// supplementary detached-signature check.
	KeyringPath string

	Verbose bool
}

// VerifyBinary reports whether binary verification mode is enabled.
func (o *Options) VerifyBinary() bool {
	return o.Binary != ""
}

// Partial is one layer of configuration. Empty fields mean "not set here".
type Partial struct {
	Owner    string
	Repo     string
	Tag      string
	Artifact string
	Binary   string
	Keyring  string
}

// Resolve merges configuration layers into a single Options value.
// Later layers win: Resolve(builtin, file, flags).
func Resolve(layers ...Partial) Options {
	opts := Options{}
	for _, layer := range layers {
		if layer.Owner != "" {
			opts.Owner = layer.Owner
		}
		if layer.Repo != "" {
			opts.Repo = layer.Repo
		}
		if layer.Tag != "" {
			opts.Tag = layer.Tag
		}
		if layer.Artifact != "" {
			opts.Artifact = layer.Artifact
		}
		if layer.Binary != "" {
			opts.Binary = layer.Binary
		}
		if layer.Keyring != "" {
			opts.KeyringPath = layer.Keyring
		}
	}
	return opts
}

// Builtin returns the built-in defaults layer. The artifact name is left
// empty here; it is filled from platform detection when neither the config
// file nor a flag supplies one.
func Builtin() Partial {
	return Partial{
		Owner: DefaultOwner,
		Repo:  DefaultRepo,
		Tag:   DefaultTag,
	}
}

// namePattern covers everything GitHub allows in owner, repository, and tag
// names plus release asset filenames. Anything outside it would need shell
// quoting and is rejected instead, since these values become exec argv
// elements and URL path segments.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Validate checks that the options are fully populated and that every
// value is safe to splice into a URL or an argv.
func (o *Options) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"owner", o.Owner},
		{"repo", o.Repo},
		{"tag", o.Tag},
		{"artifact", o.Artifact},
	}

	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s must not be empty", r.field)
		}
		if !namePattern.MatchString(r.value) {
			return fmt.Errorf("invalid %s %q: only letters, digits, '.', '_' and '-' are allowed", r.field, r.value)
		}
	}

	if o.Binary != "" && !namePattern.MatchString(o.Binary) {
		return fmt.Errorf("invalid binary name %q: only letters, digits, '.', '_' and '-' are allowed", o.Binary)
	}

	return nil
}

// DefaultConfigPath returns the default location of the Lua defaults file,
// following the XDG base directory convention.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "relcheck", "relcheck.lua")
}
