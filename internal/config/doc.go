// Package config holds the immutable run configuration for relcheck.
//
// Configuration is resolved once at startup from three layers: built-in
// defaults, an optional sandboxed Lua defaults file, and command-line
// flags, in increasing precedence. The resulting Options value is passed
// explicitly to every pipeline step and never mutated afterwards.
package config
