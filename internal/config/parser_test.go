package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseStringFullTable(t *testing.T) {
	partial, err := ParseString(`
		relcheck = {
			owner = "acme",
			repo = "tool",
			tag = "v1.0.0",
			artifact = "tool-linux.tar.gz",
			binary = "tool",
			keyring = "/home/op/keys.asc",
		}
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Partial{
		Owner:    "acme",
		Repo:     "tool",
		Tag:      "v1.0.0",
		Artifact: "tool-linux.tar.gz",
		Binary:   "tool",
		Keyring:  "/home/op/keys.asc",
	}
	if partial != want {
		t.Errorf("ParseString() = %+v, want %+v", partial, want)
	}
}

func TestParseStringPartialTable(t *testing.T) {
	partial, err := ParseString(`relcheck = { owner = "acme" }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if partial.Owner != "acme" {
		t.Errorf("Owner = %q, want %q", partial.Owner, "acme")
	}
	if partial.Repo != "" || partial.Tag != "" || partial.Artifact != "" {
		t.Errorf("unset fields should stay empty, got %+v", partial)
	}
}

func TestParseStringIgnoresUnknownFields(t *testing.T) {
	partial, err := ParseString(`
		relcheck = {
			owner = "acme",
			totally_unknown = "value",
			nested = { a = 1 },
		}
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if partial.Owner != "acme" {
		t.Errorf("Owner = %q, want %q", partial.Owner, "acme")
	}
}

func TestParseStringErrors(t *testing.T) {
	tests := []struct {
		name    string
		luaCode string
		wantErr string
	}{
		{
			name:    "syntax_error",
			luaCode: `relcheck = {`,
			wantErr: "Lua syntax error",
		},
		{
			name:    "missing_table",
			luaCode: `x = 1`,
			wantErr: "missing or invalid 'relcheck' table",
		},
		{
			name:    "table_is_string",
			luaCode: `relcheck = "nope"`,
			wantErr: "missing or invalid 'relcheck' table",
		},
		{
			name:    "non_string_field",
			luaCode: `relcheck = { owner = 42 }`,
			wantErr: "invalid 'owner' field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.luaCode)
			if err == nil {
				t.Fatal("expected error but got none")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestParseStringSandbox(t *testing.T) {
	// Unsafe globals are nil inside the VM; touching them must error out
	// rather than execute.
	tests := []struct {
		name    string
		luaCode string
	}{
		{"os_execute", `relcheck = { owner = os.execute("true") }`},
		{"io_open", `relcheck = { owner = io.open("/etc/passwd") }`},
		{"require", `relcheck = { owner = require("socket") }`},
		{"dofile", `relcheck = { owner = dofile("evil.lua") }`},
		{"load", `relcheck = { owner = load("return 1")() }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseString(tt.luaCode); err == nil {
				t.Error("expected sandbox to reject unsafe call")
			}
		})
	}
}

func TestParseStringAllowsSafeLibraries(t *testing.T) {
	partial, err := ParseString(`
		relcheck = {
			owner = string.lower("ACME"),
			tag = "v" .. tostring(math.floor(1.9)) .. ".0.0",
		}
	`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if partial.Owner != "acme" {
		t.Errorf("Owner = %q, want %q", partial.Owner, "acme")
	}
	if partial.Tag != "v1.0.0" {
		t.Errorf("Tag = %q, want %q", partial.Tag, "v1.0.0")
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "relcheck.lua")
	content := `relcheck = { owner = "acme", repo = "tool" }`

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	partial, err := ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if partial.Owner != "acme" || partial.Repo != "tool" {
		t.Errorf("ParseFile() = %+v", partial)
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.lua"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
