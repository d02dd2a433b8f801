package config

import (
	"fmt"
	"os"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// ParseError represents a defaults-file parsing error with a friendly
// message and the raw Lua detail.
type ParseError struct {
	Message string
	Detail  string
}

func (e *ParseError) Error() string {
	detail := e.Detail
	if idx := strings.Index(detail, "stack traceback"); idx > 0 {
		detail = strings.TrimSpace(detail[:idx])
	}
	return fmt.Sprintf("%s: %s", e.Message, detail)
}

// ParseFile loads a Lua defaults file and extracts the relcheck table.
func ParseFile(path string) (Partial, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Partial{}, fmt.Errorf("read config file: %w", err)
	}
	return ParseString(string(data))
}

// ParseString parses a Lua defaults snippet. The snippet runs in a
// sandboxed VM and must define a global "relcheck" table; unknown fields
// in the table are ignored.
func ParseString(luaCode string) (Partial, error) {
	L := newSandboxedVM()
	defer L.Close()

	if err := L.DoString(luaCode); err != nil {
		return Partial{}, &ParseError{
			Message: "Lua syntax error",
			Detail:  err.Error(),
		}
	}

	return extractPartial(L)
}

// extractPartial pulls the known string fields out of the global table.
func extractPartial(L *lua.LState) (Partial, error) {
	top := L.GetGlobal("relcheck")
	if top.Type() != lua.LTTable {
		return Partial{}, &ParseError{
			Message: "missing or invalid 'relcheck' table",
			Detail:  fmt.Sprintf("expected table, got %s", top.Type()),
		}
	}

	table := top.(*lua.LTable)
	partial := Partial{}

	fields := []struct {
		key  string
		dest *string
	}{
		{"owner", &partial.Owner},
		{"repo", &partial.Repo},
		{"tag", &partial.Tag},
		{"artifact", &partial.Artifact},
		{"binary", &partial.Binary},
		{"keyring", &partial.Keyring},
	}

	for _, f := range fields {
		value := table.RawGetString(f.key)
		switch value.Type() {
		case lua.LTNil:
			// Not set; keep the zero value so lower layers apply.
		case lua.LTString:
			*f.dest = value.String()
		default:
			return Partial{}, &ParseError{
				Message: fmt.Sprintf("invalid '%s' field", f.key),
				Detail:  fmt.Sprintf("expected string, got %s", value.Type()),
			}
		}
	}

	return partial, nil
}

// newSandboxedVM creates a Lua VM with the unsafe surface removed. Defaults
// files are declarative: they may not execute commands, touch the
// filesystem, or load external code.
func newSandboxedVM() *lua.LState {
	L := lua.NewState()

	// Remove os and io entirely (os.execute, io.popen, ...)
	L.SetGlobal("os", lua.LNil)
	L.SetGlobal("io", lua.LNil)

	// Remove module loading and eval
	L.SetGlobal("require", lua.LNil)
	L.SetGlobal("dofile", lua.LNil)
	L.SetGlobal("loadfile", lua.LNil)
	L.SetGlobal("load", lua.LNil)
	L.SetGlobal("loadstring", lua.LNil)

	// debug can be used to climb out of the sandbox
	L.SetGlobal("debug", lua.LNil)

	// string, table, math and the basic utilities remain available.
	return L
}
