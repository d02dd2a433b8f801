package command

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Call records a single invocation made through a FakeRunner.
type Call struct {
	Name string
	Args []string
}

// String renders the call as a space-joined command line.
func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// FakeRunner is a scriptable Runner for tests. Results are matched by tool
// name; unmatched tools succeed with an empty result. Tools listed in
// Missing fail LookPath, matching the behavior of an uninstalled tool.
type FakeRunner struct {
	mu sync.Mutex

	// Results maps a tool name to the result its invocations return.
	Results map[string]*Result
	// Errors maps a tool name to a start error (process could not run).
	Errors map[string]error
	// Missing lists tool names that LookPath cannot resolve.
	Missing []string
	// OnRun, when set, is invoked before returning a scripted result. It
	// lets tests simulate side effects such as tar creating a file.
	OnRun func(call Call)

	calls []Call
}

// NewFakeRunner creates an empty fake runner where every tool succeeds.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Results: make(map[string]*Result),
		Errors:  make(map[string]error),
	}
}

// Run returns the scripted result for the tool.
func (f *FakeRunner) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	return f.StreamRun(ctx, io.Discard, io.Discard, name, args...)
}

// StreamRun returns the scripted result, writing scripted output to the writers.
func (f *FakeRunner) StreamRun(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) (*Result, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	call := Call{Name: name, Args: args}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	onRun := f.OnRun
	f.mu.Unlock()

	if onRun != nil {
		onRun(call)
	}

	f.mu.Lock()
	result := f.Results[name]
	err := f.Errors[name]
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}

	if result == nil {
		result = &Result{ExitCode: 0}
	}

	if result.Stdout != "" {
		fmt.Fprint(stdout, result.Stdout)
	}
	if result.Stderr != "" {
		fmt.Fprint(stderr, result.Stderr)
	}

	return &Result{ExitCode: result.ExitCode, Stdout: result.Stdout, Stderr: result.Stderr}, nil
}

// LookPath resolves to a fake path unless the tool is listed as missing.
func (f *FakeRunner) LookPath(name string) (string, error) {
	for _, missing := range f.Missing {
		if missing == name {
			return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
		}
	}
	return "/usr/bin/" + name, nil
}

// Calls returns a copy of all recorded invocations.
func (f *FakeRunner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	calls := make([]Call, len(f.calls))
	copy(calls, f.calls)
	return calls
}

// CallsFor returns the recorded invocations of a single tool.
func (f *FakeRunner) CallsFor(name string) []Call {
	var matched []Call
	for _, call := range f.Calls() {
		if call.Name == name {
			matched = append(matched, call)
		}
	}
	return matched
}
