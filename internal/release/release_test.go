package release

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/relcheck/relcheck/internal/command"
)

func TestDownloadURL(t *testing.T) {
	tests := []struct {
		name     string
		owner    string
		repo     string
		tag      string
		artifact string
		want     string
	}{
		{
			name:     "acme_tool",
			owner:    "acme",
			repo:     "tool",
			tag:      "v1.0.0",
			artifact: "tool-linux.tar.gz",
			want:     "https://github.com/acme/tool/releases/download/v1.0.0/tool-linux.tar.gz",
		},
		{
			name:     "defaults_shape",
			owner:    "relcheck",
			repo:     "relcheck",
			tag:      "v0.4.2",
			artifact: "relcheck_v0.4.2_linux_amd64.tar.gz",
			want:     "https://github.com/relcheck/relcheck/releases/download/v0.4.2/relcheck_v0.4.2_linux_amd64.tar.gz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DownloadURL(tt.owner, tt.repo, tt.tag, tt.artifact)
			if got != tt.want {
				t.Errorf("DownloadURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFetchInvokesCurl(t *testing.T) {
	fake := command.NewFakeRunner()
	dir := t.TempDir()
	dest := filepath.Join(dir, "tool.tar.gz")

	d := NewDownloader(fake, "curl", nil)
	skipped, err := d.Fetch(context.Background(), "https://example.test/tool.tar.gz", dest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skipped {
		t.Error("download should not be skipped for a fresh destination")
	}

	calls := fake.CallsFor("curl")
	if len(calls) != 1 {
		t.Fatalf("curl invoked %d times, want 1", len(calls))
	}
	want := "curl -fSL --output " + dest + " https://example.test/tool.tar.gz"
	if calls[0].String() != want {
		t.Errorf("call = %q, want %q", calls[0].String(), want)
	}
}

func TestFetchInvokesWget(t *testing.T) {
	fake := command.NewFakeRunner()
	dir := t.TempDir()
	dest := filepath.Join(dir, "tool.tar.gz")

	d := NewDownloader(fake, "wget", nil)
	if _, err := d.Fetch(context.Background(), "https://example.test/tool.tar.gz", dest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	calls := fake.CallsFor("wget")
	if len(calls) != 1 {
		t.Fatalf("wget invoked %d times, want 1", len(calls))
	}
	if calls[0].Args[0] != "-q" || calls[0].Args[1] != "-O" {
		t.Errorf("unexpected wget args: %v", calls[0].Args)
	}
}

func TestFetchSkipsExistingFile(t *testing.T) {
	fake := command.NewFakeRunner()
	dir := t.TempDir()
	dest := filepath.Join(dir, "tool.tar.gz")

	if err := os.WriteFile(dest, []byte("previously downloaded"), 0644); err != nil {
		t.Fatalf("write existing file: %v", err)
	}

	d := NewDownloader(fake, "curl", nil)
	skipped, err := d.Fetch(context.Background(), "https://example.test/tool.tar.gz", dest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !skipped {
		t.Error("expected download to be skipped")
	}
	if len(fake.Calls()) != 0 {
		t.Errorf("download tool should not run, recorded calls: %v", fake.Calls())
	}
}

func TestFetchEmptyFileIsRedownloaded(t *testing.T) {
	fake := command.NewFakeRunner()
	dir := t.TempDir()
	dest := filepath.Join(dir, "tool.tar.gz")

	if err := os.WriteFile(dest, nil, 0644); err != nil {
		t.Fatalf("write empty file: %v", err)
	}

	d := NewDownloader(fake, "curl", nil)
	skipped, err := d.Fetch(context.Background(), "https://example.test/tool.tar.gz", dest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skipped {
		t.Error("an empty leftover file should not skip the download")
	}
}

func TestFetchToolFailure(t *testing.T) {
	fake := command.NewFakeRunner()
	fake.Results["curl"] = &command.Result{ExitCode: 22}

	dir := t.TempDir()
	dest := filepath.Join(dir, "tool.tar.gz")
	// Simulate a partial download left behind by the failed transfer
	fake.OnRun = func(call command.Call) {
		os.WriteFile(dest, []byte("partial"), 0644)
	}

	d := NewDownloader(fake, "curl", nil)
	_, err := d.Fetch(context.Background(), "https://example.test/tool.tar.gz", dest)
	if err == nil {
		t.Fatal("expected error for failed download")
	}
	if !strings.Contains(err.Error(), "status 22") {
		t.Errorf("error = %q, want exit status mentioned", err)
	}

	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Error("partial download should be removed after failure")
	}
}

func TestFetchUnsupportedTool(t *testing.T) {
	d := NewDownloader(command.NewFakeRunner(), "aria2c", nil)
	_, err := d.Fetch(context.Background(), "https://example.test/x", filepath.Join(t.TempDir(), "x"))
	if err == nil {
		t.Fatal("expected error for unsupported tool")
	}
}
