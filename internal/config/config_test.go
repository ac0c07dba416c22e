package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(&Config{}, cfg); diff != "" {
		t.Errorf("expected zero config (-want +got):\n%s", diff)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slatf", "config.json")

	want := &Config{
		ProjectID:       "production-data-platform",
		Target:          "gcp-terraform",
		DefaultDuration: "0s",
		ChannelScope:    "plan",
		LogLevel:        "debug",
	}
	if err := want.SaveTo(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "deep")
	path := filepath.Join(dir, "config.json")

	cfg := &Config{ProjectID: "p1"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file at %s: %v", path, err)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := (&Config{ProjectID: "from-file", ChannelScope: "plan"}).SaveTo(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	t.Setenv("SLATF_PROJECT_ID", "from-env")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ProjectID != "from-env" {
		t.Errorf("ProjectID = %q, want %q", cfg.ProjectID, "from-env")
	}
	if cfg.ChannelScope != "plan" {
		t.Errorf("ChannelScope = %q, want %q", cfg.ChannelScope, "plan")
	}
}

func TestLoadFile_IgnoresEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	SetPath(path)
	t.Cleanup(ResetPath)
	if err := (&Config{ProjectID: "from-file"}).Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	t.Setenv("SLATF_PROJECT_ID", "from-env")

	cfg, err := LoadFile()
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.ProjectID != "from-file" {
		t.Errorf("ProjectID = %q, want %q", cfg.ProjectID, "from-file")
	}
}

func TestSave_OmitsEmptyKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := (&Config{ProjectID: "p1"}).SaveTo(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read config: %v", err)
	}
	want := "{\n  \"project_id\": \"p1\"\n}\n"
	if string(data) != want {
		t.Errorf("file contents = %q, want %q", string(data), want)
	}
}
