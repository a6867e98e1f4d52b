package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.DefaultBranch != "main" {
		t.Fatalf("default_branch = %q, want main", c.DefaultBranch)
	}
	if c.DescriptionLimit != 200 {
		t.Fatalf("description_limit = %d, want 200", c.DescriptionLimit)
	}
	if c.HTTPTimeoutSec != 10 || c.CloneTimeoutSec != 120 {
		t.Fatalf("unexpected timeouts: %d/%d", c.HTTPTimeoutSec, c.CloneTimeoutSec)
	}
	if c.ScratchDir == "" {
		t.Fatalf("scratch_dir should default to the OS temp dir")
	}
	if len(c.ExcludeDirs) != 3 {
		t.Fatalf("exclude_dirs = %v", c.ExcludeDirs)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "default_branch: docs\noutput_dir: /tmp/out\ndescription_limit: 80\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.DefaultBranch != "docs" || c.OutputDir != "/tmp/out" || c.DescriptionLimit != 80 {
		t.Fatalf("unexpected config: %+v", c)
	}
	// Unset keys keep their defaults.
	if c.CloneTimeoutSec != 120 {
		t.Fatalf("clone_timeout_sec = %d, want default 120", c.CloneTimeoutSec)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	c := &Global{DefaultBranch: "release", OutputDir: "out", DescriptionLimit: 150}
	if err := Save(c, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.DefaultBranch != "release" || loaded.OutputDir != "out" || loaded.DescriptionLimit != 150 {
		t.Fatalf("round trip lost fields: %+v", loaded)
	}
}
