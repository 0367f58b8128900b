package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := NewLoader().Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Cache.Shards != 16 {
		t.Fatalf("Cache.Shards = %d, want default 16", cfg.Cache.Shards)
	}
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logexpr.yaml")
	doc := "engine:\n  max_reduce_variables: 12\ncache:\n  shards: 4\noutput:\n  color: false\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}
	cfg, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Engine.MaxReduceVariables != 12 {
		t.Fatalf("MaxReduceVariables = %d, want 12", cfg.Engine.MaxReduceVariables)
	}
	if cfg.Cache.Shards != 4 {
		t.Fatalf("Cache.Shards = %d, want 4", cfg.Cache.Shards)
	}
	if cfg.Output.Color {
		t.Fatalf("Output.Color should be false per fixture")
	}
}

func TestEnvOverridesWinOverYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logexpr.yaml")
	if err := os.WriteFile(path, []byte("cache:\n  shards: 4\n"), 0o644); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}
	t.Setenv("LOGEXPR_CACHE_SHARDS", "64")

	cfg, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Cache.Shards != 64 {
		t.Fatalf("Cache.Shards = %d, want env override 64", cfg.Cache.Shards)
	}
}
