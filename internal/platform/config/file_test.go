package config

import (
	"os"
	"path/filepath"
	"testing"
)

type fileTestConfig struct {
	Addr   string `yaml:"addr"`
	DBPath string `yaml:"db_path"`
}

func TestLoadFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("addr: \":9000\"\ndb_path: /tmp/sessions.db\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := fileTestConfig{Addr: ":8080"}
	if err := LoadFile(path, &cfg); err != nil {
		t.Fatalf("load file: %v", err)
	}
	if cfg.Addr != ":9000" || cfg.DBPath != "/tmp/sessions.db" {
		t.Fatalf("config = %+v, file values must win", cfg)
	}
}

func TestLoadFileMissingIsNotAnError(t *testing.T) {
	cfg := fileTestConfig{Addr: ":8080"}
	if err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"), &cfg); err != nil {
		t.Fatalf("load missing file: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("config = %+v, defaults must survive a missing file", cfg)
	}
}

func TestLoadFileRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("addr: [unterminated"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	var cfg fileTestConfig
	if err := LoadFile(path, &cfg); err == nil {
		t.Fatal("expected a parse error")
	}
}
