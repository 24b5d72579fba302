package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWithEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ServerAddress != "localhost:25565" || cfg.ProtocolVersion != 765 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFromYAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mcclient.yaml")
	contents := "server_address: mc.example.com:25565\nusername: Steve\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ServerAddress != "mc.example.com:25565" || cfg.Username != "Steve" {
		t.Fatalf("overrides did not apply: %+v", cfg)
	}
	if cfg.ProtocolVersion != 765 {
		t.Fatalf("unset key should keep default, got %+v", cfg)
	}
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg != defaults() {
		t.Fatalf("round trip mismatch: got %+v want %+v", cfg, defaults())
	}
}
