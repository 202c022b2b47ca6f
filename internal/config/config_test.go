package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"video-poker-service/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
jwt:
  secret: test-secret
game:
  defaultVariant: deuces_wild
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "8080" || cfg.Database.Driver != "sqlite" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.Game.DefaultVariant != "deuces_wild" {
		t.Fatalf("expected deuces_wild, got %s", cfg.Game.DefaultVariant)
	}
	if cfg.Game.ShufflePasses != 1 || cfg.Game.MaxPlayers != 8 {
		t.Fatalf("unexpected game defaults: %+v", cfg.Game)
	}
	if cfg.Game.CacheTTL() != 10*time.Minute {
		t.Fatalf("expected 10m cache ttl, got %s", cfg.Game.CacheTTL())
	}
	if cfg.JWT.TTL() != 72*time.Hour {
		t.Fatalf("expected 72h token ttl, got %s", cfg.JWT.TTL())
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"driver": "jwt:\n  secret: s\ndatabase:\n  driver: oracle\n",
		"secret": "server:\n  port: \"9000\"\n",
		"passes": "jwt:\n  secret: s\ngame:\n  shufflePasses: 0\n",
		"seats":  "jwt:\n  secret: s\ngame:\n  maxPlayers: 1\n",
	}
	for name, body := range cases {
		if _, err := config.Load(writeConfig(t, body)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
