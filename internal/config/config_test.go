package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(listenEnv, "")
	t.Setenv(cachePathEnv, "")
	t.Setenv(logLevelEnv, "")
	t.Setenv(timezoneEnv, "")
	t.Setenv(telegramTokenEnv, "")

	cfg := Load()

	if cfg.Server.Listen != ":3000" || cfg.Server.AllowOrigin != "*" {
		t.Fatalf("unexpected server defaults: %+v", cfg.Server)
	}
	if cfg.Fetch.UserAgent != DefaultUserAgent {
		t.Fatalf("unexpected user agent %q", cfg.Fetch.UserAgent)
	}
	if len(cfg.Sites) != 1 || cfg.Sites[0].Scanner != "catering" {
		t.Fatalf("unexpected default sites: %+v", cfg.Sites)
	}
	if cfg.Telegram.Enabled() {
		t.Fatal("telegram must be disabled without a token")
	}
	if cfg.Cache.Path != "" {
		t.Fatalf("cache should be disabled by default, got %q", cfg.Cache.Path)
	}
}

func TestLoadFileMergesAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
server:
  listen: ":8080"
fetch:
  timeout: 5s
  concurrency: 2
extract:
  engine: native
cache:
  path: /tmp/menu.db
  ttl: 30m
scheduler:
  interval: 15m
  timezone: UTC
parser:
  noiseKeywords: [cranbrook, "week commencing"]
telegram:
  allowedChatIds: [42, 7]
sites:
  - name: other
    scanner: catering
    pageUrl: https://example.org/menus
    options:
      match: ".pdf,lunch"
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(listenEnv, ":9090")
	t.Setenv(cachePathEnv, "")
	t.Setenv(logLevelEnv, "debug")
	t.Setenv(timezoneEnv, "")
	t.Setenv(telegramTokenEnv, "token")

	cfg := LoadFile(path)

	if cfg.Server.Listen != ":9090" {
		t.Fatalf("env should override listen, got %q", cfg.Server.Listen)
	}
	if cfg.Server.AllowOrigin != "*" {
		t.Fatalf("unset file fields keep defaults, got %q", cfg.Server.AllowOrigin)
	}
	if cfg.Fetch.Timeout != 5*time.Second || cfg.Fetch.Concurrency != 2 {
		t.Fatalf("unexpected fetch config: %+v", cfg.Fetch)
	}
	if cfg.Fetch.UserAgent != DefaultUserAgent {
		t.Fatalf("user agent should keep default, got %q", cfg.Fetch.UserAgent)
	}
	if cfg.Extract.Engine != EngineNative || cfg.Extract.Binary != "pdftotext" {
		t.Fatalf("unexpected extract config: %+v", cfg.Extract)
	}
	if cfg.Cache.Path != "/tmp/menu.db" || cfg.Cache.TTL != 30*time.Minute {
		t.Fatalf("unexpected cache config: %+v", cfg.Cache)
	}
	if cfg.Scheduler.Interval != 15*time.Minute || cfg.Scheduler.Location() != time.UTC {
		t.Fatalf("unexpected scheduler config: %+v", cfg.Scheduler)
	}
	if len(cfg.Parser.NoiseKeywords) != 2 {
		t.Fatalf("unexpected noise keywords: %v", cfg.Parser.NoiseKeywords)
	}
	if !cfg.Telegram.Enabled() || len(cfg.Telegram.AllowedChatIDs) != 2 {
		t.Fatalf("unexpected telegram config: %+v", cfg.Telegram)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("env should override log level, got %q", cfg.Logging.Level)
	}
	if len(cfg.Sites) != 1 || cfg.Sites[0].Name != "other" || cfg.Sites[0].Options["match"] != ".pdf,lunch" {
		t.Fatalf("unexpected sites: %+v", cfg.Sites)
	}
}

func TestLoadFileBrokenFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(listenEnv, "")
	t.Setenv(timezoneEnv, "Not/AZone")

	cfg := LoadFile(path)
	if cfg.Server.Listen != ":3000" {
		t.Fatalf("broken file should leave defaults, got %q", cfg.Server.Listen)
	}
	if cfg.Scheduler.Location() != time.UTC {
		t.Fatalf("unknown timezone should fall back to UTC, got %v", cfg.Scheduler.Location())
	}
}
