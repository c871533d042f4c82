package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./ytlink.db" {
			t.Errorf("expected database path ./ytlink.db, got %s", config.Database.Path)
		}
		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}
		if config.Credentials.YouTube.ProxyURL != "http://127.0.0.1:8080" {
			t.Errorf("expected youtube proxy URL http://127.0.0.1:8080, got %s", config.Credentials.YouTube.ProxyURL)
		}
		if config.Matching.Concurrency != 2 || config.Matching.MaxBatchSize != 10 {
			t.Errorf("unexpected matching defaults: %+v", config.Matching)
		}
		if config.Matching.MinScore != 40 || config.Matching.MediumScore != 50 || config.Matching.HighScore != 70 {
			t.Errorf("unexpected threshold defaults: %+v", config.Matching)
		}
		if ttl, err := config.Matching.TTL(); err != nil || ttl != 24*time.Hour {
			t.Errorf("expected 24h ttl, got %v (%v)", ttl, err)
		}
		if err := config.Validate(); err != nil {
			t.Errorf("expected default config to be valid, got %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}
		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		testConfig := `[database]
path = "/custom/path.db"

[server]
host = "0.0.0.0"
port = 8080

[credentials.spotify]
client_id = "test_client_id"
client_secret = "test_secret"

[matching]
concurrency = 4
cache_ttl = "2h"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0o644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}
		if config.Server.Addr() != "0.0.0.0:8080" {
			t.Errorf("expected addr 0.0.0.0:8080, got %s", config.Server.Addr())
		}
		if config.Credentials.Spotify.ClientID != "test_client_id" {
			t.Errorf("expected spotify client_id test_client_id, got %s", config.Credentials.Spotify.ClientID)
		}
		if config.Matching.Concurrency != 4 {
			t.Errorf("expected concurrency 4, got %d", config.Matching.Concurrency)
		}

		t.Run("keeps defaults for absent keys", func(t *testing.T) {
			if config.Matching.MaxBatchSize != 10 || config.Server.RequestsPerMinute != 60 {
				t.Errorf("expected defaults to survive, got %+v / %+v", config.Matching, config.Server)
			}
		})

		t.Run("missing file", func(t *testing.T) {
			_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
			if !errors.Is(err, ErrMissingConfig) {
				t.Errorf("expected ErrMissingConfig, got %v", err)
			}
		})

		t.Run("malformed file", func(t *testing.T) {
			bad := filepath.Join(t.TempDir(), "bad.toml")
			os.WriteFile(bad, []byte("[matching\nconcurrency = "), 0o644)
			if _, err := LoadConfig(bad); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Setenv("SPOTIFY_CLIENT_ID", "env_id")
		t.Setenv("YOUTUBE_API_KEY", "env_key")
		t.Setenv("YTLINK_DATABASE", "")

		config := DefaultConfig()
		config.ApplyEnv()

		if config.Credentials.Spotify.ClientID != "env_id" {
			t.Errorf("expected env client id, got %s", config.Credentials.Spotify.ClientID)
		}
		if config.Credentials.YouTube.APIKey != "env_key" {
			t.Errorf("expected env api key, got %s", config.Credentials.YouTube.APIKey)
		}
		if config.Database.Path != "./ytlink.db" {
			t.Errorf("empty env var should not override, got %s", config.Database.Path)
		}
	})

	t.Run("LoadEnv", func(t *testing.T) {
		envPath := filepath.Join(t.TempDir(), ".env")
		os.WriteFile(envPath, []byte("YTLINK_PROXY_URL=http://proxy.test:9000\n"), 0o644)
		t.Setenv("YTLINK_PROXY_URL", "")
		os.Unsetenv("YTLINK_PROXY_URL")

		LoadEnv(envPath, filepath.Join(t.TempDir(), "missing.env"))

		config := DefaultConfig()
		config.ApplyEnv()
		if config.Credentials.YouTube.ProxyURL != "http://proxy.test:9000" {
			t.Errorf("expected proxy url from .env, got %s", config.Credentials.YouTube.ProxyURL)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*Config)
		}{
			{"zero concurrency", func(c *Config) { c.Matching.Concurrency = 0 }},
			{"zero batch size", func(c *Config) { c.Matching.MaxBatchSize = 0 }},
			{"bad ttl", func(c *Config) { c.Matching.CacheTTL = "tomorrow" }},
			{"negative ttl", func(c *Config) { c.Matching.CacheTTL = "-1h" }},
			{"unordered thresholds", func(c *Config) { c.Matching.MediumScore = 80 }},
			{"threshold above 100", func(c *Config) { c.Matching.HighScore = 120 }},
			{"bad port", func(c *Config) { c.Server.Port = 70000 }},
			{"bad log level", func(c *Config) { c.Logging.Level = "loud" }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				config := DefaultConfig()
				tt.mutate(config)
				if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			})
		}

		t.Run("reports every problem", func(t *testing.T) {
			config := DefaultConfig()
			config.Matching.Concurrency = 0
			config.Matching.MaxBatchSize = 0
			err := config.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if joined, ok := err.(interface{ Unwrap() []error }); !ok || len(joined.Unwrap()) != 2 {
				t.Errorf("expected two joined errors, got %v", err)
			}
		})
	})
}
