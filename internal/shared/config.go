package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Server      ServerConfig      `toml:"server"`
	Matching    MatchingConfig    `toml:"matching"`
	Logging     LoggingConfig     `toml:"logging"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
	YouTube YouTubeConfig `toml:"youtube"`
}

// SpotifyConfig contains Spotify app credentials.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// Map returns the credentials in the form [services.NewSpotifyService] expects.
func (s SpotifyConfig) Map() map[string]string {
	return map[string]string{"client_id": s.ClientID, "client_secret": s.ClientSecret}
}

// YouTubeConfig selects the search backend.
type YouTubeConfig struct {
	APIKey   string `toml:"api_key"`
	ProxyURL string `toml:"proxy_url"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host              string `toml:"host"`
	Port              int    `toml:"port"`
	RequestsPerMinute int    `toml:"requests_per_minute"`
	Burst             int    `toml:"burst"`
}

func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// MatchingConfig tunes the matcher and batch orchestration.
type MatchingConfig struct {
	Concurrency  int     `toml:"concurrency"`
	MaxBatchSize int     `toml:"max_batch_size"`
	CacheTTL     string  `toml:"cache_ttl"`
	SearchRate   float64 `toml:"search_rate"`
	SearchBurst  int     `toml:"search_burst"`
	MinScore     float64 `toml:"min_score"`
	MediumScore  float64 `toml:"medium_score"`
	HighScore    float64 `toml:"high_score"`
}

// TTL parses CacheTTL.
func (m MatchingConfig) TTL() (time.Duration, error) {
	d, err := time.ParseDuration(m.CacheTTL)
	if err != nil {
		return 0, fmt.Errorf("%w: cache_ttl %q: %v", ErrInvalidConfig, m.CacheTTL, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: cache_ttl must be positive", ErrInvalidConfig)
	}
	return d, nil
}

// LoggingConfig contains logger settings.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// LoadConfig reads a TOML file over the embedded defaults. Keys absent from the file keep their default value.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalidConfig, path, err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile writes the embedded example config to path. An existing file is left untouched.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadEnv reads .env style files into the process environment without overriding variables already set.
// Missing files are ignored.
func LoadEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// ApplyEnv overrides credentials and paths with non-empty environment variables.
func (c *Config) ApplyEnv() {
	overrides := []struct {
		env    string
		target *string
	}{
		{"SPOTIFY_CLIENT_ID", &c.Credentials.Spotify.ClientID},
		{"SPOTIFY_CLIENT_SECRET", &c.Credentials.Spotify.ClientSecret},
		{"YOUTUBE_API_KEY", &c.Credentials.YouTube.APIKey},
		{"YTLINK_PROXY_URL", &c.Credentials.YouTube.ProxyURL},
		{"YTLINK_DATABASE", &c.Database.Path},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.target = v
		}
	}
}

// Validate reports every invalid setting, each wrapped with [ErrInvalidConfig].
func (c *Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	m := c.Matching
	if m.Concurrency < 1 {
		invalid("matching.concurrency must be at least 1, got %d", m.Concurrency)
	}
	if m.MaxBatchSize < 1 {
		invalid("matching.max_batch_size must be at least 1, got %d", m.MaxBatchSize)
	}
	if _, err := m.TTL(); err != nil {
		errs = append(errs, err)
	}
	if m.SearchRate < 0 {
		invalid("matching.search_rate must not be negative")
	}
	if m.MinScore < 0 || m.HighScore > 100 || !(m.MinScore < m.MediumScore && m.MediumScore < m.HighScore) {
		invalid("matching thresholds must satisfy 0 <= min < medium < high <= 100, got %.1f/%.1f/%.1f",
			m.MinScore, m.MediumScore, m.HighScore)
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		invalid("server.port %d out of range", c.Server.Port)
	}
	if c.Server.RequestsPerMinute < 0 {
		invalid("server.requests_per_minute must not be negative")
	}

	if _, err := ParseLogLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
