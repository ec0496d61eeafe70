package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"github.com/vitrine-media/vitrine/internal/model"
)

// Config holds the configuration for the listing service.
// Environment variables are automatically parsed from the VITRINE_ prefix.
type Config struct {
	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Listing defaults
	DefaultPageSize int `envconfig:"DEFAULT_PAGE_SIZE" default:"20"`

	// Cache Configuration. The TTL bounds how stale a listing can get
	// after media is added upstream.
	CacheTTLSeconds int `envconfig:"CACHE_TTL_SECONDS" default:"60"`
	CacheMaxEntries int `envconfig:"CACHE_MAX_ENTRIES" default:"256"`

	// Per-source gates. A source whose base URL (or instance map) is
	// missing is forced to disabled during ResolveDefaults.
	MediaServerEnabled  bool `envconfig:"MEDIA_SERVER_ENABLED" default:"true"`
	ArchiveIndexEnabled bool `envconfig:"ARCHIVE_INDEX_ENABLED" default:"true"`
	FlatFilesEnabled    bool `envconfig:"FLAT_FILES_ENABLED" default:"true"`

	// Media server instances, key:baseURL pairs.
	// Example: VITRINE_MEDIA_SERVER_INSTANCES="home:http://jf1:8096,nas:http://jf2:8096"
	MediaServerInstances       map[string]string `envconfig:"MEDIA_SERVER_INSTANCES"`
	MediaServerDefaultInstance string            `envconfig:"MEDIA_SERVER_DEFAULT_INSTANCE" default:""`
	MediaServerToken           string            `envconfig:"MEDIA_SERVER_TOKEN" default:""`
	MediaServerUserID          string            `envconfig:"MEDIA_SERVER_USER_ID" default:""`

	// Other upstreams
	ArchiveIndexURL string `envconfig:"ARCHIVE_INDEX_URL" default:""`
	FlatFilesURL    string `envconfig:"FLAT_FILES_URL" default:""`

	// Upstream call timeout; network calls bound their own duration.
	UpstreamTimeoutSeconds int `envconfig:"UPSTREAM_TIMEOUT_SECONDS" default:"15"`

	// Session Configuration
	SessionMaxAgeMinutes int `envconfig:"SESSION_MAX_AGE_MINUTES" default:"30"`

	// Health Configuration
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"5"`
}

// ResolveDefaults validates the configuration and derives the default
// media-server instance when unset. An enabled source without upstream
// configuration is demoted to disabled rather than failing startup.
func (c *Config) ResolveDefaults() error {
	if c.DefaultPageSize <= 0 {
		return fmt.Errorf("unsupported DEFAULT_PAGE_SIZE: %d", c.DefaultPageSize)
	}
	if c.CacheTTLSeconds <= 0 {
		return fmt.Errorf("unsupported CACHE_TTL_SECONDS: %d", c.CacheTTLSeconds)
	}
	if c.CacheMaxEntries <= 0 {
		return fmt.Errorf("unsupported CACHE_MAX_ENTRIES: %d", c.CacheMaxEntries)
	}

	if len(c.MediaServerInstances) == 0 {
		c.MediaServerEnabled = false
	}
	if c.ArchiveIndexURL == "" {
		c.ArchiveIndexEnabled = false
	}
	if c.FlatFilesURL == "" {
		c.FlatFilesEnabled = false
	}

	if c.MediaServerEnabled {
		if c.MediaServerDefaultInstance == "" {
			// First instance key in lexical order is the documented default.
			keys := make([]string, 0, len(c.MediaServerInstances))
			for k := range c.MediaServerInstances {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			c.MediaServerDefaultInstance = keys[0]
		}
		if _, ok := c.MediaServerInstances[c.MediaServerDefaultInstance]; !ok {
			return fmt.Errorf("unknown MEDIA_SERVER_DEFAULT_INSTANCE: %s", c.MediaServerDefaultInstance)
		}
	}
	return nil
}

// New creates a new Config by parsing environment variables.
// Environment variables should be prefixed with VITRINE_
// Example: VITRINE_HTTP_PORT, VITRINE_CACHE_TTL_SECONDS
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("VITRINE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Int("port", cfg.HTTPPort).
		Int("default_page_size", cfg.DefaultPageSize).
		Int("cache_ttl_seconds", cfg.CacheTTLSeconds).
		Int("cache_max_entries", cfg.CacheMaxEntries).
		Bool("media_server_enabled", cfg.MediaServerEnabled).
		Bool("archive_index_enabled", cfg.ArchiveIndexEnabled).
		Bool("flat_files_enabled", cfg.FlatFilesEnabled).
		Int("media_server_instances", len(cfg.MediaServerInstances)).
		Str("media_server_default_instance", cfg.MediaServerDefaultInstance).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing.
func NewForTesting() *Config {
	cfg := &Config{
		HTTPPort:        8080,
		DefaultPageSize: 20,
		CacheTTLSeconds: 60,
		CacheMaxEntries: 64,

		MediaServerEnabled:  true,
		ArchiveIndexEnabled: true,
		FlatFilesEnabled:    true,

		MediaServerInstances:       map[string]string{"test": "http://localhost:8096"},
		MediaServerDefaultInstance: "test",
		MediaServerToken:           "test-token",
		MediaServerUserID:          "test-user",

		ArchiveIndexURL: "http://localhost:8100",
		FlatFilesURL:    "http://localhost:8200",

		UpstreamTimeoutSeconds:    15,
		SessionMaxAgeMinutes:      30,
		HealthIntervalSeconds:     30,
		HealthProbeTimeoutSeconds: 5,
	}
	return cfg
}

// SourceEnabled reports whether requests may ever be issued for kind.
func (c *Config) SourceEnabled(kind model.SourceKind) bool {
	switch kind {
	case model.SourceMediaServer:
		return c.MediaServerEnabled
	case model.SourceArchiveIndex:
		return c.ArchiveIndexEnabled
	case model.SourceFlatFiles:
		return c.FlatFilesEnabled
	default:
		return false
	}
}

// CacheTTL returns the cache entry lifetime.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// UpstreamTimeout returns the per-call timeout for upstream clients.
func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.UpstreamTimeoutSeconds) * time.Second
}

// SessionMaxAge returns how long an idle listing session is retained.
func (c *Config) SessionMaxAge() time.Duration {
	return time.Duration(c.SessionMaxAgeMinutes) * time.Minute
}

// GetHTTPAddr returns the HTTP server address.
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
