package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrine-media/vitrine/internal/model"
)

func TestResolveDefaults_DemotesUnconfiguredSources(t *testing.T) {
	cfg := NewForTesting()
	cfg.MediaServerInstances = nil
	cfg.ArchiveIndexURL = ""
	cfg.FlatFilesURL = ""

	require.NoError(t, cfg.ResolveDefaults())

	assert.False(t, cfg.MediaServerEnabled)
	assert.False(t, cfg.ArchiveIndexEnabled)
	assert.False(t, cfg.FlatFilesEnabled)
	assert.False(t, cfg.SourceEnabled(model.SourceMediaServer))
	assert.False(t, cfg.SourceEnabled(model.SourceArchiveIndex))
	assert.False(t, cfg.SourceEnabled(model.SourceFlatFiles))
}

func TestResolveDefaults_DerivesDefaultInstance(t *testing.T) {
	cfg := NewForTesting()
	cfg.MediaServerInstances = map[string]string{
		"nas":  "http://nas:8096",
		"home": "http://home:8096",
	}
	cfg.MediaServerDefaultInstance = ""

	require.NoError(t, cfg.ResolveDefaults())
	assert.Equal(t, "home", cfg.MediaServerDefaultInstance, "lexically first key")
}

func TestResolveDefaults_RejectsUnknownDefaultInstance(t *testing.T) {
	cfg := NewForTesting()
	cfg.MediaServerDefaultInstance = "nope"

	err := cfg.ResolveDefaults()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MEDIA_SERVER_DEFAULT_INSTANCE")
}

func TestResolveDefaults_RejectsInvalidValues(t *testing.T) {
	for _, mutate := range []func(*Config){
		func(c *Config) { c.DefaultPageSize = 0 },
		func(c *Config) { c.CacheTTLSeconds = 0 },
		func(c *Config) { c.CacheMaxEntries = -1 },
	} {
		cfg := NewForTesting()
		mutate(cfg)
		assert.Error(t, cfg.ResolveDefaults())
	}
}

func TestConfig_DurationsAndAddr(t *testing.T) {
	cfg := NewForTesting()
	cfg.HTTPPort = 9090
	cfg.CacheTTLSeconds = 90
	cfg.UpstreamTimeoutSeconds = 7
	cfg.SessionMaxAgeMinutes = 45

	assert.Equal(t, ":9090", cfg.GetHTTPAddr())
	assert.Equal(t, 90*time.Second, cfg.CacheTTL())
	assert.Equal(t, 7*time.Second, cfg.UpstreamTimeout())
	assert.Equal(t, 45*time.Minute, cfg.SessionMaxAge())
}

func TestSourceEnabled_UnknownKind(t *testing.T) {
	cfg := NewForTesting()
	assert.False(t, cfg.SourceEnabled(model.SourceKind("bogus")))
}

func TestNewForTesting_IsValid(t *testing.T) {
	cfg := NewForTesting()
	require.NoError(t, cfg.ResolveDefaults())
	assert.True(t, cfg.SourceEnabled(model.SourceMediaServer))
	assert.Equal(t, "test", cfg.MediaServerDefaultInstance)
}
