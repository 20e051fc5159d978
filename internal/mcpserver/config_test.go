package mcpserver

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var configEnvKeys = []string{
	"RBINDGEN_CACHE_ENABLED", "RBINDGEN_CACHE_MAX_SIZE",
	"RBINDGEN_CACHE_FILE_TTL", "RBINDGEN_CACHE_URL_TTL",
	"RBINDGEN_CACHE_CONTENT_TTL", "RBINDGEN_LIST_LIMIT",
	"RBINDGEN_MAX_LIMIT", "RBINDGEN_CUSTOM_DIR",
	"RBINDGEN_STRICT", "RBINDGEN_WORKERS",
	"RBINDGEN_MAX_INLINE_SIZE", "RBINDGEN_FETCH_TIMEOUT",
	"RBINDGEN_ALLOW_PRIVATE_IPS",
}

// clearRBINDGENEnv unsets all RBINDGEN_* settings for the duration of the test.
func clearRBINDGENEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		// Setenv registers the restore; Unsetenv makes the key absent.
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearRBINDGENEnv(t)

	c := loadConfig()

	assert.Equal(t, defaultConfig(), c)
	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 5*time.Minute, c.CacheURLTTL)
	assert.Equal(t, 100, c.ListLimit)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.Empty(t, c.CustomDir)
	assert.False(t, c.Strict)
	assert.False(t, c.AllowPrivateIPs)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearRBINDGENEnv(t)
	t.Setenv("RBINDGEN_CACHE_ENABLED", "false")
	t.Setenv("RBINDGEN_CACHE_MAX_SIZE", "50")
	t.Setenv("RBINDGEN_CACHE_FILE_TTL", "30m")
	t.Setenv("RBINDGEN_CACHE_URL_TTL", "2m")
	t.Setenv("RBINDGEN_CACHE_CONTENT_TTL", "10m")
	t.Setenv("RBINDGEN_LIST_LIMIT", "20")
	t.Setenv("RBINDGEN_MAX_LIMIT", "500")
	t.Setenv("RBINDGEN_CUSTOM_DIR", "custom")
	t.Setenv("RBINDGEN_STRICT", "true")
	t.Setenv("RBINDGEN_WORKERS", "4")
	t.Setenv("RBINDGEN_MAX_INLINE_SIZE", "5242880")
	t.Setenv("RBINDGEN_FETCH_TIMEOUT", "5s")
	t.Setenv("RBINDGEN_ALLOW_PRIVATE_IPS", "true")

	c := loadConfig()

	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 50, c.CacheMaxSize)
	assert.Equal(t, 30*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 2*time.Minute, c.CacheURLTTL)
	assert.Equal(t, 10*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 20, c.ListLimit)
	assert.Equal(t, 500, c.MaxLimit)
	assert.Equal(t, "custom", c.CustomDir)
	assert.True(t, c.Strict)
	assert.Equal(t, 4, c.Workers)
	assert.Equal(t, int64(5242880), c.MaxInlineSize)
	assert.Equal(t, 5*time.Second, c.FetchTimeout)
	assert.True(t, c.AllowPrivateIPs)
}

func TestLoadConfig_MalformedFallsBackToDefaults(t *testing.T) {
	clearRBINDGENEnv(t)
	t.Setenv("RBINDGEN_CACHE_FILE_TTL", "not-a-duration")
	t.Setenv("RBINDGEN_STRICT", "true")

	assert.Equal(t, defaultConfig(), loadConfig())
}

func TestLoadConfig_OutOfRange(t *testing.T) {
	clearRBINDGENEnv(t)
	t.Setenv("RBINDGEN_CACHE_MAX_SIZE", "0")
	t.Setenv("RBINDGEN_CACHE_URL_TTL", "-1m")
	t.Setenv("RBINDGEN_LIST_LIMIT", "-5")
	t.Setenv("RBINDGEN_WORKERS", "-2")

	c := loadConfig()

	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 5*time.Minute, c.CacheURLTTL)
	assert.Equal(t, 100, c.ListLimit)
	assert.Equal(t, 0, c.Workers)
}
