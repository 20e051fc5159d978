package mcpserver

import (
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// envPrefix is prepended to every setting, e.g. RBINDGEN_CACHE_FILE_TTL.
const envPrefix = "RBINDGEN"

// serverConfig holds all configurable defaults for the MCP server.
// Values are read from RBINDGEN_* environment variables at startup.
type serverConfig struct {
	// Schema cache
	CacheEnabled    bool          `envconfig:"CACHE_ENABLED" default:"true"`
	CacheMaxSize    int           `envconfig:"CACHE_MAX_SIZE" default:"10"`
	CacheFileTTL    time.Duration `envconfig:"CACHE_FILE_TTL" default:"15m"`
	CacheURLTTL     time.Duration `envconfig:"CACHE_URL_TTL" default:"5m"`
	CacheContentTTL time.Duration `envconfig:"CACHE_CONTENT_TTL" default:"15m"`

	// list_algorithms pagination
	ListLimit int `envconfig:"LIST_LIMIT" default:"100"`
	MaxLimit  int `envconfig:"MAX_LIMIT" default:"1000"`

	// generate defaults
	CustomDir string `envconfig:"CUSTOM_DIR"`
	Strict    bool   `envconfig:"STRICT"`
	Workers   int    `envconfig:"WORKERS"`

	// Resource limits
	MaxInlineSize   int64         `envconfig:"MAX_INLINE_SIZE" default:"10485760"`
	FetchTimeout    time.Duration `envconfig:"FETCH_TIMEOUT" default:"30s"`
	AllowPrivateIPs bool          `envconfig:"ALLOW_PRIVATE_IPS"`
}

// cfg is the package-level config, loaded once at init time.
var cfg = loadConfig()

func defaultConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:    true,
		CacheMaxSize:    10,
		CacheFileTTL:    15 * time.Minute,
		CacheURLTTL:     5 * time.Minute,
		CacheContentTTL: 15 * time.Minute,
		ListLimit:       100,
		MaxLimit:        1000,
		MaxInlineSize:   10 * 1024 * 1024,
		FetchTimeout:    30 * time.Second,
	}
}

// loadConfig reads RBINDGEN_* environment variables. A malformed variable
// discards the whole environment in favor of the defaults; out-of-range
// numbers fall back to their individual defaults.
func loadConfig() *serverConfig {
	c := &serverConfig{}
	if err := envconfig.Process(envPrefix, c); err != nil {
		slog.Warn("invalid environment configuration, using defaults", "error", err)
		return defaultConfig()
	}

	def := defaultConfig()
	if c.CacheMaxSize <= 0 {
		c.CacheMaxSize = def.CacheMaxSize
	}
	if c.CacheFileTTL <= 0 {
		c.CacheFileTTL = def.CacheFileTTL
	}
	if c.CacheURLTTL <= 0 {
		c.CacheURLTTL = def.CacheURLTTL
	}
	if c.CacheContentTTL <= 0 {
		c.CacheContentTTL = def.CacheContentTTL
	}
	if c.ListLimit <= 0 {
		c.ListLimit = def.ListLimit
	}
	if c.MaxLimit <= 0 {
		c.MaxLimit = def.MaxLimit
	}
	if c.MaxInlineSize <= 0 {
		c.MaxInlineSize = def.MaxInlineSize
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = def.FetchTimeout
	}
	if c.Workers < 0 {
		c.Workers = 0
	}
	return c
}
