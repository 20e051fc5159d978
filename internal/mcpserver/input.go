package mcpserver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/erraggy/rbindgen/customize"
	"github.com/erraggy/rbindgen/schema"
)

// schemaInput represents the three ways model builder metadata can be
// provided to a tool. Exactly one of File, URL, or Content must be set.
type schemaInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a model builders JSON or YAML file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch model builder metadata from, e.g. http://host:54321/3/ModelBuilders"`
	Content string `json:"content,omitempty" jsonschema:"Inline model builder metadata (JSON or YAML)"`
}

// schemaCacheStore caches parse results per session. Each input kind has
// its own LRU so that each can carry its own TTL: file entries are keyed by
// absolute path and modification time, URL entries by the URL, and inline
// content by its SHA-256 hash.
type schemaCacheStore struct {
	file    *expirable.LRU[string, *schema.ParseResult]
	url     *expirable.LRU[string, *schema.ParseResult]
	content *expirable.LRU[string, *schema.ParseResult]
}

func newSchemaCache(c *serverConfig) *schemaCacheStore {
	return &schemaCacheStore{
		file:    expirable.NewLRU[string, *schema.ParseResult](c.CacheMaxSize, nil, c.CacheFileTTL),
		url:     expirable.NewLRU[string, *schema.ParseResult](c.CacheMaxSize, nil, c.CacheURLTTL),
		content: expirable.NewLRU[string, *schema.ParseResult](c.CacheMaxSize, nil, c.CacheContentTTL),
	}
}

var schemaCache = newSchemaCache(cfg)

// bucket returns the LRU an input is cached in.
func (c *schemaCacheStore) bucket(s schemaInput) *expirable.LRU[string, *schema.ParseResult] {
	switch {
	case s.File != "":
		return c.file
	case s.URL != "":
		return c.url
	default:
		return c.content
	}
}

// reset clears all cached entries. Used in tests.
func (c *schemaCacheStore) reset() {
	c.file.Purge()
	c.url.Purge()
	c.content.Purge()
}

func (c *schemaCacheStore) size() int {
	return c.file.Len() + c.url.Len() + c.content.Len()
}

// makeCacheKey returns the cache key for s, or "" when s cannot be cached.
func makeCacheKey(s schemaInput) string {
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		return "content:" + hex.EncodeToString(h[:])
	case s.URL != "":
		return "url:" + s.URL
	default:
		return ""
	}
}

// resolve parses the model builders from whichever input was provided,
// consulting the cache first.
func (s schemaInput) resolve() (*schema.ParseResult, error) {
	count := 0
	for _, v := range []string{s.File, s.URL, s.Content} {
		if v != "" {
			count++
		}
	}
	if count != 1 {
		return nil, fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", count)
	}

	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set RBINDGEN_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}

	var key string
	if cfg.CacheEnabled {
		key = makeCacheKey(s)
	}
	if key != "" {
		if cached, ok := schemaCache.bucket(s).Get(key); ok {
			return cached, nil
		}
	}

	var opts []schema.Option
	switch {
	case s.File != "":
		opts = append(opts, schema.WithFilePath(s.File))
	case s.URL != "":
		opts = append(opts, schema.WithFilePath(s.URL))
		if !cfg.AllowPrivateIPs {
			opts = append(opts, schema.WithHTTPClient(newSafeHTTPClient(cfg.FetchTimeout)))
		}
	case s.Content != "":
		opts = append(opts, schema.WithReader(strings.NewReader(s.Content)))
	}

	result, err := schema.ParseWithOptions(opts...)
	if err != nil {
		return nil, err
	}
	if key != "" {
		schemaCache.bucket(s).Add(key, result)
	}
	return result, nil
}

// loadRegistry reads the customization directory dir, falling back to
// RBINDGEN_CUSTOM_DIR. With neither set the registry is empty and every
// algorithm renders from the schema alone.
func loadRegistry(dir string) (*customize.Registry, error) {
	if dir == "" {
		dir = cfg.CustomDir
	}
	if dir == "" {
		return customize.NewRegistry(), nil
	}
	return customize.LoadDir(dir)
}
