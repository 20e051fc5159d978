package schema

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/erraggy/rbindgen"
	"github.com/erraggy/rbindgen/generrors"
)

// Parser loads model builder metadata.
type Parser struct {
	// UserAgent is the User-Agent string used when fetching URLs
	// Defaults to rbindgen.UserAgent() if not set
	UserAgent string
	// HTTPClient is the HTTP client used for fetching URLs.
	// If nil, a default client with 30-second timeout is created.
	HTTPClient *http.Client
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger Logger
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{
		UserAgent: rbindgen.UserAgent(),
	}
}

func (p *Parser) log() Logger {
	return OrNop(p.Logger)
}

// SourceFormat represents the format of the source metadata
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// ParseResult contains the parsed model builders and load metadata.
// Callers should treat it as read-only; it may be cached and shared.
type ParseResult struct {
	// SourcePath is the file path or URL the metadata was read from.
	// For ParseReader and ParseBytes it is "ParseReader.<ext>" or "ParseBytes.<ext>".
	SourcePath string
	// SourceFormat is the format of the source data
	SourceFormat SourceFormat
	// Builders holds the model builders sorted by algorithm key
	Builders []*ModelBuilder
	// LoadTime is the time taken to read the source data
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
}

// Builder returns the model builder for algo, or nil.
func (pr *ParseResult) Builder(algo string) *ModelBuilder {
	i, found := slices.BinarySearchFunc(pr.Builders, algo, func(mb *ModelBuilder, key string) int {
		return strings.Compare(mb.Algo, key)
	})
	if !found {
		return nil
	}
	return pr.Builders[i]
}

// Algorithms returns the algorithm keys in sorted order.
func (pr *ParseResult) Algorithms() []string {
	algos := make([]string, len(pr.Builders))
	for i, mb := range pr.Builders {
		algos[i] = mb.Algo
	}
	return algos
}

// Parse parses model builder metadata from a file or URL.
// For URLs (http:// or https://), the content is fetched over HTTP.
func (p *Parser) Parse(path string) (*ParseResult, error) {
	var (
		data   []byte
		format SourceFormat
		err    error
	)

	loadStart := time.Now()
	if isURL(path) {
		var contentType string
		data, contentType, err = p.fetchURL(path)
		if err != nil {
			return nil, err
		}
		format = detectFormatFromURL(path, contentType)
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("schema: failed to read file: %w", err)
		}
		format = detectFormatFromPath(path)
	}
	loadTime := time.Since(loadStart)

	res, err := p.parseBytes(data, path)
	if err != nil {
		return nil, err
	}
	res.SourcePath = path
	res.LoadTime = loadTime
	if format != SourceFormatUnknown {
		res.SourceFormat = format
	}
	return res, nil
}

// ParseReader parses model builder metadata from an io.Reader.
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	loadStart := time.Now()
	data, err := io.ReadAll(r)
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, fmt.Errorf("schema: failed to read data: %w", err)
	}
	res, err := p.parseBytes(data, "ParseReader")
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	res.SourcePath = "ParseReader." + string(res.SourceFormat)
	return res, nil
}

// ParseBytes parses model builder metadata from a byte slice.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	res, err := p.parseBytes(data, "ParseBytes")
	if err != nil {
		return nil, err
	}
	res.SourcePath = "ParseBytes." + string(res.SourceFormat)
	return res, nil
}

func (p *Parser) parseBytes(data []byte, source string) (*ParseResult, error) {
	builders, err := decodeBuilders(data, source)
	if err != nil {
		return nil, err
	}
	sort.Slice(builders, func(i, j int) bool { return builders[i].Algo < builders[j].Algo })

	format := detectFormatFromContent(data)
	if format == SourceFormatUnknown {
		format = SourceFormatYAML
	}
	p.log().Debug("parsed model builders", "source", source, "builders", len(builders), "bytes", len(data))

	return &ParseResult{
		SourceFormat: format,
		Builders:     builders,
		SourceSize:   int64(len(data)),
	}, nil
}

// fetchURL fetches content from a URL and returns the bytes and Content-Type header
func (p *Parser) fetchURL(urlStr string) ([]byte, string, error) {
	client := p.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequest(http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, "", fmt.Errorf("schema: failed to create request: %w", err)
	}
	userAgent := p.UserAgent
	if userAgent == "" {
		userAgent = rbindgen.UserAgent()
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	p.log().Debug("fetching model builders", "url", urlStr)
	resp, err := client.Do(req) //nolint:gosec // URL is user-provided input
	if err != nil {
		return nil, "", fmt.Errorf("schema: failed to fetch URL: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, "", &generrors.SchemaError{
			Source:  urlStr,
			Message: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, resp.Status),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("schema: failed to read response body: %w", err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

func detectFormatFromPath(path string) SourceFormat {
	switch filepath.Ext(path) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

func detectFormatFromURL(urlStr, contentType string) SourceFormat {
	if u, err := url.Parse(urlStr); err == nil && u.Path != "" {
		if format := detectFormatFromPath(u.Path); format != SourceFormatUnknown {
			return format
		}
	}
	if contentType != "" {
		ct := strings.ToLower(contentType)
		if idx := strings.Index(ct, ";"); idx != -1 {
			ct = ct[:idx]
		}
		switch strings.TrimSpace(ct) {
		case "application/json":
			return SourceFormatJSON
		case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
			return SourceFormatYAML
		}
	}
	return SourceFormatUnknown
}
