// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes rbindgen as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/rbindgen"
)

const serverInstructions = `rbindgen MCP server: generates R training functions (h2o.<module> and .h2o.train_segments_<module>) from model builder metadata.

Model builder metadata is passed as a schema object with exactly one of file, url, or content. Customizations are read from custom_dir (or RBINDGEN_CUSTOM_DIR).

Configuration: defaults are set through RBINDGEN_* environment variables in your MCP client config.

Key settings:
- RBINDGEN_CUSTOM_DIR: default customization directory
- RBINDGEN_STRICT (default: false): fail generate on warnings
- RBINDGEN_CACHE_FILE_TTL (default: 15m): cache TTL for local schema files
- RBINDGEN_CACHE_URL_TTL (default: 5m): cache TTL for fetched schemas
- RBINDGEN_CACHE_ENABLED (default: true): disable schema caching entirely
- RBINDGEN_LIST_LIMIT (default: 100): default page size for list_algorithms

Caching: parsed schemas are cached per session. File entries use path+mtime as key and are invalidated on change.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "rbindgen", Version: rbindgen.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Generate one R source file per algorithm from model builder metadata and customizations. Writes files to output_dir when given, otherwise returns the sources inline. Use algorithms to restrict generation. Returns issues (undocumented parameters, unused customization keys) with severities.",
	}, handleGenerate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_algorithms",
		Description: "List the algorithms in model builder metadata with their R module name, output file, and parameter count. Filter by algorithm glob (e.g. *boost*). Use offset/limit to paginate.",
	}, handleListAlgorithms)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "describe_algorithm",
		Description: "Describe the R functions that would be generated for one algorithm: merged parameter list with sources and defaults, segment variant parameters, and documentation coverage. Set render=true to include the generated R source.",
	}, handleDescribeAlgorithm)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// validateGlobPattern checks whether a glob pattern is syntactically valid.
// Call this once before a filter loop so matchGlob never sees a bad pattern.
func validateGlobPattern(pattern string) error {
	if pattern == "" || !strings.ContainsAny(pattern, "*?[") {
		return nil
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	return nil
}

// matchGlob reports whether name matches pattern. A pattern without glob
// metacharacters matches case-insensitively as an exact name.
func matchGlob(pattern, name string) bool {
	if pattern == "" {
		return true
	}
	if !strings.ContainsAny(pattern, "*?[") {
		return strings.EqualFold(pattern, name)
	}
	ok, _ := filepath.Match(pattern, name)
	return ok
}
