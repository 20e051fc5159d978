package generator

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/rbindgen/customize"
	"github.com/erraggy/rbindgen/generrors"
	"github.com/erraggy/rbindgen/internal/issues"
	"github.com/erraggy/rbindgen/internal/options"
	"github.com/erraggy/rbindgen/internal/severity"
	"github.com/erraggy/rbindgen/schema"
)

// Severity indicates the severity level of a generation issue
type Severity = severity.Severity

const (
	// SeverityInfo marks notices such as undocumented parameters
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning marks customizations that matched nothing
	SeverityWarning = severity.SeverityWarning
	// SeverityError marks problems in the generated output
	SeverityError = severity.SeverityError
	// SeverityCritical marks modules that could not be generated
	SeverityCritical = severity.SeverityCritical
)

// GenerateIssue represents a single generation issue
type GenerateIssue = issues.Issue

// GeneratedFile represents a single generated file
type GeneratedFile struct {
	// Name is the file name (e.g., "gbm.R", "randomforest.R")
	Name string
	// Algorithm is the model builder the file was generated from
	Algorithm string
	// Content is the generated R source
	Content []byte
}

// GenerateResult contains the results of generating bindings
type GenerateResult struct {
	// Files contains the generated files in algorithm order
	Files []GeneratedFile
	// Modules holds the generated modules, parallel to Files
	Modules []*Module
	// SourcePath is the schema file path or URL
	SourcePath string
	// SourceFormat is the format of the schema source
	SourceFormat schema.SourceFormat
	// Issues contains all generation issues
	Issues []GenerateIssue
	// InfoCount is the total number of info messages
	InfoCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// CriticalCount is the total number of critical issues
	CriticalCount int
	// Success is true if generation completed without critical issues
	Success bool
	// LoadTime is the time taken to load the schema
	LoadTime time.Duration
	// GenerateTime is the time taken to generate the bindings
	GenerateTime time.Duration
	// SourceSize is the size of the schema source in bytes
	SourceSize int64
}

// HasCriticalIssues returns true if there are any critical issues
func (r *GenerateResult) HasCriticalIssues() bool {
	return r.CriticalCount > 0
}

// HasWarnings returns true if there are any warnings
func (r *GenerateResult) HasWarnings() bool {
	return r.WarningCount > 0
}

// GetFile returns the generated file with the given name, or nil if not found
func (r *GenerateResult) GetFile(name string) *GeneratedFile {
	for i := range r.Files {
		if r.Files[i].Name == name {
			return &r.Files[i]
		}
	}
	return nil
}

// Generator generates R bindings from model builder metadata
type Generator struct {
	// Registry holds the customizations. If nil, every algorithm is
	// generated from its schema alone.
	Registry *customize.Registry

	// Algorithms restricts generation to these algorithm keys.
	// If empty, every model builder in the schema is generated.
	Algorithms []string

	// Workers bounds the number of algorithms generated concurrently.
	// Default: runtime.GOMAXPROCS(0)
	Workers int

	// Header holds the lines that open every generated file.
	// Default: DefaultHeader
	Header []string

	// StrictMode causes generation to fail on warnings as well as critical issues
	StrictMode bool

	// IncludeInfo determines whether to include informational messages
	IncludeInfo bool

	// UserAgent is the User-Agent string used when fetching schema URLs
	UserAgent string

	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger schema.Logger
}

// New creates a new Generator instance with default settings
func New() *Generator {
	return &Generator{
		Workers:     runtime.GOMAXPROCS(0),
		Header:      DefaultHeader,
		IncludeInfo: true,
	}
}

func (g *Generator) log() schema.Logger {
	return schema.OrNop(g.Logger)
}

// Generate parses the schema at path (a file or URL) and generates bindings.
func (g *Generator) Generate(ctx context.Context, path string) (*GenerateResult, error) {
	p := schema.New()
	if g.UserAgent != "" {
		p.UserAgent = g.UserAgent
	}
	p.Logger = g.Logger
	pr, err := p.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	return g.GenerateParsed(ctx, pr)
}

// GenerateParsed generates bindings for an already parsed schema.
func (g *Generator) GenerateParsed(ctx context.Context, pr *schema.ParseResult) (*GenerateResult, error) {
	start := time.Now()

	builders, err := g.selectBuilders(pr)
	if err != nil {
		return nil, err
	}

	workers := g.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	header := g.Header
	if header == nil {
		header = DefaultHeader
	}

	modules := make([]*Module, len(builders))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, mb := range builders {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := BuildModule(*mb, g.Registry.View(mb.Algo))
			if err != nil {
				return err
			}
			g.log().Debug("generated module", "algo", mb.Algo, "file", m.FileName+".R", "params", len(m.Params.Params))
			modules[i] = m
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}

	result := &GenerateResult{
		Files:        make([]GeneratedFile, 0, len(modules)),
		Modules:      modules,
		SourcePath:   pr.SourcePath,
		SourceFormat: pr.SourceFormat,
		LoadTime:     pr.LoadTime,
		SourceSize:   pr.SourceSize,
	}
	for _, m := range modules {
		result.Files = append(result.Files, GeneratedFile{
			Name:      m.FileName + ".R",
			Algorithm: m.Algorithm,
			Content:   []byte(m.Render(header)),
		})
		for _, issue := range m.Issues {
			if issue.Severity == severity.SeverityInfo && !g.IncludeInfo {
				continue
			}
			result.Issues = append(result.Issues, issue)
		}
	}
	if dup := duplicateFileName(result.Files); dup != "" {
		return nil, fmt.Errorf("generator: %w", &generrors.ConfigError{
			Option:  "file_name",
			Value:   dup,
			Message: "more than one algorithm writes this file",
		})
	}

	counts := issues.Count(result.Issues)
	result.InfoCount = counts.Info
	result.WarningCount = counts.Warning
	result.CriticalCount = counts.Critical
	result.Success = !result.HasCriticalIssues()
	result.GenerateTime = time.Since(start)

	g.log().Info("generated bindings", "modules", len(modules), "warnings", result.WarningCount, "elapsed", result.GenerateTime)

	if g.StrictMode && (result.HasCriticalIssues() || result.HasWarnings()) {
		return result, fmt.Errorf("generator: strict mode: %d warning(s), %d critical issue(s)", result.WarningCount, result.CriticalCount)
	}
	return result, nil
}

// selectBuilders returns the model builders to generate, in algorithm order.
func (g *Generator) selectBuilders(pr *schema.ParseResult) ([]*schema.ModelBuilder, error) {
	if pr == nil {
		return nil, fmt.Errorf("generator: %w", &generrors.ConfigError{Option: "input", Message: "parse result is nil"})
	}
	if len(g.Algorithms) == 0 {
		return pr.Builders, nil
	}
	algos := slices.Clone(g.Algorithms)
	slices.Sort(algos)
	algos = slices.Compact(algos)
	builders := make([]*schema.ModelBuilder, 0, len(algos))
	for _, algo := range algos {
		mb := pr.Builder(algo)
		if mb == nil {
			return nil, fmt.Errorf("generator: %w", &generrors.ConfigError{
				Option:  "algorithms",
				Value:   algo,
				Message: "no such model builder in " + pr.SourcePath,
			})
		}
		builders = append(builders, mb)
	}
	return builders, nil
}

func duplicateFileName(files []GeneratedFile) string {
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		if seen[f.Name] {
			return f.Name
		}
		seen[f.Name] = true
	}
	return ""
}

// Option is a function that configures a generate operation
type Option func(*generateConfig) error

// generateConfig holds configuration for a generate operation
type generateConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	parsed   *schema.ParseResult

	registry    *customize.Registry
	algorithms  []string
	workers     int
	header      []string
	strictMode  bool
	includeInfo bool
	userAgent   string
	logger      schema.Logger
}

// GenerateWithOptions generates bindings using functional options.
//
// Example:
//
//	result, err := generator.GenerateWithOptions(ctx,
//	    generator.WithFilePath("model_builders.json"),
//	    generator.WithRegistry(reg),
//	    generator.WithAlgorithms("gbm", "glm"),
//	)
func GenerateWithOptions(ctx context.Context, opts ...Option) (*GenerateResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("generator: invalid options: %w", err)
	}

	g := &Generator{
		Registry:    cfg.registry,
		Algorithms:  cfg.algorithms,
		Workers:     cfg.workers,
		Header:      cfg.header,
		StrictMode:  cfg.strictMode,
		IncludeInfo: cfg.includeInfo,
		UserAgent:   cfg.userAgent,
		Logger:      cfg.logger,
	}

	if cfg.filePath != nil {
		return g.Generate(ctx, *cfg.filePath)
	}
	return g.GenerateParsed(ctx, cfg.parsed)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*generateConfig, error) {
	cfg := &generateConfig{
		workers:     runtime.GOMAXPROCS(0),
		header:      DefaultHeader,
		includeInfo: true,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"must specify an input source (use WithFilePath or WithParsed)",
		"must specify exactly one input source",
		cfg.filePath != nil, cfg.parsed != nil,
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithFilePath specifies a schema file path or URL as the input source
func WithFilePath(path string) Option {
	return func(cfg *generateConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithParsed specifies an already parsed schema as the input source
func WithParsed(result *schema.ParseResult) Option {
	return func(cfg *generateConfig) error {
		if result == nil {
			return &generrors.ConfigError{Option: "parsed", Message: "parse result cannot be nil"}
		}
		cfg.parsed = result
		return nil
	}
}

// WithRegistry sets the customizations applied during generation
func WithRegistry(r *customize.Registry) Option {
	return func(cfg *generateConfig) error {
		cfg.registry = r
		return nil
	}
}

// WithAlgorithms restricts generation to the named algorithms
func WithAlgorithms(algos ...string) Option {
	return func(cfg *generateConfig) error {
		cfg.algorithms = algos
		return nil
	}
}

// WithWorkers bounds the number of algorithms generated concurrently
// Default: runtime.GOMAXPROCS(0)
func WithWorkers(n int) Option {
	return func(cfg *generateConfig) error {
		if n < 1 {
			return &generrors.ConfigError{Option: "workers", Value: n, Message: "must be at least 1"}
		}
		cfg.workers = n
		return nil
	}
}

// WithHeader replaces the lines that open every generated file
func WithHeader(lines ...string) Option {
	return func(cfg *generateConfig) error {
		cfg.header = append([]string{}, lines...)
		return nil
	}
}

// WithStrictMode enables or disables strict mode (fail on warnings)
// Default: false
func WithStrictMode(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.strictMode = enabled
		return nil
	}
}

// WithIncludeInfo enables or disables informational messages
// Default: true
func WithIncludeInfo(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.includeInfo = enabled
		return nil
	}
}

// WithUserAgent sets the User-Agent string for schema URL requests
func WithUserAgent(ua string) Option {
	return func(cfg *generateConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithLogger sets the structured logger for debug output
func WithLogger(l schema.Logger) Option {
	return func(cfg *generateConfig) error {
		cfg.logger = l
		return nil
	}
}
