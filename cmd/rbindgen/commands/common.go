// Package commands provides CLI command handlers for rbindgen.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/rbindgen"
	"github.com/erraggy/rbindgen/customize"
	"github.com/erraggy/rbindgen/generator"
	"github.com/erraggy/rbindgen/internal/cliutil"
	"github.com/erraggy/rbindgen/internal/severity"
	"github.com/erraggy/rbindgen/schema"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured writes data in the specified format (json or yaml) to w.
func OutputStructured(w io.Writer, data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	cliutil.Writef(w, "%s\n", strings.TrimRight(string(bytes), "\n"))
	return nil
}

// FormatSchemaPath returns a display-friendly path for the schema source.
func FormatSchemaPath(path string) string {
	if path == StdinFilePath {
		return "<stdin>"
	}
	return path
}

// SplitList splits a comma-separated flag value, dropping empty entries.
func SplitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// NewLogger returns a debug logger writing to stderr when verbose is set,
// and nil otherwise.
func NewLogger(verbose bool) schema.Logger {
	if !verbose {
		return nil
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	return schema.NewSlogAdapter(slog.New(handler))
}

// LoadSchema parses model builder metadata from a file, URL, or stdin.
func LoadSchema(path string, logger schema.Logger) (*schema.ParseResult, error) {
	p := schema.New()
	p.Logger = logger
	if path == StdinFilePath {
		result, err := p.ParseReader(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("parsing stdin: %w", err)
		}
		return result, nil
	}
	result, err := p.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}
	return result, nil
}

// LoadRegistry reads the customization directory. An empty dir yields an
// empty registry.
func LoadRegistry(dir string, logger schema.Logger) (*customize.Registry, error) {
	if dir == "" {
		return customize.NewRegistry(), nil
	}
	l := &customize.Loader{Logger: logger}
	reg, err := l.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("loading customizations: %w", err)
	}
	return reg, nil
}

// OutputSchemaHeader writes the common schema summary.
func OutputSchemaHeader(w io.Writer, path string, pr *schema.ParseResult) {
	cliutil.Writef(w, "rbindgen version: %s\n", rbindgen.Version())
	cliutil.Writef(w, "Schema: %s\n", FormatSchemaPath(path))
	cliutil.Writef(w, "Source Size: %s\n", humanize.Bytes(uint64(max(pr.SourceSize, 0))))
	cliutil.Writef(w, "Model Builders: %d\n", len(pr.Builders))
	cliutil.Writef(w, "Load Time: %v\n", pr.LoadTime)
}

// OutputIssues writes issues one per line, colored by severity.
func OutputIssues(w io.Writer, list []generator.GenerateIssue) {
	if len(list) == 0 {
		return
	}
	cliutil.Writef(w, "Generation Issues (%d):\n", len(list))
	for _, issue := range list {
		cliutil.Writef(w, "  %s\n", cliutil.Colorize(issueLevel(issue.Severity), issue.String()))
	}
	cliutil.Writef(w, "\n")
}

func issueLevel(s severity.Severity) cliutil.Level {
	switch {
	case s.AtLeast(severity.SeverityError):
		return cliutil.LevelError
	case s == severity.SeverityWarning:
		return cliutil.LevelWarning
	default:
		return cliutil.LevelInfo
	}
}
