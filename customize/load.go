package customize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/rbindgen/generrors"
	"github.com/erraggy/rbindgen/schema"
)

// Format is the syntax of a customization file.
type Format string

const (
	// FormatYAML covers .yaml, .yml and .json files
	FormatYAML Format = "yaml"
	// FormatTOML covers .toml files
	FormatTOML Format = "toml"
)

// FormatFromPath returns the format implied by the file extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	default:
		return "", false
	}
}

// AlgoFromPath returns the algorithm a customization file applies to: its
// base name without extension. "defaults" files apply to every algorithm.
func AlgoFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Parse decodes one customization document. file and algo only label errors.
func Parse(data []byte, format Format, file, algo string) (*Customizations, error) {
	var raw map[string]any
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	case FormatTOML:
		err = toml.Unmarshal(data, &raw)
	default:
		return nil, &generrors.ConfigError{Option: "format", Value: format, Message: "unsupported customization format"}
	}
	if err != nil {
		return nil, &generrors.CustomizationError{File: file, Algorithm: algo, Message: "failed to decode", Cause: err}
	}

	d := &decoder{file: file, algo: algo}
	c := d.decode(raw)
	if d.err != nil {
		return nil, d.err
	}
	return c, nil
}

// Loader reads customization files.
type Loader struct {
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger schema.Logger
}

// LoadFile reads one customization file and returns the algorithm it applies to.
func (l *Loader) LoadFile(path string) (string, *Customizations, error) {
	format, ok := FormatFromPath(path)
	if !ok {
		return "", nil, &generrors.ConfigError{Option: "custom", Value: path, Message: "unsupported customization file extension"}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("customize: failed to read file: %w", err)
	}
	algo := AlgoFromPath(path)
	c, err := Parse(data, format, path, algo)
	if err != nil {
		return "", nil, err
	}
	schema.OrNop(l.Logger).Debug("loaded customizations", "file", path, "algo", algo)
	return algo, c, nil
}

// LoadDir reads every YAML and TOML file in dir into a registry. Other files
// and subdirectories are ignored. Problems in all files are reported together.
func (l *Loader) LoadDir(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("customize: failed to read directory: %w", err)
	}

	reg := NewRegistry()
	sources := make(map[string]string)
	var errs error
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if _, ok := FormatFromPath(name); !ok {
			continue
		}
		path := filepath.Join(dir, name)
		algo, c, err := l.LoadFile(path)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if prev, dup := sources[algo]; dup {
			errs = multierr.Append(errs, &generrors.CustomizationError{
				File:      path,
				Algorithm: algo,
				Message:   "also customized by " + filepath.Base(prev),
			})
			continue
		}
		sources[algo] = path
		reg.Set(algo, c)
	}
	if errs != nil {
		return nil, errs
	}
	schema.OrNop(l.Logger).Debug("loaded customization directory", "dir", dir, "files", len(sources))
	return reg, nil
}

// LoadDir reads a customization directory with a default Loader.
func LoadDir(dir string) (*Registry, error) {
	return (&Loader{}).LoadDir(dir)
}

// LoadFile reads one customization file with a default Loader.
func LoadFile(path string) (string, *Customizations, error) {
	return (&Loader{}).LoadFile(path)
}
