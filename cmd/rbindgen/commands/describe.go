package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/erraggy/rbindgen/generator"
	"github.com/erraggy/rbindgen/internal/cliutil"
)

// DescribeFlags contains flags for the describe command
type DescribeFlags struct {
	CustomDir string
	Format    string
	Verbose   bool
}

// SetupDescribeFlags creates and configures a FlagSet for the describe command.
func SetupDescribeFlags() (*flag.FlagSet, *DescribeFlags) {
	fs := flag.NewFlagSet("describe", flag.ContinueOnError)
	flags := &DescribeFlags{}

	fs.StringVar(&flags.CustomDir, "c", "", "directory of per-algorithm customization files")
	fs.StringVar(&flags.CustomDir, "custom", "", "directory of per-algorithm customization files")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.Verbose, "verbose", false, "write debug logs to stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: rbindgen describe [flags] <file|url|-> <algorithm>...\n\n")
		cliutil.Writef(fs.Output(), "Show the merged parameter list of the R functions generated for each algorithm.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  rbindgen describe -c ./custom model_builders.json gbm\n")
		cliutil.Writef(fs.Output(), "  rbindgen describe --format json model_builders.json drf glm\n")
	}

	return fs, flags
}

// HandleDescribe executes the describe command
func HandleDescribe(args []string) error {
	fs, flags := SetupDescribeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return fmt.Errorf("describe command requires a schema and at least one algorithm")
	}

	return RunDescribe(os.Stdout, fs.Arg(0), fs.Args()[1:], flags)
}

// RunDescribe writes the description of each algorithm in algos to w.
func RunDescribe(w io.Writer, schemaPath string, algos []string, flags *DescribeFlags) error {
	logger := NewLogger(flags.Verbose)
	parseResult, err := LoadSchema(schemaPath, logger)
	if err != nil {
		return err
	}
	reg, err := LoadRegistry(flags.CustomDir, logger)
	if err != nil {
		return err
	}

	descriptions := make([]*generator.Description, 0, len(algos))
	for _, algo := range algos {
		mb := parseResult.Builder(algo)
		if mb == nil {
			return fmt.Errorf("no model builder %q in %s", algo, FormatSchemaPath(schemaPath))
		}
		d, err := generator.Describe(*mb, reg.View(algo))
		if err != nil {
			return fmt.Errorf("describing %s: %w", algo, err)
		}
		descriptions = append(descriptions, d)
	}

	if flags.Format != FormatText {
		if len(descriptions) == 1 {
			return OutputStructured(w, descriptions[0], flags.Format)
		}
		return OutputStructured(w, descriptions, flags.Format)
	}
	for i, d := range descriptions {
		if i > 0 {
			cliutil.Writef(w, "\n")
		}
		if err := writeDescription(w, d); err != nil {
			return err
		}
	}
	return nil
}

func writeDescription(w io.Writer, d *generator.Description) error {
	cliutil.Writef(w, "%s (%s)\n", d.ModelName, d.Algorithm)
	cliutil.Writef(w, "File: %s\n", d.FileName)
	cliutil.Writef(w, "REST API Version: %d\n", d.RestAPIVersion)
	cliutil.Writef(w, "Function: %s\n", d.Function)
	if d.BulkFunction != "" {
		cliutil.Writef(w, "Segment Function: %s\n", d.BulkFunction)
	}
	cliutil.Writef(w, "\nParameters (%d):\n", len(d.Params))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	cliutil.Writef(tw, "  NAME\tSOURCE\tTYPE\tDEFAULT\tDOC\n")
	for _, p := range d.Params {
		name := p.Name
		if p.SchemaName != "" {
			name += " <- " + p.SchemaName
		}
		doc := "yes"
		if !p.Documented {
			doc = cliutil.Colorize(cliutil.LevelWarning, "no")
		}
		cliutil.Writef(tw, "  %s\t%s\t%s\t%s\t%s\n", name, p.Source, p.Type, strings.ReplaceAll(p.Default, "\n", " "), doc)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if d.Ellipsis {
		cliutil.Writef(w, "  ...\n")
	}
	if len(d.BulkParams) > 0 {
		cliutil.Writef(w, "\nSegment Parameters: %s\n", strings.Join(d.BulkParams, ", "))
	}
	return nil
}
