package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/erraggy/rbindgen/generator"
	"github.com/erraggy/rbindgen/internal/cliutil"
)

// ListFlags contains flags for the list command
type ListFlags struct {
	CustomDir string
	Format    string
}

// AlgorithmEntry is one row of the list command output.
type AlgorithmEntry struct {
	Algorithm  string `json:"algorithm" yaml:"algorithm"`
	ModelName  string `json:"model_name" yaml:"model_name"`
	Function   string `json:"function" yaml:"function"`
	FileName   string `json:"file_name" yaml:"file_name"`
	Parameters int    `json:"parameters" yaml:"parameters"`
	Customized bool   `json:"customized" yaml:"customized"`
}

// SetupListFlags creates and configures a FlagSet for the list command.
func SetupListFlags() (*flag.FlagSet, *ListFlags) {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	flags := &ListFlags{}

	fs.StringVar(&flags.CustomDir, "c", "", "directory of per-algorithm customization files")
	fs.StringVar(&flags.CustomDir, "custom", "", "directory of per-algorithm customization files")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: rbindgen list [flags] <file|url|->\n\n")
		cliutil.Writef(fs.Output(), "List the model builders in a schema and the R files they generate.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
	}

	return fs, flags
}

// HandleList executes the list command
func HandleList(args []string) error {
	fs, flags := SetupListFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("list command requires exactly one file path, URL, or '-' for stdin")
	}

	return RunList(os.Stdout, fs.Arg(0), flags)
}

// RunList writes one entry per model builder in schemaPath to w.
func RunList(w io.Writer, schemaPath string, flags *ListFlags) error {
	parseResult, err := LoadSchema(schemaPath, nil)
	if err != nil {
		return err
	}
	reg, err := LoadRegistry(flags.CustomDir, nil)
	if err != nil {
		return err
	}

	entries := make([]AlgorithmEntry, 0, len(parseResult.Builders))
	for _, mb := range parseResult.Builders {
		view := reg.View(mb.Algo)
		entries = append(entries, AlgorithmEntry{
			Algorithm:  mb.Algo,
			ModelName:  view.ModelName(),
			Function:   "h2o." + view.ModuleName(),
			FileName:   view.FileName() + ".R",
			Parameters: len(mb.Parameters),
			Customized: view.Own() != nil,
		})
	}

	if flags.Format != FormatText {
		return OutputStructured(w, entries, flags.Format)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	cliutil.Writef(tw, "ALGORITHM\tFUNCTION\tFILE\tPARAMS\tSEGMENTS\n")
	for _, e := range entries {
		segments := "yes"
		if !generator.HasBulkVariant(e.Algorithm) {
			segments = "no"
		}
		cliutil.Writef(tw, "%s\t%s\t%s\t%d\t%s\n", e.Algorithm, e.Function, e.FileName, e.Parameters, segments)
	}
	return tw.Flush()
}
