package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/erraggy/rbindgen/generator"
	"github.com/erraggy/rbindgen/internal/cliutil"
)

// GenerateFlags contains flags for the generate command
type GenerateFlags struct {
	Output     string
	CustomDir  string
	Algorithms string
	Workers    int
	Strict     bool
	NoInfo     bool
	Verbose    bool
}

// SetupGenerateFlags creates and configures a FlagSet for the generate command.
// Returns the FlagSet and a GenerateFlags struct with bound flag variables.
func SetupGenerateFlags() (*flag.FlagSet, *GenerateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := &GenerateFlags{}
	registerGenerateFlags(fs, flags)

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: rbindgen generate [flags] <file|url|->\n\n")
		cliutil.Writef(fs.Output(), "Generate one R source file per model builder.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  rbindgen generate -o ./R -c ./custom model_builders.json\n")
		cliutil.Writef(fs.Output(), "  rbindgen generate -o ./R -a gbm,glm http://localhost:54321/3/ModelBuilders\n")
		cliutil.Writef(fs.Output(), "  curl -s http://localhost:54321/3/ModelBuilders | rbindgen generate -o ./R -\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - Files whose content is unchanged are not rewritten\n")
		cliutil.Writef(fs.Output(), "  - --strict fails on warnings such as documentation for unknown parameters\n")
	}

	return fs, flags
}

func registerGenerateFlags(fs *flag.FlagSet, flags *GenerateFlags) {
	fs.StringVar(&flags.Output, "o", "", "output directory for generated files (required)")
	fs.StringVar(&flags.Output, "output", "", "output directory for generated files (required)")
	fs.StringVar(&flags.CustomDir, "c", "", "directory of per-algorithm customization files")
	fs.StringVar(&flags.CustomDir, "custom", "", "directory of per-algorithm customization files")
	fs.StringVar(&flags.Algorithms, "a", "", "comma-separated algorithms to generate (default: all)")
	fs.StringVar(&flags.Algorithms, "algorithms", "", "comma-separated algorithms to generate (default: all)")
	fs.IntVar(&flags.Workers, "j", runtime.GOMAXPROCS(0), "number of algorithms generated concurrently")
	fs.BoolVar(&flags.Strict, "strict", false, "fail on any generation issues (even warnings)")
	fs.BoolVar(&flags.NoInfo, "no-info", false, "suppress info messages such as undocumented parameters")
	fs.BoolVar(&flags.Verbose, "verbose", false, "write debug logs to stderr")
}

// HandleGenerate executes the generate command
func HandleGenerate(args []string) error {
	fs, flags := SetupGenerateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("generate command requires exactly one file path, URL, or '-' for stdin")
	}
	if flags.Output == "" {
		fs.Usage()
		return fmt.Errorf("output directory is required (use -o or --output)")
	}

	return RunGenerate(context.Background(), os.Stdout, fs.Arg(0), flags)
}

// RunGenerate generates bindings for schemaPath and reports to w.
func RunGenerate(ctx context.Context, w io.Writer, schemaPath string, flags *GenerateFlags) error {
	startTime := time.Now()
	logger := NewLogger(flags.Verbose)

	parseResult, err := LoadSchema(schemaPath, logger)
	if err != nil {
		return err
	}
	reg, err := LoadRegistry(flags.CustomDir, logger)
	if err != nil {
		return err
	}

	result, err := generator.GenerateWithOptions(ctx,
		generator.WithParsed(parseResult),
		generator.WithRegistry(reg),
		generator.WithAlgorithms(SplitList(flags.Algorithms)...),
		generator.WithWorkers(flags.Workers),
		generator.WithStrictMode(flags.Strict),
		generator.WithIncludeInfo(!flags.NoInfo),
		generator.WithLogger(logger),
	)
	totalTime := time.Since(startTime)
	if result != nil {
		cliutil.Writef(w, "R Bindings Generator\n")
		cliutil.Writef(w, "====================\n\n")
		OutputSchemaHeader(w, schemaPath, parseResult)
		cliutil.Writef(w, "Total Time: %v\n\n", totalTime)
		OutputIssues(w, result.Issues)
	}
	if err != nil {
		return fmt.Errorf("generating bindings: %w", err)
	}

	if err := result.WriteFiles(flags.Output); err != nil {
		return fmt.Errorf("writing files: %w", err)
	}

	cliutil.Writef(w, "Generated Files (%d):\n", len(result.Files))
	for _, file := range result.Files {
		cliutil.Writef(w, "  - %s (%s)\n", filepath.Join(flags.Output, file.Name), humanize.Bytes(uint64(len(file.Content))))
	}
	cliutil.Writef(w, "\n")

	if !result.Success {
		cliutil.Writef(w, "%s\n", cliutil.Colorize(cliutil.LevelError,
			fmt.Sprintf("✗ Generation completed with %d critical issue(s)", result.CriticalCount)))
		return fmt.Errorf("generation failed with %d critical issue(s)", result.CriticalCount)
	}
	summary := "✓ Generation successful"
	if result.InfoCount > 0 || result.WarningCount > 0 {
		summary += fmt.Sprintf(" (%d info, %d warnings)", result.InfoCount, result.WarningCount)
	}
	cliutil.Writef(w, "%s\n", cliutil.Colorize(cliutil.LevelSuccess, summary))
	return nil
}
