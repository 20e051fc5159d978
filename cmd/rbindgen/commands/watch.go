package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/erraggy/rbindgen/customize"
	"github.com/erraggy/rbindgen/internal/cliutil"
)

// WatchFlags contains flags for the watch command
type WatchFlags struct {
	GenerateFlags
	Debounce time.Duration
}

// SetupWatchFlags creates and configures a FlagSet for the watch command.
func SetupWatchFlags() (*flag.FlagSet, *WatchFlags) {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	flags := &WatchFlags{}
	registerGenerateFlags(fs, &flags.GenerateFlags)
	fs.DurationVar(&flags.Debounce, "debounce", 200*time.Millisecond, "quiet period after a change before regenerating")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: rbindgen watch [flags] <file>\n\n")
		cliutil.Writef(fs.Output(), "Generate bindings, then regenerate whenever the schema file or a customization file changes.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  rbindgen watch -o ./R -c ./custom model_builders.json\n")
	}

	return fs, flags
}

// HandleWatch executes the watch command. It runs until interrupted.
func HandleWatch(args []string) error {
	fs, flags := SetupWatchFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("watch command requires exactly one schema file")
	}
	schemaPath := fs.Arg(0)
	if schemaPath == StdinFilePath {
		return fmt.Errorf("watch cannot read the schema from stdin")
	}
	if strings.HasPrefix(schemaPath, "http://") || strings.HasPrefix(schemaPath, "https://") {
		return fmt.Errorf("watch requires a local schema file, not a URL")
	}
	if flags.Output == "" {
		fs.Usage()
		return fmt.Errorf("output directory is required (use -o or --output)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return RunWatch(ctx, os.Stdout, schemaPath, flags)
}

// RunWatch generates once and then after every relevant change until ctx
// is done. Generation failures are reported and do not stop the watch.
func RunWatch(ctx context.Context, w io.Writer, schemaPath string, flags *WatchFlags) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	// Directories are watched so that editors which replace files on save
	// are still seen.
	if err := watcher.Add(filepath.Dir(schemaPath)); err != nil {
		return fmt.Errorf("watching %s: %w", schemaPath, err)
	}
	if flags.CustomDir != "" {
		if err := watcher.Add(flags.CustomDir); err != nil {
			return fmt.Errorf("watching %s: %w", flags.CustomDir, err)
		}
	}

	regenerate := func() {
		if err := RunGenerate(ctx, w, schemaPath, &flags.GenerateFlags); err != nil {
			cliutil.Writef(w, "%s\n", cliutil.Colorize(cliutil.LevelError, "Error: "+err.Error()))
		}
		cliutil.Writef(w, "Watching for changes...\n")
	}
	regenerate()

	relevant := func(name string) bool {
		if filepath.Clean(name) == filepath.Clean(schemaPath) {
			return true
		}
		if flags.CustomDir == "" || filepath.Dir(name) != filepath.Clean(flags.CustomDir) {
			return false
		}
		_, ok := customize.FormatFromPath(name)
		return ok
	}
	return watchLoop(ctx, watcher, flags.Debounce, relevant, regenerate)
}

// watchLoop calls regenerate once events matching relevant have been quiet
// for debounce.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, debounce time.Duration, relevant func(string) bool, regenerate func()) error {
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if relevant(event.Name) {
				timer.Reset(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching: %w", err)
		case <-timer.C:
			regenerate()
		}
	}
}
