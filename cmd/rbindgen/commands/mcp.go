package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/rbindgen/internal/cliutil"
	"github.com/erraggy/rbindgen/internal/mcpserver"
)

// HandleMCP executes the mcp command, serving MCP over stdio until the
// client disconnects or the process is interrupted.
func HandleMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: rbindgen mcp\n\n")
		cliutil.Writef(fs.Output(), "Run an MCP server over stdio exposing the generate, list_algorithms and describe_algorithm tools.\n")
		cliutil.Writef(fs.Output(), "Defaults are read from RBINDGEN_* environment variables.\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
