package main

import (
	"fmt"
	"os"

	"github.com/erraggy/rbindgen"
	"github.com/erraggy/rbindgen/cmd/rbindgen/commands"
	"github.com/erraggy/rbindgen/internal/cliutil"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		cliutil.DisableColor()
	}

	var err error
	switch command {
	case "version", "-v", "--version":
		fmt.Printf("rbindgen v%s (%s)\n", rbindgen.Version(), rbindgen.Commit())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "generate":
		err = commands.HandleGenerate(os.Args[2:])
	case "describe":
		err = commands.HandleDescribe(os.Args[2:])
	case "list":
		err = commands.HandleList(os.Args[2:])
	case "watch":
		err = commands.HandleWatch(os.Args[2:])
	case "mcp":
		err = commands.HandleMCP(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var commandNames = []string{"generate", "describe", "list", "watch", "mcp", "version", "help"}

// suggestCommand returns the command closest to input within an edit
// distance of 2, or "".
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func printUsage() {
	fmt.Fprint(os.Stderr, usage)
}

const usage = `rbindgen - R bindings generator for model builder APIs

Usage:
  rbindgen <command> [flags] [args]

Commands:
  generate   Generate one R source file per model builder
  describe   Show the merged parameters of an algorithm's R functions
  list       List the model builders in a schema
  watch      Regenerate whenever the schema or customizations change
  mcp        Run an MCP server over stdio
  version    Print version information
  help       Show this help

Run 'rbindgen <command> --help' for command flags.
`
