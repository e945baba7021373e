package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/orderable/orderable/internal/cli/commands"
	"github.com/orderable/orderable/internal/cliopt"
)

// Execute runs the CLI and returns an exit code.
func Execute(argv []string) int {
	globalFS := flag.NewFlagSet("orderctl", flag.ContinueOnError)
	globalFS.SetOutput(os.Stderr)
	g := cliopt.DefaultGlobalOptions()
	cliopt.BindGlobalFlags(globalFS, &g)

	if err := globalFS.Parse(argv); err != nil {
		// flag package already printed the error
		return 2
	}

	args := globalFS.Args()
	if len(args) == 0 {
		PrintRootHelp(os.Stdout)
		return 0
	}

	verb := args[0]
	rest := args[1:]

	switch verb {
	case "--help", "-h", "help":
		PrintRootHelp(os.Stdout)
		return 0
	case "list":
		return commands.RunList(g, rest)
	case "get":
		return commands.RunGet(g, rest)
	case "next":
		return commands.RunNext(g, rest)
	case "move":
		return commands.RunMove(g, rest)
	case "assign":
		return commands.RunAssign(g, rest)
	case "compact":
		return commands.RunCompact(g, rest)
	case "check":
		return commands.RunCheck(g, rest)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", verb)
		PrintRootHelp(os.Stderr)
		return 2
	}
}
