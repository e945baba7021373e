package commands

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/orderable/orderable/internal/cliopt"
	"github.com/orderable/orderable/internal/cliutil"
)

func RunCompact(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("compact", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	ctx := context.Background()
	list, err := cliutil.OpenList(ctx, g)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer list.Close()

	if err := list.Compact(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	n, err := list.Count(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("compacted %d records to positions 1..%d\n", n, n)
	return 0
}
