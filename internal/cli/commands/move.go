package commands

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/orderable/orderable/internal/cliopt"
	"github.com/orderable/orderable/internal/cliutil"
)

func RunMove(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("move", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var id, to int64
	fs.Int64Var(&id, "id", 0, "record id")
	fs.Int64Var(&to, "to", 0, "target position (1-based)")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if id == 0 || to == 0 {
		fmt.Fprintln(os.Stderr, "missing --id or --to")
		return 2
	}

	ctx := context.Background()
	list, err := cliutil.OpenList(ctx, g)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer list.Close()

	if err := list.ReorderSingle(ctx, id, to); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("moved %d to position %d\n", id, to)
	return 0
}
