package commands

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/orderable/orderable/internal/cliopt"
	"github.com/orderable/orderable/internal/cliutil"
	"github.com/orderable/orderable/orderable"
)

func RunGet(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var id int64
	fs.Int64Var(&id, "id", 0, "record id")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if id == 0 {
		fmt.Fprintln(os.Stderr, "missing --id")
		return 2
	}

	ctx := context.Background()
	list, err := cliutil.OpenList(ctx, g)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer list.Close()

	rec, err := list.Get(ctx, id)
	if err != nil {
		if orderable.IsKind(err, orderable.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "record not found: %d\n", id)
			return 1
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if cliutil.ParseOutputFormat(g.Format) == cliutil.FormatJSON {
		cliutil.PrintJSON(os.Stdout, rec)
		return 0
	}
	fmt.Printf("%d\t%d\n", rec.Position, rec.ID)
	return 0
}
