package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/orderable/orderable/internal/cliopt"
	"github.com/orderable/orderable/internal/cliutil"
)

func RunCheck(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
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

	indexes, err := list.Indexes(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	unique, err := list.HasUniqueOrdering(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if cliutil.ParseOutputFormat(g.Format) == cliutil.FormatJSON {
		cliutil.PrintJSON(os.Stdout, map[string]any{
			"indexes":         indexes,
			"unique_ordering": unique,
		})
		return 0
	}

	for _, ix := range indexes {
		kind := "index"
		if ix.Unique {
			kind = "unique index"
		}
		fmt.Printf("%s %s (%s)\n", kind, ix.Name, strings.Join(ix.Columns, ", "))
	}
	col := list.Spec().OrderColumn
	if unique {
		fmt.Printf("ordering column %q is covered by a unique index\n", col)
	} else {
		fmt.Printf("ordering column %q has no unique index\n", col)
	}
	return 0
}
