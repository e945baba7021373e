package commands

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/orderable/orderable/internal/cliopt"
	"github.com/orderable/orderable/internal/cliutil"
)

func RunList(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var desc bool
	fs.BoolVar(&desc, "desc", false, "reverse order")
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

	fetch := list.Ordered
	if desc {
		fetch = list.OrderedDesc
	}
	records, err := fetch(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if cliutil.ParseOutputFormat(g.Format) == cliutil.FormatJSON {
		cliutil.PrintJSON(os.Stdout, records)
		return 0
	}
	for _, r := range records {
		fmt.Printf("%d\t%d\n", r.Position, r.ID)
	}
	return 0
}
