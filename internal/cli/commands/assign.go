package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/orderable/orderable/internal/cliopt"
	"github.com/orderable/orderable/internal/cliutil"
	"github.com/orderable/orderable/orderable"
)

// setArgs is a custom flag type for repeatable --set flags
type setArgs []string

func (s *setArgs) String() string { return strings.Join(*s, ",") }
func (s *setArgs) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func RunAssign(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("assign", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var stdin bool
	fs.BoolVar(&stdin, "stdin", false, "read JSON lines {\"id\":..,\"value\":..} from stdin")
	var sets setArgs
	fs.Var(&sets, "set", "assignment id=value (repeatable)")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if !stdin && len(sets) == 0 {
		fmt.Fprintln(os.Stderr, "either --stdin or at least one --set required")
		return 2
	}

	var items []orderable.BatchItem
	if stdin {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			var entry struct {
				ID    *int64 `json:"id"`
				Value *int64 `json:"value"`
			}
			if err := json.Unmarshal([]byte(line), &entry); err != nil {
				fmt.Fprintf(os.Stderr, "bad line %q: %v\n", line, err)
				return 2
			}
			items = append(items, orderable.BatchItem{ID: entry.ID, Value: entry.Value})
		}
		if err := scanner.Err(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}
	for _, kv := range sets {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			fmt.Fprintf(os.Stderr, "invalid --set %q (expected id=value)\n", kv)
			return 2
		}
		id, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid id in --set %q\n", kv)
			return 2
		}
		value, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid value in --set %q\n", kv)
			return 2
		}
		items = append(items, orderable.Item(id, value))
	}

	ctx := context.Background()
	list, err := cliutil.OpenList(ctx, g)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer list.Close()

	if err := list.ReorderBatch(ctx, items); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("assigned %d items\n", len(items))
	return 0
}
