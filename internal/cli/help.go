package cli

import (
	"fmt"
	"io"
)

func PrintRootHelp(w io.Writer) {
	fmt.Fprintln(w, `orderctl — inspect and reorder ranked record collections

USAGE
  orderctl [global flags] <command> [args]

GLOBAL FLAGS
  --backend sqlite|postgres
  --sqlite-path <file.db>
  --sqlite-driver sqlite|sqlite3
  --pg-dsn <dsn>
  --pg-schema <schema>
  -t, --table <name>          table holding the collection (required)
  --id-col <name>             id column (default: id)
  --order-col <name>          ordering column (default: display_order)
  --format pretty|json
  --verbose

COMMANDS
  list      print records in order (--desc for reverse)
  get       print one record's position (--id)
  next      print the next free ordinal position
  move      move one record to a new position (--id, --to)
  assign    apply a batch of id=value assignments (--set, repeatable,
            or JSON lines {"id":..,"value":..} on stdin with --stdin)
  compact   renumber the collection to contiguous 1..N
  check     report indexes on the table and whether the ordering
            column is covered by a unique index

Run "orderctl <command> --help" for details.`)
}
