package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/orderable/orderable/orderable/storage"
	"github.com/orderable/orderable/orderable/storage/sqlbuilder"
)

// DriverModernc is the pure-Go driver registered by modernc.org/sqlite.
// DriverMattn is the cgo driver registered by github.com/mattn/go-sqlite3.
const (
	DriverModernc = "sqlite"
	DriverMattn   = "sqlite3"
)

type Adapter struct {
	Path       string
	DriverName string
}

func New(path string) *Adapter {
	return &Adapter{Path: path, DriverName: DriverModernc}
}

func NewWithDriver(path, driver string) *Adapter {
	return &Adapter{Path: path, DriverName: driver}
}

func (a *Adapter) Backend() storage.Backend {
	return storage.BackendSQLite
}

func (a *Adapter) PlaceholderStyle() sqlbuilder.PlaceholderStyle {
	return sqlbuilder.PlaceholderQuestion
}

func (a *Adapter) StoreID() string {
	return a.Path
}

// connectParams returns the default DSN query string for the driver.
// The two drivers spell busy-timeout and foreign-key pragmas differently.
func (a *Adapter) connectParams() string {
	if a.DriverName == DriverMattn {
		return "_busy_timeout=5000&_foreign_keys=on"
	}
	return "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
}

func (a *Adapter) Connect(ctx context.Context) (*sql.DB, error) {
	dsn := a.Path
	if strings.Contains(dsn, "?") {
		dsn = dsn + "&" + a.connectParams()
	} else {
		dsn = dsn + "?" + a.connectParams()
	}
	db, err := sql.Open(a.DriverName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (a *Adapter) Close() error {
	return nil
}

func (a *Adapter) Templates(t storage.Table) storage.SQL {
	return storage.Render(t, a.PlaceholderStyle())
}

func (a *Adapter) VerifyTable(ctx context.Context, db *sql.DB, t storage.Table) error {
	probe := "SELECT " + sqlbuilder.QuoteIdent(t.IDColumn) + ", " + sqlbuilder.QuoteIdent(t.OrderColumn) +
		" FROM " + sqlbuilder.QuoteIdent(t.Name) + " LIMIT 0"
	rows, err := db.QueryContext(ctx, probe)
	if err != nil {
		return err
	}
	defer rows.Close()
	return rows.Err()
}
