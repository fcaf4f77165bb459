package ledger

import (
	"context"
	"database/sql"
	"fmt"
)

// Settings selects the SQL backend the transaction ledger lives in.
// The matching driver must be linked into the binary.
type Settings struct {
	Driver string
	DSN    string
}

var supportedDrivers = map[string]struct{}{
	"sqlite3":    {},
	"snowflake":  {},
	"databricks": {},
}

// NewDB opens the ledger database.
func NewDB(settings Settings) (*sql.DB, error) {
	if _, ok := supportedDrivers[settings.Driver]; !ok {
		return nil, fmt.Errorf("unsupported ledger driver: %q", settings.Driver)
	}

	db, err := sql.Open(settings.Driver, settings.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s ledger: %w", settings.Driver, err)
	}
	return db, nil
}

// EnsureSchema creates the transactions table when it does not exist
// yet. Only meaningful for locally owned backends such as sqlite.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS transactions (
			id INTEGER PRIMARY KEY,
			created_at TIMESTAMP NOT NULL,
			amount BIGINT NOT NULL,
			unit VARCHAR NOT NULL,
			orig_account VARCHAR NOT NULL,
			orig_organization VARCHAR NOT NULL,
			dest_account VARCHAR NOT NULL,
			dest_organization VARCHAR NOT NULL,
			descr VARCHAR
		)`)
	if err != nil {
		return fmt.Errorf("create transactions table: %w", err)
	}
	return nil
}
