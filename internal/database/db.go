package database

import (
	"context"
	"database/sql"
)

// DB is the narrow surface the repositories need from the hosted store.
// Every operation in this system is a single statement, so there is no
// transaction handle here; the store's own row-level guarantees cover
// the mutations.
type DB interface {
	Ping(ctx context.Context) error
	Close() error

	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row

	// SQLDB exposes the stdlib handle for the migration runner.
	SQLDB() *sql.DB
}

type Rows interface {
	Close()
	Next() bool
	Scan(dest ...any) error
	Err() error
}

type Row interface {
	Scan(dest ...any) error
}
