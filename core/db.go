package core

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type (
	// DBExecutor is satisfied by *sqlx.DB, *sqlx.Conn and *sqlx.Tx.
	DBExecutor interface {
		sqlx.ExecerContext
		sqlx.QueryerContext
		Rebind(query string) string
	}

	DB interface {
		DBExecutor

		Connx(ctx context.Context) (*sqlx.Conn, error)
		DriverName() string
	}
)

// WithConn runs fn on a single connection taken from db.
// The connection goes back to the pool once fn returns, whatever the outcome.
func WithConn(ctx context.Context, db DB, fn func(exec DBExecutor) error) error {
	conn, err := db.Connx(ctx)
	if err != nil {
		return NewStoreError(err, "acquiring connection")
	}
	defer func() { _ = conn.Close() }()
	return fn(conn)
}

type DBOrdering struct {
	Field     string
	Ascending bool
}

func (ord DBOrdering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}
