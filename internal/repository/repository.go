package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
)

// DBTX is the method set shared by *sqlx.DB and *sqlx.Tx that repositories use.
type DBTX interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	Rebind(query string) string
	DriverName() string
}

var (
	_ DBTX = (*sqlx.DB)(nil)
	_ DBTX = (*sqlx.Tx)(nil)
)

// paginate appends the dialect's limit clause to query.
func paginate(db DBTX, query string, limit, offset int) (string, []interface{}) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	if db.DriverName() == "oracle" {
		return query + " OFFSET ? ROWS FETCH NEXT ? ROWS ONLY", []interface{}{offset, limit}
	}
	return query + " LIMIT ? OFFSET ?", []interface{}{limit, offset}
}

// aliasColumns quotes a lower-case alias onto every column so Oracle, which
// reports unquoted names in upper case, maps onto the same db tags.
func aliasColumns(columns string) string {
	cols := strings.Split(columns, ",")
	for i, c := range cols {
		c = strings.TrimSpace(c)
		cols[i] = c + ` "` + c + `"`
	}
	return strings.Join(cols, ", ")
}
