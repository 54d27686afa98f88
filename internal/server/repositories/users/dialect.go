package users

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// pgUniqueViolation is SQLSTATE unique_violation.
const pgUniqueViolation = "23505"

type dialect int

const (
	dialectPostgres dialect = iota
	dialectSQLite
)

// rebind turns $N placeholders into SQLite's ?N form.
func (d dialect) rebind(query string) string {
	if d == dialectSQLite {
		return strings.ReplaceAll(query, "$", "?")
	}
	return query
}

func (d dialect) isUniqueViolation(err error) bool {
	switch d {
	case dialectPostgres:
		var pgErr *pgconn.PgError
		return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
	case dialectSQLite:
		var liteErr *sqlite.Error
		if !errors.As(err, &liteErr) {
			return false
		}
		// without extended result codes only the message tells UNIQUE apart
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			(liteErr.Code() == sqlite3.SQLITE_CONSTRAINT && strings.Contains(liteErr.Error(), "UNIQUE"))
	}
	return false
}
