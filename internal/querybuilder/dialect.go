package querybuilder

import (
	"fmt"
	"strconv"
)

// Dialect renders the driver-specific fragments of a statement.
type Dialect interface {
	Name() string
	// Placeholder returns the bind marker for the n-th argument (1-based).
	Placeholder(n int) string
	// ContainsFold renders a case-insensitive LIKE of expr against a bound pattern.
	ContainsFold(expr, placeholder string) string
	// ShareLock is appended to existence checks run inside a transaction.
	ShareLock() string
}

type postgresDialect struct{}

func (postgresDialect) Name() string { return "postgres" }

func (postgresDialect) Placeholder(n int) string { return "$" + strconv.Itoa(n) }

func (postgresDialect) ContainsFold(expr, placeholder string) string {
	return expr + " ILIKE " + placeholder + ` ESCAPE '\'`
}

func (postgresDialect) ShareLock() string { return " FOR KEY SHARE" }

type sqliteDialect struct{}

func (sqliteDialect) Name() string { return "sqlite" }

func (sqliteDialect) Placeholder(int) string { return "?" }

// SQLite LIKE already folds ASCII case.
func (sqliteDialect) ContainsFold(expr, placeholder string) string {
	return expr + " LIKE " + placeholder + ` ESCAPE '\'`
}

func (sqliteDialect) ShareLock() string { return "" }

var (
	// Postgres speaks to lib/pq and pgx connections.
	Postgres Dialect = postgresDialect{}
	// SQLite speaks to modernc.org/sqlite connections.
	SQLite Dialect = sqliteDialect{}
)

// DialectFor maps a database/sql driver name onto its dialect.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "postgres", "pgx":
		return Postgres, nil
	case "sqlite":
		return SQLite, nil
	default:
		return nil, fmt.Errorf("no sql dialect for driver %q", driver)
	}
}
