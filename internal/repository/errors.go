package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrDuplicateKey reports a unique constraint violation.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrMissingReference reports a foreign key pointing at a row that does not exist.
	ErrMissingReference = errors.New("referenced row does not exist")
)

type violation int

const (
	noViolation violation = iota
	uniqueViolation
	foreignKeyViolation
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// classify recognises constraint violations from lib/pq, pgx and modernc sqlite.
func classify(err error) violation {
	if err == nil {
		return noViolation
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pgViolation(string(pqErr.Code))
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgViolation(pgErr.Code)
	}

	var coded interface{ Code() int }
	if errors.As(err, &coded) {
		switch coded.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return uniqueViolation
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return foreignKeyViolation
		}
		if coded.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
			msg := err.Error()
			switch {
			case strings.Contains(msg, "FOREIGN KEY"):
				return foreignKeyViolation
			case strings.Contains(msg, "UNIQUE"):
				return uniqueViolation
			}
		}
	}

	return noViolation
}

func pgViolation(code string) violation {
	switch code {
	case pgUniqueViolation:
		return uniqueViolation
	case pgForeignKeyViolation:
		return foreignKeyViolation
	default:
		return noViolation
	}
}
