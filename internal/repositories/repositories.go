// package repositories provides persistence layer implementations for the catalog models.
package repositories

import (
	"errors"
	"strings"

	"github.com/desertthunder/mixdeck/internal/shared"
	"github.com/mattn/go-sqlite3"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// scanner is satisfied by both [sql.Row] and [sql.Rows].
type scanner interface {
	Scan(dest ...any) error
}

// likePattern folds term and wraps it for a substring LIKE match with "\" as the escape character.
//
// The empty term yields "%%", which matches every row.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(shared.Fold(term)) + "%"
}

// matchClause builds an OR of case-insensitive substring tests over cols, returning the SQL
// fragment and one bound argument per column. cols must be trusted identifiers, never user input.
func matchClause(term string, cols ...string) (string, []any) {
	pattern := likePattern(term)
	parts := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, col := range cols {
		parts[i] = "casefold(" + col + `) LIKE ? ESCAPE '\'`
		args[i] = pattern
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

// isForeignKeyViolation reports whether err is SQLite rejecting a dangling reference.
func isForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}
