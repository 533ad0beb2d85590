package querysql

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect selects the SQL flavor of the rendered fragment.
type Dialect string

const (
	DialectMySQL    Dialect = "mysql"
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// ParseDialect parses a dialect name (case-insensitive).
func ParseDialect(name string) (Dialect, error) {
	switch Dialect(strings.ToLower(strings.TrimSpace(name))) {
	case DialectMySQL, "":
		return DialectMySQL, nil
	case DialectSQLite, "sqlite3":
		return DialectSQLite, nil
	case DialectPostgres, "postgresql", "pg":
		return DialectPostgres, nil
	default:
		return "", fmt.Errorf("unknown dialect %q", name)
	}
}

// placeholder renders the bind marker for the n-th (1-based) parameter of
// the statement.
func (d Dialect) placeholder(n int) string {
	if d == DialectPostgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// convertCharset wraps a textual column so comparisons use the given
// character set. Only MySQL supports per-expression conversion; the other
// dialects compare in the database encoding.
func (d Dialect) convertCharset(label, charset string) string {
	if d == DialectMySQL {
		return "CONVERT(" + label + " USING " + charset + ")"
	}
	return label
}

// likeEscape is appended to LIKE comparisons. MySQL and PostgreSQL escape
// with backslash by default; SQLite has no default escape character.
func (d Dialect) likeEscape() string {
	if d == DialectSQLite {
		return ` ESCAPE '\'`
	}
	return ""
}
