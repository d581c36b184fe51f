// Package strutil provides naming and string utilities used throughout
// the Migrala codebase, in particular the conventions for constraint and
// index names generated when the caller does not supply one.
package strutil

import (
	"strings"
)

// -----------------------------------------------------------------------------
// Constraint Naming Conventions
// -----------------------------------------------------------------------------

// PKName returns the conventional primary key constraint name for a table.
// Example: PKName("users") -> "PK_users"
func PKName(table string) string {
	return "PK_" + table
}

// FKName returns the conventional foreign key constraint name.
// Example: FKName("orders", "users") -> "FK_orders_users"
func FKName(table, refTable string) string {
	return "FK_" + table + "_" + refTable
}

// UQName returns the conventional unique constraint name.
// Columns are concatenated without separators.
// Example: UQName("users", "email", "tenant") -> "UQ_usersemailtenant"
func UQName(table string, cols ...string) string {
	var b strings.Builder
	b.WriteString("UQ_")
	b.WriteString(table)
	for _, col := range cols {
		b.WriteString(col)
	}
	return b.String()
}

// IXName returns the conventional index name.
// Example: IXName("users", "email", "tenant") -> "IX_users_emailtenant"
func IXName(table string, cols ...string) string {
	var b strings.Builder
	b.WriteString("IX_")
	b.WriteString(table)
	b.WriteString("_")
	for _, col := range cols {
		b.WriteString(col)
	}
	return b.String()
}

// -----------------------------------------------------------------------------
// Identifier Quoting
// -----------------------------------------------------------------------------

// QuoteWith wraps name in the given open/close delimiters, doubling any
// embedded close delimiter so the result is unambiguous.
// Example: QuoteWith("us]ers", '[', ']') -> "[us]]ers]"
func QuoteWith(name string, open, close byte) string {
	escaped := strings.ReplaceAll(name, string(close), string(close)+string(close))
	return string(open) + escaped + string(close)
}

// UnquoteWith reverses QuoteWith. Names that are not wrapped in the
// delimiters are returned unchanged.
func UnquoteWith(name string, open, close byte) string {
	if len(name) < 2 || name[0] != open || name[len(name)-1] != close {
		return name
	}
	inner := name[1 : len(name)-1]
	return strings.ReplaceAll(inner, string(close)+string(close), string(close))
}

// -----------------------------------------------------------------------------
// Formatting
// -----------------------------------------------------------------------------

// EnsureTerminator appends the statement terminator if the trimmed text
// does not already end with one.
func EnsureTerminator(sql string) string {
	trimmed := strings.TrimRight(sql, " \t\r\n")
	if strings.HasSuffix(trimmed, ";") {
		return trimmed
	}
	return trimmed + ";"
}
