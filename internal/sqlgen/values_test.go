package sqlgen

import (
	"testing"
	"time"

	"github.com/hlop3z/migrala/internal/dialect"
)

func TestFormatValue(t *testing.T) {
	pg := dialect.Postgres()
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "NULL"},
		{"int", 42, "42"},
		{"negative", int64(-7), "-7"},
		{"uint", uint16(9), "9"},
		{"float", 1234.5, "1234.5"},
		{"float32", float32(2.25), "2.25"},
		{"bool true", true, "TRUE"},
		{"bool false", false, "FALSE"},
		{"string", "hello", "'hello'"},
		{"string with quote", "o'brien", "'o''brien'"},
		{"date only", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), "'2024-03-15'"},
		{"date time", time.Date(2024, 3, 15, 9, 30, 1, 0, time.UTC), "'2024-03-15 09:30:01'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatValue(pg, tt.in); got != tt.want {
				t.Errorf("formatValue(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBooleanLiteralFollowsDialect(t *testing.T) {
	if got := formatValue(dialect.MySQL(), true); got != "1" {
		t.Errorf("mysql true = %q", got)
	}
	if got := formatValue(dialect.SQLite(), false); got != "0" {
		t.Errorf("sqlite false = %q", got)
	}
}

// Formatting a string with embedded quotes must be reversible.
func TestStringEscapeRoundTrip(t *testing.T) {
	inputs := []string{"plain", "o'brien", "''", "a'b'c", ""}
	for _, in := range inputs {
		if got := unquoteString(quoteString(in)); got != in {
			t.Errorf("round trip %q -> %q", in, got)
		}
	}
}
