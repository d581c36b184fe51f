package sqlgen

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hlop3z/migrala/internal/dialect"
)

// formatValue renders a Go value as a SQL literal. Numeric formatting
// is locale-invariant: strconv never emits thousands separators or a
// comma decimal point.
func formatValue(d dialect.Dialect, v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case bool:
		return d.BooleanLiteral(val)
	case int:
		return strconv.FormatInt(int64(val), 10)
	case int8:
		return strconv.FormatInt(int64(val), 10)
	case int16:
		return strconv.FormatInt(int64(val), 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint8:
		return strconv.FormatUint(uint64(val), 10)
	case uint16:
		return strconv.FormatUint(uint64(val), 10)
	case uint32:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return formatTime(val)
	case string:
		return quoteString(val)
	default:
		return quoteString(fmt.Sprintf("%v", val))
	}
}

// formatTime renders a date-only literal when the value carries no
// sub-day component, otherwise a date-time literal.
func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return "'" + t.Format("2006-01-02") + "'"
	}
	return "'" + t.Format("2006-01-02 15:04:05") + "'"
}

// quoteString wraps a string literal in single quotes, doubling any
// embedded quote so the escaping is reversible.
func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// unquoteString reverses quoteString; used by tests and script tooling.
func unquoteString(s string) string {
	if len(s) < 2 || s[0] != '\'' || s[len(s)-1] != '\'' {
		return s
	}
	return strings.ReplaceAll(s[1:len(s)-1], "''", "'")
}
