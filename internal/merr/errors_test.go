package merr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormat(t *testing.T) {
	err := New(ErrUnmappedType, "no type mapping for semantic type").
		WithTable("orders").
		WithColumn("price")

	got := err.Error()
	if !strings.HasPrefix(got, "[E2002] no type mapping for semantic type") {
		t.Errorf("unexpected prefix: %q", got)
	}
	// Context keys are sorted: column before table
	colIdx := strings.Index(got, "column: price")
	tblIdx := strings.Index(got, "table: orders")
	if colIdx == -1 || tblIdx == -1 {
		t.Fatalf("missing context in %q", got)
	}
	if colIdx > tblIdx {
		t.Errorf("context keys not sorted: %q", got)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrSQLConnection, cause, "database connection failed")

	if !errors.Is(err, cause) {
		t.Error("errors.Is should match the wrapped cause")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("cause missing from output: %q", err.Error())
	}
}

func TestWrapNilCause(t *testing.T) {
	err := Wrap(ErrSQLExecution, nil, "statement failed")
	if err.Unwrap() != nil {
		t.Error("wrapping nil should produce no cause")
	}
	if err.GetCode() != ErrSQLExecution {
		t.Errorf("GetCode() = %q, want %q", err.GetCode(), ErrSQLExecution)
	}
}

func TestIsMatchesByCode(t *testing.T) {
	err := New(ErrMigrationFailed, "migration failed").WithVersion(3)

	if !Is(err, ErrMigrationFailed) {
		t.Error("Is should match by code")
	}
	if Is(err, ErrSQLExecution) {
		t.Error("Is should not match a different code")
	}

	// errors.Is against another *Error with the same code
	if !errors.Is(err, New(ErrMigrationFailed, "other message")) {
		t.Error("errors.Is should match errors with the same code")
	}
}

func TestGetErrorCodeThroughWrapping(t *testing.T) {
	inner := New(ErrUnsupportedOp, "no handler for operation")
	outer := fmt.Errorf("compile failed: %w", inner)

	if got := GetErrorCode(outer); got != ErrUnsupportedOp {
		t.Errorf("GetErrorCode() = %q, want %q", got, ErrUnsupportedOp)
	}
	if GetErrorCode(errors.New("plain")) != "" {
		t.Error("plain errors have no code")
	}
	if GetErrorCode(nil) != "" {
		t.Error("nil has no code")
	}
}

func TestHasCode(t *testing.T) {
	if !HasCode(New(ErrLedger, "ledger write failed")) {
		t.Error("coded error should report HasCode")
	}
	if HasCode(errors.New("plain")) {
		t.Error("plain error should not report HasCode")
	}
}
