// Package ast defines the operation model for database schema changes.
// Every schema change is expressed as an Operation carrying a Modifier,
// queued on a Changeset and later lowered to SQL by a dialect compiler.
package ast

// Modifier describes the intended effect of an operation.
type Modifier int

const (
	// Add creates the target (table, column, constraint, index, row).
	Add Modifier = iota

	// Alter modifies the target in place.
	Alter

	// Drop removes the target.
	Drop
)

// String returns the string representation of a Modifier.
func (m Modifier) String() string {
	switch m {
	case Add:
		return "Add"
	case Alter:
		return "Alter"
	case Drop:
		return "Drop"
	default:
		return "Unknown"
	}
}

// Kind identifies the variant of an operation.
type Kind int

const (
	// KindTable targets a whole table.
	KindTable Kind = iota

	// KindColumn targets a single column of an existing table.
	KindColumn

	// KindIndex targets an index.
	KindIndex

	// KindPrimaryKey targets a primary key constraint.
	KindPrimaryKey

	// KindUnique targets a unique constraint.
	KindUnique

	// KindForeignKey targets a foreign key constraint.
	KindForeignKey

	// KindInsert targets a seed row.
	KindInsert

	// KindRawSQL is a raw SQL passthrough (escape hatch).
	KindRawSQL
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindTable:
		return "Table"
	case KindColumn:
		return "Column"
	case KindIndex:
		return "Index"
	case KindPrimaryKey:
		return "PrimaryKey"
	case KindUnique:
		return "Unique"
	case KindForeignKey:
		return "ForeignKey"
	case KindInsert:
		return "Insert"
	case KindRawSQL:
		return "RawSQL"
	default:
		return "Unknown"
	}
}

// DataType is the semantic column type, mapped to a concrete SQL type by
// each dialect. TypeUnset is the zero value and means "no type given",
// which is how a rename-only column alteration is distinguished from a
// type change.
type DataType int

const (
	// TypeUnset means no semantic type was specified.
	TypeUnset DataType = iota

	Guid
	TinyInt
	SmallInt
	Int
	BigInt
	Single
	Double
	Decimal
	Currency
	Boolean
	Char
	VarChar
	VarCharMax
	NChar
	NVarChar
	NVarCharMax
	Text
	NText
	Xml
	Date
	Time
	DateTime
	TimeStamp
	TimeSpan
)

// String returns the string representation of a DataType.
func (t DataType) String() string {
	switch t {
	case TypeUnset:
		return "Unset"
	case Guid:
		return "Guid"
	case TinyInt:
		return "TinyInt"
	case SmallInt:
		return "SmallInt"
	case Int:
		return "Int"
	case BigInt:
		return "BigInt"
	case Single:
		return "Single"
	case Double:
		return "Double"
	case Decimal:
		return "Decimal"
	case Currency:
		return "Currency"
	case Boolean:
		return "Boolean"
	case Char:
		return "Char"
	case VarChar:
		return "VarChar"
	case VarCharMax:
		return "VarCharMax"
	case NChar:
		return "NChar"
	case NVarChar:
		return "NVarChar"
	case NVarCharMax:
		return "NVarCharMax"
	case Text:
		return "Text"
	case NText:
		return "NText"
	case Xml:
		return "Xml"
	case Date:
		return "Date"
	case Time:
		return "Time"
	case DateTime:
		return "DateTime"
	case TimeStamp:
		return "TimeStamp"
	case TimeSpan:
		return "TimeSpan"
	default:
		return "Unknown"
	}
}
