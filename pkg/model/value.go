package model

import (
	"fmt"
	"strconv"
	"time"
)

// Kind discriminates the closed set of renderable value shapes. Renderers
// switch exhaustively over Kind instead of probing runtime types.
type Kind string

const (
	KindNull      Kind = "null"
	KindScalar    Kind = "scalar"
	KindRecord    Kind = "record"
	KindList      Kind = "list"
	KindMap       Kind = "map"
	KindEnum      Kind = "enum"
	KindDate      Kind = "date"
	KindTimestamp Kind = "timestamp"
)

// MapEntry is one key/value pair of a rendered mapping. Entries are kept as a
// slice so mapping output order is deterministic.
type MapEntry struct {
	Key   string `json:"key"`
	Value Value  `json:"value"`
}

// Value is the tagged union of renderable runtime values. Exactly one payload
// matching Kind is populated; the zero value is KindNull-equivalent.
type Value struct {
	Kind    Kind        `json:"kind"`
	Scalar  any         `json:"scalar,omitempty"`
	Record  *Record     `json:"record,omitempty"`
	List    []Value     `json:"list,omitempty"`
	Entries []MapEntry  `json:"entries,omitempty"`
	Enum    *EnumMember `json:"enum,omitempty"`
	Time    time.Time   `json:"time,omitempty"`
}

// Null constructs the null variant.
func Null() Value {
	return Value{Kind: KindNull}
}

// ScalarOf wraps a primitive (string, integer, float, boolean) value. A nil
// argument degrades to the null variant so adapters can pass pointers through
// without pre-checking.
func ScalarOf(v any) Value {
	if v == nil {
		return Null()
	}
	return Value{Kind: KindScalar, Scalar: v}
}

// RecordOf wraps a nested record value.
func RecordOf(r Record) Value {
	return Value{Kind: KindRecord, Record: &r}
}

// ListOf wraps a list of values.
func ListOf(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{Kind: KindList, List: items}
}

// MapOf wraps an ordered mapping.
func MapOf(entries ...MapEntry) Value {
	if entries == nil {
		entries = []MapEntry{}
	}
	return Value{Kind: KindMap, Entries: entries}
}

// EnumOf wraps an enumeration member.
func EnumOf(member EnumMember) Value {
	return Value{Kind: KindEnum, Enum: &member}
}

// DateOf wraps a date-only value. The time portion is ignored by renderers.
func DateOf(t time.Time) Value {
	return Value{Kind: KindDate, Time: t}
}

// TimestampOf wraps a date-and-time value.
func TimestampOf(t time.Time) Value {
	return Value{Kind: KindTimestamp, Time: t}
}

// IsNull reports whether the value is the null variant (or a zero Value).
func (v Value) IsNull() bool {
	return v.Kind == KindNull || v.Kind == ""
}

// Truthy reports whether the value counts as "set" for checkbox rendering:
// boolean true, non-zero numbers, and non-empty strings.
func (v Value) Truthy() bool {
	if v.Kind != KindScalar {
		return false
	}
	switch s := v.Scalar.(type) {
	case bool:
		return s
	case string:
		return s != ""
	case int:
		return s != 0
	case int32:
		return s != 0
	case int64:
		return s != 0
	case float32:
		return s != 0
	case float64:
		return s != 0
	default:
		return v.Scalar != nil
	}
}

// Text returns the display-text form of a value: "None" for null, "True" and
// "False" for booleans, shortest round-trip form for floats, underlying value
// for enum members, ISO-8601 forms for dates and timestamps. Record, list,
// and map variants fall back to a compact summary; tree renderers handle
// those kinds before reaching here.
func (v Value) Text() string {
	switch v.Kind {
	case KindNull, "":
		return "None"
	case KindScalar:
		return scalarText(v.Scalar)
	case KindEnum:
		if v.Enum == nil {
			return "None"
		}
		return scalarText(v.Enum.Value)
	case KindDate:
		return v.Time.Format("2006-01-02")
	case KindTimestamp:
		return v.Time.Format("2006-01-02 15:04:05")
	case KindRecord:
		if v.Record == nil {
			return "None"
		}
		return "[" + v.Record.Name + "]"
	case KindList:
		return fmt.Sprintf("[%d items]", len(v.List))
	case KindMap:
		return fmt.Sprintf("{%d entries}", len(v.Entries))
	default:
		return scalarText(v.Scalar)
	}
}

func scalarText(v any) string {
	switch s := v.(type) {
	case nil:
		return "None"
	case string:
		return s
	case bool:
		if s {
			return "True"
		}
		return "False"
	case int:
		return strconv.Itoa(s)
	case int32:
		return strconv.FormatInt(int64(s), 10)
	case int64:
		return strconv.FormatInt(s, 10)
	case float32:
		return strconv.FormatFloat(float64(s), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
