package admin

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ValueKind enumerates the argument value shapes the management API accepts.
type ValueKind int

const (
	KindInvalid ValueKind = iota
	KindString
	KindInt
	KindBool
	KindMode
	KindList
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindMode:
		return "mode"
	case KindList:
		return "list"
	default:
		return "invalid"
	}
}

// Value is an argument value: a string, an integer, a boolean, an
// enumerated mode or a list of strings. The zero Value is invalid.
type Value struct {
	kind  ValueKind
	str   string
	num   int64
	flag  bool
	items []string
}

// String wraps a string argument value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int wraps an integer argument value.
func Int(n int64) Value { return Value{kind: KindInt, num: n} }

// Bool wraps a boolean argument value.
func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// Mode wraps an enumerated mode such as "exactly" or "lazy".
func Mode(m string) Value { return Value{kind: KindMode, str: m} }

// List wraps a list of strings, such as the node names of "ha-params".
func List(items ...string) Value {
	return Value{kind: KindList, items: append([]string{}, items...)}
}

// Kind reports the shape of the value.
func (v Value) Kind() ValueKind { return v.kind }

// IsValid reports whether the value was built with one of the constructors.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// String renders the value the way it appears in error messages.
func (v Value) String() string {
	switch v.kind {
	case KindString, KindMode:
		return v.str
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindBool:
		return strconv.FormatBool(v.flag)
	case KindList:
		return strings.Join(v.items, ",")
	default:
		return ""
	}
}

// Interface returns the underlying Go value.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindString, KindMode:
		return v.str
	case KindInt:
		return v.num
	case KindBool:
		return v.flag
	case KindList:
		return append([]string{}, v.items...)
	default:
		return nil
	}
}

// MarshalJSON encodes the value as the matching JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// ParseValue infers a Value from command-line text: integers and booleans
// are recognised, anything else is kept as a string.
func ParseValue(raw string) Value {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return Int(n)
	}
	if b, err := strconv.ParseBool(raw); err == nil && (raw == "true" || raw == "false") {
		return Bool(b)
	}
	return String(raw)
}
