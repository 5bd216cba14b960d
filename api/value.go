// Package api defines the types that cross the pluck boundary: the
// host-independent Value tree, paths, rows, normalization options and the
// typed columnar batch.
package api

// Kind discriminates the variants of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	}
	return "unknown"
}

// Member is one (key, value) entry of an Object. Keys keep insertion order
// and are not required to be unique.
type Member struct {
	Key   string
	Value Value
}

// Value is a closed tagged union over JSON-like data. The zero value is
// null. Once built (see tree.FromAny) a Value is immutable and holds no
// reference back to the host structure it came from.
type Value struct {
	kind    Kind
	b       bool
	i       int64
	f       float64
	s       string
	list    []Value
	members []Member
}

// Null returns the null Value.
func Null() Value { return Value{} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer Value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a floating-point Value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Str returns a string Value.
func Str(s string) Value { return Value{kind: KindString, s: s} }

// List returns a list Value. The slice is taken over, not copied.
func List(items []Value) Value { return Value{kind: KindList, list: items} }

// Object returns an object Value. The slice is taken over, not copied.
func Object(members []Member) Value { return Value{kind: KindObject, members: members} }

// Kind reports which variant the Value holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the Value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsScalar reports whether the Value is a bool, int, float or string.
func (v Value) IsScalar() bool {
	switch v.kind {
	case KindBool, KindInt, KindFloat, KindString:
		return true
	}
	return false
}

// Bool returns the boolean payload. Valid only when Kind() == KindBool.
func (v Value) Bool() bool { return v.b }

// Int returns the integer payload. Valid only when Kind() == KindInt.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload. Valid only when Kind() == KindFloat.
func (v Value) Float() float64 { return v.f }

// Str returns the string payload. Valid only when Kind() == KindString.
func (v Value) Str() string { return v.s }

// Items returns the elements of a list Value.
func (v Value) Items() []Value { return v.list }

// Members returns the entries of an object Value.
func (v Value) Members() []Member { return v.members }

// Interface renders the Value back into host-native Go data: nil, bool,
// int64, float64, string, []any and map[string]any. Duplicate object keys
// collapse last-wins, so the conversion is lossy for such objects.
func (v Value) Interface() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindList:
		items := make([]any, len(v.list))
		for i, item := range v.list {
			items[i] = item.Interface()
		}
		return items
	case KindObject:
		m := make(map[string]any, len(v.members))
		for _, member := range v.members {
			m[member.Key] = member.Value.Interface()
		}
		return m
	}
	return nil
}
