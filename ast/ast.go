// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a structured representation of JSON values, a parser
// that constructs values from JSON source, and a formatter that renders them
// back to canonical text.
//
// Values are immutable once constructed. A new parse produces an entirely new
// value rather than modifying a previous one.
package ast

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/creachadair/jgrid"
)

// A Value is an arbitrary JSON value. The concrete types are Null, Bool,
// Number, Quoted, Array, and Object.
type Value interface {
	// JSON returns the compact JSON encoding of the value.
	JSON() string
}

// Null is the value of the JSON null constant.
var Null nullValue

type nullValue struct{}

// JSON satisfies the Value interface.
func (nullValue) JSON() string   { return "null" }
func (nullValue) String() string { return "null" }

// IsNull reports whether v is the JSON null constant.
func IsNull(v Value) bool { return v == Null }

// A Bool is a Boolean constant, true or false.
type Bool bool

// JSON satisfies the Value interface.
func (b Bool) JSON() string { return strconv.FormatBool(bool(b)) }

// A Number is a numeric value. Its text is stored in canonical form.
type Number struct {
	text string
}

// Int constructs a Number from an integer value.
func Int(z int64) Number { return Number{text: strconv.FormatInt(z, 10)} }

// Float constructs a Number from a floating-point value. A non-finite value
// has no JSON representation and renders as null.
func Float(f float64) Number {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return Number{text: "null"}
	}
	return Number{text: formatFloat(f)}
}

// JSON satisfies the Value interface.
func (n Number) JSON() string { return n.Text() }

func (n Number) String() string { return n.Text() }

// Text returns the canonical text of n.
func (n Number) Text() string {
	if n.text == "" {
		return "0"
	}
	return n.text
}

// IsInt reports whether n is an integer, meaning its canonical text has no
// fraction or exponent.
func (n Number) IsInt() bool { return !strings.ContainsAny(n.Text(), ".e") }

// Float64 returns the value of n as a float64.
func (n Number) Float64() float64 {
	v, _ := strconv.ParseFloat(n.Text(), 64) // range errors give ±Inf
	return v
}

// Int64 returns the value of n as an int64, truncating a fractional value.
// An integer too large for an int64 is clamped.
func (n Number) Int64() int64 {
	if v, err := strconv.ParseInt(n.Text(), 10, 64); err == nil {
		return v
	}
	f := n.Float64()
	switch {
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

// A Quoted is a string value.
type Quoted struct {
	value string
}

// String constructs a Quoted from a string value.
func String(s string) Quoted { return Quoted{value: s} }

// JSON satisfies the Value interface.
func (q Quoted) JSON() string { return jgrid.Quote(q.value) }

// Unquote returns the unescaped string value of q.
func (q Quoted) Unquote() string { return q.value }

// Len reports the length of q in bytes.
func (q Quoted) Len() int { return len(q.value) }

// An Array is a sequence of values.
type Array []Value

// Len reports the number of elements in a.
func (a Array) Len() int { return len(a) }

// JSON satisfies the Value interface.
func (a Array) JSON() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(jsonOf(v))
	}
	sb.WriteByte(']')
	return sb.String()
}

// An Object is a collection of key-value members, in order.
type Object []*Member

// Len reports the number of members in o.
func (o Object) Len() int { return len(o) }

// Find returns the first member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	for _, m := range o {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// Keys returns the keys of the members of o, in order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

// JSON satisfies the Value interface.
func (o Object) JSON() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(jgrid.Quote(m.Key))
		sb.WriteByte(':')
		sb.WriteString(jsonOf(m.Value))
	}
	sb.WriteByte('}')
	return sb.String()
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// Field constructs an object member with the given key and value.
func Field(key string, value Value) *Member { return &Member{Key: key, Value: value} }

// jsonOf renders v compactly, treating a nil value as null.
func jsonOf(v Value) string {
	if v == nil {
		return "null"
	}
	return v.JSON()
}

// ToValue converts a Go value into a Value. It accepts nil, booleans,
// integers, floats, strings, []any, map[string]any, and Values. Object keys
// from a map are sorted. ToValue panics for any other type.
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Int(int64(t))
	case int8:
		return Int(int64(t))
	case int16:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case uint8:
		return Int(int64(t))
	case uint16:
		return Int(int64(t))
	case uint32:
		return Int(int64(t))
	case uint:
		return Number{text: strconv.FormatUint(uint64(t), 10)}
	case uint64:
		return Number{text: strconv.FormatUint(t, 10)}
	case float32:
		return Float(float64(t))
	case float64:
		return Float(t)
	case []any:
		arr := make(Array, len(t))
		for i, elt := range t {
			arr[i] = ToValue(elt)
		}
		return arr
	case map[string]any:
		obj := make(Object, 0, len(t))
		for _, key := range slices.Sorted(maps.Keys(t)) {
			obj = append(obj, Field(key, ToValue(t[key])))
		}
		return obj
	default:
		panic(fmt.Sprintf("cannot convert %T to a value", v))
	}
}

// Equal reports whether a and b are structurally equal. Numbers are compared
// by their canonical text, and objects by their members in order.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch at := a.(type) {
	case nullValue:
		return IsNull(b)
	case Bool:
		bt, ok := b.(Bool)
		return ok && at == bt
	case Number:
		bt, ok := b.(Number)
		return ok && at.Text() == bt.Text()
	case Quoted:
		bt, ok := b.(Quoted)
		return ok && at.value == bt.value
	case Array:
		bt, ok := b.(Array)
		return ok && slices.EqualFunc(at, bt, Equal)
	case Object:
		bt, ok := b.(Object)
		return ok && slices.EqualFunc(at, bt, func(x, y *Member) bool {
			return x.Key == y.Key && Equal(x.Value, y.Value)
		})
	default:
		return false
	}
}

// Path traverses a sequential path through the structure of a value starting
// at v, where path elements are either strings (denoting object keys) or
// integers (denoting offsets into arrays). If the path is valid, the element
// reached is returned. In case of error, the input v is returned along with
// the error.
//
// If a path element is a string, the corresponding value must be an object,
// and the string resolves to the value of the first member with that key.
//
// If a path element is an integer, the corresponding value must be an array,
// and the integer resolves to an index in the array. Negative indices count
// backward from the end of the array (-1 is last, -2 second last, etc.).
//
// If a path element is a function, the function is executed and its result
// becomes the next value in the sequence. The function must have a signature
//
//	func(ast.Value) (ast.Value, error)
//
// If the function fails, the traversal reports its error.
func Path(v Value, path ...any) (Value, error) {
	cur := v
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			obj, ok := cur.(Object)
			if !ok {
				return v, fmt.Errorf("cannot traverse %T with %q", cur, elt)
			}
			m := obj.Find(t)
			if m == nil {
				return v, fmt.Errorf("key %q not found", t)
			}
			cur = m.Value
		case int:
			arr, ok := cur.(Array)
			if !ok {
				return v, fmt.Errorf("cannot traverse %T with %v", cur, elt)
			}
			i, ok := fixArrayBound(len(arr), t)
			if !ok {
				return v, fmt.Errorf("array index %d out of bounds (n=%d)", t, len(arr))
			}
			cur = arr[i]
		case func(Value) (Value, error):
			next, err := t(cur)
			if err != nil {
				return v, err
			}
			cur = next
		default:
			return v, fmt.Errorf("invalid path element %T", elt)
		}
	}
	return cur, nil
}

func fixArrayBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
