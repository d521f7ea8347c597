package value

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is an immutable JSON value. The zero Value is null.
type Value struct {
	kind   Kind
	b      bool
	n      float64
	s      string
	items  []Value
	keys   []string
	fields map[string]Value
}

// Field is a single key/value pair of an object, used to build objects in
// document order.
type Field struct {
	Key   string
	Value Value
}

func Null() Value {
	return Value{kind: KindNull}
}

func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

func Number(n float64) Value {
	return Value{kind: KindNumber, n: n}
}

func Int(i int) Value {
	return Number(float64(i))
}

func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Array builds an array value. The items slice is copied.
func Array(items ...Value) Value {
	copied := make([]Value, len(items))
	copy(copied, items)
	return Value{kind: KindArray, items: copied}
}

// Object builds an object value. A repeated key keeps its first position and
// the last value.
func Object(fields ...Field) Value {
	v := Value{
		kind:   KindObject,
		keys:   make([]string, 0, len(fields)),
		fields: make(map[string]Value, len(fields)),
	}
	for _, f := range fields {
		if _, seen := v.fields[f.Key]; !seen {
			v.keys = append(v.keys, f.Key)
		}
		v.fields[f.Key] = f.Value
	}
	return v
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == KindNull
}

func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

func (v Value) AsNumber() (float64, bool) {
	return v.n, v.kind == KindNumber
}

func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

// Len returns the number of items of an array or fields of an object, and 0
// for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.keys)
	}
	return 0
}

// Index returns the i-th item of an array.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.items) {
		return Value{}, false
	}
	return v.items[i], true
}

// Field returns the value stored under key in an object.
func (v Value) Field(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	f, ok := v.fields[key]
	return f, ok
}

// Keys returns the object keys in document order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, len(v.keys))
	copy(keys, v.keys)
	return keys
}

// Equal reports strict same-kind equality. Numbers compare by value, so 200
// equals 200.0; arrays and objects compare element-wise.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.n == other.n
	case KindString:
		return v.s == other.s
	case KindArray:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.keys) != len(other.keys) {
			return false
		}
		for _, k := range v.keys {
			o, ok := other.fields[k]
			if !ok || !v.fields[k].Equal(o) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders the value in its literal textual form: strings unquoted,
// numbers in shortest decimal form, arrays and objects as compact JSON.
func (v Value) String() string {
	if v.kind == KindString {
		return v.s
	}
	return v.JSON()
}

// JSON renders the value as compact JSON.
func (v Value) JSON() string {
	var b strings.Builder
	v.writeJSON(&b)
	return b.String()
}

func (v Value) writeJSON(b *strings.Builder) {
	switch v.kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		b.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		b.WriteString(FormatNumber(v.n))
	case KindString:
		b.WriteString(quote(v.s))
	case KindArray:
		b.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				b.WriteByte(',')
			}
			item.writeJSON(b)
		}
		b.WriteByte(']')
	case KindObject:
		b.WriteByte('{')
		for i, k := range v.keys {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quote(k))
			b.WriteByte(':')
			v.fields[k].writeJSON(b)
		}
		b.WriteByte('}')
	}
}

// FormatNumber renders n without a trailing fraction when it is integral, so
// 200.0 prints as 200.
func FormatNumber(n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < 1e21 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
