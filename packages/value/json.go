package value

import (
	"errors"

	"github.com/tidwall/gjson"
)

var ErrInvalidJSON = errors.New("invalid JSON")

// Parse decodes a JSON document. It returns ErrInvalidJSON when data is not a
// single well-formed JSON value, including when data is empty.
func Parse(data []byte) (Value, error) {
	if !gjson.ValidBytes(data) {
		return Null(), ErrInvalidJSON
	}
	return FromResult(gjson.ParseBytes(data)), nil
}

// Valid reports whether s is a well-formed JSON document.
func Valid(s string) bool {
	return gjson.Valid(s)
}

// FromResult converts a gjson result into a Value. A result that does not
// exist converts to null.
func FromResult(r gjson.Result) Value {
	switch r.Type {
	case gjson.False:
		return Bool(false)
	case gjson.True:
		return Bool(true)
	case gjson.Number:
		return Number(r.Num)
	case gjson.String:
		return String(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			results := r.Array()
			items := make([]Value, len(results))
			for i, item := range results {
				items[i] = FromResult(item)
			}
			return Value{kind: KindArray, items: items}
		}
		var fields []Field
		r.ForEach(func(key, val gjson.Result) bool {
			fields = append(fields, Field{Key: key.String(), Value: FromResult(val)})
			return true
		})
		return Object(fields...)
	default:
		return Null()
	}
}
