package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	v, err := Parse([]byte(`{"name": "Ana", "age": 30, "tags": ["a", "b"], "active": true, "nick": null}`))
	require.NoError(t, err)
	assert.Equal(t, KindObject, v.Kind())
	assert.Equal(t, []string{"name", "age", "tags", "active", "nick"}, v.Keys())

	name, ok := v.Field("name")
	require.True(t, ok)
	s, ok := name.AsString()
	require.True(t, ok)
	assert.Equal(t, "Ana", s)

	age, _ := v.Field("age")
	n, ok := age.AsNumber()
	require.True(t, ok)
	assert.Equal(t, 30.0, n)

	tags, _ := v.Field("tags")
	assert.Equal(t, 2, tags.Len())
	second, ok := tags.Index(1)
	require.True(t, ok)
	assert.Equal(t, "b", second.String())

	_, ok = tags.Index(2)
	assert.False(t, ok)

	nick, ok := v.Field("nick")
	require.True(t, ok)
	assert.True(t, nick.IsNull())
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "not json", `{"a":`, "Hello, world"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse([]byte(input))
			assert.ErrorIs(t, err, ErrInvalidJSON)
		})
	}
}

func TestParse_TopLevelScalars(t *testing.T) {
	v, err := Parse([]byte(`42`))
	require.NoError(t, err)
	assert.Equal(t, KindNumber, v.Kind())

	v, err = Parse([]byte(`"plain"`))
	require.NoError(t, err)
	assert.Equal(t, KindString, v.Kind())
	assert.Equal(t, "plain", v.String())
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Value
		equal bool
	}{
		{"numbers by value", Number(200), Number(200.0), true},
		{"different numbers", Number(200), Number(201), false},
		{"strings", String("Juan"), String("Juan"), true},
		{"strings differ", String("Juan"), String("juan"), false},
		{"booleans", Bool(true), Bool(true), true},
		{"booleans differ", Bool(true), Bool(false), false},
		{"null", Null(), Null(), true},
		{"null vs false", Null(), Bool(false), false},
		{"string vs number", String("200"), Number(200), false},
		{"arrays", Array(Int(1), String("x")), Array(Number(1.0), String("x")), true},
		{"arrays differ in length", Array(Int(1)), Array(Int(1), Int(2)), false},
		{
			"objects ignore key order",
			Object(Field{"a", Int(1)}, Field{"b", Int(2)}),
			Object(Field{"b", Int(2)}, Field{"a", Int(1)}),
			true,
		},
		{"object vs scalar", Object(), String("{}"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, tt.a.Equal(tt.b))
			assert.Equal(t, tt.equal, tt.b.Equal(tt.a))
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "Juan", String("Juan").String())
	assert.Equal(t, "200", Number(200.0).String())
	assert.Equal(t, "0.5", Number(0.5).String())
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "null", Null().String())
	assert.Equal(t, `[1,"a<b"]`, Array(Int(1), String("a<b")).String())
	assert.Equal(t, `{"id":7,"tags":[]}`, Object(Field{"id", Int(7)}, Field{"tags", Array()}).String())
}

func TestObject_DuplicateKeys(t *testing.T) {
	v := Object(Field{"a", Int(1)}, Field{"b", Int(2)}, Field{"a", Int(3)})
	assert.Equal(t, []string{"a", "b"}, v.Keys())
	a, _ := v.Field("a")
	assert.True(t, a.Equal(Int(3)))
}

func TestZeroValueIsNull(t *testing.T) {
	var v Value
	assert.True(t, v.IsNull())
	assert.Equal(t, "null", v.String())
}
