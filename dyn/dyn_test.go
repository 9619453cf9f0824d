package dyn

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedThing struct{}

func (namedThing) ClassName() string { return "Widget" }

type plainThing struct{}

type kindedError struct{}

func (kindedError) Error() string         { return "boom" }
func (kindedError) ExceptionKind() string { return "CustomError" }

func TestClassName(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, "NoneType"},
		{"string", "", "str"},
		{"int", 0, "int"},
		{"float", 1.5, "float"},
		{"bool", true, "bool"},
		{"bytes", []byte("x"), "bytes"},
		{"tuple", Tuple{1}, "tuple"},
		{"list", []any{1}, "list"},
		{"namer", namedThing{}, "Widget"},
		{"struct", plainThing{}, "plainThing"},
		{"pointer", &plainThing{}, "plainThing"},
		{"nil pointer to namer", (*namedThing)(nil), "namedThing"},
		{"nil pointer", (*plainThing)(nil), "plainThing"},
		{"unnamed", map[string]int{}, "map[string]int"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassName(tt.value))
		})
	}
}

func TestExceptionKind(t *testing.T) {
	assert.Equal(t, "RuntimeError", ExceptionKind(Raise("RuntimeError", "from get_capsule")))
	assert.Equal(t, "RuntimeError", ExceptionKind(fmt.Errorf("wrapped: %w", Raise("RuntimeError", "x"))))
	assert.Equal(t, "CustomError", ExceptionKind(kindedError{}))
	assert.Equal(t, "errorString", ExceptionKind(errors.New("plain")))
}

func TestExceptionMessage(t *testing.T) {
	assert.Equal(t, "value 3 out of range", ExceptionMessage(Raise("ValueError", "value %d out of range", 3)))
	assert.Equal(t, "plain", ExceptionMessage(errors.New("plain")))
	assert.Equal(t, "ValueError: bad", Raise("ValueError", "bad").Error())
}

func TestCall(t *testing.T) {
	t.Run("passes through", func(t *testing.T) {
		v, err := Call(func() (any, error) { return 7, nil })
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	})

	t.Run("recovers string panic", func(t *testing.T) {
		v, err := Call(func() (any, error) { panic("kaboom") })
		assert.Nil(t, v)
		var exc *Exception
		require.ErrorAs(t, err, &exc)
		assert.Equal(t, "panic", exc.Kind)
		assert.Equal(t, "kaboom", exc.Message)
	})

	t.Run("keeps raised exception", func(t *testing.T) {
		_, err := Call(func() (any, error) { panic(Raise("KeyError", "missing")) })
		assert.Equal(t, "KeyError", ExceptionKind(err))
	})
}

func TestAsSequence(t *testing.T) {
	s, ok := AsSequence(Tuple{1, 2})
	require.True(t, ok)
	assert.Len(t, s, 2)

	_, ok = AsSequence("abc")
	assert.False(t, ok)
}
