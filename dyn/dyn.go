// Package dyn models the dynamically-typed side of the boundary.
//
// Values from the embedding environment arrive as plain `any`. Capabilities
// are discovered by interface query, never by reflection; reflection is used
// only to name a value's class in diagnostics.
package dyn

import (
	"reflect"
)

// ClassNamer lets a value choose the class name reported in diagnostics.
type ClassNamer interface {
	ClassName() string
}

// Tuple is a fixed-arity ordered value, the transport shape for
// serialized state.
type Tuple []any

// ClassName returns the class name of v as the environment reports it.
func ClassName(v any) string {
	if v == nil {
		return "NoneType"
	}
	// A nil pointer cannot run a value-receiver ClassName.
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return typeName(rv.Type())
	}
	if n, ok := v.(ClassNamer); ok {
		return n.ClassName()
	}
	switch v.(type) {
	case string:
		return "str"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "int"
	case float32, float64:
		return "float"
	case bool:
		return "bool"
	case []byte:
		return "bytes"
	case Tuple:
		return "tuple"
	case []any:
		return "list"
	}
	return typeName(reflect.TypeOf(v))
}

func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

// AsSequence returns the elements of an ordered sequence (list or tuple).
func AsSequence(v any) ([]any, bool) {
	switch s := v.(type) {
	case Tuple:
		return s, true
	case []any:
		return s, true
	}
	return nil, false
}
