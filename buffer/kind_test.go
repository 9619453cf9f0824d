package buffer

import (
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		got  ElemKind
		want ElemKind
	}{
		{KindOf[bool](), Bool},
		{KindOf[int8](), Int8},
		{KindOf[uint8](), Uint8},
		{KindOf[int16](), Int16},
		{KindOf[uint16](), Uint16},
		{KindOf[int32](), Int32},
		{KindOf[uint32](), Uint32},
		{KindOf[int64](), Int64},
		{KindOf[uint64](), Uint64},
		{KindOf[float32](), Float32},
		{KindOf[float64](), Float64},
		{KindOf[complex64](), Complex64},
		{KindOf[complex128](), Complex128},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("KindOf = %v, want %v", tt.got, tt.want)
		}
	}
}

func TestElemKind_String(t *testing.T) {
	if Int32.String() != "int32" {
		t.Errorf("Int32.String() = %q", Int32.String())
	}
	if ElemKind(200).String() != "unknown" {
		t.Errorf("unknown kind String() = %q", ElemKind(200).String())
	}
	if Complex128.Size() != 16 || Text.Size() != 4 {
		t.Error("unexpected kind sizes")
	}
}

func TestCanPromote(t *testing.T) {
	tests := []struct {
		from, to ElemKind
		want     bool
	}{
		{Int32, Int32, true},
		{Int8, Int32, true},
		{Uint16, Int32, true},
		{Uint32, Int32, false},
		{Int32, Int16, false},
		{Int64, Float64, false},
		{Int32, Float64, true},
		{Int32, Float32, false},
		{Uint8, Uint16, true},
		{Int8, Uint16, false},
		{Float32, Float64, true},
		{Float64, Float32, false},
		{Float32, Complex64, true},
		{Float64, Complex64, false},
		{Float64, Complex128, true},
		{Complex64, Complex128, true},
		{Complex128, Complex64, false},
		{Bool, Int8, false},
		{Int8, Bool, false},
		{Bool, Bool, true},
		{Text, Text, false},
		{Object, Int32, false},
	}
	for _, tt := range tests {
		if got := CanPromote(tt.from, tt.to); got != tt.want {
			t.Errorf("CanPromote(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
