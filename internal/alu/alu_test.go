package alu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/gbsim/internal/types"
	"github.com/thelolagemann/gbsim/pkg/bits"
)

// TestAdd8_Exhaustive checks every operand pair against plain integer
// arithmetic.
func TestAdd8_Exhaustive(t *testing.T) {
	for x := 0; x < 256; x++ {
		for y := 0; y < 256; y++ {
			for c := 0; c < 2; c++ {
				r := Add8(uint8(x), uint8(y), uint8(c))
				sum := x + y + c
				if r.Value != uint16(sum&0xFF) {
					t.Fatalf("Add8(%02X, %02X, %d) = %02X, want %02X", x, y, c, r.Value, sum&0xFF)
				}
				if r.Has(FlagCarry) != (sum > 0xFF) {
					t.Fatalf("Add8(%02X, %02X, %d) carry = %v", x, y, c, r.Has(FlagCarry))
				}
				if r.Has(FlagHalfCarry) != ((x&0xF)+(y&0xF)+c > 0xF) {
					t.Fatalf("Add8(%02X, %02X, %d) half carry = %v", x, y, c, r.Has(FlagHalfCarry))
				}
				if r.Has(FlagZero) != (sum&0xFF == 0) {
					t.Fatalf("Add8(%02X, %02X, %d) zero = %v", x, y, c, r.Has(FlagZero))
				}
				if r.Has(FlagSubtract) {
					t.Fatalf("Add8(%02X, %02X, %d) set N", x, y, c)
				}
			}
		}
	}
}

func TestSub8_Exhaustive(t *testing.T) {
	for x := 0; x < 256; x++ {
		for y := 0; y < 256; y++ {
			for b := 0; b < 2; b++ {
				r := Sub8(uint8(x), uint8(y), uint8(b))
				diff := x - y - b
				if r.Value != uint16(diff&0xFF) {
					t.Fatalf("Sub8(%02X, %02X, %d) = %02X, want %02X", x, y, b, r.Value, diff&0xFF)
				}
				if r.Has(FlagCarry) != (diff < 0) {
					t.Fatalf("Sub8(%02X, %02X, %d) carry = %v", x, y, b, r.Has(FlagCarry))
				}
				if r.Has(FlagHalfCarry) != ((x&0xF)-(y&0xF)-b < 0) {
					t.Fatalf("Sub8(%02X, %02X, %d) half carry = %v", x, y, b, r.Has(FlagHalfCarry))
				}
				if r.Has(FlagZero) != (diff&0xFF == 0) {
					t.Fatalf("Sub8(%02X, %02X, %d) zero = %v", x, y, b, r.Has(FlagZero))
				}
				if !r.Has(FlagSubtract) {
					t.Fatalf("Sub8(%02X, %02X, %d) did not set N", x, y, b)
				}
			}
		}
	}
}

func TestAdd8(t *testing.T) {
	t.Run("half carry", func(t *testing.T) {
		r := Add8(0x0F, 0x01, 0)
		assert.Equal(t, uint16(0x10), r.Value)
		assert.Equal(t, FlagHalfCarry, r.Flags)
	})
	t.Run("overflow to zero", func(t *testing.T) {
		r := Add8(0xFF, 0x01, 0)
		assert.Equal(t, uint16(0x00), r.Value)
		assert.Equal(t, FlagZero|FlagHalfCarry|FlagCarry, r.Flags)
	})
	t.Run("carry in", func(t *testing.T) {
		r := Add8(0x7F, 0x00, 1)
		assert.Equal(t, uint16(0x80), r.Value)
		assert.Equal(t, FlagHalfCarry, r.Flags)
	})
}

func TestSub8(t *testing.T) {
	r := Sub8(0x10, 0x01, 0)
	assert.Equal(t, uint16(0x0F), r.Value)
	assert.Equal(t, FlagSubtract|FlagHalfCarry, r.Flags)

	r = Sub8(0x00, 0x01, 0)
	assert.Equal(t, uint16(0xFF), r.Value)
	assert.Equal(t, FlagSubtract|FlagHalfCarry|FlagCarry, r.Flags)

	r = Sub8(0x42, 0x42, 0)
	assert.Equal(t, uint16(0x00), r.Value)
	assert.Equal(t, FlagSubtract|FlagZero, r.Flags)
}

func TestAdd16(t *testing.T) {
	low := Add16Low(0x0FF0, 0x0010)
	assert.Equal(t, uint16(0x1000), low.Value)
	assert.Equal(t, FlagCarry, low.Flags, "low variant reports the low byte carry")

	high := Add16High(0x0FF0, 0x0010)
	assert.Equal(t, uint16(0x1000), high.Value)
	assert.Equal(t, FlagHalfCarry, high.Flags, "high variant reports the bit 11 carry")

	wrap := Add16High(0xFFFF, 0x0001)
	assert.Equal(t, uint16(0x0000), wrap.Value)
	assert.Equal(t, FlagZero|FlagHalfCarry|FlagCarry, wrap.Flags)

	for _, v := range []uint16{0x0000, 0x1234, 0x8000, 0xFFFF} {
		for _, w := range []uint16{0x0001, 0x00FF, 0x0F00, 0xFFFF} {
			assert.Equal(t, v+w, Add16Low(v, w).Value)
			assert.Equal(t, v+w, Add16High(v, w).Value)
		}
	}
}

func TestShift(t *testing.T) {
	tests := []struct {
		name  string
		x     uint8
		dir   bits.Direction
		want  uint16
		flags Flags
	}{
		{"left", 0x41, bits.Left, 0x82, 0},
		{"left out", 0x80, bits.Left, 0x00, FlagZero | FlagCarry},
		{"right", 0x82, bits.Right, 0x41, 0},
		{"right out", 0x03, bits.Right, 0x01, FlagCarry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Shift(tt.x, tt.dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Value)
			assert.Equal(t, tt.flags, r.Flags)
		})
	}

	_, err := Shift(0x01, bits.Direction(2))
	assert.True(t, errors.Is(err, types.ErrBadParameter))
}

func TestShiftRightArithmetic(t *testing.T) {
	r := ShiftRightArithmetic(0x81)
	assert.Equal(t, uint16(0xC0), r.Value)
	assert.Equal(t, FlagCarry, r.Flags)

	r = ShiftRightArithmetic(0x01)
	assert.Equal(t, uint16(0x00), r.Value)
	assert.Equal(t, FlagZero|FlagCarry, r.Flags)
}

func TestRotate(t *testing.T) {
	r, err := Rotate(0x85, bits.Left)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0B), r.Value)
	assert.Equal(t, FlagCarry, r.Flags)

	r, err = Rotate(0x01, bits.Right)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x80), r.Value)
	assert.Equal(t, FlagCarry, r.Flags)

	r, err = Rotate(0x00, bits.Right)
	require.NoError(t, err)
	assert.Equal(t, FlagZero, r.Flags)

	_, err = Rotate(0x00, bits.Direction(7))
	assert.ErrorIs(t, err, types.ErrBadParameter)
}

func TestCarryRotate(t *testing.T) {
	tests := []struct {
		name  string
		x     uint8
		dir   bits.Direction
		in    Flags
		want  uint16
		flags Flags
	}{
		{"left carry in", 0x00, bits.Left, FlagCarry, 0x01, 0},
		{"left carry out", 0x80, bits.Left, 0, 0x00, FlagZero | FlagCarry},
		{"left through", 0x80, bits.Left, FlagCarry, 0x01, FlagCarry},
		{"right carry in", 0x00, bits.Right, FlagCarry, 0x80, 0},
		{"right carry out", 0x01, bits.Right, 0, 0x00, FlagZero | FlagCarry},
		{"other flags ignored", 0x02, bits.Right, FlagZero | FlagHalfCarry | FlagSubtract, 0x01, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := CarryRotate(tt.x, tt.dir, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Value)
			assert.Equal(t, tt.flags, r.Flags)
		})
	}
}

func TestLogic(t *testing.T) {
	assert.Equal(t, Result{Value: 0x00, Flags: FlagZero | FlagHalfCarry}, And(0xF0, 0x0F))
	assert.Equal(t, Result{Value: 0x0A, Flags: FlagHalfCarry}, And(0x0F, 0xFA))
	assert.Equal(t, Result{Value: 0xFF}, Or(0xF0, 0x0F))
	assert.Equal(t, Result{Value: 0x00, Flags: FlagZero}, Xor(0x5A, 0x5A))
	assert.Equal(t, Result{Value: 0xA5}, Swap(0x5A))
	assert.Equal(t, Result{Value: 0x00, Flags: FlagZero}, Swap(0x00))
}

func TestDecimalAdjust(t *testing.T) {
	// adding BCD 0x15 + 0x27 yields 0x3C, adjusted to 0x42
	sum := Add8(0x15, 0x27, 0)
	r := DecimalAdjust(uint8(sum.Value), sum.Flags)
	assert.Equal(t, uint16(0x42), r.Value)
	assert.False(t, r.Has(FlagCarry))

	// 0x99 + 0x01 wraps to 0x00 with a carry
	sum = Add8(0x99, 0x01, 0)
	r = DecimalAdjust(uint8(sum.Value), sum.Flags)
	assert.Equal(t, uint16(0x00), r.Value)
	assert.Equal(t, FlagZero|FlagCarry, r.Flags)

	// 0x42 - 0x15 yields 0x2D, adjusted to 0x27
	diff := Sub8(0x42, 0x15, 0)
	r = DecimalAdjust(uint8(diff.Value), diff.Flags)
	assert.Equal(t, uint16(0x27), r.Value)
	assert.False(t, r.Has(FlagCarry))
}
