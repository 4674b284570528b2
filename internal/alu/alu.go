// Package alu implements the arithmetic and logic unit of the Game Boy
// CPU. Every operation is a pure function returning a Result, the value
// computed together with the flags that operation defines. Flags the
// operation does not define are left cleared; the CPU decides per
// instruction which bits it takes from the Result.
package alu

import (
	"github.com/pkg/errors"
	"github.com/thelolagemann/gbsim/internal/types"
	"github.com/thelolagemann/gbsim/pkg/bits"
)

// Flags holds the four CPU flags in its high nibble. The low nibble is
// always zero.
type Flags = uint8

const (
	// FlagZero is set when the result of an operation is zero.
	FlagZero Flags = types.Bit7
	// FlagSubtract is set by subtractions.
	FlagSubtract Flags = types.Bit6
	// FlagHalfCarry is set on a carry out of bit 3 (or a borrow into
	// bit 4 for subtractions).
	FlagHalfCarry Flags = types.Bit5
	// FlagCarry is set on a carry out of bit 7 (or a borrow for
	// subtractions), and receives the bit shifted out by shifts and
	// rotations.
	FlagCarry Flags = types.Bit4

	halfCarryAndCarry = FlagHalfCarry | FlagCarry
)

// Result is the output of a single ALU operation. It only lives for the
// duration of one CPU step.
type Result struct {
	Value uint16
	Flags Flags
}

// Has reports whether all the given flags are set in the result.
func (r Result) Has(f Flags) bool {
	return r.Flags&f == f
}

// zeroIf sets FlagZero when the value is zero.
func (r *Result) zeroIf() {
	if r.Value == 0 {
		r.Flags |= FlagZero
	}
}

// setIf sets the flag when cond is true.
func (r *Result) setIf(f Flags, cond bool) {
	if cond {
		r.Flags |= f
	}
}

// Add8 adds x, y and the incoming carry c0 (0 or 1).
//
// The value is produced nibble by nibble, while the carries are
// propagated bit by bit through all eight positions, the carry into bit
// 4 giving the half carry and the carry out of bit 7 the carry.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func Add8(x, y, c0 uint8) Result {
	c0 &= 1
	low := bits.LSB4(x) + bits.LSB4(y) + c0
	high := bits.MSB4(x) + bits.MSB4(y) + bits.MSB4(low)

	r := Result{Value: uint16(bits.Merge4(low, high))}

	var c [9]uint8
	c[0] = c0
	for i := uint8(1); i < 9; i++ {
		c[i] = (bits.Val(x, i-1) + bits.Val(y, i-1) + c[i-1]) >> 1
	}

	r.zeroIf()
	r.setIf(FlagHalfCarry, c[4] != 0)
	r.setIf(FlagCarry, c[8] != 0)
	return r
}

// Sub8 subtracts y and the incoming borrow b0 (0 or 1) from x.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func Sub8(x, y, b0 uint8) Result {
	b0 &= 1
	low := bits.LSB4(x) - bits.LSB4(y) - b0
	// a borrowing low nibble leaves 0xF in its high nibble, which is -1
	// modulo 16
	high := bits.MSB4(x) - bits.MSB4(y) + bits.MSB4(low)

	r := Result{Value: uint16(bits.Merge4(low, high)), Flags: FlagSubtract}

	var b [9]uint8
	b[0] = b0
	for i := uint8(1); i < 9; i++ {
		b[i] = (bits.Val(x, i-1) - bits.Val(y, i-1) - b[i-1]) >> 7
	}

	r.zeroIf()
	r.setIf(FlagHalfCarry, b[4] != 0)
	r.setIf(FlagCarry, b[8] != 0)
	return r
}

// add16 chains two Add8 calls, returning both halves.
func add16(x, y uint16) (low, high Result) {
	low = Add8(bits.LSB8(x), bits.LSB8(y), 0)
	var c0 uint8
	if low.Has(FlagCarry) {
		c0 = 1
	}
	high = Add8(bits.MSB8(x), bits.MSB8(y), c0)
	return low, high
}

// Add16Low adds two 16-bit values, reporting the half carry and carry of
// the low byte addition. It is used for the stack pointer relative adds.
//
// Flags affected:
//
//	Z - Set if the 16-bit result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func Add16Low(x, y uint16) Result {
	low, high := add16(x, y)
	r := Result{
		Value: bits.Merge8(uint8(low.Value), uint8(high.Value)),
		Flags: low.Flags & halfCarryAndCarry,
	}
	r.zeroIf()
	return r
}

// Add16High adds two 16-bit values, reporting the half carry and carry
// of the high byte addition. It is used for register pair arithmetic.
//
// Flags affected:
//
//	Z - Set if the 16-bit result is zero.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func Add16High(x, y uint16) Result {
	low, high := add16(x, y)
	r := Result{
		Value: bits.Merge8(uint8(low.Value), uint8(high.Value)),
		Flags: high.Flags & halfCarryAndCarry,
	}
	r.zeroIf()
	return r
}

// Shift shifts x by one bit in the given direction, the vacated bit is
// filled with 0 and the bit shifted out goes to the carry.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	C - Contains the bit shifted out.
func Shift(x uint8, dir bits.Direction) (Result, error) {
	if !dir.Valid() {
		return Result{}, errors.Wrapf(types.ErrBadParameter, "alu: invalid shift direction %d", dir)
	}

	var r Result
	if dir == bits.Left {
		r.setIf(FlagCarry, bits.Test(x, 7))
		r.Value = uint16(x << 1)
	} else {
		r.setIf(FlagCarry, bits.Test(x, 0))
		r.Value = uint16(x >> 1)
	}
	r.zeroIf()
	return r, nil
}

// ShiftRightArithmetic shifts x right by one bit, keeping bit 7 in
// place. Bit 0 goes to the carry.
func ShiftRightArithmetic(x uint8) Result {
	var r Result
	r.setIf(FlagCarry, bits.Test(x, 0))
	r.Value = uint16(x>>1 | x&types.Bit7)
	r.zeroIf()
	return r
}

// Rotate rotates x by one bit in the given direction. The bit rotated
// out is also copied to the carry.
func Rotate(x uint8, dir bits.Direction) (Result, error) {
	if !dir.Valid() {
		return Result{}, errors.Wrapf(types.ErrBadParameter, "alu: invalid rotate direction %d", dir)
	}

	var r Result
	if dir == bits.Left {
		r.setIf(FlagCarry, bits.Test(x, 7))
	} else {
		r.setIf(FlagCarry, bits.Test(x, 0))
	}
	r.Value = uint16(bits.Rotate(x, dir, 1))
	r.zeroIf()
	return r, nil
}

// CarryRotate rotates x by one bit through the carry: the carry held in
// flags enters the vacated bit, and the bit rotated out becomes the new
// carry. Only Z and C are ever set.
func CarryRotate(x uint8, dir bits.Direction, flags Flags) (Result, error) {
	r, err := Shift(x, dir)
	if err != nil {
		return r, err
	}
	if flags&FlagCarry != 0 {
		if dir == bits.Left {
			r.Value |= types.Bit0
		} else {
			r.Value |= types.Bit7
		}
	}

	// shifting may have reported zero before the carry came in
	r.Flags &= FlagCarry
	r.zeroIf()
	return r, nil
}

// And computes x & y. H is always set.
func And(x, y uint8) Result {
	r := Result{Value: uint16(x & y), Flags: FlagHalfCarry}
	r.zeroIf()
	return r
}

// Or computes x | y.
func Or(x, y uint8) Result {
	r := Result{Value: uint16(x | y)}
	r.zeroIf()
	return r
}

// Xor computes x ^ y.
func Xor(x, y uint8) Result {
	r := Result{Value: uint16(x ^ y)}
	r.zeroIf()
	return r
}

// Swap exchanges the nibbles of x.
func Swap(x uint8) Result {
	r := Result{Value: uint16(bits.Merge4(bits.MSB4(x), bits.LSB4(x)))}
	r.zeroIf()
	return r
}

// DecimalAdjust corrects a, the result of a BCD addition or subtraction,
// using the N, H and C bits of flags from that operation. The returned
// carry is set when the correction overflowed, or kept from flags after
// a subtraction.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	H - Reset.
//	C - Set or kept as described above.
func DecimalAdjust(a uint8, flags Flags) Result {
	carry := flags&FlagCarry != 0
	if flags&FlagSubtract == 0 {
		if carry || a > 0x99 {
			a += 0x60
			carry = true
		}
		if flags&FlagHalfCarry != 0 || a&0x0F > 0x09 {
			a += 0x06
		}
	} else {
		if carry {
			a -= 0x60
		}
		if flags&FlagHalfCarry != 0 {
			a -= 0x06
		}
	}

	r := Result{Value: uint16(a)}
	r.setIf(FlagCarry, carry)
	r.zeroIf()
	return r
}
