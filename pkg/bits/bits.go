// Package bits provides the nibble, byte and bit helpers shared by the
// ALU, the CPU and the timer. All functions are pure.
package bits

// Direction is the direction of a rotation or shift.
type Direction uint8

const (
	// Left moves bits towards the most significant bit.
	Left Direction = iota
	// Right moves bits towards the least significant bit.
	Right
)

// Valid reports whether d is Left or Right.
func (d Direction) Valid() bool {
	return d == Left || d == Right
}

// clamp forces a bit index into 0-7, out of range indexes become 0.
func clamp(i uint8) uint8 {
	if i > 7 {
		return 0
	}
	return i
}

// LSB4 returns the low nibble of b.
func LSB4(b uint8) uint8 {
	return b & 0x0F
}

// MSB4 returns the high nibble of b, shifted down.
func MSB4(b uint8) uint8 {
	return b >> 4
}

// LSB8 returns the low byte of v.
func LSB8(v uint16) uint8 {
	return uint8(v)
}

// MSB8 returns the high byte of v.
func MSB8(v uint16) uint8 {
	return uint8(v >> 8)
}

// Merge4 builds a byte from a low and a high nibble. Only the low
// nibble of each argument is used.
func Merge4(low, high uint8) uint8 {
	return (high&0x0F)<<4 | low&0x0F
}

// Merge8 builds a 16-bit value from a low and a high byte.
func Merge8(low, high uint8) uint16 {
	return uint16(high)<<8 | uint16(low)
}

// Val returns the value of the bit at the given index.
func Val(b uint8, i uint8) uint8 {
	return (b >> clamp(i)) & 1
}

// Reset resets the bit at the given index.
func Reset(b, i uint8) uint8 {
	return b &^ (1 << clamp(i))
}

// Set sets the bit at the given index.
func Set(b, i uint8) uint8 {
	return b | (1 << clamp(i))
}

// Test tests the bit at the given index.
func Test(b, i uint8) bool {
	return Val(b, i) != 0
}

// Edit sets the bit at index i when v is non-zero, and resets it
// otherwise.
func Edit(b, i, v uint8) uint8 {
	if v == 0 {
		return Reset(b, i)
	}
	return Set(b, i)
}

// Rotate rotates b by d positions in the given direction. d is clamped
// to 0-7.
func Rotate(b uint8, dir Direction, d uint8) uint8 {
	d = clamp(d)
	if dir == Left {
		return b<<d | b>>(8-d)
	}
	return b>>d | b<<(8-d)
}
