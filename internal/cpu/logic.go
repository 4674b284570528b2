package cpu

import "github.com/thelolagemann/gbsim/internal/alu"

// and performs a bitwise AND operation on n and the A Register.
//
//	AND n
//	n = B, C, D, E, H, L, (HL), A, d8
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(n uint8) {
	r := alu.And(c.A, n)
	c.A = uint8(r.Value)
	c.commit(andFlags, r.Flags)
}

// or performs a bitwise OR operation on n and the A Register.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) or(n uint8) {
	r := alu.Or(c.A, n)
	c.A = uint8(r.Value)
	c.commit(orFlags, r.Flags)
}

// xor performs a bitwise XOR operation on n and the A Register. Flags
// are affected as for or.
func (c *CPU) xor(n uint8) {
	r := alu.Xor(c.A, n)
	c.A = uint8(r.Value)
	c.commit(orFlags, r.Flags)
}
