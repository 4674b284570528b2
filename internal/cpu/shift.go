package cpu

import (
	"github.com/thelolagemann/gbsim/internal/alu"
	"github.com/thelolagemann/gbsim/pkg/bits"
)

// shift executes the shifts and SWAP.
//
//	SLA n, SRA n, SRL n, SWAP n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains the bit shifted out, reset for SWAP.
func (c *CPU) shift(instruction Instruction) error {
	code := instruction.Opcode & 7
	n := c.readOperand(code)

	var (
		r   alu.Result
		err error
	)
	switch instruction.Family {
	case ShiftLeft:
		r, err = alu.Shift(n, bits.Left)
	case ShiftRight:
		r, err = alu.Shift(n, bits.Right)
	case ShiftRightArith:
		r = alu.ShiftRightArithmetic(n)
	case Swap:
		r = alu.Swap(n)
	}
	if err != nil {
		return err
	}

	if err := c.writeOperand(code, uint8(r.Value)); err != nil {
		return err
	}
	c.commit(shiftFlags, r.Flags)
	return nil
}
