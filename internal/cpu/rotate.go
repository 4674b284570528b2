package cpu

import (
	"github.com/thelolagemann/gbsim/internal/alu"
	"github.com/thelolagemann/gbsim/pkg/bits"
)

// rotate executes the rotations. Bit 3 of the opcode selects the
// direction, 0 for left and 1 for right.
//
//	RLCA, RRCA, RLA, RRA
//	RLC n, RRC n, RL n, RR n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero, reset for the A variants.
//	N - Reset.
//	H - Reset.
//	C - Contains the bit rotated out.
func (c *CPU) rotate(instruction Instruction) error {
	dir := bits.Left
	if instruction.Opcode&0x08 != 0 {
		dir = bits.Right
	}

	code := instruction.Opcode & 7
	src := shiftFlags
	if instruction.Family == RotateA || instruction.Family == RotateCarryA {
		code = 7
		src = rotateAFlags
	}

	var (
		r   alu.Result
		err error
	)
	switch instruction.Family {
	case RotateA, Rotate:
		r, err = alu.Rotate(c.readOperand(code), dir)
	default:
		r, err = alu.CarryRotate(c.readOperand(code), dir, c.F)
	}
	if err != nil {
		return err
	}

	if err := c.writeOperand(code, uint8(r.Value)); err != nil {
		return err
	}
	c.commit(src, r.Flags)
	return nil
}
