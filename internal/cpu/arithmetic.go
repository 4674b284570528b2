package cpu

import (
	"github.com/thelolagemann/gbsim/internal/alu"
	"github.com/thelolagemann/gbsim/pkg/bits"
)

// executeALU executes an instruction of the arithmetic and logic
// families. Each family computes an alu.Result, commits it to its
// destination and combines its flags into F.
func (c *CPU) executeALU(instruction Instruction) error {
	opcode := instruction.Opcode
	switch instruction.Family {
	case Add:
		c.add(c.aluOperand(opcode), opcode&0x08 != 0)
	case Sub:
		c.sub(c.aluOperand(opcode), opcode&0x08 != 0)
	case Compare:
		c.compare(c.aluOperand(opcode))
	case And:
		c.and(c.aluOperand(opcode))
	case Or:
		c.or(c.aluOperand(opcode))
	case Xor:
		c.xor(c.aluOperand(opcode))
	case Inc:
		return c.increment(opcode >> 3 & 7)
	case Dec:
		return c.decrement(opcode >> 3 & 7)
	case Inc16:
		c.setPair(opcode>>4, false, c.pair(opcode>>4, false)+1)
	case Dec16:
		c.setPair(opcode>>4, false, c.pair(opcode>>4, false)-1)
	case AddHL:
		c.addHL(c.pair(opcode>>4, false))
	case AddSP:
		c.addSP(opcode&0x10 != 0)
	case Complement:
		c.complement()
	case DecimalAdjust:
		c.decimalAdjust()
	case SetCarry:
		c.commit(carryFlags, FlagCarry)
	case ComplementCarry:
		c.commit(carryFlags, ^c.F&FlagCarry)
	case RotateA, RotateCarryA, Rotate, RotateCarry:
		return c.rotate(instruction)
	case ShiftLeft, ShiftRightArith, ShiftRight, Swap:
		return c.shift(instruction)
	case TestBit:
		c.testBit(opcode>>3&7, c.readOperand(opcode&7))
	case ChangeBit:
		return c.changeBit(opcode)
	}
	return nil
}

// aluOperand returns the second operand of the 8-bit arithmetic
// instructions: a register or (HL) for 0x80-0xBF, the immediate byte
// for 0xC6-0xFE.
func (c *CPU) aluOperand(opcode uint8) uint8 {
	if opcode >= 0xC0 {
		return c.data()
	}
	return c.readOperand(opcode & 7)
}

// add n to A, plus the carry flag when withCarry is set.
//
//	ADD A, n
//	ADC A, n
//	n = B, C, D, E, H, L, (HL), A, d8
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(n uint8, withCarry bool) {
	var carry uint8
	if withCarry {
		carry = c.carry()
	}
	r := alu.Add8(c.A, n, carry)
	c.A = uint8(r.Value)
	c.commit(addFlags, r.Flags)
}

// sub n from A, minus the carry flag when withCarry is set.
//
//	SUB n
//	SBC A, n
//	n = B, C, D, E, H, L, (HL), A, d8
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if no borrow from bit 4.
//	C - Set if no borrow.
func (c *CPU) sub(n uint8, withCarry bool) {
	var carry uint8
	if withCarry {
		carry = c.carry()
	}
	r := alu.Sub8(c.A, n, carry)
	c.A = uint8(r.Value)
	c.commit(subFlags, r.Flags)
}

// compare A with n, this is basically an A - n subtraction
// with the results thrown away.
func (c *CPU) compare(n uint8) {
	c.commit(subFlags, alu.Sub8(c.A, n, 0).Flags)
}

// increment the operand and set the flags accordingly.
//
//	INC n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func (c *CPU) increment(code uint8) error {
	r := alu.Add8(c.readOperand(code), 1, 0)
	if err := c.writeOperand(code, uint8(r.Value)); err != nil {
		return err
	}
	c.commit(incFlags, r.Flags)
	return nil
}

// decrement the operand and set the flags accordingly.
//
//	DEC n
//	n = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if no borrow from bit 4.
//	C - Not affected.
func (c *CPU) decrement(code uint8) error {
	r := alu.Sub8(c.readOperand(code), 1, 0)
	if err := c.writeOperand(code, uint8(r.Value)); err != nil {
		return err
	}
	c.commit(decFlags, r.Flags)
	return nil
}

// addHL adds the given value to HL.
//
//	ADD HL, nn
//	nn = BC, DE, HL, SP
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHL(nn uint16) {
	r := alu.Add16High(c.HL.Uint16(), nn)
	c.HL.SetUint16(r.Value)
	c.commit(addHLFlags, r.Flags)
}

// addSP adds the signed immediate byte to SP, storing the result in SP,
// or in HL when toHL is set.
//
//	ADD SP, e8
//	LD HL, SP+e8
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addSP(toHL bool) {
	e := uint16(int16(int8(c.data())))
	r := alu.Add16Low(c.SP, e)
	if toHL {
		c.HL.SetUint16(r.Value)
	} else {
		c.SP = r.Value
	}
	c.commit(addSPFlags, r.Flags)
}

// complement A.
//
//	CPL
//
// Flags affected:
//
//	Z - Not affected.
//	N - Set.
//	H - Set.
//	C - Not affected.
func (c *CPU) complement() {
	c.A = ^c.A
	c.commit(cplFlags, 0)
}

// decimalAdjust adjusts A so that the correct representation of
// Binary Coded Decimal (BCD) is obtained.
//
//	DAA
//
// Flags affected:
//
//	Z - Set if register A is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set or reset according to operation.
func (c *CPU) decimalAdjust() {
	r := alu.DecimalAdjust(c.A, c.F)
	c.A = uint8(r.Value)
	c.commit(daaFlags, r.Flags)
}

// testBit tests bit n of value, setting Z when it is 0.
//
//	BIT n, r
//	n = 0-7
//	r = B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if bit n of register r is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) testBit(n, value uint8) {
	var f Flag
	if !bits.Test(value, n) {
		f = FlagZero
	}
	c.commit(bitFlags, f)
}

// changeBit sets (SET) or resets (RES) a bit of the operand. Bit 6 of
// the opcode selects SET. Flags are not affected.
func (c *CPU) changeBit(opcode uint8) error {
	code, n := opcode&7, opcode>>3&7
	v := c.readOperand(code)
	if opcode&0x40 != 0 {
		v = bits.Set(v, n)
	} else {
		v = bits.Reset(v, n)
	}
	return c.writeOperand(code, v)
}
