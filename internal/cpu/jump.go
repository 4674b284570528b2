package cpu

// executeControl executes the jumps, calls, returns and restarts.
//
// PC is advanced by the instruction length once the instruction has
// executed, so every absolute target is stored minus that length.
func (c *CPU) executeControl(instruction Instruction) error {
	opcode, length := instruction.Opcode, uint16(instruction.Bytes)
	switch instruction.Family {
	case Jump:
		c.PC = c.data16() - length
	case JumpConditional:
		if c.taken = c.condition(opcode); c.taken {
			c.PC = c.data16() - length
		}
	case JumpHL:
		c.PC = c.HL.Uint16() - length
	case JumpRelative:
		c.jumpRelative()
	case JumpRelativeConditional:
		if c.taken = c.condition(opcode); c.taken {
			c.jumpRelative()
		}
	case Call:
		return c.call(c.data16(), length)
	case CallConditional:
		if c.taken = c.condition(opcode); c.taken {
			return c.call(c.data16(), length)
		}
	case Return:
		c.PC = c.pop() - length
	case ReturnConditional:
		if c.taken = c.condition(opcode); c.taken {
			c.PC = c.pop() - length
		}
	case ReturnInterrupt:
		c.IRQ.IME = true
		c.PC = c.pop() - length
	case Restart:
		return c.call(uint16(opcode>>3&7)<<3, length)
	}
	return nil
}

// jumpRelative adds the signed immediate byte to PC. The offset is
// relative to the end of the instruction.
//
//	JR e8
func (c *CPU) jumpRelative() {
	c.PC += uint16(int16(int8(c.data())))
}

// call pushes the address of the next instruction onto the stack and jumps to
// the given address.
//
//	CALL nn
//	RST n
func (c *CPU) call(address, length uint16) error {
	if err := c.push(c.PC + length); err != nil {
		return err
	}
	c.PC = address - length
	return nil
}
