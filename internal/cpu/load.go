package cpu

// executeStorage executes the load, store and stack instructions.
func (c *CPU) executeStorage(instruction Instruction) error {
	opcode := instruction.Opcode
	switch instruction.Family {
	case Load8:
		return c.writeOperand(opcode>>3&7, c.readOperand(opcode&7))
	case LoadImmediate8:
		return c.writeOperand(opcode>>3&7, c.data())
	case LoadIndirect:
		c.A = c.read(c.pair(opcode>>4, false))
	case StoreIndirect:
		return c.write(c.pair(opcode>>4, false), c.A)
	case LoadHLStep:
		c.A = c.read(c.HL.Uint16())
		c.stepHL(opcode)
	case StoreHLStep:
		if err := c.write(c.HL.Uint16(), c.A); err != nil {
			return err
		}
		c.stepHL(opcode)
	case LoadAbsolute:
		c.A = c.read(c.data16())
	case StoreAbsolute:
		return c.write(c.data16(), c.A)
	case LoadHigh:
		c.A = c.read(0xFF00 | uint16(c.data()))
	case StoreHigh:
		return c.write(0xFF00|uint16(c.data()), c.A)
	case LoadHighC:
		c.A = c.read(0xFF00 | uint16(c.C))
	case StoreHighC:
		return c.write(0xFF00|uint16(c.C), c.A)
	case LoadImmediate16:
		c.setPair(opcode>>4, false, c.data16())
	case StoreSP:
		return c.write16(c.data16(), c.SP)
	case LoadSPHL:
		c.SP = c.HL.Uint16()
	case Push:
		return c.push(c.pair(opcode>>4, true))
	case Pop:
		c.setPair(opcode>>4, true, c.pop())
	}
	return nil
}

// stepHL increments HL after LD (HL+), or decrements it after LD (HL-).
// Bit 4 of the opcode selects the decrement.
func (c *CPU) stepHL(opcode uint8) {
	if opcode&0x10 != 0 {
		c.HL.SetUint16(c.HL.Uint16() - 1)
	} else {
		c.HL.SetUint16(c.HL.Uint16() + 1)
	}
}
