package cpu

// Register represents a GB Register which is used to hold an 8-bit value.
// The CPU has 8 registers: A, B, C, D, E, H, L, and F. The F register is
// special in that it is used to hold the flags.
type Register = uint8

// RegisterPair represents a pair of GB Registers which is used to hold a 16-bit
// value. The CPU has 4 register pairs: AF, BC, DE, and HL.
type RegisterPair struct {
	High *Register
	Low  *Register
}

// Uint16 returns the value of the RegisterPair as an uint16.
func (r *RegisterPair) Uint16() uint16 {
	return uint16(*r.High)<<8 | uint16(*r.Low)
}

// SetUint16 sets the value of the RegisterPair to the given value.
func (r *RegisterPair) SetUint16(value uint16) {
	*r.High = uint8(value >> 8)
	*r.Low = uint8(value)
}

// Registers represents the GB CPU registers.
type Registers struct {
	A Register
	B Register
	C Register
	D Register
	E Register
	F Register
	H Register
	L Register

	BC *RegisterPair
	DE *RegisterPair
	HL *RegisterPair
	AF *RegisterPair
}

// register returns the register encoded by a 3 bit operand field. Code
// 6 stands for (HL) and has no register.
func (c *CPU) register(code uint8) *Register {
	switch code & 7 {
	case 0:
		return &c.B
	case 1:
		return &c.C
	case 2:
		return &c.D
	case 3:
		return &c.E
	case 4:
		return &c.H
	case 5:
		return &c.L
	case 7:
		return &c.A
	}
	return nil
}

// readOperand returns the value of an 8-bit operand, reading the bus
// for (HL).
func (c *CPU) readOperand(code uint8) uint8 {
	if r := c.register(code); r != nil {
		return *r
	}
	return c.read(c.HL.Uint16())
}

// writeOperand stores v in an 8-bit operand, writing the bus for (HL).
func (c *CPU) writeOperand(code uint8, v uint8) error {
	if r := c.register(code); r != nil {
		*r = v
		return nil
	}
	return c.write(c.HL.Uint16(), v)
}

// pair returns the value of the register pair encoded by a 2 bit
// operand field. Code 3 is SP, or AF for the stack instructions.
func (c *CPU) pair(code uint8, stack bool) uint16 {
	switch code & 3 {
	case 0:
		return c.BC.Uint16()
	case 1:
		return c.DE.Uint16()
	case 2:
		return c.HL.Uint16()
	}
	if stack {
		return c.AF.Uint16()
	}
	return c.SP
}

// setPair sets the register pair encoded by a 2 bit operand field. The
// low nibble of F always reads 0.
func (c *CPU) setPair(code uint8, stack bool, v uint16) {
	switch code & 3 {
	case 0:
		c.BC.SetUint16(v)
	case 1:
		c.DE.SetUint16(v)
	case 2:
		c.HL.SetUint16(v)
	default:
		if stack {
			c.AF.SetUint16(v & 0xFFF0)
		} else {
			c.SP = v
		}
	}
}
