package cpu

import "github.com/thelolagemann/gbsim/internal/alu"

type Flag = alu.Flags

const (
	FlagZero      = alu.FlagZero
	FlagSubtract  = alu.FlagSubtract
	FlagHalfCarry = alu.FlagHalfCarry
	FlagCarry     = alu.FlagCarry
)

// FlagSource is where the new value of a flag is taken from when an
// instruction commits its flags.
type FlagSource uint8

const (
	// Clear resets the flag.
	Clear FlagSource = iota
	// Set sets the flag.
	Set
	// FromALU takes the flag from the result just computed.
	FromALU
	// FromCPU keeps the current value of the flag.
	FromCPU
)

// flagSources holds a FlagSource for Z, N, H and C, in that order.
type flagSources [4]FlagSource

var flagOrder = [4]Flag{FlagZero, FlagSubtract, FlagHalfCarry, FlagCarry}

// combine resolves every flag from its source.
func combine(src flagSources, aluFlags, cpuFlags Flag) Flag {
	var f Flag
	for i, flag := range flagOrder {
		switch src[i] {
		case Set:
			f |= flag
		case FromALU:
			f |= aluFlags & flag
		case FromCPU:
			f |= cpuFlags & flag
		}
	}
	return f
}

// Flag combinations of the arithmetic families.
var (
	addFlags     = flagSources{FromALU, Clear, FromALU, FromALU}
	subFlags     = flagSources{FromALU, Set, FromALU, FromALU}
	incFlags     = flagSources{FromALU, Clear, FromALU, FromCPU}
	decFlags     = flagSources{FromALU, Set, FromALU, FromCPU}
	addHLFlags   = flagSources{FromCPU, Clear, FromALU, FromALU}
	addSPFlags   = flagSources{Clear, Clear, FromALU, FromALU}
	andFlags     = flagSources{FromALU, Clear, Set, Clear}
	orFlags      = flagSources{FromALU, Clear, Clear, Clear}
	shiftFlags   = flagSources{FromALU, Clear, Clear, FromALU}
	rotateAFlags = flagSources{Clear, Clear, Clear, FromALU}
	bitFlags     = flagSources{FromALU, Clear, Set, FromCPU}
	cplFlags     = flagSources{FromCPU, Set, Set, FromCPU}
	daaFlags     = flagSources{FromALU, FromCPU, Clear, FromALU}
	carryFlags   = flagSources{FromCPU, Clear, Clear, FromALU}
)

// commit combines the flags of an ALU result into F.
func (c *CPU) commit(src flagSources, aluFlags Flag) {
	c.F = combine(src, aluFlags, c.F)
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return c.F&flag != 0
}

// carry returns the carry flag as 0 or 1.
func (c *CPU) carry() uint8 {
	if c.isFlagSet(FlagCarry) {
		return 1
	}
	return 0
}

// condition evaluates the condition encoded in bits 4-3 of opcode.
func (c *CPU) condition(opcode uint8) bool {
	switch opcode >> 3 & 3 {
	case 0:
		return !c.isFlagSet(FlagZero)
	case 1:
		return c.isFlagSet(FlagZero)
	case 2:
		return !c.isFlagSet(FlagCarry)
	}
	return c.isFlagSet(FlagCarry)
}
