// Package cpu implements the Game Boy CPU as a cycle stepped state
// machine. Every call to Cycle advances the CPU by one machine cycle:
// it either services an interrupt, burns an idle cycle left over from
// the previous instruction, or fetches and executes a new instruction.
package cpu

import (
	"github.com/pkg/errors"
	"github.com/thelolagemann/gbsim/internal/interrupts"
	"github.com/thelolagemann/gbsim/internal/mmu"
	"github.com/thelolagemann/gbsim/internal/types"
)

const (
	// ClockSpeed is the clock speed of the CPU.
	ClockSpeed = 4194304

	// interruptIdle is the number of idle cycles spent servicing an
	// interrupt.
	interruptIdle = 5
)

// CPU represents the Gameboy CPU. It is responsible for executing instructions.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	Registers

	// Trace, when set, is called with every instruction before it is
	// executed.
	Trace func(pc uint16, instruction Instruction)

	bus *mmu.Bus
	IRQ *interrupts.Service

	idle      uint8
	halted    bool
	lastWrite uint16

	// taken is set by conditional branches that branch
	taken bool
}

// NewCPU creates a new CPU reading and writing through bus, and
// raising interrupts through irq.
func NewCPU(bus *mmu.Bus, irq *interrupts.Service) *CPU {
	c := &CPU{
		bus: bus,
		IRQ: irq,
	}
	// create register pairs
	c.BC = &RegisterPair{&c.B, &c.C}
	c.DE = &RegisterPair{&c.D, &c.E}
	c.HL = &RegisterPair{&c.H, &c.L}
	c.AF = &RegisterPair{&c.A, &c.F}

	return c
}

// Cycle runs the CPU for a single machine cycle.
//
// A halted CPU does nothing until an interrupt is both requested and
// enabled. A requested, enabled interrupt is serviced when IME is set,
// even while idle cycles are outstanding. Otherwise an idle cycle is
// consumed, or the next instruction is fetched and executed.
func (c *CPU) Cycle() error {
	c.lastWrite = 0

	if c.halted {
		if !c.IRQ.Pending() {
			return nil
		}
		c.halted = false
	}

	if c.IRQ.IME && c.IRQ.Pending() {
		return c.executeInterrupt()
	}

	if c.idle > 0 {
		c.idle--
		return nil
	}

	instruction := InstructionSet[c.read(c.PC)]
	if instruction.Opcode == Prefix {
		instruction = InstructionSetCB[c.read(c.PC+1)]
	}
	return c.dispatch(instruction)
}

// executeInterrupt services the highest priority interrupt.
func (c *CPU) executeInterrupt() error {
	n, ok := c.IRQ.Next()
	if !ok {
		return nil
	}
	c.IRQ.IME = false
	if err := c.push(c.PC); err != nil {
		return err
	}
	c.PC = interrupts.Vector(n)
	c.idle += interruptIdle
	return nil
}

// dispatch executes the instruction found at PC, then accounts for its
// cost and length.
func (c *CPU) dispatch(instruction Instruction) error {
	if c.Trace != nil {
		c.Trace(c.PC, instruction)
	}

	c.taken = false
	var err error
	switch instruction.Family.class() {
	case classMisc:
		c.executeMisc(instruction)
	case classALU:
		err = c.executeALU(instruction)
	case classStorage:
		err = c.executeStorage(instruction)
	case classControl:
		err = c.executeControl(instruction)
	default:
		return errors.Wrapf(types.ErrInstruction, "cpu: illegal opcode %02X at %04X", instruction.Opcode, c.PC)
	}
	if err != nil {
		return errors.Wrapf(err, "cpu: executing %s at %04X", instruction.Name, c.PC)
	}

	c.idle = instruction.Cycles - 1
	if c.taken {
		c.idle += instruction.ExtraCycles
	}
	c.PC += uint16(instruction.Bytes)
	return nil
}

func (c *CPU) executeMisc(instruction Instruction) {
	switch instruction.Family {
	case Halt:
		c.halted = true
	case InterruptEnable:
		// EI is 0xFB, DI is 0xF3
		c.IRQ.IME = instruction.Opcode&0x08 != 0
	case Nop, Stop:
	}
}

// RequestInterrupt requests the interrupt n.
func (c *CPU) RequestInterrupt(n uint8) {
	c.IRQ.Request(n)
}

// LastWrite returns the address of the last write performed by the
// CPU during the current cycle, or 0.
func (c *CPU) LastWrite() uint16 {
	return c.lastWrite
}

// Idle returns the number of cycles before the next fetch.
func (c *CPU) Idle() uint8 {
	return c.idle
}

// Halted reports whether the CPU is waiting for an interrupt.
func (c *CPU) Halted() bool {
	return c.halted
}

// read reads a byte from the bus.
func (c *CPU) read(addr uint16) uint8 {
	return c.bus.Read(addr)
}

// read16 reads a little endian word from the bus.
func (c *CPU) read16(addr uint16) uint16 {
	return c.bus.Read16(addr)
}

// write writes the given value to the given address, recording the
// address for the write listeners.
func (c *CPU) write(addr uint16, val uint8) error {
	if err := c.bus.Write(addr, val); err != nil {
		return err
	}
	c.lastWrite = addr
	return nil
}

// write16 writes a little endian word, recording its address.
func (c *CPU) write16(addr uint16, val uint16) error {
	if err := c.bus.Write16(addr, val); err != nil {
		return err
	}
	c.lastWrite = addr
	return nil
}

// data returns the byte following the opcode.
func (c *CPU) data() uint8 {
	return c.read(c.PC + 1)
}

// data16 returns the word following the opcode.
func (c *CPU) data16() uint16 {
	return c.read16(c.PC + 1)
}

// push pushes a word onto the stack.
func (c *CPU) push(v uint16) error {
	c.SP -= 2
	return c.write16(c.SP, v)
}

// pop pops a word off the stack.
func (c *CPU) pop() uint16 {
	v := c.read16(c.SP)
	c.SP += 2
	return v
}

var _ types.Stater = (*CPU)(nil)

func (c *CPU) Load(s *types.State) {
	c.A = s.Read8()
	c.F = s.Read8()
	c.B = s.Read8()
	c.C = s.Read8()
	c.D = s.Read8()
	c.E = s.Read8()
	c.H = s.Read8()
	c.L = s.Read8()
	c.SP = s.Read16()
	c.PC = s.Read16()
	c.idle = s.Read8()
	c.halted = s.ReadBool()
	c.IRQ.Load(s)
}

func (c *CPU) Save(s *types.State) {
	s.Write8(c.A)
	s.Write8(c.F)
	s.Write8(c.B)
	s.Write8(c.C)
	s.Write8(c.D)
	s.Write8(c.E)
	s.Write8(c.H)
	s.Write8(c.L)
	s.Write16(c.SP)
	s.Write16(c.PC)
	s.Write8(c.idle)
	s.WriteBool(c.halted)
	c.IRQ.Save(s)
}
