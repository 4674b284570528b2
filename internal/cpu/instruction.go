package cpu

import "fmt"

// Family identifies how an instruction is executed. Instructions of the
// same family differ only by the operands encoded in their opcode.
type Family uint8

const (
	Illegal Family = iota

	// misc
	Nop
	Halt
	Stop
	InterruptEnable // EI, DI

	// arithmetic and logic
	Add             // ADD, ADC
	Sub             // SUB, SBC
	Compare         // CP
	And             // AND
	Or              // OR
	Xor             // XOR
	Inc             // INC r8, INC (HL)
	Dec             // DEC r8, DEC (HL)
	Inc16           // INC r16
	Dec16           // DEC r16
	AddHL           // ADD HL, r16
	AddSP           // ADD SP, e8 and LD HL, SP+e8
	Complement      // CPL
	DecimalAdjust   // DAA
	SetCarry        // SCF
	ComplementCarry // CCF
	RotateA         // RLCA, RRCA
	RotateCarryA    // RLA, RRA
	Rotate          // RLC, RRC
	RotateCarry     // RL, RR
	ShiftLeft       // SLA
	ShiftRightArith // SRA
	Swap            // SWAP
	ShiftRight      // SRL
	TestBit         // BIT
	ChangeBit       // SET, RES

	// storage
	Load8           // LD r8, r8
	LoadImmediate8  // LD r8, d8
	LoadIndirect    // LD A, (BC), LD A, (DE)
	StoreIndirect   // LD (BC), A, LD (DE), A
	LoadHLStep      // LD A, (HL+), LD A, (HL-)
	StoreHLStep     // LD (HL+), A, LD (HL-), A
	LoadAbsolute    // LD A, (a16)
	StoreAbsolute   // LD (a16), A
	LoadHigh        // LDH A, (a8)
	StoreHigh       // LDH (a8), A
	LoadHighC       // LD A, (C)
	StoreHighC      // LD (C), A
	LoadImmediate16 // LD r16, d16
	StoreSP         // LD (a16), SP
	LoadSPHL        // LD SP, HL
	Push
	Pop

	// control
	Jump
	JumpConditional
	JumpHL
	JumpRelative
	JumpRelativeConditional
	Call
	CallConditional
	Return
	ReturnConditional
	ReturnInterrupt
	Restart
)

// class is the group of families an instruction is dispatched through.
type class uint8

const (
	classIllegal class = iota
	classMisc
	classALU
	classStorage
	classControl
)

func (f Family) class() class {
	switch {
	case f == Illegal:
		return classIllegal
	case f < Add:
		return classMisc
	case f < Load8:
		return classALU
	case f < Jump:
		return classStorage
	case f <= Restart:
		return classControl
	}
	return classIllegal
}

// Instruction describes a single opcode. Cycles are machine cycles;
// ExtraCycles are only spent by conditional branches that are taken.
type Instruction struct {
	Opcode      uint8
	Family      Family
	Bytes       uint8
	Cycles      uint8
	ExtraCycles uint8
	Name        string
}

// Prefix is the opcode introducing an instruction of InstructionSetCB.
const Prefix = 0xCB

var (
	// InstructionSet holds the unprefixed instructions.
	InstructionSet [256]Instruction
	// InstructionSetCB holds the instructions prefixed by 0xCB.
	InstructionSetCB [256]Instruction
)

// DefineInstruction defines the instruction in the InstructionSet, with
// the provided opcode.
func DefineInstruction(opcode uint8, name string, family Family, bytes, cycles, extra uint8) {
	InstructionSet[opcode] = Instruction{
		Opcode:      opcode,
		Family:      family,
		Bytes:       bytes,
		Cycles:      cycles,
		ExtraCycles: extra,
		Name:        name,
	}
}

// DefineInstructionCB defines the instruction in the InstructionSetCB.
// Every prefixed instruction is 2 bytes long.
func DefineInstructionCB(opcode uint8, name string, family Family, cycles uint8) {
	InstructionSetCB[opcode] = Instruction{
		Opcode: opcode,
		Family: family,
		Bytes:  2,
		Cycles: cycles,
		Name:   name,
	}
}

var (
	registerNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
	pairNames     = [4]string{"BC", "DE", "HL", "SP"}
	stackNames    = [4]string{"BC", "DE", "HL", "AF"}
	conditionName = [4]string{"NZ", "Z", "NC", "C"}
)

// disallowedOpcodes have no instruction on the hardware. 0xCB only
// introduces the prefixed set.
var disallowedOpcodes = []uint8{
	0xCB, 0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD,
}

func init() {
	for i := range InstructionSet {
		InstructionSet[i] = Instruction{Opcode: uint8(i), Family: Illegal, Name: "disallowed"}
	}

	DefineInstruction(0x00, "NOP", Nop, 1, 1, 0)
	DefineInstruction(0x10, "STOP", Stop, 2, 1, 0)
	DefineInstruction(0x76, "HALT", Halt, 1, 1, 0)
	DefineInstruction(0xF3, "DI", InterruptEnable, 1, 1, 0)
	DefineInstruction(0xFB, "EI", InterruptEnable, 1, 1, 0)

	DefineInstruction(0x07, "RLCA", RotateA, 1, 1, 0)
	DefineInstruction(0x0F, "RRCA", RotateA, 1, 1, 0)
	DefineInstruction(0x17, "RLA", RotateCarryA, 1, 1, 0)
	DefineInstruction(0x1F, "RRA", RotateCarryA, 1, 1, 0)
	DefineInstruction(0x27, "DAA", DecimalAdjust, 1, 1, 0)
	DefineInstruction(0x2F, "CPL", Complement, 1, 1, 0)
	DefineInstruction(0x37, "SCF", SetCarry, 1, 1, 0)
	DefineInstruction(0x3F, "CCF", ComplementCarry, 1, 1, 0)
	DefineInstruction(0xE8, "ADD SP, e8", AddSP, 2, 4, 0)
	DefineInstruction(0xF8, "LD HL, SP+e8", AddSP, 2, 3, 0)

	DefineInstruction(0x02, "LD (BC), A", StoreIndirect, 1, 2, 0)
	DefineInstruction(0x12, "LD (DE), A", StoreIndirect, 1, 2, 0)
	DefineInstruction(0x0A, "LD A, (BC)", LoadIndirect, 1, 2, 0)
	DefineInstruction(0x1A, "LD A, (DE)", LoadIndirect, 1, 2, 0)
	DefineInstruction(0x22, "LD (HL+), A", StoreHLStep, 1, 2, 0)
	DefineInstruction(0x32, "LD (HL-), A", StoreHLStep, 1, 2, 0)
	DefineInstruction(0x2A, "LD A, (HL+)", LoadHLStep, 1, 2, 0)
	DefineInstruction(0x3A, "LD A, (HL-)", LoadHLStep, 1, 2, 0)
	DefineInstruction(0x08, "LD (a16), SP", StoreSP, 3, 5, 0)
	DefineInstruction(0xE0, "LDH (a8), A", StoreHigh, 2, 3, 0)
	DefineInstruction(0xF0, "LDH A, (a8)", LoadHigh, 2, 3, 0)
	DefineInstruction(0xE2, "LD (C), A", StoreHighC, 1, 2, 0)
	DefineInstruction(0xF2, "LD A, (C)", LoadHighC, 1, 2, 0)
	DefineInstruction(0xEA, "LD (a16), A", StoreAbsolute, 3, 4, 0)
	DefineInstruction(0xFA, "LD A, (a16)", LoadAbsolute, 3, 4, 0)
	DefineInstruction(0xF9, "LD SP, HL", LoadSPHL, 1, 2, 0)

	DefineInstruction(0x18, "JR e8", JumpRelative, 2, 3, 0)
	DefineInstruction(0xC3, "JP a16", Jump, 3, 4, 0)
	DefineInstruction(0xE9, "JP HL", JumpHL, 1, 1, 0)
	DefineInstruction(0xCD, "CALL a16", Call, 3, 6, 0)
	DefineInstruction(0xC9, "RET", Return, 1, 4, 0)
	DefineInstruction(0xD9, "RETI", ReturnInterrupt, 1, 4, 0)

	for cc := uint8(0); cc < 4; cc++ {
		DefineInstruction(0x20|cc<<3, "JR "+conditionName[cc]+", e8", JumpRelativeConditional, 2, 2, 1)
		DefineInstruction(0xC2|cc<<3, "JP "+conditionName[cc]+", a16", JumpConditional, 3, 3, 1)
		DefineInstruction(0xC4|cc<<3, "CALL "+conditionName[cc]+", a16", CallConditional, 3, 3, 3)
		DefineInstruction(0xC0|cc<<3, "RET "+conditionName[cc], ReturnConditional, 1, 2, 3)
	}

	for p := uint8(0); p < 4; p++ {
		DefineInstruction(0x01|p<<4, "LD "+pairNames[p]+", d16", LoadImmediate16, 3, 3, 0)
		DefineInstruction(0x03|p<<4, "INC "+pairNames[p], Inc16, 1, 2, 0)
		DefineInstruction(0x0B|p<<4, "DEC "+pairNames[p], Dec16, 1, 2, 0)
		DefineInstruction(0x09|p<<4, "ADD HL, "+pairNames[p], AddHL, 1, 2, 0)
		DefineInstruction(0xC5|p<<4, "PUSH "+stackNames[p], Push, 1, 4, 0)
		DefineInstruction(0xC1|p<<4, "POP "+stackNames[p], Pop, 1, 3, 0)
	}

	for r := uint8(0); r < 8; r++ {
		// (HL) operands cost an extra memory access
		var memory uint8
		if r == 6 {
			memory = 1
		}
		DefineInstruction(0x04|r<<3, "INC "+registerNames[r], Inc, 1, 1+2*memory, 0)
		DefineInstruction(0x05|r<<3, "DEC "+registerNames[r], Dec, 1, 1+2*memory, 0)
		DefineInstruction(0x06|r<<3, "LD "+registerNames[r]+", d8", LoadImmediate8, 2, 2+memory, 0)
		DefineInstruction(0xC7|r<<3, fmt.Sprintf("RST %02Xh", r<<3), Restart, 1, 4, 0)

		for src := uint8(0); src < 8; src++ {
			opcode := 0x40 | r<<3 | src
			if opcode == 0x76 {
				continue
			}
			cycles := uint8(1)
			if r == 6 || src == 6 {
				cycles = 2
			}
			DefineInstruction(opcode, "LD "+registerNames[r]+", "+registerNames[src], Load8, 1, cycles, 0)
		}
	}

	arithmetic := [8]struct {
		name   string
		family Family
	}{
		{"ADD A, ", Add}, {"ADC A, ", Add}, {"SUB ", Sub}, {"SBC A, ", Sub},
		{"AND ", And}, {"XOR ", Xor}, {"OR ", Or}, {"CP ", Compare},
	}
	for op, a := range arithmetic {
		for src := uint8(0); src < 8; src++ {
			cycles := uint8(1)
			if src == 6 {
				cycles = 2
			}
			DefineInstruction(0x80|uint8(op)<<3|src, a.name+registerNames[src], a.family, 1, cycles, 0)
		}
		DefineInstruction(0xC6|uint8(op)<<3, a.name+"d8", a.family, 2, 2, 0)
	}

	for _, opcode := range disallowedOpcodes {
		InstructionSet[opcode] = Instruction{Opcode: opcode, Family: Illegal, Name: "disallowed"}
	}

	defineCB()
}

// defineCB fills InstructionSetCB. Each row of 8 opcodes applies one
// operation to B, C, D, E, H, L, (HL) and A.
func defineCB() {
	rows := [8]struct {
		name   string
		family Family
	}{
		{"RLC", Rotate}, {"RRC", Rotate}, {"RL", RotateCarry}, {"RR", RotateCarry},
		{"SLA", ShiftLeft}, {"SRA", ShiftRightArith}, {"SWAP", Swap}, {"SRL", ShiftRight},
	}

	for i := 0; i < 256; i++ {
		opcode := uint8(i)
		r := opcode & 7
		n := opcode >> 3 & 7

		cycles := uint8(2)
		if r == 6 {
			cycles = 4
		}

		switch opcode >> 6 {
		case 0:
			DefineInstructionCB(opcode, rows[n].name+" "+registerNames[r], rows[n].family, cycles)
		case 1:
			if r == 6 {
				cycles = 3
			}
			DefineInstructionCB(opcode, fmt.Sprintf("BIT %d, %s", n, registerNames[r]), TestBit, cycles)
		case 2:
			DefineInstructionCB(opcode, fmt.Sprintf("RES %d, %s", n, registerNames[r]), ChangeBit, cycles)
		case 3:
			DefineInstructionCB(opcode, fmt.Sprintf("SET %d, %s", n, registerNames[r]), ChangeBit, cycles)
		}
	}
}
