package types

// HardwareAddress represents the address of a memory mapped register
// of the Game Boy. The hardware registers live in the I/O window
// 0xFF00 - 0xFF7F, with the exception of IE at 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 is the joypad register. Bits 4 and 5 select the direction or
	// action keys, bits 0-3 read back the selected keys (0=pressed).
	P1 HardwareAddress = 0xFF00
	// SB is the serial transfer data register. Test ROMs print their
	// results one character at a time through it.
	SB HardwareAddress = 0xFF01
	// SC is the serial transfer control register.
	SC HardwareAddress = 0xFF02
	// DIV is the divider register, the high byte of the free-running
	// timer counter. Any write resets the counter to zero.
	DIV HardwareAddress = 0xFF04
	// TIMA is the timer counter, incremented on every falling edge of
	// the bit selected by TAC. On overflow it is reloaded from TMA and
	// a timer interrupt is requested.
	TIMA HardwareAddress = 0xFF05
	// TMA is the timer modulo, loaded into TIMA when it overflows.
	TMA HardwareAddress = 0xFF06
	// TAC is the timer control register.
	//
	//  Bit 2:   Timer Enable
	//  Bit 1-0: Input Clock Select (counter bit 9, 3, 5 or 7)
	TAC HardwareAddress = 0xFF07
	// IF is the interrupt flag register.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F
	// LCDC is the LCD control register, owned by the display collaborator.
	LCDC HardwareAddress = 0xFF40
	// STAT is the LCD status register.
	//
	//  Bit 6:   LYC=LY Coincidence Interrupt (1=Enable)
	//  Bit 5:   Mode 2 OAM Interrupt         (1=Enable)
	//  Bit 4:   Mode 1 V-Blank Interrupt     (1=Enable)
	//  Bit 3:   Mode 0 H-Blank Interrupt     (1=Enable)
	//  Bit 2:   Coincidence Flag  (0:LYC<>LY, 1:LYC=LY) (Read Only)
	//  Bit 1-0: Mode Flag                                (Read Only)
	STAT HardwareAddress = 0xFF41
	// LY is the current scanline, owned by the display collaborator.
	LY HardwareAddress = 0xFF44
	// LYC is compared against LY, setting the coincidence flag of STAT.
	LYC HardwareAddress = 0xFF45
	// BDIS disables the boot ROM. Writing any value to it unmaps the boot
	// ROM and maps the cartridge in its place.
	BDIS HardwareAddress = 0xFF50
	// IE is the interrupt enable register, laid out like IF.
	IE HardwareAddress = 0xFFFF
)

// Memory windows of the machine. Each window is inclusive of both its
// start and end address.
const (
	BootROMStart   uint16 = 0x0000
	BootROMEnd     uint16 = 0x00FF
	BankROM0Start  uint16 = 0x0000
	BankROM0End    uint16 = 0x3FFF
	BankROM1Start  uint16 = 0x4000
	BankROM1End    uint16 = 0x7FFF
	VideoRAMStart  uint16 = 0x8000
	VideoRAMEnd    uint16 = 0x9FFF
	ExternRAMStart uint16 = 0xA000
	ExternRAMEnd   uint16 = 0xBFFF
	WorkRAMStart   uint16 = 0xC000
	WorkRAMEnd     uint16 = 0xDFFF
	EchoRAMStart   uint16 = 0xE000
	EchoRAMEnd     uint16 = 0xFDFF
	GraphRAMStart  uint16 = 0xFE00
	GraphRAMEnd    uint16 = 0xFE9F
	UselessStart   uint16 = 0xFEA0
	UselessEnd     uint16 = 0xFEFF
	RegistersStart uint16 = 0xFF00
	RegistersEnd   uint16 = 0xFF7F
	HighRAMStart   uint16 = 0xFF80
	HighRAMEnd     uint16 = 0xFFFE
)

// Size returns the number of bytes covered by the inclusive window
// [start, end].
func Size(start, end uint16) int {
	return int(end) - int(start) + 1
}
