package lcd

// Mode represents a mode of the LCD, as read from bits 1-0 of STAT.
type Mode = uint8

const (
	// HBlank is the horizontal blanking mode. The CPU can access both the display RAM and OAM.
	HBlank Mode = iota
	// VBlank is the vertical blanking mode. The CPU can access both the display RAM and OAM.
	VBlank
	// OAM is the OAM mode. The CPU can access OAM but not the display RAM.
	OAM
	// VRAM is the VRAM mode. The CPU can access the display RAM but not OAM.
	VRAM
)

// modeAt returns the mode of the LCD at position cycles into line.
func modeAt(line uint8, position uint8) Mode {
	switch {
	case line >= visibleLines:
		return VBlank
	case position < oamCycles:
		return OAM
	case position < oamCycles+transferCycles:
		return VRAM
	default:
		return HBlank
	}
}
