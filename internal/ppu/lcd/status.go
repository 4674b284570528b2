package lcd

import "github.com/thelolagemann/gbsim/pkg/bits"

// status composes the value of STAT from the writable bits in stat and
// the read-only coincidence and mode bits. Bit 7 always reads 1.
//
//	Bit 6 - LYC=LY Coincidence Interrupt (1=Enable) (Read/Write)
//	Bit 5 - Mode 2 OAM Interrupt         (1=Enable) (Read/Write)
//	Bit 4 - Mode 1 V-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 3 - Mode 0 H-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 2 - Coincidence Flag  (0:LYC<>LY, 1:LYC=LY) (Read Only)
//	Bit 1-0 - Mode Flag       (Mode 0-3)            (Read Only)
func status(stat uint8, coincidence bool, mode Mode) uint8 {
	v := 0x80 | stat&0x78 | mode&0x03
	if coincidence {
		v = bits.Set(v, 2)
	}
	return v
}

// interruptLine reports whether any enabled STAT source is active. The
// STAT interrupt is requested on its rising edge only.
func interruptLine(stat uint8, coincidence bool, mode Mode) bool {
	switch {
	case coincidence && bits.Test(stat, 6):
		return true
	case mode == OAM && bits.Test(stat, 5):
		return true
	case mode == VBlank && bits.Test(stat, 4):
		return true
	case mode == HBlank && bits.Test(stat, 3):
		return true
	}
	return false
}
