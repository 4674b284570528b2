// Package lcd provides the timing side of the LCD controller: it moves
// LY through the 154 lines of a frame, keeps the mode and coincidence
// bits of STAT current and requests the V-Blank and STAT interrupts.
// Nothing is rendered.
package lcd

import (
	"github.com/thelolagemann/gbsim/internal/interrupts"
	"github.com/thelolagemann/gbsim/internal/mmu"
	"github.com/thelolagemann/gbsim/internal/types"
	"github.com/thelolagemann/gbsim/pkg/bits"
)

const (
	// CyclesPerLine is the number of machine cycles spent on a line.
	CyclesPerLine = 114
	// LinesPerFrame is the number of lines in a frame, V-Blank included.
	LinesPerFrame = 154

	visibleLines   = 144
	oamCycles      = 20
	transferCycles = 43
)

// Controller is the LCD controller. It is enabled by bit 7 of the LCD
// Control Register (types.LCDC):
//
//	Bit 7 - LCD Enable             (0=Off, 1=On)
//	Bit 6 - Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 5 - Window Display Enable          (0=Off, 1=On)
//	Bit 4 - BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
//	Bit 3 - BG Tile Map Display Select     (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 2 - OBJ (Sprite) Size              (0=8x8, 1=8x16)
//	Bit 1 - OBJ (Sprite) Display Enable    (0=Off, 1=On)
//	Bit 0 - BG/Window Display/Priority     (0=Off, 1=On)
//
// While disabled, LY reads 0 and STAT reports H-Blank.
type Controller struct {
	line     uint8 // LY
	position uint8 // machine cycles into the line
	statLine bool  // previous state of the STAT interrupt line
	frames   uint64

	bus *mmu.Bus
	irq *interrupts.Service
}

// NewController returns a new LCD controller.
func NewController() *Controller {
	return &Controller{}
}

// Plug attaches the controller to the registers on bus.
func (c *Controller) Plug(bus *mmu.Bus, irq *interrupts.Service) error {
	c.bus = bus
	c.irq = irq
	return c.refresh()
}

// Enabled reports whether the LCD is switched on.
func (c *Controller) Enabled() bool {
	return bits.Test(c.bus.Read(types.LCDC), 7)
}

// Line returns the current line.
func (c *Controller) Line() uint8 {
	return c.line
}

// Frames returns the number of frames completed.
func (c *Controller) Frames() uint64 {
	return c.frames
}

// Cycle advances the LCD by a single machine cycle.
func (c *Controller) Cycle(uint64) error {
	if c.Enabled() {
		if c.position++; c.position == CyclesPerLine {
			c.position = 0
			c.line++
			switch c.line {
			case visibleLines:
				c.frames++
				c.irq.Request(interrupts.VBlank)
			case LinesPerFrame:
				c.line = 0
			}
		}
	}
	return c.refresh()
}

// HandleWrite restores the read-only registers after the CPU wrote to
// them, and applies LCDC and LYC changes straight away.
func (c *Controller) HandleWrite(address uint16) error {
	switch address {
	case types.LCDC, types.STAT, types.LY, types.LYC:
		return c.refresh()
	}
	return nil
}

// refresh writes LY and STAT from the current position, and requests
// the STAT interrupt on a rising edge of its line.
func (c *Controller) refresh() error {
	if !c.Enabled() {
		c.line, c.position, c.statLine = 0, 0, false
		if err := c.bus.Write(types.LY, 0); err != nil {
			return err
		}
		return c.bus.Write(types.STAT, status(c.bus.Read(types.STAT), false, HBlank))
	}

	stat := c.bus.Read(types.STAT)
	mode := modeAt(c.line, c.position)
	coincidence := c.line == c.bus.Read(types.LYC)

	line := interruptLine(stat, coincidence, mode)
	if line && !c.statLine {
		c.irq.Request(interrupts.LCD)
	}
	c.statLine = line

	if err := c.bus.Write(types.LY, c.line); err != nil {
		return err
	}
	return c.bus.Write(types.STAT, status(stat, coincidence, mode))
}

var _ types.Stater = (*Controller)(nil)

// Load implements the types.Stater interface.
func (c *Controller) Load(s *types.State) {
	c.line = s.Read8()
	c.position = s.Read8()
	c.statLine = s.ReadBool()
	c.frames = s.Read64()
}

// Save implements the types.Stater interface.
func (c *Controller) Save(s *types.State) {
	s.Write8(c.line)
	s.Write8(c.position)
	s.WriteBool(c.statLine)
	s.Write64(c.frames)
}
