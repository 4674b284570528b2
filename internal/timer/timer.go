// Package timer provides an implementation of the Game Boy
// timer. It is used to generate interrupts at a specific
// frequency. The frequency can be configured using the
// types.TAC register.
package timer

import (
	"github.com/thelolagemann/gbsim/internal/interrupts"
	"github.com/thelolagemann/gbsim/internal/mmu"
	"github.com/thelolagemann/gbsim/internal/types"
	"github.com/thelolagemann/gbsim/pkg/bits"
)

// step is the amount the internal counter advances every machine cycle.
const step = 4

// tickBits holds the counter bit selected by TAC bits 1-0.
//
//	00 = bit 9 (4096 Hz)
//	01 = bit 3 (262144 Hz)
//	10 = bit 5 (65536 Hz)
//	11 = bit 7 (16384 Hz)
var tickBits = [4]uint16{9, 3, 5, 7}

// Controller is a timer controller. It owns the free-running counter
// whose high byte is exposed as types.DIV, and increments types.TIMA on
// every falling edge of the counter bit selected by types.TAC.
//
// The registers themselves live on the bus, so the program sees the
// same values the controller works with.
type Controller struct {
	counter uint16
	prev    bool // edge detector input after the last update

	bus *mmu.Bus
	irq *interrupts.Service
}

// NewController returns a new timer controller.
func NewController(bus *mmu.Bus, irq *interrupts.Service) *Controller {
	return &Controller{
		bus: bus,
		irq: irq,
	}
}

// Counter returns the internal counter.
func (c *Controller) Counter() uint16 {
	return c.counter
}

// state returns the edge detector input, the selected counter bit when
// the timer is enabled.
func (c *Controller) state() bool {
	tac := c.bus.Read(types.TAC)
	if !bits.Test(tac, 2) {
		return false
	}
	return c.counter>>tickBits[tac&0b11]&1 != 0
}

// Cycle advances the timer by a single machine cycle.
func (c *Controller) Cycle() error {
	c.counter += step

	if err := c.bus.Write(types.DIV, bits.MSB8(c.counter)); err != nil {
		return err
	}
	return c.update()
}

// HandleWrite is notified of the address written by the CPU during the
// last cycle. Writing DIV resets the counter, and writing TAC may
// disable the timer or select another bit; either can produce a
// falling edge.
func (c *Controller) HandleWrite(address uint16) error {
	if address == types.DIV {
		c.counter = 0
		if err := c.bus.Write(types.DIV, 0); err != nil {
			return err
		}
	}
	return c.update()
}

// update compares the edge detector input with its previous value.
// On a falling edge TIMA is incremented; on overflow it is reloaded
// from TMA and a timer interrupt is requested.
func (c *Controller) update() error {
	old := c.prev
	c.prev = c.state()
	if !old || c.prev {
		return nil
	}

	tima := c.bus.Read(types.TIMA)
	if tima == 0xFF {
		c.irq.Request(interrupts.Timer)
		return c.bus.Write(types.TIMA, c.bus.Read(types.TMA))
	}
	return c.bus.Write(types.TIMA, tima+1)
}

var _ types.Stater = (*Controller)(nil)

// Load loads the state of the controller. TIMA, TMA and TAC are part
// of the I/O registers and are restored with them.
func (c *Controller) Load(s *types.State) {
	c.counter = s.Read16()
	c.prev = s.ReadBool()
}

// Save saves the state of the controller.
func (c *Controller) Save(s *types.State) {
	s.Write16(c.counter)
	s.WriteBool(c.prev)
}
