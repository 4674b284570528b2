// Package joypad provides an implementation of the Game Boy
// joypad. The joypad is used to read the state of the buttons
// and the direction keys.
package joypad

import (
	"github.com/thelolagemann/gbsim/internal/interrupts"
	"github.com/thelolagemann/gbsim/internal/mmu"
	"github.com/thelolagemann/gbsim/internal/types"
	"github.com/thelolagemann/gbsim/pkg/bits"
)

// Button represents a physical button on the Game Boy.
type Button = uint8

const (
	// ButtonA is the A button.
	ButtonA Button = iota
	// ButtonB is the B button.
	ButtonB
	// ButtonSelect is the Select button.
	ButtonSelect
	// ButtonStart is the Start button.
	ButtonStart
	// ButtonRight is the Right button.
	ButtonRight
	// ButtonLeft is the Left button.
	ButtonLeft
	// ButtonUp is the Up button.
	ButtonUp
	// ButtonDown is the Down button.
	ButtonDown
)

// Controller drives the P1 register. Select either action or
// direction buttons by writing to the register, and then read out
// bits 0-3 to get the state of the buttons.
//
//	Bit 7 - Not used
//	Bit 6 - Not used
//	Bit 5 - P15 Select Button Keys      (0=Select)
//	Bit 4 - P14 Select Direction Keys   (0=Select)
//	Bit 3 - P13 Input Down  or Start    (0=Pressed) (Read Only)
//	Bit 2 - P12 Input Up    or Select   (0=Pressed) (Read Only)
//	Bit 1 - P11 Input Left  or Button B (0=Pressed) (Read Only)
//	Bit 0 - P10 Input Right or Button A (0=Pressed) (Read Only)
type Controller struct {
	// pressed holds one bit per Button, 1 meaning pressed. The lower
	// 4 bits are the action buttons, the upper 4 bits the directions.
	pressed uint8

	bus *mmu.Bus
	irq *interrupts.Service
}

// NewController returns a joypad with every button released.
func NewController(bus *mmu.Bus, irq *interrupts.Service) *Controller {
	return &Controller{
		bus: bus,
		irq: irq,
	}
}

// Pressed reports whether button is held down.
func (c *Controller) Pressed(button Button) bool {
	return bits.Test(c.pressed, button)
}

// Press presses a button. A joypad interrupt is requested when one of
// the P1 input lines goes low, that is when the button was released
// and its group is selected.
func (c *Controller) Press(button Button) error {
	if button > ButtonDown {
		return nil
	}
	old := c.lines(c.pressed)
	c.pressed = bits.Set(c.pressed, button)
	if c.lines(c.pressed)&^old != 0 {
		c.irq.Request(interrupts.Joypad)
	}
	return c.Refresh()
}

// Release releases a button.
func (c *Controller) Release(button Button) error {
	if button > ButtonDown {
		return nil
	}
	c.pressed = bits.Reset(c.pressed, button)
	return c.Refresh()
}

// HandleWrite refreshes P1 after the CPU selected a new key group.
func (c *Controller) HandleWrite(address uint16) error {
	if address != types.P1 {
		return nil
	}
	return c.Refresh()
}

// Refresh recomputes the read-only lines of P1 from the select bits
// currently in the register.
func (c *Controller) Refresh() error {
	v := c.bus.Read(types.P1)
	return c.bus.Write(types.P1, 0xC0|v&(types.Bit4|types.Bit5)|^c.lines(c.pressed)&0x0F)
}

// lines returns the input lines pulled low by pressed under the current
// P1 selection, a set bit being a low line.
func (c *Controller) lines(pressed uint8) uint8 {
	v := c.bus.Read(types.P1)
	d := uint8(0)
	if v&types.Bit4 == 0 {
		d |= bits.MSB4(pressed)
	}
	if v&types.Bit5 == 0 {
		d |= bits.LSB4(pressed)
	}
	return d
}

var _ types.Stater = (*Controller)(nil)

// Load restores the pressed buttons. P1 itself is restored with the
// I/O registers.
func (c *Controller) Load(s *types.State) {
	c.pressed = s.Read8()
}

// Save saves the pressed buttons.
func (c *Controller) Save(s *types.State) {
	s.Write8(c.pressed)
}
