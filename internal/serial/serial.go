// Package serial provides the serial port of the Game Boy as seen by
// test ROMs, which print their results one character at a time by
// writing to types.SB.
package serial

import (
	"io"

	"github.com/pkg/errors"
	"github.com/thelolagemann/gbsim/internal/mmu"
	"github.com/thelolagemann/gbsim/internal/types"
)

// Controller forwards every byte written to types.SB to an io.Writer.
// No link cable is emulated, so nothing is ever shifted back in.
type Controller struct {
	bus *mmu.Bus
	out io.Writer

	written int // number of bytes forwarded so far
}

// NewController returns a controller writing to out. A nil out
// discards the data.
func NewController(bus *mmu.Bus, out io.Writer) *Controller {
	if out == nil {
		out = io.Discard
	}
	return &Controller{
		bus: bus,
		out: out,
	}
}

// Written returns the number of bytes forwarded to the writer.
func (c *Controller) Written() int {
	return c.written
}

// HandleWrite is notified of the address written by the CPU during the
// last cycle.
func (c *Controller) HandleWrite(address uint16) error {
	if address != types.SB {
		return nil
	}

	n, err := c.out.Write([]byte{c.bus.Read(types.SB)})
	c.written += n
	if err != nil {
		return errors.Wrapf(types.ErrIO, "serial: %v", err)
	}
	return nil
}
