package mmu

import (
	"github.com/pkg/errors"
	"github.com/thelolagemann/gbsim/internal/ram"
	"github.com/thelolagemann/gbsim/internal/types"
)

// Component is an address window paired with a block of memory. The
// memory is either owned by the component, or shared with the component
// it was created from, in which case writes through either window are
// visible through the other.
//
// A component created with a size of 0 has no memory at all. It may
// still be plugged, recording a window without mapping any slot.
type Component struct {
	mem    *ram.RAM
	shared bool

	start, end uint16
	plugged    bool
}

// NewComponent returns a new component backed by size bytes of zeroed
// memory. A size of 0 returns a component without memory.
func NewComponent(size int) (*Component, error) {
	if size == 0 {
		return &Component{}, nil
	}
	mem, err := ram.New(size)
	if err != nil {
		return nil, err
	}
	return &Component{mem: mem}, nil
}

// Shared returns a new component referencing the memory of existing.
func Shared(existing *Component) (*Component, error) {
	if existing == nil || existing.mem == nil {
		return nil, errors.Wrap(types.ErrMemory, "mmu: can not share a component without memory")
	}
	return &Component{mem: existing.mem, shared: true}, nil
}

// Memory returns the memory backing the component, or nil.
func (c *Component) Memory() *ram.RAM {
	return c.mem
}

// IsShared reports whether the component references memory it does not
// own.
func (c *Component) IsShared() bool {
	return c.shared
}

// Window returns the window the component is plugged at. ok is false
// when the component is not plugged.
func (c *Component) Window() (start, end uint16, ok bool) {
	return c.start, c.end, c.plugged
}

// size returns the size of the backing memory, 0 without memory.
func (c *Component) size() int {
	if c.mem == nil {
		return 0
	}
	return c.mem.Size()
}

func (c *Component) setWindow(start, end uint16) {
	c.start, c.end, c.plugged = start, end, true
}

func (c *Component) clearWindow() {
	c.start, c.end, c.plugged = 0, 0, false
}

// Free releases the reference to the backing memory. Components must be
// unplugged before they are freed.
func (c *Component) Free() {
	c.mem = nil
	c.shared = false
}
