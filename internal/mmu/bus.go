// Package mmu provides the address space of the Game Boy. The Bus maps
// every one of the 65536 addresses to a byte of some plugged Component,
// so reads and writes resolve in constant time, while the components
// remain unaware of each other.
package mmu

import (
	"github.com/pkg/errors"
	"github.com/thelolagemann/gbsim/internal/types"
)

// openBus is the value read from an unmapped address.
const openBus = 0xFF

// slot references a single byte of a component's memory.
type slot struct {
	owner  *Component
	offset int
}

// Bus is the flat address space shared by the CPU and every component.
// The Bus holds no memory of its own.
type Bus struct {
	slots [0x10000]slot
}

// NewBus returns an empty Bus, on which every address is unmapped.
func NewBus() *Bus {
	return &Bus{}
}

// Plug maps c into the window [start, end]. Every address of the window
// must be free, and the memory of c must be at least as large as the
// window. A component without memory only records the window. A
// component can only be plugged once; unplug it to move it.
func (b *Bus) Plug(c *Component, start, end uint16) error {
	if c.plugged {
		return errors.Wrapf(types.ErrAddress, "mmu: component already plugged at %04X-%04X", c.start, c.end)
	}
	for i := int(start); i <= int(end); i++ {
		if b.slots[i].owner != nil {
			return errors.Wrapf(types.ErrAddress, "mmu: window %04X-%04X overlaps %04X", start, end, i)
		}
	}

	if c.mem == nil {
		if end <= start {
			return errors.Wrapf(types.ErrBadParameter, "mmu: empty window %04X-%04X", start, end)
		}
		c.setWindow(start, end)
		return nil
	}

	if end <= start || types.Size(start, end) > c.size() {
		return errors.Wrapf(types.ErrAddress, "mmu: window %04X-%04X does not fit %d bytes", start, end, c.size())
	}
	c.setWindow(start, end)
	return b.Remap(c, 0)
}

// ForcedPlug maps c into the window [start, end], starting at offset in
// its memory, regardless of what is mapped there already. A component
// that is already plugged is moved: its previous window is cleared.
func (b *Bus) ForcedPlug(c *Component, start, end uint16, offset int) error {
	if c.mem == nil {
		return errors.Wrap(types.ErrMemory, "mmu: forced plug of a component without memory")
	}
	if start > end {
		return errors.Wrapf(types.ErrBadParameter, "mmu: inverted window %04X-%04X", start, end)
	}
	if types.Size(start, end)+offset > c.size() {
		return errors.Wrapf(types.ErrAddress, "mmu: window %04X-%04X at offset %d does not fit %d bytes", start, end, offset, c.size())
	}
	b.Unplug(c)
	c.setWindow(start, end)
	return b.Remap(c, offset)
}

// Remap maps the recorded window of c again, starting at offset in its
// memory.
func (b *Bus) Remap(c *Component, offset int) error {
	if c.mem == nil {
		return errors.Wrap(types.ErrMemory, "mmu: remap of a component without memory")
	}
	if !c.plugged || c.start > c.end {
		return errors.Wrap(types.ErrBadParameter, "mmu: remap of an unplugged component")
	}
	if offset < 0 || types.Size(c.start, c.end)+offset > c.size() {
		return errors.Wrapf(types.ErrAddress, "mmu: offset %d out of range", offset)
	}

	for i := 0; i < types.Size(c.start, c.end); i++ {
		b.slots[int(c.start)+i] = slot{owner: c, offset: offset + i}
	}
	return nil
}

// Unplug clears every address of the window of c still mapped to it,
// and forgets the window. The memory of c is left untouched.
func (b *Bus) Unplug(c *Component) {
	if !c.plugged {
		return
	}
	for i := int(c.start); i <= int(c.end); i++ {
		if b.slots[i].owner == c {
			b.slots[i] = slot{}
		}
	}
	c.clearWindow()
}

// Mapped reports whether the address is mapped to a component.
func (b *Bus) Mapped(address uint16) bool {
	return b.slots[address].owner != nil
}

// Read returns the byte at the given address, 0xFF when unmapped.
func (b *Bus) Read(address uint16) uint8 {
	s := b.slots[address]
	if s.owner == nil || s.owner.mem == nil {
		return openBus
	}
	return s.owner.mem.Read(s.offset)
}

// Read16 returns the little endian word at the given address. A read
// crossing the top of the address space, or touching an unmapped byte,
// yields 0x00FF.
func (b *Bus) Read16(address uint16) uint16 {
	if address == 0xFFFF || !b.Mapped(address) || !b.Mapped(address+1) {
		return openBus
	}
	return uint16(b.Read(address)) | uint16(b.Read(address+1))<<8
}

// Write writes the byte to the given address.
func (b *Bus) Write(address uint16, value uint8) error {
	s := b.slots[address]
	if s.owner == nil || s.owner.mem == nil {
		return errors.Wrapf(types.ErrAddress, "mmu: write to unmapped address %04X", address)
	}
	s.owner.mem.Write(s.offset, value)
	return nil
}

// Write16 writes the word to the given address, low byte first. Nothing
// is written unless both bytes are mapped.
func (b *Bus) Write16(address uint16, value uint16) error {
	if address == 0xFFFF || !b.Mapped(address) || !b.Mapped(address+1) {
		return errors.Wrapf(types.ErrAddress, "mmu: 16-bit write to unmapped address %04X", address)
	}
	if err := b.Write(address, uint8(value)); err != nil {
		return err
	}
	return b.Write(address+1, uint8(value>>8))
}
