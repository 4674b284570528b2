// Package cartridge provides the ROM only cartridge of the DMG. The
// cartridge holds the game ROM, mapped at 0x0000 - 0x7FFF as two banks
// of 16kB sharing the same memory.
package cartridge

import (
	"github.com/cespare/xxhash"
	"github.com/pkg/errors"
	"github.com/thelolagemann/gbsim/internal/mmu"
	"github.com/thelolagemann/gbsim/internal/types"
)

// Size is the size of the ROM of a cartridge without bank controller.
const Size = 0x8000

// Cartridge represents a basic game cartridge.
type Cartridge struct {
	header Header

	bank0 *mmu.Component // 0x0000 - 0x3FFF
	bank1 *mmu.Component // 0x4000 - 0x7FFF, shared with bank0

	checksum uint64
}

// NewCartridge parses the header of rom and loads it into a new
// cartridge. Only ROM only cartridges are supported, any other type
// returns types.ErrNotImplemented.
func NewCartridge(rom []byte) (*Cartridge, error) {
	if len(rom) < headerEnd {
		return nil, errors.Wrapf(types.ErrBadParameter, "cartridge: rom of %d bytes has no header", len(rom))
	}

	header := parseHeader(rom[headerStart:headerEnd])
	if header.CartridgeType != ROM {
		return nil, errors.Wrapf(types.ErrNotImplemented, "cartridge: type %s", header.CartridgeType)
	}

	bank0, err := mmu.NewComponent(Size)
	if err != nil {
		return nil, err
	}
	bank1, err := mmu.Shared(bank0)
	if err != nil {
		return nil, err
	}

	// anything past 32kB can not be mapped without a bank controller
	n := copy(bank0.Memory().Bytes(), rom)

	return &Cartridge{
		header:   header,
		bank0:    bank0,
		bank1:    bank1,
		checksum: xxhash.Sum64(rom[:n]),
	}, nil
}

// Header returns the parsed cartridge header.
func (c *Cartridge) Header() Header {
	return c.header
}

// Title returns the cartridge title.
func (c *Cartridge) Title() string {
	return c.header.Title
}

// Checksum returns the xxhash of the mapped ROM, identifying the game
// in save states.
func (c *Cartridge) Checksum() uint64 {
	return c.checksum
}

// Plug maps both banks onto the bus, over anything already mapped
// there.
func (c *Cartridge) Plug(bus *mmu.Bus) error {
	if err := bus.ForcedPlug(c.bank0, types.BankROM0Start, types.BankROM0End, 0); err != nil {
		return err
	}
	return bus.ForcedPlug(c.bank1, types.BankROM1Start, types.BankROM1End, int(types.BankROM1Start))
}

// Unplug removes both banks from the bus.
func (c *Cartridge) Unplug(bus *mmu.Bus) {
	bus.Unplug(c.bank0)
	bus.Unplug(c.bank1)
}

// Free releases the ROM. The cartridge must be unplugged first.
func (c *Cartridge) Free() {
	c.bank1.Free()
	c.bank0.Free()
}
