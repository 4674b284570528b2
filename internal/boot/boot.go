// Package boot provides a boot ROM implementation for the Game Boy. Whilst
// this package is not strictly required for the emulator to function, it
// can be used to emulate the boot process of the Game Boy.
package boot

import (
	_ "embed"

	"github.com/cespare/xxhash"
	"github.com/pkg/errors"
	"github.com/thelolagemann/gbsim/internal/cartridge"
	"github.com/thelolagemann/gbsim/internal/mmu"
	"github.com/thelolagemann/gbsim/internal/types"
)

// DMGBootROM is the boot program of the DMG.
//
//go:embed boot.bin
var DMGBootROM []byte

// DMGBootROMChecksum is the xxhash of DMGBootROM.
const DMGBootROMChecksum uint64 = 0x896b9f77c215533c

// ROM represents a boot ROM for the Game Boy. When the Game Boy first
// powers on, the boot ROM is mapped to memory addresses 0x0000 -
// 0x00FF.
//
// The boot ROM performs a series of tasks, such as initializing the
// hardware, setting the stack pointer, scrolling the Nintendo logo, etc.
//
// Once the boot ROM has completed its tasks, it is unmapped from memory
// (by writing to the types.BDIS register), and the cartridge is mapped
// over the boot ROM, thus starting the cartridge execution, and preventing
// the boot ROM from being executed again.
type ROM struct {
	c        *mmu.Component
	checksum uint64

	enabled bool
}

// LoadBootROM copies b into a new ROM. b must be exactly 256 bytes.
func LoadBootROM(b []byte) (*ROM, error) {
	size := types.Size(types.BootROMStart, types.BootROMEnd)
	if len(b) != size {
		return nil, errors.Wrapf(types.ErrBadParameter, "boot: invalid boot rom length: %d", len(b))
	}

	c, err := mmu.NewComponent(size)
	if err != nil {
		return nil, err
	}
	copy(c.Memory().Bytes(), b)

	return &ROM{
		c:        c,
		checksum: xxhash.Sum64(b),
	}, nil
}

// Checksum returns the xxhash of the boot rom.
func (b *ROM) Checksum() uint64 {
	if b == nil {
		return 0
	}
	return b.checksum
}

// Enabled reports whether the boot ROM is still mapped.
func (b *ROM) Enabled() bool {
	return b.enabled
}

// Plug maps the boot ROM over the start of the cartridge.
func (b *ROM) Plug(bus *mmu.Bus) error {
	if err := bus.ForcedPlug(b.c, types.BootROMStart, types.BootROMEnd, 0); err != nil {
		return err
	}
	b.enabled = true
	return nil
}

// HandleWrite unmaps the boot ROM and maps the cartridge in its place
// on the first write to types.BDIS. Later writes are ignored.
func (b *ROM) HandleWrite(bus *mmu.Bus, cart *cartridge.Cartridge, address uint16) (bool, error) {
	if !b.enabled || address != types.BDIS {
		return false, nil
	}
	return true, b.Disable(bus, cart)
}

// Disable unmaps the boot ROM and maps the cartridge in its place.
func (b *ROM) Disable(bus *mmu.Bus, cart *cartridge.Cartridge) error {
	bus.Unplug(b.c)
	b.enabled = false
	return cart.Plug(bus)
}

// Free releases the boot ROM memory.
func (b *ROM) Free(bus *mmu.Bus) {
	bus.Unplug(b.c)
	b.c.Free()
}
