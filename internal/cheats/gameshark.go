package cheats

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/thelolagemann/gbsim/internal/mmu"
	"github.com/thelolagemann/gbsim/internal/types"
)

// A GameSharkCode consists of eight-digit hex numbers, formatted
// as ABCDEFGH. Where AB represents the external RAM bank, CD is
// the new data, and GHEF is the memory address. The data is written
// again every frame.
type GameSharkCode struct {
	ExternalRAMBank uint8
	Address         uint16
	NewData         uint8

	raw string
}

func parseGameShark(code string) (*GameSharkCode, error) {
	if len(code) != 8 {
		return nil, errors.Wrapf(types.ErrBadParameter, "cheats: invalid gameshark code %q", code)
	}
	v, err := strconv.ParseUint(code, 16, 32)
	if err != nil {
		return nil, errors.Wrapf(types.ErrBadParameter, "cheats: %q: %v", code, err)
	}

	c := &GameSharkCode{
		ExternalRAMBank: uint8(v >> 24),
		NewData:         uint8(v >> 16),
		// reorganize GHEF to EFGH
		Address: uint16(v>>8&0xFF) | uint16(v&0xFF)<<8,
		raw:     strings.ToUpper(code),
	}
	if c.Address < types.ExternRAMStart {
		return nil, errors.Wrapf(types.ErrBadParameter, "cheats: %q writes %04X outside RAM", code, c.Address)
	}
	return c, nil
}

// Apply writes the new data.
func (c *GameSharkCode) Apply(bus *mmu.Bus) error {
	return bus.Write(c.Address, c.NewData)
}

// Revert does nothing, the program overwrites the data on its own.
func (c *GameSharkCode) Revert(*mmu.Bus) error {
	return nil
}

func (c *GameSharkCode) String() string {
	return c.raw
}

// Describe returns a readable description of the write.
func (c *GameSharkCode) Describe() string {
	return fmt.Sprintf("GameShark %s: %04X <- %02X (bank %d)", c.raw, c.Address, c.NewData, c.ExternalRAMBank)
}
