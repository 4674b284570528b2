package cheats

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/thelolagemann/gbsim/internal/mmu"
	"github.com/thelolagemann/gbsim/internal/types"
	"github.com/thelolagemann/gbsim/pkg/bits"
)

// GameGenieCode patches a single byte of the cartridge ROM.
//
// A code consists of nine hex digits, formatted as ABC-DEF-GHI. AB is
// the new data, FCDE is the memory address XORed by 0xF000, GI is the
// old data XORed by 0xBA and rotated left by 2, and H is unknown
// (possibly a checksum).
type GameGenieCode struct {
	NewData uint8
	Address uint16
	OldData uint8

	raw     string
	patched bool
}

func parseGameGenie(code string) (*GameGenieCode, error) {
	if len(code) != 11 || code[3] != '-' || code[7] != '-' {
		return nil, errors.Wrapf(types.ErrBadParameter, "cheats: invalid game genie code %q", code)
	}
	digits := strings.ReplaceAll(code, "-", "")

	ab, err := strconv.ParseUint(digits[0:2], 16, 8)
	if err != nil {
		return nil, errors.Wrapf(types.ErrBadParameter, "cheats: %q: %v", code, err)
	}
	// reorganize CDEF to FCDE
	fcde, err := strconv.ParseUint(digits[5:6]+digits[2:5], 16, 16)
	if err != nil {
		return nil, errors.Wrapf(types.ErrBadParameter, "cheats: %q: %v", code, err)
	}
	gi, err := strconv.ParseUint(digits[6:7]+digits[8:9], 16, 8)
	if err != nil {
		return nil, errors.Wrapf(types.ErrBadParameter, "cheats: %q: %v", code, err)
	}

	c := &GameGenieCode{
		NewData: uint8(ab),
		Address: uint16(fcde) ^ 0xF000,
		OldData: bits.Rotate(uint8(gi), bits.Right, 2) ^ 0xBA,
		raw:     strings.ToUpper(code),
	}
	if c.Address > types.BankROM1End {
		return nil, errors.Wrapf(types.ErrBadParameter, "cheats: %q patches %04X outside the cartridge", code, c.Address)
	}
	return c, nil
}

// Apply patches the ROM, provided it still holds the old data.
func (c *GameGenieCode) Apply(bus *mmu.Bus) error {
	if c.patched || bus.Read(c.Address) != c.OldData {
		return nil
	}
	if err := bus.Write(c.Address, c.NewData); err != nil {
		return err
	}
	c.patched = true
	return nil
}

// Revert restores the old data.
func (c *GameGenieCode) Revert(bus *mmu.Bus) error {
	if !c.patched {
		return nil
	}
	c.patched = false
	return bus.Write(c.Address, c.OldData)
}

func (c *GameGenieCode) String() string {
	return c.raw
}

// Describe returns a readable description of the patch.
func (c *GameGenieCode) Describe() string {
	return fmt.Sprintf("Game Genie %s: %04X %02X -> %02X", c.raw, c.Address, c.OldData, c.NewData)
}
