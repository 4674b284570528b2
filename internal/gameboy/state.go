package gameboy

import (
	"bytes"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/cespare/xxhash"
	"github.com/pkg/errors"
	"github.com/thelolagemann/gbsim/internal/mmu"
	"github.com/thelolagemann/gbsim/internal/types"
)

// stateMagic prefixes every save state, followed by the xxhash of the
// uncompressed state and the brotli compressed state itself.
const (
	stateMagic   = "GBSS"
	stateVersion = 1
	stateHeader  = len(stateMagic) + 8
)

// memory returns the owned memory blocks in the order they are saved.
// echo RAM is shared with work RAM and is not saved twice.
func (g *GameBoy) memory() []*mmu.Component {
	return []*mmu.Component{
		g.videoRAM,
		g.externRAM,
		g.workRAM,
		g.graphRAM,
		g.useless,
		g.registers,
		g.highRAM,
	}
}

var _ types.Stater = (*GameBoy)(nil)

// Save implements the types.Stater interface.
//
// The values are saved in the following order:
//   - version (uint8)
//   - cartridge checksum (uint64)
//   - cycles (uint64)
//   - boot ROM enabled (bool)
//   - CPU (registers, idle, halted, interrupts)
//   - timer counter (uint16) and edge detector input (bool)
//   - joypad (uint8)
//   - display, if it implements types.Stater
//   - memory blocks
func (g *GameBoy) Save(s *types.State) {
	s.Write8(stateVersion)
	s.Write64(g.cartridge.Checksum())
	s.Write64(g.cycles)
	s.WriteBool(g.bootROM.Enabled())
	g.CPU.Save(s)
	g.Timer.Save(s)
	g.Joypad.Save(s)
	if st, ok := g.display.(types.Stater); ok {
		st.Save(s)
	}
	for _, c := range g.memory() {
		c.Memory().Save(s)
	}
}

// Load implements the types.Stater interface. Errors are latched in s.
// Load does not check the version or the cartridge, see LoadState.
func (g *GameBoy) Load(s *types.State) {
	s.Read8()
	s.Read64()
	g.cycles = s.Read64()
	bootEnabled := s.ReadBool()
	g.CPU.Load(s)
	g.Timer.Load(s)
	g.Joypad.Load(s)
	if st, ok := g.display.(types.Stater); ok {
		st.Load(s)
	}
	for _, c := range g.memory() {
		c.Memory().Load(s)
	}

	// map whichever of the boot ROM and cartridge the state ran on
	switch {
	case bootEnabled && !g.bootROM.Enabled():
		if err := g.bootROM.Plug(g.bus); err != nil {
			g.Errorf("gameboy: %v", err)
		}
	case !bootEnabled && g.bootROM.Enabled():
		if err := g.bootROM.Disable(g.bus, g.cartridge); err != nil {
			g.Errorf("gameboy: %v", err)
		}
	}
}

// SaveState returns the compressed state of the machine.
func (g *GameBoy) SaveState() ([]byte, error) {
	if g.closed {
		return nil, errors.Wrap(types.ErrState, "gameboy: save of a closed machine")
	}
	s := types.NewState()
	g.Save(s)
	raw := s.Bytes()

	var buf bytes.Buffer
	buf.WriteString(stateMagic)
	sum := types.NewState()
	sum.Write64(xxhash.Sum64(raw))
	buf.Write(sum.Bytes())

	w := brotli.NewWriterLevel(&buf, brotli.DefaultCompression)
	if _, err := w.Write(raw); err != nil {
		return nil, errors.Wrapf(types.ErrIO, "gameboy: compressing state: %v", err)
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrapf(types.ErrIO, "gameboy: compressing state: %v", err)
	}

	g.Infof("gameboy: saved state at cycle %d (%d bytes, %d compressed)", g.cycles, len(raw), buf.Len())
	return buf.Bytes(), nil
}

// LoadState restores a state produced by SaveState. The state must
// have been saved with the same cartridge inserted. A failed load
// leaves the machine untouched.
func (g *GameBoy) LoadState(b []byte) error {
	if g.closed {
		return errors.Wrap(types.ErrState, "gameboy: load into a closed machine")
	}
	if len(b) < stateHeader || string(b[:len(stateMagic)]) != stateMagic {
		return errors.Wrap(types.ErrState, "gameboy: not a save state")
	}

	// the size of a valid state is known, anything past it is rejected
	// without being decompressed
	expected := types.NewState()
	g.Save(expected)
	size := len(expected.Bytes())

	raw, err := io.ReadAll(io.LimitReader(brotli.NewReader(bytes.NewReader(b[stateHeader:])), int64(size)+1))
	if err != nil {
		return errors.Wrapf(types.ErrState, "gameboy: decompressing state: %v", err)
	}
	if len(raw) > size {
		return errors.Wrapf(types.ErrState, "gameboy: state exceeds %d bytes", size)
	}
	header := types.StateFromBytes(b[len(stateMagic):stateHeader])
	if sum := header.Read64(); sum != xxhash.Sum64(raw) {
		return errors.Wrapf(types.ErrState, "gameboy: state checksum mismatch: %016X", sum)
	}

	s := types.StateFromBytes(raw)
	if v := s.Read8(); v != stateVersion {
		return errors.Wrapf(types.ErrState, "gameboy: unsupported state version %d", v)
	}
	if sum := s.Read64(); sum != g.cartridge.Checksum() {
		return errors.Wrapf(types.ErrState, "gameboy: state is for cartridge %016X, not %016X", sum, g.cartridge.Checksum())
	}
	if len(raw) != size {
		return errors.Wrapf(types.ErrState, "gameboy: state of %d bytes, expected %d", len(raw), size)
	}

	g.Load(types.StateFromBytes(raw))
	g.err = nil
	g.Infof("gameboy: loaded state at cycle %d", g.cycles)
	return nil
}
