// Package gameboy provides an emulation of a Nintendo Game Boy.
//
// A GameBoy owns every component of the machine, plugs them onto a
// single bus and steps them one machine cycle at a time. Callers drive
// it with RunUntil, in the same way a display loop would.
package gameboy

import (
	"io"

	"github.com/pkg/errors"
	"github.com/thelolagemann/gbsim/internal/boot"
	"github.com/thelolagemann/gbsim/internal/cartridge"
	"github.com/thelolagemann/gbsim/internal/cheats"
	"github.com/thelolagemann/gbsim/internal/cpu"
	"github.com/thelolagemann/gbsim/internal/interrupts"
	"github.com/thelolagemann/gbsim/internal/joypad"
	"github.com/thelolagemann/gbsim/internal/mmu"
	"github.com/thelolagemann/gbsim/internal/serial"
	"github.com/thelolagemann/gbsim/internal/timer"
	"github.com/thelolagemann/gbsim/internal/types"
	"github.com/thelolagemann/gbsim/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = cpu.ClockSpeed
	// CyclesPerFrame is the number of machine cycles per frame.
	CyclesPerFrame = 70224 / 4
)

// Listener is notified after every cycle with the address of the last
// bus write the CPU made during that cycle, or 0 if it made none.
type Listener interface {
	HandleWrite(address uint16) error
}

// Display is the graphics collaborator. It observes and mutates the
// machine only through the bus, and requests interrupts through irq.
type Display interface {
	Listener
	Plug(bus *mmu.Bus, irq *interrupts.Service) error
	Cycle(cycle uint64) error
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(address uint16) error

// HandleWrite calls f(address).
func (f ListenerFunc) HandleWrite(address uint16) error {
	return f(address)
}

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
type GameBoy struct {
	CPU        *cpu.CPU
	Interrupts *interrupts.Service
	Timer      *timer.Controller
	Joypad     *joypad.Controller
	Serial     *serial.Controller

	log.Logger

	bus       *mmu.Bus
	cartridge *cartridge.Cartridge
	bootROM   *boot.ROM

	// owned memory, in the order it is saved
	videoRAM  *mmu.Component
	externRAM *mmu.Component
	workRAM   *mmu.Component
	echoRAM   *mmu.Component // shared with workRAM
	graphRAM  *mmu.Component
	useless   *mmu.Component
	registers *mmu.Component
	highRAM   *mmu.Component

	display   Display
	listeners []Listener
	cheats    *cheats.List

	cycles uint64
	err    error
	closed bool

	// set by options, consumed by NewGameBoy
	bootData     []byte
	noBios       bool
	serialOutput io.Writer
	trace        func(pc uint16, instruction cpu.Instruction)
	state        []byte
}

// NewGameBoy returns a new GameBoy running rom. Unless NoBios is given,
// execution starts in the boot ROM at 0x0000.
func NewGameBoy(rom []byte, opts ...Opt) (*GameBoy, error) {
	g := &GameBoy{
		Logger:   log.NewNullLogger(),
		bus:      mmu.NewBus(),
		bootData: boot.DMGBootROM,
	}
	for _, opt := range opts {
		opt(g)
	}

	if err := g.create(rom); err != nil {
		g.Errorf("gameboy: %v", err)
		return nil, err
	}
	g.Infof("gameboy: loaded %s", g.cartridge.Header())

	if g.state != nil {
		if err := g.LoadState(g.state); err != nil {
			g.Close()
			return nil, err
		}
		g.state = nil
	}
	return g, nil
}

// create allocates every component and plugs it onto the bus.
func (g *GameBoy) create(rom []byte) error {
	var err error
	if g.cartridge, err = cartridge.NewCartridge(rom); err != nil {
		return err
	}
	if g.bootROM, err = boot.LoadBootROM(g.bootData); err != nil {
		return err
	}
	if g.Interrupts, err = interrupts.NewService(); err != nil {
		return err
	}

	blocks := []struct {
		c          **mmu.Component
		start, end uint16
	}{
		{&g.workRAM, types.WorkRAMStart, types.WorkRAMEnd},
		{&g.registers, types.RegistersStart, types.RegistersEnd},
		{&g.externRAM, types.ExternRAMStart, types.ExternRAMEnd},
		{&g.videoRAM, types.VideoRAMStart, types.VideoRAMEnd},
		{&g.graphRAM, types.GraphRAMStart, types.GraphRAMEnd},
		{&g.useless, types.UselessStart, types.UselessEnd},
		{&g.highRAM, types.HighRAMStart, types.HighRAMEnd},
	}
	for _, b := range blocks {
		if *b.c, err = mmu.NewComponent(types.Size(b.start, b.end)); err != nil {
			return err
		}
		if err = g.bus.Plug(*b.c, b.start, b.end); err != nil {
			return err
		}
	}

	// echo RAM mirrors the first 0x1E00 bytes of work RAM
	if g.echoRAM, err = mmu.Shared(g.workRAM); err != nil {
		return err
	}
	if err = g.bus.Plug(g.echoRAM, types.EchoRAMStart, types.EchoRAMEnd); err != nil {
		return err
	}
	if err = g.Interrupts.Plug(g.bus); err != nil {
		return err
	}

	if err = g.cartridge.Plug(g.bus); err != nil {
		return err
	}

	g.CPU = cpu.NewCPU(g.bus, g.Interrupts)
	g.CPU.Trace = g.trace
	g.Timer = timer.NewController(g.bus, g.Interrupts)
	g.Joypad = joypad.NewController(g.bus, g.Interrupts)
	g.Serial = serial.NewController(g.bus, g.serialOutput)

	if g.display != nil {
		if err = g.display.Plug(g.bus, g.Interrupts); err != nil {
			return err
		}
	}

	if g.noBios {
		if err = g.skipBoot(); err != nil {
			return err
		}
	} else if err = g.bootROM.Plug(g.bus); err != nil {
		return err
	}

	return g.Joypad.Refresh()
}

// skipBoot loads the CPU with the state the boot ROM leaves behind,
// and switches the LCD on as the boot ROM does.
func (g *GameBoy) skipBoot() error {
	g.CPU.AF.SetUint16(0x01B0)
	g.CPU.BC.SetUint16(0x0013)
	g.CPU.DE.SetUint16(0x00D8)
	g.CPU.HL.SetUint16(0x014D)
	g.CPU.SP = 0xFFFE
	g.CPU.PC = 0x0100

	if err := g.bus.Write(types.LCDC, 0x91); err != nil {
		return err
	}
	if g.display != nil {
		return g.display.HandleWrite(types.LCDC)
	}
	return nil
}

// Cycles returns the number of machine cycles run so far.
func (g *GameBoy) Cycles() uint64 {
	return g.cycles
}

// Bus returns the address space of the machine, for collaborators that
// inspect memory mapped state.
func (g *GameBoy) Bus() *mmu.Bus {
	return g.bus
}

// Cartridge returns the inserted cartridge.
func (g *GameBoy) Cartridge() *cartridge.Cartridge {
	return g.cartridge
}

// Err returns the error that stopped the machine, if any.
func (g *GameBoy) Err() error {
	return g.err
}

// RunUntil runs the machine until its cycle counter reaches cycle. It
// does nothing if the counter is already past cycle. Once a cycle has
// failed, every later call returns the same error.
func (g *GameBoy) RunUntil(cycle uint64) error {
	if g.err != nil {
		return g.err
	}
	for g.cycles < cycle {
		if err := g.step(); err != nil {
			g.err = err
			g.Errorf("gameboy: stopped at cycle %d (PC %04X): %v", g.cycles, g.CPU.PC, err)
			return err
		}
	}
	return nil
}

// step runs a single machine cycle: timer, CPU, display, then the
// write listeners in a fixed order.
func (g *GameBoy) step() error {
	// cheats patch the cartridge, never the boot ROM mapped over it
	if g.cheats != nil && !g.bootROM.Enabled() && g.cycles%CyclesPerFrame == 0 {
		if err := g.cheats.Apply(g.bus); err != nil {
			return err
		}
	}
	if err := g.Timer.Cycle(); err != nil {
		return err
	}
	if err := g.CPU.Cycle(); err != nil {
		return err
	}
	if g.display != nil {
		if err := g.display.Cycle(g.cycles); err != nil {
			return err
		}
	}

	addr := g.CPU.LastWrite()
	if err := g.Timer.HandleWrite(addr); err != nil {
		return err
	}
	if g.display != nil {
		if err := g.display.HandleWrite(addr); err != nil {
			return err
		}
	}
	disabled, err := g.bootROM.HandleWrite(g.bus, g.cartridge, addr)
	if err != nil {
		return err
	}
	if disabled {
		g.Debugf("gameboy: boot rom disabled at cycle %d", g.cycles)
	}
	if err := g.Joypad.HandleWrite(addr); err != nil {
		return err
	}
	if err := g.Serial.HandleWrite(addr); err != nil {
		return err
	}
	for _, l := range g.listeners {
		if err := l.HandleWrite(addr); err != nil {
			return err
		}
	}

	g.cycles++
	return nil
}

// Press presses a button on the joypad.
func (g *GameBoy) Press(button joypad.Button) error {
	return g.Joypad.Press(button)
}

// Release releases a button on the joypad.
func (g *GameBoy) Release(button joypad.Button) error {
	return g.Joypad.Release(button)
}

// Close unplugs every component and releases its memory. The machine
// can not be run afterwards.
func (g *GameBoy) Close() {
	if g.closed {
		return
	}
	g.closed = true
	if g.err == nil {
		g.err = errors.Wrap(types.ErrState, "gameboy: closed")
	}

	// the bus must never reference freed memory, so unplug first
	if g.Interrupts != nil {
		g.Interrupts.Unplug(g.bus)
	}
	for _, c := range []*mmu.Component{g.echoRAM, g.workRAM, g.registers, g.externRAM, g.videoRAM, g.graphRAM, g.useless, g.highRAM} {
		if c == nil {
			continue
		}
		g.bus.Unplug(c)
		c.Free()
	}
	if g.bootROM != nil {
		g.bootROM.Free(g.bus)
	}
	if g.cartridge != nil {
		g.cartridge.Unplug(g.bus)
		g.cartridge.Free()
	}
	g.Debugf("gameboy: closed after %d cycles", g.cycles)
}
