package gameboy

import (
	"io"

	"github.com/thelolagemann/gbsim/internal/cheats"
	"github.com/thelolagemann/gbsim/internal/cpu"
	"github.com/thelolagemann/gbsim/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance.
type Opt func(gb *GameBoy)

func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithBootROM replaces the embedded boot ROM. rom must be 256 bytes.
func WithBootROM(rom []byte) Opt {
	return func(gb *GameBoy) {
		gb.bootData = rom
	}
}

// NoBios skips the boot ROM. The CPU starts at 0x0100 with the
// registers set to the values upon completion of the boot ROM.
func NoBios() Opt {
	return func(gb *GameBoy) {
		gb.noBios = true
	}
}

// WithDisplay attaches a display, advanced every cycle after the CPU.
func WithDisplay(d Display) Opt {
	return func(gb *GameBoy) {
		gb.display = d
	}
}

// WithListener appends a listener notified after the built-in ones.
func WithListener(l Listener) Opt {
	return func(gb *GameBoy) {
		gb.listeners = append(gb.listeners, l)
	}
}

// SerialOutput sends every byte written to the serial port to w.
func SerialOutput(w io.Writer) Opt {
	return func(gb *GameBoy) {
		gb.serialOutput = w
	}
}

// WithTrace calls fn with every instruction before it is executed.
func WithTrace(fn func(pc uint16, instruction cpu.Instruction)) Opt {
	return func(gb *GameBoy) {
		gb.trace = fn
	}
}

// WithState restores a state produced by GameBoy.SaveState once the
// machine is built.
func WithState(b []byte) Opt {
	return func(gb *GameBoy) {
		gb.state = b
	}
}

// WithCheats applies the enabled cheats of l at the start of every
// frame.
func WithCheats(l *cheats.List) Opt {
	return func(gb *GameBoy) {
		gb.cheats = l
	}
}
