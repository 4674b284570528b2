package main

import (
	"flag"
	"io"

	"github.com/pkg/errors"
	"github.com/thelolagemann/gbsim/internal/gameboy"
	"github.com/thelolagemann/gbsim/internal/types"
)

// Config holds the command line options of gbsim.
type Config struct {
	ROM       string // rom file, optionally compressed
	Boot      string // boot rom file replacing the embedded one
	Bios      bool   // run the boot rom instead of skipping it
	Cycles    uint64 // machine cycles to run
	Serial    bool   // print serial output
	State     string // state file to load
	SaveState string // state file to write once stopped
	States    string // folder keeping the save states of every cartridge
	Resume    bool   // resume from the newest state in States
	Profile   string // png file for the instruction histogram
	Top       int    // instructions in the histogram
	Cheats    string // cheat file, every cheat enabled
	Debug     bool
}

// parseConfig parses args into a Config.
func parseConfig(args []string, output io.Writer) (*Config, error) {
	cfg := &Config{}
	fs := flag.NewFlagSet("gbsim", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&cfg.ROM, "rom", "", "The rom file to load")
	fs.StringVar(&cfg.Boot, "boot", "", "The boot rom file to load")
	fs.BoolVar(&cfg.Bios, "bios", false, "Run the boot rom before the cartridge")
	fs.Uint64Var(&cfg.Cycles, "cycles", 60*60*gameboy.CyclesPerFrame, "The number of machine cycles to run")
	fs.BoolVar(&cfg.Serial, "serial", true, "Print serial output")
	fs.StringVar(&cfg.State, "state", "", "The state file to load")
	fs.StringVar(&cfg.SaveState, "save-state", "", "The state file to write when stopping")
	fs.StringVar(&cfg.States, "states", "", "The folder to keep save states in")
	fs.BoolVar(&cfg.Resume, "resume", false, "Resume from the newest save state in -states")
	fs.StringVar(&cfg.Profile, "profile", "", "Write an instruction histogram to this png file")
	fs.IntVar(&cfg.Top, "top", 32, "The number of instructions in the histogram")
	fs.StringVar(&cfg.Cheats, "cheats", "", "The cheat file to load")
	fs.BoolVar(&cfg.Debug, "debug", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrapf(types.ErrBadParameter, "gbsim: %v", err)
	}
	if cfg.ROM == "" && fs.NArg() > 0 {
		cfg.ROM = fs.Arg(0)
	}
	if cfg.ROM == "" {
		return nil, errors.Wrap(types.ErrBadParameter, "gbsim: no rom given")
	}
	if cfg.Boot != "" {
		cfg.Bios = true
	}
	if cfg.Resume && cfg.States == "" {
		return nil, errors.Wrap(types.ErrBadParameter, "gbsim: -resume needs -states")
	}
	return cfg, nil
}
