// Command gbsim runs a Game Boy cartridge headless, printing whatever
// the cartridge sends through the serial port. It stops once the
// requested number of cycles has run, or once a test ROM reports its
// result.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/thelolagemann/gbsim/internal/cheats"
	"github.com/thelolagemann/gbsim/internal/gameboy"
	"github.com/thelolagemann/gbsim/internal/ppu/lcd"
	"github.com/thelolagemann/gbsim/internal/types"
	"github.com/thelolagemann/gbsim/pkg/emu"
	"github.com/thelolagemann/gbsim/pkg/log"
	"github.com/thelolagemann/gbsim/pkg/profile"
	"github.com/thelolagemann/gbsim/pkg/utils"
)

// result is how a test ROM ended, as read from its serial output.
type result int

const (
	running result = iota
	passed
	failed
)

// serialWatcher forwards serial output and looks for the verdict test
// ROMs print once they are done.
type serialWatcher struct {
	out    io.Writer
	buf    bytes.Buffer
	result result
}

func (s *serialWatcher) Write(p []byte) (int, error) {
	s.buf.Write(p)
	switch {
	case bytes.Contains(s.buf.Bytes(), []byte("Passed")):
		s.result = passed
	case bytes.Contains(s.buf.Bytes(), []byte("Failed")):
		s.result = failed
	}
	return s.out.Write(p)
}

func main() {
	cfg, err := parseConfig(os.Args[1:], os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level := logrus.InfoLevel
	if cfg.Debug {
		level = logrus.DebugLevel
	}
	logger := log.NewWithLevel(level)

	if err := run(cfg, logger, os.Stdout); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

// run loads the cartridge described by cfg and runs it.
func run(cfg *Config, logger log.Logger, stdout io.Writer) error {
	rom, err := utils.LoadFile(cfg.ROM)
	if err != nil {
		return err
	}

	watcher := &serialWatcher{out: io.Discard}
	if cfg.Serial {
		watcher.out = stdout
	}
	opts := []gameboy.Opt{
		gameboy.WithLogger(logger),
		gameboy.WithDisplay(lcd.NewController()),
		gameboy.SerialOutput(watcher),
	}
	if cfg.Boot != "" {
		boot, err := utils.LoadFile(cfg.Boot)
		if err != nil {
			return err
		}
		opts = append(opts, gameboy.WithBootROM(boot))
	}
	if !cfg.Bios {
		opts = append(opts, gameboy.NoBios())
	}
	if cfg.State != "" {
		state, err := os.ReadFile(cfg.State)
		if err != nil {
			return errors.Wrapf(types.ErrIO, "gbsim: %v", err)
		}
		opts = append(opts, gameboy.WithState(state))
	}
	if cfg.Cheats != "" {
		f, err := os.Open(cfg.Cheats)
		if err != nil {
			return errors.Wrapf(types.ErrIO, "gbsim: %v", err)
		}
		list, err := cheats.Parse(f)
		f.Close()
		if err != nil {
			return err
		}
		list.EnableAll()
		for _, c := range list.Cheats() {
			for _, code := range c.Codes() {
				logger.Debugf("gbsim: cheat %s: %s", c.Name, code.Describe())
			}
		}
		opts = append(opts, gameboy.WithCheats(list))
	}
	var prof *profile.Profile
	if cfg.Profile != "" {
		prof = profile.New()
		opts = append(opts, gameboy.WithTrace(prof.Trace))
	}

	gb, err := gameboy.NewGameBoy(rom, opts...)
	if err != nil {
		return err
	}
	defer gb.Close()

	var store *emu.Store
	if cfg.States != "" {
		store = emu.NewStore(cfg.States)
	}
	if cfg.Resume && store != nil {
		state, ok, err := store.Latest(gb.Cartridge().Checksum())
		if err != nil {
			return err
		}
		if ok {
			if err := gb.LoadState(state); err != nil {
				return err
			}
		} else {
			logger.Infof("gbsim: no save state to resume from")
		}
	}

	// run a frame at a time so a test ROM verdict stops the run early
	for gb.Cycles() < cfg.Cycles && watcher.result == running {
		target := gb.Cycles() + gameboy.CyclesPerFrame
		if target > cfg.Cycles {
			target = cfg.Cycles
		}
		if err := gb.RunUntil(target); err != nil {
			return err
		}
	}
	logger.Infof("gbsim: stopped after %d cycles", gb.Cycles())

	if cfg.SaveState != "" || store != nil {
		state, err := gb.SaveState()
		if err != nil {
			return err
		}
		if cfg.SaveState != "" {
			if err := os.WriteFile(cfg.SaveState, state, 0o644); err != nil {
				return errors.Wrapf(types.ErrIO, "gbsim: %v", err)
			}
		}
		if store != nil {
			save, err := store.Save(gb.Cartridge().Checksum(), state)
			if err != nil {
				return err
			}
			logger.Infof("gbsim: saved state to %s", save.Path)
		}
	}
	if prof != nil {
		if err := writeProfile(prof, cfg.Profile, cfg.Top); err != nil {
			return err
		}
		logger.Infof("gbsim: profiled %d instructions", prof.Total())
	}

	if watcher.result == failed {
		return errors.New("gbsim: test rom failed")
	}
	return nil
}

func writeProfile(prof *profile.Profile, path string, top int) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(types.ErrIO, "gbsim: %v", err)
	}
	if err := prof.WritePNG(f, top); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(types.ErrIO, "gbsim: %v", err)
	}
	return nil
}
