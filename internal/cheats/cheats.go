// Package cheats provides Game Genie and GameShark codes, applied to
// the address space of the machine once per frame.
package cheats

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/thelolagemann/gbsim/internal/mmu"
	"github.com/thelolagemann/gbsim/internal/types"
)

// Code is a single cheat code.
type Code interface {
	Apply(bus *mmu.Bus) error
	Revert(bus *mmu.Bus) error
	Describe() string
	String() string
}

// ParseCode parses a Game Genie (ABC-DEF-GHI) or GameShark (ABCDEFGH)
// code.
func ParseCode(code string) (Code, error) {
	switch len(code) {
	case 11:
		return parseGameGenie(code)
	case 8:
		return parseGameShark(code)
	}
	return nil, errors.Wrapf(types.ErrBadParameter, "cheats: invalid code %q", code)
}

// Cheat is a named group of codes, enabled and disabled together.
type Cheat struct {
	Name    string
	Enabled bool

	codes []Code
}

// Codes returns the codes of the cheat.
func (c *Cheat) Codes() []Code {
	return c.codes
}

// List holds the cheats of a game.
type List struct {
	cheats []*Cheat
}

// Parse reads a cheat file. The file format is as follows:
//
//	# Cheat Name
//	ABC-DEF-GHI
//	ABCDEFGH
//
// Cheat files may have any number of Game Genie and GameShark codes, and
// may be mixed together. Blank lines are ignored. Every cheat starts
// disabled.
func Parse(r io.Reader) (*List, error) {
	l := &List{}
	var current *Cheat

	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line[0] == '#':
			current = &Cheat{Name: strings.TrimSpace(line[1:])}
			l.cheats = append(l.cheats, current)
			continue
		case current == nil:
			return nil, errors.Wrapf(types.ErrBadParameter, "cheats: line %d: code before the first cheat name", n)
		}

		code, err := ParseCode(line)
		if err != nil {
			return nil, errors.Wrapf(err, "cheats: line %d", n)
		}
		current.codes = append(current.codes, code)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(types.ErrIO, "cheats: %v", err)
	}
	return l, nil
}

// Add adds a cheat made of codes.
func (l *List) Add(name string, codes ...string) error {
	if l.find(name) != nil {
		return errors.Wrapf(types.ErrBadParameter, "cheats: %q already loaded", name)
	}
	c := &Cheat{Name: name}
	for _, raw := range codes {
		code, err := ParseCode(raw)
		if err != nil {
			return err
		}
		c.codes = append(c.codes, code)
	}
	l.cheats = append(l.cheats, c)
	return nil
}

// Cheats returns every loaded cheat.
func (l *List) Cheats() []*Cheat {
	return l.cheats
}

func (l *List) find(name string) *Cheat {
	for _, c := range l.cheats {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Enable enables the named cheat.
func (l *List) Enable(name string) error {
	c := l.find(name)
	if c == nil {
		return errors.Wrapf(types.ErrBadParameter, "cheats: %q not found", name)
	}
	c.Enabled = true
	return nil
}

// EnableAll enables every cheat.
func (l *List) EnableAll() {
	for _, c := range l.cheats {
		c.Enabled = true
	}
}

// Disable disables the named cheat and reverts its patches.
func (l *List) Disable(name string, bus *mmu.Bus) error {
	c := l.find(name)
	if c == nil {
		return errors.Wrapf(types.ErrBadParameter, "cheats: %q not found", name)
	}
	c.Enabled = false
	for _, code := range c.codes {
		if err := code.Revert(bus); err != nil {
			return err
		}
	}
	return nil
}

// Apply applies every enabled cheat.
func (l *List) Apply(bus *mmu.Bus) error {
	for _, c := range l.cheats {
		if !c.Enabled {
			continue
		}
		for _, code := range c.codes {
			if err := code.Apply(bus); err != nil {
				return errors.Wrapf(err, "cheats: %s", c.Name)
			}
		}
	}
	return nil
}

// WriteTo writes the list in the format read by Parse.
func (l *List) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, c := range l.cheats {
		m, err := fmt.Fprintf(w, "# %s\n", c.Name)
		n += int64(m)
		if err != nil {
			return n, errors.Wrapf(types.ErrIO, "cheats: %v", err)
		}
		for _, code := range c.codes {
			m, err := fmt.Fprintf(w, "%s\n", code)
			n += int64(m)
			if err != nil {
				return n, errors.Wrapf(types.ErrIO, "cheats: %v", err)
			}
		}
	}
	return n, nil
}
