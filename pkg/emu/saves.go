// Package emu stores the save states of the emulator on disk.
package emu

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/thelolagemann/gbsim/internal/types"
)

// stateExt is the extension of save state files.
const stateExt = ".state"

// save file naming convention:
// <dir>/<xxhash cart checksum>/<timestamp>.state

// Save describes a save state on disk.
type Save struct {
	Path string    // the path to the save file
	Time time.Time // when the state was saved
}

// Bytes reads the save state.
func (s Save) Bytes() ([]byte, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, errors.Wrapf(types.ErrIO, "emu: %v", err)
	}
	return b, nil
}

// Store keeps the save states of every cartridge under a folder, each
// cartridge getting its own folder named after its checksum.
type Store struct {
	dir string
	now func() time.Time
}

// NewStore returns a store rooted at dir. The folder is created on the
// first save.
func NewStore(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

func (s *Store) folder(checksum uint64) string {
	return filepath.Join(s.dir, fmt.Sprintf("%016x", checksum))
}

// Save writes a new save state for the cartridge. The state is written
// to a temporary file first, then renamed, so a crash never leaves a
// truncated state behind.
func (s *Store) Save(checksum uint64, state []byte) (Save, error) {
	folder := s.folder(checksum)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return Save{}, errors.Wrapf(types.ErrIO, "emu: %v", err)
	}

	now := s.now()
	path := filepath.Join(folder, strconv.FormatInt(now.UnixNano(), 10)+stateExt)

	f, err := os.CreateTemp(folder, filepath.Base(path)+".*")
	if err != nil {
		return Save{}, errors.Wrapf(types.ErrIO, "emu: %v", err)
	}
	if _, err := f.Write(state); err != nil {
		f.Close()
		os.Remove(f.Name())
		return Save{}, errors.Wrapf(types.ErrIO, "emu: %v", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return Save{}, errors.Wrapf(types.ErrIO, "emu: %v", err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return Save{}, errors.Wrapf(types.ErrIO, "emu: %v", err)
	}
	return Save{Path: path, Time: now}, nil
}

// List returns the save states of the cartridge, newest first. A
// cartridge without any state returns an empty slice.
func (s *Store) List(checksum uint64) ([]Save, error) {
	folder := s.folder(checksum)
	files, err := os.ReadDir(folder)
	if os.IsNotExist(err) {
		return []Save{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(types.ErrIO, "emu: %v", err)
	}

	saves := make([]Save, 0, len(files))
	for _, file := range files {
		if file.IsDir() || !isStateFile(file.Name()) {
			continue
		}
		saves = append(saves, Save{
			Path: filepath.Join(folder, file.Name()),
			Time: time.Unix(0, parseTimestampFromFilename(file.Name())),
		})
	}
	sort.Slice(saves, func(i, j int) bool {
		return saves[i].Time.After(saves[j].Time)
	})
	return saves, nil
}

// Latest returns the newest save state of the cartridge. ok is false
// when there is none.
func (s *Store) Latest(checksum uint64) (state []byte, ok bool, err error) {
	saves, err := s.List(checksum)
	if err != nil || len(saves) == 0 {
		return nil, false, err
	}
	state, err = saves[0].Bytes()
	return state, err == nil, err
}

// parseTimestampFromFilename parses the timestamp from the given filename.
// The filename is expected to be in the format of "<timestamp>.state",
// where <timestamp> is the number of nanoseconds since the Unix epoch.
func parseTimestampFromFilename(filename string) int64 {
	n, err := strconv.ParseInt(strings.TrimSuffix(filename, stateExt), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func isStateFile(filename string) bool {
	return strings.HasSuffix(filename, stateExt)
}
