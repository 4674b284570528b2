// Package ram provides the fixed size memory blocks backing every
// mapped component of the machine.
package ram

import (
	"github.com/pkg/errors"
	"github.com/thelolagemann/gbsim/internal/types"
)

// RAM represents a contiguous, zero initialised block of memory.
// Addresses are offsets into the block.
type RAM struct {
	data []byte
}

// New returns a new RAM of the given size.
func New(size int) (*RAM, error) {
	if size <= 0 {
		return nil, errors.Wrapf(types.ErrMemory, "ram: can not allocate %d bytes", size)
	}
	return &RAM{data: make([]byte, size)}, nil
}

// Read returns the value at the given offset.
func (r *RAM) Read(offset int) uint8 {
	return r.data[offset]
}

// Write writes the value to the given offset.
func (r *RAM) Write(offset int, value uint8) {
	r.data[offset] = value
}

// Size returns the size of the block in bytes.
func (r *RAM) Size() int {
	return len(r.data)
}

// Bytes exposes the backing slice, used to load ROM images and to save
// and restore the block.
func (r *RAM) Bytes() []byte {
	return r.data
}

var _ types.Stater = (*RAM)(nil)

// Load restores the block from the state.
func (r *RAM) Load(s *types.State) {
	s.ReadData(r.data)
}

// Save appends the block to the state.
func (r *RAM) Save(s *types.State) {
	s.WriteData(r.data)
}
