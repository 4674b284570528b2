package types

import "github.com/pkg/errors"

// The error taxonomy of the emulator. Errors are returned wrapped with
// context, so callers match them with errors.Is.
var (
	// ErrBadParameter is returned for an invalid argument to a pure
	// function, such as a bad rotation direction.
	ErrBadParameter = errors.New("bad parameter")
	// ErrAddress is returned for overlapping or out of range windows and
	// writes to unmapped addresses.
	ErrAddress = errors.New("address error")
	// ErrMemory is returned when a memory block can not be allocated.
	ErrMemory = errors.New("memory error")
	// ErrNotImplemented is returned for unsupported cartridge layouts.
	ErrNotImplemented = errors.New("not implemented")
	// ErrInstruction is returned when the CPU fetches an unknown opcode.
	ErrInstruction = errors.New("instruction error")
	// ErrIO is returned when a file can not be read.
	ErrIO = errors.New("io error")
	// ErrState is returned when a save state is truncated or corrupt.
	ErrState = errors.New("invalid state")
)
