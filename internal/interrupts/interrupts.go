// Package interrupts holds the interrupt state of the CPU. IF and IE
// live on the bus as single byte components, so the program, the timer
// and the external collaborators all see the same registers.
package interrupts

import (
	"github.com/thelolagemann/gbsim/internal/mmu"
	"github.com/thelolagemann/gbsim/internal/types"
)

// Interrupt numbers, in order of priority. The vector of an interrupt
// is VectorBase + 8*n.
const (
	// VBlank is requested by the display every time it enters the
	// vertical blank.
	VBlank uint8 = iota
	// LCD is requested by the display on LCD STAT conditions.
	LCD
	// Timer is requested when TIMA overflows.
	Timer
	// Serial is requested when a serial transfer completes.
	Serial
	// Joypad is requested when a selected key goes from high to low.
	Joypad

	count
)

// VectorBase is the address of the VBlank handler.
const VectorBase uint16 = 0x0040

const (
	VBlankFlag = types.Bit0
	LCDFlag    = types.Bit1
	TimerFlag  = types.Bit2
	SerialFlag = types.Bit3
	JoypadFlag = types.Bit4
)

// Service is the interrupt service, used to request interrupts and to
// select the next one to be serviced.
//
// When an interrupt is requested, the corresponding bit in the Flag
// register is set. When an interrupt is enabled, the corresponding bit
// in the Enable register is set. When an interrupt is requested and
// enabled, and IME is set, the CPU will jump to the interrupt vector,
// and the corresponding bit in the Flag register will be cleared.
//
// IME is set and reset by the EI, DI and RETI instructions.
type Service struct {
	flag   *mmu.Component // types.IF
	enable *mmu.Component // types.IE

	IME bool
}

// NewService returns a new Service, with IF and IE cleared.
func NewService() (*Service, error) {
	flag, err := mmu.NewComponent(1)
	if err != nil {
		return nil, err
	}
	enable, err := mmu.NewComponent(1)
	if err != nil {
		return nil, err
	}
	return &Service{flag: flag, enable: enable}, nil
}

// Plug maps IF and IE onto the bus. IF sits inside the I/O register
// window, so both are forced over whatever is mapped there.
func (s *Service) Plug(bus *mmu.Bus) error {
	if err := bus.ForcedPlug(s.flag, types.IF, types.IF, 0); err != nil {
		return err
	}
	return bus.ForcedPlug(s.enable, types.IE, types.IE, 0)
}

// Unplug removes IF and IE from the bus.
func (s *Service) Unplug(bus *mmu.Bus) {
	bus.Unplug(s.flag)
	bus.Unplug(s.enable)
}

// Flag returns the value of IF.
func (s *Service) Flag() uint8 {
	return s.flag.Memory().Read(0)
}

// SetFlag sets the value of IF.
func (s *Service) SetFlag(v uint8) {
	s.flag.Memory().Write(0, v)
}

// Enable returns the value of IE.
func (s *Service) Enable() uint8 {
	return s.enable.Memory().Read(0)
}

// SetEnable sets the value of IE.
func (s *Service) SetEnable(v uint8) {
	s.enable.Memory().Write(0, v)
}

// Request requests the interrupt n by setting its bit in IF. Numbers
// past Joypad are ignored.
func (s *Service) Request(n uint8) {
	if n >= count {
		return
	}
	s.SetFlag(s.Flag() | 1<<n)
}

// Pending returns true if any interrupt is both requested and enabled,
// regardless of IME.
func (s *Service) Pending() bool {
	return s.Enable()&s.Flag()&(1<<count-1) != 0
}

// Next returns the lowest numbered interrupt that is both requested and
// enabled, and clears its bit in IF. ok is false when there is none.
func (s *Service) Next() (n uint8, ok bool) {
	pending := s.Enable() & s.Flag()
	for i := uint8(0); i < count; i++ {
		if pending&(1<<i) != 0 {
			s.SetFlag(s.Flag() &^ (1 << i))
			return i, true
		}
	}
	return 0, false
}

// Vector returns the handler address of interrupt n.
func Vector(n uint8) uint16 {
	return VectorBase + uint16(n)*8
}

var _ types.Stater = (*Service)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - Flag (uint8)
//   - Enable (uint8)
//   - IME (bool)
func (s *Service) Load(st *types.State) {
	s.SetFlag(st.Read8())
	s.SetEnable(st.Read8())
	s.IME = st.ReadBool()
}

// Save implements the types.Stater interface.
func (s *Service) Save(st *types.State) {
	st.Write8(s.Flag())
	st.Write8(s.Enable())
	st.WriteBool(s.IME)
}
