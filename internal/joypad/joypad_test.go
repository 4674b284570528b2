package joypad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/gbsim/internal/interrupts"
	"github.com/thelolagemann/gbsim/internal/mmu"
	"github.com/thelolagemann/gbsim/internal/types"
)

func newTestController(t *testing.T) (*Controller, *mmu.Bus, *interrupts.Service) {
	t.Helper()
	bus := mmu.NewBus()
	registers, err := mmu.NewComponent(types.Size(types.RegistersStart, types.RegistersEnd))
	require.NoError(t, err)
	require.NoError(t, bus.Plug(registers, types.RegistersStart, types.RegistersEnd))
	irq, err := interrupts.NewService()
	require.NoError(t, err)
	require.NoError(t, irq.Plug(bus))
	return NewController(bus, irq), bus, irq
}

func TestController_Select(t *testing.T) {
	c, bus, _ := newTestController(t)
	require.NoError(t, c.Press(ButtonA))
	require.NoError(t, c.Press(ButtonDown))

	tests := []struct {
		name   string
		selA   uint8
		expect uint8
	}{
		{"none", 0x30, 0xFF},
		{"actions", 0x10, 0xDE},
		{"directions", 0x20, 0xE7},
		{"both", 0x00, 0xC6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, bus.Write(types.P1, tt.selA))
			require.NoError(t, c.HandleWrite(types.P1))
			assert.Equal(t, tt.expect, bus.Read(types.P1))
		})
	}
}

func TestController_PressRelease(t *testing.T) {
	c, bus, irq := newTestController(t)
	require.NoError(t, bus.Write(types.P1, 0x10))

	require.NoError(t, c.Press(ButtonStart))
	assert.True(t, c.Pressed(ButtonStart))
	assert.Equal(t, uint8(interrupts.JoypadFlag), irq.Flag()&interrupts.JoypadFlag)
	assert.Equal(t, uint8(0xD7), bus.Read(types.P1))

	irq.SetFlag(0)
	require.NoError(t, c.Release(ButtonStart))
	assert.False(t, c.Pressed(ButtonStart))
	assert.Zero(t, irq.Flag())
	assert.Equal(t, uint8(0xDF), bus.Read(types.P1))
}

func TestController_Interrupt(t *testing.T) {
	tests := []struct {
		name   string
		sel    uint8
		held   []Button
		press  Button
		expect bool
	}{
		{"selected", 0x10, nil, ButtonA, true},
		{"both groups", 0x00, nil, ButtonDown, true},
		{"not selected", 0x20, nil, ButtonA, false},
		{"none selected", 0x30, nil, ButtonDown, false},
		{"already held", 0x10, []Button{ButtonA}, ButtonA, false},
		{"other held", 0x10, []Button{ButtonA}, ButtonB, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, bus, irq := newTestController(t)
			require.NoError(t, bus.Write(types.P1, tt.sel))
			for _, b := range tt.held {
				require.NoError(t, c.Press(b))
			}
			irq.SetFlag(0)

			require.NoError(t, c.Press(tt.press))
			assert.Equal(t, tt.expect, irq.Flag()&interrupts.JoypadFlag != 0)
		})
	}
}

func TestController_IgnoresOtherAddresses(t *testing.T) {
	c, bus, _ := newTestController(t)
	require.NoError(t, bus.Write(types.P1, 0x00))
	require.NoError(t, c.HandleWrite(types.SB))
	assert.Equal(t, uint8(0x00), bus.Read(types.P1))
}

func TestController_State(t *testing.T) {
	c, _, _ := newTestController(t)
	require.NoError(t, c.Press(ButtonLeft))

	s := types.NewState()
	c.Save(s)

	restored, _, _ := newTestController(t)
	restored.Load(types.StateFromBytes(s.Bytes()))
	assert.True(t, restored.Pressed(ButtonLeft))
	assert.False(t, restored.Pressed(ButtonRight))
}
