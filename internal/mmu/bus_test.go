package mmu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/gbsim/internal/types"
)

func newComponent(t *testing.T, size int) *Component {
	t.Helper()
	c, err := NewComponent(size)
	require.NoError(t, err)
	return c
}

func TestComponent(t *testing.T) {
	c := newComponent(t, 0x10)
	require.NotNil(t, c.Memory())
	assert.Equal(t, 0x10, c.Memory().Size())
	assert.False(t, c.IsShared())

	marker := newComponent(t, 0)
	assert.Nil(t, marker.Memory())

	_, err := Shared(marker)
	assert.ErrorIs(t, err, types.ErrMemory)

	alias, err := Shared(c)
	require.NoError(t, err)
	assert.True(t, alias.IsShared())
	assert.Same(t, c.Memory(), alias.Memory())

	_, err = NewComponent(-1)
	assert.ErrorIs(t, err, types.ErrMemory)
}

func TestBus_Plug(t *testing.T) {
	t.Run("maps successive bytes", func(t *testing.T) {
		bus := NewBus()
		c := newComponent(t, 0x10)
		c.Memory().Write(0, 0x11)
		c.Memory().Write(0xF, 0x22)

		require.NoError(t, bus.Plug(c, 0x1000, 0x100F))
		assert.Equal(t, uint8(0x11), bus.Read(0x1000))
		assert.Equal(t, uint8(0x22), bus.Read(0x100F))
		assert.Equal(t, uint8(0xFF), bus.Read(0x1010))

		start, end, ok := c.Window()
		assert.True(t, ok)
		assert.Equal(t, uint16(0x1000), start)
		assert.Equal(t, uint16(0x100F), end)
	})
	t.Run("rejects overlap", func(t *testing.T) {
		bus := NewBus()
		require.NoError(t, bus.Plug(newComponent(t, 0x10), 0x1000, 0x100F))
		other := newComponent(t, 0x10)
		assert.ErrorIs(t, bus.Plug(other, 0x1008, 0x1017), types.ErrAddress)
		assert.True(t, bus.Mapped(0x1008))
		assert.False(t, bus.Mapped(0x1010))
	})
	t.Run("rejects window wider than memory", func(t *testing.T) {
		bus := NewBus()
		c := newComponent(t, 0x10)
		assert.ErrorIs(t, bus.Plug(c, 0x1000, 0x1010), types.ErrAddress)
		_, _, ok := c.Window()
		assert.False(t, ok)
		assert.False(t, bus.Mapped(0x1000))
	})
	t.Run("rejects plugged component", func(t *testing.T) {
		bus := NewBus()
		c := newComponent(t, 0x10)
		require.NoError(t, bus.Plug(c, 0x1000, 0x100F))
		assert.ErrorIs(t, bus.Plug(c, 0x2000, 0x200F), types.ErrAddress)
		assert.False(t, bus.Mapped(0x2000))

		start, _, ok := c.Window()
		assert.True(t, ok)
		assert.Equal(t, uint16(0x1000), start)

		bus.Unplug(c)
		assert.False(t, bus.Mapped(0x1000))
	})
	t.Run("failed plug keeps window", func(t *testing.T) {
		bus := NewBus()
		c := newComponent(t, 0x10)
		require.NoError(t, bus.Plug(c, 0x1000, 0x100F))
		assert.ErrorIs(t, bus.Plug(c, 0x3000, 0x3FFF), types.ErrAddress)

		_, _, ok := c.Window()
		assert.True(t, ok)
		bus.Unplug(c)
		assert.False(t, bus.Mapped(0x1000))
		assert.False(t, bus.Mapped(0x100F))
	})
	t.Run("rejects empty window", func(t *testing.T) {
		bus := NewBus()
		assert.ErrorIs(t, bus.Plug(newComponent(t, 0x10), 0x1000, 0x1000), types.ErrAddress)
		assert.ErrorIs(t, bus.Plug(newComponent(t, 0), 0x1000, 0x0FFF), types.ErrBadParameter)
	})
	t.Run("marker maps nothing", func(t *testing.T) {
		bus := NewBus()
		marker := newComponent(t, 0)
		require.NoError(t, bus.Plug(marker, 0x2000, 0x2FFF))
		_, _, ok := marker.Window()
		assert.True(t, ok)
		assert.False(t, bus.Mapped(0x2000))
		assert.Equal(t, uint8(0xFF), bus.Read(0x2000))
	})
}

func TestBus_ForcedPlug(t *testing.T) {
	bus := NewBus()
	bank := newComponent(t, 0x20)
	bank.Memory().Write(0x10, 0xAB)
	require.NoError(t, bus.Plug(bank, 0x0000, 0x000F))

	high, err := Shared(bank)
	require.NoError(t, err)
	require.NoError(t, bus.ForcedPlug(high, 0x0010, 0x001F, 0x10))
	assert.Equal(t, uint8(0xAB), bus.Read(0x0010))

	// forced plugs replace whatever was mapped
	over := newComponent(t, 4)
	over.Memory().Write(0, 0x5A)
	require.NoError(t, bus.ForcedPlug(over, 0x0000, 0x0003, 0))
	assert.Equal(t, uint8(0x5A), bus.Read(0x0000))

	assert.ErrorIs(t, bus.ForcedPlug(over, 0x0000, 0x0003, 1), types.ErrAddress)
	assert.ErrorIs(t, bus.ForcedPlug(over, 0x0003, 0x0000, 0), types.ErrBadParameter)
	assert.ErrorIs(t, bus.ForcedPlug(newComponent(t, 0), 0x0000, 0x0003, 0), types.ErrMemory)

	// a forced plug moves a plugged component
	require.NoError(t, bus.ForcedPlug(over, 0x8000, 0x8003, 0))
	assert.Equal(t, uint8(0x5A), bus.Read(0x8000))
	assert.Equal(t, uint8(0x00), bus.Read(0x0004), "bank keeps the slots it still owns")
	assert.False(t, bus.Mapped(0x0000))
	bus.Unplug(over)
	assert.False(t, bus.Mapped(0x8000))
}

func TestBus_Unplug(t *testing.T) {
	bus := NewBus()
	rom := newComponent(t, 0x10)
	rom.Memory().Write(0, 0x01)
	require.NoError(t, bus.Plug(rom, 0x0000, 0x000F))

	boot := newComponent(t, 4)
	boot.Memory().Write(0, 0x02)
	require.NoError(t, bus.ForcedPlug(boot, 0x0000, 0x0003, 0))

	// only the slots still owned by rom are cleared
	bus.Unplug(rom)
	assert.Equal(t, uint8(0x02), bus.Read(0x0000))
	assert.Equal(t, uint8(0xFF), bus.Read(0x0004))

	bus.Unplug(boot)
	assert.Equal(t, uint8(0xFF), bus.Read(0x0000))
	_, _, ok := boot.Window()
	assert.False(t, ok)
	assert.Equal(t, uint8(0x02), boot.Memory().Read(0), "unplug keeps memory")

	// unplugging twice is harmless
	bus.Unplug(boot)

	require.NoError(t, bus.Plug(rom, 0x0000, 0x000F))
	assert.Equal(t, uint8(0x01), bus.Read(0x0000))
}

func TestBus_Remap(t *testing.T) {
	bus := NewBus()
	c := newComponent(t, 8)
	for i := 0; i < 8; i++ {
		c.Memory().Write(i, uint8(i))
	}
	require.NoError(t, bus.Plug(c, 0x4000, 0x4003))
	assert.Equal(t, uint8(0), bus.Read(0x4000))

	require.NoError(t, bus.Remap(c, 4))
	assert.Equal(t, uint8(4), bus.Read(0x4000))
	assert.Equal(t, uint8(7), bus.Read(0x4003))

	assert.ErrorIs(t, bus.Remap(c, 5), types.ErrAddress)
	assert.ErrorIs(t, bus.Remap(newComponent(t, 8), 0), types.ErrBadParameter)
}

func TestBus_ReadWrite(t *testing.T) {
	bus := NewBus()
	c := newComponent(t, 0x10)
	require.NoError(t, bus.Plug(c, 0xC000, 0xC00F))

	require.NoError(t, bus.Write(0xC001, 0x42))
	assert.Equal(t, uint8(0x42), bus.Read(0xC001))
	assert.Equal(t, uint8(0x42), c.Memory().Read(1))

	err := bus.Write(0xD000, 0x42)
	assert.ErrorIs(t, err, types.ErrAddress)
	assert.Equal(t, uint8(0xFF), bus.Read(0xD000))
}

func TestBus_ReadWrite16(t *testing.T) {
	bus := NewBus()
	c := newComponent(t, 0x10)
	require.NoError(t, bus.Plug(c, 0xC000, 0xC00F))

	require.NoError(t, bus.Write16(0xC002, 0xBEEF))
	assert.Equal(t, uint8(0xEF), bus.Read(0xC002))
	assert.Equal(t, uint8(0xBE), bus.Read(0xC003))
	assert.Equal(t, uint16(0xBEEF), bus.Read16(0xC002))

	// straddling the end of the window
	assert.Equal(t, uint16(0x00FF), bus.Read16(0xC00F))
	assert.ErrorIs(t, bus.Write16(0xC00F, 0x1234), types.ErrAddress)
	assert.Equal(t, uint8(0x00), bus.Read(0xC00F), "failed write has no effect")

	ie := newComponent(t, 1)
	require.NoError(t, bus.ForcedPlug(ie, 0xFFFF, 0xFFFF, 0))
	assert.Equal(t, uint16(0x00FF), bus.Read16(0xFFFF))
	assert.ErrorIs(t, bus.Write16(0xFFFF, 0x1234), types.ErrAddress)
}

func TestBus_EchoAliasing(t *testing.T) {
	bus := NewBus()
	work := newComponent(t, types.Size(types.WorkRAMStart, types.WorkRAMEnd))
	require.NoError(t, bus.Plug(work, types.WorkRAMStart, types.WorkRAMEnd))

	echo, err := Shared(work)
	require.NoError(t, err)
	require.NoError(t, bus.Plug(echo, types.EchoRAMStart, types.EchoRAMEnd))

	require.NoError(t, bus.Write(0xE123, 0x77))
	assert.Equal(t, uint8(0x77), bus.Read(0xC123))

	require.NoError(t, bus.Write(0xC456, 0x88))
	assert.Equal(t, uint8(0x88), bus.Read(0xE456))
}
