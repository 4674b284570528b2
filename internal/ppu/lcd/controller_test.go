package lcd

import (
	"testing"

	"github.com/thelolagemann/gbsim/internal/interrupts"
	"github.com/thelolagemann/gbsim/internal/mmu"
	"github.com/thelolagemann/gbsim/internal/types"
)

func newTestController(t *testing.T) (*Controller, *mmu.Bus, *interrupts.Service) {
	t.Helper()
	bus := mmu.NewBus()
	registers, err := mmu.NewComponent(types.Size(types.RegistersStart, types.RegistersEnd))
	if err != nil {
		t.Fatal(err)
	}
	if err := bus.Plug(registers, types.RegistersStart, types.RegistersEnd); err != nil {
		t.Fatal(err)
	}
	irq, err := interrupts.NewService()
	if err != nil {
		t.Fatal(err)
	}
	if err := irq.Plug(bus); err != nil {
		t.Fatal(err)
	}
	c := NewController()
	if err := c.Plug(bus, irq); err != nil {
		t.Fatal(err)
	}
	return c, bus, irq
}

func cycle(t *testing.T, c *Controller, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := c.Cycle(uint64(i)); err != nil {
			t.Fatal(err)
		}
	}
}

func enable(t *testing.T, c *Controller, bus *mmu.Bus) {
	t.Helper()
	if err := bus.Write(types.LCDC, 0x91); err != nil {
		t.Fatal(err)
	}
	if err := c.HandleWrite(types.LCDC); err != nil {
		t.Fatal(err)
	}
}

func TestController_Disabled(t *testing.T) {
	c, bus, irq := newTestController(t)
	cycle(t, c, CyclesPerLine*200)

	if ly := bus.Read(types.LY); ly != 0 {
		t.Errorf("expected LY 0 while disabled, got %d", ly)
	}
	if stat := bus.Read(types.STAT); stat != 0x80 {
		t.Errorf("expected STAT 0x80 while disabled, got %02X", stat)
	}
	if irq.Flag() != 0 {
		t.Errorf("expected no interrupt while disabled, got %08b", irq.Flag())
	}
}

func TestController_Lines(t *testing.T) {
	c, bus, _ := newTestController(t)
	enable(t, c, bus)

	tests := []struct {
		cycles int
		line   uint8
		mode   Mode
	}{
		{0, 0, OAM},
		{oamCycles, 0, VRAM},
		{oamCycles + transferCycles, 0, HBlank},
		{CyclesPerLine, 1, OAM},
		{CyclesPerLine * 144, 144, VBlank},
		{CyclesPerLine * 153, 153, VBlank},
		{CyclesPerLine * LinesPerFrame, 0, OAM},
	}
	done := 0
	for _, tt := range tests {
		cycle(t, c, tt.cycles-done)
		done = tt.cycles
		if ly := bus.Read(types.LY); ly != tt.line {
			t.Errorf("after %d cycles: expected LY %d, got %d", tt.cycles, tt.line, ly)
		}
		if mode := bus.Read(types.STAT) & 0x03; mode != tt.mode {
			t.Errorf("after %d cycles: expected mode %d, got %d", tt.cycles, tt.mode, mode)
		}
	}
	if c.Frames() != 1 {
		t.Errorf("expected 1 frame, got %d", c.Frames())
	}
}

func TestController_VBlankInterrupt(t *testing.T) {
	c, bus, irq := newTestController(t)
	enable(t, c, bus)

	cycle(t, c, CyclesPerLine*144-1)
	if irq.Flag()&interrupts.VBlankFlag != 0 {
		t.Fatal("V-Blank requested too early")
	}
	cycle(t, c, 1)
	if irq.Flag()&interrupts.VBlankFlag == 0 {
		t.Fatal("V-Blank not requested on line 144")
	}
}

func TestController_Coincidence(t *testing.T) {
	c, bus, irq := newTestController(t)
	_ = bus.Write(types.LYC, 2)
	_ = bus.Write(types.STAT, 0x40)
	enable(t, c, bus)

	cycle(t, c, CyclesPerLine*2-1)
	if bus.Read(types.STAT)&types.Bit2 != 0 || irq.Flag()&interrupts.LCDFlag != 0 {
		t.Fatal("coincidence before line 2")
	}
	cycle(t, c, 1)
	if bus.Read(types.STAT)&types.Bit2 == 0 {
		t.Fatal("coincidence flag not set on line 2")
	}
	if irq.Flag()&interrupts.LCDFlag == 0 {
		t.Fatal("STAT interrupt not requested on coincidence")
	}

	// the line stays high for the whole line, so no second request
	irq.SetFlag(0)
	cycle(t, c, 10)
	if irq.Flag() != 0 {
		t.Fatalf("unexpected interrupt %08b", irq.Flag())
	}
}

func TestController_ReadOnlyBits(t *testing.T) {
	c, bus, _ := newTestController(t)
	enable(t, c, bus)

	_ = bus.Write(types.LYC, 0x99)
	_ = bus.Write(types.STAT, 0xFF)
	_ = bus.Write(types.LY, 0x42)
	if err := c.HandleWrite(types.STAT); err != nil {
		t.Fatal(err)
	}
	if stat := bus.Read(types.STAT); stat != 0xF8|OAM {
		t.Errorf("expected STAT %02X, got %02X", 0xF8|OAM, stat)
	}
	if ly := bus.Read(types.LY); ly != 0 {
		t.Errorf("expected LY 0, got %d", ly)
	}
}

func TestController_State(t *testing.T) {
	c, bus, _ := newTestController(t)
	enable(t, c, bus)
	cycle(t, c, CyclesPerLine*10+5)

	s := types.NewState()
	c.Save(s)

	restored := NewController()
	restored.Load(types.StateFromBytes(s.Bytes()))
	if restored.Line() != 10 || restored.position != 5 {
		t.Errorf("expected line 10 position 5, got %d %d", restored.Line(), restored.position)
	}
}
