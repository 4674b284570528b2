package bits

import "testing"

func TestNibbles(t *testing.T) {
	if LSB4(0xAB) != 0x0B || MSB4(0xAB) != 0x0A {
		t.Errorf("expected nibbles 0x0B/0x0A, got 0x%02X/0x%02X", LSB4(0xAB), MSB4(0xAB))
	}
	if Merge4(0xFB, 0x1A) != 0xAB {
		t.Errorf("expected 0xAB, got 0x%02X", Merge4(0xFB, 0x1A))
	}
	if LSB8(0x1234) != 0x34 || MSB8(0x1234) != 0x12 {
		t.Errorf("expected bytes 0x34/0x12, got 0x%02X/0x%02X", LSB8(0x1234), MSB8(0x1234))
	}
	if Merge8(0x34, 0x12) != 0x1234 {
		t.Errorf("expected 0x1234, got 0x%04X", Merge8(0x34, 0x12))
	}
}

func TestBit(t *testing.T) {
	t.Run("set", func(t *testing.T) {
		if v := Set(0, 3); v != 0x08 {
			t.Errorf("expected 0x08, got 0x%02X", v)
		}
	})
	t.Run("reset", func(t *testing.T) {
		if v := Reset(0xFF, 7); v != 0x7F {
			t.Errorf("expected 0x7F, got 0x%02X", v)
		}
	})
	t.Run("clamp", func(t *testing.T) {
		// out of range indexes address bit 0
		if v := Set(0, 12); v != 0x01 {
			t.Errorf("expected 0x01, got 0x%02X", v)
		}
	})
	t.Run("edit", func(t *testing.T) {
		if v := Edit(0x00, 1, 5); v != 0x02 {
			t.Errorf("expected 0x02, got 0x%02X", v)
		}
		if v := Edit(0x02, 1, 0); v != 0x00 {
			t.Errorf("expected 0x00, got 0x%02X", v)
		}
	})
	t.Run("test", func(t *testing.T) {
		if !Test(0x80, 7) || Test(0x80, 6) {
			t.Errorf("unexpected bit test result for 0x80")
		}
	})
}

func TestRotate(t *testing.T) {
	tests := []struct {
		in   uint8
		dir  Direction
		d    uint8
		want uint8
	}{
		{0x81, Left, 1, 0x03},
		{0x81, Right, 1, 0xC0},
		{0x12, Left, 4, 0x21},
		{0x12, Right, 0, 0x12},
	}
	for _, tt := range tests {
		if got := Rotate(tt.in, tt.dir, tt.d); got != tt.want {
			t.Errorf("Rotate(0x%02X, %d, %d) = 0x%02X, want 0x%02X", tt.in, tt.dir, tt.d, got, tt.want)
		}
	}
}
