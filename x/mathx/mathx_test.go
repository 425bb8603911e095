package mathx

import "testing"

func TestMapU16(t *testing.T) {
	cases := []struct {
		x, inMin, inMax, outMin, outMax, want uint16
	}{
		{0, 0, 0xFFFF, 0, 1023, 0},
		{0xFFFF, 0, 0xFFFF, 0, 1023, 1023},
		{0x8000, 0, 0xFFFF, 0, 1023, 511},
		{5, 10, 20, 100, 200, 100}, // below range clamps
		{25, 10, 20, 100, 200, 200},
		{7, 7, 7, 42, 99, 42}, // degenerate input range
	}
	for _, c := range cases {
		if got := MapU16(c.x, c.inMin, c.inMax, c.outMin, c.outMax); got != c.want {
			t.Errorf("MapU16(%d, %d, %d, %d, %d) = %d, want %d",
				c.x, c.inMin, c.inMax, c.outMin, c.outMax, got, c.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 10, 60000) != 10 {
		t.Fatal("below range")
	}
	if Clamp(99999, 10, 60000) != 60000 {
		t.Fatal("above range")
	}
	if Clamp(250, 10, 60000) != 250 {
		t.Fatal("inside range")
	}
	if Clamp(3, 8, 1) != 3 {
		t.Fatal("swapped bounds")
	}
}

func TestAbsBetween(t *testing.T) {
	if Abs(int16(-7)) != 7 || Abs(int16(7)) != 7 {
		t.Fatal("abs")
	}
	if !Between(5, 1, 10) || Between(11, 1, 10) {
		t.Fatal("between")
	}
}
