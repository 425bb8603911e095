package strconvx

import "testing"

func TestFormatInt(t *testing.T) {
	cases := []struct {
		in   int64
		base int
		want string
	}{
		{0, 10, "0"},
		{42, 10, "42"},
		{-7, 10, "-7"},
		{255, 16, "ff"},
		{5, 2, "101"},
	}
	for _, c := range cases {
		if got := FormatInt(c.in, c.base); got != c.want {
			t.Errorf("FormatInt(%d, %d) = %q, want %q", c.in, c.base, got, c.want)
		}
	}
}

func TestAtoiRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, -1, 500, 65535, -32768} {
		got, err := Atoi(Itoa(n))
		if err != nil || got != n {
			t.Errorf("Atoi(Itoa(%d)) = %d, %v", n, got, err)
		}
	}
}

func TestParseUint(t *testing.T) {
	if v, err := ParseUint("ff", 16, 8); err != nil || v != 255 {
		t.Fatalf("ParseUint hex = %d, %v", v, err)
	}
	if _, err := ParseUint("12x", 10, 0); err == nil {
		t.Fatal("trailing garbage must fail")
	}
	if _, err := ParseUint("", 10, 0); err == nil {
		t.Fatal("empty string must fail")
	}
}

func TestParseIntSign(t *testing.T) {
	if v, err := ParseInt("-250", 10, 16); err != nil || v != -250 {
		t.Fatalf("ParseInt = %d, %v", v, err)
	}
	if v, err := ParseInt("+7", 10, 0); err != nil || v != 7 {
		t.Fatalf("ParseInt = %d, %v", v, err)
	}
}
