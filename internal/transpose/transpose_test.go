package transpose

import "testing"

func TestBitsWorkedExamples(t *testing.T) {
	diagonal := [8]byte{0x80, 0x40, 0x20, 0x10, 0x08, 0x04, 0x02, 0x01}
	if got := Bits(diagonal); got != diagonal {
		t.Errorf("Bits(diagonal) = %v, want %v", got, diagonal)
	}

	allOnes := [8]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	if got := Bits(allOnes); got != allOnes {
		t.Errorf("Bits(allOnes) = %v, want %v", got, allOnes)
	}

	allZeros := [8]byte{}
	if got := Bits(allZeros); got != allZeros {
		t.Errorf("Bits(allZeros) = %v, want %v", got, allZeros)
	}
}

func TestBitsIsInvolution(t *testing.T) {
	inputs := [][8]byte{
		{0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80},
		{0xAA, 0x55, 0xAA, 0x55, 0xAA, 0x55, 0xAA, 0x55},
		{0x00, 0xFF, 0x00, 0xFF, 0x12, 0x34, 0x56, 0x78},
		{0x80, 0x40, 0x20, 0x10, 0x08, 0x04, 0x02, 0x01},
	}
	for _, in := range inputs {
		out := Bits(Bits(in))
		if out != in {
			t.Errorf("Bits(Bits(%v)) = %v, want %v", in, out, in)
		}
	}
}

func TestBitsMapping(t *testing.T) {
	// Strip 3 has its MSB set; every other strip is zero. The MSB should
	// land in bit position 3 (from the top, zero-indexed) of the first
	// output byte, and nowhere else.
	var in [8]byte
	in[3] = 0x80
	out := Bits(in)
	want := byte(1) << (7 - 3)
	if out[0] != want {
		t.Errorf("out[0] = %#x, want %#x", out[0], want)
	}
	for i := 1; i < 8; i++ {
		if out[i] != 0 {
			t.Errorf("out[%d] = %#x, want 0", i, out[i])
		}
	}
}
