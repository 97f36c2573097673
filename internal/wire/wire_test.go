package wire

import "testing"

func TestMatchTag(t *testing.T) {
	cases := []struct {
		name string
		buf  []byte
		want Command
	}{
		{"update", []byte("update\x00\x00"), CommandUpdate},
		{"strips", []byte("strips\x00\x00"), CommandSetStrips},
		{"leds", []byte("leds\x00\x00\x00\x00"), CommandSetLeds},
		{"garbage", []byte("xxxxxxxx"), CommandNone},
		{"short", []byte("upd"), CommandNone},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := MatchTag(c.buf); got != c.want {
				t.Errorf("MatchTag(%q) = %v, want %v", c.buf, got, c.want)
			}
		})
	}
}

func TestPayloadLen(t *testing.T) {
	if got := PayloadLen(CommandUpdate, 3, 512); got != 3*3*512 {
		t.Errorf("PayloadLen(update, 3, 512) = %d, want %d", got, 3*3*512)
	}
	if got := PayloadLen(CommandSetStrips, 0, 0); got != U32Len {
		t.Errorf("PayloadLen(strips) = %d, want %d", got, U32Len)
	}
	if got := PayloadLen(CommandNone, 0, 0); got != 0 {
		t.Errorf("PayloadLen(none) = %d, want 0", got)
	}
}
