package identity

import (
	"testing"

	"github.com/hrmny-sh/serial-ws2812/internal/wire"
)

func TestHex(t *testing.T) {
	var id [wire.IdentityBytes]byte
	for i := range id {
		id[i] = byte(i)
	}
	got := Hex(id)
	if len(got) != wire.IdentityBytes*2 {
		t.Fatalf("len(Hex(id)) = %d, want %d", len(got), wire.IdentityBytes*2)
	}
	want := "000102030405060708090A0B0C0D0E0F10111213"
	if got != want {
		t.Errorf("Hex(id) = %q, want %q", got, want)
	}
}

func TestHexAllFF(t *testing.T) {
	var id [wire.IdentityBytes]byte
	for i := range id {
		id[i] = 0xFF
	}
	got := Hex(id)
	for _, c := range got {
		if c != 'F' {
			t.Fatalf("Hex(all-0xFF) = %q, expected all 'F'", got)
		}
	}
}
