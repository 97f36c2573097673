//go:build rp2040

package identity

import (
	"machine"

	"github.com/hrmny-sh/serial-ws2812/internal/wire"
)

// Read computes the 20-byte device identity (4-byte flash JEDEC ID followed
// by the 16-byte unique ID) once at boot. The result is immutable for the
// lifetime of the device.
//
// machine.Flash.ReadJEDEC and machine.DeviceID are blocking reads; both are
// cheap and only ever called once, at boot, before either task is spawned.
func Read() [wire.IdentityBytes]byte {
	var id [wire.IdentityBytes]byte

	jedec := machine.Flash.ReadJEDEC()
	id[0] = byte(jedec >> 24)
	id[1] = byte(jedec >> 16)
	id[2] = byte(jedec >> 8)
	id[3] = byte(jedec)

	copy(id[4:], machine.DeviceID())

	return id
}
