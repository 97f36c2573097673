// Package identity derives the USB serial-number string from the device's
// flash JEDEC ID and unique ID bytes.
package identity

import "github.com/hrmny-sh/serial-ws2812/internal/wire"

// hexDigits renders nibbles in uppercase, matching the firmware's own
// nibble-by-nibble encoder rather than using a general-purpose hex package,
// since the source bytes are already a fixed 20-byte array and the output
// must be exactly 40 uppercase ASCII characters with no separators.
const hexDigits = "0123456789ABCDEF"

// Hex renders id (expected to be wire.IdentityBytes long: 4-byte JEDEC ID
// followed by 16-byte unique ID) as an uppercase hex string twice its
// length, used verbatim as the USB serial number.
func Hex(id [wire.IdentityBytes]byte) string {
	out := make([]byte, len(id)*2)
	for i, b := range id {
		out[i*2] = hexDigits[b>>4]
		out[i*2+1] = hexDigits[b&0xf]
	}
	return string(out)
}
