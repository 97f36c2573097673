// Package usbcdc documents and exposes the USB CDC-ACM descriptor fields
// this device advertises, and adapts the board's CDC serial endpoint to the
// protocol.Endpoint interface the protocol task consumes.
package usbcdc

import "github.com/hrmny-sh/serial-ws2812/internal/wire"

// Descriptor fields this device advertises over USB. TinyGo bakes the
// USB vendor/product IDs and device class triple into the target's build
// configuration (board/target JSON `"usb"` keys) rather than exposing a
// runtime-configurable descriptor API, so these constants are the
// authoritative values to place there; they are re-exported from this
// package so cmd/firmware and its build configuration have a single source
// of truth instead of duplicating the numbers.
const (
	VendorID  = wire.DeviceVendorID
	ProductID = wire.DeviceProductID

	Manufacturer = wire.DeviceManufacturer
	Product      = wire.DeviceProductName

	// DeviceClass/SubClass/Protocol select the IAD-based composite device
	// class needed for Windows to recognise the CDC-ACM interface without
	// a custom driver.
	DeviceClass    = 0xEF
	DeviceSubClass = 0x02
	DeviceProtocol = 0x01

	MaxPowerMilliamps = 100
	MaxPacketSize0    = 64
	BulkPacketSize    = 64
)
