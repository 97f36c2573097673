//go:build rp2040

package usbcdc

import "machine"

// Endpoint adapts machine.Serial (the board's USB-CDC UART-alike) to the
// protocol.Endpoint interface: ReadPacket/WritePacket in terms of the
// blocking byte-stream Read/Write machine.Serial already implements. The
// protocol task's own framing (8-byte tags, fixed-length payloads) tolerates
// the stream being chopped at arbitrary packet boundaries, so no USB
// packet-boundary tracking is needed here. machine.Serial carries protocol
// bytes only; log output goes to rttlog's dedicated debug UART so the two
// streams never interleave.
type Endpoint struct{}

// NewEndpoint configures machine.Serial for USB-CDC operation and returns an
// Endpoint ready to hand to protocol.NewTask.
func NewEndpoint() *Endpoint {
	machine.Serial.Configure(machine.UARTConfig{})
	return &Endpoint{}
}

func (Endpoint) ReadPacket(buf []byte) (int, error) {
	return machine.Serial.Read(buf)
}

func (Endpoint) WritePacket(buf []byte) error {
	_, err := machine.Serial.Write(buf)
	return err
}
