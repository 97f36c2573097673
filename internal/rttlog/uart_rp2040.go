//go:build rp2040

package rttlog

import "machine"

// debugUARTTX/debugUARTRX are the pins carrying log output, wired to
// machine.UART1 (not machine.Serial, which the USB-CDC protocol endpoint
// owns, and not GPIO 0-7, which the WS2812 parallel PIO program drives) so
// a boot banner or any other log line can never land in the middle of a
// protocol read and desynchronise the host's resync handshake.
const (
	debugUARTTX = machine.UART1_TX_PIN
	debugUARTRX = machine.UART1_RX_PIN
)

// NewDebugUART configures machine.UART1 as a dedicated debug transport and
// returns a Logger writing to it.
func NewDebugUART(min Level) *Logger {
	machine.UART1.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       debugUARTTX,
		RX:       debugUARTRX,
	})
	return New(machine.UART1, min)
}
