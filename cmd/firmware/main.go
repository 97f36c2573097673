//go:build rp2040

// Command firmware is the RP2040 binary: it brings up the flash identity,
// USB-CDC serial endpoint, and PIO driver, then runs the protocol task on
// the main goroutine and the LED task on its own goroutine in lock-step
// over the shared frame buffer.
package main

import (
	"machine"

	"github.com/hrmny-sh/serial-ws2812/internal/corehop"
	"github.com/hrmny-sh/serial-ws2812/internal/framebuffer"
	"github.com/hrmny-sh/serial-ws2812/internal/identity"
	"github.com/hrmny-sh/serial-ws2812/internal/ledtask"
	"github.com/hrmny-sh/serial-ws2812/internal/piolib"
	"github.com/hrmny-sh/serial-ws2812/internal/protocol"
	"github.com/hrmny-sh/serial-ws2812/internal/rttlog"
	"github.com/hrmny-sh/serial-ws2812/internal/usbcdc"
	pio "github.com/tinygo-org/pio/rp2-pio"
)

// firstLEDPin is the first of eight consecutive GPIO pins driving strips
// 0..7, matching the original firmware's pin 0 through pin 7 wiring.
const firstLEDPin = machine.Pin(0)

func main() {
	log := rttlog.NewDebugUART(rttlog.LevelInfo)

	id := identity.Read()
	log.Info("boot: serial " + identity.Hex(id))

	channels := framebuffer.NewChannels()

	sm := pio.PIO0.StateMachine(0)

	ws, err := piolib.NewWS2812Parallel8(sm, firstLEDPin, machine.CPUFrequency())
	if err != nil {
		log.Error("configure PIO: " + err.Error())
		return
	}

	led := ledtask.NewTask(channels, ws)
	corehop.Launch(led.Run)

	ep := usbcdc.NewEndpoint()
	proto := protocol.NewTask(ep, channels)
	proto.Run()
}
