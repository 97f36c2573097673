// Package protocol implements the core-0 USB CDC-ACM command state machine:
// tag framing, payload accumulation, acknowledgement replies, and buffer
// ingress into the frame hand-off channels.
package protocol

import (
	"github.com/hrmny-sh/serial-ws2812/internal/framebuffer"
	"github.com/hrmny-sh/serial-ws2812/internal/wire"
)

// Endpoint abstracts the USB CDC-ACM class so the state machine can be
// exercised without real USB hardware. ReadPacket returns the number of
// bytes read into buf; WritePacket must write the entirety of buf or
// return an error.
type Endpoint interface {
	ReadPacket(buf []byte) (int, error)
	WritePacket(buf []byte) error
}

// Config is the active (strips, leds) pair the protocol task maintains.
type Config struct {
	Strips int
	LEDs   int
}

// DefaultConfig returns the boot-time configuration.
func DefaultConfig() Config {
	return Config{Strips: wire.DefaultStrips, LEDs: wire.DefaultLEDs}
}

// inputCapacity is large enough to hold the longest message (tag plus the
// maximum Update payload) plus one packet's slack.
const inputCapacity = wire.TagLen + wire.MaxPayload + 64

// Task runs the core-0 protocol loop against an Endpoint and the frame
// hand-off channels.
type Task struct {
	Endpoint Endpoint
	Channels *framebuffer.Channels

	config  Config
	buf     []byte
	cursor  int
	pending wire.Command
}

// NewTask constructs a Task with the boot-time default configuration.
func NewTask(ep Endpoint, ch *framebuffer.Channels) *Task {
	return &Task{
		Endpoint: ep,
		Channels: ch,
		config:   DefaultConfig(),
		buf:      make([]byte, inputCapacity),
	}
}

// Config returns the task's current (strips, leds) configuration. Safe to
// call only from the owning task's goroutine, as there is no
// synchronization: configuration is private task state belonging to
// whichever goroutine runs the task.
func (t *Task) Config() Config { return t.config }

// Run drives the accept loop forever, resynchronising on every endpoint
// error: a USB disconnect surfaces as a ReadPacket/WritePacket error, at
// which point the loop resets all in-progress state and restarts cleanly.
// It never returns under normal operation.
func (t *Task) Run() {
	for {
		t.reset()
		if err := t.acceptLoop(); err != nil {
			continue
		}
	}
}

func (t *Task) reset() {
	t.cursor = 0
	t.pending = wire.CommandNone
}

// acceptLoop processes packets until the Endpoint returns an error (USB
// disconnect), at which point the caller restarts with fresh state.
func (t *Task) acceptLoop() error {
	for {
		n, err := t.Endpoint.ReadPacket(t.buf[t.cursor:])
		if err != nil {
			return err
		}
		t.cursor += n

		if err := t.process(); err != nil {
			return err
		}
	}
}

// process consumes as many complete tag/payload units as are currently
// buffered, writing replies as each completes.
func (t *Task) process() error {
	for {
		if t.pending == wire.CommandNone {
			// No tag starts with a null byte, so a leading null is rejected
			// at once rather than after a full tag window: this is the
			// one-byte exchange the host's resync handshake relies on.
			leadingNull := t.cursor > 0 && t.buf[0] == 0
			if t.cursor < wire.TagLen && !leadingNull {
				return nil
			}
			cmd := wire.CommandNone
			if !leadingNull {
				cmd = wire.MatchTag(t.buf[:wire.TagLen])
			}
			if cmd == wire.CommandNone {
				if err := t.reply(wire.ReplyError); err != nil {
					return err
				}
				t.cursor = 0
				continue
			}
			if err := t.reply(wire.ReplyPartial); err != nil {
				return err
			}
			t.pending = cmd
			t.discardAndShift(wire.TagLen)
			continue
		}

		need := wire.PayloadLen(t.pending, t.config.Strips, t.config.LEDs)
		if t.cursor < need {
			return nil
		}

		if err := t.completeCommand(t.pending, t.buf[:need]); err != nil {
			return err
		}
		t.discardAndShift(need)
		t.pending = wire.CommandNone
	}
}

// discardAndShift drops the first n consumed bytes and shifts any
// surplus already-read bytes down to the front of the buffer. Only the n
// bytes of a matched tag or completed payload are consumed; bytes read past
// that boundary are kept and parsed as the start of the next tag or payload.
func (t *Task) discardAndShift(n int) {
	remaining := t.cursor - n
	copy(t.buf, t.buf[n:t.cursor])
	t.cursor = remaining
}

// completeCommand applies the effect of a fully-buffered command and sends
// the final acknowledgement for it.
func (t *Task) completeCommand(cmd wire.Command, payload []byte) error {
	switch cmd {
	case wire.CommandSetStrips:
		return t.applyCount(payload, wire.MaxStrips, func(n int) { t.config.Strips = n })
	case wire.CommandSetLeds:
		return t.applyCount(payload, wire.MaxLEDsPerStrip, func(n int) { t.config.LEDs = n })
	case wire.CommandUpdate:
		return t.applyUpdate(payload)
	default:
		return t.reply(wire.ReplyError)
	}
}

func (t *Task) applyCount(payload []byte, max int, apply func(int)) error {
	n := int(leU32(payload))
	if n < 1 || n > max {
		return t.reply(wire.ReplyError)
	}
	apply(n)
	return t.reply(wire.ReplyOK)
}

// applyUpdate acquires a buffer from Return, copies each strip's RGB bytes
// from payload into it, and hands it off via Display. It blocks on
// Return.recv.
func (t *Task) applyUpdate(payload []byte) error {
	buf := <-t.Channels.Return

	leds := t.config.LEDs
	for s := 0; s < t.config.Strips; s++ {
		start := s * leds * wire.BytesPerLED
		for i := 0; i < leds; i++ {
			off := start + i*wire.BytesPerLED
			buf.Strips[s][i][0] = payload[off]
			buf.Strips[s][i][1] = payload[off+1]
			buf.Strips[s][i][2] = payload[off+2]
		}
	}

	if err := t.reply(wire.ReplyOK); err != nil {
		return err
	}

	t.Channels.Display <- framebuffer.Frame{LEDs: leds, Buffer: buf}
	return nil
}

func (t *Task) reply(b byte) error {
	return t.Endpoint.WritePacket([]byte{b})
}

func leU32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
