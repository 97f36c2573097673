// Package ledtask implements the core-1 loop that owns the PIO state
// machine: it waits for frames on the DISPLAY channel, enforces the WS2812
// reset gap, transposes pixel columns into the parallel wire format, and
// streams them to the PIO TX FIFO.
package ledtask

import (
	"time"

	"github.com/hrmny-sh/serial-ws2812/internal/framebuffer"
	"github.com/hrmny-sh/serial-ws2812/internal/transpose"
	"github.com/hrmny-sh/serial-ws2812/internal/wire"
)

// ResetGap is the minimum idle time the WS2812 wire must see between
// frames before the chips will latch the next one.
const ResetGap = 280 * time.Microsecond

// colorOrder re-maps RGB-in-memory channel indices to the GRB wire order:
// green first, then red, then blue.
var colorOrder = [3]int{1, 0, 2}

// FIFO abstracts the PIO TX FIFO so the transposition hot loop can be
// exercised in tests without real PIO hardware. TryPush must not block:
// it returns false if the FIFO has no room.
type FIFO interface {
	TryPush(word uint32) bool
	WaitUntilEmpty()
}

// Clock abstracts wall-clock access so reset-gap enforcement is testable.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// Task runs the core-1 LED loop against a channel pair and a FIFO.
type Task struct {
	Channels *framebuffer.Channels
	FIFO     FIFO
	Clock    Clock

	// Scratch is the private alignment-safe scratch output buffer the task
	// transposes pixel columns into before pushing 32-bit words. Its size
	// must be at least wire.MaxPayload; callers normally leave it nil and
	// let Run allocate it lazily.
	Scratch []byte

	lastWrite    time.Time
	lastWriteSet bool
}

// NewTask constructs a Task with the real wall clock.
func NewTask(ch *framebuffer.Channels, fifo FIFO) *Task {
	return &Task{Channels: ch, FIFO: fifo, Clock: realClock{}}
}

// Run executes the core-1 loop forever, never returning under normal
// operation. cmd/firmware starts it on its own goroutine through
// corehop.Launch.
func (t *Task) Run() {
	for {
		frame := <-t.Channels.Display
		t.renderFrame(frame)
	}
}

// renderFrame performs one full iteration of the LED task's loop:
// reset-gap wait, transpose-and-stream, drain, return, and FIFO-empty wait
// before stamping last-write-time.
func (t *Task) renderFrame(frame framebuffer.Frame) {
	t.enforceResetGap()

	if t.Scratch == nil {
		t.Scratch = make([]byte, wire.MaxPayload)
	}

	leds := frame.LEDs
	if leds > wire.MaxLEDsPerStrip {
		leds = wire.MaxLEDsPerStrip
	}

	written := 0
	for i := 0; i < leds; i++ {
		base := wire.MaxStrips * wire.BytesPerLED * i
		for j, channel := range colorOrder {
			var column [8]byte
			for s := 0; s < wire.MaxStrips; s++ {
				column[s] = frame.Buffer.Strips[s][i][channel]
			}
			out := transpose.Bits(column)
			copy(t.Scratch[base+j*8:base+j*8+8], out[:])
		}

		// Flush only bytes fully written by prior iterations: base marks
		// the start of the LED just transposed, so everything before it
		// is safe to push regardless of how far this LED's own write has
		// progressed.
		for base-written >= 4 && t.pushWord(written) {
			written += 4
		}
	}

	total := wire.BytesPerLED * wire.MaxStrips * leds
	if total%4 != 0 {
		total += 4 - total%4
	}
	for total-written >= 4 {
		if t.pushWord(written) {
			written += 4
		}
	}

	t.Channels.Return <- frame.Buffer

	t.FIFO.WaitUntilEmpty()
	t.lastWrite = t.Clock.Now()
	t.lastWriteSet = true
}

func (t *Task) pushWord(offset int) bool {
	word := uint32(t.Scratch[offset])<<24 |
		uint32(t.Scratch[offset+1])<<16 |
		uint32(t.Scratch[offset+2])<<8 |
		uint32(t.Scratch[offset+3])
	return t.FIFO.TryPush(word)
}

func (t *Task) enforceResetGap() {
	if !t.lastWriteSet {
		return
	}
	diff := t.Clock.Now().Sub(t.lastWrite)
	if diff < ResetGap {
		t.Clock.Sleep(ResetGap - diff)
	}
}
