package ledtask

import (
	"testing"
	"time"

	"github.com/hrmny-sh/serial-ws2812/internal/framebuffer"
	"github.com/hrmny-sh/serial-ws2812/internal/transpose"
)

type fakeFIFO struct {
	words []uint32
}

func (f *fakeFIFO) TryPush(word uint32) bool {
	f.words = append(f.words, word)
	return true
}

func (f *fakeFIFO) WaitUntilEmpty() {}

type fakeClock struct {
	now   time.Time
	slept time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }
func (c *fakeClock) Sleep(d time.Duration) {
	c.slept += d
	c.now = c.now.Add(d)
}

func TestRenderFrameSingleLED(t *testing.T) {
	ch := framebuffer.NewChannels()
	buf := <-ch.Return

	// Strip 0 red, strip 1 green, strip 2 blue; all others black.
	buf.Strips[0][0] = [3]byte{0xFF, 0x00, 0x00}
	buf.Strips[1][0] = [3]byte{0x00, 0xFF, 0x00}
	buf.Strips[2][0] = [3]byte{0x00, 0x00, 0xFF}

	fifo := &fakeFIFO{}
	clock := &fakeClock{now: time.Unix(0, 0)}
	task := &Task{Channels: ch, FIFO: fifo, Clock: clock}

	task.renderFrame(framebuffer.Frame{LEDs: 1, Buffer: buf})

	// One LED, 3 colour bytes, 8 bytes each transposed = 24 bytes = 6 words.
	if len(fifo.words) != 6 {
		t.Fatalf("pushed %d words, want 6", len(fifo.words))
	}

	// Recover the scratch bytes from the pushed words and compare against
	// a hand-transposed G,R,B column.
	var gotBytes []byte
	for _, w := range fifo.words {
		gotBytes = append(gotBytes,
			byte(w>>24), byte(w>>16), byte(w>>8), byte(w))
	}

	gCol := [8]byte{0x00, 0xFF, 0x00, 0, 0, 0, 0, 0}
	rCol := [8]byte{0xFF, 0x00, 0x00, 0, 0, 0, 0, 0}
	bCol := [8]byte{0x00, 0x00, 0xFF, 0, 0, 0, 0, 0}

	wantG := transpose.Bits(gCol)
	wantR := transpose.Bits(rCol)
	wantB := transpose.Bits(bCol)

	var want []byte
	want = append(want, wantG[:]...)
	want = append(want, wantR[:]...)
	want = append(want, wantB[:]...)

	if len(gotBytes) != len(want) {
		t.Fatalf("got %d bytes, want %d", len(gotBytes), len(want))
	}
	for i := range want {
		if gotBytes[i] != want[i] {
			t.Errorf("byte %d = %#x, want %#x", i, gotBytes[i], want[i])
		}
	}

	returned := <-ch.Return
	if returned != buf {
		t.Fatal("buffer was not returned to the Return channel")
	}
}

func TestEnforceResetGapSleepsRemainder(t *testing.T) {
	ch := framebuffer.NewChannels()
	fifo := &fakeFIFO{}
	clock := &fakeClock{now: time.Unix(0, 0)}
	task := &Task{Channels: ch, FIFO: fifo, Clock: clock}

	task.lastWrite = clock.now
	task.lastWriteSet = true
	clock.now = clock.now.Add(100 * time.Microsecond)

	task.enforceResetGap()

	if clock.slept != ResetGap-100*time.Microsecond {
		t.Errorf("slept %v, want %v", clock.slept, ResetGap-100*time.Microsecond)
	}
}

func TestEnforceResetGapNoSleepFirstFrame(t *testing.T) {
	ch := framebuffer.NewChannels()
	fifo := &fakeFIFO{}
	clock := &fakeClock{now: time.Unix(0, 0)}
	task := &Task{Channels: ch, FIFO: fifo, Clock: clock}

	task.enforceResetGap()

	if clock.slept != 0 {
		t.Errorf("slept %v on first frame, want 0", clock.slept)
	}
}
