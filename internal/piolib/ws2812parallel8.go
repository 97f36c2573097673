//go:build rp2040

// Package piolib holds the PIO programs and their Go driver wrappers used by
// the LED task, following the layout of github.com/tinygo-org/pio's own
// piolib package, on which this one is grounded: one file pair per program,
// the generated instruction table and a hand-written driver on top of it.
// The generic PIO/StateMachine register layer has no WS2812-specific
// content to adapt, so it is imported directly from
// github.com/tinygo-org/pio/rp2-pio rather than vendored.
package piolib

import (
	"errors"
	"machine"
	"time"

	pio "github.com/tinygo-org/pio/rp2-pio"
)

// WS2812BitRate is the WS2812 wire bit rate in Hz.
const WS2812BitRate = 800_000

var errStateMachineClaimed = errors.New("piolib: state machine already claimed")

// WS2812Parallel8 drives eight WS2812 strips in lock-step from a single PIO
// state machine: every 32-bit FIFO word carries four already-transposed
// bytes, one WS2812 bit-time each, with each byte's eight bit positions
// driving the eight configured GPIO pins simultaneously.
type WS2812Parallel8 struct {
	sm     pio.StateMachine
	offset uint8
}

// NewWS2812Parallel8 claims and configures sm to run the parallel8 program
// on eight consecutive pins starting at firstPin (so firstPin+0..firstPin+7
// drive strips 0..7). cpuFreq is the running system clock, used to compute
// the clock divider that yields the 8 MHz bit-program clock the WS2812
// timing requires.
func NewWS2812Parallel8(sm pio.StateMachine, firstPin machine.Pin, cpuFreq uint32) (*WS2812Parallel8, error) {
	if !sm.Claim() {
		return nil, errStateMachineClaimed
	}

	whole, frac, err := pio.ClkDivFromFrequency(WS2812BitRate*CyclesPerBit, cpuFreq)
	if err != nil {
		return nil, err
	}

	p := sm.PIO()
	offset, err := p.AddProgram(ws2812parallel8Instructions, ws2812parallel8Origin)
	if err != nil {
		return nil, err
	}

	for i := machine.Pin(0); i < 8; i++ {
		pin := firstPin + i
		pin.Configure(machine.PinConfig{Mode: p.PinMode()})
	}
	sm.SetPindirsConsecutive(firstPin, 8, true)

	cfg := ws2812parallel8ProgramDefaultConfig(offset)
	cfg.SetOutPins(firstPin, 8)
	cfg.SetOutShift(false /* left */, true /* autopull */, 32)
	cfg.SetFIFOJoin(pio.FifoJoinTx)
	cfg.SetClkDivIntFrac(whole, frac)

	sm.Init(offset, cfg)
	sm.SetEnabled(true)

	return &WS2812Parallel8{sm: sm, offset: offset}, nil
}

// TryPush pushes one already-transposed, big-endian-packed 32-bit word into
// the TX FIFO if there is room, returning false without blocking otherwise.
func (ws *WS2812Parallel8) TryPush(word uint32) bool {
	if ws.sm.IsTxFIFOFull() {
		return false
	}
	ws.sm.TxPut(word)
	return true
}

// Full reports whether the TX FIFO currently has no room for another word.
func (ws *WS2812Parallel8) Full() bool { return ws.sm.IsTxFIFOFull() }

// Empty reports whether the TX FIFO has fully drained.
func (ws *WS2812Parallel8) Empty() bool { return ws.sm.IsTxFIFOEmpty() }

// WaitUntilEmpty blocks, sleeping in small increments, until the TX FIFO has
// fully drained. Used by the LED task before stamping last-write-time so the
// reset gap is measured from when bits actually finished on the wire.
func (ws *WS2812Parallel8) WaitUntilEmpty() {
	for !ws.Empty() {
		time.Sleep(5 * time.Microsecond)
	}
}
