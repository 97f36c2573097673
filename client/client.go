// Package client is the host-side library for talking to a device running
// the serial-ws2812 firmware: port discovery, the resynchronisation
// handshake, and the configure/update request-reply exchanges.
package client

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"

	"github.com/hrmny-sh/serial-ws2812/internal/wire"
)

// Sentinel errors returned by this package. Callers should use errors.Is to
// check for them rather than comparing error strings.
var (
	ErrDeviceNotFound     = errors.New("client: no serial-ws2812 device found")
	ErrTimeout            = errors.New("client: timed out waiting for device")
	ErrUnexpectedResponse = errors.New("client: unexpected response from device")
	ErrShortWrite         = errors.New("client: short write to device")
)

const (
	baudRate       = 921_600
	readTimeout    = 10 * time.Millisecond
	resyncMaxTries = 8
)

// Config is the strip/LED topology the caller wants the device configured
// for.
type Config struct {
	Strips int
	LEDs   int
}

// transport is the subset of serial.Port this package uses, broken out so
// tests can substitute a fake device without opening a real port.
type transport interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
}

// Client drives one open serial-ws2812 device.
type Client struct {
	port        transport
	config      Config
	initialized bool

	// SessionID identifies this opened connection for log correlation; it
	// has no meaning to the device, only to whatever logs alongside it.
	SessionID uuid.UUID
}

// newWithTransport builds a Client around an already-open transport,
// bypassing port enumeration and baud-rate setup. Used by tests.
func newWithTransport(t transport, cfg Config) *Client {
	return &Client{port: t, config: cfg, SessionID: uuid.New()}
}

// Open opens portName at the fixed baud rate the firmware expects and
// returns an unconfigured Client. Configure (or SendFrame, which configures
// implicitly) must be called before sending frames.
func Open(portName string, cfg Config) (*Client, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		StopBits: serial.OneStopBit,
		Parity:   serial.NoParity,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("client: opening %q: %w", portName, err)
	}
	if err := port.SetReadTimeout(readTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("client: setting read timeout: %w", err)
	}

	return &Client{port: port, config: cfg, SessionID: uuid.New()}, nil
}

// Find enumerates serial ports looking for one whose USB product string
// matches the firmware's advertised product name, and opens it.
func Find(cfg Config) (*Client, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("client: listing ports: %w", err)
	}

	for _, p := range ports {
		if p.IsUSB && p.Product == wire.DeviceProductName {
			return Open(p.Name, cfg)
		}
	}

	return nil, ErrDeviceNotFound
}

// Close releases the underlying serial port.
func (c *Client) Close() error {
	return c.port.Close()
}

// resyncToCommand drains whatever the device was mid-sending and forces it
// back to a tag boundary: it reads up to four bytes at a time, and on every
// read timeout writes filler bytes (a single null byte for the first few
// tries, then a burst of 32) until the device answers with a single 'i' or
// 'e' byte.
func (c *Client) resyncToCommand() error {
	buf := make([]byte, 4)
	tries := 0

	for {
		n, err := c.port.Read(buf)
		if err != nil {
			return fmt.Errorf("client: resync read: %w", err)
		}

		if n == 0 {
			tries++
			var filler []byte
			if tries < resyncMaxTries {
				filler = []byte{0}
			} else {
				filler = make([]byte, 32)
			}
			if _, err := c.port.Write(filler); err != nil {
				return fmt.Errorf("client: resync write: %w", err)
			}
			continue
		}

		if n > 1 {
			tries = 0
			continue
		}

		if buf[0] == wire.ReplyInit || buf[0] == wire.ReplyError {
			return nil
		}
	}
}

// Configure resynchronises the device (on first use) and sends SetStrips
// then SetLeds for the client's configured topology.
func (c *Client) Configure() error {
	if !c.initialized {
		if err := c.resyncToCommand(); err != nil {
			return err
		}
		c.initialized = true
	}

	if _, _, err := c.sendCommand(wire.TagSetStrips[:], leU32(uint32(c.config.Strips))); err != nil {
		return fmt.Errorf("client: SetStrips: %w", err)
	}
	if _, _, err := c.sendCommand(wire.TagSetLeds[:], leU32(uint32(c.config.LEDs))); err != nil {
		return fmt.Errorf("client: SetLeds: %w", err)
	}
	return nil
}

// SendFrame configures the device if this is the first call, then sends the
// raw strip-major RGB payload as an Update command. It returns the
// command-ack duration and the data-ack duration separately so callers can
// distinguish link latency from transfer time.
func (c *Client) SendFrame(payload []byte) (commandDuration, dataDuration time.Duration, err error) {
	if !c.initialized {
		if err := c.Configure(); err != nil {
			return 0, 0, err
		}
	}
	return c.sendCommand(wire.TagUpdate[:], payload)
}

// sendCommand writes tag, waits for the 'p' partial-ack, writes data, and
// waits for the 'k' ok-ack, timing each phase independently.
func (c *Client) sendCommand(tag, data []byte) (commandDuration, dataDuration time.Duration, err error) {
	commandStart := time.Now()

	if err := c.writeAll(tag); err != nil {
		return 0, 0, err
	}
	if err := c.expectReply(wire.ReplyPartial); err != nil {
		return 0, 0, err
	}
	commandDuration = time.Since(commandStart)

	dataStart := time.Now()

	if err := c.writeAll(data); err != nil {
		return 0, 0, err
	}
	if err := c.expectReply(wire.ReplyOK); err != nil {
		return 0, 0, err
	}
	dataDuration = time.Since(dataStart)

	return commandDuration, dataDuration, nil
}

func (c *Client) writeAll(buf []byte) error {
	n, err := c.port.Write(buf)
	if err != nil {
		return fmt.Errorf("client: write: %w", err)
	}
	if n != len(buf) {
		return ErrShortWrite
	}
	return nil
}

func (c *Client) expectReply(want byte) error {
	buf := make([]byte, 1)
	n, err := c.port.Read(buf)
	if err != nil {
		return fmt.Errorf("client: read reply: %w", err)
	}
	if n == 0 {
		return ErrTimeout
	}
	if buf[0] != want {
		return fmt.Errorf("%w: got %q, want %q", ErrUnexpectedResponse, buf[0], want)
	}
	return nil
}

func leU32(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}
