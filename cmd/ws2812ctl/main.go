// Command ws2812ctl is the host-side control tool for a serial-ws2812
// device: it can locate the device, push a strip/LED topology to it, and
// paint a solid colour across every configured pixel.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/hrmny-sh/serial-ws2812/client"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	configPath := os.Getenv("WS2812CTL_CONFIG")
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ws2812ctl: loading config:", err)
		os.Exit(1)
	}

	log, err := newLogger(cfg.Logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ws2812ctl: building logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	var cmdErr error
	switch os.Args[1] {
	case "find":
		cmdErr = runFind(log, cfg)
	case "configure":
		cmdErr = runConfigure(log, cfg, os.Args[2:])
	case "solid":
		cmdErr = runSolid(log, cfg, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if cmdErr != nil {
		log.Error("command failed", zap.Error(cmdErr))
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: ws2812ctl <find|configure|solid> [flags]")
}

func runFind(log *zap.Logger, cfg *Config) error {
	c, err := client.Find(client.Config{Strips: cfg.Device.Strips, LEDs: cfg.Device.LEDs})
	if err != nil {
		return err
	}
	defer c.Close()
	log.Info("device found", zap.String("session", c.SessionID.String()))
	return nil
}

func openClient(cfg *Config) (*client.Client, error) {
	deviceCfg := client.Config{Strips: cfg.Device.Strips, LEDs: cfg.Device.LEDs}
	if cfg.Device.Port != "" {
		return client.Open(cfg.Device.Port, deviceCfg)
	}
	return client.Find(deviceCfg)
}

func runConfigure(log *zap.Logger, cfg *Config, args []string) error {
	fs := flag.NewFlagSet("configure", flag.ExitOnError)
	strips := fs.Int("strips", cfg.Device.Strips, "number of strips")
	leds := fs.Int("leds", cfg.Device.LEDs, "LEDs per strip")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg.Device.Strips = *strips
	cfg.Device.LEDs = *leds

	c, err := openClient(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.Configure(); err != nil {
		return err
	}
	log.Info("device configured", zap.Int("strips", *strips), zap.Int("leds", *leds))
	return nil
}

func runSolid(log *zap.Logger, cfg *Config, args []string) error {
	fs := flag.NewFlagSet("solid", flag.ExitOnError)
	r := fs.Uint("r", 0, "red channel 0-255")
	g := fs.Uint("g", 0, "green channel 0-255")
	b := fs.Uint("b", 0, "blue channel 0-255")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, err := openClient(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	payload := make([]byte, 3*cfg.Device.Strips*cfg.Device.LEDs)
	for i := 0; i < cfg.Device.Strips*cfg.Device.LEDs; i++ {
		payload[i*3+0] = byte(*r)
		payload[i*3+1] = byte(*g)
		payload[i*3+2] = byte(*b)
	}

	cmdDur, dataDur, err := c.SendFrame(payload)
	if err != nil {
		return err
	}
	log.Info("frame sent", zap.Duration("command", cmdDur), zap.Duration("data", dataDur))
	return nil
}
