package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the settings ws2812ctl reads from file, environment, and
// flag overrides, in that order of increasing precedence.
type Config struct {
	Device DeviceConfig `mapstructure:"device"`
	Logger LoggerConfig `mapstructure:"logger"`
}

// DeviceConfig describes which serial device to talk to and how it should
// be configured.
type DeviceConfig struct {
	Port   string `mapstructure:"port"`
	Strips int    `mapstructure:"strips"`
	LEDs   int    `mapstructure:"leds"`
}

// LoggerConfig controls the zap logger's verbosity and encoding.
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// loadConfig reads ws2812ctl.yaml from the current directory or
// $HOME/.ws2812ctl, falling back to defaults, then applies WS2812CTL_*
// environment overrides.
func loadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("ws2812ctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.ws2812ctl")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix("WS2812CTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("device.port", "")
	v.SetDefault("device.strips", 3)
	v.SetDefault("device.leds", 512)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
}
