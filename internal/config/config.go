// Package config loads the lamp's YAML configuration.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Buttons struct {
	Select string `yaml:"select"`
	Up     string `yaml:"up"`
	Down   string `yaml:"down"`
	HoldMs int    `yaml:"hold_ms"` // long-hold threshold for power toggle
}

type Indicators struct {
	Pattern    string `yaml:"pattern"`
	Brightness string `yaml:"brightness"`
	Speed      string `yaml:"speed"`
}

type Store struct {
	Path string `yaml:"path"` // settings region file
	Addr int    `yaml:"addr"` // record address within the region
}

type SPI struct {
	Port string `yaml:"port"` // e.g. SPI0.0
}

type Config struct {
	Sink  string   `yaml:"sink"`  // "gpio" | "spi" | "screen" | "sim"
	Count int      `yaml:"count"` // LEDs in the ring; defaults to len(pins)
	Pins  []string `yaml:"pins"`  // one gpio pin name per LED, clockwise
	PWMHz int      `yaml:"pwm_hz"`
	FPS   int      `yaml:"fps"`

	SPI        SPI        `yaml:"spi,omitempty"`
	Buttons    Buttons    `yaml:"buttons"`
	Indicators Indicators `yaml:"indicators"`
	Store      Store      `yaml:"store"`
}

// Default mirrors the original six-LED build.
func Default() *Config {
	return &Config{
		Sink:  "gpio",
		Count: 6,
		Pins:  []string{"GPIO12", "GPIO13", "GPIO18", "GPIO19", "GPIO5", "GPIO6"},
		PWMHz: 25000,
		FPS:   60,
		Buttons: Buttons{
			Select: "GPIO20",
			Up:     "GPIO21",
			Down:   "GPIO26",
			HoldMs: 10000,
		},
		Indicators: Indicators{
			Pattern:    "GPIO16",
			Brightness: "GPIO17",
			Speed:      "GPIO22",
		},
		Store: Store{Path: "lumenring.nv", Addr: 0},
	}
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
