package led

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
)

// PWMSink drives one gpio pin per output channel, mapping the 8-bit duty
// cycle onto the pin's PWM. This is the analogWrite path of the original
// hardware.
type PWMSink struct {
	freq physic.Frequency
	pins map[int]gpio.PinIO
}

// NewPWMSink resolves pin names through the gpio registry: channel id i uses
// pins[i]. Call host.Init first.
func NewPWMSink(pins []string, freq physic.Frequency) (*PWMSink, error) {
	if freq == 0 {
		freq = 25 * physic.KiloHertz
	}
	s := &PWMSink{freq: freq, pins: make(map[int]gpio.PinIO, len(pins))}
	for id, name := range pins {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("gpio pin %q not found", name)
		}
		s.pins[id] = p
	}
	return s, nil
}

func (s *PWMSink) SetLevel(id int, duty uint8) {
	p, ok := s.pins[id]
	if !ok {
		return
	}
	d := gpio.Duty(uint64(duty) * uint64(gpio.DutyMax) / 255)
	_ = p.PWM(d, s.freq)
}

func (s *PWMSink) Close() error {
	var first error
	for _, p := range s.pins {
		if err := p.Halt(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Indicator is a digital output level wrapper over a single gpio pin, used
// for the setting-selection lights.
type Indicator struct {
	pin gpio.PinOut
}

func NewIndicator(name string) (*Indicator, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("gpio pin %q not found", name)
	}
	return &Indicator{pin: p}, nil
}

func (i *Indicator) Set(on bool) {
	_ = i.pin.Out(gpio.Level(on))
}
