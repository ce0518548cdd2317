// Package input handles the lamp's physical buttons: debounced level
// polling with toggle and long-hold callbacks.
package input

import (
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Pin reads a digital input level.
type Pin interface {
	Read() bool
}

// PinFunc adapts a plain function to Pin.
type PinFunc func() bool

func (f PinFunc) Read() bool { return f() }

// GPIOPin adapts a periph input pin.
func GPIOPin(p gpio.PinIn) Pin {
	return PinFunc(func() bool { return bool(p.Read()) })
}

// ToggleFunc receives state changes: the new level and how long the previous
// level held.
type ToggleFunc func(state bool, held time.Duration)

// TimeoutFunc fires once per press when the level has been held high past
// the configured duration.
type TimeoutFunc func(held time.Duration)

// ButtonOption adjusts button construction.
type ButtonOption func(*Button)

// WithTimeout attaches a long-hold callback.
func WithTimeout(after time.Duration, fn TimeoutFunc) ButtonOption {
	return func(b *Button) {
		b.timeoutAfter = after
		b.timeout = fn
	}
}

// WithTimeSource replaces the clock and debounce sleep, for tests.
func WithTimeSource(now func() time.Time, sleep func(time.Duration)) ButtonOption {
	return func(b *Button) {
		b.now = now
		b.sleep = sleep
	}
}

// Button polls a digital input, removing contact bounce by reading twice
// with a short delay and acting only when both reads agree.
type Button struct {
	pin    Pin
	toggle ToggleFunc

	timeout      TimeoutFunc
	timeoutAfter time.Duration

	debounce time.Duration
	now      func() time.Time
	sleep    func(time.Duration)

	last       bool
	lastChange time.Time
	armTimeout bool
}

func NewButton(pin Pin, toggle ToggleFunc, opts ...ButtonOption) *Button {
	b := &Button{
		pin:          pin,
		toggle:       toggle,
		timeoutAfter: 10 * time.Second,
		debounce:     10 * time.Millisecond,
		now:          time.Now,
		sleep:        time.Sleep,
		armTimeout:   true,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.last = pin.Read()
	b.lastChange = b.now()
	return b
}

// Poll samples the input once; call it from the drive loop.
func (b *Button) Poll() {
	now := b.now()
	a := b.pin.Read()
	b.sleep(b.debounce)
	if a != b.pin.Read() {
		return // bounced, try again next loop
	}
	held := now.Sub(b.lastChange)
	if a != b.last {
		if b.toggle != nil {
			b.toggle(a, held)
		}
		b.last = a
		b.lastChange = now
		if b.last {
			b.armTimeout = true
		}
	} else if b.armTimeout && b.last && held >= b.timeoutAfter {
		b.armTimeout = false
		if b.timeout != nil {
			b.timeout(held)
		}
	}
}

// State returns the level from the last poll.
func (b *Button) State() bool { return b.last }
