// Package panel wires the lamp's three-button control surface to the
// cluster's settings API: a select button cycles the adjustable setting,
// up/down nudge it, and a long hold on select toggles the lamp on and off.
package panel

import "github.com/rs/zerolog"

// Selection is the setting the up/down buttons currently adjust.
type Selection int

const (
	SelectPattern Selection = iota
	SelectBrightness
	SelectSpeed

	selectionCount
)

func (s Selection) String() string {
	switch s {
	case SelectPattern:
		return "pattern"
	case SelectBrightness:
		return "brightness"
	case SelectSpeed:
		return "speed"
	}
	return "unknown"
}

// Indicator shows whether a setting is the active selection.
type Indicator interface {
	Set(on bool)
}

// Controls is the slice of the cluster API the panel drives.
type Controls interface {
	UpdatePattern(delta int) int
	UpdateBrightness(deltaSteps int) int
	UpdateSpeed(deltaSteps int) int
	StartUp()
	Shutdown()
}

// Panel tracks the active selection and routes button events to the
// controls. Not safe for concurrent use; drive it from the same loop as the
// buttons.
type Panel struct {
	controls   Controls
	indicators map[Selection]Indicator
	sel        Selection
	on         bool
	log        zerolog.Logger
}

// New starts with the pattern selection active and the lamp on.
func New(controls Controls, indicators map[Selection]Indicator, log zerolog.Logger) *Panel {
	p := &Panel{
		controls:   controls,
		indicators: indicators,
		on:         true,
		log:        log,
	}
	p.refresh()
	return p
}

// Select advances to the next adjustable setting.
func (p *Panel) Select() {
	p.sel = (p.sel + 1) % selectionCount
	p.log.Debug().Stringer("selection", p.sel).Msg("selection changed")
	p.refresh()
}

// Selected returns the active selection.
func (p *Panel) Selected() Selection { return p.sel }

// Up nudges the selected setting one step up and returns the applied value.
func (p *Panel) Up() int { return p.nudge(1) }

// Down nudges the selected setting one step down and returns the applied
// value.
func (p *Panel) Down() int { return p.nudge(-1) }

func (p *Panel) nudge(delta int) int {
	var applied int
	switch p.sel {
	case SelectPattern:
		applied = p.controls.UpdatePattern(delta)
	case SelectBrightness:
		applied = p.controls.UpdateBrightness(delta)
	case SelectSpeed:
		applied = p.controls.UpdateSpeed(delta)
	}
	p.log.Debug().Stringer("selection", p.sel).Int("applied", applied).Msg("adjusted")
	return applied
}

// TogglePower flips the lamp between running and shut down. Wire it to the
// select button's long-hold callback.
func (p *Panel) TogglePower() {
	if p.on {
		p.controls.Shutdown()
	} else {
		p.controls.StartUp()
	}
	p.on = !p.on
	p.log.Info().Bool("on", p.on).Msg("power toggled")
}

// On reports whether the panel believes the lamp is running.
func (p *Panel) On() bool { return p.on }

func (p *Panel) refresh() {
	for s, ind := range p.indicators {
		ind.Set(s == p.sel)
	}
}
