package panel_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/coreman2200/funtimes-lumenring/internal/panel"
)

// fakeControls records every call and echoes a recognizable value per method.
type fakeControls struct {
	calls []string
}

func (f *fakeControls) UpdatePattern(delta int) int {
	f.calls = append(f.calls, "pattern")
	return 10 + delta
}

func (f *fakeControls) UpdateBrightness(delta int) int {
	f.calls = append(f.calls, "brightness")
	return 20 + delta
}

func (f *fakeControls) UpdateSpeed(delta int) int {
	f.calls = append(f.calls, "speed")
	return 30 + delta
}

func (f *fakeControls) StartUp()  { f.calls = append(f.calls, "startup") }
func (f *fakeControls) Shutdown() { f.calls = append(f.calls, "shutdown") }

type fakeIndicator struct{ on bool }

func (f *fakeIndicator) Set(on bool) { f.on = on }

func newPanel() (*panel.Panel, *fakeControls, map[panel.Selection]*fakeIndicator) {
	ctrl := &fakeControls{}
	inds := map[panel.Selection]*fakeIndicator{
		panel.SelectPattern:    {},
		panel.SelectBrightness: {},
		panel.SelectSpeed:      {},
	}
	wired := map[panel.Selection]panel.Indicator{}
	for s, ind := range inds {
		wired[s] = ind
	}
	return panel.New(ctrl, wired, zerolog.Nop()), ctrl, inds
}

func TestPanelStartsOnPatternSelection(t *testing.T) {
	p, _, inds := newPanel()
	assert.Equal(t, panel.SelectPattern, p.Selected())
	assert.True(t, p.On())
	assert.True(t, inds[panel.SelectPattern].on)
	assert.False(t, inds[panel.SelectBrightness].on)
	assert.False(t, inds[panel.SelectSpeed].on)
}

func TestSelectCyclesAndWraps(t *testing.T) {
	p, _, inds := newPanel()

	p.Select()
	assert.Equal(t, panel.SelectBrightness, p.Selected())
	assert.True(t, inds[panel.SelectBrightness].on)
	assert.False(t, inds[panel.SelectPattern].on)

	p.Select()
	assert.Equal(t, panel.SelectSpeed, p.Selected())

	p.Select()
	assert.Equal(t, panel.SelectPattern, p.Selected(), "selection must wrap")
}

func TestUpDownRouteToSelectedSetting(t *testing.T) {
	p, ctrl, _ := newPanel()

	assert.Equal(t, 11, p.Up())
	assert.Equal(t, 9, p.Down())

	p.Select()
	assert.Equal(t, 21, p.Up())

	p.Select()
	assert.Equal(t, 29, p.Down())

	assert.Equal(t, []string{"pattern", "pattern", "brightness", "speed"}, ctrl.calls)
}

func TestTogglePowerAlternates(t *testing.T) {
	p, ctrl, _ := newPanel()

	p.TogglePower()
	assert.False(t, p.On())

	p.TogglePower()
	assert.True(t, p.On())

	assert.Equal(t, []string{"shutdown", "startup"}, ctrl.calls)
}
