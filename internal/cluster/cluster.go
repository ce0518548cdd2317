// Package cluster drives a ring of LEDs through animated illumination
// patterns. The LEDs sit at evenly spaced angles around a conceptual circle;
// every tick a time-derived lead angle sweeps the circle and the active
// pattern maps each LED's position against it to a brightness. User settings
// (pattern, brightness, speed) persist through a SettingsStore.
package cluster

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Sink receives duty-cycle levels for the output channels. Writes are
// fire-and-forget; implementations live in internal/led.
type Sink interface {
	SetLevel(id int, duty uint8)
}

// Rand is the random source used by the stateful patterns. *rand.Rand
// satisfies it; tests inject a fixed seed for exact walk sequences.
type Rand interface {
	Intn(n int) int
}

// SettingsStore persists user settings between runs. Load returns whatever
// record is present; the cluster owns validation and defaulting.
type SettingsStore interface {
	Load() (Settings, error)
	Save(Settings) error
}

// Led is one output in the ring: a fixed angular position, the brightness
// computed on the last tick, and a scratch value owned by the active
// pattern.
type Led struct {
	Index      int
	Angle      float64
	Brightness int
	Output     int
	scratch    int
}

// Option adjusts cluster construction.
type Option func(*Cluster)

// WithLogger attaches a logger; the default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Cluster) { c.log = log }
}

// WithRand replaces the pattern random source.
func WithRand(r Rand) Option {
	return func(c *Cluster) { c.rng = r }
}

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cluster) { c.now = now }
}

// Cluster is the pattern engine. All methods are safe for concurrent use;
// the single drive loop and any number of control callers share one mutex
// around the settings read-modify-write sequence.
type Cluster struct {
	mu sync.Mutex

	leds  []Led
	sink  Sink
	store SettingsStore
	rng   Rand
	now   func() time.Time
	log   zerolog.Logger

	settings Settings
	periodMs float64
	start    time.Time
	running  bool
	lastRev  int64
}

// New builds a cluster over the given output channels, one LED per channel,
// spaced evenly around the circle in slice order. Settings load once here;
// an invalid or stale record resets to defaults and is written straight
// back.
func New(outputs []int, sink Sink, store SettingsStore, opts ...Option) *Cluster {
	c := &Cluster{
		leds:  make([]Led, len(outputs)),
		sink:  sink,
		store: store,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
		log:   zerolog.Nop(),
	}
	spacing := 360.0 / float64(len(outputs))
	for i, out := range outputs {
		c.leds[i] = Led{Index: i, Angle: spacing * float64(i), Output: out}
	}
	for _, opt := range opts {
		opt(c)
	}

	c.settings = c.loadSettings()
	c.periodMs = periodMs(c.settings.RevsPerMinute)
	c.start = c.now()
	c.running = true
	c.rollRaindrops()

	c.log.Info().
		Int("leds", len(c.leds)).
		Float64("spacing_deg", spacing).
		Stringer("pattern", c.settings.Pattern).
		Msg("cluster up")
	return c
}

func (c *Cluster) loadSettings() Settings {
	s, err := c.store.Load()
	if err != nil {
		c.log.Warn().Err(err).Msg("settings load failed")
		s = Settings{}
	}
	if s.Valid == 0 || s.SchemaVersion != SchemaVersion {
		s = defaultSettings()
		c.persistLocked(s)
		c.log.Info().Msg("persisted settings invalid, reset to defaults")
	}
	return s
}

func (c *Cluster) persistLocked(s Settings) {
	if err := c.store.Save(s); err != nil {
		c.log.Warn().Err(err).Msg("settings save failed")
	}
}

// Poll renders one tick: sample the clock, run the active pattern over every
// LED, scale, correct to duty cycle and emit. Call once per iteration of the
// drive loop. Does nothing while shut down.
func (c *Cluster) Poll() {
	c.step(c.now())
}

func (c *Cluster) step(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return
	}
	f := sampleClock(now, c.start, c.periodMs)
	pat := c.settings.Pattern
	if pat < 0 || pat >= PatternCount || patternFuncs[pat] == nil {
		return
	}
	if pat == Raindrop && f.Revolution != c.lastRev {
		c.rollRaindrops()
	}
	fn := patternFuncs[pat]
	for i := range c.leds {
		raw := fn(c, &c.leds[i], f)
		c.leds[i].Brightness = c.scale(forceRange(raw, 0, 100))
	}
	for i := range c.leds {
		c.sink.SetLevel(c.leds[i].Output, BrightnessToDutyCycle(c.leds[i].Brightness))
	}
	c.lastRev = f.Revolution
}

// scale applies the user brightness multiplier uniformly to a clamped
// pattern brightness.
func (c *Cluster) scale(brightness int) int {
	m := int(c.settings.BrightnessMultiplier)
	if m == MaxBrightness {
		return brightness
	}
	return int(math.Round(float64(m*brightness) / MaxBrightness))
}

// rollRaindrops re-rolls every LED's drop trigger angle for the next
// revolution. Caller holds the lock (or is still constructing).
func (c *Cluster) rollRaindrops() {
	for i := range c.leds {
		c.leds[i].scratch = c.rng.Intn(360 - raindropAngle)
	}
}

// StartUp restarts the animation cycle from angle zero, revolution zero, and
// renders one tick immediately.
func (c *Cluster) StartUp() {
	c.mu.Lock()
	c.start = c.now()
	c.running = true
	c.lastRev = 0
	c.rollRaindrops()
	c.mu.Unlock()
	c.log.Info().Msg("starting up")
	c.Poll()
}

// Shutdown stops the animation and drives every output to zero duty cycle.
func (c *Cluster) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
	for i := range c.leds {
		c.sink.SetLevel(c.leds[i].Output, 0)
	}
	c.log.Info().Msg("shut down")
}

// SetPattern applies an absolute pattern index, clamped to the valid range,
// and returns the applied index.
func (c *Cluster) SetPattern(index int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyPattern(Pattern(forceRange(index, 0, int(PatternCount)-1)))
}

// UpdatePattern steps the pattern selector by delta, wrapping at either end,
// and returns the applied index.
func (c *Cluster) UpdatePattern(delta int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := Pattern((int(c.settings.Pattern) + int(PatternCount) + delta) % int(PatternCount))
	return c.applyPattern(next)
}

func (c *Cluster) applyPattern(p Pattern) int {
	if p != c.settings.Pattern {
		c.settings.Pattern = p
		c.persistLocked(c.settings)
		c.log.Debug().Stringer("pattern", p).Msg("pattern changed")
	}
	return int(c.settings.Pattern)
}

// SetBrightnessPercent applies an absolute brightness as 0..100%, mapped
// onto the step range, and returns the applied percentage.
func (c *Cluster) SetBrightnessPercent(percent int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyBrightness(brightnessSteps(percent))
}

// UpdateBrightness nudges the brightness multiplier by whole steps and
// returns the applied percentage.
func (c *Cluster) UpdateBrightness(deltaSteps int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyBrightness(int(c.settings.BrightnessMultiplier) + deltaSteps)
}

func (c *Cluster) applyBrightness(steps int) int {
	v := int32(forceRange(steps, MinBrightness, MaxBrightness))
	if v != c.settings.BrightnessMultiplier {
		c.settings.BrightnessMultiplier = v
		c.persistLocked(c.settings)
		c.log.Debug().Int32("steps", v).Msg("brightness changed")
	}
	return brightnessPercent(int(c.settings.BrightnessMultiplier))
}

// SetSpeedPercent applies an absolute speed as 0..100% of the rpm span and
// returns the applied percentage.
func (c *Cluster) SetSpeedPercent(percent int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applySpeed(speedFromPercent(percent))
}

// UpdateSpeed nudges the revolution speed in 3 rpm steps and returns the
// applied percentage.
func (c *Cluster) UpdateSpeed(deltaSteps int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applySpeed(int(c.settings.RevsPerMinute) + deltaSteps*SpeedStep)
}

func (c *Cluster) applySpeed(rpm int) int {
	v := int32(forceRange(rpm, MinSpeed, MaxSpeed))
	if v != c.settings.RevsPerMinute {
		c.settings.RevsPerMinute = v
		c.periodMs = periodMs(v)
		c.persistLocked(c.settings)
		c.log.Debug().Int32("rpm", v).Msg("speed changed")
	}
	return speedPercent(int(c.settings.RevsPerMinute))
}

// Pattern returns the active pattern index.
func (c *Cluster) Pattern() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int(c.settings.Pattern)
}

// BrightnessPercent returns the current brightness as 0..100%.
func (c *Cluster) BrightnessPercent() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return brightnessPercent(int(c.settings.BrightnessMultiplier))
}

// SpeedPercent returns the current speed as 0..100% of the rpm span.
func (c *Cluster) SpeedPercent() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return speedPercent(int(c.settings.RevsPerMinute))
}

// Running reports whether the cluster is animating.
func (c *Cluster) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Leds returns a snapshot of the LED table as of the last tick.
func (c *Cluster) Leds() []Led {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Led, len(c.leds))
	copy(out, c.leds)
	return out
}
