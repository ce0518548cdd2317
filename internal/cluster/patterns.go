package cluster

import "math"

// patternFunc computes one LED's raw brightness percentage for the current
// frame. Results may land outside [0,100]; the poll pass clamps them before
// global scaling.
type patternFunc func(c *Cluster, led *Led, f Frame) int

// patternFuncs dispatches the active pattern. A selector outside the array,
// or a nil entry, renders nothing for the tick.
var patternFuncs = [PatternCount]patternFunc{
	JustOn:             justOnMode,
	ChaseClockwise:     chaseModeCw,
	ChaseAntiClockwise: chaseModeAcw,
	ChaseBoth:          chaseModeBoth,
	WaveClockwise:      waveModeCw,
	WaveAntiClockwise:  waveModeAcw,
	Throb:              throbMode,
	Throb2:             throb2Mode,
	Heartbeat:          heartbeatMode,
	Raindrop:           raindropMode,
	Flames:             flamesMode,
	Static:             staticMode,
}

// Raindrop geometry: each drop ramps up over 3 degrees and back down over
// the remaining 9.
const (
	raindropAngle = 12
	rampUpAngle   = 3
	rampDownAngle = raindropAngle - rampUpAngle
)

func justOnMode(*Cluster, *Led, Frame) int {
	return 100
}

// chaseBrightness fades linearly with angular distance behind the leader.
func chaseBrightness(angle int) int {
	return int(math.Round((100.0 * float64(360-angle)) / 360.0))
}

func chaseModeCw(_ *Cluster, led *Led, f Frame) int {
	angle := int(f.Angle+360.0-led.Angle) % 360
	return chaseBrightness(angle)
}

func chaseModeAcw(_ *Cluster, led *Led, f Frame) int {
	angle := int(f.Angle+360.0+led.Angle) % 360
	return chaseBrightness(angle)
}

func chaseModeBoth(_ *Cluster, led *Led, f Frame) int {
	cw := int(f.Angle+360.0-led.Angle) % 360
	acw := int(f.Angle+360.0+led.Angle) % 360
	return chaseBrightness(min(cw, acw))
}

// waveFold folds an angle difference into wrap-around distance [-180, 180]
// and takes its magnitude.
func waveFold(angle int) int {
	return abs((angle+180)%360 - 180)
}

func waveModeCw(_ *Cluster, led *Led, f Frame) int {
	angle := waveFold(int(f.Angle - led.Angle))
	return int(math.Round((100.0 * float64(180-angle)) / 180.0))
}

func waveModeAcw(_ *Cluster, led *Led, f Frame) int {
	angle := waveFold(360 - int(f.Angle-led.Angle))
	return int(math.Round((100.0 * float64(180-angle)) / 180.0))
}

// throbPhase doubles the lead angle's distance from the half-revolution
// point, giving two pulses per revolution once pushed through a sinusoid.
func throbPhase(f Frame) float64 {
	v := 2 * math.Round(math.Abs(180.0-f.Angle))
	return v * math.Pi / 180.0
}

func throbMode(_ *Cluster, _ *Led, f Frame) int {
	return int(math.Round((1 + math.Cos(throbPhase(f))) * 50))
}

// throb2Mode is the sine twin of throbMode. The curve came from a typo in
// the cosine formula and stayed because it looked good; it is deliberate
// now.
func throb2Mode(_ *Cluster, _ *Led, f Frame) int {
	return int(math.Round((1 + math.Sin(throbPhase(f))) * 50))
}

func heartbeatMode(_ *Cluster, _ *Led, f Frame) int {
	delta := math.Min(math.Abs(225.0-f.Angle), math.Abs(135.0-f.Angle))
	pct := 100.0 * delta / 135.0
	return int(math.Round((100.0-pct)*2.0 - 100.0))
}

func raindropMode(_ *Cluster, led *Led, f Frame) int {
	position := int(f.Angle) - led.scratch
	switch {
	case position >= 0 && position < rampUpAngle:
		return int(math.Round((100.0 * float64(position)) / rampUpAngle))
	case position >= rampUpAngle && position < raindropAngle:
		return 100 - int(math.Round((100.0*float64(position-rampUpAngle))/rampDownAngle))
	default:
		return 0
	}
}

// flamesMode runs a bounded random walk per LED; the walk value persists in
// scratch across ticks so the flicker wanders rather than jumps.
func flamesMode(c *Cluster, led *Led, _ Frame) int {
	led.scratch = forceRange(led.scratch+randRange(c.rng, -4, 4), 0, 100)
	return led.scratch
}

// staticMode layers fresh per-tick noise on top of the flames walk. The
// scratch value keeps only the walk; the noise never persists.
func staticMode(c *Cluster, led *Led, f Frame) int {
	flamesMode(c, led, f)
	return forceRange(led.scratch+randRange(c.rng, -10, 40), 0, 100)
}

// randRange draws uniformly from [lo, hi).
func randRange(r Rand, lo, hi int) int {
	return lo + r.Intn(hi-lo)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
