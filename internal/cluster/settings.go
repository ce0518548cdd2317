package cluster

import "math"

// Pattern selects one of the cluster's animation modes.
type Pattern int32

const (
	JustOn Pattern = iota
	ChaseClockwise
	ChaseAntiClockwise
	ChaseBoth
	WaveClockwise
	WaveAntiClockwise
	Throb
	Throb2
	Heartbeat
	Raindrop
	Flames
	Static

	PatternCount
)

var patternNames = [PatternCount]string{
	JustOn:             "just-on",
	ChaseClockwise:     "chase-cw",
	ChaseAntiClockwise: "chase-acw",
	ChaseBoth:          "chase-both",
	WaveClockwise:      "wave-cw",
	WaveAntiClockwise:  "wave-acw",
	Throb:              "throb",
	Throb2:             "throb2",
	Heartbeat:          "heartbeat",
	Raindrop:           "raindrop",
	Flames:             "flames",
	Static:             "static",
}

func (p Pattern) String() string {
	if p < 0 || p >= PatternCount {
		return "unknown"
	}
	return patternNames[p]
}

// Brightness is stored as a step count; the external API speaks percentages.
const (
	MinBrightness     = 1
	MaxBrightness     = 20
	DefaultBrightness = 18
)

// Speed is revolutions per minute of the lead angle.
const (
	MinSpeed     = 6
	MaxSpeed     = 60
	SpeedStep    = 3
	DefaultSpeed = 18
)

// SchemaVersion tags the persisted record layout. Records carrying any other
// version reset to defaults on load.
const SchemaVersion int32 = 1

// Settings is the persisted user state. All fields are fixed-width so the
// record can live in a raw byte region; see internal/nonvol.
type Settings struct {
	SchemaVersion        int32
	Pattern              Pattern
	BrightnessMultiplier int32
	RevsPerMinute        int32
	Valid                byte
}

func defaultSettings() Settings {
	return Settings{
		SchemaVersion:        SchemaVersion,
		Pattern:              ChaseClockwise,
		BrightnessMultiplier: DefaultBrightness,
		RevsPerMinute:        DefaultSpeed,
		Valid:                1,
	}
}

func forceRange(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func periodMs(rpm int32) float64 {
	return (1000.0 * 60.0) / float64(rpm)
}

// brightnessPercent maps a step count to the external 0..100% value. The
// minimum step lands at 5%: a step is a twentieth of full scale.
func brightnessPercent(steps int) int {
	return steps * 100 / MaxBrightness
}

func brightnessSteps(percent int) int {
	return forceRange(int(math.Round(float64(percent)*MaxBrightness/100.0)), MinBrightness, MaxBrightness)
}

// speedPercent maps rpm onto 0..100% of the [MinSpeed, MaxSpeed] span.
func speedPercent(rpm int) int {
	return int(math.Round(float64(rpm-MinSpeed) * 100.0 / float64(MaxSpeed-MinSpeed)))
}

func speedFromPercent(percent int) int {
	return MinSpeed + int(math.Round(float64(percent)*float64(MaxSpeed-MinSpeed)/100.0))
}
