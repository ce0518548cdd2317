package cluster

import "time"

// Frame is one reading of the cycle clock: where the lead angle sits on the
// circle and how many full revolutions have completed since start.
type Frame struct {
	Angle      float64 // degrees, [0, 360)
	Revolution int64
}

// sampleClock derives the current frame from elapsed run time. The modulo is
// taken on whole milliseconds so repeated sampling cannot accumulate float
// drift; only the final angle division is fractional.
func sampleClock(now, start time.Time, periodMs float64) Frame {
	period := int64(periodMs)
	if period <= 0 {
		return Frame{}
	}
	elapsed := now.Sub(start).Milliseconds()
	return Frame{
		Angle:      (360.0 * float64(elapsed%period)) / periodMs,
		Revolution: elapsed / period,
	}
}
