package cluster

import (
	"testing"
	"time"
)

func TestSampleClockAngleAndRevolution(t *testing.T) {
	start := time.Unix(0, 0)
	period := periodMs(DefaultSpeed) // 18 rpm -> 3333.33ms

	f := sampleClock(start, start, period)
	if f.Angle != 0 || f.Revolution != 0 {
		t.Fatalf("expected zero frame at start, got %+v", f)
	}

	quarter := start.Add(833 * time.Millisecond)
	f = sampleClock(quarter, start, period)
	if f.Angle < 89 || f.Angle > 91 {
		t.Fatalf("expected ~90 degrees after a quarter revolution, got %f", f.Angle)
	}
	if f.Revolution != 0 {
		t.Fatalf("expected revolution 0, got %d", f.Revolution)
	}
}

func TestSampleClockPeriodic(t *testing.T) {
	start := time.Unix(0, 0)
	period := 1000.0 // 60 rpm
	base := start.Add(250 * time.Millisecond)

	ref := sampleClock(base, start, period)
	for k := int64(1); k <= 5; k++ {
		f := sampleClock(base.Add(time.Duration(k)*time.Second), start, period)
		if f.Angle != ref.Angle {
			t.Fatalf("angle not periodic at k=%d: %f != %f", k, f.Angle, ref.Angle)
		}
		if f.Revolution != ref.Revolution+k {
			t.Fatalf("revolution at k=%d: got %d, want %d", k, f.Revolution, ref.Revolution+k)
		}
	}
}

func TestSampleClockAngleStaysInRange(t *testing.T) {
	start := time.Unix(0, 0)
	period := periodMs(MaxSpeed)
	for ms := 0; ms < 5000; ms += 7 {
		f := sampleClock(start.Add(time.Duration(ms)*time.Millisecond), start, period)
		if f.Angle < 0 || f.Angle >= 360 {
			t.Fatalf("angle out of range at %dms: %f", ms, f.Angle)
		}
	}
}

func TestSampleClockRestart(t *testing.T) {
	start := time.Unix(100, 0)
	f := sampleClock(start, start, 1000)
	if f.Angle != 0 || f.Revolution != 0 {
		t.Fatalf("restart should begin a fresh cycle, got %+v", f)
	}
}
