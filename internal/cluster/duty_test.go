package cluster

import "testing"

func TestDutyCycleEndpoints(t *testing.T) {
	if got := BrightnessToDutyCycle(0); got != 0 {
		t.Fatalf("0%% should be fully off, got %d", got)
	}
	if got := BrightnessToDutyCycle(100); got != 255 {
		t.Fatalf("100%% should be fully on, got %d", got)
	}
}

func TestDutyCycleClampsOutOfRange(t *testing.T) {
	if got := BrightnessToDutyCycle(-7); got != BrightnessToDutyCycle(0) {
		t.Fatalf("negative input should clamp to 0%%, got %d", got)
	}
	if got := BrightnessToDutyCycle(250); got != BrightnessToDutyCycle(100) {
		t.Fatalf("oversized input should clamp to 100%%, got %d", got)
	}
}

func TestDutyCycleMonotonicNonDecreasing(t *testing.T) {
	prev := BrightnessToDutyCycle(0)
	for b := 1; b <= 100; b++ {
		cur := BrightnessToDutyCycle(b)
		if cur < prev {
			t.Fatalf("duty decreased at %d%%: %d < %d", b, cur, prev)
		}
		prev = cur
	}
}

func TestDutyCycleRisesFasterAtTheTop(t *testing.T) {
	// The correction is roughly logarithmic: the top decile spans more duty
	// range than the bottom half.
	low := int(BrightnessToDutyCycle(50)) - int(BrightnessToDutyCycle(0))
	high := int(BrightnessToDutyCycle(100)) - int(BrightnessToDutyCycle(90))
	if high <= low {
		t.Fatalf("expected steeper top end: top decile %d, bottom half %d", high, low)
	}
}
