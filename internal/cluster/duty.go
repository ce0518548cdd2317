package cluster

// brightnessToDuty maps a whole-percentage brightness to the equivalent 8-bit
// duty cycle. Apparent brightness is closer to logarithmic than linear, so
// the values rise logarithmically. 101 entries, zero to one hundred
// inclusive.
var brightnessToDuty = [101]uint8{
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9,
	10, 12, 13, 14, 15, 16, 17, 18, 20, 21,
	22, 23, 24, 26, 27, 28, 30, 31, 32, 33,
	35, 36, 38, 39, 40, 42, 43, 45, 46, 48,
	49, 51, 53, 54, 56, 57, 59, 61, 63, 64,
	66, 68, 70, 72, 74, 76, 78, 80, 82, 84,
	86, 88, 90, 93, 95, 97, 100, 102, 105, 107,
	110, 113, 116, 118, 121, 124, 128, 131, 134, 137,
	141, 145, 148, 152, 156, 160, 165, 169, 174, 179,
	184, 189, 195, 201, 207, 214, 221, 229, 237, 245, 255,
}

// BrightnessToDutyCycle returns the output duty cycle for a brightness
// percentage. Input outside [0,100] clamps to the nearest bound.
func BrightnessToDutyCycle(brightness int) uint8 {
	return brightnessToDuty[forceRange(brightness, 0, 100)]
}
