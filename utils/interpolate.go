// SPDX-License-Identifier: EPL-2.0

package utils

// CubicInterpolate performs Catmull-Rom interpolation.
// x is the fractional position between y1 and y2 (0 <= x <= 1).
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return a0*x*x*x + a1*x*x + a2*x + a3
}

// RampGain is the multiplier applied to sample i of an n sample linear ramp
// running from volume a to volume b: (a*(n-i) + b*i) / n.
func RampGain(a, b float32, i, n int) float32 {
	return (a*float32(n-i) + b*float32(i)) / float32(n)
}

// Ramp scales data in place by a linear envelope from a to b.
func Ramp(data []float32, a, b float32) {
	n := len(data)
	for i := range data {
		data[i] *= RampGain(a, b, i, n)
	}
}
