// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 clamps x to [-1,1] and scales it to a signed 16-bit sample.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// 32767 keeps +1.0 from overflowing
	return int16(x * 32767.0)
}

// Int16ToFloat32 maps a signed 16-bit sample to [-1,1).
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768.0
}

// IntToFloat32 normalizes an integer PCM sample of the given bit depth.
// Unknown depths are treated as 16-bit.
func IntToFloat32(v int, bitDepth int) float32 {
	return float32(v) / FullScale(bitDepth)
}

// FullScale returns the magnitude of the most negative sample at bitDepth.
func FullScale(bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return 128.0
	case 24:
		return 8388608.0
	case 32:
		return 2147483648.0
	default:
		return 32768.0
	}
}
