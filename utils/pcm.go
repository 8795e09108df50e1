// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Clamp limits x to [-1, 1]. NaN becomes silence.
func Clamp(x float32) float32 {
	if math.IsNaN(float64(x)) {
		return 0
	}
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

// Float32ToInt16 quantises a sample to signed 16-bit PCM as
// round(clamp(x) * 32767). The scale is symmetric, so -1 maps to -32767.
func Float32ToInt16(x float32) int16 {
	return int16(math.Round(float64(Clamp(x)) * math.MaxInt16))
}

// Int16ToFloat32 is the inverse of Float32ToInt16: s/32767, with -32768
// clamped to -1.
func Int16ToFloat32(s int16) float32 {
	return IntToFloat32(int(s), 16)
}

// IntToFloat32 normalises a signed integer sample of the given bit depth
// by its largest positive value, 2^(bitDepth-1)-1, so full scale decodes
// to exactly 1 and matches the export quantiser. The most negative code is
// clamped to -1. Unknown depths are treated as 16-bit.
func IntToFloat32(s int, bitDepth int) float32 {
	if bitDepth <= 0 || bitDepth > 32 {
		bitDepth = 16
	}
	v := float64(s) / float64(int64(1)<<(bitDepth-1)-1)
	if v < -1 {
		v = -1
	}
	return float32(v)
}
