// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 clips x to [-1,1] and scales it to signed 16-bit PCM.
func Float32ToInt16(x float32) int16 {
	x = Clamp(x, -1, 1)

	// 32767 keeps +1.0 inside the int16 range
	return int16(x * 32767.0)
}

// PCMScale returns the full-scale magnitude of signed PCM at bitDepth,
// i.e. 2^(bitDepth-1). Unknown depths fall back to 16-bit.
func PCMScale(bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return 128.0
	case 16:
		return 32768.0
	case 24:
		return 8388608.0
	case 32:
		return 2147483648.0
	default:
		return 32768.0
	}
}

// IntToFloat32 normalizes a signed PCM value of the given bit depth into [-1,1).
func IntToFloat32(v int, bitDepth int) float32 {
	return float32(v) / PCMScale(bitDepth)
}

// Float32ToPCM clips x to [-1,1] and scales it to signed PCM of bitDepth.
func Float32ToPCM(x float32, bitDepth int) int {
	x = Clamp(x, -1, 1)

	return int(float64(x) * (float64(PCMScale(bitDepth)) - 1))
}
