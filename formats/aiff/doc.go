// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files with github.com/go-audio/aiff.
//
// Signed integer PCM at 8, 16, 24 or 32 bits is supported, with any channel
// count and sample rate. Samples come out of the returned audio.Source as
// float32 in [-1, 1).
//
//	f, _ := os.Open("break.aif")
//	src, err := aiff.Decoder{}.Decode(f)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//		// not an AIFF container
//	}
package aiff
