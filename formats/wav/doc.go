// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes WAV files.
//
// Decoder reads integer PCM at 16, 24 or 32 bits per sample, any channel
// count and any sample rate, through github.com/go-audio/wav. Chunks other
// than fmt and data are skipped. The resulting audio.Source yields float32
// samples in [-1, 1).
//
//	f, _ := os.Open("loop.wav")
//	src, err := wav.Decoder{}.Decode(f)
//	if errors.Is(err, wav.ErrUnsupportedBitDepth) {
//		// 8-bit or odd depths
//	}
//
// Two writers are provided. WriteWAV16 writes a whole 16-bit file to any
// io.Writer in one go. Writer streams float samples at 16, 24 or 32 bits into
// an io.WriteSeeker and fixes up the header on Close:
//
//	w, _ := wav.NewWriter(f, 48000, 2, 24)
//	for more {
//		_ = w.Write(block)
//	}
//	_ = w.Close()
package wav
