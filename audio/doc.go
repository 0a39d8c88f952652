// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample containers and stream primitives the
// granular engine is fed from.
//
// # Streams and Buffers
//
// A Source is a pull-based stream of interleaved float32 samples in [-1, 1],
// as produced by the decoders under formats/. A Buffer is the fully decoded,
// de-interleaved, immutable form the grain engine reads from at random
// positions:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	buf, err := audio.ReadAll(src)
//	// buf.Sample(ch, i) for 0 <= ch < buf.Channels(), 0 <= i < buf.Len()
//
// Buffer.Reader turns a Buffer back into a Source.
//
// # Stream Processing
//
// Resampler changes the sample rate with cubic (Catmull-Rom) interpolation
// and MonoMixer averages all channels into one:
//
//	res, _ := audio.NewResampler(src, 48000)
//	mono := audio.NewMonoMixer(res)
//	buf, _ := audio.ReadAll(mono)
//
// # Test Tones
//
// Tone is a small oscillator with pluggable Waveform shapes (Sine, Square,
// Saw, Triangle). NewToneBuffer renders it into a Buffer so the engine can be
// exercised without any file on disk.
//
// # Format Registry
//
// Registry maps file extensions to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, ok := registry.Get(".WAV") // keys are case-insensitive
//
// # Error Handling
//
// Sources return io.EOF when no more data is available; other errors are
// wrapped with context and can be matched with errors.Is against the
// sentinel values in this package.
package audio
