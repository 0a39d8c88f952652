// SPDX-License-Identifier: EPL-2.0

// Package audgrain ties the granular engine to files on disk.
//
// Load and LoadFile turn any audio.Source into an in-memory audio.Buffer,
// optionally folded to mono and resampled on the way, ready for
// granular.Cloud.SetAudioSource:
//
//	buf, err := audgrain.LoadFile("voice.ogg", audgrain.WithSampleRate(48000))
//	if err != nil {
//		return err
//	}
//
//	cloud := granular.NewCloud(granular.WithCloudSize(32))
//	cloud.SetAudioSource(buf)
//	cloud.SetCentroidSample(buf.Len() / 2)
//
// Render and RenderWAV run a cloud offline, for tests and batch jobs.
//
// # Supported Formats
//
// DefaultRegistry knows the decoders under formats/:
//   - WAV (PCM 16, 24 and 32-bit) via formats/wav
//   - AIFF via formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//
// Real-time playback and transport live under internal/ and are driven by
// cmd/granulize.
package audgrain
