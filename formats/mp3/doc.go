// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 streams with github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces interleaved stereo 16-bit PCM, so the returned
// audio.Source reports two channels even for mono files. Fold it down with
// audio.NewMonoMixer when a single channel is wanted:
//
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//		return err
//	}
//	mono := audio.NewMonoMixer(src)
//
// The input does not need to seek.
package mp3
