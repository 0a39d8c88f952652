// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams with github.com/jfreymuth/oggvorbis.
//
// Samples are decoded as float32 and handed through without conversion, so
// the returned audio.Source keeps the stream's channel count and rate.
// Multi-channel output is interleaved:
//
//	[L0, R0, L1, R1, ...]
//
// The input does not need to seek.
package vorbis
