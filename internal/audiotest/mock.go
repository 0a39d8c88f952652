// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds fixtures shared by the package tests. It mirrors
// the audio.Source method set without importing audio, so audio's own tests
// can use it.
package audiotest

import (
	"errors"
	"io"
	"math"
)

// WaveFunc returns the value of channel ch at frame i.
type WaveFunc func(i, ch int) float32

// MockSource streams frames generated by a WaveFunc.
type MockSource struct {
	sampleRate int
	channels   int
	frames     int
	pos        int
	wave       WaveFunc
	failAfter  int // frames before ReadSamples starts failing, -1 never
	closed     bool
}

// ErrMock is returned by sources built with NewFailingSource.
var ErrMock = errors.New("audiotest: mock read failure")

func NewMockSource(sampleRate, channels, frames int, wave WaveFunc) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		wave:       wave,
		failAfter:  -1,
	}
}

// NewSilentSource yields zeros.
func NewSilentSource(sampleRate, channels, frames int) *MockSource {
	return NewConstantSource(sampleRate, channels, frames, 0)
}

// NewConstantSource yields value on every channel.
func NewConstantSource(sampleRate, channels, frames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 { return value })
}

// NewSineSource yields a sine at frequency Hz on every channel.
func NewSineSource(sampleRate, channels, frames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(i, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * frequency * float64(i) / float64(sampleRate)))
	})
}

// NewRampSource yields Ramp values, so every frame is distinguishable.
func NewRampSource(sampleRate, channels, frames int) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(i, ch int) float32 {
		return Ramp(i, ch, frames)
	})
}

// NewFailingSource streams good frames and then returns ErrMock.
func NewFailingSource(sampleRate, channels, goodFrames int) *MockSource {
	s := NewSilentSource(sampleRate, channels, goodFrames+1)
	s.failAfter = goodFrames
	return s
}

// Ramp maps frame i of n to a value in [0, 1), negated on odd channels.
func Ramp(i, ch, n int) float32 {
	v := float32(i) / float32(n)
	if ch%2 == 1 {
		return -v
	}
	return v
}

// Channels renders wave into per-channel slices, the layout audio.NewBuffer takes.
func Channels(channels, frames int, wave WaveFunc) [][]float32 {
	data := make([][]float32, channels)
	for ch := range data {
		data[ch] = make([]float32, frames)
		for i := range frames {
			data[ch][i] = wave(i, ch)
		}
	}
	return data
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

// Rewind starts the stream over.
func (m *MockSource) Rewind() { m.pos = 0 }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.failAfter >= 0 && m.pos >= m.failAfter {
		return 0, ErrMock
	}

	if m.pos >= m.frames {
		return 0, io.EOF
	}

	count := min(len(dst)/m.channels, m.frames-m.pos)
	if m.failAfter >= 0 {
		count = min(count, m.failAfter-m.pos)
	}

	for f := range count {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.wave(m.pos+f, ch)
		}
	}
	m.pos += count

	if m.pos >= m.frames {
		return count * m.channels, io.EOF
	}

	return count * m.channels, nil
}
