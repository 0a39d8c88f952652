// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"
	"time"
)

// maxEmptyReads bounds how many (0, nil) reads ReadAll tolerates in a row.
const maxEmptyReads = 100

// Buffer is a fully decoded, de-interleaved block of audio held in memory.
//
// A Buffer is immutable once built and safe for concurrent reads. Sample
// does no bounds checking beyond the runtime's own: callers index within
// [0, Channels()) x [0, Len()).
type Buffer struct {
	sampleRate float64
	data       [][]float32
	length     int
}

// NewBuffer builds a Buffer from per-channel sample slices. The Buffer takes
// ownership of channels; callers must not modify them afterwards.
func NewBuffer(sampleRate float64, channels [][]float32) (*Buffer, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	if len(channels) == 0 {
		return nil, ErrNoChannels
	}

	length := len(channels[0])
	for ch, data := range channels[1:] {
		if len(data) != length {
			return nil, fmt.Errorf("%w: channel %d has %d samples, channel 0 has %d",
				ErrChannelLength, ch+1, len(data), length)
		}
	}

	return &Buffer{
		sampleRate: sampleRate,
		data:       channels,
		length:     length,
	}, nil
}

// NewBufferInterleaved de-interleaves samples into a new Buffer.
// A trailing partial frame is dropped.
func NewBufferInterleaved(sampleRate float64, channels int, samples []float32) (*Buffer, error) {
	if channels < 1 {
		return nil, ErrNoChannels
	}

	frames := len(samples) / channels
	data := make([][]float32, channels)
	for ch := range data {
		data[ch] = make([]float32, frames)
	}

	for f := range frames {
		base := f * channels
		for ch := range channels {
			data[ch][f] = samples[base+ch]
		}
	}

	return NewBuffer(sampleRate, data)
}

// ReadAll drains src into a Buffer. It does not close src.
func ReadAll(src Source) (*Buffer, error) {
	channels := src.Channels()
	if channels < 1 {
		return nil, ErrNoChannels
	}

	size := src.BufSize()
	if size < channels {
		size = 4096
	}
	size -= size % channels

	chunk := make([]float32, size)
	interleaved := make([]float32, 0, size)
	empty := 0

	for {
		n, err := src.ReadSamples(chunk)
		if n > 0 {
			interleaved = append(interleaved, chunk[:n]...)
			empty = 0
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading source: %w", err)
		}

		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return nil, ErrNoProgress
			}
		}
	}

	return NewBufferInterleaved(float64(src.SampleRate()), channels, interleaved)
}

// Channels, Len and SampleRate report 0 on a nil Buffer, so a failed load
// handed to a cloud reads as an empty source.
func (b *Buffer) Channels() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return b.length
}

func (b *Buffer) SampleRate() float64 {
	if b == nil {
		return 0
	}
	return b.sampleRate
}

// Duration is the playback length at the buffer's own sample rate.
func (b *Buffer) Duration() time.Duration {
	if b == nil {
		return 0
	}
	return time.Duration(float64(b.length) / b.sampleRate * float64(time.Second))
}

// Sample returns the value of channel ch at frame i.
func (b *Buffer) Sample(ch, i int) float32 {
	return b.data[ch][i]
}

// Reader streams the buffer back out as an interleaved Source, so a loaded
// buffer can be fed through a Resampler or MonoMixer again.
func (b *Buffer) Reader() Source {
	return &bufferReader{buf: b}
}

type bufferReader struct {
	buf *Buffer
	pos int
}

func (r *bufferReader) SampleRate() int { return int(math.Round(r.buf.sampleRate)) }
func (r *bufferReader) Channels() int   { return r.buf.Channels() }
func (r *bufferReader) BufSize() int    { return 4096 - 4096%r.buf.Channels() }
func (r *bufferReader) Close() error    { return nil }

func (r *bufferReader) ReadSamples(dst []float32) (int, error) {
	channels := r.buf.Channels()
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if r.pos >= r.buf.length {
		return 0, io.EOF
	}

	frames := min(len(dst)/channels, r.buf.length-r.pos)
	for f := range frames {
		for ch := range channels {
			dst[f*channels+ch] = r.buf.data[ch][r.pos+f]
		}
	}
	r.pos += frames

	if r.pos >= r.buf.length {
		return frames * channels, io.EOF
	}

	return frames * channels, nil
}
