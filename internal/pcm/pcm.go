// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts go-audio's integer PCM decoders to float sample streams.
// The wav and aiff decoders both hand out go-audio IntBuffers; Source turns
// either into interleaved float32 in [-1, 1).
package pcm

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audgrain/utils"
)

var (
	ErrNoFormat         = errors.New("pcm: decoder reported no format")
	ErrUnsupportedDepth = errors.New("pcm: unsupported bit depth")
)

// Reader is what Source needs from a go-audio decoder.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source streams an integer PCM Reader as float32 samples.
type Source struct {
	dec      Reader
	format   *goaudio.Format
	bitDepth int
	buf      *goaudio.IntBuffer
}

// BufSize is the default read size in samples.
const BufSize = 4096

// SupportedDepth reports whether bitDepth can be normalized.
func SupportedDepth(bitDepth int) bool {
	switch bitDepth {
	case 8, 16, 24, 32:
		return true
	default:
		return false
	}
}

// NewSource wraps dec. format and bitDepth come from the decoder's header.
func NewSource(dec Reader, format *goaudio.Format, bitDepth int) (*Source, error) {
	if format == nil || format.NumChannels < 1 || format.SampleRate < 1 {
		return nil, ErrNoFormat
	}

	if !SupportedDepth(bitDepth) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedDepth, bitDepth)
	}

	size := BufSize - BufSize%format.NumChannels

	return &Source{
		dec:      dec,
		format:   format,
		bitDepth: bitDepth,
		buf: &goaudio.IntBuffer{
			Format:         format,
			Data:           make([]int, size),
			SourceBitDepth: bitDepth,
		},
	}, nil
}

func (s *Source) SampleRate() int { return s.format.SampleRate }
func (s *Source) Channels() int   { return s.format.NumChannels }
func (s *Source) BufSize() int    { return cap(s.buf.Data) }
func (s *Source) BitDepth() int   { return s.bitDepth }
func (s *Source) Close() error    { return nil }

// ReadSamples fills dst with interleaved samples. go-audio decoders signal
// the end of the data by returning no samples, which becomes io.EOF.
func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if cap(s.buf.Data) < len(dst) {
		s.buf.Data = make([]int, len(dst))
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("reading pcm: %w", err)
	}

	n = min(n, len(dst))
	if n == 0 {
		return 0, io.EOF
	}

	scale := utils.PCMScale(s.bitDepth)
	for i, v := range s.buf.Data[:n] {
		dst[i] = float32(v) / scale
	}

	if err != nil {
		return n, io.EOF
	}

	return n, nil
}

// Seekable returns r as an io.ReadSeeker, buffering it in memory when it
// cannot seek on its own. go-audio decoders need to seek between chunks.
func Seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}

	return bytes.NewReader(data), nil
}
