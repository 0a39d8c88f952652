// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audgrain/audio"
)

// oggReader is the part of oggvorbis.Reader the source uses.
type oggReader interface {
	SampleRate() int
	Channels() int
	// Read fills p with interleaved samples and returns how many values,
	// not frames, it wrote.
	Read(p []float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
}

func newSource(dec oggReader) *source {
	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 - 4096%s.channels }

// ReadSamples decodes straight into dst.
func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	if len(dst) == 0 {
		return 0, nil
	}

	n, err := s.dec.Read(dst)
	n -= n % s.channels

	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("reading vorbis: %w", err)
	}

	return n, err
}

// Decoder reads Ogg Vorbis streams with oggvorbis. The input does not need
// to seek.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotVorbis, err)
	}

	if dec.Channels() < 1 {
		return nil, fmt.Errorf("%w: %w", ErrNotVorbis, audio.ErrNoChannels)
	}

	return newSource(dec), nil
}
