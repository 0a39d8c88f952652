// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audgrain/audio"
	"github.com/ik5/audgrain/utils"
)

const (
	channels      = 2 // go-mp3 always decodes to stereo
	bytesPerFrame = channels * 2
	bufSize       = 8192 // samples
)

// mp3Reader is the part of gomp3.Decoder the source uses.
type mp3Reader interface {
	io.Reader
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
}

func newSource(dec mp3Reader) *source {
	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, bufSize*2),
	}
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return bufSize }

// ReadSamples fills dst with whole stereo frames. A trailing half frame at
// the end of the stream is dropped.
func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	need := len(dst) * 2
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	n, err := io.ReadFull(s.dec, s.buf)
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		err = io.EOF
	case err != nil:
		return 0, fmt.Errorf("reading mp3: %w", err)
	}

	samples := n / bytesPerFrame * channels
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(s.buf[2*i:]))
		dst[i] = utils.IntToFloat32(int(v), 16)
	}

	return samples, err
}

// Decoder reads MPEG-1/2 Layer III streams with go-mp3. The output is
// always stereo 16-bit precision.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3, err)
	}

	return newSource(dec), nil
}
