// SPDX-License-Identifier: EPL-2.0

// Package player feeds a granular cloud to the sound card through oto.
//
// Stream is the pull side: oto calls Read from its own goroutine, and that
// goroutine is the only one touching the cloud. Control goroutines talk to
// it through a granular.Controller and a transport.Machine.
package player

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/ik5/audgrain/granular"
	"github.com/ik5/audgrain/internal/transport"
)

const bytesPerSample = 4

// Stream renders a cloud as float32 little-endian PCM.
type Stream struct {
	cloud     *granular.Cloud
	transport *transport.Machine
	frameSize int
	scratch   []float32
}

// NewStream wraps cloud. bufFrames sizes the render buffer; Read never
// allocates and splits larger requests into blocks of that size.
func NewStream(cloud *granular.Cloud, m *transport.Machine, bufFrames int) *Stream {
	return &Stream{
		cloud:     cloud,
		transport: m,
		frameSize: bytesPerSample * cloud.Channels(),
		scratch:   make([]float32, max(bufFrames, 1)*cloud.Channels()),
	}
}

// Read fills p with whole frames. Queued commands are applied even while
// stopped. Stopping resets the cloud so a restart begins from fresh grains.
func (s *Stream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	frames := len(p) / s.frameSize
	if frames == 0 {
		return 0, io.ErrShortBuffer
	}

	produce := s.transport.ShouldProduce()
	switch {
	case produce && !s.cloud.IsPlaying():
		s.cloud.Start()
	case !produce && s.cloud.IsPlaying():
		s.cloud.Reset()
	}
	s.transport.Started()
	s.transport.Stopped()

	n := frames * s.frameSize
	if !produce {
		s.cloud.Drain()
		clear(p[:n])
		return n, nil
	}

	channels := s.cloud.Channels()
	for done := 0; done < frames; {
		chunk := min(frames-done, len(s.scratch)/channels)
		block := s.scratch[:chunk*channels]
		if _, err := s.cloud.Render(block); err != nil {
			return done * s.frameSize, err
		}

		out := p[done*s.frameSize:]
		for i, x := range block {
			binary.LittleEndian.PutUint32(out[i*bytesPerSample:], math.Float32bits(x))
		}
		done += chunk
	}

	return n, nil
}

// reserve grows the render buffer to hold frames frames. Call it before
// playback starts; Read renders larger requests in several blocks.
func (s *Stream) reserve(frames int) {
	if n := frames * s.cloud.Channels(); n > len(s.scratch) {
		s.scratch = make([]float32, n)
	}
}
