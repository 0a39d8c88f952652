// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audgrain/utils"
)

// Resampler streams from src to a target sample rate using Catmull-Rom
// interpolation over a sliding four-frame window. It works on interleaved
// samples and preserves the channel count. When downsampling, a one-pole
// low-pass runs on the input to tame aliasing.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64 // source frames per output frame
	channels int

	// window[0..3] hold frames t-1, t0, t+1, t+2
	window [4][]float32
	valid  [4]bool
	primed bool
	eof    bool

	pos float64 // fractional position between window[1] and window[2]

	frame []float32

	lowpass bool
	seeded  bool
	alpha   float32
	state   []float32
}

// NewResampler wraps src so it reads at dstRate Hz.
func NewResampler(src Source, dstRate int) (*Resampler, error) {
	if dstRate <= 0 || src.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: %d -> %d Hz", ErrInvalidSampleRate, src.SampleRate(), dstRate)
	}

	channels := src.Channels()
	if channels < 1 {
		return nil, ErrNoChannels
	}

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     float64(src.SampleRate()) / float64(dstRate),
		channels: channels,
		frame:    make([]float32, channels),
		state:    make([]float32, channels),
	}

	if r.step > 1 {
		r.lowpass = true
		r.alpha = 0.5
	}

	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r, nil
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("closing resampler source: %w", err)
	}
	return nil
}

// readFrame pulls a single frame from the source into r.frame.
func (r *Resampler) readFrame() (bool, error) {
	if r.eof {
		return false, nil
	}

	n, err := r.src.ReadSamples(r.frame)
	if err == io.EOF {
		r.eof = true
	} else if err != nil {
		return false, fmt.Errorf("reading resampler source: %w", err)
	}

	if n < r.channels {
		r.eof = true
		return false, nil
	}

	if r.lowpass {
		if !r.seeded {
			// start the filter from the first sample to avoid a fade-in
			copy(r.state, r.frame)
			r.seeded = true
		}

		for c, x := range r.frame {
			r.state[c] = r.alpha*x + (1-r.alpha)*r.state[c]
			r.frame[c] = r.state[c]
		}
	}

	return true, nil
}

// prime loads the first frames so window[1] holds source frame 0.
func (r *Resampler) prime() error {
	r.primed = true

	for i := 1; i < len(r.window); i++ {
		ok, err := r.readFrame()
		if err != nil {
			return err
		}

		if !ok {
			return nil
		}

		copy(r.window[i], r.frame)
		r.valid[i] = true
	}

	return nil
}

// shift slides the window forward by one source frame.
func (r *Resampler) shift() error {
	first := r.window[0]
	copy(r.window[:], r.window[1:])
	copy(r.valid[:], r.valid[1:])
	r.window[3] = first

	ok, err := r.readFrame()
	if err != nil {
		return err
	}

	if ok {
		copy(r.window[3], r.frame)
	}
	r.valid[3] = ok

	return nil
}

// ReadSamples produces interleaved samples at the target rate.
// len(dst) must be a multiple of Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		for r.pos >= 1 {
			r.pos--
			if err := r.shift(); err != nil {
				return written * r.channels, err
			}
		}

		// the last source frame is still reachable at pos == 0
		if !r.valid[1] || (!r.valid[2] && r.pos > 0) {
			return written * r.channels, io.EOF
		}

		x := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			y0 := r.window[1][c]
			if r.valid[0] {
				y0 = r.window[0][c]
			}

			y2 := r.window[1][c]
			if r.valid[2] {
				y2 = r.window[2][c]
			}

			y3 := y2
			if r.valid[3] {
				y3 = r.window[3][c]
			}

			out[c] = utils.CubicInterpolate(y0, r.window[1][c], y2, y3, x)
		}

		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}
