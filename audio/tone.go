// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"

	"github.com/ik5/audgrain/utils"
)

// Waveform shapes one period of an oscillator. phase is in [0, 1).
type Waveform interface {
	At(phase float64) float64
}

// Sine is a pure sine wave.
type Sine struct{}

func (Sine) At(phase float64) float64 { return math.Sin(2 * math.Pi * phase) }

// Square is a naive (non band-limited) 50% duty square wave.
type Square struct{}

func (Square) At(phase float64) float64 {
	if phase < 0.5 {
		return 1
	}
	return -1
}

// Saw is a rising sawtooth from -1 to 1.
type Saw struct{}

func (Saw) At(phase float64) float64 { return 2*phase - 1 }

// Triangle rises from -1 to 1 over the first half period and falls back.
type Triangle struct{}

func (Triangle) At(phase float64) float64 {
	if phase < 0.5 {
		return 4*phase - 1
	}
	return 3 - 4*phase
}

// Tone is a simple oscillator producing one sample per call. It is used to
// build test sources when no decoded file is at hand.
type Tone struct {
	wave       Waveform
	frequency  float64
	sampleRate float64
	pitch      float64
	gain       float64
	phase      float64
}

// NewTone returns an oscillator for wave at frequency Hz. A nil wave means Sine.
func NewTone(wave Waveform, frequency, sampleRate float64) (*Tone, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	if wave == nil {
		wave = Sine{}
	}

	return &Tone{
		wave:       wave,
		frequency:  frequency,
		sampleRate: sampleRate,
		pitch:      1,
		gain:       1,
	}, nil
}

// SetFrequency changes the base frequency in Hz.
func (t *Tone) SetFrequency(hz float64) { t.frequency = hz }

// SetPitchOffsetCents detunes the tone, e.g. 1200 is one octave up.
func (t *Tone) SetPitchOffsetCents(cents float64) { t.pitch = utils.CentsToRatio(cents) }

// SetGainDB sets the output gain in decibels.
func (t *Tone) SetGainDB(db float64) { t.gain = utils.DBToLinear(db) }

// Frequency is the effective frequency including the pitch offset.
func (t *Tone) Frequency() float64 { return t.frequency * t.pitch }

func (t *Tone) SampleRate() float64 { return t.sampleRate }

// Next returns the next sample, clipped to [-1, 1].
func (t *Tone) Next() float32 {
	out := utils.Clamp(t.wave.At(t.phase)*t.gain, -1, 1)

	t.phase += t.frequency * t.pitch / t.sampleRate
	t.phase -= math.Floor(t.phase)

	return float32(out)
}

// NewToneBuffer renders frames samples of t into a Buffer, copying the same
// signal to every channel.
func NewToneBuffer(t *Tone, channels, frames int) (*Buffer, error) {
	if channels < 1 {
		return nil, ErrNoChannels
	}

	frames = max(frames, 0)
	data := make([][]float32, channels)
	data[0] = make([]float32, frames)
	for i := range frames {
		data[0][i] = t.Next()
	}

	for ch := 1; ch < channels; ch++ {
		data[ch] = make([]float32, frames)
		copy(data[ch], data[0])
	}

	return NewBuffer(t.sampleRate, data)
}
