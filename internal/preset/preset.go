// SPDX-License-Identifier: EPL-2.0

// Package preset loads cloud settings from JSON files and pushes them to a
// running cloud through its Controller.
package preset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ik5/audgrain/envelope"
	"github.com/ik5/audgrain/granular"
)

var ErrInvalidPreset = errors.New("invalid preset")

// Envelope holds ADSR times in milliseconds and the sustain level.
type Envelope struct {
	AttackMs  float64 `json:"attackMs"`
	DecayMs   float64 `json:"decayMs"`
	Sustain   float64 `json:"sustain"`
	ReleaseMs float64 `json:"releaseMs"`
}

// Parameters converts e to the envelope package's seconds.
func (e Envelope) Parameters() envelope.Parameters {
	return envelope.Parameters{
		Attack:  e.AttackMs / 1000,
		Decay:   e.DecayMs / 1000,
		Sustain: e.Sustain,
		Release: e.ReleaseMs / 1000,
	}
}

type Preset struct {
	CloudSize int `json:"cloudSize"`
	// Centroid is 1-based. Zero centers the cloud on the source.
	Centroid       int      `json:"centroid"`
	StartingOffset int      `json:"startingOffset"`
	DurationMs     int      `json:"durationMs"`
	PitchMin       float64  `json:"pitchMin"`
	PitchMax       float64  `json:"pitchMax"`
	GainMinDB      int      `json:"gainMinDb"`
	GainMaxDB      int      `json:"gainMaxDb"`
	GlobalGainDB   float64  `json:"globalGainDb"`
	RandomPanning  bool     `json:"randomPanning"`
	Envelope       Envelope `json:"envelope"`
	// Seed restarts the random sequence when non-zero.
	Seed uint64 `json:"seed"`
}

func Default() Preset {
	return Preset{
		CloudSize:  16,
		DurationMs: granular.DefaultDuration,
		Envelope: Envelope{
			AttackMs:  5,
			Sustain:   1,
			ReleaseMs: 50,
		},
		Seed: granular.DefaultSeed,
	}
}

func (p Preset) Validate() error {
	switch {
	case p.CloudSize < 0:
		return fmt.Errorf("%w: cloudSize %d", ErrInvalidPreset, p.CloudSize)
	case p.Centroid < 0:
		return fmt.Errorf("%w: centroid %d", ErrInvalidPreset, p.Centroid)
	case p.StartingOffset < 0:
		return fmt.Errorf("%w: startingOffset %d", ErrInvalidPreset, p.StartingOffset)
	case p.DurationMs < 0:
		return fmt.Errorf("%w: durationMs %d", ErrInvalidPreset, p.DurationMs)
	case p.Envelope.AttackMs < 0, p.Envelope.DecayMs < 0, p.Envelope.ReleaseMs < 0:
		return fmt.Errorf("%w: negative envelope time", ErrInvalidPreset)
	case p.Envelope.Sustain < 0 || p.Envelope.Sustain > 1:
		return fmt.Errorf("%w: sustain %v", ErrInvalidPreset, p.Envelope.Sustain)
	}

	return nil
}

// Decode reads a preset from r. Fields missing from the document keep
// their Default values.
func Decode(r io.Reader) (Preset, error) {
	p := Default()

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return Preset{}, fmt.Errorf("decoding preset: %w", err)
	}

	if err := p.Validate(); err != nil {
		return Preset{}, err
	}

	return p, nil
}

func Read(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("reading preset: %w", err)
	}

	p, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Preset{}, fmt.Errorf("%s: %w", path, err)
	}

	return p, nil
}

// Apply posts p to the cloud behind ctl. sourceLen resolves a zero
// Centroid. The centroid goes last because it re-randomizes every grain
// with the settings before it.
func (p Preset) Apply(ctl *granular.Controller, sourceLen int) error {
	centroid := p.Centroid
	if centroid == 0 {
		centroid = sourceLen / 2
	}

	steps := []func() error{
		func() error { return ctl.SetDuration(p.DurationMs) },
		func() error { return ctl.SetEnvelope(p.Envelope.Parameters()) },
		func() error { return ctl.SetStartingOffset(p.StartingOffset) },
		func() error { return ctl.SetPitchOffsetRange(p.PitchMin, p.PitchMax) },
		func() error { return ctl.SetGainOffsetRangeDB(p.GainMinDB, p.GainMaxDB) },
		func() error { return ctl.SetGlobalGainDB(p.GlobalGainDB) },
		func() error { return ctl.SetRandomPanning(p.RandomPanning) },
		func() error {
			if p.Seed == 0 {
				return nil
			}
			return ctl.SetSeed(p.Seed)
		},
		func() error { return ctl.SetCloudSize(p.CloudSize) },
		func() error { return ctl.SetCentroidSample(centroid) },
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return fmt.Errorf("applying preset: %w", err)
		}
	}

	return nil
}
