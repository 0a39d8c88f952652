// SPDX-License-Identifier: EPL-2.0

package envelope

import "github.com/ik5/audgrain/utils"

// Stage is the phase an ADSR is currently in.
type Stage uint8

const (
	StageIdle Stage = iota
	StageAttack
	StageDecay
	StageSustain
	StageRelease
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageAttack:
		return "attack"
	case StageDecay:
		return "decay"
	case StageSustain:
		return "sustain"
	case StageRelease:
		return "release"
	default:
		return "unknown"
	}
}

// Parameters describe an envelope shape. Times are in seconds, Sustain is a
// level in [0, 1].
type Parameters struct {
	Attack  float64
	Decay   float64
	Sustain float64
	Release float64
}

// DefaultParameters is a short, click-free grain shape.
func DefaultParameters() Parameters {
	return Parameters{
		Attack:  0.005,
		Decay:   0,
		Sustain: 1,
		Release: 0.05,
	}
}

func (p Parameters) sanitized() Parameters {
	return Parameters{
		Attack:  max(p.Attack, 0),
		Decay:   max(p.Decay, 0),
		Sustain: utils.Clamp(p.Sustain, 0, 1),
		Release: max(p.Release, 0),
	}
}

// ADSR is a linear attack/decay/sustain/release envelope.
type ADSR struct {
	params     Parameters
	sampleRate float64

	attackRate  float64
	decayRate   float64
	releaseRate float64

	stage Stage
	level float64
}

// New returns an idle envelope for the given sample rate.
func New(sampleRate float64, p Parameters) ADSR {
	var e ADSR
	e.sampleRate = sampleRate
	e.SetParameters(p)
	return e
}

// SetSampleRate updates the rate the stage durations are measured against.
func (e *ADSR) SetSampleRate(sampleRate float64) {
	e.sampleRate = sampleRate
	e.recalculateRates()
}

func (e *ADSR) SampleRate() float64 { return e.sampleRate }

// SetParameters changes the shape. A stage that is running keeps going at
// the new rate; one whose duration became zero is skipped on the spot.
func (e *ADSR) SetParameters(p Parameters) {
	e.params = p.sanitized()
	e.recalculateRates()
}

func (e *ADSR) Parameters() Parameters { return e.params }

// rate is the per-sample step covering distance in seconds, or -1 for an
// instantaneous stage.
func (e *ADSR) rate(distance, seconds float64) float64 {
	if seconds <= 0 || e.sampleRate <= 0 {
		return -1
	}
	return distance / (seconds * e.sampleRate)
}

func (e *ADSR) recalculateRates() {
	e.attackRate = e.rate(1, e.params.Attack)
	e.decayRate = e.rate(1-e.params.Sustain, e.params.Decay)
	e.releaseRate = e.rate(e.params.Sustain, e.params.Release)

	switch {
	case e.stage == StageAttack && e.attackRate <= 0,
		e.stage == StageDecay && (e.decayRate <= 0 || e.level <= e.params.Sustain),
		e.stage == StageRelease && e.releaseRate <= 0:
		e.nextStage()
	}
}

func (e *ADSR) nextStage() {
	switch e.stage {
	case StageAttack:
		if e.decayRate > 0 {
			e.stage = StageDecay
		} else {
			e.stage = StageSustain
		}
	case StageDecay:
		e.stage = StageSustain
	case StageRelease:
		e.Reset()
	}
}

// NoteOn starts the attack from the current level.
func (e *ADSR) NoteOn() {
	switch {
	case e.attackRate > 0:
		e.stage = StageAttack
	case e.decayRate > 0:
		e.level = 1
		e.stage = StageDecay
	default:
		e.level = e.params.Sustain
		e.stage = StageSustain
	}
}

// NoteOff starts the release from the current level. It is a no-op on an
// idle envelope.
func (e *ADSR) NoteOff() {
	if e.stage == StageIdle {
		return
	}

	if e.params.Release > 0 && e.sampleRate > 0 {
		e.releaseRate = e.level / (e.params.Release * e.sampleRate)
		e.stage = StageRelease
		return
	}

	e.Reset()
}

// Next advances one sample and returns the new level.
func (e *ADSR) Next() float64 {
	switch e.stage {
	case StageIdle:
		return 0
	case StageAttack:
		e.level += e.attackRate
		if e.level >= 1 {
			e.level = 1
			e.nextStage()
		}
	case StageDecay:
		e.level -= e.decayRate
		if e.level <= e.params.Sustain {
			e.level = e.params.Sustain
			e.nextStage()
		}
	case StageSustain:
		e.level = e.params.Sustain
	case StageRelease:
		e.level -= e.releaseRate
		if e.level <= 0 {
			e.nextStage()
		}
	}

	return e.level
}

// Level is the current value, without advancing.
func (e *ADSR) Level() float64 { return e.level }

func (e *ADSR) Stage() Stage { return e.stage }

// IsActive reports whether the envelope is anywhere but idle.
func (e *ADSR) IsActive() bool { return e.stage != StageIdle }

// Reset jumps straight to idle with a zero level.
func (e *ADSR) Reset() {
	e.level = 0
	e.stage = StageIdle
}
