// SPDX-License-Identifier: EPL-2.0

package granular

import "github.com/ik5/audgrain/envelope"

// Phase is where a grain is in its life cycle.
type Phase uint8

const (
	// PhaseIdle grains are re-randomized the next time they are advanced.
	PhaseIdle Phase = iota
	// PhaseSounding grains are reading through their window.
	PhaseSounding
	// PhaseReleasing grains have used up their window and are fading out.
	PhaseReleasing
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSounding:
		return "sounding"
	case PhaseReleasing:
		return "releasing"
	default:
		return "unknown"
	}
}

// Grain is one playback voice of a Cloud. The accessors exist for
// inspection; a Cloud is the only thing that changes a grain.
type Grain struct {
	cursor [MaxChannels]float64
	start  int
	end    int

	semitones float64
	pitch     float64
	gainDB    int
	gain      float64
	pan       float64
	panGain   [2]float64

	env       envelope.ADSR
	level     float64 // envelope value for the current frame
	releasing bool
}

// StartingSample is the first source frame of the window.
func (g Grain) StartingSample() int { return g.start }

// EndingSample is the last source frame of the window.
func (g Grain) EndingSample() int { return g.end }

// Cursor is the fractional read position of output channel ch.
func (g Grain) Cursor(ch int) float64 {
	if ch < 0 || ch >= MaxChannels {
		return 0
	}
	return g.cursor[ch]
}

// PitchSemitones is the drawn pitch offset.
func (g Grain) PitchSemitones() float64 { return g.semitones }

// PitchScalar is the cursor step per frame, 2^(semitones/12).
func (g Grain) PitchScalar() float64 { return g.pitch }

// GainDB is the drawn attenuation, 0 when none was drawn.
func (g Grain) GainDB() int { return g.gainDB }

// GainScalar is the linear gain, 10^(dB/20).
func (g Grain) GainScalar() float64 { return g.gain }

// Pan is the drawn position in [0, 1], or 1 when random panning was off.
func (g Grain) Pan() float64 { return g.pan }

func (g Grain) EnvelopeStage() envelope.Stage { return g.env.Stage() }

func (g Grain) Phase() Phase {
	switch {
	case !g.env.IsActive():
		return PhaseIdle
	case g.releasing:
		return PhaseReleasing
	default:
		return PhaseSounding
	}
}

// complete reports whether the cursors of the first channels have reached the
// window end.
func (g *Grain) complete(channels int) bool {
	end := float64(g.end)
	for _, c := range g.cursor[:channels] {
		if c < end {
			return false
		}
	}
	return true
}

// clampCursors pulls every cursor back inside [start, end].
func (g *Grain) clampCursors() {
	lo, hi := float64(g.start), float64(g.end)
	for ch, c := range g.cursor {
		g.cursor[ch] = min(max(c, lo), hi)
	}
}

// read returns the shaped sample of output channel ch and steps its cursor.
func (g *Grain) read(src Source, srcChannels, ch int, panned bool) float64 {
	x := float64(src.Sample(min(ch, srcChannels-1), int(g.cursor[ch])))

	out := x * g.level * g.gain
	if panned {
		out *= g.panGain[ch]
	}

	g.cursor[ch] = min(g.cursor[ch]+g.pitch, float64(g.end))

	return out
}
