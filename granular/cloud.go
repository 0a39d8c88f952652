// SPDX-License-Identifier: EPL-2.0

package granular

import (
	"math"
	"math/rand/v2"

	"github.com/ik5/audgrain/audio"
	"github.com/ik5/audgrain/envelope"
	"github.com/ik5/audgrain/utils"
)

// polyphonyHeadroom scales the mix whenever more than one grain is active.
// It does not depend on the number of grains.
const polyphonyHeadroom = 0.3

// params are the values shared by every grain of a cloud.
type params struct {
	centroid    int // 0-based
	offset      int
	durationMS  int
	sampleDelta int

	pitchMin float64
	pitchMax float64
	gainMin  int
	gainMax  int

	globalGain    float64
	randomPanning bool
	envelope      envelope.Parameters
}

// Cloud mixes a population of grains into an output stream.
//
// A Cloud is real-time safe but not safe for concurrent use; see the package
// documentation.
type Cloud struct {
	grains []Grain // fixed arena, grains[:active] play
	active int

	p params

	src         Source
	srcChannels int
	waveSize    int
	sampleRate  float64

	channels int
	playing  bool

	// reads is one past the highest channel produced since the last frame
	// began; span is that count for the previous frame.
	reads int
	span  int

	pcg *rand.PCG
	rng *rand.Rand

	commands chan command
}

// NewCloud returns a playing cloud with no source. It produces silence
// until SetAudioSource is given a non-empty buffer.
func NewCloud(opts ...Option) *Cloud {
	s := defaultSettings()
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}

	pcg := rand.NewPCG(s.seed, s.seed)
	c := &Cloud{
		grains:   make([]Grain, s.maxGrains),
		channels: s.channels,
		playing:  true,
		pcg:      pcg,
		rng:      rand.New(pcg),
		commands: make(chan command, s.queueDepth),
		p: params{
			durationMS: s.durationMS,
			globalGain: 1,
			envelope:   s.envelope,
		},
	}

	for i := range c.grains {
		c.grains[i].env = envelope.New(0, s.envelope)
		c.grains[i].pitch = 1
		c.grains[i].gain = 1
		c.grains[i].pan = 1
	}

	c.SetCloudSize(s.cloudSize)

	return c
}

// SetSeed restarts the random sequence. Grains already playing keep their
// parameters.
func (c *Cloud) SetSeed(seed uint64) {
	c.pcg.Seed(seed, seed)
}

// Channels is the number of output channels.
func (c *Cloud) Channels() int { return c.channels }

// SampleRate is the rate of the output, which is the source's rate.
func (c *Cloud) SampleRate() float64 { return c.sampleRate }

// MaxGrains is the arena capacity.
func (c *Cloud) MaxGrains() int { return len(c.grains) }

// CloudSize is the number of grains currently playing.
func (c *Cloud) CloudSize() int { return c.active }

// Size is the length of the source in frames.
func (c *Cloud) Size() int { return c.waveSize }

// HasValidSource reports whether Produce has anything to read.
func (c *Cloud) HasValidSource() bool {
	return c.src != nil && c.waveSize > 0 && c.srcChannels > 0
}

// GrainAt returns a copy of grain i, for 0 <= i < CloudSize().
func (c *Cloud) GrainAt(i int) (Grain, bool) {
	if i < 0 || i >= c.active {
		return Grain{}, false
	}
	return c.grains[i], true
}

// Produce returns the next sample of output channel ch, in [-1, 1].
//
// Channel 0 advances the grains by one frame; the other channels read the
// same frame. A grain's window is used up once every channel produced in
// the previous frame has reached its end, so a host reading only channel 0
// still cycles grains. Out of range channels and a cloud without a valid
// source give 0.
func (c *Cloud) Produce(ch int) float32 {
	if ch < 0 || ch >= c.channels || !c.HasValidSource() {
		return 0
	}

	if ch == 0 {
		c.span = max(c.reads, 1)
		c.reads = 0
	}
	c.reads = max(c.reads, ch+1)

	panned := c.p.randomPanning && c.channels == 2

	var sum float64
	for i := range c.grains[:c.active] {
		g := &c.grains[i]
		if ch == 0 {
			c.tick(g)
		}
		sum += g.read(c.src, c.srcChannels, ch, panned)
	}

	sum *= c.p.globalGain
	if c.active > 1 {
		sum *= polyphonyHeadroom
	}

	return float32(utils.Clamp(sum, -1, 1))
}

// Render applies pending Controller commands and fills dst with interleaved
// frames. len(dst) must be a multiple of Channels(). It returns the number of
// samples written.
func (c *Cloud) Render(dst []float32) (int, error) {
	if len(dst)%c.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	c.Drain()

	for f := 0; f < len(dst); f += c.channels {
		for ch := range c.channels {
			dst[f+ch] = c.Produce(ch)
		}
	}

	return len(dst), nil
}

// tick runs the per-frame life cycle of g and latches its envelope level.
func (c *Cloud) tick(g *Grain) {
	if !g.releasing && g.env.IsActive() && g.complete(c.span) {
		g.env.NoteOff()
		g.releasing = true
	}

	if !g.env.IsActive() {
		c.randomize(g)
	}

	g.level = g.env.Next()
}

// windowEnd is the last frame of a window starting at start.
func (c *Cloud) windowEnd(start int) int {
	end := start + max(c.p.sampleDelta, 0)
	return max(utils.ClampIndex(end, c.waveSize), start)
}

// randomize draws new parameters for g and restarts its envelope.
func (c *Cloud) randomize(g *Grain) {
	start := c.p.centroid
	if c.p.offset > 0 && c.p.centroid-c.p.offset > 0 {
		start = c.p.centroid - c.p.offset + c.rng.IntN(2*c.p.offset+1)
	}
	start = utils.ClampIndex(start, c.waveSize)

	g.start = start
	g.end = c.windowEnd(start)
	for ch := range g.cursor {
		g.cursor[ch] = float64(start)
	}

	g.semitones = c.p.pitchMin
	if c.p.pitchMax > c.p.pitchMin {
		g.semitones += c.rng.Float64() * (c.p.pitchMax - c.p.pitchMin)
	}
	g.pitch = utils.SemitonesToRatio(g.semitones)

	g.gainDB, g.gain = 0, 1
	if c.p.gainMax < 0 {
		g.gainDB = c.p.gainMin + c.rng.IntN(c.p.gainMax-c.p.gainMin+1)
		g.gain = utils.DBToLinear(float64(g.gainDB))
	}

	g.pan = 1
	if c.p.randomPanning {
		g.pan = c.rng.Float64()
	}
	g.panGain[0] = math.Sin(g.pan * math.Pi / 2)
	g.panGain[1] = math.Sin((1 - g.pan) * math.Pi / 2)

	g.env.Reset()
	g.env.NoteOn()
	g.releasing = false
}

func (c *Cloud) randomizeAll() {
	for i := range c.grains[:c.active] {
		c.randomize(&c.grains[i])
	}
}

// maxSampleDelta bounds the window length so huge durations cannot overflow
// the conversion to int.
const maxSampleDelta = math.MaxInt32

func (c *Cloud) updateSampleDelta() {
	delta := math.Round(c.sampleRate * float64(c.p.durationMS) / 1000)
	c.p.sampleDelta = int(utils.Clamp(delta, 0, maxSampleDelta))
}

// SetCentroidSample moves the nominal start of every grain. n is 1-based:
// 1 is the first frame of the source. All grains are re-randomized at once.
func (c *Cloud) SetCentroidSample(n int) {
	c.p.centroid = max(n-1, 0)
	c.randomizeAll()
}

// CentroidSample returns the 1-based centroid.
func (c *Cloud) CentroidSample() int { return c.p.centroid + 1 }

// SetDuration sets the grain length in milliseconds. Grains keep their start
// and get a new window end; positions are not re-randomized.
func (c *Cloud) SetDuration(ms int) {
	c.p.durationMS = ms
	c.updateSampleDelta()

	for i := range c.grains[:c.active] {
		g := &c.grains[i]
		g.end = c.windowEnd(g.start)
		g.clampCursors()
	}
}

// Duration is the grain length in milliseconds.
func (c *Cloud) Duration() int { return c.p.durationMS }

// SampleDelta is the window length in frames derived from the duration.
func (c *Cloud) SampleDelta() int { return c.p.sampleDelta }

// SetAudioSource replaces the source. Every playing grain is re-randomized
// against the new length. A nil or empty source silences the cloud; that
// includes a nil *audio.Buffer, which reports no channels and no frames.
func (c *Cloud) SetAudioSource(src Source) {
	c.src = src
	c.srcChannels, c.waveSize, c.sampleRate = 0, 0, 0
	if src != nil {
		c.srcChannels = src.Channels()
		c.waveSize = max(src.Len(), 0)
		c.sampleRate = src.SampleRate()
	}

	if c.srcChannels < 1 || c.waveSize == 0 {
		c.src = nil
		c.srcChannels, c.waveSize, c.sampleRate = 0, 0, 0
	}

	for i := range c.grains {
		c.grains[i].env.SetSampleRate(c.sampleRate)
	}

	c.updateSampleDelta()
	c.randomizeAll()
}

// SetCloudSize changes the number of playing grains, clamped to
// [0, MaxGrains()]. New grains are appended freshly randomized; shrinking
// drops grains from the end. Surviving grains are left untouched.
func (c *Cloud) SetCloudSize(n int) {
	n = utils.Clamp(n, 0, len(c.grains))
	for i := c.active; i < n; i++ {
		c.randomize(&c.grains[i])
	}
	c.active = n
}

// SetStartingOffset sets the maximum distance in frames a grain may start
// from the centroid. It applies from each grain's next retrigger.
func (c *Cloud) SetStartingOffset(n int) { c.p.offset = max(n, 0) }

func (c *Cloud) StartingOffset() int { return c.p.offset }

// SetPitchOffsetRange sets the semitone range pitch offsets are drawn from.
// Reversed bounds are swapped.
func (c *Cloud) SetPitchOffsetRange(lo, hi float64) {
	if lo > hi {
		lo, hi = hi, lo
	}
	c.p.pitchMin, c.p.pitchMax = lo, hi
}

func (c *Cloud) PitchOffsetRange() (lo, hi float64) { return c.p.pitchMin, c.p.pitchMax }

// SetGainOffsetRangeDB sets the attenuation range in whole decibels. Both
// bounds are clamped to 0 and reversed bounds are swapped. Gains are only
// drawn when the upper bound is below 0; a range ending at 0 means no
// attenuation at all.
func (c *Cloud) SetGainOffsetRangeDB(lo, hi int) {
	lo, hi = min(lo, 0), min(hi, 0)
	if lo > hi {
		lo, hi = hi, lo
	}
	c.p.gainMin, c.p.gainMax = lo, hi
}

func (c *Cloud) GainOffsetRangeDB() (lo, hi int) { return c.p.gainMin, c.p.gainMax }

// SetGlobalGain sets the linear gain applied to the mix. Negative values are
// treated as 0.
func (c *Cloud) SetGlobalGain(gain float64) {
	if math.IsNaN(gain) {
		gain = 0
	}
	c.p.globalGain = max(gain, 0)
}

// SetGlobalGainDB sets the mix gain in decibels.
func (c *Cloud) SetGlobalGainDB(db float64) { c.SetGlobalGain(utils.DBToLinear(db)) }

func (c *Cloud) GlobalGain() float64 { return c.p.globalGain }

// SetRandomPanning toggles per-grain panning. It only has an audible effect
// on stereo output; pan positions are drawn at each grain's next retrigger.
func (c *Cloud) SetRandomPanning(on bool) { c.p.randomPanning = on }

func (c *Cloud) RandomPanning() bool { return c.p.randomPanning }

// SetEnvelope changes the shape of every grain's envelope, including grains
// that are currently playing.
func (c *Cloud) SetEnvelope(p envelope.Parameters) {
	for i := range c.grains {
		c.grains[i].env.SetParameters(p)
	}
	c.p.envelope = c.grains[0].env.Parameters()
}

// SetEnvelopeRelease changes only the release time, in milliseconds.
func (c *Cloud) SetEnvelopeRelease(ms float64) {
	p := c.p.envelope
	p.Release = ms / 1000
	c.SetEnvelope(p)
}

func (c *Cloud) Envelope() envelope.Parameters { return c.p.envelope }

// Reset silences every grain at once and marks the cloud as stopped. The
// next frame retriggers all grains from a zero envelope.
func (c *Cloud) Reset() {
	for i := range c.grains {
		c.grains[i].env.Reset()
		c.grains[i].releasing = false
	}
	c.playing = false
}

// Start marks the cloud as playing.
func (c *Cloud) Start() { c.playing = true }

// IsPlaying reports the flag set by Start and cleared by Reset. Produce
// does not look at it; callers gate their output on it.
func (c *Cloud) IsPlaying() bool { return c.playing }
