// SPDX-License-Identifier: EPL-2.0

package granular

import (
	"testing"

	"github.com/ik5/audgrain/audio"
	"github.com/ik5/audgrain/envelope"
	"github.com/ik5/audgrain/internal/audiotest"
)

// open is an envelope that is fully open from the first frame.
var open = envelope.Parameters{Sustain: 1}

func newBuffer(tb testing.TB, rate float64, channels, frames int, wave audiotest.WaveFunc) *audio.Buffer {
	tb.Helper()

	buf, err := audio.NewBuffer(rate, audiotest.Channels(channels, frames, wave))
	if err != nil {
		tb.Fatalf("NewBuffer() error = %v", err)
	}
	return buf
}

func rampBuffer(tb testing.TB, rate float64, channels, frames int) *audio.Buffer {
	tb.Helper()

	return newBuffer(tb, rate, channels, frames, func(i, ch int) float32 {
		return audiotest.Ramp(i, ch, frames)
	})
}

func constantBuffer(tb testing.TB, rate float64, channels, frames int, v float32) *audio.Buffer {
	tb.Helper()

	return newBuffer(tb, rate, channels, frames, func(int, int) float32 { return v })
}

// frame produces one sample on every output channel, channel 0 first.
func frame(c *Cloud) []float32 {
	out := make([]float32, c.Channels())
	for ch := range out {
		out[ch] = c.Produce(ch)
	}
	return out
}

// checkWindows fails when any playing grain is outside its window or its
// window is outside the source.
func checkWindows(tb testing.TB, c *Cloud) {
	tb.Helper()

	for i := range c.CloudSize() {
		g, _ := c.GrainAt(i)
		start, end := g.StartingSample(), g.EndingSample()

		if start < 0 || end < start || end > c.Size()-1 {
			tb.Fatalf("grain %d: window [%d, %d] outside [0, %d]", i, start, end, c.Size()-1)
		}

		for ch := range c.Channels() {
			if cur := g.Cursor(ch); cur < float64(start) || cur > float64(end) {
				tb.Fatalf("grain %d ch %d: cursor %v outside [%d, %d]", i, ch, cur, start, end)
			}
		}
	}
}
