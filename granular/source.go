// SPDX-License-Identifier: EPL-2.0

package granular

// Source is the decoded audio grains read from. *audio.Buffer satisfies it.
//
// Sample is only called with 0 <= ch < Channels() and 0 <= i < Len().
type Source interface {
	Channels() int
	Len() int
	SampleRate() float64
	Sample(ch, i int) float32
}
