// SPDX-License-Identifier: EPL-2.0

package granular

import "github.com/ik5/audgrain/envelope"

const (
	// MaxChannels bounds the number of output channels a Cloud renders.
	MaxChannels = 8

	DefaultMaxGrains  = 256
	DefaultChannels   = 2
	DefaultQueueDepth = 64
	DefaultDuration   = 100 // milliseconds
	DefaultSeed       = 1
)

type settings struct {
	seed       uint64
	channels   int
	maxGrains  int
	queueDepth int
	cloudSize  int
	durationMS int
	envelope   envelope.Parameters
}

// Option configures a Cloud at construction.
type Option func(*settings)

func defaultSettings() settings {
	return settings{
		seed:       DefaultSeed,
		channels:   DefaultChannels,
		maxGrains:  DefaultMaxGrains,
		queueDepth: DefaultQueueDepth,
		cloudSize:  1,
		durationMS: DefaultDuration,
		envelope:   envelope.DefaultParameters(),
	}
}

// WithSeed seeds the random generator.
func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.seed = seed
	}
}

// WithChannels sets the number of output channels, between 1 and MaxChannels.
func WithChannels(channels int) Option {
	return func(s *settings) {
		if channels > 0 && channels <= MaxChannels {
			s.channels = channels
		}
	}
}

// WithMaxGrains sets the arena capacity, the upper bound for SetCloudSize.
func WithMaxGrains(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxGrains = n
		}
	}
}

// WithQueueDepth sets how many Controller commands can wait between drains.
func WithQueueDepth(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.queueDepth = n
		}
	}
}

// WithCloudSize sets the initial number of grains.
func WithCloudSize(n int) Option {
	return func(s *settings) {
		if n >= 0 {
			s.cloudSize = n
		}
	}
}

// WithDuration sets the initial grain length in milliseconds.
func WithDuration(ms int) Option {
	return func(s *settings) {
		s.durationMS = ms
	}
}

// WithEnvelope sets the shape every grain is played with.
func WithEnvelope(p envelope.Parameters) Option {
	return func(s *settings) {
		s.envelope = p
	}
}
