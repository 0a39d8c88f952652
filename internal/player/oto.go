// SPDX-License-Identifier: EPL-2.0

//go:build !headless

package player

import (
	"fmt"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Output owns the oto context and the player pulling from a Stream.
type Output struct {
	ctx    *oto.Context
	player *oto.Player
}

// Open starts the audio device at the stream's layout. Only one Output may
// exist per process.
func Open(s *Stream, sampleRate int, latency time.Duration) (*Output, error) {
	frames := int(math.Ceil(latency.Seconds() * float64(sampleRate)))
	s.reserve(frames)

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: s.cloud.Channels(),
		Format:       oto.FormatFloat32LE,
		BufferSize:   latency,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	<-ready

	p := ctx.NewPlayer(s)
	if frames > 0 {
		p.SetBufferSize(frames * s.frameSize)
	}
	p.Play()

	return &Output{ctx: ctx, player: p}, nil
}

func (o *Output) Close() error {
	if err := o.player.Close(); err != nil {
		return fmt.Errorf("closing player: %w", err)
	}

	if err := o.ctx.Suspend(); err != nil {
		return fmt.Errorf("suspending audio device: %w", err)
	}

	return nil
}
