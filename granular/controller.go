// SPDX-License-Identifier: EPL-2.0

package granular

import (
	"context"
	"fmt"

	"github.com/ik5/audgrain/envelope"
	"github.com/ik5/audgrain/utils"
)

type opcode uint8

const (
	opCentroid opcode = iota + 1
	opDuration
	opSource
	opCloudSize
	opStartingOffset
	opPitchRange
	opGainRange
	opGlobalGain
	opRandomPanning
	opEnvelope
	opEnvelopeRelease
	opReset
	opStart
	opSeed
)

// command is one queued setter call. It is passed by value so posting it
// does not allocate.
type command struct {
	op  opcode
	i   [2]int
	f   [2]float64
	on  bool
	u   uint64
	src Source
	env envelope.Parameters
}

// Controller changes a Cloud's parameters from other goroutines. Every
// method queues a command that the audio goroutine applies on its next
// Drain or Render, in the order the commands were posted.
//
// By default a full queue fails with ErrQueueFull instead of waiting. Use
// WithContext for a Controller that waits for room.
type Controller struct {
	queue chan<- command
	ctx   context.Context
}

// Controller returns a non-blocking handle to c.
func (c *Cloud) Controller() *Controller {
	return &Controller{queue: c.commands}
}

// WithContext returns a copy of ctl whose methods block until the command
// is queued or ctx is done.
func (ctl *Controller) WithContext(ctx context.Context) *Controller {
	return &Controller{queue: ctl.queue, ctx: ctx}
}

func (ctl *Controller) post(cmd command) error {
	if ctl.ctx == nil {
		select {
		case ctl.queue <- cmd:
			return nil
		default:
			return ErrQueueFull
		}
	}

	select {
	case ctl.queue <- cmd:
		return nil
	case <-ctl.ctx.Done():
		return fmt.Errorf("posting command: %w", ctl.ctx.Err())
	}
}

func (ctl *Controller) SetCentroidSample(n int) error {
	return ctl.post(command{op: opCentroid, i: [2]int{n}})
}

func (ctl *Controller) SetDuration(ms int) error {
	return ctl.post(command{op: opDuration, i: [2]int{ms}})
}

// SetAudioSource hands src to the audio goroutine. src must not change
// afterwards.
func (ctl *Controller) SetAudioSource(src Source) error {
	return ctl.post(command{op: opSource, src: src})
}

func (ctl *Controller) SetCloudSize(n int) error {
	return ctl.post(command{op: opCloudSize, i: [2]int{n}})
}

func (ctl *Controller) SetStartingOffset(n int) error {
	return ctl.post(command{op: opStartingOffset, i: [2]int{n}})
}

func (ctl *Controller) SetPitchOffsetRange(lo, hi float64) error {
	return ctl.post(command{op: opPitchRange, f: [2]float64{lo, hi}})
}

func (ctl *Controller) SetGainOffsetRangeDB(lo, hi int) error {
	return ctl.post(command{op: opGainRange, i: [2]int{lo, hi}})
}

func (ctl *Controller) SetGlobalGain(gain float64) error {
	return ctl.post(command{op: opGlobalGain, f: [2]float64{gain}})
}

func (ctl *Controller) SetGlobalGainDB(db float64) error {
	return ctl.SetGlobalGain(utils.DBToLinear(db))
}

func (ctl *Controller) SetRandomPanning(on bool) error {
	return ctl.post(command{op: opRandomPanning, on: on})
}

func (ctl *Controller) SetEnvelope(p envelope.Parameters) error {
	return ctl.post(command{op: opEnvelope, env: p})
}

func (ctl *Controller) SetEnvelopeRelease(ms float64) error {
	return ctl.post(command{op: opEnvelopeRelease, f: [2]float64{ms}})
}

func (ctl *Controller) SetSeed(seed uint64) error {
	return ctl.post(command{op: opSeed, u: seed})
}

func (ctl *Controller) Reset() error {
	return ctl.post(command{op: opReset})
}

func (ctl *Controller) Start() error {
	return ctl.post(command{op: opStart})
}

// Pending is the number of commands waiting for the next drain.
func (c *Cloud) Pending() int { return len(c.commands) }

// Drain applies every queued Controller command and returns how many there
// were. It never blocks.
func (c *Cloud) Drain() int {
	n := 0
	for {
		select {
		case cmd := <-c.commands:
			c.apply(cmd)
			n++
		default:
			return n
		}
	}
}

func (c *Cloud) apply(cmd command) {
	switch cmd.op {
	case opCentroid:
		c.SetCentroidSample(cmd.i[0])
	case opDuration:
		c.SetDuration(cmd.i[0])
	case opSource:
		c.SetAudioSource(cmd.src)
	case opCloudSize:
		c.SetCloudSize(cmd.i[0])
	case opStartingOffset:
		c.SetStartingOffset(cmd.i[0])
	case opPitchRange:
		c.SetPitchOffsetRange(cmd.f[0], cmd.f[1])
	case opGainRange:
		c.SetGainOffsetRangeDB(cmd.i[0], cmd.i[1])
	case opGlobalGain:
		c.SetGlobalGain(cmd.f[0])
	case opRandomPanning:
		c.SetRandomPanning(cmd.on)
	case opEnvelope:
		c.SetEnvelope(cmd.env)
	case opEnvelopeRelease:
		c.SetEnvelopeRelease(cmd.f[0])
	case opSeed:
		c.SetSeed(cmd.u)
	case opReset:
		c.Reset()
	case opStart:
		c.Start()
	}
}
