// SPDX-License-Identifier: EPL-2.0

// Package granular is a real-time granular synthesis engine.
//
// A Cloud plays many short grains of a source buffer at once. Every grain
// reads a window of the source starting near a shared centroid, at its own
// randomly drawn pitch, gain and pan, and is shaped by an ADSR envelope.
// When a grain's window is used up its envelope is released; once the
// release has faded out the grain is re-randomized and starts again. The
// grains are summed, scaled and hard clipped into one sample per output
// channel.
//
// # Producing audio
//
// Produce returns the next sample of one output channel. Channel 0 drives
// the grain clock, so channels are requested once per frame with channel 0
// first. A host may stop early; grains only wait for the channels it read
// in the previous frame:
//
//	for range frames {
//		for ch := range cloud.Channels() {
//			out[ch] = cloud.Produce(ch)
//		}
//	}
//
// Render does exactly that for a block of interleaved samples after applying
// any pending Controller commands.
//
// # Threads
//
// A Cloud is not safe for concurrent use. Its setters and Produce belong to
// the audio goroutine. Other goroutines change parameters through the
// Controller returned by Cloud.Controller, which queues commands without
// blocking; the audio goroutine applies them between blocks with Drain or
// Render.
//
// Produce, Render and Drain never allocate and never block.
//
// # Determinism
//
// All draws come from a PCG generator owned by the cloud. Two clouds built
// with the same seed and given the same parameter history produce the same
// samples.
package granular
