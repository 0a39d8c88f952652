// SPDX-License-Identifier: EPL-2.0

// Package envelope implements a linear ADSR amplitude envelope.
//
// An ADSR is driven one sample at a time: NoteOn starts the attack, Next
// returns the level for the current sample and advances the state, NoteOff
// starts the release, and IsActive reports false once the release has
// reached zero.
//
//	env := envelope.New(48000, envelope.Parameters{
//		Attack:  0.01,
//		Decay:   0.1,
//		Sustain: 0.8,
//		Release: 0.2,
//	})
//	env.NoteOn()
//	for range frames {
//		out := sample * env.Next()
//	}
//
// Stage changes happen in straight lines: attack rises from the current
// level to 1, decay falls to the sustain level, release falls from wherever
// the envelope was when NoteOff arrived down to 0. A zero duration skips
// that stage.
//
// ADSR is a plain value with no pointers, so it can be embedded in
// fixed-size arrays and copied. It is not safe for concurrent use.
package envelope
