// SPDX-License-Identifier: EPL-2.0

// Package transport holds the play/stop state shared between the control
// goroutine and the audio callback. The audio side only asks whether it
// should produce.
package transport

import (
	"fmt"
	"sync/atomic"
)

type State int32

const (
	Stopped State = iota
	Starting
	Playing
	Stopping
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Starting:
		return "starting"
	case Playing:
		return "playing"
	case Stopping:
		return "stopping"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Machine is safe for concurrent use. The zero value is Stopped.
type Machine struct {
	state atomic.Int32
}

func (m *Machine) State() State { return State(m.state.Load()) }

// Play requests playback. It reports false when the machine is not stopped.
func (m *Machine) Play() bool {
	return m.state.CompareAndSwap(int32(Stopped), int32(Starting))
}

// Stop requests a stop. A pending start is cancelled outright.
func (m *Machine) Stop() bool {
	if m.state.CompareAndSwap(int32(Starting), int32(Stopped)) {
		return true
	}
	return m.state.CompareAndSwap(int32(Playing), int32(Stopping))
}

// Started moves Starting to Playing. The audio side calls it once the
// output is running.
func (m *Machine) Started() bool {
	return m.state.CompareAndSwap(int32(Starting), int32(Playing))
}

// Stopped moves Stopping to Stopped once the audio side has gone quiet.
func (m *Machine) Stopped() bool {
	return m.state.CompareAndSwap(int32(Stopping), int32(Stopped))
}

// ShouldProduce reports whether the audio side should render sound.
func (m *Machine) ShouldProduce() bool {
	s := m.State()
	return s == Starting || s == Playing
}
