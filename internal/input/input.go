// Package input maps key events onto named entries in the global
// force and torque registries. Front ends translate their own key
// codes into Events; dispatch itself is pure and windowing-agnostic.
package input

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/rigidsim/internal/force"
)

type Action int

const (
	Press Action = iota
	Release
	Repeat
)

// Key is a normalized lowercase key rune.
type Key rune

type Kind int

const (
	ForceBinding Kind = iota
	TorqueBinding
)

// Binding ties a key to a named registry entry: press sets the entry,
// release removes it, repeat is ignored since the entry persists while
// held.
type Binding struct {
	Kind   Kind
	Name   string
	Vector mgl64.Vec3
}

type Bindings map[Key]Binding

// DefaultBindings applies an upward thrust while P is held and a spin
// about the vertical axis while T is held.
func DefaultBindings() Bindings {
	return Bindings{
		'p': {Kind: ForceBinding, Name: "P-force", Vector: mgl64.Vec3{0, 2.7, 0}},
		't': {Kind: TorqueBinding, Name: "torque", Vector: mgl64.Vec3{0, 1.2, 0}},
	}
}

type Event struct {
	Key    Key
	Action Action
}

// Apply dispatches one event against the bindings, mutating the
// matching registry. Returns false when no binding covers the key.
func Apply(ev Event, bindings Bindings, forces, torques *force.Registry) bool {
	b, ok := bindings[ev.Key]
	if !ok {
		return false
	}
	reg := forces
	if b.Kind == TorqueBinding {
		reg = torques
	}
	switch ev.Action {
	case Press:
		reg.Set(b.Name, b.Vector)
	case Release:
		reg.Remove(b.Name)
	}
	return true
}
