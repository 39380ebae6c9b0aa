package input

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/rigidsim/internal/diag"
	"github.com/san-kum/rigidsim/internal/force"
)

func registries() (*force.Registry, *force.Registry) {
	return force.NewRegistry("force", diag.Discard()),
		force.NewRegistry("torque", diag.Discard())
}

func TestPressHoldRelease(t *testing.T) {
	forces, torques := registries()
	bindings := DefaultBindings()

	if !Apply(Event{Key: 'p', Action: Press}, bindings, forces, torques) {
		t.Fatal("press not handled")
	}
	if _, ok := forces.Get("P-force"); !ok {
		t.Fatal("press did not register the force")
	}

	// A held key repeats; the entry must stay put, not stack.
	Apply(Event{Key: 'p', Action: Repeat}, bindings, forces, torques)
	want := bindings['p'].Vector
	if v, _ := forces.Get("P-force"); v != want {
		t.Errorf("after repeat, force = %v, want %v", v, want)
	}

	Apply(Event{Key: 'p', Action: Release}, bindings, forces, torques)
	if _, ok := forces.Get("P-force"); ok {
		t.Error("release did not remove the force")
	}
}

func TestTorqueBindingTargetsTorqueRegistry(t *testing.T) {
	forces, torques := registries()

	Apply(Event{Key: 't', Action: Press}, DefaultBindings(), forces, torques)
	if forces.Len() != 0 {
		t.Errorf("force registry has %d entries, want 0", forces.Len())
	}
	if _, ok := torques.Get("torque"); !ok {
		t.Error("torque entry missing")
	}
}

func TestUnboundKeyIgnored(t *testing.T) {
	forces, torques := registries()

	if Apply(Event{Key: 'x', Action: Press}, DefaultBindings(), forces, torques) {
		t.Error("unbound key reported as handled")
	}
	if forces.Len() != 0 || torques.Len() != 0 {
		t.Error("unbound key mutated a registry")
	}
}

func TestCustomBindingVector(t *testing.T) {
	forces, torques := registries()
	bindings := Bindings{
		'g': {Kind: ForceBinding, Name: "gust", Vector: mgl64.Vec3{1.5, 0, -0.5}},
	}

	Apply(Event{Key: 'g', Action: Press}, bindings, forces, torques)
	if got := forces.Accumulate(); got != (mgl64.Vec3{1.5, 0, -0.5}) {
		t.Errorf("accumulate = %v", got)
	}
}
