package force

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/rigidsim/internal/diag"
)

// Registry maps force (or torque) names to constant 3-vectors. All
// entries are summed when accumulated; application order never matters.
type Registry struct {
	kind    string
	entries map[string]mgl64.Vec3
	sink    diag.Sink
}

// NewRegistry creates an empty registry. kind names the registry in
// diagnostics ("force" or "torque").
func NewRegistry(kind string, sink diag.Sink) *Registry {
	if sink == nil {
		sink = diag.Stderr()
	}
	return &Registry{
		kind:    kind,
		entries: make(map[string]mgl64.Vec3),
		sink:    sink,
	}
}

// Set inserts v under name, overwriting any existing entry.
func (r *Registry) Set(name string, v mgl64.Vec3) {
	r.entries[name] = v
}

// Remove deletes the named entry. Removing an absent name is reported
// to the diagnostics sink and is otherwise a no-op.
func (r *Registry) Remove(name string) {
	if _, ok := r.entries[name]; !ok {
		r.sink.Logf("no %s named %s", r.kind, name)
		return
	}
	delete(r.entries, name)
}

// Get reports the entry under name, if any.
func (r *Registry) Get(name string) (mgl64.Vec3, bool) {
	v, ok := r.entries[name]
	return v, ok
}

// Accumulate sums every current entry.
func (r *Registry) Accumulate() mgl64.Vec3 {
	var sum mgl64.Vec3
	for _, v := range r.entries {
		sum = sum.Add(v)
	}
	return sum
}

// Len reports the number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}
