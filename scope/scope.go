// Package scope implements the per-walker local variable mapping layered
// above the host's global variable provider. One Scope is owned by one
// active walker; lookups fall through to the host on a local miss, but
// writes always target the local scope.
package scope

import "github.com/cwbudde/exprscript/value"

// HostLookup resolves a name the local scope doesn't have, via the host's
// get_variable capability. It returns (value, true) on a hit, or
// (nil, false) when the host also has nothing bound to that name.
type HostLookup func(name string) (value.Value, bool)

// Scope is a mutable identifier → value mapping with a fallthrough to the
// host for names it doesn't locally bind.
type Scope struct {
	bindings map[string]value.Value
	host     HostLookup
}

// New creates an empty scope that falls through to host for misses.
func New(host HostLookup) *Scope {
	return &Scope{bindings: make(map[string]value.Value), host: host}
}

// NewFromSnapshot creates a scope pre-populated from a lambda's closure
// snapshot (copied by value, so later writes here never leak back into
// the snapshot the closure holds).
func NewFromSnapshot(snapshot map[string]value.Value, host HostLookup) *Scope {
	s := New(host)
	for k, v := range snapshot {
		s.bindings[k] = v
	}
	return s
}

// Get resolves name against the local scope first, then the host.
func (s *Scope) Get(name string) (value.Value, bool) {
	if v, ok := s.bindings[name]; ok {
		return v, true
	}
	if s.host != nil {
		return s.host(name)
	}
	return nil, false
}

// GetLocal resolves name only against this scope's own bindings, without
// falling through to the host. Used by lambda invocation to decide
// whether a parameter name collides with an existing local binding.
func (s *Scope) GetLocal(name string) (value.Value, bool) {
	v, ok := s.bindings[name]
	return v, ok
}

// Set stores a value under name in the local scope. Writes never reach
// the host or an enclosing scope; they always target the local scope.
func (s *Scope) Set(name string, v value.Value) {
	s.bindings[name] = v
}

// Delete removes a local binding, used by foreach to drop its iteration
// variable once the loop completes.
func (s *Scope) Delete(name string) {
	delete(s.bindings, name)
}

// Snapshot copies the local bindings by value, for capture into a Lambda
// closure.
func (s *Scope) Snapshot() map[string]value.Value {
	out := make(map[string]value.Value, len(s.bindings))
	for k, v := range s.bindings {
		out[k] = v
	}
	return out
}

// Bindings exposes the raw local binding map for callers that need to
// enumerate it (e.g. the lambda-return write-back). Callers must not
// mutate the returned map directly; use Set/Delete instead.
func (s *Scope) Bindings() map[string]value.Value {
	return s.bindings
}
