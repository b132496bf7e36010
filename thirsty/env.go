package thirsty

// Env is the name→Value mapping for one call frame. The language has no
// lexical closure chain: a function call runs against a snapshot of the
// caller's environment merged with its bound parameters, so Clone is the
// scope-copy contract. The caller keeps its own Env untouched regardless of
// what the callee does, which is what makes callee writes invisible after
// return. Instance state deliberately does not live here; `this` aliases the
// instance property dictionary directly.
type Env struct {
	values map[string]Value
}

func newEnv() *Env {
	return &Env{values: make(map[string]Value)}
}

func (e *Env) Get(name string) (Value, bool) {
	val, ok := e.values[name]
	return val, ok
}

func (e *Env) Set(name string, val Value) {
	e.values[name] = val
}

func (e *Env) Has(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Clone takes the frame snapshot used for call scoping. The copy is shallow:
// names rebind independently, while arrays and instances stay shared
// references.
func (e *Env) Clone() *Env {
	clone := &Env{values: make(map[string]Value, len(e.values))}
	for k, v := range e.values {
		clone.values[k] = v
	}
	return clone
}
