package thirsty

func NewNil() Value            { return Value{kind: KindNil} }
func NewBool(b bool) Value     { return Value{kind: KindBool, data: b} }
func NewNumber(f float64) Value { return Value{kind: KindNumber, data: f} }
func NewString(s string) Value { return Value{kind: KindString, data: s} }

func NewArray(elems []Value) Value {
	return Value{kind: KindArray, data: &Array{Elems: elems}}
}

func NewFunction(fn *FunctionDef) Value {
	return Value{kind: KindFunction, data: fn}
}

func NewBuiltin(name string, fn BuiltinFunc) Value {
	return Value{kind: KindBuiltin, data: &Builtin{Name: name, Fn: fn}}
}

func NewNamespace(ns *Namespace) Value {
	return Value{kind: KindNamespace, data: ns}
}

func NewClass(def *ClassDef) Value     { return Value{kind: KindClass, data: def} }
func NewInstance(inst *Instance) Value { return Value{kind: KindInstance, data: inst} }

func NewException(rec *ExceptionRecord) Value {
	return Value{kind: KindException, data: rec}
}

// NewPending wraps a host operation as a pending task. Namespace methods
// return one of these when their result is not yet available; the await
// expression settles it.
func NewPending(name string, settle func() (Value, error)) Value {
	return Value{kind: KindTask, data: &Task{name: name, settle: settle}}
}

func newScriptTask(fn *FunctionDef, env *Env) Value {
	return Value{kind: KindTask, data: &Task{name: fn.Name, fn: fn, env: env}}
}
