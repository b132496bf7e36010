package thirsty

import "time"

type ValueKind int

const (
	KindNil ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindFunction
	KindBuiltin
	KindNamespace
	KindClass
	KindInstance
	KindException
	KindTask
)

func (k ValueKind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindFunction:
		return "function"
	case KindBuiltin:
		return "builtin"
	case KindNamespace:
		return "namespace"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	case KindException:
		return "exception"
	case KindTask:
		return "task"
	default:
		return "unknown"
	}
}

// Value is the closed tagged union every script expression evaluates to.
// Dispatch on call, property and index syntax switches on the kind.
type Value struct {
	kind ValueKind
	data any
}

// Array is the mutable ordered collection backing KindArray values. Values
// share the pointer, so in-place growth through push is visible to every
// holder.
type Array struct {
	Elems []Value
}

// FunctionDef is an immutable function declaration: user functions, async
// functions and class methods all share this shape.
type FunctionDef struct {
	Name   string
	Params []string
	Body   []Statement
	Line   int
	Async  bool

	owner *moduleState
}

// ClassDef stores a class declaration. The method named by initMethodName is
// the constructor.
type ClassDef struct {
	Name       string
	Properties []PropertyDecl
	Methods    map[string]*FunctionDef
}

// Instance pairs a class with its mutable property dictionary. Methods see
// the dictionary through `this` by alias, never by copy.
type Instance struct {
	Class *ClassDef
	Props map[string]Value
}

// Namespace is an opaque bag of members: registered builtin namespaces and
// imported module export maps both take this shape.
type Namespace struct {
	Name    string
	Members map[string]Value
}

// BuiltinFunc is the call contract for host-supplied callables.
type BuiltinFunc func(exec *Execution, args []Value) (Value, error)

type Builtin struct {
	Name string
	Fn   BuiltinFunc
}

// Task is a pending cooperative operation. Either a suspended async function
// call (fn plus the env captured at the call site, parameters already
// bound) or a host-supplied settle function from a namespace method.
// Settling is memoized so a task observed twice yields the same outcome.
type Task struct {
	name   string
	fn     *FunctionDef
	env    *Env
	settle func() (Value, error)

	done   bool
	result Value
	err    error
}

// ExceptionRecord is the structured payload bound to a catch variable.
type ExceptionRecord struct {
	Message   string
	Type      string
	Context   map[string]Value
	Timestamp time.Time
	Frames    []StackFrame
}

const initMethodName = "init"
