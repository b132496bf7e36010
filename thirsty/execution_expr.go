package thirsty

import (
	"fmt"
	"strings"
)

func (exec *Execution) evalExpression(expr Expression, env *Env) (Value, error) {
	switch e := expr.(type) {
	case *NumberLiteral:
		return NewNumber(e.Value), nil
	case *StringLiteral:
		return NewString(e.Value), nil
	case *BoolLiteral:
		return NewBool(e.Value), nil
	case *Identifier:
		return exec.lookupName(e.Name, e.Pos(), env)
	case *ThisExpr:
		if val, ok := env.Get("this"); ok {
			return val, nil
		}
		return NewNil(), exec.errorAt(ErrSyntaxShape, e.Pos(), "this used outside of a method")
	case *ArrayLiteral:
		elems := make([]Value, 0, len(e.Elements))
		for _, el := range e.Elements {
			val, err := exec.evalExpression(el, env)
			if err != nil {
				return NewNil(), err
			}
			elems = append(elems, val)
		}
		return NewArray(elems), nil
	case *UnaryExpr:
		return exec.evalUnary(e, env)
	case *BinaryExpr:
		return exec.evalBinary(e, env)
	case *CallExpr:
		return exec.evalCall(e, env)
	case *MemberExpr:
		return exec.evalMember(e, env)
	case *IndexExpr:
		return exec.evalIndex(e, env)
	case *AwaitExpr:
		return exec.evalAwait(e, env)
	default:
		return NewNil(), exec.errorAt(ErrSyntaxShape, expr.Pos(), "unsupported expression")
	}
}

// lookupName resolves identifiers in scope order: the environment first,
// then the current module's functions and classes. Declarations are not
// Values in the environment, so functions referenced by name become
// first-class values only at the point of lookup.
func (exec *Execution) lookupName(name string, pos Position, env *Env) (Value, error) {
	if val, ok := env.Get(name); ok {
		return val, nil
	}
	st := exec.state()
	if fn, ok := st.functions[name]; ok {
		return NewFunction(fn), nil
	}
	if def, ok := st.classes[name]; ok {
		return NewClass(def), nil
	}
	return NewNil(), exec.errorAt(ErrUndefinedRef, pos, "undefined reference %q", name)
}

func (exec *Execution) evalUnary(e *UnaryExpr, env *Env) (Value, error) {
	operand, err := exec.evalExpression(e.Right, env)
	if err != nil {
		return NewNil(), err
	}
	switch e.Operator {
	case "-":
		if operand.Kind() != KindNumber {
			return NewNil(), exec.errorAt(ErrSyntaxShape, e.Pos(), "cannot negate %s", operand.Kind())
		}
		return NewNumber(-operand.Number()), nil
	default:
		return NewNil(), exec.errorAt(ErrSyntaxShape, e.Pos(), "unsupported unary operator %q", e.Operator)
	}
}

func (exec *Execution) evalBinary(e *BinaryExpr, env *Env) (Value, error) {
	left, err := exec.evalExpression(e.Left, env)
	if err != nil {
		return NewNil(), err
	}
	right, err := exec.evalExpression(e.Right, env)
	if err != nil {
		return NewNil(), err
	}

	switch e.Operator {
	case "+":
		if left.Kind() == KindNumber && right.Kind() == KindNumber {
			return NewNumber(left.Number() + right.Number()), nil
		}
		// Any non-numeric operand turns + into string concatenation.
		return NewString(left.String() + right.String()), nil
	case "-", "*", "/":
		if left.Kind() != KindNumber || right.Kind() != KindNumber {
			return NewNil(), exec.errorAt(ErrSyntaxShape, e.Pos(),
				"operator %q requires numbers, got %s and %s", e.Operator, left.Kind(), right.Kind())
		}
		switch e.Operator {
		case "-":
			return NewNumber(left.Number() - right.Number()), nil
		case "*":
			return NewNumber(left.Number() * right.Number()), nil
		default:
			if right.Number() == 0 {
				return NewNil(), exec.errorAt(ErrDivisionByZero, e.Pos(), "division by zero")
			}
			return NewNumber(left.Number() / right.Number()), nil
		}
	case "==":
		return NewBool(left.Equal(right)), nil
	case "!=":
		return NewBool(!left.Equal(right)), nil
	case "<", ">", "<=", ">=":
		return exec.evalComparison(e, left, right)
	default:
		return NewNil(), exec.errorAt(ErrSyntaxShape, e.Pos(), "unsupported operator %q", e.Operator)
	}
}

func (exec *Execution) evalComparison(e *BinaryExpr, left, right Value) (Value, error) {
	if left.Kind() == KindNumber && right.Kind() == KindNumber {
		l, r := left.Number(), right.Number()
		switch e.Operator {
		case "<":
			return NewBool(l < r), nil
		case ">":
			return NewBool(l > r), nil
		case "<=":
			return NewBool(l <= r), nil
		default:
			return NewBool(l >= r), nil
		}
	}
	if left.Kind() == KindString && right.Kind() == KindString {
		l, r := left.data.(string), right.data.(string)
		switch e.Operator {
		case "<":
			return NewBool(l < r), nil
		case ">":
			return NewBool(l > r), nil
		case "<=":
			return NewBool(l <= r), nil
		default:
			return NewBool(l >= r), nil
		}
	}
	return NewNil(), exec.errorAt(ErrSyntaxShape, e.Pos(),
		"cannot compare %s with %s", left.Kind(), right.Kind())
}

func (exec *Execution) evalMember(e *MemberExpr, env *Env) (Value, error) {
	obj, err := exec.evalExpression(e.Object, env)
	if err != nil {
		return NewNil(), err
	}
	return exec.memberOf(obj, e.Property, env, e.Pos())
}

func (exec *Execution) memberOf(obj Value, name string, env *Env, pos Position) (Value, error) {
	switch obj.Kind() {
	case KindArray:
		return exec.arrayMember(obj.Array(), name, pos)
	case KindString:
		if name == "length" {
			return NewNumber(float64(len([]rune(obj.data.(string))))), nil
		}
		return NewNil(), exec.errorAt(ErrUndefinedRef, pos, "string has no property %q", name)
	case KindInstance:
		inst := obj.Instance()
		if val, ok := inst.Props[name]; ok {
			return val, nil
		}
		if method, ok := inst.Class.Methods[name]; ok {
			return exec.boundMethod(inst, method, env), nil
		}
		return NewNil(), exec.errorAt(ErrUndefinedRef, pos,
			"%s has no property or method %q", inst.Class.Name, name)
	case KindNamespace:
		ns := obj.Namespace()
		if val, ok := ns.Members[name]; ok {
			return val, nil
		}
		return NewNil(), exec.errorAt(ErrUndefinedRef, pos, "%s has no member %q", ns.Name, name)
	case KindException:
		if val, ok := obj.Exception().property(name); ok {
			return val, nil
		}
		return NewNil(), exec.errorAt(ErrUndefinedRef, pos, "exception has no property %q", name)
	default:
		return NewNil(), exec.errorAt(ErrSyntaxShape, pos, "%s has no properties", obj.Kind())
	}
}

func (exec *Execution) arrayMember(arr *Array, name string, pos Position) (Value, error) {
	switch name {
	case "length":
		return NewNumber(float64(len(arr.Elems))), nil
	case "push":
		return NewBuiltin("push", func(_ *Execution, args []Value) (Value, error) {
			arr.Elems = append(arr.Elems, args...)
			return NewNumber(float64(len(arr.Elems))), nil
		}), nil
	case "pop":
		return NewBuiltin("pop", func(ex *Execution, args []Value) (Value, error) {
			if len(arr.Elems) == 0 {
				return NewNil(), ex.errorAt(ErrIndexBounds, pos, "pop from empty array")
			}
			last := arr.Elems[len(arr.Elems)-1]
			arr.Elems = arr.Elems[:len(arr.Elems)-1]
			return last, nil
		}), nil
	case "join":
		return NewBuiltin("join", func(_ *Execution, args []Value) (Value, error) {
			sep := ", "
			if len(args) > 0 {
				sep = args[0].String()
			}
			parts := make([]string, len(arr.Elems))
			for i, el := range arr.Elems {
				parts[i] = el.String()
			}
			return NewString(strings.Join(parts, sep)), nil
		}), nil
	case "contains":
		return NewBuiltin("contains", func(ex *Execution, args []Value) (Value, error) {
			if len(args) != 1 {
				return NewNil(), ex.errorAt(ErrArity, pos, "contains expects 1 argument, got %d", len(args))
			}
			for _, el := range arr.Elems {
				if el.Equal(args[0]) {
					return NewBool(true), nil
				}
			}
			return NewBool(false), nil
		}), nil
	default:
		return NewNil(), exec.errorAt(ErrUndefinedRef, pos, "array has no property %q", name)
	}
}

// boundMethod wraps an instance method as a callable value carrying its
// receiver and the scope snapshot from the point it was pulled off the
// instance, so a stored method still sees this and that scope when called.
func (exec *Execution) boundMethod(inst *Instance, method *FunctionDef, env *Env) Value {
	bound := env.Clone()
	return NewBuiltin(method.Name, func(ex *Execution, args []Value) (Value, error) {
		return ex.callMethod(inst, method, args, bound, Position{Line: method.Line, Column: 1})
	})
}

func (exec *Execution) evalIndex(e *IndexExpr, env *Env) (Value, error) {
	obj, err := exec.evalExpression(e.Object, env)
	if err != nil {
		return NewNil(), err
	}
	idx, err := exec.evalExpression(e.Index, env)
	if err != nil {
		return NewNil(), err
	}
	i, err := exec.indexValue(idx, e.Index.Pos())
	if err != nil {
		return NewNil(), err
	}
	switch obj.Kind() {
	case KindArray:
		elems := obj.Array().Elems
		if i < 0 || i >= len(elems) {
			return NewNil(), exec.errorAt(ErrIndexBounds, e.Index.Pos(),
				"array index %d out of bounds for length %d", i, len(elems))
		}
		return elems[i], nil
	case KindString:
		runes := []rune(obj.data.(string))
		if i < 0 || i >= len(runes) {
			return NewNil(), exec.errorAt(ErrIndexBounds, e.Index.Pos(),
				"string index %d out of bounds for length %d", i, len(runes))
		}
		return NewString(string(runes[i])), nil
	default:
		return NewNil(), exec.errorAt(ErrSyntaxShape, e.Object.Pos(), "cannot index %s", obj.Kind())
	}
}

func (exec *Execution) indexValue(idx Value, pos Position) (int, error) {
	if idx.Kind() != KindNumber {
		return 0, exec.errorAt(ErrSyntaxShape, pos, "index must be a number, got %s", idx.Kind())
	}
	f := idx.Number()
	i := int(f)
	if float64(i) != f {
		return 0, exec.errorAt(ErrSyntaxShape, pos, "index must be an integer, got %s", formatNumber(f))
	}
	return i, nil
}

func describeCallee(expr Expression) string {
	switch e := expr.(type) {
	case *Identifier:
		return e.Name
	case *MemberExpr:
		return fmt.Sprintf("%s.%s", describeCallee(e.Object), e.Property)
	case *ThisExpr:
		return "this"
	default:
		return "<expression>"
	}
}
