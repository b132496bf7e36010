package thirsty

// evalCall evaluates the callee and arguments in the caller's scope, then
// dispatches on the callee's kind. Method calls through a member expression
// are routed directly so the receiver is bound without materialising an
// intermediate value.
func (exec *Execution) evalCall(e *CallExpr, env *Env) (Value, error) {
	if member, ok := e.Callee.(*MemberExpr); ok {
		obj, err := exec.evalExpression(member.Object, env)
		if err != nil {
			return NewNil(), err
		}
		if obj.Kind() == KindInstance {
			inst := obj.Instance()
			if method, ok := inst.Class.Methods[member.Property]; ok {
				args, err := exec.evalArguments(e.Args, env)
				if err != nil {
					return NewNil(), err
				}
				return exec.callMethod(inst, method, args, env, e.Pos())
			}
		}
		callee, err := exec.memberOf(obj, member.Property, env, member.Pos())
		if err != nil {
			return NewNil(), err
		}
		return exec.callValue(callee, e, env)
	}

	callee, err := exec.evalExpression(e.Callee, env)
	if err != nil {
		return NewNil(), err
	}
	return exec.callValue(callee, e, env)
}

func (exec *Execution) callValue(callee Value, e *CallExpr, env *Env) (Value, error) {
	args, err := exec.evalArguments(e.Args, env)
	if err != nil {
		return NewNil(), err
	}
	switch callee.Kind() {
	case KindFunction:
		fn := callee.Function()
		if fn.Async {
			return exec.startTask(fn, args, env, e.Pos())
		}
		return exec.callFunction(fn, args, env, e.Pos())
	case KindBuiltin:
		return callee.Builtin().Fn(exec, args)
	case KindClass:
		return exec.instantiateClass(callee.Class(), args, env, e.Pos())
	default:
		return NewNil(), exec.errorAt(ErrSyntaxShape, e.Pos(),
			"%s is not callable", describeCallee(e.Callee))
	}
}

func (exec *Execution) evalArguments(exprs []Expression, env *Env) ([]Value, error) {
	args := make([]Value, 0, len(exprs))
	for _, expr := range exprs {
		val, err := exec.evalExpression(expr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}
	return args, nil
}

// callFunction runs a user function in a snapshot of the caller's scope.
// The callee sees every caller binding at call time but its writes stay in
// the snapshot, so nothing leaks back when the call returns.
func (exec *Execution) callFunction(fn *FunctionDef, args []Value, env *Env, pos Position) (Value, error) {
	if len(args) != len(fn.Params) {
		return NewNil(), exec.errorAt(ErrArity, pos,
			"%s expects %d arguments, got %d", fn.Name, len(fn.Params), len(args))
	}
	if len(exec.callStack) >= exec.maxDepth {
		return NewNil(), exec.depthErrorAt(DepthCall, pos,
			"call depth exceeded %d", exec.maxDepth)
	}

	callEnv := env.Clone()
	for i, param := range fn.Params {
		callEnv.Set(param, args[i])
	}

	exec.callStack = append(exec.callStack, callFrame{Function: fn.Name, Pos: pos})
	exec.pushState(fn.owner)
	val, returned, err := exec.evalStatements(fn.Body, callEnv)
	exec.popState()
	exec.callStack = exec.callStack[:len(exec.callStack)-1]

	if err != nil {
		return NewNil(), err
	}
	if !returned {
		return NewNil(), nil
	}
	return val, nil
}

// callMethod runs an instance method against the same caller-scope snapshot
// a plain function gets, with this bound to the live receiver on top. The
// receiver is shared, not copied: writes through this are visible to every
// holder of the instance, while writes to snapshot names stay in the copy.
func (exec *Execution) callMethod(inst *Instance, method *FunctionDef, args []Value, env *Env, pos Position) (Value, error) {
	if len(args) != len(method.Params) {
		return NewNil(), exec.errorAt(ErrArity, pos,
			"%s expects %d arguments, got %d", method.Name, len(method.Params), len(args))
	}
	if len(exec.callStack) >= exec.maxDepth {
		return NewNil(), exec.depthErrorAt(DepthCall, pos,
			"call depth exceeded %d", exec.maxDepth)
	}

	methodEnv := env.Clone()
	for i, param := range method.Params {
		methodEnv.Set(param, args[i])
	}
	methodEnv.Set("this", NewInstance(inst))

	exec.callStack = append(exec.callStack, callFrame{Function: method.Name, Pos: pos})
	exec.pushState(method.owner)
	val, returned, err := exec.evalStatements(method.Body, methodEnv)
	exec.popState()
	exec.callStack = exec.callStack[:len(exec.callStack)-1]

	if err != nil {
		return NewNil(), err
	}
	if !returned {
		return NewNil(), nil
	}
	return val, nil
}
