package thirsty

// startTask suspends an async function call. Arity is checked eagerly, and
// the scope snapshot and argument binding happen at the call site, so the
// task's view of the world is fixed when it is created, not when it is
// awaited.
func (exec *Execution) startTask(fn *FunctionDef, args []Value, env *Env, pos Position) (Value, error) {
	if len(args) != len(fn.Params) {
		return NewNil(), exec.errorAt(ErrArity, pos,
			"%s expects %d arguments, got %d", fn.Name, len(fn.Params), len(args))
	}
	taskEnv := env.Clone()
	for i, param := range fn.Params {
		taskEnv.Set(param, args[i])
	}
	return newScriptTask(fn, taskEnv), nil
}

// evalAwait settles the operand. A settled task that produced another task
// is settled again, so chains of async calls collapse to a final value.
// Awaiting a non-task value yields the value unchanged.
func (exec *Execution) evalAwait(e *AwaitExpr, env *Env) (Value, error) {
	val, err := exec.evalExpression(e.Operand, env)
	if err != nil {
		return NewNil(), err
	}
	for val.Kind() == KindTask {
		val, err = exec.settleTask(val.Task(), e.Pos())
		if err != nil {
			return NewNil(), err
		}
	}
	return val, nil
}

// settleTask runs a suspended task to completion, memoizing the outcome so
// a task awaited twice yields the same result without re-running.
func (exec *Execution) settleTask(t *Task, pos Position) (Value, error) {
	if t.done {
		return t.result, t.err
	}

	var val Value
	var err error
	switch {
	case t.fn != nil:
		val, err = exec.runTaskBody(t, pos)
	case t.settle != nil:
		val, err = t.settle()
		if err != nil {
			if _, ok := err.(*Error); !ok {
				err = exec.errorAt(ErrThrown, pos, "%s: %s", t.name, err)
			}
		}
	default:
		val = NewNil()
	}

	t.done = true
	t.result = val
	t.err = err
	return val, err
}

func (exec *Execution) runTaskBody(t *Task, pos Position) (Value, error) {
	if len(exec.callStack) >= exec.maxDepth {
		return NewNil(), exec.depthErrorAt(DepthCall, pos,
			"call depth exceeded %d", exec.maxDepth)
	}

	exec.callStack = append(exec.callStack, callFrame{Function: t.fn.Name, Pos: pos})
	exec.pushState(t.fn.owner)
	val, returned, err := exec.evalStatements(t.fn.Body, t.env)
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
