package thirsty

// evalWhileStatement re-evaluates the condition before every iteration and
// counts completed iterations against the engine's loop bound. When the
// bound is hit the loop aborts with a depth error rather than spin forever.
func (exec *Execution) evalWhileStatement(s *WhileStmt, env *Env) (Value, bool, error) {
	iterations := 0
	for {
		if err := exec.step(); err != nil {
			return NewNil(), false, err
		}
		cond, err := exec.evalExpression(s.Condition, env)
		if err != nil {
			return NewNil(), false, err
		}
		if !cond.Truthy() {
			return NewNil(), false, nil
		}
		if iterations >= exec.maxLoop {
			return NewNil(), false, exec.depthErrorAt(DepthLoop, s.Pos(),
				"loop exceeded %d iterations", exec.maxLoop)
		}
		iterations++
		val, returned, err := exec.evalStatements(s.Body, env)
		if err != nil {
			return NewNil(), false, err
		}
		if returned {
			return val, true, nil
		}
	}
}
