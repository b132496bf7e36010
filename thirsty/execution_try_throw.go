package thirsty

// evalTryStatement runs body, catch, finally in that order. Only *Error
// failures are catchable; host failures such as context cancellation pass
// straight through, though finally still runs before they propagate. A
// return or failure raised inside finally supersedes whatever outcome the
// body or catch produced.
func (exec *Execution) evalTryStatement(s *TryStmt, env *Env) (Value, bool, error) {
	val, returned, err := exec.evalStatements(s.Body, env)

	if err != nil && s.HasCatch {
		if langErr, ok := err.(*Error); ok {
			if s.CatchVar != "" {
				env.Set(s.CatchVar, NewException(langErr.Record))
			}
			val, returned, err = exec.evalStatements(s.Catch, env)
		}
	}

	if len(s.Finally) > 0 {
		fVal, fReturned, fErr := exec.evalStatements(s.Finally, env)
		if fErr != nil {
			return NewNil(), false, fErr
		}
		if fReturned {
			return fVal, true, nil
		}
	}

	if err != nil {
		return NewNil(), false, err
	}
	return val, returned, nil
}

// evalThrowStatement raises a user failure. The thrown value shapes the
// record a downstream catch sees: rethrown exceptions keep their original
// record, instances contribute their class name as the type and their
// properties as context, everything else is stringified under the generic
// Error type.
func (exec *Execution) evalThrowStatement(s *ThrowStmt, env *Env) (Value, bool, error) {
	val, err := exec.evalExpression(s.Value, env)
	if err != nil {
		return NewNil(), false, err
	}

	if val.Kind() == KindException {
		rec := val.Exception()
		thrown := exec.newError(ErrThrown, "", rec.Message, s.Pos()).(*Error)
		thrown.Record = rec
		return NewNil(), false, thrown
	}

	message := val.String()
	typeName := "Error"
	var context map[string]Value

	if val.Kind() == KindInstance {
		inst := val.Instance()
		typeName = inst.Class.Name
		if msg, ok := inst.Props["message"]; ok {
			message = msg.String()
		}
		if typ, ok := inst.Props["type"]; ok && typ.Kind() == KindString {
			typeName = typ.data.(string)
		}
		context = make(map[string]Value, len(inst.Props))
		for name, prop := range inst.Props {
			context[name] = prop
		}
	}

	thrown := exec.newError(ErrThrown, "", message, s.Pos()).(*Error)
	thrown.Record.Type = typeName
	thrown.Record.Context = context
	return NewNil(), false, thrown
}
