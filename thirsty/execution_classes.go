package thirsty

// instantiateClass builds a fresh instance. Property defaults are evaluated
// against the call-site scope in declaration order, once per instantiation,
// so two instances never share a default-initialised array or other
// reference value. If the class declares an init method it runs as the
// constructor; without one, constructor arguments are an arity error.
func (exec *Execution) instantiateClass(def *ClassDef, args []Value, env *Env, pos Position) (Value, error) {
	inst := &Instance{
		Class: def,
		Props: make(map[string]Value, len(def.Properties)),
	}
	for _, prop := range def.Properties {
		if prop.Default == nil {
			inst.Props[prop.Name] = NewNil()
			continue
		}
		val, err := exec.evalExpression(prop.Default, env)
		if err != nil {
			return NewNil(), err
		}
		inst.Props[prop.Name] = val
	}

	if ctor, ok := def.Methods[initMethodName]; ok {
		if _, err := exec.callMethod(inst, ctor, args, env, pos); err != nil {
			return NewNil(), err
		}
	} else if len(args) > 0 {
		return NewNil(), exec.errorAt(ErrArity, pos,
			"%s has no init method but was given %d arguments", def.Name, len(args))
	}
	return NewInstance(inst), nil
}
