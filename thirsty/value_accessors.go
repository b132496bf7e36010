package thirsty

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsNil() bool { return v.kind == KindNil }

func (v Value) Bool() bool {
	if v.kind == KindBool {
		return v.data.(bool)
	}
	return false
}

func (v Value) Number() float64 {
	if v.kind == KindNumber {
		return v.data.(float64)
	}
	return 0
}

func (v Value) Array() *Array {
	if v.kind != KindArray {
		return nil
	}
	return v.data.(*Array)
}

func (v Value) Function() *FunctionDef {
	if v.kind != KindFunction {
		return nil
	}
	return v.data.(*FunctionDef)
}

func (v Value) Builtin() *Builtin {
	if v.kind != KindBuiltin {
		return nil
	}
	return v.data.(*Builtin)
}

func (v Value) Namespace() *Namespace {
	if v.kind != KindNamespace {
		return nil
	}
	return v.data.(*Namespace)
}

func (v Value) Class() *ClassDef {
	if v.kind != KindClass {
		return nil
	}
	return v.data.(*ClassDef)
}

func (v Value) Instance() *Instance {
	if v.kind != KindInstance {
		return nil
	}
	return v.data.(*Instance)
}

func (v Value) Exception() *ExceptionRecord {
	if v.kind != KindException {
		return nil
	}
	return v.data.(*ExceptionRecord)
}

func (v Value) Task() *Task {
	if v.kind != KindTask {
		return nil
	}
	return v.data.(*Task)
}
