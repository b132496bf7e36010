package thirsty

import (
	"context"
	"fmt"
	"io"
)

type callFrame struct {
	Function string
	Pos      Position
}

// moduleState holds one program's (or one loaded module's) declaration
// tables. Functions remember the state they were declared in, so an
// exported function called across the module boundary still resolves its
// own module's functions and classes, never the importer's.
type moduleState struct {
	functions map[string]*FunctionDef
	classes   map[string]*ClassDef
}

func newModuleState() *moduleState {
	return &moduleState{
		functions: make(map[string]*FunctionDef),
		classes:   make(map[string]*ClassDef),
	}
}

// Execution is the per-run interpreter state: the call stack, declaration
// tables, collaborators and the protection marker. One Execution never
// outlives its Run, except inside a Session.
type Execution struct {
	engine *Engine
	script *Script
	ctx    context.Context

	maxDepth int
	maxLoop  int

	callStack  []callFrame
	stateStack []*moduleState

	output   io.Writer
	input    InputFunc
	security SecurityHook

	protectedDepth int
	warnings       []string
	exports        map[string]Value

	// loading tracks modules currently being imported, shared with the
	// child executions an import spawns, so cycles fail instead of
	// recursing forever.
	loading map[string]bool
}

func newExecution(script *Script, ctx context.Context, opts RunOptions, loading map[string]bool) *Execution {
	output := opts.Output
	if output == nil {
		output = io.Discard
	}
	if loading == nil {
		loading = make(map[string]bool)
	}
	return &Execution{
		engine:     script.engine,
		script:     script,
		ctx:        ctx,
		maxDepth:   script.engine.config.MaxCallDepth,
		maxLoop:    script.engine.config.MaxLoopIterations,
		callStack:  make([]callFrame, 0, 8),
		stateStack: []*moduleState{newModuleState()},
		output:     output,
		input:      opts.Input,
		security:   opts.Security,
		exports:    make(map[string]Value),
		loading:    loading,
	}
}

func (exec *Execution) seedRootEnv(globals map[string]Value) *Env {
	env := newEnv()
	for name, ns := range exec.engine.namespaces {
		env.Set(name, ns)
	}
	for name, val := range globals {
		env.Set(name, val)
	}
	return env
}

func (exec *Execution) state() *moduleState {
	return exec.stateStack[len(exec.stateStack)-1]
}

func (exec *Execution) pushState(st *moduleState) {
	exec.stateStack = append(exec.stateStack, st)
}

func (exec *Execution) popState() {
	exec.stateStack = exec.stateStack[:len(exec.stateStack)-1]
}

// step runs the per-statement cancellation check. Context errors are host
// signals: they abort the run and are never catchable by script code.
func (exec *Execution) step() error {
	if exec.ctx != nil {
		select {
		case <-exec.ctx.Done():
			return exec.ctx.Err()
		default:
		}
	}
	return nil
}

func (exec *Execution) warnf(format string, args ...any) {
	exec.warnings = append(exec.warnings, fmt.Sprintf(format, args...))
}

func (exec *Execution) evalStatements(stmts []Statement, env *Env) (Value, bool, error) {
	result := NewNil()
	for _, stmt := range stmts {
		if err := exec.step(); err != nil {
			return NewNil(), false, err
		}
		val, returned, err := exec.evalStatement(stmt, env)
		if err != nil {
			return NewNil(), false, err
		}
		if returned {
			return val, true, nil
		}
		result = val
	}
	return result, false, nil
}

func (exec *Execution) evalStatement(stmt Statement, env *Env) (Value, bool, error) {
	switch s := stmt.(type) {
	case *DrinkStmt:
		val, err := exec.evalExpression(s.Value, env)
		if err != nil {
			return NewNil(), false, err
		}
		exec.assignName(s.Name, val, env)
		return val, false, nil
	case *AssignStmt:
		val, err := exec.evalExpression(s.Value, env)
		if err != nil {
			return NewNil(), false, err
		}
		if err := exec.assign(s.Target, val, env); err != nil {
			return NewNil(), false, err
		}
		return val, false, nil
	case *PourStmt:
		val, err := exec.evalExpression(s.Value, env)
		if err != nil {
			return NewNil(), false, err
		}
		fmt.Fprintln(exec.output, val.String())
		return val, false, nil
	case *SipStmt:
		return exec.evalSipStatement(s, env)
	case *ExprStmt:
		val, err := exec.evalExpression(s.Expr, env)
		return val, false, err
	case *ReturnStmt:
		if s.Value == nil {
			return NewNil(), true, nil
		}
		val, err := exec.evalExpression(s.Value, env)
		return val, true, err
	case *IfStmt:
		cond, err := exec.evalExpression(s.Condition, env)
		if err != nil {
			return NewNil(), false, err
		}
		if cond.Truthy() {
			return exec.evalStatements(s.Consequent, env)
		}
		if len(s.Alternate) > 0 {
			return exec.evalStatements(s.Alternate, env)
		}
		return NewNil(), false, nil
	case *WhileStmt:
		return exec.evalWhileStatement(s, env)
	case *FunctionStmt:
		exec.declareFunction(s)
		return NewNil(), false, nil
	case *ClassStmt:
		exec.declareClass(s)
		return NewNil(), false, nil
	case *TryStmt:
		return exec.evalTryStatement(s, env)
	case *ThrowStmt:
		return exec.evalThrowStatement(s, env)
	case *GuardStmt:
		return exec.evalGuardStatement(s, env)
	case *ImportStmt:
		return exec.evalImportStatement(s, env)
	case *ExportStmt:
		return exec.evalExportStatement(s, env)
	default:
		return NewNil(), false, exec.errorAt(ErrSyntaxShape, stmt.Pos(), "unsupported statement")
	}
}

func (exec *Execution) evalSipStatement(s *SipStmt, env *Env) (Value, bool, error) {
	if exec.input == nil {
		return NewNil(), false, exec.errorAt(ErrThrown, s.Pos(), "sip %s: no input source bound", s.Name)
	}
	line, err := exec.input(fmt.Sprintf("Enter value for %s: ", s.Name))
	if err != nil {
		return NewNil(), false, exec.errorAt(ErrThrown, s.Pos(), "sip %s: %s", s.Name, err)
	}
	exec.assignName(s.Name, NewString(line), env)
	return NewNil(), false, nil
}

// assignName is the single write path for plain identifiers. The security
// collaborator's write-guard applies here: a blocked write is skipped with a
// warning the caller can observe, never an error.
func (exec *Execution) assignName(name string, val Value, env *Env) {
	if exec.security != nil && exec.security.BlocksWrite(name) {
		exec.warnf("write to guarded name %q blocked", name)
		return
	}
	env.Set(name, val)
}

func (exec *Execution) assign(target Expression, value Value, env *Env) error {
	switch t := target.(type) {
	case *Identifier:
		exec.assignName(t.Name, value, env)
		return nil
	case *MemberExpr:
		obj, err := exec.evalExpression(t.Object, env)
		if err != nil {
			return err
		}
		switch obj.Kind() {
		case KindInstance:
			// Property writes land on the shared dictionary: this is the
			// alias half of the scoping contract.
			obj.Instance().Props[t.Property] = value
			return nil
		default:
			// Namespaces are deliberately not assignable: builtin
			// namespaces and cached module exports are engine-shared, and
			// a member write would leak across otherwise isolated runs.
			return exec.errorAt(ErrSyntaxShape, t.Pos(), "cannot assign to property %q of %s", t.Property, obj.Kind())
		}
	case *IndexExpr:
		obj, err := exec.evalExpression(t.Object, env)
		if err != nil {
			return err
		}
		if obj.Kind() != KindArray {
			return exec.errorAt(ErrSyntaxShape, t.Object.Pos(), "cannot index %s", obj.Kind())
		}
		idx, err := exec.evalExpression(t.Index, env)
		if err != nil {
			return err
		}
		i, err := exec.indexValue(idx, t.Index.Pos())
		if err != nil {
			return err
		}
		arr := obj.Array()
		if i < 0 || i >= len(arr.Elems) {
			return exec.errorAt(ErrIndexBounds, t.Index.Pos(), "array index %d out of bounds for length %d", i, len(arr.Elems))
		}
		arr.Elems[i] = value
		return nil
	default:
		return exec.errorAt(ErrSyntaxShape, target.Pos(), "invalid assignment target")
	}
}

func (exec *Execution) declareFunction(s *FunctionStmt) {
	st := exec.state()
	st.functions[s.Name] = &FunctionDef{
		Name:   s.Name,
		Params: s.Params,
		Body:   s.Body,
		Line:   s.Pos().Line,
		Async:  s.Async,
		owner:  st,
	}
}

func (exec *Execution) declareClass(s *ClassStmt) {
	st := exec.state()
	def := &ClassDef{
		Name:       s.Name,
		Properties: s.Properties,
		Methods:    make(map[string]*FunctionDef, len(s.Methods)),
	}
	for _, m := range s.Methods {
		def.Methods[m.Name] = &FunctionDef{
			Name:   s.Name + "." + m.Name,
			Params: m.Params,
			Body:   m.Body,
			Line:   m.Pos().Line,
			Async:  m.Async,
			owner:  st,
		}
	}
	st.classes[s.Name] = def
}

func (exec *Execution) evalGuardStatement(s *GuardStmt, env *Env) (Value, bool, error) {
	exec.protectedDepth++
	if exec.security != nil {
		exec.security.EnterProtected()
	}
	val, returned, err := exec.evalStatements(s.Body, env)
	if exec.security != nil {
		exec.security.ExitProtected()
	}
	exec.protectedDepth--
	return val, returned, err
}

func (exec *Execution) evalExportStatement(s *ExportStmt, env *Env) (Value, bool, error) {
	if val, ok := env.Get(s.Name); ok {
		exec.exports[s.Name] = val
		return NewNil(), false, nil
	}
	st := exec.state()
	if fn, ok := st.functions[s.Name]; ok {
		exec.exports[s.Name] = NewFunction(fn)
		return NewNil(), false, nil
	}
	if def, ok := st.classes[s.Name]; ok {
		exec.exports[s.Name] = NewClass(def)
		return NewNil(), false, nil
	}
	return NewNil(), false, exec.errorAt(ErrUndefinedRef, s.Pos(), "cannot export undefined name %q", s.Name)
}
