package thirsty

import (
	"context"
	"io"
	"sync"
)

// Config controls interpreter execution bounds and collaborators.
type Config struct {
	// MaxCallDepth bounds the call stack; checked before a frame is pushed.
	MaxCallDepth int
	// MaxLoopIterations bounds every loop; the only infinite-loop defense.
	MaxLoopIterations int
	// Loader resolves import statements to source text. The interpreter
	// never touches the filesystem itself.
	Loader Loader
	// MaxCachedModules caps the engine's compiled-module cache.
	MaxCachedModules int
}

const (
	DefaultMaxCallDepth      = 100
	DefaultMaxLoopIterations = 10000
	defaultMaxCachedModules  = 1000
)

// Engine compiles and executes Thirsty-lang programs with deterministic
// limits. Engines are safe for concurrent use; every Run owns isolated
// interpreter state.
type Engine struct {
	config     Config
	namespaces map[string]Value
	modules    map[string]*moduleEntry
	modMu      sync.RWMutex
}

// NewEngine constructs an Engine with sane defaults and registers the
// built-in namespaces.
func NewEngine(cfg Config) *Engine {
	if cfg.MaxCallDepth <= 0 {
		cfg.MaxCallDepth = DefaultMaxCallDepth
	}
	if cfg.MaxLoopIterations <= 0 {
		cfg.MaxLoopIterations = DefaultMaxLoopIterations
	}
	if cfg.MaxCachedModules <= 0 {
		cfg.MaxCachedModules = defaultMaxCachedModules
	}

	engine := &Engine{
		config:     cfg,
		namespaces: make(map[string]Value),
		modules:    make(map[string]*moduleEntry),
	}
	registerStdlib(engine)
	return engine
}

// RegisterNamespace exposes a named member bag to every script run on this
// engine. Callable members use NewBuiltin; pending operations come back via
// NewPending.
func (e *Engine) RegisterNamespace(name string, members map[string]Value) {
	e.namespaces[name] = NewNamespace(&Namespace{Name: name, Members: members})
}

// Compile parses source into a reusable Script. Parse failures surface as a
// single *Error: UnmatchedBlock when a brace never closes, SyntaxShapeError
// otherwise.
func (e *Engine) Compile(source string) (*Script, error) {
	p := newParser(source)
	program, errs := p.ParseProgram()
	if len(errs) > 0 {
		first := errs[0]
		if pe, ok := first.(*parseError); ok {
			return nil, &Error{
				Type:      pe.kind,
				Message:   pe.msg,
				CodeFrame: formatCodeFrame(source, pe.pos),
				Frames:    []StackFrame{{Function: "<program>", Pos: pe.pos}},
			}
		}
		return nil, first
	}
	return &Script{engine: e, program: program, source: source}, nil
}

// Execute compiles and runs source, discarding output. It fails on the
// first uncaught error.
func (e *Engine) Execute(ctx context.Context, source string) error {
	script, err := e.Compile(source)
	if err != nil {
		return err
	}
	_, err = script.Run(ctx, RunOptions{})
	return err
}

// ClearModuleCache drops all cached modules and returns the number of
// entries removed.
func (e *Engine) ClearModuleCache() int {
	e.modMu.Lock()
	defer e.modMu.Unlock()

	count := len(e.modules)
	clear(e.modules)
	return count
}

// Script is a compiled program bound to its engine.
type Script struct {
	engine  *Engine
	program *Program
	source  string
}

// InputFunc supplies one line of user input for a sip statement.
type InputFunc func(prompt string) (string, error)

// SecurityHook is the security-decoration collaborator: a re-entrant
// protected-scope marker pushed and popped around guard blocks, and a
// write-guard consulted on every assignment. A blocked write is skipped
// with a warning on the Result, never an error.
type SecurityHook interface {
	EnterProtected()
	ExitProtected()
	BlocksWrite(name string) bool
}

// RunOptions carries the per-run collaborators.
type RunOptions struct {
	Output   io.Writer
	Input    InputFunc
	Globals  map[string]Value
	Security SecurityHook
}

// Result reports what a run produced besides its output stream.
type Result struct {
	Exports  map[string]Value
	Warnings []string
}

// Run executes the program against a fresh, isolated root scope. The
// returned Result is non-nil even when the run fails, so blocked-write
// warnings survive an aborted run.
func (s *Script) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	exec := newExecution(s, ctx, opts, nil)
	env := exec.seedRootEnv(opts.Globals)

	_, _, err := exec.evalStatements(s.program.Statements, env)
	res := &Result{Exports: exec.exports, Warnings: exec.warnings}
	if err != nil {
		return res, err
	}
	return res, nil
}

// Session is a persistent interpreter for interactive use: variables,
// functions and classes accumulate across Eval calls. The REPL is built on
// this.
type Session struct {
	engine *Engine
	opts   RunOptions
	exec   *Execution
	env    *Env
}

// NewSession creates an interactive session sharing the engine's namespaces
// and module cache.
func (e *Engine) NewSession(opts RunOptions) *Session {
	script := &Script{engine: e, source: ""}
	exec := newExecution(script, context.Background(), opts, nil)
	env := exec.seedRootEnv(opts.Globals)
	return &Session{engine: e, opts: opts, exec: exec, env: env}
}

// Eval parses and executes one chunk of source against the session state,
// returning the value of its last statement.
func (s *Session) Eval(ctx context.Context, source string) (Value, error) {
	script, err := s.engine.Compile(source)
	if err != nil {
		return NewNil(), err
	}
	s.exec.script = script
	s.exec.ctx = ctx
	val, _, err := s.exec.evalStatements(script.program.Statements, s.env)
	if err != nil {
		return NewNil(), err
	}
	return val, nil
}

// Warnings returns the blocked-write warnings accumulated so far.
func (s *Session) Warnings() []string {
	return s.exec.warnings
}

// Lookup reads a variable from the session scope.
func (s *Session) Lookup(name string) (Value, bool) {
	return s.env.Get(name)
}
