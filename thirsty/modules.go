package thirsty

// Loader resolves a module name from an import statement to source text.
// Implementations own all path mapping and I/O; a directory-backed loader
// lives in the CLI, tests use in-memory maps.
type Loader interface {
	Load(name string) (string, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(name string) (string, error)

func (f LoaderFunc) Load(name string) (string, error) { return f(name) }

type moduleEntry struct {
	namespace Value
}

func (exec *Execution) evalImportStatement(s *ImportStmt, env *Env) (Value, bool, error) {
	ns, err := exec.loadModule(s.Module, s.Pos())
	if err != nil {
		return NewNil(), false, err
	}
	alias := s.Alias
	if alias == "" {
		alias = s.Module
	}
	exec.assignName(alias, ns, env)
	return NewNil(), false, nil
}

// loadModule resolves, executes and caches a module. Each module runs once
// per engine in a fresh isolated execution; importers share the resulting
// namespace. The loading set travels into child executions so circular
// imports fail fast instead of recursing.
func (exec *Execution) loadModule(name string, pos Position) (Value, error) {
	engine := exec.engine

	engine.modMu.RLock()
	entry, cached := engine.modules[name]
	engine.modMu.RUnlock()
	if cached {
		return entry.namespace, nil
	}

	if exec.loading[name] {
		return NewNil(), exec.errorAt(ErrThrown, pos, "circular import of module %q", name)
	}

	loader := engine.config.Loader
	if loader == nil {
		return NewNil(), exec.errorAt(ErrThrown, pos, "import %q: no module loader configured", name)
	}
	source, err := loader.Load(name)
	if err != nil {
		return NewNil(), exec.errorAt(ErrUndefinedRef, pos, "cannot load module %q: %s", name, err)
	}

	modScript, err := engine.Compile(source)
	if err != nil {
		if langErr, ok := err.(*Error); ok {
			return NewNil(), exec.errorAt(langErr.Type, pos, "module %q: %s", name, langErr.Message)
		}
		return NewNil(), err
	}

	exec.loading[name] = true
	child := newExecution(modScript, exec.ctx, RunOptions{
		Output:   exec.output,
		Input:    exec.input,
		Security: exec.security,
	}, exec.loading)
	modEnv := child.seedRootEnv(nil)
	_, _, err = child.evalStatements(modScript.program.Statements, modEnv)
	delete(exec.loading, name)

	exec.warnings = append(exec.warnings, child.warnings...)
	if err != nil {
		return NewNil(), err
	}

	ns := NewNamespace(&Namespace{Name: name, Members: child.exports})

	engine.modMu.Lock()
	if len(engine.modules) >= engine.config.MaxCachedModules {
		for stale := range engine.modules {
			delete(engine.modules, stale)
			break
		}
	}
	engine.modules[name] = &moduleEntry{namespace: ns}
	engine.modMu.Unlock()

	return ns, nil
}
