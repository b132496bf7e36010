package thirsty

import (
	"bytes"
	"context"
	"fmt"
	"testing"
)

type mapLoader struct {
	sources map[string]string
	loads   map[string]int
}

func newMapLoader(sources map[string]string) *mapLoader {
	return &mapLoader{sources: sources, loads: make(map[string]int)}
}

func (m *mapLoader) Load(name string) (string, error) {
	m.loads[name]++
	source, ok := m.sources[name]
	if !ok {
		return "", fmt.Errorf("module %q not found", name)
	}
	return source, nil
}

func runWithLoader(t *testing.T, loader Loader, source string) (string, error) {
	t.Helper()
	engine := NewEngine(Config{Loader: loader})
	script, err := engine.Compile(source)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	var out bytes.Buffer
	_, err = script.Run(context.Background(), RunOptions{Output: &out})
	return out.String(), err
}

func TestImportExposesExports(t *testing.T) {
	loader := newMapLoader(map[string]string{
		"mathutils": `function square(n) {
	return n * n
}
drink magic = 7
export square
export magic`,
	})
	got, err := runWithLoader(t, loader, `import "mathutils" as mu
pour mu.square(4)
pour mu.magic`)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got != "16\n7\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestImportOnlyExportsVisible(t *testing.T) {
	loader := newMapLoader(map[string]string{
		"helpers": `drink internal = "secret"
drink public = "open"
export public`,
	})
	_, err := runWithLoader(t, loader, `import "helpers" as h
pour h.internal`)
	wantLangError(t, err, ErrUndefinedRef)
}

func TestModuleExportsImmutableAcrossImporters(t *testing.T) {
	// Cached module exports are shared between importers, so a member
	// write is rejected rather than leaking into the next import.
	loader := newMapLoader(map[string]string{
		"shared": `drink v = 1
export v`,
	})
	engine := NewEngine(Config{Loader: loader})

	first, err := engine.Compile(`import "shared" as s
s.v = 42`)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	_, err = first.Run(context.Background(), RunOptions{Output: &bytes.Buffer{}})
	wantLangError(t, err, ErrSyntaxShape)

	second, err := engine.Compile(`import "shared" as s
pour s.v`)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	var out bytes.Buffer
	if _, err := second.Run(context.Background(), RunOptions{Output: &out}); err != nil {
		t.Fatalf("second importer failed: %v", err)
	}
	if out.String() != "1\n" {
		t.Fatalf("write leaked into cached module: %q", out.String())
	}
}

func TestModuleCachedAcrossImports(t *testing.T) {
	loader := newMapLoader(map[string]string{
		"shared": `drink n = 1
export n`,
		"a": `import "shared" as s
export s`,
		"b": `import "shared" as s
export s`,
	})
	_, err := runWithLoader(t, loader, `import "a" as a
import "b" as b
import "shared" as s
pour s.n`)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if loader.loads["shared"] != 1 {
		t.Fatalf("expected shared loaded once, got %d", loader.loads["shared"])
	}
}

func TestCircularImportFails(t *testing.T) {
	loader := newMapLoader(map[string]string{
		"a": `import "b" as b`,
		"b": `import "a" as a`,
	})
	_, err := runWithLoader(t, loader, `import "a" as a`)
	wantLangError(t, err, ErrThrown)
}

func TestImportMissingModule(t *testing.T) {
	loader := newMapLoader(nil)
	_, err := runWithLoader(t, loader, `import "nowhere" as n`)
	wantLangError(t, err, ErrUndefinedRef)
}

func TestImportWithoutLoader(t *testing.T) {
	engine := NewEngine(Config{})
	script, err := engine.Compile(`import "anything" as a`)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	_, err = script.Run(context.Background(), RunOptions{})
	wantLangError(t, err, ErrThrown)
}

func TestModuleSyntaxErrorSurfaces(t *testing.T) {
	loader := newMapLoader(map[string]string{
		"broken": `drink = 5`,
	})
	_, err := runWithLoader(t, loader, `import "broken" as b`)
	wantLangError(t, err, ErrSyntaxShape)
}

func TestModuleRunsIsolated(t *testing.T) {
	// A module never sees the importer's variables.
	loader := newMapLoader(map[string]string{
		"peek": `drink visible = leak`,
	})
	_, err := runWithLoader(t, loader, `drink leak = "importer state"
import "peek" as p`)
	wantLangError(t, err, ErrUndefinedRef)
}

func TestModuleOutputRoutedToImporter(t *testing.T) {
	loader := newMapLoader(map[string]string{
		"noisy": `pour "module says hi"
drink x = 1
export x`,
	})
	got, err := runWithLoader(t, loader, `import "noisy" as n`)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got != "module says hi\n" {
		t.Fatalf("expected module output on importer stream, got %q", got)
	}
}

func TestExportedClassUsableAcrossModules(t *testing.T) {
	loader := newMapLoader(map[string]string{
		"shapes": `class Point {
	property x = 0
	property y = 0
	function init(x, y) {
		this.x = x
		this.y = y
	}
	function sum() {
		return this.x + this.y
	}
}
export Point`,
	})
	got, err := runWithLoader(t, loader, `import "shapes" as shapes
drink p = shapes.Point(3, 4)
pour p.sum()`)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got != "7\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestExportedFunctionResolvesOwnModule(t *testing.T) {
	// An exported function calling an unexported sibling must resolve it
	// in its own module, not the importer's.
	loader := newMapLoader(map[string]string{
		"calc": `function helper(n) {
	return n + 1
}
function entry(n) {
	return helper(n) * 2
}
export entry`,
	})
	got, err := runWithLoader(t, loader, `import "calc" as calc
pour calc.entry(4)`)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got != "10\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestClearModuleCache(t *testing.T) {
	loader := newMapLoader(map[string]string{
		"m": `drink v = 1
export v`,
	})
	engine := NewEngine(Config{Loader: loader})
	script, err := engine.Compile(`import "m" as m`)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if _, err := script.Run(context.Background(), RunOptions{}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if cleared := engine.ClearModuleCache(); cleared != 1 {
		t.Fatalf("expected 1 cached module cleared, got %d", cleared)
	}
	if _, err := script.Run(context.Background(), RunOptions{}); err != nil {
		t.Fatalf("rerun failed: %v", err)
	}
	if loader.loads["m"] != 2 {
		t.Fatalf("expected reload after cache clear, got %d loads", loader.loads["m"])
	}
}

func TestExportUndefinedNameFails(t *testing.T) {
	loader := newMapLoader(map[string]string{
		"bad": `export missing`,
	})
	_, err := runWithLoader(t, loader, `import "bad" as b`)
	wantLangError(t, err, ErrUndefinedRef)
}
