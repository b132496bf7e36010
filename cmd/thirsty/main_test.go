package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScript(t *testing.T, dir, name, source string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestRunCLIRequiresCommand(t *testing.T) {
	if err := runCLI([]string{"thirsty"}); err == nil {
		t.Fatalf("expected usage error")
	}
}

func TestRunCLIUnknownCommand(t *testing.T) {
	if err := runCLI([]string{"thirsty", "bogus"}); err == nil {
		t.Fatalf("expected usage error")
	}
}

func TestRunCommandRequiresScript(t *testing.T) {
	if err := runCommand(nil); err == nil {
		t.Fatalf("expected missing-script error")
	}
}

func TestRunCommandExecutesScript(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "hello.thirsty", `drink x = 2 + 3
pour x`)
	if err := runCommand([]string{path}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
}

func TestRunCommandCheckOnly(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "loop.thirsty", `while true {
	drink x = 1
}`)
	// -check must not execute, so the unbounded loop is fine.
	if err := runCommand([]string{"-check", path}); err != nil {
		t.Fatalf("check failed: %v", err)
	}
}

func TestRunCommandCompileError(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "bad.thirsty", `drink = 5`)
	err := runCommand([]string{path})
	if err == nil || !strings.Contains(err.Error(), "compile failed") {
		t.Fatalf("expected compile failure, got %v", err)
	}
}

func TestRunCommandRuntimeError(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "crash.thirsty", `pour 1 / 0`)
	err := runCommand([]string{path})
	if err == nil || !strings.Contains(err.Error(), "DivisionByZero") {
		t.Fatalf("expected runtime failure, got %v", err)
	}
}

func TestRunCommandImportsFromScriptDir(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "helpers.thirsty", `function triple(n) {
	return n * 3
}
export triple`)
	path := writeScript(t, dir, "main.thirsty", `import "helpers" as h
pour h.triple(2)`)
	if err := runCommand([]string{path}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
}

func TestRunCommandModulePathFlag(t *testing.T) {
	scriptDir := t.TempDir()
	libDir := t.TempDir()
	writeScript(t, libDir, "lib.thirsty", `drink v = 1
export v`)
	path := writeScript(t, scriptDir, "main.thirsty", `import "lib" as lib
pour lib.v`)
	if err := runCommand([]string{"-module-path", libDir, path}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
}

func TestRunCommandRejectsMissingModulePath(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "main.thirsty", `pour 1`)
	err := runCommand([]string{"-module-path", filepath.Join(dir, "nope"), path})
	if err == nil {
		t.Fatalf("expected missing module path error")
	}
}

func TestComputeModulePathsDeduplicates(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "s.thirsty", `pour 1`)
	dirs, err := computeModulePaths(path, []string{dir, dir})
	if err != nil {
		t.Fatalf("computeModulePaths failed: %v", err)
	}
	if len(dirs) != 1 {
		t.Fatalf("expected deduplicated paths, got %v", dirs)
	}
}

func TestDirLoaderRejectsPathTraversal(t *testing.T) {
	loader := newDirLoader([]string{t.TempDir()})
	for _, name := range []string{"../escape", "sub/mod", `sub\mod`, ""} {
		if _, err := loader.Load(name); err == nil {
			t.Fatalf("expected rejection of %q", name)
		}
	}
}

func TestDirLoaderSearchesInOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeScript(t, first, "mod.thirsty", `drink origin = "first"
export origin`)
	writeScript(t, second, "mod.thirsty", `drink origin = "second"
export origin`)
	loader := newDirLoader([]string{first, second})
	source, err := loader.Load("mod")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !strings.Contains(source, "first") {
		t.Fatalf("expected first directory to win, got %q", source)
	}
}

func TestDirLoaderMissingModule(t *testing.T) {
	loader := newDirLoader([]string{t.TempDir()})
	if _, err := loader.Load("ghost"); err == nil {
		t.Fatalf("expected not-found error")
	}
}
