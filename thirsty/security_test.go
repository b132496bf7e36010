package thirsty

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

type recordingHook struct {
	blocked    map[string]bool
	depth      int
	maxDepth   int
	enterCalls int
	exitCalls  int
}

func (h *recordingHook) EnterProtected() {
	h.enterCalls++
	h.depth++
	if h.depth > h.maxDepth {
		h.maxDepth = h.depth
	}
}

func (h *recordingHook) ExitProtected() {
	h.exitCalls++
	h.depth--
}

func (h *recordingHook) BlocksWrite(name string) bool {
	return h.blocked[name]
}

func runSecured(t *testing.T, source string, hook SecurityHook) (*Result, string) {
	t.Helper()
	engine := NewEngine(Config{})
	script, err := engine.Compile(source)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	var out bytes.Buffer
	res, err := script.Run(context.Background(), RunOptions{Output: &out, Security: hook})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return res, out.String()
}

func TestBlockedWriteSkippedWithWarning(t *testing.T) {
	hook := &recordingHook{blocked: map[string]bool{"secret": true}}
	res, out := runSecured(t, `drink secret = "overwritten"
drink open = "fine"
pour open`, hook)
	if out != "fine\n" {
		t.Fatalf("unexpected output: %q", out)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d: %v", len(res.Warnings), res.Warnings)
	}
	if !strings.Contains(res.Warnings[0], "secret") {
		t.Fatalf("warning should name the variable: %q", res.Warnings[0])
	}
}

func TestBlockedWritePreservesSeededValue(t *testing.T) {
	hook := &recordingHook{blocked: map[string]bool{"limit": true}}
	engine := NewEngine(Config{})
	script, err := engine.Compile(`limit = 999
pour limit`)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	var out bytes.Buffer
	res, err := script.Run(context.Background(), RunOptions{
		Output:   &out,
		Security: hook,
		Globals:  map[string]Value{"limit": NewNumber(10)},
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out.String() != "10\n" {
		t.Fatalf("expected guarded value intact, got %q", out.String())
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", res.Warnings)
	}
}

func TestGuardBlockBrackets(t *testing.T) {
	hook := &recordingHook{}
	_, out := runSecured(t, `guard {
	drink x = 1
	pour x
}`, hook)
	if out != "1\n" {
		t.Fatalf("unexpected output: %q", out)
	}
	if hook.enterCalls != 1 || hook.exitCalls != 1 {
		t.Fatalf("expected balanced enter/exit, got %d/%d", hook.enterCalls, hook.exitCalls)
	}
}

func TestNestedGuardBlocks(t *testing.T) {
	hook := &recordingHook{}
	runSecured(t, `guard {
	guard {
		drink x = 1
	}
}`, hook)
	if hook.maxDepth != 2 {
		t.Fatalf("expected protection depth 2, got %d", hook.maxDepth)
	}
	if hook.depth != 0 {
		t.Fatalf("expected balanced depth after run, got %d", hook.depth)
	}
}

func TestGuardExitsOnError(t *testing.T) {
	hook := &recordingHook{}
	engine := NewEngine(Config{})
	script, err := engine.Compile(`guard {
	pour 1 / 0
}`)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	_, err = script.Run(context.Background(), RunOptions{Security: hook})
	wantLangError(t, err, ErrDivisionByZero)
	if hook.depth != 0 {
		t.Fatalf("expected protection released on error, got depth %d", hook.depth)
	}
}

func TestWarningsSurviveFailedRun(t *testing.T) {
	hook := &recordingHook{blocked: map[string]bool{"x": true}}
	engine := NewEngine(Config{})
	script, err := engine.Compile(`drink x = 1
pour 1 / 0`)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	res, err := script.Run(context.Background(), RunOptions{Security: hook})
	wantLangError(t, err, ErrDivisionByZero)
	if res == nil || len(res.Warnings) != 1 {
		t.Fatalf("expected warnings on failed run result, got %#v", res)
	}
}

func TestNoHookMeansNoRestrictions(t *testing.T) {
	got := runProgram(t, `drink anything = 1
anything = 2
pour anything`)
	if got != "2\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}
