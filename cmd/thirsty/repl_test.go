package main

import (
	"strings"
	"testing"
)

func TestREPLEvaluateExpression(t *testing.T) {
	m := newREPLModel()
	out, isErr := m.evaluate("2 + 3")
	if isErr {
		t.Fatalf("unexpected error: %s", out)
	}
	if out != "5" {
		t.Fatalf("expected 5, got %q", out)
	}
}

func TestREPLStatePersistsAcrossInputs(t *testing.T) {
	m := newREPLModel()
	if out, isErr := m.evaluate("drink x = 4"); isErr {
		t.Fatalf("unexpected error: %s", out)
	}
	out, isErr := m.evaluate("x * x")
	if isErr {
		t.Fatalf("unexpected error: %s", out)
	}
	if out != "16" {
		t.Fatalf("expected 16, got %q", out)
	}
}

func TestREPLEvaluateShowsPouredOutput(t *testing.T) {
	m := newREPLModel()
	out, isErr := m.evaluate(`pour "hello"`)
	if isErr {
		t.Fatalf("unexpected error: %s", out)
	}
	if !strings.Contains(out, "hello") {
		t.Fatalf("expected poured output, got %q", out)
	}
}

func TestREPLEvaluateSurfacesErrors(t *testing.T) {
	m := newREPLModel()
	out, isErr := m.evaluate("1 / 0")
	if !isErr {
		t.Fatalf("expected error, got %q", out)
	}
	if !strings.Contains(out, "DivisionByZero") {
		t.Fatalf("expected DivisionByZero, got %q", out)
	}
}

func TestREPLTracksBindings(t *testing.T) {
	m := newREPLModel()
	m.evaluate("drink counter = 1")
	if _, ok := m.varNames["counter"]; !ok {
		t.Fatalf("expected counter tracked, got %v", m.varNames)
	}
	if val, ok := m.session.Lookup("counter"); !ok || val.Number() != 1 {
		t.Fatalf("expected counter visible in session")
	}
}

func TestREPLAutocompleteSingleMatch(t *testing.T) {
	m := newREPLModel()
	m.textInput.SetValue("whi")
	m = m.handleAutocomplete()
	if m.textInput.Value() != "while" {
		t.Fatalf("expected completion to while, got %q", m.textInput.Value())
	}
}

func TestREPLAutocompleteMultipleMatches(t *testing.T) {
	m := newREPLModel()
	m.textInput.SetValue("t")
	m = m.handleAutocomplete()
	if len(m.history) != 1 || !strings.Contains(m.history[0].output, "this") {
		t.Fatalf("expected completion listing, got %v", m.history)
	}
	if m.textInput.Value() != "t" {
		t.Fatalf("ambiguous completion must not rewrite input, got %q", m.textInput.Value())
	}
}
