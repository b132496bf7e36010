package thirsty

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrorType is the closed failure taxonomy of the interpreter.
type ErrorType string

const (
	ErrSyntaxShape    ErrorType = "SyntaxShapeError"
	ErrUndefinedRef   ErrorType = "UndefinedReference"
	ErrArity          ErrorType = "ArityError"
	ErrDepthExceeded  ErrorType = "DepthExceeded"
	ErrDivisionByZero ErrorType = "DivisionByZero"
	ErrIndexBounds    ErrorType = "IndexOutOfBounds"
	ErrUnmatchedBlock ErrorType = "UnmatchedBlock"
	ErrThrown         ErrorType = "ThrownError"
)

// Depth variants distinguish the two DepthExceeded guards.
const (
	DepthLoop = "loop"
	DepthCall = "call"
)

// StackFrame records one active invocation: the function name and the line
// it was entered from.
type StackFrame struct {
	Function string
	Pos      Position
}

// Error is every failure the interpreter raises. It stays fatal to the
// current run unless a try block intercepts it, at which point Record (built
// eagerly so the timestamp reflects raise time) binds to the catch variable.
type Error struct {
	Type      ErrorType
	Variant   string // loop or call for DepthExceeded
	Message   string
	CodeFrame string
	Frames    []StackFrame
	Record    *ExceptionRecord
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Type))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(e.CodeFrame)
	}
	for _, frame := range e.Frames {
		if frame.Pos.Line > 0 {
			fmt.Fprintf(&b, "\n  at %s (line %d)", frame.Function, frame.Pos.Line)
		} else {
			fmt.Fprintf(&b, "\n  at %s", frame.Function)
		}
	}
	return b.String()
}

func (exec *Execution) errorAt(kind ErrorType, pos Position, format string, args ...any) error {
	return exec.newError(kind, "", fmt.Sprintf(format, args...), pos)
}

func (exec *Execution) depthErrorAt(variant string, pos Position, format string, args ...any) error {
	return exec.newError(ErrDepthExceeded, variant, fmt.Sprintf(format, args...), pos)
}

func (exec *Execution) newError(kind ErrorType, variant, message string, pos Position) error {
	frames := make([]StackFrame, 0, len(exec.callStack)+1)
	if len(exec.callStack) > 0 {
		current := exec.callStack[len(exec.callStack)-1]
		frames = append(frames, StackFrame{Function: current.Function, Pos: pos})
		for i := len(exec.callStack) - 1; i >= 0; i-- {
			frames = append(frames, StackFrame(exec.callStack[i]))
		}
	} else {
		frames = append(frames, StackFrame{Function: "<program>", Pos: pos})
	}

	codeFrame := ""
	if exec.script != nil {
		codeFrame = formatCodeFrame(exec.script.source, pos)
	}

	return &Error{
		Type:      kind,
		Variant:   variant,
		Message:   message,
		CodeFrame: codeFrame,
		Frames:    frames,
		Record: &ExceptionRecord{
			Message:   message,
			Type:      string(kind),
			Timestamp: time.Now(),
			Frames:    frames,
		},
	}
}

func formatCodeFrame(source string, pos Position) string {
	if source == "" || pos.Line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if pos.Line > len(lines) {
		return ""
	}

	lineText := lines[pos.Line-1]
	lineRunes := []rune(lineText)

	column := pos.Column
	if column <= 0 {
		column = 1
	}
	if column > len(lineRunes)+1 {
		column = len(lineRunes) + 1
	}

	lineLabel := strconv.Itoa(pos.Line)
	gutterPad := strings.Repeat(" ", len(lineLabel))
	caretPad := strings.Repeat(" ", column-1)

	return fmt.Sprintf(
		"  --> line %d, column %d\n %s | %s\n %s | %s^",
		pos.Line,
		column,
		lineLabel,
		lineText,
		gutterPad,
		caretPad,
	)
}
