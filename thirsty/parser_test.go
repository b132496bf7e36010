package thirsty

import (
	"testing"
)

func parseOne(t *testing.T, source string) Statement {
	t.Helper()
	program := mustParse(t, source)
	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	return program.Statements[0]
}

func mustParse(t *testing.T, source string) *Program {
	t.Helper()
	p := newParser(source)
	program, errs := p.ParseProgram()
	if len(errs) > 0 {
		t.Fatalf("parse failed: %v", errs[0])
	}
	return program
}

func parseFailure(t *testing.T, source string) *parseError {
	t.Helper()
	p := newParser(source)
	_, errs := p.ParseProgram()
	if len(errs) == 0 {
		t.Fatalf("expected parse error for %q", source)
	}
	pe, ok := errs[0].(*parseError)
	if !ok {
		t.Fatalf("expected *parseError, got %T", errs[0])
	}
	return pe
}

func TestParseDrinkStatement(t *testing.T) {
	stmt, ok := parseOne(t, `drink x = 5`).(*DrinkStmt)
	if !ok {
		t.Fatalf("expected *DrinkStmt")
	}
	if stmt.Name != "x" {
		t.Fatalf("expected name x, got %q", stmt.Name)
	}
	num, ok := stmt.Value.(*NumberLiteral)
	if !ok || num.Value != 5 {
		t.Fatalf("expected number literal 5, got %#v", stmt.Value)
	}
}

func TestParsePrecedence(t *testing.T) {
	// 2 + 3 * 4 must parse as 2 + (3 * 4).
	stmt := parseOne(t, `2 + 3 * 4`).(*ExprStmt)
	add, ok := stmt.Expr.(*BinaryExpr)
	if !ok || add.Operator != tokenPlus {
		t.Fatalf("expected + at root, got %#v", stmt.Expr)
	}
	mul, ok := add.Right.(*BinaryExpr)
	if !ok || mul.Operator != tokenAsterisk {
		t.Fatalf("expected * on the right, got %#v", add.Right)
	}
}

func TestParseGrouping(t *testing.T) {
	stmt := parseOne(t, `(2 + 3) * 4`).(*ExprStmt)
	mul, ok := stmt.Expr.(*BinaryExpr)
	if !ok || mul.Operator != tokenAsterisk {
		t.Fatalf("expected * at root, got %#v", stmt.Expr)
	}
	if _, ok := mul.Left.(*BinaryExpr); !ok {
		t.Fatalf("expected grouped + on the left, got %#v", mul.Left)
	}
}

func TestParseIfElse(t *testing.T) {
	stmt, ok := parseOne(t, `if x > 1 {
	pour "big"
} else {
	pour "small"
}`).(*IfStmt)
	if !ok {
		t.Fatalf("expected *IfStmt")
	}
	if len(stmt.Consequent) != 1 || len(stmt.Alternate) != 1 {
		t.Fatalf("expected 1 statement per branch, got %d/%d", len(stmt.Consequent), len(stmt.Alternate))
	}
}

func TestParseFunctionDeclaration(t *testing.T) {
	stmt, ok := parseOne(t, `function add(a, b) {
	return a + b
}`).(*FunctionStmt)
	if !ok {
		t.Fatalf("expected *FunctionStmt")
	}
	if stmt.Name != "add" || len(stmt.Params) != 2 || stmt.Async {
		t.Fatalf("unexpected function shape: %#v", stmt)
	}
}

func TestParseAsyncFunction(t *testing.T) {
	stmt := parseOne(t, `async function fetch(url) {
	return url
}`).(*FunctionStmt)
	if !stmt.Async {
		t.Fatalf("expected async function")
	}
}

func TestParseBareReturn(t *testing.T) {
	program := mustParse(t, `function f() {
	return
}`)
	fn := program.Statements[0].(*FunctionStmt)
	ret := fn.Body[0].(*ReturnStmt)
	if ret.Value != nil {
		t.Fatalf("expected bare return, got value %#v", ret.Value)
	}
}

func TestParseClassDeclaration(t *testing.T) {
	stmt, ok := parseOne(t, `class Counter {
	property count = 0
	function init(start) {
		this.count = start
	}
	function bump() {
		this.count = this.count + 1
	}
}`).(*ClassStmt)
	if !ok {
		t.Fatalf("expected *ClassStmt")
	}
	if stmt.Name != "Counter" || len(stmt.Properties) != 1 || len(stmt.Methods) != 2 {
		t.Fatalf("unexpected class shape: %#v", stmt)
	}
	if stmt.Properties[0].Name != "count" {
		t.Fatalf("expected property count, got %q", stmt.Properties[0].Name)
	}
}

func TestParseTryCatchFinally(t *testing.T) {
	stmt, ok := parseOne(t, `try {
	throw "boom"
} catch (e) {
	pour e.message
} finally {
	pour "done"
}`).(*TryStmt)
	if !ok {
		t.Fatalf("expected *TryStmt")
	}
	if !stmt.HasCatch || stmt.CatchVar != "e" || len(stmt.Finally) != 1 {
		t.Fatalf("unexpected try shape: %#v", stmt)
	}
}

func TestParseTryFinallyOnly(t *testing.T) {
	stmt := parseOne(t, `try {
	pour 1
} finally {
	pour 2
}`).(*TryStmt)
	if stmt.HasCatch || len(stmt.Finally) != 1 {
		t.Fatalf("unexpected try shape: %#v", stmt)
	}
}

func TestParseTryWithoutHandlers(t *testing.T) {
	pe := parseFailure(t, `try {
	pour 1
}`)
	if pe.kind != ErrSyntaxShape {
		t.Fatalf("expected SyntaxShapeError, got %q", pe.kind)
	}
}

func TestParseImport(t *testing.T) {
	stmt, ok := parseOne(t, `import "mathutils" as mu`).(*ImportStmt)
	if !ok {
		t.Fatalf("expected *ImportStmt")
	}
	if stmt.Module != "mathutils" || stmt.Alias != "mu" {
		t.Fatalf("unexpected import: %#v", stmt)
	}
}

func TestParseAssignmentTargets(t *testing.T) {
	tests := []string{
		`x = 1`,
		`obj.prop = 1`,
		`arr[0] = 1`,
	}
	for _, src := range tests {
		if _, ok := parseOne(t, src).(*AssignStmt); !ok {
			t.Fatalf("input %q: expected *AssignStmt", src)
		}
	}
}

func TestParseInvalidAssignmentTarget(t *testing.T) {
	parseFailure(t, `1 + 2 = 3`)
}

func TestParseUnmatchedBlock(t *testing.T) {
	pe := parseFailure(t, `while true {
	pour 1`)
	if pe.kind != ErrUnmatchedBlock {
		t.Fatalf("expected UnmatchedBlock, got %q", pe.kind)
	}
}

func TestParseStringBraceNotStructural(t *testing.T) {
	// A brace inside a string literal must not close the block.
	stmt := parseOne(t, `if true {
	pour "closing } brace"
}`).(*IfStmt)
	if len(stmt.Consequent) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(stmt.Consequent))
	}
}

func TestParseCallWithNestedArguments(t *testing.T) {
	stmt := parseOne(t, `f(g(1, 2), "a, b", h())`).(*ExprStmt)
	call := stmt.Expr.(*CallExpr)
	if len(call.Args) != 3 {
		t.Fatalf("expected 3 arguments, got %d", len(call.Args))
	}
	if lit, ok := call.Args[1].(*StringLiteral); !ok || lit.Value != "a, b" {
		t.Fatalf("comma inside string split an argument: %#v", call.Args[1])
	}
}

func TestParseAwaitExpression(t *testing.T) {
	stmt := parseOne(t, `drink result = await work()`).(*DrinkStmt)
	aw, ok := stmt.Value.(*AwaitExpr)
	if !ok {
		t.Fatalf("expected *AwaitExpr, got %#v", stmt.Value)
	}
	if _, ok := aw.Operand.(*CallExpr); !ok {
		t.Fatalf("expected call operand, got %#v", aw.Operand)
	}
}

func TestParseGuardBlock(t *testing.T) {
	stmt, ok := parseOne(t, `guard {
	x = 1
}`).(*GuardStmt)
	if !ok {
		t.Fatalf("expected *GuardStmt")
	}
	if len(stmt.Body) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(stmt.Body))
	}
}

func TestParseExport(t *testing.T) {
	stmt, ok := parseOne(t, `export helper`).(*ExportStmt)
	if !ok || stmt.Name != "helper" {
		t.Fatalf("unexpected export: %#v", stmt)
	}
}

func TestParseMemberChain(t *testing.T) {
	stmt := parseOne(t, `a.b.c`).(*ExprStmt)
	outer := stmt.Expr.(*MemberExpr)
	if outer.Property != "c" {
		t.Fatalf("expected property c, got %q", outer.Property)
	}
	inner := outer.Object.(*MemberExpr)
	if inner.Property != "b" {
		t.Fatalf("expected property b, got %q", inner.Property)
	}
}

func TestParseIndexExpression(t *testing.T) {
	stmt := parseOne(t, `items[i + 1]`).(*ExprStmt)
	idx := stmt.Expr.(*IndexExpr)
	if _, ok := idx.Index.(*BinaryExpr); !ok {
		t.Fatalf("expected binary index expression, got %#v", idx.Index)
	}
}
