package errors

import (
	"strings"
	"testing"

	"github.com/evil-lang/evil/internal/ast"
	"github.com/evil-lang/evil/internal/interp/rtvalue"
	"github.com/evil-lang/evil/internal/token"
)

func TestFormat_RuntimeError(t *testing.T) {
	source := "let x = 1;\nx.foo();\n"
	pos := token.Position{Line: 2, Column: 1}
	err := NewRuntimeError(ExpectedObject, pos, Descriptor{Name: "x", Value: "1"})

	got := Format(err, source, "main.evil", false)

	if !strings.Contains(got, "Error in main.evil:2:1") {
		t.Errorf("missing header: %q", got)
	}
	if !strings.Contains(got, "x.foo();") {
		t.Errorf("missing source line: %q", got)
	}
	if !strings.Contains(got, "ExpectedObject") {
		t.Errorf("missing kind in message: %q", got)
	}
}

func TestFormat_StructuralError_NoFile(t *testing.T) {
	pos := token.Position{Line: 1, Column: 5}
	err := NewStructuralError(TokenCannotBeParsed, pos, Descriptor{Value: "IDENT(\"x\")"})

	got := Format(err, "x y;", "", false)
	if !strings.HasPrefix(got, "Error at line 1:5\n") {
		t.Errorf("expected no-file header, got %q", got)
	}
}

func TestFormatWithContext_FallsBackWhenNoSource(t *testing.T) {
	pos := token.Position{Line: 3, Column: 1}
	err := NewStructuralError(Never, pos, Descriptor{})

	got := FormatWithContext(err, "", "f.evil", 2, false)
	want := Format(err, "", "f.evil", false)
	if got != want {
		t.Errorf("expected fallback to Format, got %q want %q", got, want)
	}
}

func TestFormatAll_Single(t *testing.T) {
	pos := token.Position{Line: 1, Column: 1}
	errs := []*StructuralError{NewStructuralError(EndOfTokenStream, pos, Descriptor{})}

	got := FormatAll(errs, "", "", false)
	want := Format(errs[0], "", "", false)
	if got != want {
		t.Errorf("single-error FormatAll should match Format, got %q want %q", got, want)
	}
}

func TestFormatAll_Multiple(t *testing.T) {
	pos := token.Position{Line: 1, Column: 1}
	errs := []*StructuralError{
		NewStructuralError(EndOfTokenStream, pos, Descriptor{}),
		NewStructuralError(UnknownOperator, pos, Descriptor{Value: "%%"}),
	}

	got := FormatAll(errs, "", "", false)
	if !strings.Contains(got, "parsing failed with 2 error(s)") {
		t.Errorf("missing error count banner: %q", got)
	}
	if !strings.Contains(got, "[error 1 of 2]") || !strings.Contains(got, "[error 2 of 2]") {
		t.Errorf("missing per-error banners: %q", got)
	}
}

func TestRuntimeError_FormatWithTrace(t *testing.T) {
	pos := token.Position{Line: 5, Column: 2}
	rt := NewRuntimeError(InvalidArguments, pos, Descriptor{Name: "push"}).
		WithTrace(StackTrace{
			NewStackFrame("Main", "f.evil", &token.Position{Line: 10, Column: 1}),
			NewStackFrame("helper", "f.evil", &token.Position{Line: 5, Column: 2}),
		})

	got := rt.FormatWithTrace("push();\n", "f.evil", false)
	if !strings.Contains(got, "helper [line: 5, column: 2]") {
		t.Errorf("expected trace top frame in output, got %q", got)
	}
	if !strings.Contains(got, "Main [line: 10, column: 1]") {
		t.Errorf("expected trace bottom frame in output, got %q", got)
	}
}

func TestRuntimeError_FormatWithTrace_NoTrace(t *testing.T) {
	pos := token.Position{Line: 1, Column: 1}
	rt := NewRuntimeError(Generic, pos, Descriptor{})

	got := rt.FormatWithTrace("", "", false)
	if strings.Contains(got, "[line:") {
		t.Errorf("expected no trace section when Trace is empty, got %q", got)
	}
}

func TestNewStackFrameForClosure_Named(t *testing.T) {
	cl := &rtvalue.Closure{Decl: &ast.FunctionDecl{Name: "calc"}}
	frame := NewStackFrameForClosure(cl, "f.evil", token.Position{Line: 3, Column: 4})

	if frame.FunctionName != "calc" {
		t.Errorf("expected FunctionName %q, got %q", "calc", frame.FunctionName)
	}
	if frame.FileName != "f.evil" {
		t.Errorf("expected FileName %q, got %q", "f.evil", frame.FileName)
	}
}

func TestNewStackFrameForClosure_Anonymous(t *testing.T) {
	cl := &rtvalue.Closure{Decl: &ast.FunctionDecl{Name: ""}}
	frame := NewStackFrameForClosure(cl, "f.evil", token.Position{Line: 1, Column: 1})

	if frame.FunctionName != "<anonymous>" {
		t.Errorf("expected anonymous function name, got %q", frame.FunctionName)
	}
}
