package interp

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/evil-lang/evil/internal/lexer"
	"github.com/evil-lang/evil/internal/parser"
	"github.com/evil-lang/evil/internal/resolver"
)

// run parses and executes src against a fresh Interpreter, returning the
// interpreter (so callers can inspect ResultStack) and any error.
func run(t *testing.T, src string) (*Interpreter, error) {
	t.Helper()
	l := lexer.New(src)
	p := parser.New(l)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	it := New(&bytes.Buffer{})
	err := it.Run(prog)
	return it, err
}

func pushedStrings(it *Interpreter) []string {
	out := make([]string, len(it.ResultStack.Values))
	for i, v := range it.ResultStack.Values {
		out[i] = v.String()
	}
	return out
}

func assertPushed(t *testing.T, src string, want ...string) *Interpreter {
	t.Helper()
	it, err := run(t, src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	got := pushedStrings(it)
	if len(got) != len(want) {
		t.Fatalf("push_res_stack trace = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("push_res_stack[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	return it
}

func TestArithmeticIntegerClosure(t *testing.T) {
	assertPushed(t, `push_res_stack(1 + 2 * 3, (1 + 2) * 3, 10 / 4, 10 / 2);`,
		"7", "9", "2.5", "5")
}

func TestClosuresShareVariableCell(t *testing.T) {
	assertPushed(t, `
fn counter(){ let n = 0; fn get(){ return n; } fn inc(){ n += 1; } return get; }
let g = counter();
push_res_stack(g()); push_res_stack(g());
`, "0", "0")
}

func TestInheritanceAndSuper(t *testing.T) {
	assertPushed(t, `
class A { fn constructor(this, x){ this.x = x; } fn calc(this){ return this.x; } }
class B extends A { fn constructor(this,x,y){ super.constructor(this,x); this.y=y; }
                    fn calc(this){ return super.calc(this) + this.y; } }
let b = new B(10, 20); push_res_stack(b -> calc());
`, "30")
}

func TestMonkeyPatching(t *testing.T) {
	assertPushed(t, `
class P { fn constructor(this,x,y){ this.x=x; this.y=y; } fn calc(this){ return this.x+this.y; } }
fn pusher(o){ push_res_stack(o.x, o.y, o->calc()); }
let p = new P(10,12); pusher(p);
P.push = pusher; p -> push();
`, "10", "12", "22", "10", "12", "22")
}

func TestForLoopScopingAndNestedBreak(t *testing.T) {
	assertPushed(t, `
for (let i = 0; i < 3; i += 1) {
  for (let j = 0; j < 3; j += 1) { if (j == 2) break 2; push_res_stack(i, j); }
}
`, "0", "0", "0", "1")
}

func TestNamespaceImportAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	libPath := filepath.Join(dir, "lib.evil")
	mainPath := filepath.Join(dir, "main.evil")
	if err := os.WriteFile(libPath, []byte(`namespace M { fn sq(n){ return n*n; } }`), 0o644); err != nil {
		t.Fatalf("write lib.evil: %v", err)
	}
	if err := os.WriteFile(mainPath, []byte(`import "lib.evil" as M; push_res_stack(M::sq(7));`), 0o644); err != nil {
		t.Fatalf("write main.evil: %v", err)
	}

	data, err := os.ReadFile(mainPath)
	if err != nil {
		t.Fatalf("read main.evil: %v", err)
	}
	l := lexer.New(string(data))
	p := parser.New(l)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	prog.File = mainPath

	it := New(&bytes.Buffer{})
	it.Resolver = resolver.NewFileResolver()
	if err := it.Run(prog); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := pushedStrings(it)
	if len(got) != 1 || got[0] != "49" {
		t.Fatalf("push_res_stack trace = %v, want [49]", got)
	}
}

func TestShortCircuitDoesNotInvokeRHS(t *testing.T) {
	assertPushed(t, `
fn boom(){ push_res_stack("boom"); return true; }
let a = false && boom();
let b = true || boom();
push_res_stack(a, b);
`, "false", "true")
}

func TestBreakBeyondOutermostLoopIsRuntimeError(t *testing.T) {
	_, err := run(t, `
for (let i = 0; i < 1; i += 1) { break 2; }
`)
	if err == nil {
		t.Fatalf("expected an error for break escaping the outermost loop")
	}
}

func TestHoistedLetCannotBeReadBeforeDeclaration(t *testing.T) {
	_, err := run(t, `
push_res_stack(x);
let x = 1;
`)
	if err == nil {
		t.Fatalf("expected CantAccessHoistedVariable error")
	}
}

func TestFunctionHoistingIsVisibleBeforeDeclaration(t *testing.T) {
	assertPushed(t, `
push_res_stack(early());
fn early(){ return 1; }
`, "1")
}

func TestMethodDispatchWalksParentChain(t *testing.T) {
	assertPushed(t, `
class Grandparent { fn m(this){ return "grandparent"; } }
class Parent extends Grandparent { }
class Child extends Parent { }
let c = new Child();
push_res_stack(c -> m());
`, "grandparent")
}

func TestVectorBasicOperations(t *testing.T) {
	assertPushed(t, `
let v = new Vector();
v -> push(1, 2, 3);
push_res_stack(v -> len(), v -> get(1));
v -> set(1, 99);
push_res_stack(v -> get(1));
push_res_stack(v -> pop());
push_res_stack(v -> len());
`, "3", "2", "99", "3", "2")
}

func TestVectorFromAndMap(t *testing.T) {
	assertPushed(t, `
let v = Vector::from(1, 2, 3);
let doubled = v -> map(fn(x){ return x * 2; });
push_res_stack(doubled -> get(0), doubled -> get(1), doubled -> get(2));
`, "2", "4", "6")
}
