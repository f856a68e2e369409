package interp

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/evil-lang/evil/internal/lexer"
	"github.com/evil-lang/evil/internal/parser"
	"github.com/gkampitakis/go-snaps/snaps"
)

// TestWorkedExampleSnapshots runs the single-file source → push_res_stack
// scenarios S1–S5 from spec.md §8 (S6 needs two files and is covered in
// interp_test.go) and snapshots the resulting trace with go-snaps, the
// same fixture-snapshotting tool the teacher uses for its own
// source-to-output test suite.
func TestWorkedExampleSnapshots(t *testing.T) {
	scenarios := []struct {
		name string
		src  string
	}{
		{
			name: "S1_arithmetic",
			src:  `push_res_stack(1 + 2 * 3, (1 + 2) * 3, 10 / 4, 10 / 2);`,
		},
		{
			name: "S2_closures_shared_cell",
			src: `
fn counter(){ let n = 0; fn get(){ return n; } fn inc(){ n += 1; } return get; }
let g = counter();
push_res_stack(g()); push_res_stack(g());
`,
		},
		{
			name: "S3_inheritance_super",
			src: `
class A { fn constructor(this, x){ this.x = x; } fn calc(this){ return this.x; } }
class B extends A { fn constructor(this,x,y){ super.constructor(this,x); this.y=y; }
                    fn calc(this){ return super.calc(this) + this.y; } }
let b = new B(10, 20); push_res_stack(b -> calc());
`,
		},
		{
			name: "S4_monkey_patching",
			src: `
class P { fn constructor(this,x,y){ this.x=x; this.y=y; } fn calc(this){ return this.x+this.y; } }
fn pusher(o){ push_res_stack(o.x, o.y, o->calc()); }
let p = new P(10,12); pusher(p);
P.push = pusher; p -> push();
`,
		},
		{
			name: "S5_for_scoping_nested_break",
			src: `
for (let i = 0; i < 3; i += 1) {
  for (let j = 0; j < 3; j += 1) { if (j == 2) break 2; push_res_stack(i, j); }
}
`,
		},
	}

	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			l := lexer.New(sc.src)
			p := parser.New(l)
			prog := p.ParseProgram()
			if errs := p.Errors(); len(errs) > 0 {
				t.Fatalf("parse errors: %v", errs)
			}

			it := New(&bytes.Buffer{})
			if err := it.Run(prog); err != nil {
				t.Fatalf("run: %v", err)
			}

			trace := make([]string, len(it.ResultStack.Values))
			for i, v := range it.ResultStack.Values {
				trace[i] = v.String()
			}
			snaps.MatchSnapshot(t, fmt.Sprintf("%s_trace", sc.name), trace)
		})
	}
}
