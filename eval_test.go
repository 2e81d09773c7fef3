package formula_test

import (
	"fmt"
	"math/cmplx"
	"testing"

	"github.com/zmath/formula"
)

// near compares complex values with slack for the exp/log round trip inside
// cmplx.Pow.
func near(a, b complex128) bool {
	return cmplx.Abs(a-b) < 1e-12
}

func TestEvalPrecedence(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want complex128
	}{
		{"mul-binds", "2+3*4", 14},
		{"parens", "(2+3)*4", 20},
		{"pow-left", "2^3^2", 64},
		{"sub-left", "2-3-4", -5},
		{"div-left", "12/2/3", 2},
		{"mixed", "2*3+4*5", 26},
		{"pow-binds", "2*3^2", 18},
		{"neg-literal", "-2+3", 1},
		{"pow-neg", "2^-1", 0.5},
		{"imag", "i*i", -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := formula.New(c.src)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.src, err)
			}
			ev, err := formula.Compile(p, formula.Complex128Ops())
			if err != nil {
				t.Fatalf("failed to compile %q: %v", c.src, err)
			}
			if got := ev.Eval(); !near(got, c.want) {
				t.Errorf("%q evaluated to %v, want %v", c.src, got, c.want)
			}
		})
	}
}

func TestEvalVariableBinding(t *testing.T) {
	p, err := formula.New("z*z+c")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	ev, err := formula.Compile(p, formula.Complex128Ops())
	if err != nil {
		t.Fatalf("failed to compile: %v", err)
	}
	// Variables default to zero.
	if got := ev.Eval(); got != 0 {
		t.Errorf("unbound evaluation gave %v, want 0", got)
	}
	if !ev.Set(0, 0.5) {
		t.Error("Set(0) reported z as unreferenced")
	}
	if !ev.Set(-1, 0.5) {
		t.Error("Set(-1) reported c as unreferenced")
	}
	if got := ev.Eval(); got != 0.75 {
		t.Errorf("z*z+c with z=c=0.5 gave %v, want 0.75", got)
	}
	ev.SetAll(0.5)
	if got := ev.Eval(); got != 0.75 {
		t.Errorf("after SetAll(0.5) got %v, want 0.75", got)
	}
}

func TestEvalMutateWithoutRecompile(t *testing.T) {
	p, err := formula.New("z*z+c")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	ev, err := formula.Compile(p, formula.Complex128Ops())
	if err != nil {
		t.Fatalf("failed to compile: %v", err)
	}
	ev.Set(-1, 0.25)
	var z complex128
	want := []complex128{0.25, 0.3125, 0.34765625}
	for i, w := range want {
		ev.Set(0, z)
		z = ev.Eval()
		if z != w {
			t.Errorf("iteration %d gave %v, want %v", i, z, w)
		}
	}
}

func TestEvalDeterminism(t *testing.T) {
	p, err := formula.New("sin(z)+c*2^z-abs(z/c)")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	ev, err := formula.Compile(p, formula.Complex128Ops())
	if err != nil {
		t.Fatalf("failed to compile: %v", err)
	}
	ev.Set(0, complex(0.3, 0.7))
	ev.Set(-1, complex(-1.1, 0.2))
	a := ev.Eval()
	b := ev.Eval()
	if a != b {
		t.Errorf("identical evaluations differ: %v vs %v", a, b)
	}
}

func TestEvaluatorOutlivesParser(t *testing.T) {
	p, err := formula.New("z+c")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	ev, err := formula.Compile(p, formula.Complex128Ops())
	if err != nil {
		t.Fatalf("failed to compile: %v", err)
	}
	ev.Set(0, 2)
	ev.Set(-1, 3)
	// Reusing or clearing the parser must not affect the evaluator.
	if err := p.Parse("z*z"); err != nil {
		t.Fatalf("reparse failed: %v", err)
	}
	p.Clear()
	if got := ev.Eval(); got != 5 {
		t.Errorf("evaluator changed after parser reuse: got %v, want 5", got)
	}
}

func TestEvaluatorTable(t *testing.T) {
	p, err := formula.New("z*z3+c")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	ev, err := formula.Compile(p, formula.Complex128Ops())
	if err != nil {
		t.Fatalf("failed to compile: %v", err)
	}
	want := []int{-1, 0, 3}
	got := ev.Vars()
	if len(got) != len(want) {
		t.Fatalf("evaluator table has indices %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("evaluator table has indices %v, want %v", got, want)
		}
	}
	if ev.Set(7, 1) {
		t.Error("Set(7) claimed an unreferenced variable")
	}
	if _, ok := ev.Var(7); ok {
		t.Error("Var(7) claimed an unreferenced variable")
	}
	ev.Set(3, 4)
	if v, ok := ev.Var(3); !ok || v != 4 {
		t.Errorf("Var(3) = %v, %v after Set(3, 4)", v, ok)
	}
}

func Example() {
	p, _ := formula.New("z*z + c")
	fmt.Println(p)

	ev, _ := formula.Compile(p, formula.Complex128Ops())
	ev.SetAll(complex(0.5, 0))
	fmt.Println(ev.Eval())

	// Iterate the map: feed each result back into z.
	ev.Set(-1, complex(0.25, 0))
	z := complex128(0)
	for i := 0; i < 3; i++ {
		ev.Set(0, z)
		z = ev.Eval()
	}
	fmt.Println(z)

	// Output:
	// add(mul(z,z),c)
	// (0.75+0i)
	// (0.34765625+0i)
}
