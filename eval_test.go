package calconsteroids

import (
	"math/big"
	"reflect"
	"testing"
)

// close checks that two finite values agree to well past any rounding from
// transcendental operations.
func close(got, want *big.Float) bool {
	if got.IsInf() || want.IsInf() {
		return got.IsInf() == want.IsInf() && got.Signbit() == want.Signbit()
	}
	d := new(big.Float).Sub(got, want)
	d.Abs(d)
	eps := big.NewFloat(1e-12)
	return d.Cmp(eps) <= 0
}

func TestEval(t *testing.T) {
	vars := map[string]*big.Float{
		"x":   big.NewFloat(3),
		"x_1": big.NewFloat(0.5),
	}
	cases := []struct {
		name string
		src  string
		want *big.Float
	}{
		{"add", "2+3", big.NewFloat(5)},
		{"sub", "2-3", big.NewFloat(-1)},
		{"div", "1/4", big.NewFloat(0.25)},
		{"pow", "2^10", big.NewFloat(1024)},
		{"negpow", "-2^2", big.NewFloat(-4)},
		{"fact", "3!", big.NewFloat(6)},
		{"factzero", "0!", big.NewFloat(1)},
		{"terms", "2x", big.NewFloat(6)},
		{"subscript", "x_1*4", big.NewFloat(2)},
		{"cdot", `2 \cdot 3`, big.NewFloat(6)},
		{"chain", "2x x", big.NewFloat(18)},
		{"divzero", "1/0", big.NewFloat(0).SetInf(false)},
		{"group", "2*(x+1)", big.NewFloat(8)},
	}
	ctx := NewContext(SetVars(vars))
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			r := ctx.Eval(a)
			if err := ctx.Err(); err != nil {
				t.Fatalf("%q failed to evaluate: %v", c.src, err)
			}
			if !close(r, c.want) {
				t.Errorf("%q evaluated to %g, want %g", c.src, r, c.want)
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  error
	}{
		{"zerozero", "0/0", new(DomainError)},
		{"undefined", "y", new(NameError)},
		{"fracfact", "2.5!", new(DomainError)},
		{"negfact", "(0-1)!", new(DomainError)},
		{"hugefact", "100000!", new(DomainError)},
		{"negbase", "(0-2)^2", new(DomainError)},
		{"parse", "2+", new(ExpectedAtomError)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := EvalString(c.src)
			if r != nil {
				t.Errorf("%q evaluated non-nil to %g", c.src, r)
			}
			if reflect.TypeOf(err) != reflect.TypeOf(c.err) {
				t.Errorf("wrong error type from %q: want %T, got %T (%v)", c.src, c.err, err, err)
			}
		})
	}
}

func TestEvalShortcut(t *testing.T) {
	r, err := EvalString("x^2+1", SetVar("x", big.NewFloat(4)))
	if err != nil {
		t.Fatalf("failed to evaluate: %v", err)
	}
	if !close(r, big.NewFloat(17)) {
		t.Errorf("evaluated to %g, want 17", r)
	}
}

func TestContextReuse(t *testing.T) {
	ctx := NewContext(SetVar("x", big.NewFloat(2)))
	a, err := ParseString("x+1")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if r := ctx.Eval(a); !close(r, big.NewFloat(3)) {
		t.Errorf("first evaluation gave %g, want 3", r)
	}
	ctx.Set("x", big.NewFloat(9))
	if r := ctx.Eval(a); !close(r, big.NewFloat(10)) {
		t.Errorf("second evaluation gave %g, want 10", r)
	}
	if v := ctx.Lookup("x"); !close(v, big.NewFloat(9)) {
		t.Errorf("lookup gave %g, want 9", v)
	}
	if v := ctx.Lookup("q"); v != nil {
		t.Errorf("lookup of undefined variable gave %g", v)
	}
}

func TestEvalAfterError(t *testing.T) {
	ctx := NewContext()
	bad, err := ParseString("1+0/0")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if r := ctx.Eval(bad); r != nil {
		t.Errorf("invalid division evaluated non-nil to %g", r)
	}
	if _, ok := ctx.Err().(*DomainError); !ok {
		t.Errorf("wrong error type: want *DomainError, got %T (%v)", ctx.Err(), ctx.Err())
	}
	good, err := ParseString("2+2")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	r := ctx.Eval(good)
	if err := ctx.Err(); err != nil {
		t.Fatalf("failed to evaluate after an error: %v", err)
	}
	if !close(r, big.NewFloat(4)) {
		t.Errorf("evaluated to %g, want 4", r)
	}
}

func TestClonePrec(t *testing.T) {
	ctx := NewContext(Prec(128), SetVar("x", big.NewFloat(2)))
	if ctx.Prec() != 128 {
		t.Errorf("wrong precision: want 128, got %d", ctx.Prec())
	}
	dup := ctx.Clone(Prec(64))
	if dup.Prec() != 64 {
		t.Errorf("wrong cloned precision: want 64, got %d", dup.Prec())
	}
	if v := dup.Lookup("x"); !close(v, big.NewFloat(2)) {
		t.Errorf("cloned context lost x: got %g", v)
	}
	dup.Set("x", big.NewFloat(5))
	if v := ctx.Lookup("x"); !close(v, big.NewFloat(2)) {
		t.Errorf("Set on clone changed original: got %g", v)
	}
}
