package calconsteroids

import "testing"

func TestSimplified(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"add", "1+2", "3"},
		{"subtree", "2*3+x", "6+x"},
		{"partial", "1+2+x", "3+x"},
		{"rightvar", "x*(1+2)", "x*3"},
		{"assoc", "2*3*4", "24"},
		{"negresult", "2-3", "-1"},
		{"negfactor", "(0-2)*3", "-6"},
		{"thirds", "1/3", "1/3"},
		{"quarter", "1/4", "0.25"},
		{"whole", "5/5", "1"},
		{"divzero", "4/0", "4/0"},
		{"decimals", "0.1+0.2", "0.3"},
		{"decimalmul", "0.5*0.5", "0.25"},
		{"fact", "3!", "6"},
		{"hugefact", "1001!", "1001!"},
		{"pow", "(1+1)^3", "2^3"},
		{"var", "x", "x"},
		{"varterm", "2x y", "2x y"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			w, err := ParseString(c.want)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.want, err)
			}
			s := a.Simplified()
			d, e := s.n.diff(w.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\t%q simplifies to %v which has %v\n\t%q parses %v which has %v", c.src, s.n, d, c.want, w.n, e)
			}
		})
	}
}

func TestSimplifiedLeavesOriginal(t *testing.T) {
	a, err := ParseString("1+2+x")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	before := a.String()
	s := a.Simplified()
	if a.String() != before {
		t.Errorf("Simplified modified its receiver: %q became %q", before, a.String())
	}
	if got := s.Vars(); len(got) != 1 || got[0] != "x" {
		t.Errorf("simplified expression lost vars: %v", got)
	}
}
