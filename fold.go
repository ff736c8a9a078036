package calconsteroids

import (
	"math/big"
	"strings"
)

// maxFoldFactorial bounds the factorials Simplified is willing to expand.
const maxFoldFactorial = 1000

// Simplified returns a copy of the expression with constant subexpressions
// folded. Arithmetic is exact: a division folds only when its quotient has a
// terminating decimal form, a factorial only for integer operands up to
// maxFoldFactorial, and exponentiation never folds. Anything that does not
// fold is kept structurally intact. Negative folded values are represented as
// a negation of a literal so that folded trees remain expressible in the
// source syntax.
func (e *Expr) Simplified() *Expr {
	return &Expr{
		n:     fold(e.n),
		names: append(([]string)(nil), e.names...),
	}
}

func fold(n *node) *node {
	switch n.kind {
	case nodeNum, nodeVar:
		return n
	case nodeNeg:
		return &node{kind: nodeNeg, left: fold(n.left)}
	case nodeFact:
		l := fold(n.left)
		if x, ok := ratof(l); ok && x.IsInt() && x.Sign() >= 0 && x.Num().IsInt64() && x.Num().Int64() <= maxFoldFactorial {
			f := new(big.Int).MulRange(1, x.Num().Int64())
			if lit, ok := ratnode(new(big.Rat).SetInt(f)); ok {
				return lit
			}
		}
		return &node{kind: nodeFact, left: l}
	case nodeAdd, nodeSub, nodeMul, nodeDiv:
		l, r := fold(n.left), fold(n.right)
		a, aok := ratof(l)
		b, bok := ratof(r)
		if aok && bok {
			v := new(big.Rat)
			switch n.kind {
			case nodeAdd:
				v.Add(a, b)
			case nodeSub:
				v.Sub(a, b)
			case nodeMul:
				v.Mul(a, b)
			case nodeDiv:
				if b.Sign() == 0 {
					v = nil
				} else {
					v.Quo(a, b)
				}
			}
			if v != nil {
				if lit, ok := ratnode(v); ok {
					return lit
				}
			}
		}
		return &node{kind: n.kind, left: l, right: r}
	case nodePow:
		return &node{kind: nodePow, left: fold(n.left), right: fold(n.right)}
	default:
		panic("calconsteroids: invalid AST node " + n.kind.String())
	}
}

// ratof reads the exact rational value of a literal, or of a negated literal.
func ratof(n *node) (*big.Rat, bool) {
	switch n.kind {
	case nodeNum:
		r, ok := new(big.Rat).SetString(n.name)
		return r, ok
	case nodeNeg:
		if n.left.kind == nodeNum {
			if r, ok := new(big.Rat).SetString(n.left.name); ok {
				return r.Neg(r), true
			}
		}
	}
	return nil, false
}

// ratnode renders a rational as a literal node, negated if the value is
// negative. It fails if the value has no terminating decimal form.
func ratnode(x *big.Rat) (*node, bool) {
	s, ok := decimal(new(big.Rat).Abs(x))
	if !ok {
		return nil, false
	}
	n := &node{kind: nodeNum, name: s}
	if x.Sign() < 0 {
		n = &node{kind: nodeNeg, left: n}
	}
	return n, true
}

// decimal renders a nonnegative rational exactly in decimal. It fails if the
// reduced denominator has a prime factor other than 2 or 5.
func decimal(x *big.Rat) (string, bool) {
	if x.IsInt() {
		return x.Num().String(), true
	}
	d := new(big.Int).Set(x.Denom())
	digits := 0
	for _, p := range []int64{2, 5} {
		pb := big.NewInt(p)
		m := new(big.Int)
		n := 0
		for {
			q, r := new(big.Int).QuoRem(d, pb, m)
			if r.Sign() != 0 {
				break
			}
			d.Set(q)
			n++
		}
		if n > digits {
			digits = n
		}
	}
	if d.Cmp(big.NewInt(1)) != 0 {
		return "", false
	}
	s := x.FloatString(digits)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s, true
}
