package calconsteroids

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind

	name string

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum // push num
	nodeVar // push lookup(name)

	nodeNeg  // evaluate left, then negate
	nodeFact // evaluate left, then factorial
	nodeAdd  // evaluate left, add right
	nodeSub  // evaluate left, sub right
	nodeMul  // evaluate left, mul right
	nodeDiv  // evaluate left, div by right
	nodePow  // evaluate left, exp by right
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeNum:
		return "Num"
	case nodeVar:
		return "Var"
	case nodeNeg:
		return "Neg"
	case nodeFact:
		return "Fact"
	case nodeAdd:
		return "Add"
	case nodeSub:
		return "Sub"
	case nodeMul:
		return "Mul"
	case nodeDiv:
		return "Div"
	case nodePow:
		return "Pow"
	default:
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes the canonical explicit-operator form of the tree. Every node is
// parenthesized, so the output reparses to a structurally equal tree.
func (n *node) fmt(b *strings.Builder) {
	b.WriteByte('(')
	defer b.WriteByte(')')
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		if n.left != nil {
			n.left.fmt(b)
		}
		b.WriteByte('#')
		if n.right != nil {
			n.right.fmt(b)
		}
		b.WriteByte('$')
	case nodeNum, nodeVar:
		b.WriteString(n.name)
	case nodeNeg:
		b.WriteByte('-')
		n.left.fmt(b)
	case nodeFact:
		n.left.fmt(b)
		b.WriteByte('!')
	case nodeAdd:
		n.left.fmt(b)
		b.WriteString(" + ")
		n.right.fmt(b)
	case nodeSub:
		n.left.fmt(b)
		b.WriteString(" - ")
		n.right.fmt(b)
	case nodeMul:
		n.left.fmt(b)
		b.WriteString(" * ")
		n.right.fmt(b)
	case nodeDiv:
		n.left.fmt(b)
		b.WriteString(" / ")
		n.right.fmt(b)
	case nodePow:
		n.left.fmt(b)
		b.WriteString(" ^ ")
		n.right.fmt(b)
	default:
		panic("calconsteroids: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

// latex writes the tree in LaTeX notation. Products of simple factors are
// juxtaposed; other multiplications spell \cdot.
func (n *node) latex(b *strings.Builder) {
	switch n.kind {
	case nodeNum, nodeVar:
		b.WriteString(n.name)
	case nodeNeg:
		b.WriteByte('-')
		b.WriteByte('(')
		n.left.latex(b)
		b.WriteByte(')')
	case nodeFact:
		b.WriteByte('(')
		n.left.latex(b)
		b.WriteString(")!")
	case nodeMul:
		switch {
		case leaf(n.left) && n.right.kind == nodeVar:
			b.WriteString(n.left.name)
			b.WriteString(n.right.name)
		case leaf(n.left) && !leaf(n.right) && n.right.kind != nodeNeg:
			// The right side brackets itself: 2(x + 1).
			b.WriteString(n.left.name)
			n.right.latex(b)
		default:
			n.binlatex(b, ` \cdot `)
		}
	case nodeAdd:
		n.binlatex(b, " + ")
	case nodeSub:
		n.binlatex(b, " - ")
	case nodeDiv:
		n.binlatex(b, " / ")
	case nodePow:
		n.binlatex(b, " ^ ")
	default:
		panic("calconsteroids: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

func (n *node) binlatex(b *strings.Builder, op string) {
	b.WriteByte('(')
	n.left.latex(b)
	b.WriteString(op)
	n.right.latex(b)
	b.WriteByte(')')
}

// leaf reports whether a node is a bare number or variable.
func leaf(n *node) bool {
	return n.kind == nodeNum || n.kind == nodeVar
}
