package calconsteroids

import (
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Expr = num | var | Neg | Fact | Add | Sub | Mul | Div | Pow | '(' Expr ')'
// Neg = '-' Expr
// Fact = Expr '!'
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr | Expr '\cdot' Expr | Expr Expr
// Div = Expr '/' Expr
// Pow = Expr '^' Expr

// Expr is a parsed expression that can be evaluated with a context.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the list of variable names used in the expression.
	names []string
}

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	eofopt   struct{ ws string }
	depthopt int
)

// parsectx holds general data for parsing.
type parsectx struct {
	// names is the set of variable names that have been seen this parse.
	names map[string]bool
	// wseof is a string containing the whitespace characters that trigger an
	// EOF token from the lexer.
	wseof string
	// maxdepth is the bound on expression nesting.
	maxdepth int
}

// DefaultMaxDepth is the bound on expression nesting used when no MaxDepth
// option is given. It keeps adversarially nested input from exhausting the
// call stack.
const DefaultMaxDepth = 512

// StopOn tells the parser to treat a list of characters as ending the
// expression. Each rune must be a whitespace codepoint other than the ASCII
// space, which is always insignificant. With no arguments, StopOn produces
// the default termination behavior, which is to parse to EOF.
func StopOn(chars ...rune) ParseOption {
	var o eofopt
	v := make([]rune, 0, len(chars))
	have := func(r rune) bool {
		for _, c := range v {
			if r == c {
				return true
			}
		}
		return false
	}
	for _, r := range chars {
		if r == ' ' || !unicode.IsSpace(r) {
			panic("calconsteroids: cannot stop on " + strconv.QuoteRune(r))
		}
		if have(r) {
			continue
		}
		v = append(v, r)
	}
	o.ws = string(v)
	return &o
}

func (o *eofopt) parseOption(p parsectx) parsectx {
	p.wseof = o.ws
	return p
}

// MaxDepth sets the bound on expression nesting. Parsing fails with a
// NestingError when an expression nests more deeply.
func MaxDepth(depth int) ParseOption {
	if depth < 1 {
		panic("calconsteroids: nesting bound must be positive, not " + strconv.Itoa(depth))
	}
	return depthopt(depth)
}

func (o depthopt) parseOption(p parsectx) parsectx {
	p.maxdepth = int(o)
	return p
}

// Parse parses an expression so it can be evaluated with a context. The given
// options are applied in order. Errors describe the input and implement
// InputError; the input must be corrected and resubmitted.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Expr, error) {
	scan := lex(src)
	p := parsectx{
		names:    make(map[string]bool),
		maxdepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	n, err := parseterm(scan, &p, exprprec, 0)
	if err != nil {
		return nil, err
	}
	tok := scan.must()
	if n == nil {
		// parseterm yields no term only for a close paren with no term
		// before it.
		return nil, &UnexpectedTokenError{Col: tok.pos, Token: tok.text}
	}
	if tok.kind != tokenEOF {
		return nil, &UnexpectedTokenError{Col: tok.pos, Token: tok.text}
	}
	ex := Expr{
		n:     n,
		names: make([]string, 0, len(p.names)),
	}
	for k := range p.names {
		ex.names = append(ex.names, k)
	}
	sortstrs(ex.names)
	return &ex, nil
}

// ParseString is a shortcut to parse an expression from a string.
func ParseString(src string, opts ...ParseOption) (*Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// parseterm parses a single term. If there is no error, then parseterm pushes
// the last token it scans, including EOF. If the input is an empty
// subexpression ending in a close paren, the result is nil with no error;
// callers must create an error in contexts where that is illegal.
func parseterm(scan *lexer, p *parsectx, until operator, depth int) (*node, error) {
	if depth > p.maxdepth {
		return nil, &NestingError{Col: scan.rune, Depth: p.maxdepth}
	}
	n, err := parselhs(scan, p, until, depth)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	for {
		tok, err := scan.next(p.wseof)
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenOp:
			if tok.text == "!" {
				// Factorials bind during primary parsing; one here has no
				// completed primary to its immediate left.
				return nil, &FactorialPositionError{Col: tok.pos}
			}
			prec := binop(tok.text)
			if prec.op == nodeNone {
				return nil, &UnexpectedTokenError{Col: tok.pos, Token: tok.text}
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseterm(scan, p, prec, depth+1)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				end := scan.must()
				return nil, &ExpectedAtomError{Col: end.pos, End: end.text}
			}
			n = &node{kind: prec.op, left: n, right: rhs}
		case tokenNum:
			// Two numbers never multiply by juxtaposition.
			return nil, &UnexpectedTokenError{Col: tok.pos, Token: tok.text}
		case tokenVar, tokenOpen:
			// Juxtaposed factors are consumed by parsechain, so these cannot
			// follow a completed term.
			return nil, &UnexpectedTokenError{Col: tok.pos, Token: tok.text}
		case tokenClose, tokenEOF:
			// End of expression.
			scan.push(tok)
			return n, nil
		default:
			panic("calconsteroids: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first component of a term. I.e., operators are unary,
// any encountered token must be valid as the start of a subexpression, and
// whitespace normally lexed as EOF is ignored.
func parselhs(scan *lexer, p *parsectx, until operator, depth int) (*node, error) {
	// Don't use EOF whitespace for LHS.
	tok, err := scan.next("")
	if err != nil {
		return nil, err
	}
	var n *node
	switch tok.kind {
	case tokenNum:
		n = &node{kind: nodeNum, name: tok.text}
	case tokenVar:
		p.names[tok.text] = true
		n = &node{kind: nodeVar, name: tok.text}
	case tokenOp:
		switch {
		case unop(tok.text).op != nodeNone:
			prec := unop(tok.text)
			if !prec.moreBinding(until) {
				// x^-y -> x^(-y)
				// Just use the new operator's precedence to simplify.
				prec.prec, prec.right = until.prec, until.right
			}
			rhs, err := parseterm(scan, p, prec, depth+1)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				end := scan.must()
				return nil, &ExpectedAtomError{Col: end.pos, End: end.text}
			}
			return &node{kind: prec.op, left: rhs}, nil
		case tok.text == "!":
			return nil, &FactorialPositionError{Col: tok.pos}
		default:
			return nil, &ExpectedAtomError{Col: tok.pos, End: tok.text}
		}
	case tokenOpen:
		rhs, err := parsegroup(scan, p, depth)
		if err != nil {
			return nil, err
		}
		n = rhs
	case tokenClose:
		// This might end the enclosing group, so let the caller decide what
		// to do.
		scan.push(tok)
		return nil, nil
	case tokenEOF:
		return nil, &ExpectedAtomError{Col: tok.pos, End: ""}
	default:
		panic("calconsteroids: unknown token: " + tok.String())
	}
	return parsechain(scan, p, n, depth)
}

// parsegroup parses a parenthesized subexpression after its open paren has
// been scanned.
func parsegroup(scan *lexer, p *parsectx, depth int) (*node, error) {
	rhs, err := parseterm(scan, p, exprprec, depth+1)
	if err != nil {
		// Running out of input inside the group means the open paren is
		// never matched, which is the more helpful report.
		if ee, _ := err.(*ExpectedAtomError); ee != nil && ee.End == "" {
			err = &UnmatchedParenError{Col: ee.Col}
		}
		return nil, err
	}
	end := scan.must()
	if end.kind == tokenEOF {
		return nil, &UnmatchedParenError{Col: end.pos}
	}
	// parseterm stops only at a close paren or EOF.
	if rhs == nil {
		return nil, &ExpectedAtomError{Col: end.pos, End: end.text}
	}
	return rhs, nil
}

// parsechain extends a primary with juxtaposed variables and parenthesized
// groups, folding the products left-associatively, and applies postfix
// factorials. The chain forms a single primary unit: it binds more tightly
// than any infix or prefix operator.
func parsechain(scan *lexer, p *parsectx, n *node, depth int) (*node, error) {
	for {
		tok, err := scan.next(p.wseof)
		if err != nil {
			return nil, err
		}
		switch {
		case tok.kind == tokenVar:
			p.names[tok.text] = true
			n = &node{kind: nodeMul, left: n, right: &node{kind: nodeVar, name: tok.text}}
		case tok.kind == tokenOpen:
			rhs, err := parsegroup(scan, p, depth)
			if err != nil {
				return nil, err
			}
			n = &node{kind: nodeMul, left: n, right: rhs}
		case tok.kind == tokenOp && postop(tok.text).op != nodeNone:
			n = &node{kind: postop(tok.text).op, left: n}
		default:
			scan.push(tok)
			return n, nil
		}
	}
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone. \cdot, *, and implicit
// multiplication all select the same operator.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*", `\cdot`:
		return operator{5, false, nodeMul}
	case "/":
		return operator{5, false, nodeDiv}
	case "^":
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a prefix operator for a token string. If there is no such prefix
// operator, then the result has an op of nodeNone.
func unop(text string) operator {
	switch text {
	case "-":
		return operator{10, true, nodeNeg}
	default:
		return operator{}
	}
}

// postop gets a postfix operator for a token string. If there is no such
// postfix operator, then the result has an op of nodeNone.
func postop(text string) operator {
	switch text {
	case "!":
		return operator{20, false, nodeFact}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, nodeNone}

// Vars returns the variable names used when evaluating the expression.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// String creates the canonical explicit-operator representation of the parsed
// expression. Each term is parenthesized, every multiplication is spelled *,
// and parsing the result yields a tree structurally equal to this one.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b)
	return b.String()
}

// LaTeX renders the parsed expression in LaTeX notation. Products of a
// number or variable with a variable are juxtaposed; other multiplications
// are spelled \cdot.
func (e *Expr) LaTeX() string {
	var b strings.Builder
	e.n.latex(&b)
	return b.String()
}
