package calconsteroids

import "strconv"

// ExpectedAtomError is an error indicating that an operator or the start of
// an expression had no value following it. It implements InputError.
type ExpectedAtomError struct {
	// Col is the position of the token that was found instead, or of the end
	// of the input.
	Col int
	// End is the text of the token that was found instead. It is empty if the
	// input ended where a value was expected.
	End string
}

func (err *ExpectedAtomError) Error() string {
	if err.End == "" {
		return errpos(err.Col, "expected a value at end of expression")
	}
	return errpos(err.Col, "expected a value before "+strconv.Quote(err.End))
}

func (err *ExpectedAtomError) Pos() int {
	return err.Col
}

// UnmatchedParenError is an error indicating an open parenthesis with no
// matching close parenthesis. It implements InputError.
type UnmatchedParenError struct {
	// Col is the position at which the input ended.
	Col int
}

func (err *UnmatchedParenError) Error() string {
	return errpos(err.Col, `"(" with no matching ")"`)
}

func (err *UnmatchedParenError) Pos() int {
	return err.Col
}

// UnexpectedTokenError is an error indicating a token in a position the
// grammar disallows, including input remaining after a complete expression.
// It implements InputError.
type UnexpectedTokenError struct {
	// Col is the position of the token.
	Col int
	// Token is the text of the token.
	Token string
}

func (err *UnexpectedTokenError) Error() string {
	return errpos(err.Col, "unexpected token "+strconv.Quote(err.Token))
}

func (err *UnexpectedTokenError) Pos() int {
	return err.Col
}

// FactorialPositionError is an error indicating a factorial with no value
// immediately before it to bind to. It implements InputError.
type FactorialPositionError struct {
	// Col is the position of the factorial.
	Col int
}

func (err *FactorialPositionError) Error() string {
	return errpos(err.Col, `"!" with no value before it`)
}

func (err *FactorialPositionError) Pos() int {
	return err.Col
}

// NestingError is an error indicating an expression nested more deeply than
// the parser's recursion bound. It implements InputError.
type NestingError struct {
	// Col is the position at which the bound was exceeded.
	Col int
	// Depth is the nesting bound that was exceeded.
	Depth int
}

func (err *NestingError) Error() string {
	return errpos(err.Col, "expression nested deeper than "+strconv.Itoa(err.Depth))
}

func (err *NestingError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*ExpectedAtomError)(nil)
	_ InputError = (*UnmatchedParenError)(nil)
	_ InputError = (*UnexpectedTokenError)(nil)
	_ InputError = (*FactorialPositionError)(nil)
	_ InputError = (*NestingError)(nil)
	_ InputError = (*LexError)(nil)
)
