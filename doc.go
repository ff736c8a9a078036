// Package calconsteroids parses a subset of LaTeX arithmetic notation into
// expression trees.
//
// The syntax covers decimal numbers, single-letter variables with an optional
// one-character subscript (x, x_1), unary negation, postfix factorial, the
// binary operators +, -, *, /, \cdot, ^, and parenthesized groups.
// Multiplication may also be written by juxtaposition: "2xy" and "2(x+1)" are
// products. "\cdot", "*", and juxtaposition all produce the same operator in
// the parsed tree.
//
// Parsing is a pure function from input text to a tree or a positional error;
// parsed expressions are immutable and safe to share between goroutines.
// Trees can be evaluated with a Context, constant-folded with Simplified, or
// rendered back to text.
package calconsteroids
