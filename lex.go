package calconsteroids

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is a decimal number token.
	tokenNum
	// tokenVar is a variable: one letter with an optional subscript.
	tokenVar
	// tokenOp is an operator, including the \cdot command.
	tokenOp
	// tokenOpen is an open parenthesis.
	tokenOpen
	// tokenClose is a close parenthesis.
	tokenClose
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case tokenNum:
		return "Num"
	case tokenVar:
		return "Var"
	case tokenOp:
		return "Op"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the runes which are considered to be operators. The
// \cdot command also lexes to an operator token.
const Operators = "+-*/^!"

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	p    lexToken
	eof  bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{
		src:  src,
		rune: 1,
	}
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (l *lexer) push(tok lexToken) {
	if l.p.kind != tokenNone {
		panic("calconsteroids: double push")
	}
	l.p = tok
}

// must scans the pushed token. Panics if there is no pushed token.
func (l *lexer) must() lexToken {
	tok := l.p
	if tok.kind == tokenNone {
		panic("calconsteroids: no pushed token")
	}
	l.p = lexToken{}
	return tok
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input. ASCII spaces are skipped between
// tokens; runes in wseof are treated as ending the input. The first time EOF
// is encountered, the result is an EOF token with a nil error. Subsequent
// times, if the EOF token is not pushed, the result is an empty token with
// io.EOF.
func (l *lexer) next(wseof string) (lexToken, error) {
	if l.p.kind != tokenNone {
		tok := l.p
		l.p = lexToken{}
		return tok, nil
	}
	if l.eof {
		return lexToken{}, io.EOF
	}
	defer l.buf.Reset()
	tok := lexToken{pos: l.rune}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.kind = tokenEOF
				l.eof = true
				return tok, nil
			}
			return tok, err
		}
		switch {
		case r == ' ':
			tok.pos++
			continue
		case strings.ContainsRune(wseof, r):
			tok.kind = tokenEOF
			l.eof = true
			return tok, nil
		case '0' <= r && r <= '9':
			l.unreadRune()
			if err := l.scanNum(); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenNum
			return tok, nil
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
			if err := l.scanVar(r); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenVar
			return tok, nil
		case r == '\\':
			if err := l.scanCommand(); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenOp
			return tok, nil
		case r == '(':
			tok.text = "("
			tok.kind = tokenOpen
			return tok, nil
		case r == ')':
			tok.text = ")"
			tok.kind = tokenClose
			return tok, nil
		case r == '.':
			// A dot is valid only inside a number, after digits.
			return tok, &UnexpectedTokenError{Col: l.rune - 1, Token: "."}
		default:
			if strings.ContainsRune(Operators, r) {
				tok.text = string(r)
				tok.kind = tokenOp
				return tok, nil
			}
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return tok, l.error("")
		}
	}
}

// scanNum scans a decimal number: digits with an optional fraction. A dot
// continues the number only when a digit follows it.
func (l *lexer) scanNum() error {
	if err := l.scanDigits(); err != nil {
		return err
	}
	r, err := l.readRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if r != '.' {
		l.unreadRune()
		return nil
	}
	dot := l.rune - 1
	d, err := l.readRune()
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if err != nil || d < '0' || d > '9' {
		return &UnexpectedTokenError{Col: dot, Token: "."}
	}
	l.buf.WriteByte('.')
	l.unreadRune()
	return l.scanDigits()
}

func (l *lexer) scanDigits() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if r < '0' || r > '9' {
			l.unreadRune()
			return nil
		}
		l.buf.WriteRune(r)
	}
}

// scanVar scans a variable: the letter already read, optionally followed by
// an underscore and exactly one alphanumeric subscript character.
func (l *lexer) scanVar(first rune) error {
	l.buf.WriteRune(first)
	r, err := l.readRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if r != '_' {
		l.unreadRune()
		return nil
	}
	l.buf.WriteByte('_')
	s, err := l.readRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return l.error("variable")
		}
		return err
	}
	if !alnum(s) {
		l.buf.WriteRune(s)
		return l.error("variable")
	}
	l.buf.WriteRune(s)
	// Subscripts are a single character; a longer run is not a new token.
	t, err := l.readRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if alnum(t) {
		return &UnexpectedTokenError{Col: l.rune - 1, Token: string(t)}
	}
	l.unreadRune()
	return nil
}

// scanCommand scans a backslash command. \cdot is the only command in the
// grammar.
func (l *lexer) scanCommand() error {
	l.buf.WriteByte('\\')
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') {
			l.buf.WriteRune(r)
			continue
		}
		l.unreadRune()
		break
	}
	if l.buf.String() != `\cdot` {
		return l.error("command")
	}
	return nil
}

func alnum(r rune) bool {
	return ('0' <= r && r <= '9') || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func (l *lexer) error(kind string) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  l.rune,
	}
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This may be
	// "variable", "command", or the empty string (if a token kind hadn't been
	// decided).
	Kind string
	// Col is the total number of runes scanned by the lexer up to and
	// including this error.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + err.Text
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}
