package boolexpr

import (
	"strings"
)

// operators is matched longest first, so two-character operators must come
// before their one-character prefixes.
var operators = []struct {
	text string
	kind TokenKind
}{
	{"||", TokenOr},
	{"&&", TokenAnd},
	{"==", TokenEq},
	{"!=", TokenNeq},
	{">=", TokenGte},
	{"<=", TokenLte},
	{"->", TokenArrow},
	{"::", TokenScope},
	{"!", TokenNot},
	{">", TokenGt},
	{"<", TokenLt},
	{"+", TokenPlus},
	{"-", TokenMinus},
	{"*", TokenStar},
	{"/", TokenSlash},
	{"(", TokenLParen},
	{")", TokenRParen},
	{"{", TokenLBrace},
	{"}", TokenRBrace},
	{",", TokenComma},
	{".", TokenDot},
}

// Lex splits src into tokens. The returned slice always ends with a TokenEOF.
func Lex(src string) ([]Token, error) {
	l := &lexer{src: src}
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == TokenEOF {
			return toks, nil
		}
	}
}

type lexer struct {
	src string
	pos int
}

func (l *lexer) errorf(pos int, msg string) error {
	return &ParseError{Expr: l.src, Pos: pos, Msg: msg}
}

func (l *lexer) peekByte(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *lexer) next() (Token, error) {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return Token{Kind: TokenEOF, Pos: l.pos}, nil
	}

	start := l.pos
	c := l.src[l.pos]

	switch {
	case isIdentStart(c):
		for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
			l.pos++
		}
		text := l.src[start:l.pos]
		if text == "true" || text == "false" {
			return Token{Kind: TokenBool, Text: text, Pos: start}, nil
		}
		return Token{Kind: TokenIdent, Text: text, Pos: start}, nil

	case isDigit(c) || (c == '.' && isDigit(l.peekByte(1))):
		return l.number()
	}

	rest := l.src[l.pos:]
	for _, op := range operators {
		if strings.HasPrefix(rest, op.text) {
			l.pos += len(op.text)
			return Token{Kind: op.kind, Text: op.text, Pos: start}, nil
		}
	}
	return Token{}, l.errorf(start, "unexpected character "+quoteByte(c))
}

// number scans an integer or decimal literal with an optional exponent and
// an optional C suffix (f, F, u, U, l, L, ll, LL).
func (l *lexer) number() (Token, error) {
	start := l.pos
	l.digits()
	if l.peekByte(0) == '.' {
		l.pos++
		l.digits()
	}
	if c := l.peekByte(0); c == 'e' || c == 'E' {
		save := l.pos
		l.pos++
		if s := l.peekByte(0); s == '+' || s == '-' {
			l.pos++
		}
		if !isDigit(l.peekByte(0)) {
			l.pos = save
		} else {
			l.digits()
		}
	}

	switch {
	case strings.HasPrefix(l.src[l.pos:], "ll"), strings.HasPrefix(l.src[l.pos:], "LL"):
		l.pos += 2
	case strings.ContainsRune("fFuUlL", rune(l.peekByte(0))):
		l.pos++
	}

	if isIdentPart(l.peekByte(0)) {
		return Token{}, l.errorf(l.pos, "invalid numeric literal "+l.src[start:l.pos+1])
	}
	return Token{Kind: TokenNumber, Text: l.src[start:l.pos], Pos: start}, nil
}

func (l *lexer) digits() {
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func quoteByte(c byte) string {
	return "'" + string(rune(c)) + "'"
}
