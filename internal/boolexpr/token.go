package boolexpr

import "fmt"

// TokenKind identifies the lexical class of a Token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenIdent
	TokenNumber
	TokenBool

	TokenOr  // ||
	TokenAnd // &&
	TokenNot // !

	TokenEq  // ==
	TokenNeq // !=
	TokenGt  // >
	TokenGte // >=
	TokenLt  // <
	TokenLte // <=

	TokenPlus  // +
	TokenMinus // -
	TokenStar  // *
	TokenSlash // /

	TokenLParen // (
	TokenRParen // )
	TokenLBrace // {
	TokenRBrace // }
	TokenComma  // ,
	TokenDot    // .
	TokenArrow  // ->
	TokenScope  // ::
)

var tokenNames = map[TokenKind]string{
	TokenEOF:    "end of expression",
	TokenIdent:  "identifier",
	TokenNumber: "number",
	TokenBool:   "boolean",
	TokenOr:     "'||'",
	TokenAnd:    "'&&'",
	TokenNot:    "'!'",
	TokenEq:     "'=='",
	TokenNeq:    "'!='",
	TokenGt:     "'>'",
	TokenGte:    "'>='",
	TokenLt:     "'<'",
	TokenLte:    "'<='",
	TokenPlus:   "'+'",
	TokenMinus:  "'-'",
	TokenStar:   "'*'",
	TokenSlash:  "'/'",
	TokenLParen: "'('",
	TokenRParen: "')'",
	TokenLBrace: "'{'",
	TokenRBrace: "'}'",
	TokenComma:  "','",
	TokenDot:    "'.'",
	TokenArrow:  "'->'",
	TokenScope:  "'::'",
}

// String returns a human readable name for the token kind, used in parse
// error messages.
func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(k))
}

// Token is a single lexeme together with its byte offset in the source.
type Token struct {
	Kind TokenKind
	Text string
	Pos  int
}

// ParseError reports malformed expression text. Pos is a byte offset into
// Expr.
type ParseError struct {
	Expr string
	Pos  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q at offset %d: %s", e.Expr, e.Pos, e.Msg)
}
