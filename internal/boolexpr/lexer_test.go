package boolexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(toks []Token) []TokenKind {
	out := make([]TokenKind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestLex(t *testing.T) {
	testCases := []struct {
		name     string
		src      string
		expected []TokenKind
		texts    []string
	}{
		{
			name:     "operators longest first",
			src:      "a>=b||!c->d::e",
			expected: []TokenKind{TokenIdent, TokenGte, TokenIdent, TokenOr, TokenNot, TokenIdent, TokenArrow, TokenIdent, TokenScope, TokenIdent, TokenEOF},
		},
		{
			name:     "numeric suffixes",
			src:      "1.5f 10LL 3u .5 2e-3L 7.",
			expected: []TokenKind{TokenNumber, TokenNumber, TokenNumber, TokenNumber, TokenNumber, TokenNumber, TokenEOF},
			texts:    []string{"1.5f", "10LL", "3u", ".5", "2e-3L", "7.", ""},
		},
		{
			name:     "booleans only as whole words",
			src:      "true trueish false",
			expected: []TokenKind{TokenBool, TokenIdent, TokenBool, TokenEOF},
			texts:    []string{"true", "trueish", "false", ""},
		},
		{
			name:     "whitespace ignored",
			src:      "  a\t+\n b ",
			expected: []TokenKind{TokenIdent, TokenPlus, TokenIdent, TokenEOF},
		},
		{
			name:     "brace call",
			src:      "T{a, b}",
			expected: []TokenKind{TokenIdent, TokenLBrace, TokenIdent, TokenComma, TokenIdent, TokenRBrace, TokenEOF},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			toks, err := Lex(tc.src)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, kinds(toks))
			if tc.texts != nil {
				texts := make([]string, len(toks))
				for i, tok := range toks {
					texts[i] = tok.Text
				}
				assert.Equal(t, tc.texts, texts)
			}
		})
	}
}

func TestLexErrors(t *testing.T) {
	for _, src := range []string{"a $ b", "3abc", "a = b", "x & y"} {
		t.Run(src, func(t *testing.T) {
			_, err := Lex(src)
			require.Error(t, err)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, src, perr.Expr)
		})
	}
}
