package boolexpr

// Parse turns src into an expression tree. An empty or whitespace-only
// source yields a nil Expr and no error.
func Parse(src string) (Expr, error) {
	toks, err := Lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks}
	if p.peek().Kind == TokenEOF {
		return nil, nil
	}

	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Kind != TokenEOF {
		return nil, p.errorf(tok, "unexpected "+describe(tok)+" after expression")
	}
	return expr, nil
}

type parser struct {
	src  string
	toks []Token
	pos  int
}

func (p *parser) peek() Token {
	return p.toks[p.pos]
}

func (p *parser) advance() Token {
	tok := p.toks[p.pos]
	if tok.Kind != TokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) advanceIf(kind TokenKind) (Token, bool) {
	if p.peek().Kind != kind {
		return Token{}, false
	}
	return p.advance(), true
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	tok := p.peek()
	if tok.Kind != kind {
		return tok, p.errorf(tok, "expected "+kind.String()+", found "+describe(tok))
	}
	return p.advance(), nil
}

func (p *parser) errorf(tok Token, msg string) error {
	return &ParseError{Expr: p.src, Pos: tok.Pos, Msg: msg}
}

// binaryLevel parses a left-associative chain of the given operators with
// next as the operand parser.
func (p *parser) binaryLevel(next func() (Expr, error), kinds ...TokenKind) (Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if !hasKind(kinds, tok.Kind) {
			return left, nil
		}
		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: tok.Text, Left: left, Right: right, At: left.Pos()}
	}
}

func (p *parser) parseOr() (Expr, error) {
	return p.binaryLevel(p.parseAnd, TokenOr)
}

func (p *parser) parseAnd() (Expr, error) {
	return p.binaryLevel(p.parseComparison, TokenAnd)
}

func (p *parser) parseComparison() (Expr, error) {
	return p.binaryLevel(p.parseAdditive, TokenEq, TokenNeq, TokenGt, TokenGte, TokenLt, TokenLte)
}

func (p *parser) parseAdditive() (Expr, error) {
	return p.binaryLevel(p.parseMultiplicative, TokenPlus, TokenMinus)
}

func (p *parser) parseMultiplicative() (Expr, error) {
	return p.binaryLevel(p.parseUnary, TokenStar, TokenSlash)
}

func (p *parser) parseUnary() (Expr, error) {
	tok := p.peek()
	if tok.Kind != TokenNot && tok.Kind != TokenMinus {
		return p.parsePostfix()
	}
	p.advance()
	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &UnaryExpr{Op: tok.Text, X: x, At: tok.Pos}, nil
}

func (p *parser) parsePostfix() (Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.Kind != TokenDot && tok.Kind != TokenArrow {
			return expr, nil
		}
		p.advance()
		name, err := p.expect(TokenIdent)
		if err != nil {
			return nil, err
		}
		arrow := tok.Kind == TokenArrow
		if p.peek().Kind == TokenLParen {
			args, err := p.parseArguments(TokenLParen, TokenRParen)
			if err != nil {
				return nil, err
			}
			expr = &MethodCallExpr{Recv: expr, Name: name.Text, Args: args, Arrow: arrow, At: expr.Pos()}
			continue
		}
		expr = &GetAttrExpr{Recv: expr, Name: name.Text, Arrow: arrow, At: expr.Pos()}
	}
}

func (p *parser) parsePrimary() (Expr, error) {
	tok := p.peek()
	switch tok.Kind {
	case TokenNumber:
		p.advance()
		return &NumberLit{Text: tok.Text, At: tok.Pos}, nil

	case TokenBool:
		p.advance()
		return &BoolLit{Value: tok.Text == "true", At: tok.Pos}, nil

	case TokenIdent:
		p.advance()
		name := tok.Text
		for {
			if _, ok := p.advanceIf(TokenScope); !ok {
				break
			}
			part, err := p.expect(TokenIdent)
			if err != nil {
				return nil, err
			}
			name += "::" + part.Text
		}
		switch p.peek().Kind {
		case TokenLParen:
			args, err := p.parseArguments(TokenLParen, TokenRParen)
			if err != nil {
				return nil, err
			}
			return &CallExpr{Func: name, Args: args, At: tok.Pos}, nil
		case TokenLBrace:
			args, err := p.parseArguments(TokenLBrace, TokenRBrace)
			if err != nil {
				return nil, err
			}
			return &CallExpr{Func: name, Args: args, Brace: true, At: tok.Pos}, nil
		}
		return &VarExpr{Name: name, At: tok.Pos}, nil

	case TokenLParen:
		p.advance()
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return expr, nil
	}
	return nil, p.errorf(tok, "unexpected "+describe(tok))
}

// parseArguments consumes `open item, item, ... close`. A trailing comma is
// accepted. An empty list returns nil.
func (p *parser) parseArguments(open, close TokenKind) (*Arguments, error) {
	start, err := p.expect(open)
	if err != nil {
		return nil, err
	}
	if _, ok := p.advanceIf(close); ok {
		return nil, nil
	}

	args := &Arguments{At: start.Pos}
	for {
		item, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		args.Items = append(args.Items, item)
		if _, ok := p.advanceIf(TokenComma); !ok {
			break
		}
		if p.peek().Kind == close {
			break
		}
	}
	if _, err := p.expect(close); err != nil {
		return nil, err
	}
	return args, nil
}

func hasKind(kinds []TokenKind, k TokenKind) bool {
	for _, kind := range kinds {
		if kind == k {
			return true
		}
	}
	return false
}

func describe(tok Token) string {
	if tok.Kind == TokenEOF {
		return tok.Kind.String()
	}
	return tok.Kind.String() + " " + `"` + tok.Text + `"`
}
