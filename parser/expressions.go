package parser

import (
	"github.com/cwbudde/exprscript/ast"
	"github.com/cwbudde/exprscript/lexer"
)

// parseExpression is the Pratt entry point: it parses a unary/primary
// term, then climbs through ternary, coalesce, and binary operators
// whose precedence exceeds the caller's floor.
func (p *Parser) parseExpression(precedence int) (ast.Node, error) {
	left, err := p.parseUnaryOrPrimary()
	if err != nil {
		return nil, err
	}

	for {
		t := p.cur().Type
		if t == lexer.QUESTION && precedence < TERNARY {
			left, err = p.parseTernary(left)
			if err != nil {
				return nil, err
			}
			continue
		}
		if t == lexer.QUESTION_QUESTION && precedence < COALESCE {
			left, err = p.parseCoalesce(left)
			if err != nil {
				return nil, err
			}
			continue
		}
		prec, ok := precedences[t]
		if !ok || precedence >= prec {
			break
		}
		left, err = p.parseBinary(left, prec)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *Parser) parseBinary(left ast.Node, prec int) (ast.Node, error) {
	opTok := p.advance()
	op, ok := binaryOps[opTok.Type]
	if !ok {
		return nil, p.errorf("unexpected operator %q", opTok.Literal)
	}
	right, err := p.parseExpression(prec)
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpr{Position: toASTPos(opTok.Pos), Op: op, Left: left, Right: right}, nil
}

// parseTernary implements `cond ? then : else`.
func (p *Parser) parseTernary(cond ast.Node) (ast.Node, error) {
	pos := toASTPos(p.advance().Pos) // '?'
	thenExpr, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	elseExpr, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	return &ast.Ternary{Position: pos, Condition: cond, Then: thenExpr, Else: elseExpr}, nil
}

// parseCoalesce implements `left ?? right`, right-associative.
func (p *Parser) parseCoalesce(left ast.Node) (ast.Node, error) {
	pos := toASTPos(p.advance().Pos) // '??'
	right, err := p.parseExpression(COALESCE - 1)
	if err != nil {
		return nil, err
	}
	return &ast.Coalesce{Position: pos, Left: left, Right: right}, nil
}

var unaryOps = map[lexer.TokenType]ast.UnaryOp{
	lexer.MINUS: ast.OpNeg, lexer.BANG: ast.OpNot, lexer.PLUS: ast.OpPos,
}

func (p *Parser) parseUnaryOrPrimary() (ast.Node, error) {
	if op, ok := unaryOps[p.cur().Type]; ok {
		tok := p.advance()
		operand, err := p.parseExpression(PREFIX)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Position: toASTPos(tok.Pos), Op: op, Operand: operand}, nil
	}
	return p.parsePrimaryOrLambda()
}

// parsePrimaryOrLambda distinguishes a lambda expression from an ordinary
// primary expression: a single bare identifier immediately followed by
// '=>' is a single-param lambda; a parenthesised group immediately
// followed (after its matching ')') by '=>' is a multi-param lambda.
func (p *Parser) parsePrimaryOrLambda() (ast.Node, error) {
	if p.at(lexer.IDENT) && p.peek().Type == lexer.ARROW {
		return p.parseSingleParamLambda()
	}
	if p.at(lexer.LPAREN) && p.isLambdaParamList() {
		return p.parseMultiParamLambda()
	}
	return p.parsePrimary()
}

// isLambdaParamList scans forward from the current '(' for its matching
// ')' and reports whether '=>' immediately follows.
func (p *Parser) isLambdaParamList() bool {
	depth := 0
	for i := p.pos; i < len(p.tokens); i++ {
		switch p.tokens[i].Type {
		case lexer.LPAREN:
			depth++
		case lexer.RPAREN:
			depth--
			if depth == 0 {
				return i+1 < len(p.tokens) && p.tokens[i+1].Type == lexer.ARROW
			}
		case lexer.EOF:
			return false
		}
	}
	return false
}

func (p *Parser) parseSingleParamLambda() (ast.Node, error) {
	name := p.advance()
	if _, err := p.expect(lexer.ARROW); err != nil {
		return nil, err
	}
	body, err := p.parseLambdaBody()
	if err != nil {
		return nil, err
	}
	sig := &ast.LambdaSignature{Position: toASTPos(name.Pos), Params: []string{name.Literal}}
	return &ast.LambdaExpr{Position: toASTPos(name.Pos), Signature: sig, Body: body}, nil
}

func (p *Parser) parseMultiParamLambda() (ast.Node, error) {
	pos := toASTPos(p.cur().Pos)
	p.advance() // '('
	var params []string
	if !p.at(lexer.RPAREN) {
		for {
			name, err := p.expect(lexer.IDENT)
			if err != nil {
				return nil, err
			}
			params = append(params, name.Literal)
			if p.at(lexer.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ARROW); err != nil {
		return nil, err
	}
	body, err := p.parseLambdaBody()
	if err != nil {
		return nil, err
	}
	sig := &ast.LambdaSignature{Position: pos, Params: params}
	return &ast.LambdaExpr{Position: pos, Signature: sig, Body: body}, nil
}

// parseLambdaBody accepts a brace-delimited block or a single expression.
func (p *Parser) parseLambdaBody() (ast.Node, error) {
	if p.at(lexer.LBRACE) {
		return p.parseBlock()
	}
	return p.parseExpression(LOWEST)
}

// parsePrimary parses a start term followed by zero or more chained
// indexer/member/call links.
func (p *Parser) parsePrimary() (ast.Node, error) {
	startPos := toASTPos(p.cur().Pos)
	start, err := p.parsePrimaryStart()
	if err != nil {
		return nil, err
	}

	var chain []ast.ChainMember
chainLoop:
	for {
		switch p.cur().Type {
		case lexer.LBRACKET:
			idx, err := p.parseIndexExpr()
			if err != nil {
				return nil, err
			}
			chain = append(chain, idx)
		case lexer.DOT:
			mem, err := p.parseMemberExpr()
			if err != nil {
				return nil, err
			}
			chain = append(chain, mem)
		case lexer.LPAREN:
			call, err := p.parseCallExpr()
			if err != nil {
				return nil, err
			}
			chain = append(chain, call)
		default:
			break chainLoop
		}
	}

	if len(chain) == 0 {
		return start, nil
	}
	return &ast.Primary{Position: startPos, Start: start, Chain: chain}, nil
}

func (p *Parser) parsePrimaryStart() (ast.Node, error) {
	tok := p.cur()
	pos := toASTPos(tok.Pos)
	switch tok.Type {
	case lexer.LPAREN:
		p.advance()
		inner, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return &ast.ParenExpr{Position: pos, Inner: inner}, nil
	case lexer.IDENT:
		p.advance()
		return &ast.Identifier{Position: pos, Name: tok.Literal}, nil
	case lexer.INT:
		p.advance()
		return &ast.Literal{Position: pos, Kind: ast.LitInteger, Raw: tok.Literal}, nil
	case lexer.REAL:
		p.advance()
		return &ast.Literal{Position: pos, Kind: ast.LitReal, Raw: tok.Literal}, nil
	case lexer.PERCENT:
		p.advance()
		return &ast.Literal{Position: pos, Kind: ast.LitPercent, Raw: tok.Literal}, nil
	case lexer.STRING:
		p.advance()
		return &ast.Literal{Position: pos, Kind: ast.LitString, Raw: tok.Literal}, nil
	case lexer.VSTRING:
		p.advance()
		return &ast.Literal{Position: pos, Kind: ast.LitString, Raw: tok.Literal, Verbatim: true}, nil
	case lexer.CHAR:
		p.advance()
		return &ast.Literal{Position: pos, Kind: ast.LitChar, Raw: tok.Literal}, nil
	case lexer.DATE:
		p.advance()
		return &ast.Literal{Position: pos, Kind: ast.LitDate, Raw: tok.Literal}, nil
	case lexer.GUID:
		p.advance()
		return &ast.Literal{Position: pos, Kind: ast.LitGuid, Raw: tok.Literal}, nil
	case lexer.TRUE, lexer.FALSE:
		p.advance()
		return &ast.Literal{Position: pos, Kind: ast.LitBool, Raw: tok.Literal}, nil
	case lexer.NULLTOK:
		p.advance()
		return &ast.Literal{Position: pos, Kind: ast.LitNull}, nil
	default:
		return nil, p.errorf("unexpected token %q in expression", tok.Literal)
	}
}

// parseIndexExpr parses one `[k1][k2]...` bracket-chain link: consecutive
// bracket groups with no other token between them belong to the same
// IndexExpr node.
func (p *Parser) parseIndexExpr() (*ast.IndexExpr, error) {
	pos := toASTPos(p.cur().Pos)
	idx := &ast.IndexExpr{Position: pos}
	for p.at(lexer.LBRACKET) {
		p.advance()
		key, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RBRACKET); err != nil {
			return nil, err
		}
		idx.Keys = append(idx.Keys, key)
	}
	return idx, nil
}

// parseMemberExpr parses `.name` optionally followed by a call argument
// list `(args...)`.
func (p *Parser) parseMemberExpr() (*ast.MemberExpr, error) {
	pos := toASTPos(p.cur().Pos)
	p.advance() // '.'
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	mem := &ast.MemberExpr{Position: pos, Name: name.Literal}
	if p.at(lexer.LPAREN) {
		args, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		mem.Call = args
	}
	return mem, nil
}

func (p *Parser) parseCallExpr() (*ast.CallExpr, error) {
	pos := toASTPos(p.cur().Pos)
	args, err := p.parseArgList()
	if err != nil {
		return nil, err
	}
	return &ast.CallExpr{Position: pos, Args: args}, nil
}

func (p *Parser) parseArgList() (*ast.ArgList, error) {
	pos := toASTPos(p.cur().Pos)
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	al := &ast.ArgList{Position: pos}
	if !p.at(lexer.RPAREN) {
		for {
			argPos := toASTPos(p.cur().Pos)
			val, err := p.parseExpression(LOWEST)
			if err != nil {
				return nil, err
			}
			al.Args = append(al.Args, &ast.Arg{Position: argPos, Value: val})
			if p.at(lexer.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return al, nil
}
