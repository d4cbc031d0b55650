package parser

import (
	"github.com/cwbudde/exprscript/ast"
	"github.com/cwbudde/exprscript/lexer"
)

// parseStatementList parses statements until it reaches end (exclusive)
// or EOF.
func (p *Parser) parseStatementList(end lexer.TokenType) (*ast.StatementList, error) {
	pos := toASTPos(p.cur().Pos)
	list := &ast.StatementList{Position: pos}
	for !p.at(end) && !p.at(lexer.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		list.Statements = append(list.Statements, stmt)
	}
	return list, nil
}

// parseBlock parses a brace-delimited statement list.
func (p *Parser) parseBlock() (*ast.Block, error) {
	pos := toASTPos(p.cur().Pos)
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	list, err := p.parseStatementList(lexer.RBRACE)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return &ast.Block{Position: pos, Body: list}, nil
}

// parseStatement parses one top-level statement form.
func (p *Parser) parseStatement() (ast.Node, error) {
	switch p.cur().Type {
	case lexer.IF:
		return p.parseIf()
	case lexer.FOR:
		return p.parseFor()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.FOREACH:
		return p.parseForeach()
	case lexer.LBRACE:
		return p.parseBlock()
	case lexer.BREAK, lexer.CONTINUE, lexer.RETURN:
		return p.parseJump()
	default:
		stmt, err := p.parseSimpleStatementNoSemi()
		if err != nil {
			return nil, err
		}
		// The last statement before a closing brace or the end of input
		// may omit its semicolon.
		if p.at(lexer.RBRACE) || p.at(lexer.EOF) {
			return stmt, nil
		}
		if _, err := p.expect(lexer.SEMICOLON); err != nil {
			return nil, err
		}
		return stmt, nil
	}
}

// parseSimpleStatementNoSemi parses an assignment or a bare expression
// statement, without consuming a trailing semicolon. Used both for a full
// statement (whose caller consumes the semicolon) and for a for loop's
// Init/Post clauses (whose semicolons the loop grammar itself owns).
func (p *Parser) parseSimpleStatementNoSemi() (ast.Node, error) {
	if p.at(lexer.INC) || p.at(lexer.DEC) {
		op := p.advance().Type
		name, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		kind := ast.AssignPreIncr
		if op == lexer.DEC {
			kind = ast.AssignPreDecr
		}
		return &ast.Assignment{Position: toASTPos(name.Pos), Target: name.Literal, Op: kind}, nil
	}

	if p.at(lexer.IDENT) && isAssignmentStart(p.peek().Type) {
		name := p.advance()
		switch {
		case p.at(lexer.ASSIGN):
			p.advance()
			val, err := p.parseExpression(LOWEST)
			if err != nil {
				return nil, err
			}
			return &ast.Assignment{Position: toASTPos(name.Pos), Target: name.Literal, Op: ast.AssignSet, Value: val}, nil
		case p.at(lexer.INC):
			p.advance()
			return &ast.Assignment{Position: toASTPos(name.Pos), Target: name.Literal, Op: ast.AssignPostIncr}, nil
		case p.at(lexer.DEC):
			p.advance()
			return &ast.Assignment{Position: toASTPos(name.Pos), Target: name.Literal, Op: ast.AssignPostDecr}, nil
		default:
			op, ok := compoundAssignOps[p.cur().Type]
			if !ok {
				return nil, p.errorf("unexpected assignment operator %q", p.cur().Literal)
			}
			p.advance()
			val, err := p.parseExpression(LOWEST)
			if err != nil {
				return nil, err
			}
			return &ast.Assignment{Position: toASTPos(name.Pos), Target: name.Literal, Op: op, Value: val}, nil
		}
	}

	expr, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	return &ast.ExprStatement{Position: toASTPos(p.cur().Pos), Expression: expr}, nil
}

func isAssignmentStart(t lexer.TokenType) bool {
	if t == lexer.ASSIGN || t == lexer.INC || t == lexer.DEC {
		return true
	}
	_, ok := compoundAssignOps[t]
	return ok
}

func (p *Parser) parseJump() (ast.Node, error) {
	tok := p.advance()
	var kind ast.JumpKind
	switch tok.Type {
	case lexer.BREAK:
		kind = ast.JumpBreak
	case lexer.CONTINUE:
		kind = ast.JumpContinue
	case lexer.RETURN:
		kind = ast.JumpReturn
	}
	j := &ast.Jump{Position: toASTPos(tok.Pos), Kind: kind}
	if kind == ast.JumpReturn && !p.at(lexer.SEMICOLON) {
		val, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		j.Value = val
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return j, nil
}

func (p *Parser) parseIf() (ast.Node, error) {
	pos := toASTPos(p.advance().Pos) // 'if'
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	thenBlock, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	n := &ast.If{Position: pos, Condition: cond, Consequence: thenBlock}
	if p.at(lexer.ELSE) {
		p.advance()
		if p.at(lexer.IF) {
			elseIf, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			n.Alternative = &ast.Block{
				Position: elseIf.Pos(),
				Body:     &ast.StatementList{Position: elseIf.Pos(), Statements: []ast.Node{elseIf}},
			}
		} else {
			elseBlock, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			n.Alternative = elseBlock
		}
	}
	return n, nil
}

func (p *Parser) parseFor() (ast.Node, error) {
	pos := toASTPos(p.advance().Pos) // 'for'
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	var init ast.Node
	if !p.at(lexer.SEMICOLON) {
		n, err := p.parseSimpleStatementNoSemi()
		if err != nil {
			return nil, err
		}
		init = n
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	var cond ast.Node
	if !p.at(lexer.SEMICOLON) {
		n, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		cond = n
	}
	if _, err := p.expect(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	var post ast.Node
	if !p.at(lexer.RPAREN) {
		n, err := p.parseSimpleStatementNoSemi()
		if err != nil {
			return nil, err
		}
		post = n
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.For{Position: pos, Init: init, Cond: cond, Post: post, Body: body}, nil
}

func (p *Parser) parseWhile() (ast.Node, error) {
	pos := toASTPos(p.advance().Pos) // 'while'
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.While{Position: pos, Condition: cond, Body: body}, nil
}

func (p *Parser) parseForeach() (ast.Node, error) {
	pos := toASTPos(p.advance().Pos) // 'foreach'
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.IN); err != nil {
		return nil, err
	}
	source, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Foreach{Position: pos, Var: name.Literal, Source: source, Body: body}, nil
}
