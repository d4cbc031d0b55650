// Package parser implements a recursive-descent/Pratt parser producing
// the ast package's typed syntax tree from lexer tokens: a precedence
// table plus a token-to-operator map, scoped to this language's
// grammar (no declarations, types, classes, or units).
//
// This parser reads the whole token stream up front into a slice
// (scripts in this language are short), which makes the one piece of
// required lookahead, telling a parenthesised lambda parameter list
// apart from a grouped expression, a simple forward scan for a matching
// ')' followed by '=>'.
package parser

import (
	"fmt"

	"github.com/cwbudde/exprscript/ast"
	"github.com/cwbudde/exprscript/lexer"
)

// Precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	TERNARY
	COALESCE
	OR
	AND
	EQUALS
	COMPARE
	SUM
	SHIFT
	PRODUCT
	PREFIX
)

var precedences = map[lexer.TokenType]int{
	lexer.QUESTION_QUESTION: COALESCE,
	lexer.QUESTION:          TERNARY,
	lexer.OR:                OR,
	lexer.XOR:               OR,
	lexer.AND:               AND,
	lexer.EQ:                EQUALS,
	lexer.NEQ:               EQUALS,
	lexer.LT:                COMPARE,
	lexer.GT:                COMPARE,
	lexer.LE:                COMPARE,
	lexer.GE:                COMPARE,
	lexer.PLUS:              SUM,
	lexer.MINUS:             SUM,
	lexer.SHL:               SHIFT,
	lexer.SHR:               SHIFT,
	lexer.ASTERISK:          PRODUCT,
	lexer.SLASH:             PRODUCT,
	lexer.MOD:               PRODUCT,
}

var binaryOps = map[lexer.TokenType]ast.BinaryOp{
	lexer.OR: ast.OpOr, lexer.XOR: ast.OpXor, lexer.AND: ast.OpAnd,
	lexer.EQ: ast.OpEq, lexer.NEQ: ast.OpNe,
	lexer.LT: ast.OpLt, lexer.LE: ast.OpLe, lexer.GT: ast.OpGt, lexer.GE: ast.OpGe,
	lexer.SHL: ast.OpShl, lexer.SHR: ast.OpShr,
	lexer.PLUS: ast.OpAdd, lexer.MINUS: ast.OpSub,
	lexer.ASTERISK: ast.OpMul, lexer.SLASH: ast.OpDiv, lexer.MOD: ast.OpMod,
}

var compoundAssignOps = map[lexer.TokenType]ast.AssignOp{
	lexer.PLUS_ASSIGN: ast.AssignAdd, lexer.MINUS_ASSIGN: ast.AssignSub,
	lexer.STAR_ASSIGN: ast.AssignMul, lexer.SLASH_ASSIGN: ast.AssignDiv,
	lexer.MOD_ASSIGN: ast.AssignMod, lexer.AMP_ASSIGN: ast.AssignAnd,
	lexer.PIPE_ASSIGN: ast.AssignOr, lexer.CARET_ASSIGN: ast.AssignXor,
	lexer.SHL_ASSIGN: ast.AssignShl, lexer.SHR_ASSIGN: ast.AssignShr,
}

// ParseError reports a syntax error with its source position.
type ParseError struct {
	Msg string
	Pos lexer.Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s (line %d, col %d)", e.Msg, e.Pos.Line, e.Pos.Column)
}

// Parser consumes a token stream and produces an *ast.Program.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// New drains l in full and returns a ready-to-use Parser.
func New(l *lexer.Lexer) *Parser {
	var toks []lexer.Token
	for {
		t := l.NextToken()
		toks = append(toks, t)
		if t.Type == lexer.EOF {
			break
		}
	}
	return &Parser{tokens: toks}
}

// Parse is a convenience entry point: tokenize src with a fresh lexer and
// parse it into a Program.
func Parse(src string) (*ast.Program, error) {
	return New(lexer.New(src)).ParseProgram()
}

func (p *Parser) cur() lexer.Token { return p.tokens[p.pos] }

func (p *Parser) peek() lexer.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) advance() lexer.Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) at(t lexer.TokenType) bool { return p.cur().Type == t }

func (p *Parser) expect(t lexer.TokenType) (lexer.Token, error) {
	if !p.at(t) {
		return lexer.Token{}, p.errorf("expected %s, got %q", t, p.cur().Literal)
	}
	return p.advance(), nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return &ParseError{Msg: fmt.Sprintf(format, args...), Pos: p.cur().Pos}
}

func toASTPos(p lexer.Position) ast.Pos { return ast.Pos{Line: p.Line, Column: p.Column} }

// ParseProgram parses an optional leading `param name [= expr], ...;`
// declaration clause followed by the script's statement list.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	pos := toASTPos(p.cur().Pos)
	prog := &ast.Program{Position: pos}

	if p.at(lexer.PARAM) {
		p.advance()
		for {
			name, err := p.expect(lexer.IDENT)
			if err != nil {
				return nil, err
			}
			decl := &ast.ParamDecl{Position: toASTPos(name.Pos), Name: name.Literal}
			if p.at(lexer.ASSIGN) {
				p.advance()
				v, err := p.parseExpression(LOWEST)
				if err != nil {
					return nil, err
				}
				decl.Value = v
			}
			prog.Params = append(prog.Params, decl)
			if p.at(lexer.COMMA) {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(lexer.SEMICOLON); err != nil {
			return nil, err
		}
	}

	body, err := p.parseStatementList(lexer.EOF)
	if err != nil {
		return nil, err
	}
	prog.Body = body
	return prog, nil
}
