package parser

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/BasharSaadi/RA-Query-Processor/ast"
	"github.com/BasharSaadi/RA-Query-Processor/lexer"
	"github.com/BasharSaadi/RA-Query-Processor/relation"
)

// Parser converts a token stream into an operation tree.
type Parser struct {
	src    []rune
	tokens []lexer.Token
	pos    int
}

// Parse parses a query string into an operation tree. Every failure is an
// UNRECOGNIZED_QUERY *relation.Error.
func Parse(input string) (ast.Op, error) {
	query := strings.TrimSpace(input)
	tokens, err := lexer.Lex(input)
	if err != nil {
		return nil, relation.NewUnrecognizedQueryError(query, "lex error: %v", err)
	}
	p := &Parser{src: []rune(input), tokens: tokens, pos: 0}
	op, err := p.parseQuery()
	if err != nil {
		return nil, relation.NewUnrecognizedQueryError(query, "%v", err)
	}
	return op, nil
}

func (p *Parser) peek() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Type: lexer.TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, error) {
	tok := p.advance()
	if tok.Type != tt {
		return tok, fmt.Errorf("expected %s, got %s (%q) at position %d", tt, tok.Type, tok.Val, tok.Pos)
	}
	return tok, nil
}

// last returns the index of the final token before EOF, or -1.
func (p *Parser) last() int {
	return len(p.tokens) - 2
}

// find returns the index of the first token of type tt at or after the
// current position, or -1.
func (p *Parser) find(tt lexer.TokenType) int {
	for i := p.pos; i < len(p.tokens); i++ {
		if p.tokens[i].Type == tt {
			return i
		}
	}
	return -1
}

// text returns the trimmed source between the start of token i and the
// start of token j.
func (p *Parser) text(i, j int) string {
	return strings.TrimSpace(string(p.src[p.tokens[i].Pos:p.tokens[j].Pos]))
}

func (p *Parser) parseQuery() (ast.Op, error) {
	tok := p.peek()
	if tok.Type != lexer.TokenIdent {
		return nil, fmt.Errorf("expected operation name, got %s (%q) at position %d", tok.Type, tok.Val, tok.Pos)
	}

	// Dispatch on the keyword commits to one rule; a failure inside it is
	// final and no other rule is attempted.
	switch tok.Val {
	case "project":
		return p.parseProject()
	case "select":
		return p.parseSelect()
	case "join", "union", "intersection", "difference":
		return p.parseBinary(tok.Val)
	default:
		return nil, fmt.Errorf("unknown operation %q at position %d", tok.Val, tok.Pos)
	}
}

func (p *Parser) parseSelect() (ast.Op, error) {
	p.advance() // consume "select"

	if lp := p.find(lexer.TokenLParen); lp >= 0 {
		if lp == p.pos {
			return nil, fmt.Errorf("select: expected condition before '(' at position %d", p.tokens[lp].Pos)
		}
		cond := ParseCondition(p.text(p.pos, lp))
		operand, err := p.parseOperand(lp)
		if err != nil {
			return nil, fmt.Errorf("select: %w", err)
		}
		return &ast.SelectOp{Cond: cond, Operand: operand}, nil
	}

	// select condition relation_name
	last := p.last()
	if last <= p.pos {
		return nil, fmt.Errorf("select: expected condition and relation name")
	}
	name := p.tokens[last]
	if name.Type != lexer.TokenIdent {
		return nil, fmt.Errorf("select: expected relation name, got %s (%q) at position %d", name.Type, name.Val, name.Pos)
	}
	cond := ParseCondition(p.text(p.pos, last))
	return &ast.SelectOp{Cond: cond, Operand: &ast.RelationRef{Name: name.Val}}, nil
}

func (p *Parser) parseProject() (ast.Op, error) {
	p.advance() // consume "project"

	if lp := p.find(lexer.TokenLParen); lp >= 0 {
		attrs, err := p.parseAttrList(lp)
		if err != nil {
			return nil, fmt.Errorf("project: %w", err)
		}
		operand, err := p.parseOperand(lp)
		if err != nil {
			return nil, fmt.Errorf("project: %w", err)
		}
		return &ast.ProjectOp{Attributes: attrs, Operand: operand}, nil
	}

	// project attr_list relation_name
	last := p.last()
	if last <= p.pos {
		return nil, fmt.Errorf("project: expected attribute list and relation name")
	}
	name := p.tokens[last]
	if name.Type != lexer.TokenIdent {
		return nil, fmt.Errorf("project: expected relation name, got %s (%q) at position %d", name.Type, name.Val, name.Pos)
	}
	attrs, err := p.parseAttrList(last)
	if err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}
	return &ast.ProjectOp{Attributes: attrs, Operand: &ast.RelationRef{Name: name.Val}}, nil
}

func (p *Parser) parseBinary(keyword string) (ast.Op, error) {
	p.advance() // consume keyword

	var refs [2]*ast.RelationRef
	for i := range refs {
		tok, err := p.expect(lexer.TokenIdent)
		if err != nil {
			if tok.Type == lexer.TokenLParen {
				return nil, fmt.Errorf("%s: operands must be relation names, nested queries are not supported", keyword)
			}
			return nil, fmt.Errorf("%s: %w", keyword, err)
		}
		refs[i] = &ast.RelationRef{Name: tok.Val}
	}
	if _, err := p.expect(lexer.TokenEOF); err != nil {
		return nil, fmt.Errorf("%s: %w", keyword, err)
	}

	switch keyword {
	case "join":
		return &ast.JoinOp{Left: refs[0], Right: refs[1]}, nil
	case "union":
		return &ast.UnionOp{Left: refs[0], Right: refs[1]}, nil
	case "intersection":
		return &ast.IntersectOp{Left: refs[0], Right: refs[1]}, nil
	default:
		return &ast.DifferenceOp{Left: refs[0], Right: refs[1]}, nil
	}
}

// parseOperand parses the parenthesized operand that opens at token lp and
// closes with the final token of the query.
func (p *Parser) parseOperand(lp int) (ast.Op, error) {
	rp := p.last()
	if rp <= lp || p.tokens[rp].Type != lexer.TokenRParen {
		return nil, fmt.Errorf("expected ')' at end of query to close '(' at position %d", p.tokens[lp].Pos)
	}

	inner := p.tokens[lp+1 : rp]
	if len(inner) == 0 {
		return nil, fmt.Errorf("empty operand at position %d", p.tokens[lp].Pos)
	}
	if len(inner) == 1 && inner[0].Type == lexer.TokenIdent {
		return &ast.RelationRef{Name: inner[0].Val}, nil
	}

	tokens := make([]lexer.Token, len(inner), len(inner)+1)
	copy(tokens, inner)
	tokens = append(tokens, p.tokens[rp]) // closing paren stands in for EOF
	tokens[len(tokens)-1].Type = lexer.TokenEOF
	tokens[len(tokens)-1].Val = ""

	sub := &Parser{src: p.src, tokens: tokens}
	op, err := sub.parseQuery()
	if err != nil {
		return nil, fmt.Errorf("in nested query: %w", err)
	}
	return op, nil
}

// parseAttrList splits the source between the current token and token stop
// on commas. Names are taken as written, so any attribute a definition
// header accepts, such as e-mail, can be projected. Each name must be
// non-empty and free of whitespace.
func (p *Parser) parseAttrList(stop int) ([]string, error) {
	if stop <= p.pos {
		return nil, fmt.Errorf("attribute list: expected attribute names at position %d", p.peek().Pos)
	}
	var attrs []string
	for _, a := range strings.Split(p.text(p.pos, stop), ",") {
		a = strings.TrimSpace(a)
		if a == "" {
			return nil, fmt.Errorf("attribute list: empty attribute name at position %d", p.peek().Pos)
		}
		if strings.IndexFunc(a, unicode.IsSpace) >= 0 {
			return nil, fmt.Errorf("attribute list: attributes must be comma separated, got %q", a)
		}
		attrs = append(attrs, a)
	}
	p.pos = stop
	return attrs, nil
}
