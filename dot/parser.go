// ABOUTME: Recursive-descent parser that loads an undirected DOT edge list into a graph store.
// ABOUTME: Accepts node and chained edge statements, skips attributes, and rejects directed graphs.
package dot

import (
	"errors"
	"fmt"

	"github.com/2389-research/netgraph/graph"
)

// ErrSyntax is returned for malformed or unsupported DOT input.
var ErrSyntax = errors.New("dot syntax error")

// File is the result of parsing one DOT source.
type File struct {
	Name   string
	Strict bool
	Graph  *graph.Graph
}

type parser struct {
	tokens []Token
	pos    int
	g      *graph.Graph
}

// Parse reads a single undirected graph. Nodes and edges are inserted into a
// fresh store in source order, so parallel edges in the source are preserved.
// Attribute lists are accepted and discarded; edges carry no weights.
func Parse(input string) (*File, error) {
	tokens, err := Lex(input)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens, g: graph.New()}
	return p.parseFile()
}

func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *parser) next() Token {
	tok := p.tokens[p.pos]
	if tok.Type != TokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) accept(typ TokenType) bool {
	if p.peek().Type == typ {
		p.next()
		return true
	}
	return false
}

func (p *parser) expect(typ TokenType) (Token, error) {
	tok := p.next()
	if tok.Type != typ {
		return tok, p.errorf(tok, "expected %s, got %s", typ, describe(tok))
	}
	return tok, nil
}

func (p *parser) errorf(tok Token, format string, args ...any) error {
	return fmt.Errorf("%w: %d:%d: %s", ErrSyntax, tok.Line, tok.Col, fmt.Sprintf(format, args...))
}

func describe(tok Token) string {
	if tok.Type == TokenEOF {
		return "end of input"
	}
	return fmt.Sprintf("%s %q", tok.Type, tok.Value)
}

func (p *parser) parseFile() (*File, error) {
	f := &File{Graph: p.g}

	if p.accept(TokenStrict) {
		f.Strict = true
	}

	tok := p.next()
	switch tok.Type {
	case TokenGraph:
	case TokenDigraph:
		return nil, p.errorf(tok, "directed graphs are not supported; use 'graph'")
	default:
		return nil, p.errorf(tok, "expected 'graph', got %s", describe(tok))
	}

	if p.peek().IsID() {
		f.Name = p.next().Value
	}

	if _, err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}
	if err := p.parseStmtList(); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRBrace); err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.Type != TokenEOF {
		return nil, p.errorf(tok, "multiple graphs in one source")
	}
	return f, nil
}

func (p *parser) parseStmtList() error {
	for {
		tok := p.peek()
		if tok.Type == TokenRBrace || tok.Type == TokenEOF {
			return nil
		}
		if err := p.parseStmt(); err != nil {
			return err
		}
		p.accept(TokenSemicolon)
	}
}

func (p *parser) parseStmt() error {
	tok := p.peek()
	switch {
	case tok.Type == TokenGraph || tok.Type == TokenNode || tok.Type == TokenEdge:
		p.next()
		return p.skipAttrLists()
	case tok.Type == TokenSubgraph || tok.Type == TokenLBrace:
		return p.parseSubgraph()
	case tok.IsID():
		return p.parseNodeOrEdge()
	default:
		return p.errorf(tok, "unexpected %s", describe(tok))
	}
}

// parseSubgraph flattens a subgraph body into the enclosing graph.
func (p *parser) parseSubgraph() error {
	if p.accept(TokenSubgraph) && p.peek().IsID() {
		p.next()
	}
	if _, err := p.expect(TokenLBrace); err != nil {
		return err
	}
	if err := p.parseStmtList(); err != nil {
		return err
	}
	_, err := p.expect(TokenRBrace)
	return err
}

func (p *parser) parseNodeOrEdge() error {
	first, err := p.parseNodeID()
	if err != nil {
		return err
	}

	// ID '=' ID is a graph attribute assignment.
	if p.accept(TokenEquals) {
		if tok := p.next(); !tok.IsID() {
			return p.errorf(tok, "expected attribute value, got %s", describe(tok))
		}
		return nil
	}

	chain := []string{first}
	for {
		tok := p.peek()
		if tok.Type == TokenArrow {
			return p.errorf(tok, "directed edge '->' in undirected graph")
		}
		if tok.Type != TokenUndirected {
			break
		}
		p.next()
		id, err := p.parseNodeID()
		if err != nil {
			return err
		}
		chain = append(chain, id)
	}

	if err := p.skipAttrLists(); err != nil {
		return err
	}

	if len(chain) == 1 {
		p.g.AddNode(first)
		return nil
	}
	for i := 0; i+1 < len(chain); i++ {
		p.g.AddEdge(chain[i], chain[i+1])
	}
	return nil
}

// parseNodeID reads an identifier with an optional, ignored :port[:compass].
func (p *parser) parseNodeID() (string, error) {
	tok := p.next()
	if !tok.IsID() {
		return "", p.errorf(tok, "expected node identifier, got %s", describe(tok))
	}
	for p.accept(TokenColon) {
		if port := p.next(); !port.IsID() {
			return "", p.errorf(port, "expected port name, got %s", describe(port))
		}
	}
	return tok.Value, nil
}

func (p *parser) skipAttrLists() error {
	for p.accept(TokenLBracket) {
		for {
			tok := p.next()
			switch {
			case tok.Type == TokenRBracket:
			case tok.Type == TokenEOF:
				return p.errorf(tok, "unterminated attribute list")
			case tok.IsID() || isKeyword(tok.Type) || tok.Type == TokenEquals || tok.Type == TokenComma || tok.Type == TokenSemicolon:
				continue
			default:
				return p.errorf(tok, "unexpected %s in attribute list", describe(tok))
			}
			break
		}
	}
	return nil
}

func isKeyword(typ TokenType) bool {
	return typ >= TokenGraph && typ <= TokenEdge
}
