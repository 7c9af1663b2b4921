// ABOUTME: Tokenizer for undirected DOT sources: keywords, identifiers, numbers, quoted strings, edge operators.
// ABOUTME: Skips //, /* */ and leading-# comments and reports positions for parser error messages.
package dot

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenType identifies the kind of a lexical token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdentifier
	TokenString
	TokenNumber
	TokenGraph
	TokenDigraph
	TokenStrict
	TokenSubgraph
	TokenNode
	TokenEdge
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenEquals
	TokenComma
	TokenSemicolon
	TokenColon
	TokenUndirected // --
	TokenArrow      // ->
)

var tokenNames = map[TokenType]string{
	TokenEOF:        "EOF",
	TokenIdentifier: "identifier",
	TokenString:     "string",
	TokenNumber:     "number",
	TokenGraph:      "graph",
	TokenDigraph:    "digraph",
	TokenStrict:     "strict",
	TokenSubgraph:   "subgraph",
	TokenNode:       "node",
	TokenEdge:       "edge",
	TokenLBrace:     "{",
	TokenRBrace:     "}",
	TokenLBracket:   "[",
	TokenRBracket:   "]",
	TokenEquals:     "=",
	TokenComma:      ",",
	TokenSemicolon:  ";",
	TokenColon:      ":",
	TokenUndirected: "--",
	TokenArrow:      "->",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// keywords are matched case-insensitively, as graphviz does.
var keywords = map[string]TokenType{
	"graph":    TokenGraph,
	"digraph":  TokenDigraph,
	"strict":   TokenStrict,
	"subgraph": TokenSubgraph,
	"node":     TokenNode,
	"edge":     TokenEdge,
}

// Token is a single lexical unit with its source position (1-based).
type Token struct {
	Type  TokenType
	Value string
	Line  int
	Col   int
}

// IsID reports whether the token can serve as a node identifier.
func (t Token) IsID() bool {
	return t.Type == TokenIdentifier || t.Type == TokenString || t.Type == TokenNumber
}

type lexer struct {
	src    []rune
	pos    int
	line   int
	col    int
	tokens []Token
}

// Lex splits input into tokens terminated by a TokenEOF.
// Input must be valid UTF-8; a bad byte sequence is a syntax error rather
// than a silent U+FFFD substitution.
func Lex(input string) ([]Token, error) {
	if !utf8.ValidString(input) {
		line, col := invalidUTF8Position(input)
		return nil, fmt.Errorf("%w: %d:%d: invalid UTF-8 encoding", ErrSyntax, line, col)
	}
	l := &lexer{src: []rune(input), line: 1, col: 1}
	for {
		if err := l.skipSpaceAndComments(); err != nil {
			return nil, err
		}
		if l.pos >= len(l.src) {
			l.emit(TokenEOF, "", l.line, l.col)
			return l.tokens, nil
		}
		if err := l.next(); err != nil {
			return nil, err
		}
	}
}

// invalidUTF8Position returns the 1-based line and column of the first
// invalid byte sequence in s.
func invalidUTF8Position(s string) (int, int) {
	line, col := 1, 1
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			break
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
		i += size
	}
	return line, col
}

func (l *lexer) emit(typ TokenType, val string, line, col int) {
	l.tokens = append(l.tokens, Token{Type: typ, Value: val, Line: line, Col: col})
}

func (l *lexer) peek(offset int) rune {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *lexer) advance() rune {
	ch := l.src[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

func (l *lexer) errorf(line, col int, format string, args ...any) error {
	return fmt.Errorf("%w: %d:%d: %s", ErrSyntax, line, col, fmt.Sprintf(format, args...))
}

func (l *lexer) skipSpaceAndComments() error {
	for l.pos < len(l.src) {
		ch := l.peek(0)
		switch {
		case unicode.IsSpace(ch):
			l.advance()
		case ch == '/' && l.peek(1) == '/':
			l.skipLine()
		case ch == '#' && l.col == 1:
			l.skipLine()
		case ch == '/' && l.peek(1) == '*':
			line, col := l.line, l.col
			l.advance()
			l.advance()
			closed := false
			for l.pos < len(l.src) {
				if l.peek(0) == '*' && l.peek(1) == '/' {
					l.advance()
					l.advance()
					closed = true
					break
				}
				l.advance()
			}
			if !closed {
				return l.errorf(line, col, "unterminated block comment")
			}
		default:
			return nil
		}
	}
	return nil
}

func (l *lexer) skipLine() {
	for l.pos < len(l.src) && l.peek(0) != '\n' {
		l.advance()
	}
}

func (l *lexer) next() error {
	line, col := l.line, l.col
	ch := l.peek(0)

	switch ch {
	case '{':
		l.advance()
		l.emit(TokenLBrace, "{", line, col)
		return nil
	case '}':
		l.advance()
		l.emit(TokenRBrace, "}", line, col)
		return nil
	case '[':
		l.advance()
		l.emit(TokenLBracket, "[", line, col)
		return nil
	case ']':
		l.advance()
		l.emit(TokenRBracket, "]", line, col)
		return nil
	case '=':
		l.advance()
		l.emit(TokenEquals, "=", line, col)
		return nil
	case ',':
		l.advance()
		l.emit(TokenComma, ",", line, col)
		return nil
	case ';':
		l.advance()
		l.emit(TokenSemicolon, ";", line, col)
		return nil
	case ':':
		l.advance()
		l.emit(TokenColon, ":", line, col)
		return nil
	case '"':
		return l.lexString(line, col)
	case '-':
		switch next := l.peek(1); {
		case next == '-':
			l.advance()
			l.advance()
			l.emit(TokenUndirected, "--", line, col)
			return nil
		case next == '>':
			l.advance()
			l.advance()
			l.emit(TokenArrow, "->", line, col)
			return nil
		case next == '.' || unicode.IsDigit(next):
			return l.lexNumber(line, col)
		}
		return l.errorf(line, col, "unexpected character %q", ch)
	}

	if ch == '.' || unicode.IsDigit(ch) {
		return l.lexNumber(line, col)
	}
	if ch == '_' || unicode.IsLetter(ch) {
		l.lexIdentifier(line, col)
		return nil
	}
	return l.errorf(line, col, "unexpected character %q", ch)
}

func (l *lexer) lexString(line, col int) error {
	l.advance() // opening quote
	var b strings.Builder
	for l.pos < len(l.src) {
		ch := l.advance()
		switch ch {
		case '"':
			l.emit(TokenString, b.String(), line, col)
			return nil
		case '\\':
			if l.pos >= len(l.src) {
				return l.errorf(line, col, "unterminated string")
			}
			esc := l.advance()
			switch esc {
			case '"':
				b.WriteRune('"')
			case '\\':
				b.WriteRune('\\')
			case '\n':
				// line continuation
			default:
				b.WriteRune('\\')
				b.WriteRune(esc)
			}
		default:
			b.WriteRune(ch)
		}
	}
	return l.errorf(line, col, "unterminated string")
}

func (l *lexer) lexNumber(line, col int) error {
	start := l.pos
	if l.peek(0) == '-' {
		l.advance()
	}
	sawDot, sawDigit := false, false
	for l.pos < len(l.src) {
		ch := l.peek(0)
		if ch == '.' && !sawDot {
			sawDot = true
		} else if unicode.IsDigit(ch) {
			sawDigit = true
		} else {
			break
		}
		l.advance()
	}
	if !sawDigit {
		return l.errorf(line, col, "malformed number %q", string(l.src[start:l.pos]))
	}
	l.emit(TokenNumber, string(l.src[start:l.pos]), line, col)
	return nil
}

func (l *lexer) lexIdentifier(line, col int) {
	start := l.pos
	for l.pos < len(l.src) {
		ch := l.peek(0)
		if ch != '_' && !unicode.IsLetter(ch) && !unicode.IsDigit(ch) {
			break
		}
		l.advance()
	}
	word := string(l.src[start:l.pos])
	if typ, ok := keywords[strings.ToLower(word)]; ok {
		l.emit(typ, word, line, col)
		return
	}
	l.emit(TokenIdentifier, word, line, col)
}
