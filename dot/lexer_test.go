// ABOUTME: Tests for the undirected DOT lexer.
// ABOUTME: Covers empty input, single tokens, keywords, strings, numbers, comments, edge operators and errors.
package dot

import (
	"errors"
	"strings"
	"testing"
)

func TestLexEmptyInput(t *testing.T) {
	tokens, err := Lex("")
	if err != nil {
		t.Fatalf("Lex(%q) error: %v", "", err)
	}
	if len(tokens) != 1 {
		t.Fatalf("Lex(%q) produced %d tokens, want 1 (just EOF)", "", len(tokens))
	}
	if tokens[0].Type != TokenEOF {
		t.Errorf("Lex(%q)[0].Type = %v, want TokenEOF", "", tokens[0].Type)
	}
}

func TestLexSingleTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantType TokenType
		wantVal  string
	}{
		{"left brace", "{", TokenLBrace, "{"},
		{"right brace", "}", TokenRBrace, "}"},
		{"left bracket", "[", TokenLBracket, "["},
		{"right bracket", "]", TokenRBracket, "]"},
		{"undirected", "--", TokenUndirected, "--"},
		{"arrow", "->", TokenArrow, "->"},
		{"equals", "=", TokenEquals, "="},
		{"comma", ",", TokenComma, ","},
		{"semicolon", ";", TokenSemicolon, ";"},
		{"colon", ":", TokenColon, ":"},
		{"identifier", "Alice", TokenIdentifier, "Alice"},
		{"string", `"hello"`, TokenString, "hello"},
		{"number int", "42", TokenNumber, "42"},
		{"number float", "3.14", TokenNumber, "3.14"},
		{"number leading dot", ".5", TokenNumber, ".5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Lex(tt.input)
			if err != nil {
				t.Fatalf("Lex(%q) error: %v", tt.input, err)
			}
			if len(tokens) != 2 {
				t.Fatalf("Lex(%q) produced %d tokens, want 2", tt.input, len(tokens))
			}
			if tokens[0].Type != tt.wantType {
				t.Errorf("Lex(%q)[0].Type = %v, want %v", tt.input, tokens[0].Type, tt.wantType)
			}
			if tokens[0].Value != tt.wantVal {
				t.Errorf("Lex(%q)[0].Value = %q, want %q", tt.input, tokens[0].Value, tt.wantVal)
			}
		})
	}
}

func TestLexKeywordsVsIdentifiers(t *testing.T) {
	tests := []struct {
		input    string
		wantType TokenType
	}{
		{"graph", TokenGraph},
		{"Graph", TokenGraph},
		{"digraph", TokenDigraph},
		{"strict", TokenStrict},
		{"subgraph", TokenSubgraph},
		{"node", TokenNode},
		{"edge", TokenEdge},
		{"graphs", TokenIdentifier},
		{"nodes", TokenIdentifier},
		{"_private", TokenIdentifier},
		{"node123", TokenIdentifier},
		{"sazid", TokenIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := Lex(tt.input)
			if err != nil {
				t.Fatalf("Lex(%q) error: %v", tt.input, err)
			}
			if tokens[0].Type != tt.wantType {
				t.Errorf("Lex(%q)[0].Type = %v, want %v", tt.input, tokens[0].Type, tt.wantType)
			}
			if tokens[0].Value != tt.input {
				t.Errorf("Lex(%q)[0].Value = %q, want %q", tt.input, tokens[0].Value, tt.input)
			}
		})
	}
}

func TestLexQuotedStringsWithEscapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", `"hello"`, "hello"},
		{"spaces", `"hello world"`, "hello world"},
		{"escaped quote", `"say \"hi\""`, `say "hi"`},
		{"escaped backslash", `"path\\to"`, `path\to`},
		{"unknown escape passthrough", `"a\nb"`, `a\nb`},
		{"line continuation", "\"ab\\\ncd\"", "abcd"},
		{"empty string", `""`, ""},
		{"unicode", `"Zoë"`, "Zoë"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Lex(tt.input)
			if err != nil {
				t.Fatalf("Lex(%q) error: %v", tt.input, err)
			}
			if tokens[0].Type != TokenString {
				t.Errorf("Lex(%q)[0].Type = %v, want TokenString", tt.input, tokens[0].Type)
			}
			if tokens[0].Value != tt.want {
				t.Errorf("Lex(%q)[0].Value = %q, want %q", tt.input, tokens[0].Value, tt.want)
			}
		})
	}
}

func TestLexComments(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantNonEOF int
	}{
		{"line comment after token", "hello // trailing", 1},
		{"block comment between tokens", "hello /* block */ world", 2},
		{"hash comment at line start", "# preprocessor\nhello", 1},
		{"only block comment", "/* block comment */", 0},
		{"multiline block comment", "before /* line1\nline2 */ after", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Lex(tt.input)
			if err != nil {
				t.Fatalf("Lex(%q) error: %v", tt.input, err)
			}
			if got := len(tokens) - 1; got != tt.wantNonEOF {
				t.Errorf("Lex(%q) produced %d non-EOF tokens, want %d", tt.input, got, tt.wantNonEOF)
			}
		})
	}
}

func TestLexEdgeStatement(t *testing.T) {
	tokens, err := Lex(`"Alice" -- Bob--carol;`)
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	want := []TokenType{
		TokenString, TokenUndirected, TokenIdentifier, TokenUndirected,
		TokenIdentifier, TokenSemicolon, TokenEOF,
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, wt := range want {
		if tokens[i].Type != wt {
			t.Errorf("token[%d].Type = %v, want %v", i, tokens[i].Type, wt)
		}
	}
}

func TestLexPositions(t *testing.T) {
	tokens, err := Lex("graph {\n  a -- b\n}")
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	a := tokens[2]
	if a.Value != "a" || a.Line != 2 || a.Col != 3 {
		t.Errorf("token a = %+v, want line 2 col 3", a)
	}
}

func TestLexNegativeNumber(t *testing.T) {
	tokens, err := Lex("-42")
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	if tokens[0].Type != TokenNumber || tokens[0].Value != "-42" {
		t.Errorf("got %v %q, want number -42", tokens[0].Type, tokens[0].Value)
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"unterminated string", `"unterminated`, "unterminated string"},
		{"unterminated block comment", `/* open`, "unterminated block comment"},
		{"stray minus", "a - b", "unexpected character"},
		{"html id", "<b>", "unexpected character"},
		{"invalid utf-8", "graph {\n  \"a\xff\" }", "2:5: invalid UTF-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lex(tt.input)
			if err == nil {
				t.Fatalf("Lex(%q) should fail", tt.input)
			}
			if !errors.Is(err, ErrSyntax) {
				t.Errorf("error %v should wrap ErrSyntax", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestTokenTypeString(t *testing.T) {
	if got := TokenUndirected.String(); got != "--" {
		t.Errorf("TokenUndirected.String() = %q", got)
	}
	if got := TokenType(99).String(); got != "TokenType(99)" {
		t.Errorf("unknown type String() = %q", got)
	}
}
