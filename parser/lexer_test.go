package parser

import (
	"testing"
)

type lexedToken struct {
	Kind TokenKind
	Text string
}

func lexAll(input string) []lexedToken {
	lex := NewLexer([]byte(input))
	var tokens []lexedToken
	for {
		tok := lex.Next()
		if tok.Kind == TokenEOF {
			return tokens
		}
		tokens = append(tokens, lexedToken{Kind: tok.Kind, Text: string(lex.View(tok))})
	}
}

func TestLexer(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []lexedToken
	}{
		{
			name:  "marker and text",
			input: `\p hello`,
			expected: []lexedToken{
				{TokenTagOpen, `\p`},
				{TokenText, "hello"},
			},
		},
		{
			name:  "marker eats exactly one space",
			input: `\p  x`,
			expected: []lexedToken{
				{TokenTagOpen, `\p`},
				{TokenText, " x"},
			},
		},
		{
			name:  "newline after marker is also eaten",
			input: "\\p\nhello",
			expected: []lexedToken{
				{TokenTagOpen, `\p`},
				{TokenText, "hello"},
			},
		},
		{
			name:  "named close marker",
			input: `\w word\w*`,
			expected: []lexedToken{
				{TokenTagOpen, `\w`},
				{TokenText, "word"},
				{TokenTagClose, `\w*`},
			},
		},
		{
			name:  "milestone self close",
			input: `\zaln-s\*rest\zaln-e\*`,
			expected: []lexedToken{
				{TokenTagOpen, `\zaln-s`},
				{TokenTagClose, `\*`},
				{TokenText, "rest"},
				{TokenTagOpen, `\zaln-e`},
				{TokenTagClose, `\*`},
			},
		},
		{
			name:  "trailing whitespace run trimmed to one byte",
			input: "\\p hello   \\q more",
			expected: []lexedToken{
				{TokenTagOpen, `\p`},
				{TokenText, "hello "},
				{TokenTagOpen, `\q`},
				{TokenText, "more"},
			},
		},
		{
			name:  "whitespace only run between markers is dropped",
			input: "\\p   \n \\q",
			expected: []lexedToken{
				{TokenTagOpen, `\p`},
				{TokenTagOpen, `\q`},
			},
		},
		{
			name:  "attribute section",
			input: `\w word |lemma="grace" x-id = "1"\w*`,
			expected: []lexedToken{
				{TokenTagOpen, `\w`},
				{TokenText, "word "},
				{TokenAttribStart, "|"},
				{TokenIdent, "lemma"},
				{TokenEquals, "="},
				{TokenIdent, "grace"},
				{TokenIdent, "x-id"},
				{TokenEquals, "="},
				{TokenIdent, "1"},
				{TokenTagClose, `\w*`},
			},
		},
		{
			name:  "bare attribute value",
			input: `\w hi |gloria\w*`,
			expected: []lexedToken{
				{TokenTagOpen, `\w`},
				{TokenText, "hi "},
				{TokenAttribStart, "|"},
				{TokenIdent, "gloria"},
				{TokenTagClose, `\w*`},
			},
		},
		{
			name:  "quoted value keeps escapes raw",
			input: `\w x |lemma="a\"b"\w*`,
			expected: []lexedToken{
				{TokenTagOpen, `\w`},
				{TokenText, "x "},
				{TokenAttribStart, "|"},
				{TokenIdent, "lemma"},
				{TokenEquals, "="},
				{TokenIdent, `a\"b`},
				{TokenTagClose, `\w*`},
			},
		},
		{
			name:  "empty quoted value",
			input: `\w x |lemma=""\w*`,
			expected: []lexedToken{
				{TokenTagOpen, `\w`},
				{TokenText, "x "},
				{TokenAttribStart, "|"},
				{TokenIdent, "lemma"},
				{TokenEquals, "="},
				{TokenIdent, ""},
				{TokenTagClose, `\w*`},
			},
		},
		{
			name:  "marker ends attribute mode",
			input: `\qt-s |sid="QT1"\*inside`,
			expected: []lexedToken{
				{TokenTagOpen, `\qt-s`},
				{TokenAttribStart, "|"},
				{TokenIdent, "sid"},
				{TokenEquals, "="},
				{TokenIdent, "QT1"},
				{TokenTagClose, `\*`},
				{TokenText, "inside"},
			},
		},
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lexAll(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("token count = %d, want %d\ngot: %v", len(got), len(tt.expected), got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d = %v %q, want %v %q",
						i, got[i].Kind, got[i].Text, tt.expected[i].Kind, tt.expected[i].Text)
				}
			}
		})
	}
}

func TestLexerPeek(t *testing.T) {
	lex := NewLexer([]byte(`\p hello`))

	first := lex.Peek()
	second := lex.Peek()
	if first != second {
		t.Errorf("Peek is not idempotent: %v vs %v", first, second)
	}
	if next := lex.Next(); next != first {
		t.Errorf("Next = %v, want peeked %v", next, first)
	}

	// peeking inside an attribute section must not leak mode changes
	lex = NewLexer([]byte(`\w x |lemma="l"\w*`))
	lex.Next() // \w
	lex.Next() // x
	peeked := lex.Peek()
	if peeked.Kind != TokenAttribStart {
		t.Fatalf("peeked %v, want AttribStart", peeked)
	}
	if got := lex.Next(); got != peeked {
		t.Errorf("Next after Peek = %v, want %v", got, peeked)
	}
}

func TestLexerEOFIsSticky(t *testing.T) {
	lex := NewLexer([]byte(`\p`))
	lex.Next()
	for i := 0; i < 3; i++ {
		if tok := lex.Next(); tok.Kind != TokenEOF {
			t.Fatalf("call %d after end: %v, want EOF", i, tok)
		}
	}
}

func TestCutWord(t *testing.T) {
	lex := NewLexer([]byte(`\v 1 In the beginning`))
	lex.Next() // \v
	text := lex.Next()
	word, ok := lex.CutWord(text)
	if !ok {
		t.Fatal("CutWord found no word")
	}
	if got := string(lex.View(word)); got != "1" {
		t.Errorf("word = %q, want %q", got, "1")
	}

	rest := lex.Next()
	if rest.Kind != TokenText {
		t.Fatalf("after CutWord: %v, want Text", rest)
	}
	if got := string(lex.View(rest)); got != "In the beginning" {
		t.Errorf("remainder = %q, want %q", got, "In the beginning")
	}
}

func TestCutWordNoRemainder(t *testing.T) {
	lex := NewLexer([]byte(`\c 5`))
	lex.Next() // \c
	text := lex.Next()
	word, ok := lex.CutWord(text)
	if !ok {
		t.Fatal("CutWord found no word")
	}
	if got := string(lex.View(word)); got != "5" {
		t.Errorf("word = %q, want %q", got, "5")
	}
	if tok := lex.Next(); tok.Kind != TokenEOF {
		t.Errorf("after lone word: %v, want EOF", tok)
	}
}

func TestPositionOf(t *testing.T) {
	src := []byte("\\p first\n\\q second")
	tests := []struct {
		offset int
		want   Position
	}{
		{0, Position{Line: 1, Column: 1}},
		{3, Position{Line: 1, Column: 4}},
		{9, Position{Line: 2, Column: 1}},
		{12, Position{Line: 2, Column: 4}},
		{100, Position{Line: 2, Column: 10}},
	}
	for _, tt := range tests {
		if got := PositionOf(src, tt.offset); got != tt.want {
			t.Errorf("PositionOf(%d) = %v, want %v", tt.offset, got, tt.want)
		}
	}
}
