package parser

// TokenKind discriminates the lexer's output.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenTagOpen
	TokenTagClose
	TokenText
	TokenAttribStart
	TokenIdent
	TokenEquals
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:         "EOF",
	TokenTagOpen:     "TagOpen",
	TokenTagClose:    "TagClose",
	TokenText:        "Text",
	TokenAttribStart: "AttribStart",
	TokenIdent:       "Ident",
	TokenEquals:      "=",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Token is a [Start,End) byte range into the source buffer. Tokens never own
// a copy of their text; the buffer must outlive every token derived from it.
type Token struct {
	Kind  TokenKind
	Start int
	End   int
}

// Position is a 1-based line/column pair resolved from a byte offset, used
// only when rendering diagnostics.
type Position struct {
	Line   int
	Column int
}

// PositionOf resolves a byte offset against the source buffer.
func PositionOf(src []byte, offset int) Position {
	line, col := 1, 1
	if offset > len(src) {
		offset = len(src)
	}
	for _, c := range src[:offset] {
		if c == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return Position{Line: line, Column: col}
}
