package parser

// Lexer tokenizes a USFM buffer. It holds a single monotonic cursor and one
// mode flag; lookahead is implemented by saving and restoring the cursor.
// The lexer never allocates and never fails: at end of input it keeps
// returning TokenEOF.
type Lexer struct {
	src         []byte
	pos         int
	inAttribute bool
}

func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src}
}

// View returns the token's bytes. The slice aliases the source buffer.
func (l *Lexer) View(tok Token) []byte {
	return l.src[tok.Start:tok.End]
}

// Peek returns the next token without advancing.
func (l *Lexer) Peek() Token {
	pos, inAttribute := l.pos, l.inAttribute
	tok := l.Next()
	l.pos, l.inAttribute = pos, inAttribute
	return tok
}

func (l *Lexer) Next() Token {
	for {
		if l.inAttribute {
			l.skipSpace()
		}
		if l.pos >= len(l.src) {
			return Token{Kind: TokenEOF, Start: l.pos, End: l.pos}
		}
		switch c := l.src[l.pos]; {
		case c == '\\':
			return l.scanMarker()
		case c == '|':
			start := l.pos
			l.pos++
			l.inAttribute = true
			return Token{Kind: TokenAttribStart, Start: start, End: l.pos}
		case l.inAttribute:
			return l.scanAttributeToken()
		default:
			if tok, ok := l.scanText(); ok {
				return tok
			}
			// whitespace-only run between constructs; rescan
		}
	}
}

// scanMarker reads a \name or \name* lexeme. Consuming a marker always ends
// attribute mode. A tag-open greedily eats exactly one whitespace byte after
// the marker so a single separating space never reaches the following text.
func (l *Lexer) scanMarker() Token {
	l.inAttribute = false
	start := l.pos
	l.pos++
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '\\' || c == '*' || isSpace(c) {
			break
		}
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '*' {
		l.pos++
		return Token{Kind: TokenTagClose, Start: start, End: l.pos}
	}
	end := l.pos
	if l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
	return Token{Kind: TokenTagOpen, Start: start, End: end}
}

// scanText reads up to the next structurally significant byte. The trailing
// whitespace run is trimmed to at most one byte; a token that is nothing but
// whitespace is dropped entirely (ok=false) so blank runs between constructs
// produce no elements. Interior and leading whitespace stay in the token;
// collapsing runs to single spaces is the renderer's job.
func (l *Lexer) scanText() (Token, bool) {
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '\\' || c == '|' {
			break
		}
		l.pos++
	}
	end := l.pos
	last := end - 1
	for last >= start && isSpace(l.src[last]) {
		last--
	}
	if last < start {
		return Token{}, false
	}
	trimmed := last + 1
	if trimmed < end {
		trimmed++ // keep a single trailing whitespace byte
	}
	return Token{Kind: TokenText, Start: start, End: trimmed}, true
}

// scanAttributeToken reads one token inside a |key="value" section. Leading
// whitespace was already skipped by Next.
func (l *Lexer) scanAttributeToken() Token {
	start := l.pos
	switch l.src[l.pos] {
	case '=':
		l.pos++
		return Token{Kind: TokenEquals, Start: start, End: l.pos}
	case '"':
		return l.scanQuoted()
	}
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if isSpace(c) || c == '=' || c == '\\' || c == '"' || c == '|' {
			break
		}
		l.pos++
	}
	return Token{Kind: TokenIdent, Start: start, End: l.pos}
}

// scanQuoted reads a quoted attribute value and yields the inner bytes, with
// the surrounding quotes excluded from the token range.
func (l *Lexer) scanQuoted() Token {
	l.pos++
	start := l.pos
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '\\':
			l.pos++
			if l.pos < len(l.src) {
				l.pos++
			}
		case '"':
			tok := Token{Kind: TokenIdent, Start: start, End: l.pos}
			l.pos++
			return tok
		default:
			l.pos++
		}
	}
	return Token{Kind: TokenIdent, Start: start, End: l.pos}
}

// CutWord splits the first whitespace-delimited word off a just-consumed
// text token. The remainder after the word and its following whitespace run
// is pushed back into the stream by rewinding the cursor. Returns ok=false
// when the token holds no word.
func (l *Lexer) CutWord(tok Token) (Token, bool) {
	i := tok.Start
	for i < tok.End && isSpace(l.src[i]) {
		i++
	}
	if i == tok.End {
		return Token{}, false
	}
	wordStart := i
	for i < tok.End && !isSpace(l.src[i]) {
		i++
	}
	word := Token{Kind: TokenText, Start: wordStart, End: i}
	for i < tok.End && isSpace(l.src[i]) {
		i++
	}
	if i < tok.End {
		l.pos = i
	}
	return word, true
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
}

// Whitespace is exactly space, tab and newline.
func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}
