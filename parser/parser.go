package parser

import (
	"bytes"
	"io"
)

// Parser builds an element tree from a USFM buffer by recursive descent over
// the token stream. Grammar dispatch is ordered alternation: milestone,
// inline, paragraph, then character, each guarded by a peeked role predicate
// so a non-matching production declines without consuming input.
//
// One Parser owns one Lexer and one ErrorList; instances are not safe for
// concurrent use, but independent parsers share nothing and may run in
// parallel.
type Parser struct {
	src  []byte
	lex  *Lexer
	errs *ErrorList
}

// NewParser wraps a complete in-memory buffer. The buffer must outlive the
// parser and every element produced from it.
func NewParser(src []byte) *Parser {
	return &Parser{src: src, lex: NewLexer(src), errs: NewErrorList()}
}

// Errors exposes the diagnostics recorded so far.
func (p *Parser) Errors() *ErrorList {
	return p.errs
}

// Next parses exactly one top-level construct. It returns io.EOF at clean
// end of input. On a structural failure the partial construct is discarded,
// a diagnostic is recorded, and at least one token has been consumed, so
// repeated calls always make forward progress.
func (p *Parser) Next() (*Element, error) {
	tok := p.lex.Peek()
	switch tok.Kind {
	case TokenEOF:
		return nil, io.EOF
	case TokenText:
		p.lex.Next()
		return textElement(p.lex.View(tok)), nil
	case TokenTagOpen:
		tag, err := ParseTag(p.lex.View(tok))
		if err != nil {
			p.lex.Next()
			return nil, p.fail(Diagnostic{Token: tok, Kind: ErrorInvalidTag})
		}
		if tag.IsMilestoneEnd() {
			p.lex.Next()
			return nil, p.fail(Diagnostic{Token: tok, Kind: ErrorInvalidRoot})
		}
		return p.parseNode(tok, tag)
	default:
		// stray close marker or attribute punctuation at document root
		p.lex.Next()
		return nil, p.fail(Diagnostic{Token: tok, Kind: ErrorInvalidRoot})
	}
}

// Document drains Next into a tree under a synthetic root. A failed
// construct contributes nothing; parsing resumes at the next token, so
// structural damage stays local to the offending construct.
func (p *Parser) Document() *Document {
	root := newElement(Tag{Kind: TagRoot})
	for {
		el, err := p.Next()
		if err == io.EOF {
			return &Document{Root: root}
		}
		if err != nil {
			continue
		}
		root.AddChild(el)
	}
}

func (p *Parser) fail(d Diagnostic) error {
	p.errs.Record(d)
	return &ParseError{Diag: d}
}

func (p *Parser) parseNode(open Token, tag Tag) (*Element, error) {
	switch {
	case tag.IsMilestoneStart():
		return p.parseMilestone(open, tag)
	case tag.IsInline():
		return p.parseInline(open, tag)
	case tag.IsParagraph():
		return p.parseParagraph(open, tag)
	default:
		return p.parseCharacter(open, tag)
	}
}

// parseSpecialText extracts the mandatory first word after footnote and
// chapter/verse markers: the footnote caller or the chapter/verse number.
// The word becomes the element's first text child; the rest of the text
// token goes back into the stream.
func (p *Parser) parseSpecialText(el *Element, open Token) error {
	var kind ErrorKind
	switch el.Tag.Kind {
	case TagF, TagFe:
		kind = ErrorExpectedCaller
	case TagC, TagV:
		kind = ErrorExpectedNumber
	default:
		return nil
	}
	tok := p.lex.Peek()
	if tok.Kind != TokenText {
		return p.fail(Diagnostic{Token: open, Kind: kind})
	}
	p.lex.Next()
	word, ok := p.lex.CutWord(tok)
	if !ok {
		return p.fail(Diagnostic{Token: open, Kind: kind})
	}
	el.AddChild(textElement(p.lex.View(word)))
	return nil
}

// parseMilestone handles \qt-s, \ts-s and user (\z...) milestones: an
// opening marker, optional attributes, a literal \* self-close, and - since
// every milestone kind here is paired - children up to the matching end
// marker, itself self-closed.
func (p *Parser) parseMilestone(open Token, tag Tag) (*Element, error) {
	p.lex.Next()
	el := newElement(tag)
	if err := p.parseSpecialText(el, open); err != nil {
		return nil, err
	}
	if p.lex.Peek().Kind == TokenAttribStart {
		if err := p.parseAttributes(el); err != nil {
			return nil, err
		}
	}
	if err := p.expectSelfClose(open); err != nil {
		return nil, err
	}
	if !tag.HasMilestoneEnd() {
		return el, nil
	}

	for {
		tok := p.lex.Peek()
		switch tok.Kind {
		case TokenText:
			p.lex.Next()
			el.AddChild(textElement(p.lex.View(tok)))
		case TokenTagOpen:
			childTag, err := ParseTag(p.lex.View(tok))
			if err != nil {
				p.lex.Next()
				return nil, p.fail(Diagnostic{Token: tok, Kind: ErrorInvalidTag})
			}
			if childTag.IsMilestoneEnd() {
				p.lex.Next()
				if childTag.Kind != tag.MilestoneEnd() ||
					!bytes.Equal(strippedMarker(p.lex.View(tok)), strippedMarker(p.lex.View(open))) {
					return nil, p.fail(Diagnostic{Token: tok, Kind: ErrorUnexpectedMilestoneClose, Opening: open})
				}
				if p.lex.Peek().Kind == TokenAttribStart {
					// end-marker attributes (eid) validate against the
					// end kind but land on the milestone element
					endEl := newElement(childTag)
					if err := p.parseAttributes(endEl); err != nil {
						return nil, err
					}
					el.Attributes = append(el.Attributes, endEl.Attributes...)
				}
				if err := p.expectSelfClose(tok); err != nil {
					return nil, err
				}
				return el, nil
			}
			child, err := p.parseNode(tok, childTag)
			if err != nil {
				return nil, err
			}
			el.AddChild(child)
		default:
			return nil, p.fail(Diagnostic{Token: tok, Kind: ErrorUnexpectedMilestoneClose, Opening: open})
		}
	}
}

// parseInline handles markers that carry a named close (\w ...\w*): special
// text, a greedy child loop, optional attributes, then the close marker.
func (p *Parser) parseInline(open Token, tag Tag) (*Element, error) {
	p.lex.Next()
	el := newElement(tag)
	if err := p.parseSpecialText(el, open); err != nil {
		return nil, err
	}
	for {
		tok := p.lex.Peek()
		if tok.Kind == TokenText {
			p.lex.Next()
			el.AddChild(textElement(p.lex.View(tok)))
			continue
		}
		if tok.Kind != TokenTagOpen {
			break
		}
		childTag, err := ParseTag(p.lex.View(tok))
		if err != nil {
			p.lex.Next()
			return nil, p.fail(Diagnostic{Token: tok, Kind: ErrorInvalidTag})
		}
		if childTag.IsMilestoneEnd() {
			break
		}
		child, err := p.parseNode(tok, childTag)
		if err != nil {
			return nil, err
		}
		el.AddChild(child)
	}
	if p.lex.Peek().Kind == TokenAttribStart {
		if err := p.parseAttributes(el); err != nil {
			return nil, err
		}
	}
	p.closeInline(open)
	return el, nil
}

// closeInline consumes the named close marker. A missing or foreign close is
// tolerated: the mismatch is recorded, the element counts as closed, and a
// foreign token stays in the stream for the enclosing construct.
func (p *Parser) closeInline(open Token) {
	tok := p.lex.Peek()
	if tok.Kind == TokenTagClose &&
		bytes.Equal(strippedMarker(p.lex.View(tok)), strippedMarker(p.lex.View(open))) {
		p.lex.Next()
		return
	}
	p.errs.Record(Diagnostic{Token: tok, Kind: ErrorExpectedClose, Opening: open})
}

// parseParagraph collects milestone, inline, character and text children up
// to the next paragraph marker. The chapter marker is a structural boundary,
// not a container: it takes its number and stops.
func (p *Parser) parseParagraph(open Token, tag Tag) (*Element, error) {
	p.lex.Next()
	el := newElement(tag)
	if err := p.parseSpecialText(el, open); err != nil {
		return nil, err
	}
	if tag.Kind == TagC {
		return el, nil
	}
	for {
		tok := p.lex.Peek()
		if tok.Kind == TokenText {
			p.lex.Next()
			el.AddChild(textElement(p.lex.View(tok)))
			continue
		}
		if tok.Kind != TokenTagOpen {
			return el, nil
		}
		childTag, err := ParseTag(p.lex.View(tok))
		if err != nil {
			p.lex.Next()
			return nil, p.fail(Diagnostic{Token: tok, Kind: ErrorInvalidTag})
		}
		if childTag.IsParagraph() || childTag.IsMilestoneEnd() {
			return el, nil
		}
		child, err := p.parseNode(tok, childTag)
		if err != nil {
			return nil, err
		}
		el.AddChild(child)
	}
}

// parseCharacter handles the catch-all role: special text, at most one text
// child, and a silently consumed close marker when the input happens to
// carry one. The verse marker takes only its number; verse text belongs to
// the surrounding paragraph.
func (p *Parser) parseCharacter(open Token, tag Tag) (*Element, error) {
	p.lex.Next()
	el := newElement(tag)
	if err := p.parseSpecialText(el, open); err != nil {
		return nil, err
	}
	if tag.Kind != TagV {
		if tok := p.lex.Peek(); tok.Kind == TokenText {
			p.lex.Next()
			el.AddChild(textElement(p.lex.View(tok)))
		}
	}
	if tok := p.lex.Peek(); tok.Kind == TokenTagClose &&
		bytes.Equal(strippedMarker(p.lex.View(tok)), strippedMarker(p.lex.View(open))) {
		p.lex.Next()
	}
	return el, nil
}

// parseAttributes reads a |key="value" ... section. Keys must be x-
// extensions or members of the tag's fixed set; a bare value binds to the
// tag's default attribute key.
func (p *Parser) parseAttributes(el *Element) error {
	p.lex.Next()
	for {
		key := p.lex.Peek()
		if key.Kind != TokenIdent {
			return nil
		}
		p.lex.Next()
		if p.lex.Peek().Kind != TokenEquals {
			name, ok := el.Tag.DefaultAttribute()
			if !ok {
				return p.fail(Diagnostic{Token: key, Kind: ErrorNoDefaultAttribute, Tag: el.Tag})
			}
			el.Attributes = append(el.Attributes, Attribute{Key: []byte(name), Value: p.lex.View(key)})
			continue
		}
		p.lex.Next()
		if !el.Tag.ValidAttribute(p.lex.View(key)) {
			return p.fail(Diagnostic{Token: key, Kind: ErrorInvalidAttribute, Key: p.lex.View(key)})
		}
		val := p.lex.Peek()
		if val.Kind != TokenIdent {
			return p.fail(Diagnostic{Token: val, Kind: ErrorExpectedAttributeValue})
		}
		p.lex.Next()
		el.Attributes = append(el.Attributes, Attribute{Key: p.lex.View(key), Value: p.lex.View(val)})
	}
}

// expectSelfClose requires the literal generic close marker \* and reports
// ref, the marker that demanded it, on failure.
func (p *Parser) expectSelfClose(ref Token) error {
	tok := p.lex.Peek()
	if tok.Kind == TokenTagClose && bytes.Equal(p.lex.View(tok), []byte(`\*`)) {
		p.lex.Next()
		return nil
	}
	return p.fail(Diagnostic{Token: tok, Kind: ErrorExpectedSelfClose, Opening: ref})
}

// strippedMarker reduces marker text to its pairing form: no backslash, no
// asterisk, no -s/-e milestone suffix.
func strippedMarker(marker []byte) []byte {
	m := marker
	if len(m) > 0 && m[0] == '\\' {
		m = m[1:]
	}
	if n := len(m); n > 0 && m[n-1] == '*' {
		m = m[:n-1]
	}
	if n := len(m); n >= 2 && m[n-2] == '-' && (m[n-1] == 's' || m[n-1] == 'e') {
		m = m[:n-2]
	}
	return m
}
