package parser

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// ErrorKind classifies a structural diagnostic. All kinds are recoverable at
// the construct level; none aborts the whole parse.
type ErrorKind int

const (
	ErrorInvalidTag ErrorKind = iota
	ErrorInvalidRoot
	ErrorInvalidAttribute
	ErrorExpectedAttributeValue
	ErrorUnexpectedMilestoneClose
	ErrorExpectedClose
	ErrorExpectedSelfClose
	ErrorExpectedCaller
	ErrorExpectedNumber
	ErrorNoDefaultAttribute
)

var errorKindNames = map[ErrorKind]string{
	ErrorInvalidTag:               "invalid marker",
	ErrorInvalidRoot:              "marker cannot appear at document root",
	ErrorInvalidAttribute:         "unknown attribute key",
	ErrorExpectedAttributeValue:   "expected attribute value",
	ErrorUnexpectedMilestoneClose: "milestone end does not match its opening marker",
	ErrorExpectedClose:            "expected closing marker",
	ErrorExpectedSelfClose:        "expected \\* after milestone marker",
	ErrorExpectedCaller:           "footnote is missing its caller",
	ErrorExpectedNumber:           "expected chapter or verse number",
	ErrorNoDefaultAttribute:       "marker has no default attribute",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "unknown error"
}

// hasOpening reports whether diagnostics of this kind reference a second
// location: the opening token of a matched pair.
func (k ErrorKind) hasOpening() bool {
	switch k {
	case ErrorUnexpectedMilestoneClose, ErrorExpectedClose, ErrorExpectedSelfClose:
		return true
	}
	return false
}

// Diagnostic is one recorded structural error. Opening is valid only for
// matched-pair kinds; Key only for attribute kinds; Tag only for
// ErrorNoDefaultAttribute.
type Diagnostic struct {
	Token   Token
	Kind    ErrorKind
	Opening Token
	Key     []byte
	Tag     Tag
}

// Message renders the human-readable description, with marker text resolved
// against the source buffer.
func (d Diagnostic) Message(src []byte) string {
	switch d.Kind {
	case ErrorInvalidTag, ErrorInvalidRoot:
		return fmt.Sprintf("%s %q", d.Kind, src[d.Token.Start:d.Token.End])
	case ErrorInvalidAttribute:
		return fmt.Sprintf("%s %q", d.Kind, d.Key)
	case ErrorNoDefaultAttribute:
		return fmt.Sprintf("marker \\%s has no default attribute", d.Tag)
	}
	return d.Kind.String()
}

// ParseError is returned by Parser.Next when one construct fails. The
// diagnostic has already been recorded in the parser's error list.
type ParseError struct {
	Diag Diagnostic
}

func (e *ParseError) Error() string {
	return e.Diag.Kind.String()
}

type errorKey struct {
	start int
	end   int
	kind  ErrorKind
}

// ErrorList accumulates diagnostics, collapsing duplicates keyed on the
// token's byte range and the error kind.
type ErrorList struct {
	seen  map[errorKey]bool
	diags []Diagnostic
}

func NewErrorList() *ErrorList {
	return &ErrorList{seen: make(map[errorKey]bool)}
}

func (l *ErrorList) Record(d Diagnostic) {
	key := errorKey{start: d.Token.Start, end: d.Token.End, kind: d.Kind}
	if l.seen[key] {
		return
	}
	l.seen[key] = true
	l.diags = append(l.diags, d)
}

func (l *ErrorList) Len() int {
	return len(l.diags)
}

// All returns the diagnostics ordered by token start offset, for
// deterministic reporting.
func (l *ErrorList) All() []Diagnostic {
	out := make([]Diagnostic, len(l.diags))
	copy(out, l.diags)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Token.Start != out[j].Token.Start {
			return out[i].Token.Start < out[j].Token.Start
		}
		return out[i].Token.End < out[j].Token.End
	})
	return out
}

// Format writes every diagnostic with its source line reproduced and the
// offending byte range underlined. Matched-pair kinds also point at the
// opening marker.
func (l *ErrorList) Format(w io.Writer, src []byte, name string) {
	for _, d := range l.All() {
		writeContext(w, src, name, d.Token, "error: "+d.Message(src))
		if d.Kind.hasOpening() {
			writeContext(w, src, name, d.Opening, "note: opened here")
		}
	}
}

func writeContext(w io.Writer, src []byte, name string, tok Token, msg string) {
	pos := PositionOf(src, tok.Start)
	lineStart := tok.Start
	for lineStart > 0 && src[lineStart-1] != '\n' {
		lineStart--
	}
	lineEnd := tok.Start
	for lineEnd < len(src) && src[lineEnd] != '\n' {
		lineEnd++
	}
	fmt.Fprintf(w, "%s:%d:%d: %s\n", name, pos.Line, pos.Column, msg)
	fmt.Fprintf(w, "  %s\n", src[lineStart:lineEnd])

	width := tok.End - tok.Start
	if tok.Start+width > lineEnd {
		width = lineEnd - tok.Start
	}
	if width < 1 {
		width = 1
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", tok.Start-lineStart), strings.Repeat("^", width))
}
