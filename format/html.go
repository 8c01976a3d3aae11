package format

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dhamidi/usfm/parser"
)

// HTMLEncoder renders a document as an HTML fragment. Paragraph markers become
// <p> blocks, verse numbers <sup>, and inline or character markers spans
// classed by marker name. Footnote bodies and the chapter marker produce no
// output; milestones render their contents without a wrapper.
type HTMLEncoder struct {
	w io.Writer
}

func NewHTMLEncoder(w io.Writer) *HTMLEncoder {
	return &HTMLEncoder{w: w}
}

func (e *HTMLEncoder) Encode(doc *parser.Document) error {
	text, err := e.MarshalText(doc)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *HTMLEncoder) MarshalText(doc *parser.Document) ([]byte, error) {
	var buf bytes.Buffer
	renderChildren(&buf, doc.Root)
	return buf.Bytes(), nil
}

// RenderElements renders a run of top-level elements, as produced by
// SplitChapters.
func RenderElements(w io.Writer, elements []*parser.Element) error {
	var buf bytes.Buffer
	for _, el := range elements {
		renderElement(&buf, el)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func renderChildren(buf *bytes.Buffer, el *parser.Element) {
	for _, child := range el.Children {
		renderElement(buf, child)
	}
}

func renderElement(buf *bytes.Buffer, el *parser.Element) {
	if el.IsText() {
		writeText(buf, el.Text)
		return
	}
	tag := el.Tag
	switch {
	case tag.Kind == parser.TagF || tag.Kind == parser.TagFe || tag.Kind == parser.TagC:
		// suppressed: footnotes belong in an apparatus, the chapter
		// marker only delimits output files
	case tag.Kind == parser.TagV:
		buf.WriteString("<sup>")
		renderChildren(buf, el)
		buf.WriteString("</sup>")
	case tag.IsMilestoneStart() || tag.IsMilestoneEnd():
		renderChildren(buf, el)
	case tag.IsParagraph():
		if tag.Kind == parser.TagP {
			buf.WriteString("<p>")
		} else {
			fmt.Fprintf(buf, "<p class=%q>", tag.DisplayName())
		}
		renderChildren(buf, el)
		buf.WriteString("</p>\n")
	default:
		fmt.Fprintf(buf, "<span class=%q>", tag.DisplayName())
		renderChildren(buf, el)
		buf.WriteString("</span>")
	}
}

// writeText escapes text content and collapses whitespace runs to one space.
func writeText(buf *bytes.Buffer, text []byte) {
	pending := false
	for _, c := range text {
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			pending = true
			continue
		}
		if pending {
			buf.WriteByte(' ')
			pending = false
		}
		switch c {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteByte(c)
		}
	}
	if pending {
		buf.WriteByte(' ')
	}
}
