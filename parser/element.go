package parser

import (
	"strconv"
	"strings"
)

// Attribute is one key="value" pair. Both slices alias the source buffer;
// the value has its surrounding quotes stripped.
type Attribute struct {
	Key   []byte
	Value []byte
}

// Element is one node of the document tree: either a tagged node with
// attributes and children, or a text leaf (Kind TagText) holding a view into
// the source buffer. A parent exclusively owns its children; the tree has no
// back references and no sharing.
type Element struct {
	Tag        Tag
	Text       []byte
	Attributes []Attribute
	Children   []*Element
}

func newElement(tag Tag) *Element {
	return &Element{Tag: tag}
}

func textElement(text []byte) *Element {
	return &Element{Tag: Tag{Kind: TagText}, Text: text}
}

func (e *Element) IsText() bool {
	return e.Tag.Kind == TagText
}

func (e *Element) AddChild(child *Element) {
	if child != nil {
		e.Children = append(e.Children, child)
	}
}

// FirstChildOfKind returns the first direct child with the given kind.
func (e *Element) FirstChildOfKind(kind TagKind) *Element {
	for _, child := range e.Children {
		if child.Tag.Kind == kind {
			return child
		}
	}
	return nil
}

// Attribute returns the value for key, if present.
func (e *Element) Attribute(key string) ([]byte, bool) {
	for _, a := range e.Attributes {
		if string(a.Key) == key {
			return a.Value, true
		}
	}
	return nil, false
}

func (e *Element) String() string {
	var b strings.Builder
	e.writeIndent(&b, 0)
	return b.String()
}

func (e *Element) writeIndent(b *strings.Builder, indent int) {
	for i := 0; i < indent; i++ {
		b.WriteString("  ")
	}
	if e.IsText() {
		b.WriteString("text ")
		b.WriteString(strconv.Quote(string(e.Text)))
		b.WriteByte('\n')
		return
	}
	b.WriteString(e.Tag.String())
	for _, a := range e.Attributes {
		b.WriteByte(' ')
		b.Write(a.Key)
		b.WriteByte('=')
		b.WriteString(strconv.Quote(string(a.Value)))
	}
	b.WriteByte('\n')
	for _, child := range e.Children {
		child.writeIndent(b, indent+1)
	}
}

// Document holds a whole parsed tree under a synthetic root element, for
// callers that want the fixture rather than the streaming iterator.
type Document struct {
	Root *Element
}
