package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/usfm/parser"
)

// JSONEncoder writes the element tree as indented JSON. The shape is defined
// by the parser package's MarshalJSON implementations.
type JSONEncoder struct {
	w io.Writer
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(doc *parser.Document) error {
	text, err := e.MarshalText(doc)
	if err != nil {
		return err
	}
	if _, err := e.w.Write(text); err != nil {
		return err
	}
	_, err = io.WriteString(e.w, "\n")
	return err
}

func (e *JSONEncoder) MarshalText(doc *parser.Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}
