// Package format renders parsed USFM documents into output formats.
package format

import (
	"github.com/dhamidi/usfm/parser"
)

type Encoder interface {
	Encode(doc *parser.Document) error
	MarshalText(doc *parser.Document) ([]byte, error)
}
