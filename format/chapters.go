package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dhamidi/usfm/parser"
)

// Chapter is a run of top-level elements belonging to one chapter. The run
// starts at a \c marker, which is included. Elements before the first \c
// (book identification, titles, introductions) form a front matter chapter
// with Number 0.
type Chapter struct {
	Number   int
	Label    string
	Elements []*parser.Element
}

// Filename returns the zero-padded output name for a chapter file.
func (c Chapter) Filename() string {
	return fmt.Sprintf("%03d.html", c.Number)
}

// SplitChapters cuts a document into chapter runs at top-level \c markers.
// Non-numeric chapter labels get sequential numbers continuing from the last
// numeric one.
func SplitChapters(doc *parser.Document) []Chapter {
	var chapters []Chapter
	current := Chapter{}
	last := 0

	flush := func() {
		if len(current.Elements) > 0 {
			chapters = append(chapters, current)
		}
	}

	for _, el := range doc.Root.Children {
		if !el.IsText() && el.Tag.Kind == parser.TagC {
			flush()
			label := chapterLabel(el)
			number, err := strconv.Atoi(label)
			if err != nil {
				number = last + 1
			}
			last = number
			current = Chapter{
				Number:   number,
				Label:    label,
				Elements: []*parser.Element{el},
			}
			continue
		}
		current.Elements = append(current.Elements, el)
	}
	flush()
	return chapters
}

func chapterLabel(el *parser.Element) string {
	if text := el.FirstChildOfKind(parser.TagText); text != nil {
		return strings.TrimSpace(string(text.Text))
	}
	return ""
}
