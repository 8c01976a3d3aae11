package format

import (
	"bytes"
	"testing"

	"github.com/dhamidi/usfm/parser"
)

func renderHTML(t *testing.T, input string) string {
	t.Helper()
	p := parser.NewParser([]byte(input))
	doc := p.Document()

	var buf bytes.Buffer
	enc := NewHTMLEncoder(&buf)
	if err := enc.Encode(doc); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return buf.String()
}

func TestHTMLEncoder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain paragraph",
			input:    "\\p hello world",
			expected: "<p>hello world</p>\n",
		},
		{
			name:     "leading whitespace collapses",
			input:    "\\p  \n  asdf",
			expected: "<p> asdf</p>\n",
		},
		{
			name:     "verse number",
			input:    "\\p\n\\v 1 In the beginning",
			expected: "<p><sup>1</sup>In the beginning</p>\n",
		},
		{
			name:     "chapter marker suppressed",
			input:    "\\c 1\n\\p\n\\v 1 verse",
			expected: "<p><sup>1</sup>verse</p>\n",
		},
		{
			name:     "footnote suppressed",
			input:    "\\p before\\f + \\ft note text\\f* after",
			expected: "<p>before after</p>\n",
		},
		{
			name:     "milestones are transparent",
			input:    "\\p\\zaln-s\\*\\w In \\w*side\\zaln-e\\*",
			expected: "<p><span class=\"w\">In </span>side</p>\n",
		},
		{
			name:     "inline tag becomes classed span",
			input:    "\\q \\qs hello |   x-occurences  =   \"1\" \\qs*",
			expected: "<p class=\"q1\"><span class=\"qs\">hello </span></p>\n",
		},
		{
			name:     "leveled paragraph class",
			input:    "\\mt2 THE BOOK",
			expected: "<p class=\"mt2\">THE BOOK</p>\n",
		},
		{
			name:     "level defaults to one in display",
			input:    "\\q roses are red",
			expected: "<p class=\"q1\">roses are red</p>\n",
		},
		{
			name:     "character tag at top of paragraph",
			input:    "\\p normal \\nd Lord\\nd* text",
			expected: "<p>normal <span class=\"nd\">Lord</span> text</p>\n",
		},
		{
			name:     "markup characters escaped",
			input:    "\\p 1 < 2 & 3 > 2",
			expected: "<p>1 &lt; 2 &amp; 3 &gt; 2</p>\n",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderHTML(t, tt.input)
			if got != tt.expected {
				t.Errorf("rendered HTML mismatch\n got: %q\nwant: %q", got, tt.expected)
			}
		})
	}
}

func TestRenderElements(t *testing.T) {
	p := parser.NewParser([]byte("\\c 1\n\\p\n\\v 1 verse one\n\\c 2\n\\p\n\\v 1 verse two"))
	doc := p.Document()
	chapters := SplitChapters(doc)
	if len(chapters) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(chapters))
	}

	var buf bytes.Buffer
	if err := RenderElements(&buf, chapters[1].Elements); err != nil {
		t.Fatalf("RenderElements: %v", err)
	}
	expected := "<p><sup>1</sup>verse two</p>\n"
	if got := buf.String(); got != expected {
		t.Errorf("chapter 2 HTML mismatch\n got: %q\nwant: %q", got, expected)
	}
}
