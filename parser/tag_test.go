package parser

import (
	"errors"
	"testing"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		marker string
		want   Tag
	}{
		{`\p`, Tag{Kind: TagP}},
		{`\id`, Tag{Kind: TagId}},
		{`\v`, Tag{Kind: TagV}},
		{`\c`, Tag{Kind: TagC}},
		{`\mt`, Tag{Kind: TagMt}},
		{`\toc3`, Tag{Kind: TagToc, Level: 3}},
		{`\q2`, Tag{Kind: TagQ, Level: 2}},
		{`\imt1`, Tag{Kind: TagImt, Level: 1}},
		{`\w`, Tag{Kind: TagW}},
		{`\w*`, Tag{Kind: TagW}},
		{`\f*`, Tag{Kind: TagF}},
		{`\qt-s`, Tag{Kind: TagQtS}},
		{`\qt-e`, Tag{Kind: TagQtE}},
		{`\qt4-s`, Tag{Kind: TagQtS, Level: 4}},
		{`\ts-s`, Tag{Kind: TagTsS}},
		{`\ts-e`, Tag{Kind: TagTsE}},
		{`\zaln-s`, Tag{Kind: TagZS}},
		{`\zaln-e`, Tag{Kind: TagZE}},
		{`\zaln-s*`, Tag{Kind: TagZS}},
		{`\z-custom-thing-s`, Tag{Kind: TagZS}},
	}

	for _, tt := range tests {
		t.Run(tt.marker, func(t *testing.T) {
			got, err := ParseTag([]byte(tt.marker))
			if err != nil {
				t.Fatalf("ParseTag(%q): %v", tt.marker, err)
			}
			if got != tt.want {
				t.Errorf("ParseTag(%q) = %v, want %v", tt.marker, got, tt.want)
			}
		})
	}
}

func TestParseTagErrors(t *testing.T) {
	tests := []struct {
		marker  string
		wantErr error
	}{
		{``, ErrMissingTagPrefix},
		{`p`, ErrMissingTagPrefix},
		{`\`, ErrInvalidTag},
		{`\*`, ErrInvalidTag},
		{`\nonsense`, ErrInvalidTag},
		{`\qt-q`, ErrInvalidTag},
		{`\p2`, ErrInvalidSuffix},
		{`\q999`, ErrInvalidSuffix},
		{`\zaln-x`, ErrInvalidSuffix},
		{`\zzzzzzzzzzzzzzzzzzzzzzzz-s`, ErrTagTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.marker, func(t *testing.T) {
			_, err := ParseTag([]byte(tt.marker))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseTag(%q) error = %v, want %v", tt.marker, err, tt.wantErr)
			}
		})
	}
}

func TestTagString(t *testing.T) {
	tests := []struct {
		tag  Tag
		want string
	}{
		{Tag{Kind: TagP}, "p"},
		{Tag{Kind: TagQ}, "q"},
		{Tag{Kind: TagQ, Level: 2}, "q2"},
		{Tag{Kind: TagToc, Level: 3}, "toc3"},
		{Tag{Kind: TagQtS, Level: 4}, "qt4-s"},
		{Tag{Kind: TagQtS}, "qt-s"},
		{Tag{Kind: TagZS}, "z-s"},
		{Tag{Kind: TagText}, "text"},
		{Tag{Kind: TagInvalid}, "invalid"},
	}

	for _, tt := range tests {
		if got := tt.tag.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestTagDisplayName(t *testing.T) {
	tests := []struct {
		tag  Tag
		want string
	}{
		{Tag{Kind: TagP}, "p"},
		{Tag{Kind: TagQ}, "q1"},
		{Tag{Kind: TagQ, Level: 2}, "q2"},
		{Tag{Kind: TagMt}, "mt1"},
		{Tag{Kind: TagW}, "w"},
	}

	for _, tt := range tests {
		if got := tt.tag.DisplayName(); got != tt.want {
			t.Errorf("%#v.DisplayName() = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestTagRoles(t *testing.T) {
	tests := []struct {
		kind      TagKind
		paragraph bool
		inline    bool
		character bool
	}{
		{TagP, true, false, false},
		{TagId, true, false, false},
		{TagC, true, false, false},
		{TagQ, true, false, false},
		{TagTr, true, false, false},
		{TagW, false, true, true},
		{TagF, false, true, true},
		{TagQs, false, true, true},
		{TagV, false, false, true},
		{TagNd, false, true, true},
		{TagFt, false, false, true},
	}

	for _, tt := range tests {
		tag := Tag{Kind: tt.kind}
		if got := tag.IsParagraph(); got != tt.paragraph {
			t.Errorf("%v.IsParagraph() = %v, want %v", tag, got, tt.paragraph)
		}
		if got := tag.IsInline(); got != tt.inline {
			t.Errorf("%v.IsInline() = %v, want %v", tag, got, tt.inline)
		}
		if got := tag.IsCharacter(); got != tt.character {
			t.Errorf("%v.IsCharacter() = %v, want %v", tag, got, tt.character)
		}
	}
}

func TestMilestoneEnds(t *testing.T) {
	pairs := map[TagKind]TagKind{
		TagQtS: TagQtE,
		TagTsS: TagTsE,
		TagZS:  TagZE,
	}
	for start, end := range pairs {
		tag := Tag{Kind: start}
		if !tag.IsMilestoneStart() {
			t.Errorf("%v should be a milestone start", tag)
		}
		if got := tag.MilestoneEnd(); got != end {
			t.Errorf("%v.MilestoneEnd() = %v, want %v", tag, got, end)
		}
		if !(Tag{Kind: end}).IsMilestoneEnd() {
			t.Errorf("%v should be a milestone end", end)
		}
	}
	if (Tag{Kind: TagP}).MilestoneEnd() != TagInvalid {
		t.Error("non-milestone kinds have no end counterpart")
	}
}

func TestAttributeValidation(t *testing.T) {
	w := Tag{Kind: TagW}
	for _, key := range []string{"lemma", "strong", "srcloc", "x-anything"} {
		if !w.ValidAttribute([]byte(key)) {
			t.Errorf("w should accept %q", key)
		}
	}
	if w.ValidAttribute([]byte("gloss")) {
		t.Error("w should reject gloss")
	}

	if key, ok := w.DefaultAttribute(); !ok || key != "lemma" {
		t.Errorf("w default attribute = %q %v, want lemma", key, ok)
	}
	if _, ok := (Tag{Kind: TagFig}).DefaultAttribute(); ok {
		t.Error("fig has no default attribute")
	}

	// extension keys are legal even on tags with no declared attributes
	if !(Tag{Kind: TagP}).ValidAttribute([]byte("x-note")) {
		t.Error("x- keys should be legal on any tag")
	}
}
