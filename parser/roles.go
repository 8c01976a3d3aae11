package parser

// paragraphKinds open a new block: headers, titles, prose and poetry
// paragraphs, list and table rows, plus the chapter marker. Chapter is listed
// here although its body is only the extracted number.
var paragraphKinds = map[TagKind]bool{
	TagId: true, TagUsfm: true, TagIde: true, TagSts: true, TagRem: true,
	TagH: true, TagToc: true, TagToca: true,

	TagImt: true, TagIs: true, TagIp: true, TagIpi: true, TagIm: true,
	TagImi: true, TagIpq: true, TagImq: true, TagIpr: true, TagIq: true,
	TagIb: true, TagIli: true, TagIot: true, TagIo: true, TagIex: true,
	TagImte: true, TagIe: true,

	TagMt: true, TagMte: true, TagMs: true, TagMr: true, TagS: true,
	TagSr: true, TagR: true, TagD: true, TagSp: true, TagSd: true,

	TagC: true, TagCl: true, TagCp: true, TagCd: true,

	TagP: true, TagM: true, TagPo: true, TagPr: true, TagCls: true,
	TagPmo: true, TagPm: true, TagPmc: true, TagPmr: true, TagPi: true,
	TagMi: true, TagNb: true, TagPc: true, TagPh: true, TagB: true,

	TagQ: true, TagQr: true, TagQc: true, TagQa: true, TagQm: true,
	TagQd: true,

	TagLh: true, TagLi: true, TagLf: true, TagLim: true,

	TagTr: true,

	TagLit: true, TagPb: true, TagPeriph: true,
}

// inlineKinds require an explicit named close marker (\w ...\w*). Everything
// not in a role set here is a character-style marker by elimination.
var inlineKinds = map[TagKind]bool{
	TagF: true, TagFe: true, TagX: true, TagFig: true,

	TagW: true, TagWg: true, TagWh: true, TagWa: true,
	TagRb: true, TagXt: true, TagJmp: true,

	TagQt: true, TagQs: true, TagQac: true, TagRq: true,
	TagIqt: true, TagIor: true,

	TagLitl: true, TagLik: true, TagLiv: true,

	TagCa: true, TagVa: true, TagVp: true,

	TagAdd: true, TagAddpn: true, TagBk: true, TagDc: true, TagK: true,
	TagNd: true, TagOrd: true, TagPn: true, TagPng: true, TagSig: true,
	TagSls: true, TagTl: true, TagWj: true,

	TagEm: true, TagBd: true, TagIt: true, TagBdit: true, TagNo: true,
	TagSc: true, TagSup: true,

	TagNdx: true, TagPro: true,
}

func (t Tag) IsParagraph() bool {
	return paragraphKinds[t.Kind]
}

func (t Tag) IsInline() bool {
	return inlineKinds[t.Kind]
}

func (t Tag) IsMilestoneStart() bool {
	switch t.Kind {
	case TagQtS, TagTsS, TagZS:
		return true
	}
	return false
}

func (t Tag) IsMilestoneEnd() bool {
	switch t.Kind {
	case TagQtE, TagTsE, TagZE:
		return true
	}
	return false
}

// HasMilestoneEnd reports whether a milestone start is bracketed by a
// matching end marker rather than standing alone.
func (t Tag) HasMilestoneEnd() bool {
	return t.IsMilestoneStart()
}

// MilestoneEnd returns the end counterpart of a milestone start kind.
func (t Tag) MilestoneEnd() TagKind {
	switch t.Kind {
	case TagQtS:
		return TagQtE
	case TagTsS:
		return TagTsE
	case TagZS:
		return TagZE
	}
	return TagInvalid
}

// IsCharacter reports the catch-all role: any marker that is neither a
// milestone nor a paragraph opener. Inline markers also satisfy this; the
// grammar tries the inline production first.
func (t Tag) IsCharacter() bool {
	return !t.IsMilestoneStart() && !t.IsMilestoneEnd() && !t.IsParagraph()
}

// validAttributes lists the closed attribute key set per kind. Keys with an
// x- prefix are always accepted in addition to these.
var validAttributes = map[TagKind][]string{
	TagW:      {"lemma", "strong", "srcloc"},
	TagWg:     {"lemma", "strong", "srcloc"},
	TagWh:     {"lemma", "strong", "srcloc"},
	TagWa:     {"lemma", "strong", "srcloc"},
	TagFig:    {"alt", "src", "size", "loc", "copy", "ref"},
	TagXt:     {"link-href"},
	TagRb:     {"gloss"},
	TagJmp:    {"link-href", "link-title", "link-id"},
	TagK:      {"key"},
	TagPeriph: {"id"},
	TagQtS:    {"sid", "who"},
	TagQtE:    {"eid"},
	TagTsS:    {"sid"},
	TagTsE:    {"eid"},
}

// defaultAttributes names the key a bare positional attribute value binds to.
var defaultAttributes = map[TagKind]string{
	TagW:      "lemma",
	TagWg:     "lemma",
	TagWh:     "lemma",
	TagWa:     "lemma",
	TagXt:     "link-href",
	TagRb:     "gloss",
	TagJmp:    "link-href",
	TagK:      "key",
	TagPeriph: "id",
}

// ValidAttribute reports whether key is legal for this tag. Extension keys
// (x-...) are legal everywhere.
func (t Tag) ValidAttribute(key []byte) bool {
	if len(key) >= 2 && key[0] == 'x' && key[1] == '-' {
		return true
	}
	for _, k := range validAttributes[t.Kind] {
		if k == string(key) {
			return true
		}
	}
	return false
}

// DefaultAttribute returns the key a positional attribute value is assigned
// to, if the tag declares one.
func (t Tag) DefaultAttribute() (string, bool) {
	key, ok := defaultAttributes[t.Kind]
	return key, ok
}
