package parser

import (
	"errors"
	"strconv"
)

// TagKind identifies one USFM 3.0 marker. The set is closed: classification
// either resolves marker text to exactly one kind or fails.
type TagKind int

const (
	TagInvalid TagKind = iota

	// Synthetic kinds. TagRoot holds a whole document, TagText marks
	// text leaves in the element tree. Neither is a real marker.
	TagRoot
	TagText

	// Identification
	TagId
	TagUsfm
	TagIde
	TagSts
	TagRem
	TagH
	TagToc
	TagToca

	// Introductions
	TagImt
	TagIs
	TagIp
	TagIpi
	TagIm
	TagImi
	TagIpq
	TagImq
	TagIpr
	TagIq
	TagIb
	TagIli
	TagIot
	TagIo
	TagIor
	TagIqt
	TagIex
	TagImte
	TagIe

	// Titles, headings, labels
	TagMt
	TagMte
	TagMs
	TagMr
	TagS
	TagSr
	TagR
	TagRq
	TagD
	TagSp
	TagSd

	// Chapters and verses
	TagC
	TagCa
	TagCl
	TagCp
	TagCd
	TagV
	TagVa
	TagVp

	// Paragraphs
	TagP
	TagM
	TagPo
	TagPr
	TagCls
	TagPmo
	TagPm
	TagPmc
	TagPmr
	TagPi
	TagMi
	TagNb
	TagPc
	TagPh
	TagB

	// Poetry
	TagQ
	TagQr
	TagQc
	TagQs
	TagQa
	TagQac
	TagQm
	TagQd

	// Lists
	TagLh
	TagLi
	TagLf
	TagLim
	TagLitl
	TagLik
	TagLiv

	// Tables
	TagTr
	TagTh
	TagThr
	TagTc
	TagTcr

	// Footnotes
	TagF
	TagFe
	TagFr
	TagFq
	TagFqa
	TagFk
	TagFl
	TagFw
	TagFp
	TagFv
	TagFt
	TagFdc
	TagFm

	// Cross references
	TagX
	TagXo
	TagXk
	TagXq
	TagXt
	TagXta
	TagXop
	TagXot
	TagXnt
	TagXdc

	// Words and special text
	TagAdd
	TagBk
	TagDc
	TagK
	TagLit
	TagNd
	TagOrd
	TagPn
	TagPng
	TagAddpn
	TagQt
	TagSig
	TagSls
	TagTl
	TagWj

	// Character styling
	TagEm
	TagBd
	TagIt
	TagBdit
	TagNo
	TagSc
	TagSup

	// Features
	TagNdx
	TagPro
	TagW
	TagWg
	TagWh
	TagWa
	TagJmp
	TagRb

	// Milestones
	TagQtS
	TagQtE
	TagTsS
	TagTsE
	TagZS
	TagZE

	// Miscellaneous
	TagPb
	TagFig
	TagPeriph
)

var tagNames = map[TagKind]string{
	TagRoot: "root",
	TagText: "text",

	TagId:   "id",
	TagUsfm: "usfm",
	TagIde:  "ide",
	TagSts:  "sts",
	TagRem:  "rem",
	TagH:    "h",
	TagToc:  "toc",
	TagToca: "toca",

	TagImt:  "imt",
	TagIs:   "is",
	TagIp:   "ip",
	TagIpi:  "ipi",
	TagIm:   "im",
	TagImi:  "imi",
	TagIpq:  "ipq",
	TagImq:  "imq",
	TagIpr:  "ipr",
	TagIq:   "iq",
	TagIb:   "ib",
	TagIli:  "ili",
	TagIot:  "iot",
	TagIo:   "io",
	TagIor:  "ior",
	TagIqt:  "iqt",
	TagIex:  "iex",
	TagImte: "imte",
	TagIe:   "ie",

	TagMt:  "mt",
	TagMte: "mte",
	TagMs:  "ms",
	TagMr:  "mr",
	TagS:   "s",
	TagSr:  "sr",
	TagR:   "r",
	TagRq:  "rq",
	TagD:   "d",
	TagSp:  "sp",
	TagSd:  "sd",

	TagC:  "c",
	TagCa: "ca",
	TagCl: "cl",
	TagCp: "cp",
	TagCd: "cd",
	TagV:  "v",
	TagVa: "va",
	TagVp: "vp",

	TagP:   "p",
	TagM:   "m",
	TagPo:  "po",
	TagPr:  "pr",
	TagCls: "cls",
	TagPmo: "pmo",
	TagPm:  "pm",
	TagPmc: "pmc",
	TagPmr: "pmr",
	TagPi:  "pi",
	TagMi:  "mi",
	TagNb:  "nb",
	TagPc:  "pc",
	TagPh:  "ph",
	TagB:   "b",

	TagQ:   "q",
	TagQr:  "qr",
	TagQc:  "qc",
	TagQs:  "qs",
	TagQa:  "qa",
	TagQac: "qac",
	TagQm:  "qm",
	TagQd:  "qd",

	TagLh:   "lh",
	TagLi:   "li",
	TagLf:   "lf",
	TagLim:  "lim",
	TagLitl: "litl",
	TagLik:  "lik",
	TagLiv:  "liv",

	TagTr:  "tr",
	TagTh:  "th",
	TagThr: "thr",
	TagTc:  "tc",
	TagTcr: "tcr",

	TagF:   "f",
	TagFe:  "fe",
	TagFr:  "fr",
	TagFq:  "fq",
	TagFqa: "fqa",
	TagFk:  "fk",
	TagFl:  "fl",
	TagFw:  "fw",
	TagFp:  "fp",
	TagFv:  "fv",
	TagFt:  "ft",
	TagFdc: "fdc",
	TagFm:  "fm",

	TagX:   "x",
	TagXo:  "xo",
	TagXk:  "xk",
	TagXq:  "xq",
	TagXt:  "xt",
	TagXta: "xta",
	TagXop: "xop",
	TagXot: "xot",
	TagXnt: "xnt",
	TagXdc: "xdc",

	TagAdd:   "add",
	TagBk:    "bk",
	TagDc:    "dc",
	TagK:     "k",
	TagLit:   "lit",
	TagNd:    "nd",
	TagOrd:   "ord",
	TagPn:    "pn",
	TagPng:   "png",
	TagAddpn: "addpn",
	TagQt:    "qt",
	TagSig:   "sig",
	TagSls:   "sls",
	TagTl:    "tl",
	TagWj:    "wj",

	TagEm:   "em",
	TagBd:   "bd",
	TagIt:   "it",
	TagBdit: "bdit",
	TagNo:   "no",
	TagSc:   "sc",
	TagSup:  "sup",

	TagNdx: "ndx",
	TagPro: "pro",
	TagW:   "w",
	TagWg:  "wg",
	TagWh:  "wh",
	TagWa:  "wa",
	TagJmp: "jmp",
	TagRb:  "rb",

	TagQtS: "qt-s",
	TagQtE: "qt-e",
	TagTsS: "ts-s",
	TagTsE: "ts-e",
	TagZS:  "z-s",
	TagZE:  "z-e",

	TagPb:     "pb",
	TagFig:    "fig",
	TagPeriph: "periph",
}

// markerKinds resolves canonical marker names (without backslash, digits or
// trailing *) back to their kind.
var markerKinds = make(map[string]TagKind, len(tagNames))

func init() {
	for kind, name := range tagNames {
		if kind == TagRoot || kind == TagText {
			continue
		}
		markerKinds[name] = kind
	}
}

func (k TagKind) String() string {
	if name, ok := tagNames[k]; ok {
		return name
	}
	return "invalid"
}

// leveledKinds carry a numeric level suffix (\mt2, \toc3, \qt2-s). A marker
// without digits parses as level 0; renderers treat 0 and 1 alike.
var leveledKinds = map[TagKind]bool{
	TagH:    true,
	TagToc:  true,
	TagToca: true,
	TagImt:  true,
	TagImte: true,
	TagIs:   true,
	TagIq:   true,
	TagIli:  true,
	TagIo:   true,
	TagMt:   true,
	TagMte:  true,
	TagMs:   true,
	TagS:    true,
	TagSd:   true,
	TagPi:   true,
	TagPh:   true,
	TagQ:    true,
	TagQm:   true,
	TagLi:   true,
	TagLim:  true,
	TagTh:   true,
	TagThr:  true,
	TagTc:   true,
	TagTcr:  true,
	TagQtS:  true,
	TagQtE:  true,
}

// Tag is one classified marker. Level is meaningful only for leveled kinds.
type Tag struct {
	Kind  TagKind
	Level int
}

func (t Tag) String() string {
	if t.Level > 0 && leveledKinds[t.Kind] {
		name := t.Kind.String()
		if i := len(name); i >= 2 && name[i-2] == '-' {
			// milestone names keep the level before the dash: qt2-s
			return name[:i-2] + strconv.Itoa(t.Level) + name[i-2:]
		}
		return name + strconv.Itoa(t.Level)
	}
	return t.Kind.String()
}

// DisplayName is the presentation form of the tag. Leveled kinds with an
// unspecified level display as level 1.
func (t Tag) DisplayName() string {
	if t.Level == 0 && leveledKinds[t.Kind] {
		return Tag{Kind: t.Kind, Level: 1}.String()
	}
	return t.String()
}

// Classification errors. ParseTag fails closed: malformed marker text never
// resolves to a guessed kind.
var (
	ErrMissingTagPrefix = errors.New("marker does not start with a backslash")
	ErrInvalidTag       = errors.New("unknown marker")
	ErrInvalidSuffix    = errors.New("invalid marker suffix")
	ErrTagTooLong       = errors.New("marker too long")
)

// maxMarkerLength bounds the marker body (without the backslash). The longest
// canonical marker is 6 bytes; user milestones (zaln-s and friends) get room.
const maxMarkerLength = 16

// ParseTag classifies raw marker text into a Tag. The text includes the
// leading backslash and, for end-marker forms, the trailing asterisk.
func ParseTag(marker []byte) (Tag, error) {
	if len(marker) == 0 || marker[0] != '\\' {
		return Tag{}, ErrMissingTagPrefix
	}
	body := marker[1:]
	if n := len(body); n > 0 && body[n-1] == '*' {
		body = body[:n-1]
	}
	if len(body) == 0 {
		return Tag{}, ErrInvalidTag
	}
	if len(body) > maxMarkerLength {
		return Tag{}, ErrTagTooLong
	}

	digit := -1
	hyphen := -1
	for i := 0; i < len(body); i++ {
		c := body[i]
		if digit < 0 && c >= '0' && c <= '9' {
			digit = i
		}
		if hyphen < 0 && c == '-' {
			hyphen = i
		}
	}

	if hyphen >= 0 {
		return parseMilestoneMarker(body, digit, hyphen)
	}

	prefix := body
	if digit >= 0 {
		prefix = body[:digit]
	}
	kind, ok := markerKinds[string(prefix)]
	if !ok {
		return Tag{}, ErrInvalidTag
	}
	if digit < 0 {
		return Tag{Kind: kind}, nil
	}
	if !leveledKinds[kind] {
		return Tag{}, ErrInvalidSuffix
	}
	level, err := parseLevel(body[digit:])
	if err != nil {
		return Tag{}, err
	}
	return Tag{Kind: kind, Level: level}, nil
}

// parseMilestoneMarker handles hyphenated forms (\qt2-s, \ts-e, \zaln-s).
// Any marker starting with z and ending in s/e collapses to the generic user
// milestone kind, whatever its full name.
func parseMilestoneMarker(body []byte, digit, hyphen int) (Tag, error) {
	if body[0] == 'z' {
		switch body[len(body)-1] {
		case 's':
			return Tag{Kind: TagZS}, nil
		case 'e':
			return Tag{Kind: TagZE}, nil
		}
		return Tag{}, ErrInvalidSuffix
	}

	end := hyphen
	if digit >= 0 && digit < end {
		end = digit
	}
	key := string(body[:end]) + "-" + string(body[len(body)-1])
	kind, ok := markerKinds[key]
	if !ok {
		return Tag{}, ErrInvalidTag
	}
	level := 0
	if digit >= 0 && digit < hyphen {
		var err error
		level, err = parseLevel(body[digit:hyphen])
		if err != nil {
			return Tag{}, err
		}
	}
	if !leveledKinds[kind] {
		level = 0
	}
	return Tag{Kind: kind, Level: level}, nil
}

func parseLevel(digits []byte) (int, error) {
	level := 0
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, ErrInvalidSuffix
		}
		level = level*10 + int(c-'0')
		if level > 255 {
			return 0, ErrInvalidSuffix
		}
	}
	return level, nil
}
