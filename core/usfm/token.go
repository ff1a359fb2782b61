// Package usfm provides a stylesheet-driven tokenizer for USFM/SFM
// scripture documents, producing a flat stream of typed structural tokens.
package usfm

// TokenKind identifies the structural class of a token. The set is closed:
// markers missing from the stylesheet tokenize as KindUnknown rather than
// producing errors.
type TokenKind int

const (
	// KindBook is a book identification marker (\id).
	KindBook TokenKind = iota
	// KindChapter is a chapter marker (\c).
	KindChapter
	// KindVerse is a verse marker (\v).
	KindVerse
	// KindNote opens a footnote or cross reference (\f, \x, \fe).
	KindNote
	// KindParagraph is a paragraph-level marker (\p, \q1, \s, ...).
	KindParagraph
	// KindCharacter opens an inline character style (\wj, \nd, \ft, ...).
	KindCharacter
	// KindMilestone is a standalone milestone marker (\ts-s, \qt-s, ...).
	KindMilestone
	// KindText is a run of document text between markers.
	KindText
	// KindEnd closes a character style or note (\wj*, \f*).
	KindEnd
	// KindUnknown is a marker absent from the stylesheet.
	KindUnknown
)

var kindNames = map[TokenKind]string{
	KindBook:      "book",
	KindChapter:   "chapter",
	KindVerse:     "verse",
	KindNote:      "note",
	KindParagraph: "paragraph",
	KindCharacter: "character",
	KindMilestone: "milestone",
	KindText:      "text",
	KindEnd:       "end",
	KindUnknown:   "unknown",
}

func (k TokenKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "invalid"
}

// Token is a single structural unit of a tokenized USFM document. Kind is
// always set; the remaining fields are populated where the kind calls for
// them and are otherwise empty.
type Token struct {
	Kind   TokenKind
	Marker string // tag name without the leading backslash ("p", "v", "wj")
	Text   string // text payload (document text, or a marker's trailing value)
	Data   string // auxiliary identifier: book code, chapter/verse number, note caller
}
