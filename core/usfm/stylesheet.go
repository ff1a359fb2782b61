package usfm

import (
	_ "embed"
	"os"
	"strings"

	"github.com/FocuswithJustin/ParatextStat/core/errors"
)

//go:embed usfm_default.sty
var defaultStylesheetData string

// TagStyle describes one marker record from a .sty stylesheet.
type TagStyle struct {
	Marker    string
	StyleType string // Paragraph, Character, Note, Milestone
	TextType  string // Other, ChapterNumber, VerseNumber, VerseText, NoteText, ...
	EndMarker string // closing form, if the style is paired ("wj*")
}

// Kind maps a tag style to the token kind its marker produces.
func (t *TagStyle) Kind() TokenKind {
	if t.Marker == "id" {
		return KindBook
	}
	switch t.TextType {
	case "ChapterNumber":
		return KindChapter
	case "VerseNumber":
		return KindVerse
	}
	switch t.StyleType {
	case "Note":
		return KindNote
	case "Character":
		return KindCharacter
	case "Milestone":
		return KindMilestone
	case "Paragraph":
		return KindParagraph
	}
	return KindUnknown
}

// Stylesheet is a marker vocabulary loaded from .sty records.
type Stylesheet struct {
	tags map[string]*TagStyle
}

// DefaultStylesheet returns the embedded default marker vocabulary,
// covering the standard USFM marker set.
func DefaultStylesheet() *Stylesheet {
	sheet, err := ParseStylesheet(defaultStylesheetData)
	if err != nil {
		// The embedded sheet is fixed at build time; a parse failure here
		// is a programming error.
		panic(err)
	}
	return sheet
}

// LoadStylesheet reads and parses a .sty file from disk.
func LoadStylesheet(path string) (*Stylesheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.StylesheetError{Path: path, Err: err}
	}
	sheet, err := ParseStylesheet(string(data))
	if err != nil {
		return nil, &errors.StylesheetError{Path: path, Err: err}
	}
	return sheet, nil
}

// ParseStylesheet parses .sty content. Records begin at \Marker lines;
// properties that the tokenizer does not consult are skipped.
func ParseStylesheet(content string) (*Stylesheet, error) {
	sheet := &Stylesheet{tags: make(map[string]*TagStyle)}
	var current *TagStyle

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.HasPrefix(line, "\\") {
			continue
		}
		fields := strings.Fields(line)
		key := strings.ToLower(strings.TrimPrefix(fields[0], "\\"))
		value := ""
		if len(fields) > 1 {
			value = fields[1]
		}

		switch key {
		case "marker":
			if value == "" {
				return nil, errors.NewParse("stylesheet", "", "\\Marker record without a tag name")
			}
			current = &TagStyle{Marker: strings.ToLower(value)}
			sheet.tags[current.Marker] = current
		case "styletype":
			if current != nil {
				current.StyleType = value
			}
		case "texttype":
			if current != nil {
				current.TextType = value
			}
		case "endmarker":
			if current != nil {
				current.EndMarker = strings.ToLower(value)
			}
		}
	}

	if len(sheet.tags) == 0 {
		return nil, errors.NewParse("stylesheet", "", "no \\Marker records found")
	}
	return sheet, nil
}

// Tag returns the style record for a marker (lowercase, without leading
// backslash), or nil when the marker is not in the vocabulary.
func (s *Stylesheet) Tag(marker string) *TagStyle {
	return s.tags[strings.ToLower(marker)]
}

// Len returns the number of marker records in the vocabulary.
func (s *Stylesheet) Len() int { return len(s.tags) }
