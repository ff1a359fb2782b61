package usfm

import (
	"regexp"
	"strings"
)

// markerRe matches a backslash marker: a tag name (optionally a paired
// closer with trailing *) or the bare milestone terminator "\*".
var markerRe = regexp.MustCompile(`\\([A-Za-z0-9-]+\*?|\*)`)

// Tokenizer converts raw USFM content into a flat token stream using a
// stylesheet as the marker vocabulary.
type Tokenizer struct {
	sheet *Stylesheet
}

// NewTokenizer creates a tokenizer over the given stylesheet. A nil
// stylesheet selects the embedded default.
func NewTokenizer(sheet *Stylesheet) *Tokenizer {
	if sheet == nil {
		sheet = DefaultStylesheet()
	}
	return &Tokenizer{sheet: sheet}
}

// segState says how the text segment following a marker is interpreted.
type segState int

const (
	segPlain     segState = iota // ordinary document text
	segAfterOpen                 // text after an opening marker: one delimiter space is syntax
	segData                      // first field is the marker's data payload
)

// Tokenize performs a single pass over content and returns the token
// stream. Tokenization never fails: unrecognized markers yield
// KindUnknown tokens and malformed text is passed through as text.
func (t *Tokenizer) Tokenize(content string) []Token {
	content = strings.TrimPrefix(content, "\uFEFF")

	var tokens []Token
	state := segPlain

	pos := 0
	for _, m := range markerRe.FindAllStringSubmatchIndex(content, -1) {
		tokens = t.emitSegment(tokens, state, content[pos:m[0]])
		pos = m[1]

		name := strings.ToLower(content[m[2]:m[3]])
		if strings.HasSuffix(name, "*") {
			// End markers do not own a delimiter: following space is text.
			tokens = append(tokens, Token{Kind: KindEnd, Marker: name})
			state = segPlain
			continue
		}

		kind := KindUnknown
		if tag := t.sheet.Tag(name); tag != nil {
			kind = tag.Kind()
		}
		tokens = append(tokens, Token{Kind: kind, Marker: name})
		switch kind {
		case KindBook, KindChapter, KindVerse, KindNote, KindMilestone:
			state = segData
		default:
			state = segAfterOpen
		}
	}
	return t.emitSegment(tokens, state, content[pos:])
}

// emitSegment routes the text between two markers according to the state
// left by the preceding marker. In segData state the segment's first
// field is consumed into that marker token (book code, chapter/verse
// number, note caller, milestone attributes); any remainder becomes a
// text token.
func (t *Tokenizer) emitSegment(tokens []Token, state segState, segment string) []Token {
	switch state {
	case segData:
		owner := &tokens[len(tokens)-1]
		trimmed := strings.TrimLeft(segment, " \t\r\n")

		if owner.Kind == KindMilestone && strings.HasPrefix(trimmed, "|") {
			// Milestone attribute payload ("|who=...") is data, not text.
			owner.Data = strings.TrimSpace(trimmed)
			return tokens
		}

		data, rest := splitFirstField(trimmed)
		owner.Data = data
		if owner.Kind == KindBook {
			// The \id line remainder is a description, kept on the token
			// itself rather than emitted as document text.
			owner.Text = strings.TrimSpace(rest)
			return tokens
		}
		segment = rest

	case segAfterOpen:
		// The single whitespace character after an opening marker is
		// marker syntax, not document text.
		if len(segment) > 0 {
			switch segment[0] {
			case ' ', '\t':
				segment = segment[1:]
			case '\r':
				segment = strings.TrimPrefix(segment[1:], "\n")
			case '\n':
				segment = segment[1:]
			}
		}
	}

	if strings.TrimSpace(segment) == "" {
		return tokens
	}
	return append(tokens, Token{Kind: KindText, Text: strings.TrimRight(segment, " \t\r\n")})
}

// splitFirstField splits s into its first whitespace-delimited field and
// the remainder following the delimiter.
func splitFirstField(s string) (field, rest string) {
	if i := strings.IndexAny(s, " \t\r\n"); i >= 0 {
		return s[:i], strings.TrimLeft(s[i:], " \t\r\n")
	}
	return s, ""
}
