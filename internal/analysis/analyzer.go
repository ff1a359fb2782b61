package analysis

import (
	"strings"

	"github.com/FocuswithJustin/ParatextStat/core/canon"
	"github.com/FocuswithJustin/ParatextStat/core/textstat"
	"github.com/FocuswithJustin/ParatextStat/core/usfm"
)

// fileState tracks the analyzer position within one file's token stream.
// Marker counts require a resolved book; word and punctuation extraction
// additionally require being inside verse text, which starts at a \v
// marker and ends at the next book, chapter, or note token.
type fileState struct {
	acc    *Accumulators
	filter canon.BookSet

	book    canon.BookID // "" while no canonical, admitted book is open
	inVerse bool
	word    []rune
}

// AnalyzeTokens folds one file's token stream into acc. The filter
// restricts which books contribute; nil admits all canonical books.
func AnalyzeTokens(tokens []usfm.Token, acc *Accumulators, filter canon.BookSet) {
	st := &fileState{acc: acc, filter: filter}
	for _, tok := range tokens {
		st.feed(tok)
	}
}

func (st *fileState) feed(tok usfm.Token) {
	switch tok.Kind {
	case usfm.KindBook:
		st.inVerse = false
		switch res := canon.Resolve(tok.Data, tok.Text, st.filter); res.State {
		case canon.ResolvedOK:
			st.book = res.Book
		case canon.ResolvedNone:
			// No candidate at all: the previous book context persists
			// and the marker is still counted under it.
		default:
			st.book = ""
			return
		}
	case usfm.KindChapter, usfm.KindNote:
		st.inVerse = false
	case usfm.KindVerse:
		st.inVerse = true
	case usfm.KindText:
		st.text(tok.Text)
		return
	case usfm.KindEnd:
		return
	}

	st.countMarker(tok)
}

// countMarker tallies the token's marker under the current book. Tokens
// seen before a book is resolved are not counted.
func (st *fileState) countMarker(tok usfm.Token) {
	if st.book == "" {
		return
	}
	name := strings.ToLower(tok.Marker)
	if name == "" && tok.Kind != usfm.KindBook {
		name = strings.ToLower(strings.TrimSpace(tok.Text))
	}
	if name == "" {
		return
	}
	st.acc.AddMarker(st.book, `\`+name)
}

// text extracts words and punctuation from a verse-text segment. Words
// feed the project-wide bag; punctuation is tallied per book.
func (st *fileState) text(text string) {
	if !st.inVerse {
		return
	}
	st.acc.Sample.Append(text)

	for _, r := range text {
		switch {
		case textstat.IsWordChar(r):
			st.word = append(st.word, r)
		default:
			st.flushWord()
			if st.book != "" && textstat.IsPunctChar(r) {
				st.acc.AddPunct(st.book, r)
			}
		}
	}
	st.flushWord()
}

func (st *fileState) flushWord() {
	if len(st.word) == 0 {
		return
	}
	st.acc.AddWord(strings.ToLower(string(st.word)))
	st.word = st.word[:0]
}
