// Package versecount derives per-book verse totals from a token stream.
package versecount

import (
	"strconv"
	"strings"

	"github.com/FocuswithJustin/ParatextStat/core/canon"
	"github.com/FocuswithJustin/ParatextStat/core/usfm"
)

type verseRef struct {
	book    canon.BookID
	chapter int
	verse   int
}

// Counter accumulates distinct verse references across token streams.
type Counter struct {
	seen   map[verseRef]struct{}
	filter canon.BookSet
}

// NewCounter returns a Counter that only counts verses in books the
// filter admits. A nil filter admits every canonical book.
func NewCounter(filter canon.BookSet) *Counter {
	return &Counter{seen: make(map[verseRef]struct{}), filter: filter}
}

// Feed walks a file's tokens and records every distinct verse reference.
// Verse ranges such as \v 1-3 count each verse in the range.
func (c *Counter) Feed(tokens []usfm.Token) {
	var book canon.BookID
	chapter := 0

	for _, tok := range tokens {
		switch tok.Kind {
		case usfm.KindBook:
			res := canon.Resolve(tok.Data, tok.Text, c.filter)
			if res.State == canon.ResolvedOK {
				book = res.Book
			} else {
				book = ""
			}
			chapter = 0
		case usfm.KindChapter:
			chapter = parseNumber(tok.Data)
		case usfm.KindVerse:
			if book == "" || chapter == 0 {
				continue
			}
			lo, hi := parseVerseRange(tok.Data)
			for v := lo; v <= hi; v++ {
				c.seen[verseRef{book, chapter, v}] = struct{}{}
			}
		}
	}
}

// Totals returns the distinct verse count per book.
func (c *Counter) Totals() map[canon.BookID]int {
	totals := make(map[canon.BookID]int, 8)
	for ref := range c.seen {
		totals[ref.book]++
	}
	return totals
}

// parseNumber extracts the leading integer of a chapter or verse field,
// tolerating segment suffixes such as "12a".
func parseNumber(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// parseVerseRange interprets a verse field as a single verse or a
// "lo-hi" range. Unparseable fields yield (0, -1), an empty range.
func parseVerseRange(s string) (int, int) {
	s = strings.TrimSpace(s)
	if lo, hi, ok := strings.Cut(s, "-"); ok {
		l, h := parseNumber(lo), parseNumber(hi)
		if l == 0 || h < l {
			return 0, -1
		}
		return l, h
	}
	v := parseNumber(s)
	if v == 0 {
		return 0, -1
	}
	return v, v
}
