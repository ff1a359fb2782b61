// Package analysis implements the token-stream statistics engine: per-book
// marker and punctuation tallies, the project-wide word bag, script sampling,
// and the worker pool that fans projects out across goroutines.
package analysis

import (
	"github.com/FocuswithJustin/ParatextStat/core/canon"
	"github.com/FocuswithJustin/ParatextStat/core/textstat"
)

// Accumulators collects every statistic for one project. One instance is
// shared across all of a project's files and owned by a single goroutine.
type Accumulators struct {
	// Markers counts marker occurrences per book, keyed by the
	// normalized marker form ("\p", "\v").
	Markers map[canon.BookID]map[string]int

	// Punct counts punctuation characters per book.
	Punct map[canon.BookID]map[rune]int

	// PunctByName counts punctuation per Unicode character name, then
	// per book, for the name-oriented report pivot.
	PunctByName map[string]map[canon.BookID]int

	// Words counts case-folded word occurrences across the whole project.
	Words map[string]int

	// Sample holds the first verse text of the project for script
	// detection.
	Sample textstat.Sample

	// Books records which books contributed at least one statistic.
	Books map[canon.BookID]bool
}

// NewAccumulators returns an empty set of accumulators.
func NewAccumulators() *Accumulators {
	return &Accumulators{
		Markers:     make(map[canon.BookID]map[string]int),
		Punct:       make(map[canon.BookID]map[rune]int),
		PunctByName: make(map[string]map[canon.BookID]int),
		Words:       make(map[string]int),
		Books:       make(map[canon.BookID]bool),
	}
}

// AddMarker counts one occurrence of marker in book.
func (a *Accumulators) AddMarker(book canon.BookID, marker string) {
	m := a.Markers[book]
	if m == nil {
		m = make(map[string]int)
		a.Markers[book] = m
	}
	m[marker]++
	a.Books[book] = true
}

// AddPunct counts one punctuation character in book, in both the
// per-character and the per-name view.
func (a *Accumulators) AddPunct(book canon.BookID, r rune) {
	p := a.Punct[book]
	if p == nil {
		p = make(map[rune]int)
		a.Punct[book] = p
	}
	p[r]++

	name := textstat.RuneName(r)
	byBook := a.PunctByName[name]
	if byBook == nil {
		byBook = make(map[canon.BookID]int)
		a.PunctByName[name] = byBook
	}
	byBook[book]++
	a.Books[book] = true
}

// AddWord counts one case-folded word occurrence.
func (a *Accumulators) AddWord(word string) {
	a.Words[word]++
}

// BookCount reports how many books contributed statistics.
func (a *Accumulators) BookCount() int {
	return len(a.Books)
}

// MarkerTotals rolls marker counts up across books.
func (a *Accumulators) MarkerTotals() map[string]int {
	totals := make(map[string]int)
	for _, byMarker := range a.Markers {
		for marker, n := range byMarker {
			totals[marker] += n
		}
	}
	return totals
}

// PunctTotals rolls punctuation counts up across books, keyed by
// Unicode character name.
func (a *Accumulators) PunctTotals() map[string]int {
	totals := make(map[string]int)
	for name, byBook := range a.PunctByName {
		for _, n := range byBook {
			totals[name] += n
		}
	}
	return totals
}
