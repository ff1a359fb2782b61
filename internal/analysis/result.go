package analysis

import (
	"sort"
	"time"
	"unicode/utf8"

	"github.com/FocuswithJustin/ParatextStat/core/canon"
	"github.com/FocuswithJustin/ParatextStat/internal/settings"
)

// Status is the outcome of analyzing one project. A project's status only
// escalates: warnings never downgrade an error, and success never
// overrides either.
type Status int

const (
	StatusSuccess Status = iota
	StatusWarning
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "Success"
	case StatusWarning:
		return "Warning"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Escalate raises s to at least level.
func (s *Status) Escalate(level Status) {
	if level > *s {
		*s = level
	}
}

// CountRow is one entry of a ranked count table.
type CountRow struct {
	Name  string
	Count int
}

// Summary holds the ranked views derived from a project's accumulators.
type Summary struct {
	TopMarkers    []CountRow
	TopPunct      []CountRow
	ShortestWords []string
	LongestWords  []string
	TotalWords    int
	DistinctWords int
}

// ProjectResult is everything learned about one project.
type ProjectResult struct {
	RunID string
	Name  string
	Path  string

	Status   Status
	Messages []string

	Settings     settings.Snapshot
	HasCustomSty bool

	DetectedScript string
	BooksProcessed int
	FilesProcessed int

	// FileHashes maps each processed file name to its BLAKE3 digest.
	FileHashes map[string]string

	VerseTotals map[canon.BookID]int

	Acc     *Accumulators
	Summary Summary

	Analyzed time.Time
	Elapsed  time.Duration
}

// warn records a message and escalates the status to at least Warning.
func (r *ProjectResult) warn(msg string) {
	r.Messages = append(r.Messages, msg)
	r.Status.Escalate(StatusWarning)
}

// fail records a message and escalates the status to Error.
func (r *ProjectResult) fail(msg string) {
	r.Messages = append(r.Messages, msg)
	r.Status.Escalate(StatusError)
}

// topN ranks a count map by descending count, breaking ties by name so
// repeated runs produce identical tables.
func topN(counts map[string]int, n int) []CountRow {
	rows := make([]CountRow, 0, len(counts))
	for name, count := range counts {
		rows = append(rows, CountRow{Name: name, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Name < rows[j].Name
	})
	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

// wordExtremes returns the n shortest and n longest distinct words,
// ordered by rune length and then lexicographically.
func wordExtremes(words map[string]int, n int) (shortest, longest []string) {
	all := make([]string, 0, len(words))
	for w := range words {
		all = append(all, w)
	}
	sort.Slice(all, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(all[i]), utf8.RuneCountInString(all[j])
		if li != lj {
			return li < lj
		}
		return all[i] < all[j]
	})

	if n <= 0 || n > len(all) {
		n = len(all)
	}
	shortest = append([]string(nil), all[:n]...)
	longest = append([]string(nil), all[len(all)-n:]...)
	return shortest, longest
}

// summarize builds the ranked summary from the accumulators.
func summarize(acc *Accumulators, n int) Summary {
	s := Summary{
		TopMarkers:    topN(acc.MarkerTotals(), n),
		TopPunct:      topN(acc.PunctTotals(), n),
		DistinctWords: len(acc.Words),
	}
	for _, count := range acc.Words {
		s.TotalWords += count
	}
	s.ShortestWords, s.LongestWords = wordExtremes(acc.Words, n)
	return s
}
