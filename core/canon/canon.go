// Package canon provides the closed catalog of Paratext book identifiers,
// their canonical ordering, and book-code resolution for token streams.
package canon

import "strings"

// BookID is a three-character Paratext book identifier (e.g. "GEN", "PSA").
type BookID string

// AllBookIDs is the full ordered catalog of book identifiers: Old and New
// Testament, deuterocanon, obsolete codes, and the reserved extension and
// peripheral codes. The slice order is the canonical sort order for reports.
var AllBookIDs = []BookID{
	// Old Testament
	"GEN", "EXO", "LEV", "NUM", "DEU", "JOS", "JDG", "RUT", "1SA", "2SA",
	"1KI", "2KI", "1CH", "2CH", "EZR", "NEH", "EST", "JOB", "PSA", "PRO",
	"ECC", "SNG", "ISA", "JER", "LAM", "EZK", "DAN", "HOS", "JOL", "AMO",
	"OBA", "JON", "MIC", "NAM", "HAB", "ZEP", "HAG", "ZEC", "MAL",
	// New Testament
	"MAT", "MRK", "LUK", "JHN", "ACT", "ROM", "1CO", "2CO", "GAL", "EPH",
	"PHP", "COL", "1TH", "2TH", "1TI", "2TI", "TIT", "PHM", "HEB", "JAS",
	"1PE", "2PE", "1JN", "2JN", "3JN", "JUD", "REV",
	// Deuterocanon
	"TOB", "JDT", "ESG", "WIS", "SIR", "BAR", "LJE", "S3Y", "SUS", "BEL",
	"1MA", "2MA", "3MA", "4MA", "1ES", "2ES", "MAN", "PS2", "ODA", "PSS",
	// Obsolete codes retained for legacy projects
	"JSA", "JDB", "TBS", "SST", "DNT", "BLT",
	// Reserved extension codes
	"XXA", "XXB", "XXC", "XXD", "XXE", "XXF", "XXG",
	// Peripherals
	"FRT", "BAK", "OTH",
	"3ES", "EZA", "5EZ", "6EZ",
	"INT", "CNC", "GLO", "TDX", "NDX",
	// Additional extra-canonical books
	"DAG", "PS3", "2BA", "LBA", "JUB", "ENO", "1MQ", "2MQ", "3MQ",
	"REP", "4BA", "LAO",
}

// nonScripture holds the codes that are valid identifiers but never carry
// scripture content; they are excluded from the canonical set that keys
// accumulators.
var nonScripture = map[BookID]bool{
	"XXA": true, "XXB": true, "XXC": true, "XXD": true, "XXE": true,
	"XXF": true, "XXG": true,
	"FRT": true, "BAK": true, "OTH": true,
	"INT": true, "CNC": true, "GLO": true, "TDX": true, "NDX": true,
}

var bookIndex = func() map[BookID]int {
	m := make(map[BookID]int, len(AllBookIDs))
	for i, id := range AllBookIDs {
		m[id] = i
	}
	return m
}()

// IsBookID reports whether id is a member of the catalog.
func IsBookID(id BookID) bool {
	_, ok := bookIndex[id]
	return ok
}

// IsCanonical reports whether id may key statistic accumulators. Peripheral
// and reserved extension codes are valid identifiers but not canonical.
func IsCanonical(id BookID) bool {
	return IsBookID(id) && !nonScripture[id]
}

// Index returns the canonical sort position of id, or -1 if id is not in
// the catalog.
func Index(id BookID) int {
	if i, ok := bookIndex[id]; ok {
		return i
	}
	return -1
}

// FileNumber returns the two-digit Paratext file-numbering prefix for id
// ("01" for GEN, "41" for MAT; position 40 is unassigned by convention).
// It returns "" for unknown identifiers.
func FileNumber(id BookID) string {
	i := Index(id)
	if i < 0 {
		return ""
	}
	n := i + 1
	if i >= 39 {
		n = i + 2
	}
	return twoDigits(n)
}

func twoDigits(n int) string {
	const digits = "0123456789"
	if n < 100 {
		return string([]byte{digits[n/10], digits[n%10]})
	}
	return string([]byte{digits[n/100], digits[(n/10)%10], digits[n%10]})
}

// SortCanonical orders ids in place by catalog position; unknown ids sort
// after all known ones, alphabetically among themselves.
func SortCanonical(ids []BookID) {
	// Insertion sort; book lists are small (at most the catalog size).
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && less(ids[j], ids[j-1]); j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
}

func less(a, b BookID) bool {
	ia, ib := Index(a), Index(b)
	switch {
	case ia < 0 && ib < 0:
		return a < b
	case ia < 0:
		return false
	case ib < 0:
		return true
	default:
		return ia < ib
	}
}

// BookSet is a filter over book identifiers. A nil or empty set admits
// every book.
type BookSet map[BookID]bool

// ParseBookSet builds a BookSet from a comma-separated list of codes
// (case-insensitive, blanks ignored). An empty list yields a nil set.
func ParseBookSet(list string) BookSet {
	var set BookSet
	for _, part := range strings.Split(list, ",") {
		id := BookID(strings.ToUpper(strings.TrimSpace(part)))
		if id == "" {
			continue
		}
		if set == nil {
			set = make(BookSet)
		}
		set[id] = true
	}
	return set
}

// Admits reports whether the set allows id. A nil set admits everything.
func (s BookSet) Admits(id BookID) bool {
	return len(s) == 0 || s[id]
}
