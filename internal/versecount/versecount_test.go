package versecount

import (
	"testing"

	"github.com/FocuswithJustin/ParatextStat/core/canon"
	"github.com/FocuswithJustin/ParatextStat/core/usfm"
)

func tokenize(t *testing.T, content string) []usfm.Token {
	t.Helper()
	return usfm.NewTokenizer(nil).Tokenize(content)
}

func TestCounterBasic(t *testing.T) {
	c := NewCounter(nil)
	c.Feed(tokenize(t, "\\id GEN\n\\c 1\n\\p\n\\v 1 First.\n\\v 2 Second.\n\\c 2\n\\v 1 Third.\n"))

	totals := c.Totals()
	if totals["GEN"] != 3 {
		t.Errorf("GEN verses = %d, want 3", totals["GEN"])
	}
}

func TestCounterDistinct(t *testing.T) {
	c := NewCounter(nil)
	c.Feed(tokenize(t, "\\id GEN\n\\c 1\n\\v 1 Once.\n\\v 1 Twice.\n"))

	if got := c.Totals()["GEN"]; got != 1 {
		t.Errorf("repeated verse counted %d times", got)
	}
}

func TestCounterRange(t *testing.T) {
	c := NewCounter(nil)
	c.Feed(tokenize(t, "\\id MAT\n\\c 5\n\\v 3-5 Blessed.\n\\v 6 More.\n"))

	if got := c.Totals()["MAT"]; got != 4 {
		t.Errorf("MAT verses = %d, want 4", got)
	}
}

func TestCounterSegmentSuffix(t *testing.T) {
	c := NewCounter(nil)
	c.Feed(tokenize(t, "\\id GEN\n\\c 1\n\\v 1a Part one.\n\\v 1b Part two.\n\\v 2 Next.\n"))

	// 1a and 1b are the same verse number.
	if got := c.Totals()["GEN"]; got != 2 {
		t.Errorf("GEN verses = %d, want 2", got)
	}
}

func TestCounterNoChapter(t *testing.T) {
	c := NewCounter(nil)
	c.Feed(tokenize(t, "\\id GEN\n\\v 1 Stray verse before any chapter.\n"))

	if got := c.Totals()["GEN"]; got != 0 {
		t.Errorf("verse without chapter counted: %d", got)
	}
}

func TestCounterFilter(t *testing.T) {
	filter := canon.ParseBookSet("MAT")
	c := NewCounter(filter)
	c.Feed(tokenize(t, "\\id GEN\n\\c 1\n\\v 1 Skipped.\n"))
	c.Feed(tokenize(t, "\\id MAT\n\\c 1\n\\v 1 Kept.\n"))

	totals := c.Totals()
	if _, ok := totals["GEN"]; ok {
		t.Error("filtered book counted")
	}
	if totals["MAT"] != 1 {
		t.Errorf("MAT verses = %d, want 1", totals["MAT"])
	}
}

func TestCounterMultipleFiles(t *testing.T) {
	c := NewCounter(nil)
	c.Feed(tokenize(t, "\\id GEN\n\\c 1\n\\v 1 One.\n"))
	c.Feed(tokenize(t, "\\id EXO\n\\c 1\n\\v 1 Two.\n\\v 2 Three.\n"))

	totals := c.Totals()
	if totals["GEN"] != 1 || totals["EXO"] != 2 {
		t.Errorf("totals = %v", totals)
	}
}

func TestParseVerseRange(t *testing.T) {
	tests := []struct {
		in     string
		lo, hi int
	}{
		{"1", 1, 1},
		{"12a", 12, 12},
		{"1-3", 1, 3},
		{"7-7", 7, 7},
		{"3-1", 0, -1},
		{"", 0, -1},
		{"x", 0, -1},
	}
	for _, tt := range tests {
		lo, hi := parseVerseRange(tt.in)
		if lo != tt.lo || hi != tt.hi {
			t.Errorf("parseVerseRange(%q) = %d,%d want %d,%d", tt.in, lo, hi, tt.lo, tt.hi)
		}
	}
}
