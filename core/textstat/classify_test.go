package textstat

import (
	"strings"
	"testing"
)

func TestIsWordChar(t *testing.T) {
	tests := []struct {
		r    rune
		want bool
	}{
		{'a', true},
		{'Z', true},
		{'é', true},
		{'ع', true},  // Arabic letter
		{'あ', true},  // Hiragana
		{'_', true},  // Pc connector
		{'́', true},  // combining acute accent (Mn)
		{'5', false}, // Nd excluded
		{'٣', false}, // Arabic-Indic digit, still Nd
		{' ', false},
		{'.', false},
		{'+', false},
		{'`', false}, // grave accent is punctuation-only
	}
	for _, tt := range tests {
		if got := IsWordChar(tt.r); got != tt.want {
			t.Errorf("IsWordChar(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestIsPunctChar(t *testing.T) {
	tests := []struct {
		r    rune
		want bool
	}{
		{'.', true},
		{',', true},
		{'«', true},
		{'”', true},
		{'_', true},  // Pc is both word-forming and P*
		{'`', true},  // Sk category, explicit override
		{'+', false}, // Sm
		{'$', false}, // Sc
		{'5', false},
		{' ', false},
		{'a', false},
	}
	for _, tt := range tests {
		if got := IsPunctChar(tt.r); got != tt.want {
			t.Errorf("IsPunctChar(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

// Every rune is word-forming, punctuation, both (only Pc), or neither.
// The grave accent must never classify as word-forming.
func TestClassificationExclusive(t *testing.T) {
	for _, r := range "a5 .`َ" {
		word, punct := IsWordChar(r), IsPunctChar(r)
		if r == '`' && (word || !punct) {
			t.Errorf("grave accent: word=%v punct=%v, want punctuation only", word, punct)
		}
		if word && punct && r != '_' {
			t.Errorf("%q classified as both word and punctuation", r)
		}
	}
}

func TestRuneName(t *testing.T) {
	tests := []struct {
		r    rune
		want string
	}{
		{'.', "FULL STOP"},
		{',', "COMMA"},
		{'`', "GRAVE ACCENT"},
		{'«', "LEFT-POINTING DOUBLE ANGLE QUOTATION MARK"},
	}
	for _, tt := range tests {
		if got := RuneName(tt.r); got != tt.want {
			t.Errorf("RuneName(%q) = %q, want %q", tt.r, got, tt.want)
		}
	}
}

func TestRuneNameFallback(t *testing.T) {
	// Unassigned code point falls back to U+XXXX form.
	if got := RuneName('\U000E0080'); got != "U+E0080" {
		t.Errorf("RuneName fallback = %q, want U+E0080", got)
	}
}

func TestScriptOf(t *testing.T) {
	tests := []struct {
		r    rune
		want string
	}{
		{'a', "Latin"},
		{'ع', "Arabic"},
		{'Я', "Cyrillic"},
		{'अ', "Devanagari"},
	}
	for _, tt := range tests {
		if got := ScriptOf(tt.r); got != tt.want {
			t.Errorf("ScriptOf(%q) = %q, want %q", tt.r, got, tt.want)
		}
	}
}

func TestDetectScript(t *testing.T) {
	if got := DetectScript("In the beginning"); got != "Latin" {
		t.Errorf("DetectScript latin = %q, want Latin", got)
	}
	if got := DetectScript("في البدء خلق الله"); got != "Arabic" {
		t.Errorf("DetectScript arabic = %q, want Arabic", got)
	}
	if got := DetectScript("123 ... !!!"); got != "Unknown" {
		t.Errorf("DetectScript no letters = %q, want Unknown", got)
	}
	if got := DetectScript(""); got != "Unknown" {
		t.Errorf("DetectScript empty = %q, want Unknown", got)
	}
	// Majority wins over a minority script.
	if got := DetectScript("abcdef Я"); got != "Latin" {
		t.Errorf("DetectScript mixed = %q, want Latin", got)
	}
}

func TestSampleBudget(t *testing.T) {
	var s Sample
	s.Append(strings.Repeat("a", SampleBudget-10))
	s.Append(strings.Repeat("b", 100)) // still room: appended whole
	s.Append("c")                      // over budget: dropped
	text := s.Text()
	if len([]rune(text)) != SampleBudget {
		t.Errorf("sample text length = %d, want %d", len([]rune(text)), SampleBudget)
	}
	if strings.ContainsRune(text, 'c') {
		t.Error("append past the budget should be dropped")
	}
}

func TestSampleBudgetMultibyte(t *testing.T) {
	// The budget is counted in characters, not bytes: a sample of
	// two-byte runes still collects the full 5000.
	var s Sample
	s.Append(strings.Repeat("م", SampleBudget-1))
	if s.Len() != SampleBudget-1 {
		t.Fatalf("Len = %d, want %d", s.Len(), SampleBudget-1)
	}
	s.Append("مم") // still room: appended whole
	s.Append("x")  // over budget: dropped
	text := []rune(s.Text())
	if len(text) != SampleBudget {
		t.Errorf("sample text length = %d, want %d", len(text), SampleBudget)
	}
	if text[len(text)-1] != 'م' {
		t.Errorf("last rune = %q", text[len(text)-1])
	}
}
