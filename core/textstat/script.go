package textstat

import (
	"strings"
	"unicode/utf8"
)

// SampleBudget is the character budget of a script-detection sample.
const SampleBudget = 5000

// Sample is a bounded buffer of raw text used to infer a dominant
// writing script. Appends beyond the budget are dropped.
type Sample struct {
	b     strings.Builder
	runes int
}

// Append adds text to the sample if the budget has not been reached.
// Matching the per-segment collection policy of the analyzer, the whole
// segment is appended when any budget remains; Text trims to the budget.
func (s *Sample) Append(text string) {
	if s.runes >= SampleBudget {
		return
	}
	s.b.WriteString(text)
	s.runes += utf8.RuneCountInString(text)
}

// Len returns the collected character count (may exceed the budget by the
// tail of the final segment; Text trims).
func (s *Sample) Len() int { return s.runes }

// Text returns the sample trimmed to the budget.
func (s *Sample) Text() string {
	runes := []rune(s.b.String())
	if len(runes) > SampleBudget {
		runes = runes[:SampleBudget]
	}
	return string(runes)
}

// DetectScript returns the most frequent script among the word-forming
// characters of sample, or "Unknown" when the sample yields none. Ties
// break to the lexicographically smallest script name so the result is
// deterministic across runs.
func DetectScript(sample string) string {
	counts := make(map[string]int)
	for _, r := range sample {
		if !IsWordChar(r) {
			continue
		}
		if script := ScriptOf(r); script != "" {
			counts[script]++
		}
	}
	best := ""
	bestN := 0
	for script, n := range counts {
		if n > bestN || (n == bestN && (best == "" || script < best)) {
			best, bestN = script, n
		}
	}
	if best == "" {
		return "Unknown"
	}
	return best
}
