package canon

import "strings"

// ResolutionState classifies the outcome of resolving a book token.
type ResolutionState int

const (
	// ResolvedNone means no candidate code could be derived.
	ResolvedNone ResolutionState = iota
	// ResolvedOK means a canonical, filter-admitted code was resolved.
	ResolvedOK
	// ResolvedInvalid means a candidate was derived but is not canonical.
	ResolvedInvalid
	// ResolvedFiltered means a canonical candidate was rejected by an
	// active book filter.
	ResolvedFiltered
)

// Resolution is the result of resolving a BOOK token into a book context.
type Resolution struct {
	State ResolutionState
	Book  BookID // set only when State == ResolvedOK
}

// Resolve derives a book code from a BOOK token's data payload, falling
// back to its text payload. The literal placeholder "NONE" in the text
// fallback is rejected. A candidate that is not canonical yields
// ResolvedInvalid; a canonical candidate outside the filter yields
// ResolvedFiltered.
func Resolve(data, text string, filter BookSet) Resolution {
	candidate := strings.ToUpper(strings.TrimSpace(data))
	if candidate == "" {
		t := strings.ToUpper(strings.TrimSpace(text))
		if t != "" && t != "NONE" {
			candidate = t
		}
	}
	if candidate == "" {
		return Resolution{State: ResolvedNone}
	}
	id := BookID(candidate)
	if !IsCanonical(id) {
		return Resolution{State: ResolvedInvalid}
	}
	if !filter.Admits(id) {
		return Resolution{State: ResolvedFiltered}
	}
	return Resolution{State: ResolvedOK, Book: id}
}
