package canon

import "testing"

func TestCatalogOrdering(t *testing.T) {
	if AllBookIDs[0] != "GEN" {
		t.Errorf("first catalog entry = %q, want GEN", AllBookIDs[0])
	}
	if Index("MAT") != 39 {
		t.Errorf("Index(MAT) = %d, want 39", Index("MAT"))
	}
	if Index("REV") != 65 {
		t.Errorf("Index(REV) = %d, want 65", Index("REV"))
	}
	if Index("ZZZ") != -1 {
		t.Errorf("Index(ZZZ) = %d, want -1", Index("ZZZ"))
	}
}

func TestIsCanonical(t *testing.T) {
	tests := []struct {
		id   BookID
		want bool
	}{
		{"GEN", true},
		{"PSA", true},
		{"REV", true},
		{"TOB", true}, // deuterocanon counts
		{"XXA", false},
		{"FRT", false},
		{"GLO", false},
		{"XYZ", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsCanonical(tt.id); got != tt.want {
			t.Errorf("IsCanonical(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestFileNumber(t *testing.T) {
	tests := []struct {
		id   BookID
		want string
	}{
		{"GEN", "01"},
		{"MAL", "39"},
		{"MAT", "41"}, // 40 is skipped by convention
		{"REV", "67"},
		{"ZZZ", ""},
	}
	for _, tt := range tests {
		if got := FileNumber(tt.id); got != tt.want {
			t.Errorf("FileNumber(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestSortCanonical(t *testing.T) {
	ids := []BookID{"REV", "GEN", "PSA", "MAT"}
	SortCanonical(ids)
	want := []BookID{"GEN", "PSA", "MAT", "REV"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("SortCanonical = %v, want %v", ids, want)
		}
	}
}

func TestSortCanonicalUnknownLast(t *testing.T) {
	ids := []BookID{"QQQ", "GEN", "AAA"}
	SortCanonical(ids)
	if ids[0] != "GEN" || ids[1] != "AAA" || ids[2] != "QQQ" {
		t.Fatalf("SortCanonical = %v, want [GEN AAA QQQ]", ids)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		data, text string
		filter     BookSet
		wantState  ResolutionState
		wantBook   BookID
	}{
		{"from data", "GEN", "", nil, ResolvedOK, "GEN"},
		{"data wins over text", "PSA", "GEN", nil, ResolvedOK, "PSA"},
		{"text fallback", "", "mat", nil, ResolvedOK, "MAT"},
		{"NONE placeholder rejected", "", "NONE", nil, ResolvedNone, ""},
		{"empty", "", "  ", nil, ResolvedNone, ""},
		{"non-canonical", "XYZ", "", nil, ResolvedInvalid, ""},
		{"peripheral is invalid", "FRT", "", nil, ResolvedInvalid, ""},
		{"filtered out", "GEN", "", BookSet{"PSA": true}, ResolvedFiltered, ""},
		{"filter admits", "PSA", "", BookSet{"PSA": true}, ResolvedOK, "PSA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.data, tt.text, tt.filter)
			if got.State != tt.wantState {
				t.Errorf("Resolve state = %v, want %v", got.State, tt.wantState)
			}
			if got.Book != tt.wantBook {
				t.Errorf("Resolve book = %q, want %q", got.Book, tt.wantBook)
			}
		})
	}
}

func TestParseBookSet(t *testing.T) {
	set := ParseBookSet(" gen, PSA ,,mat ")
	if len(set) != 3 {
		t.Fatalf("ParseBookSet size = %d, want 3", len(set))
	}
	for _, id := range []BookID{"GEN", "PSA", "MAT"} {
		if !set.Admits(id) {
			t.Errorf("set should admit %s", id)
		}
	}
	if set.Admits("REV") {
		t.Error("set should not admit REV")
	}
	if ParseBookSet("") != nil {
		t.Error("empty list should yield nil set")
	}
	var nilSet BookSet
	if !nilSet.Admits("GEN") {
		t.Error("nil set should admit everything")
	}
}
