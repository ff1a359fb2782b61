package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/FocuswithJustin/ParatextStat/core/canon"
)

const sampleSettings = `<?xml version="1.0" encoding="utf-8"?>
<ScriptureText>
  <FullName>Example Translation</FullName>
  <LanguageIsoCode>eng:::</LanguageIsoCode>
  <Encoding>65001</Encoding>
  <RightToLeft>F</RightToLeft>
  <Naming PrePart="" PostPart=".SFM" BookNameForm="41MAT" />
</ScriptureText>
`

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, SettingsFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeSettings(t, sampleSettings)

	snap, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.FullName != "Example Translation" {
		t.Errorf("FullName = %q", snap.FullName)
	}
	if snap.LanguageCode != "eng" {
		t.Errorf("LanguageCode = %q, want eng", snap.LanguageCode)
	}
	if snap.RightToLeft {
		t.Error("RightToLeft = true, want false")
	}
	if snap.Encoding != "65001" {
		t.Errorf("Encoding = %q", snap.Encoding)
	}
	if snap.PostPart != ".SFM" || snap.BookNameForm != "41MAT" {
		t.Errorf("naming = %q/%q/%q", snap.PrePart, snap.PostPart, snap.BookNameForm)
	}
	if snap.ScriptDirection() != "LTR" {
		t.Errorf("ScriptDirection = %q", snap.ScriptDirection())
	}
}

func TestLoadRightToLeft(t *testing.T) {
	dir := writeSettings(t, `<ScriptureText><RightToLeft>T</RightToLeft></ScriptureText>`)

	snap, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !snap.RightToLeft {
		t.Error("RightToLeft = false, want true")
	}
	if snap.ScriptDirection() != "RTL" {
		t.Errorf("ScriptDirection = %q", snap.ScriptDirection())
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Error("expected error for missing Settings.xml")
	}
}

func TestLoadMalformed(t *testing.T) {
	dir := writeSettings(t, `<ScriptureText><FullName>broken`)
	snap, err := Load(dir)
	if err == nil && snap.FullName == "" {
		// xmlquery tolerates some malformed input; either outcome is
		// acceptable as long as we do not crash.
		t.Log("parser accepted truncated document")
	}
}

func TestBookFileName(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		book canon.BookID
		want string
	}{
		{"number and code", Snapshot{PostPart: ".SFM", BookNameForm: "41MAT"}, "MAT", "41MAT.SFM"},
		{"number and code genesis", Snapshot{PostPart: ".SFM", BookNameForm: "41MAT"}, "GEN", "01GEN.SFM"},
		{"code only", Snapshot{PostPart: ".usfm", BookNameForm: "MAT"}, "REV", "REV.usfm"},
		{"number only", Snapshot{PostPart: ".sfm", BookNameForm: "41"}, "MAT", "41.sfm"},
		{"prefix", Snapshot{PrePart: "PRJ-", PostPart: ".SFM", BookNameForm: "41MAT"}, "MRK", "PRJ-42MRK.SFM"},
		{"default form", Snapshot{PostPart: ".SFM"}, "MAT", "41MAT.SFM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.snap.BookFileName(tt.book)
			if err != nil {
				t.Fatalf("BookFileName(%s): %v", tt.book, err)
			}
			if got != tt.want {
				t.Errorf("BookFileName(%s) = %q, want %q", tt.book, got, tt.want)
			}
		})
	}
}

func TestBookFileNameUnknownBook(t *testing.T) {
	snap := Snapshot{BookNameForm: "41MAT"}
	if _, err := snap.BookFileName("ZZZ"); err == nil {
		t.Error("expected error for unknown book")
	}
}

func TestHasCustomStylesheet(t *testing.T) {
	dir := t.TempDir()
	if HasCustomStylesheet(dir) {
		t.Error("empty dir reported custom stylesheet")
	}
	if err := os.WriteFile(filepath.Join(dir, "custom.sty"), []byte("\\Marker p\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !HasCustomStylesheet(dir) {
		t.Error("custom.sty not detected")
	}
}
