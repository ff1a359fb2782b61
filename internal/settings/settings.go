// Package settings reads Paratext project settings (Settings.xml) and
// derives per-book file names from the project's naming convention.
package settings

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/FocuswithJustin/ParatextStat/core/canon"
	"github.com/FocuswithJustin/ParatextStat/core/errors"
)

// SettingsFileName is the standard settings file name in a project folder.
const SettingsFileName = "Settings.xml"

// Snapshot is an immutable copy of the settings a worker needs. A zero
// Snapshot carries the defaults used when Settings.xml cannot be parsed.
type Snapshot struct {
	FullName     string
	LanguageCode string // ISO code, "" when missing
	RightToLeft  bool
	Encoding     string

	// Naming convention for book files, e.g. PrePart="" PostPart=".SFM"
	// BookNameForm="41MAT".
	PrePart      string
	PostPart     string
	BookNameForm string
}

// Load parses Settings.xml in projectDir. On any read or parse failure it
// returns a zero Snapshot alongside the error so callers can degrade to
// defaults with a warning.
func Load(projectDir string) (Snapshot, error) {
	path := filepath.Join(projectDir, SettingsFileName)
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, errors.NewIO("open", path, err)
	}
	defer f.Close()

	doc, err := xmlquery.Parse(f)
	if err != nil {
		return Snapshot{}, &errors.ParseError{Format: "Settings.xml", Path: path, Message: err.Error(), Err: err}
	}

	snap := Snapshot{
		FullName:     textOf(doc, "//ScriptureText/FullName"),
		Encoding:     textOf(doc, "//ScriptureText/Encoding"),
		PostPart:     textOf(doc, "//ScriptureText/Naming/@PostPart"),
		PrePart:      textOf(doc, "//ScriptureText/Naming/@PrePart"),
		BookNameForm: textOf(doc, "//ScriptureText/Naming/@BookNameForm"),
	}

	// LanguageIsoCode is colon-separated ("eng:::"); the first field is
	// the code.
	iso := textOf(doc, "//ScriptureText/LanguageIsoCode")
	if iso != "" {
		snap.LanguageCode = strings.SplitN(iso, ":", 2)[0]
	}

	rtl := strings.ToLower(textOf(doc, "//ScriptureText/RightToLeft"))
	snap.RightToLeft = rtl == "t" || rtl == "true" || rtl == "yes"

	return snap, nil
}

func textOf(doc *xmlquery.Node, xpath string) string {
	node := xmlquery.FindOne(doc, xpath)
	if node == nil {
		return ""
	}
	return strings.TrimSpace(node.InnerText())
}

// ScriptDirection renders the right-to-left flag as a report value.
func (s Snapshot) ScriptDirection() string {
	if s.RightToLeft {
		return "RTL"
	}
	return "LTR"
}

// BookFileName returns the expected file name for a book under the
// project's naming convention, or an error if the book is unknown or the
// convention cannot express it.
func (s Snapshot) BookFileName(id canon.BookID) (string, error) {
	num := canon.FileNumber(id)
	if num == "" {
		return "", errors.NewNotFound("book", string(id))
	}

	form := s.BookNameForm
	if form == "" {
		form = "41MAT"
	}

	var base string
	switch {
	case strings.Contains(form, "41") && strings.Contains(form, "MAT"):
		base = strings.Replace(form, "41", num, 1)
		base = strings.Replace(base, "MAT", string(id), 1)
	case strings.Contains(form, "MAT"):
		base = strings.Replace(form, "MAT", string(id), 1)
	case strings.Contains(form, "41"):
		base = strings.Replace(form, "41", num, 1)
	default:
		base = string(id)
	}

	return s.PrePart + base + s.PostPart, nil
}

// HasCustomStylesheet reports whether projectDir carries a custom.sty
// overriding the default marker vocabulary.
func HasCustomStylesheet(projectDir string) bool {
	info, err := os.Stat(filepath.Join(projectDir, "custom.sty"))
	return err == nil && !info.IsDir()
}

// CustomStylesheetPath returns the path of the project's custom.sty.
func CustomStylesheetPath(projectDir string) string {
	return filepath.Join(projectDir, "custom.sty")
}
