package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestIOError(t *testing.T) {
	underlying := stderrors.New("permission denied")
	err := NewIO("read", "/data/project/41MAT.sfm", underlying)

	if !strings.Contains(err.Error(), "read") || !strings.Contains(err.Error(), "41MAT.sfm") {
		t.Errorf("IOError message = %q", err.Error())
	}
	if !Is(err, underlying) {
		t.Error("IOError should unwrap to the underlying error")
	}

	noPath := NewIO("open", "", underlying)
	if strings.Contains(noPath.Error(), "  ") {
		t.Errorf("IOError without path = %q", noPath.Error())
	}
}

func TestParseError(t *testing.T) {
	err := NewParse("Settings.xml", "/data/project/Settings.xml", "missing LanguageIsoCode")
	if !strings.Contains(err.Error(), "Settings.xml") {
		t.Errorf("ParseError message = %q", err.Error())
	}
	if !Is(err, ErrInvalidInput) {
		t.Error("ParseError without cause should unwrap to ErrInvalidInput")
	}

	cause := stderrors.New("unexpected EOF")
	withCause := &ParseError{Format: "stylesheet", Message: "truncated", Err: cause}
	if !Is(withCause, cause) {
		t.Error("ParseError with cause should unwrap to the cause")
	}
}

func TestStylesheetError(t *testing.T) {
	cause := stderrors.New("file missing")
	err := &StylesheetError{Path: "usfm.sty", Err: cause}
	if !strings.Contains(err.Error(), "usfm.sty") {
		t.Errorf("StylesheetError message = %q", err.Error())
	}
	if !Is(err, cause) {
		t.Error("StylesheetError should unwrap to the cause")
	}

	var target *StylesheetError
	if !As(err, &target) {
		t.Error("As should match *StylesheetError")
	}
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFound("project", "MyProject_2023_01_15")
	if !strings.Contains(err.Error(), "MyProject_2023_01_15") {
		t.Errorf("NotFoundError message = %q", err.Error())
	}
	if !Is(err, ErrNotFound) {
		t.Error("NotFoundError should unwrap to ErrNotFound")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	base := stderrors.New("boom")
	wrapped := Wrap(base, "analyzing project")
	if !Is(wrapped, base) {
		t.Error("wrapped error should match the base")
	}
	if !strings.HasPrefix(wrapped.Error(), "analyzing project: ") {
		t.Errorf("Wrap message = %q", wrapped.Error())
	}

	if Wrapf(nil, "x %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}
	wf := Wrapf(base, "file %d of %d", 2, 7)
	if !strings.Contains(wf.Error(), "file 2 of 7") {
		t.Errorf("Wrapf message = %q", wf.Error())
	}
}

func TestSentinels(t *testing.T) {
	for _, err := range []error{ErrNotFound, ErrInvalidInput, ErrNoProjects, ErrNoFiles, ErrNoBooks} {
		if err.Error() == "" {
			t.Error("sentinel with empty message")
		}
	}
}
