package analysis

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/ParatextStat/core/canon"
	"github.com/FocuswithJustin/ParatextStat/core/textstat"
	"github.com/FocuswithJustin/ParatextStat/core/usfm"
	"github.com/FocuswithJustin/ParatextStat/internal/logging"
	"github.com/FocuswithJustin/ParatextStat/internal/settings"
	"github.com/FocuswithJustin/ParatextStat/internal/versecount"
)

// DefaultTopN is the default length of ranked summary tables.
const DefaultTopN = 10

// Options configures an Analyzer.
type Options struct {
	// Stylesheet classifies markers. Nil selects the embedded default.
	Stylesheet *usfm.Stylesheet

	// Filter restricts which books contribute statistics. Nil admits
	// every canonical book.
	Filter canon.BookSet

	// TopN bounds ranked summary tables; zero means DefaultTopN.
	TopN int

	// UseCustomStylesheet replaces the stylesheet with the project's
	// custom.sty when one exists. A custom.sty that fails to parse is
	// fatal for that project.
	UseCustomStylesheet bool
}

// Analyzer runs the full statistics pass over projects.
type Analyzer struct {
	opts Options
}

// NewAnalyzer returns an Analyzer with defaults filled in.
func NewAnalyzer(opts Options) *Analyzer {
	if opts.Stylesheet == nil {
		opts.Stylesheet = usfm.DefaultStylesheet()
	}
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}
	return &Analyzer{opts: opts}
}

// AnalyzeProject analyzes every scripture file under dir and returns the
// project's result. The result is never nil; failures are reported
// through its Status and Messages.
func (a *Analyzer) AnalyzeProject(ctx context.Context, name, dir string) *ProjectResult {
	start := time.Now()
	result := &ProjectResult{
		RunID:      uuid.NewString(),
		Name:       name,
		Path:       dir,
		Analyzed:   start,
		FileHashes: make(map[string]string),
		Acc:        NewAccumulators(),
	}

	snap, err := settings.Load(dir)
	if err != nil {
		result.warn(fmt.Sprintf("settings unreadable, using defaults: %v", err))
	}
	result.Settings = snap
	if snap.LanguageCode == "" {
		result.warn("no language code in settings")
	}

	sheet := a.opts.Stylesheet
	result.HasCustomSty = settings.HasCustomStylesheet(dir)
	if result.HasCustomSty && a.opts.UseCustomStylesheet {
		custom, err := usfm.LoadStylesheet(settings.CustomStylesheetPath(dir))
		if err != nil {
			result.fail(fmt.Sprintf("custom stylesheet: %v", err))
			result.Elapsed = time.Since(start)
			return result
		}
		sheet = custom
	}

	files, err := ScriptureFiles(dir)
	if err != nil {
		result.fail(fmt.Sprintf("list files: %v", err))
		result.Elapsed = time.Since(start)
		return result
	}
	if len(files) == 0 {
		result.warn("no scripture files found")
		result.Elapsed = time.Since(start)
		return result
	}

	tokenizer := usfm.NewTokenizer(sheet)
	verses := versecount.NewCounter(a.opts.Filter)

	for _, file := range files {
		if ctx.Err() != nil {
			result.fail(fmt.Sprintf("canceled: %v", ctx.Err()))
			break
		}
		path := filepath.Join(dir, file)
		data, err := os.ReadFile(path)
		if err != nil {
			logging.FileSkipped(name, path, err)
			result.warn(fmt.Sprintf("skipped %s: %v", file, err))
			continue
		}

		sum := blake3.Sum256(data)
		result.FileHashes[file] = hex.EncodeToString(sum[:])

		tokens := tokenizer.Tokenize(string(data))
		AnalyzeTokens(tokens, result.Acc, a.opts.Filter)
		verses.Feed(tokens)
		result.FilesProcessed++
	}

	result.BooksProcessed = result.Acc.BookCount()
	if result.BooksProcessed == 0 {
		result.warn("no books yielded statistics")
	}
	result.DetectedScript = textstat.DetectScript(result.Acc.Sample.Text())
	result.VerseTotals = verses.Totals()
	result.Summary = summarize(result.Acc, a.opts.TopN)
	result.Elapsed = time.Since(start)

	logging.ProjectEvent("analyzed", name,
		"status", result.Status.String(),
		"books", result.BooksProcessed,
		"files", result.FilesProcessed,
		"elapsed", result.Elapsed.String())
	return result
}

// ScriptureFiles lists the .sfm and .usfm files directly under dir,
// sorted by name. Matching ignores extension case.
func ScriptureFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".sfm", ".usfm":
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
