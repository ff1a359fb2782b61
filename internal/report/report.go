// Package report renders analysis results as CSV files: one detail report
// per project and a master summary across the whole run.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/FocuswithJustin/ParatextStat/core/canon"
	"github.com/FocuswithJustin/ParatextStat/core/errors"
	"github.com/FocuswithJustin/ParatextStat/internal/analysis"
	"github.com/FocuswithJustin/ParatextStat/internal/logging"
)

// SummaryFileName is the master summary written once per run.
const SummaryFileName = "summary.csv"

// Writer renders reports into one output folder.
type Writer struct {
	dir string
}

// NewWriter creates the output folder if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.NewIO("create output folder", dir, err)
	}
	return &Writer{dir: dir}, nil
}

// WriteProject writes the per-project detail report and returns its path.
func (w *Writer) WriteProject(r *analysis.ProjectResult) (string, error) {
	path := filepath.Join(w.dir, r.Name+"_report.csv")
	f, err := os.Create(path)
	if err != nil {
		return "", errors.NewIO("create report", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	writeMetadata(cw, r)
	writePivot(cw, "Markers", markerPivot(r.Acc))
	writePivot(cw, "Punctuation", punctPivot(r.Acc))
	writeBookStats(cw, r)
	writeWordExtremes(cw, r)
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", errors.NewIO("write report", path, err)
	}

	logging.ReportWritten("project", path, "project", r.Name)
	return path, nil
}

func writeMetadata(cw *csv.Writer, r *analysis.ProjectResult) {
	rows := [][]string{
		{"Project", r.Name},
		{"Full Name", r.Settings.FullName},
		{"Status", r.Status.String()},
		{"Language", r.Settings.LanguageCode},
		{"Script", r.DetectedScript},
		{"Direction", r.Settings.ScriptDirection()},
		{"Custom Stylesheet", strconv.FormatBool(r.HasCustomSty)},
		{"Books", strconv.Itoa(r.BooksProcessed)},
		{"Files", strconv.Itoa(r.FilesProcessed)},
		{"Total Words", strconv.Itoa(r.Summary.TotalWords)},
		{"Distinct Words", strconv.Itoa(r.Summary.DistinctWords)},
		{"Analyzed", r.Analyzed.UTC().Format(time.RFC3339)},
	}
	for _, msg := range r.Messages {
		rows = append(rows, []string{"Message", msg})
	}
	for _, row := range rows {
		cw.Write(row)
	}
	cw.Write(nil)
}

// pivot is a counts table with one column per book, rows sorted by total
// descending.
type pivot struct {
	books []canon.BookID
	rows  []pivotRow
}

type pivotRow struct {
	name   string
	total  int
	byBook map[canon.BookID]int
}

func markerPivot(acc *analysis.Accumulators) pivot {
	byName := make(map[string]map[canon.BookID]int)
	for book, markers := range acc.Markers {
		for marker, count := range markers {
			if byName[marker] == nil {
				byName[marker] = make(map[canon.BookID]int)
			}
			byName[marker][book] = count
		}
	}
	return buildPivot(byName, bookColumns(acc))
}

func punctPivot(acc *analysis.Accumulators) pivot {
	byName := make(map[string]map[canon.BookID]int, len(acc.PunctByName))
	for name, byBook := range acc.PunctByName {
		byName[name] = byBook
	}
	return buildPivot(byName, bookColumns(acc))
}

func bookColumns(acc *analysis.Accumulators) []canon.BookID {
	books := make([]canon.BookID, 0, len(acc.Books))
	for book := range acc.Books {
		books = append(books, book)
	}
	canon.SortCanonical(books)
	return books
}

func buildPivot(byName map[string]map[canon.BookID]int, books []canon.BookID) pivot {
	rows := make([]pivotRow, 0, len(byName))
	for name, byBook := range byName {
		row := pivotRow{name: name, byBook: byBook}
		for _, count := range byBook {
			row.total += count
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].total != rows[j].total {
			return rows[i].total > rows[j].total
		}
		return rows[i].name < rows[j].name
	})
	return pivot{books: books, rows: rows}
}

func writePivot(cw *csv.Writer, title string, p pivot) {
	header := []string{title, "Total"}
	for _, book := range p.books {
		header = append(header, string(book))
	}
	cw.Write(header)

	for _, row := range p.rows {
		record := []string{row.name, strconv.Itoa(row.total)}
		for _, book := range p.books {
			record = append(record, strconv.Itoa(row.byBook[book]))
		}
		cw.Write(record)
	}
	cw.Write(nil)
}

func writeBookStats(cw *csv.Writer, r *analysis.ProjectResult) {
	books := make([]canon.BookID, 0, len(r.VerseTotals))
	for book := range r.VerseTotals {
		books = append(books, book)
	}
	canon.SortCanonical(books)

	cw.Write([]string{"Book", "Verses"})
	for _, book := range books {
		cw.Write([]string{string(book), strconv.Itoa(r.VerseTotals[book])})
	}
	cw.Write(nil)
}

func writeWordExtremes(cw *csv.Writer, r *analysis.ProjectResult) {
	cw.Write([]string{"Rank", "Shortest Word", "Longest Word"})
	n := len(r.Summary.ShortestWords)
	if len(r.Summary.LongestWords) > n {
		n = len(r.Summary.LongestWords)
	}
	for i := 0; i < n; i++ {
		record := []string{strconv.Itoa(i + 1), "", ""}
		if i < len(r.Summary.ShortestWords) {
			record[1] = r.Summary.ShortestWords[i]
		}
		if i < len(r.Summary.LongestWords) {
			record[2] = r.Summary.LongestWords[i]
		}
		cw.Write(record)
	}
}

// summaryHeader is the column layout of the master summary.
var summaryHeader = []string{
	"Project", "Status", "Language", "Script", "Direction",
	"Books", "Files", "Total Words", "Distinct Words", "Elapsed", "Messages",
}

// WriteSummary writes the master summary covering every result, sorted by
// project name, and returns its path.
func (w *Writer) WriteSummary(results []*analysis.ProjectResult) (string, error) {
	sorted := append([]*analysis.ProjectResult(nil), results...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	path := filepath.Join(w.dir, SummaryFileName)
	f, err := os.Create(path)
	if err != nil {
		return "", errors.NewIO("create summary", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	cw.Write(summaryHeader)
	for _, r := range sorted {
		messages := ""
		if len(r.Messages) > 0 {
			messages = fmt.Sprintf("%d: %s", len(r.Messages), r.Messages[0])
		}
		cw.Write([]string{
			r.Name,
			r.Status.String(),
			r.Settings.LanguageCode,
			r.DetectedScript,
			r.Settings.ScriptDirection(),
			strconv.Itoa(r.BooksProcessed),
			strconv.Itoa(r.FilesProcessed),
			strconv.Itoa(r.Summary.TotalWords),
			strconv.Itoa(r.Summary.DistinctWords),
			r.Elapsed.Round(time.Millisecond).String(),
			messages,
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", errors.NewIO("write summary", path, err)
	}

	logging.ReportWritten("summary", path, "projects", len(sorted))
	return path, nil
}
