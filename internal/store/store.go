// Package store persists analysis results to a SQLite database so past
// runs can be queried without re-reading the projects.
package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/FocuswithJustin/ParatextStat/core/canon"
	"github.com/FocuswithJustin/ParatextStat/core/errors"
	"github.com/FocuswithJustin/ParatextStat/core/textstat"
	"github.com/FocuswithJustin/ParatextStat/internal/analysis"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id      TEXT PRIMARY KEY,
	project     TEXT NOT NULL,
	path        TEXT NOT NULL,
	status      TEXT NOT NULL,
	messages    TEXT NOT NULL,
	language    TEXT NOT NULL,
	script      TEXT NOT NULL,
	direction   TEXT NOT NULL,
	full_name   TEXT NOT NULL,
	custom_sty  INTEGER NOT NULL,
	books       INTEGER NOT NULL,
	files       INTEGER NOT NULL,
	analyzed_at TEXT NOT NULL,
	elapsed_ms  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS project_files (
	run_id TEXT NOT NULL REFERENCES runs(run_id),
	name   TEXT NOT NULL,
	blake3 TEXT NOT NULL,
	PRIMARY KEY (run_id, name)
);

CREATE TABLE IF NOT EXISTS book_markers (
	run_id TEXT NOT NULL REFERENCES runs(run_id),
	book   TEXT NOT NULL,
	marker TEXT NOT NULL,
	count  INTEGER NOT NULL,
	PRIMARY KEY (run_id, book, marker)
);

CREATE TABLE IF NOT EXISTS book_punctuation (
	run_id    TEXT NOT NULL REFERENCES runs(run_id),
	book      TEXT NOT NULL,
	character TEXT NOT NULL,
	name      TEXT NOT NULL,
	count     INTEGER NOT NULL,
	PRIMARY KEY (run_id, book, character)
);

CREATE TABLE IF NOT EXISTS book_stats (
	run_id TEXT NOT NULL REFERENCES runs(run_id),
	book   TEXT NOT NULL,
	verses INTEGER NOT NULL,
	PRIMARY KEY (run_id, book)
);
`

// Store wraps the results database.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed initializes) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.NewIO("open database", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "initialize schema in %s", path)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveResult writes one project result and all its per-book tables in a
// single transaction.
func (s *Store) SaveResult(ctx context.Context, r *analysis.ProjectResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback()

	custom := 0
	if r.HasCustomSty {
		custom = 1
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO runs
		(run_id, project, path, status, messages, language, script, direction,
		 full_name, custom_sty, books, files, analyzed_at, elapsed_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Name, r.Path, r.Status.String(), strings.Join(r.Messages, "; "),
		r.Settings.LanguageCode, r.DetectedScript, r.Settings.ScriptDirection(),
		r.Settings.FullName, custom, r.BooksProcessed, r.FilesProcessed,
		r.Analyzed.UTC().Format(time.RFC3339), r.Elapsed.Milliseconds())
	if err != nil {
		return errors.Wrapf(err, "insert run %s", r.RunID)
	}

	for name, sum := range r.FileHashes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO project_files (run_id, name, blake3) VALUES (?, ?, ?)`,
			r.RunID, name, sum); err != nil {
			return errors.Wrapf(err, "insert file %s", name)
		}
	}

	for book, markers := range r.Acc.Markers {
		for marker, count := range markers {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO book_markers (run_id, book, marker, count) VALUES (?, ?, ?, ?)`,
				r.RunID, string(book), marker, count); err != nil {
				return errors.Wrapf(err, "insert markers for %s", book)
			}
		}
	}

	for name, byBook := range r.Acc.PunctByName {
		for book, count := range byBook {
			char := punctChar(r.Acc, book, name)
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO book_punctuation (run_id, book, character, name, count) VALUES (?, ?, ?, ?, ?)`,
				r.RunID, string(book), char, name, count); err != nil {
				return errors.Wrapf(err, "insert punctuation for %s", book)
			}
		}
	}

	for book, verses := range r.VerseTotals {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO book_stats (run_id, book, verses) VALUES (?, ?, ?)`,
			r.RunID, string(book), verses); err != nil {
			return errors.Wrapf(err, "insert stats for %s", book)
		}
	}

	return tx.Commit()
}

// punctChar finds a character in book whose Unicode name is name. The
// per-name view can merge several characters only when names collide,
// which Unicode rules out, so the first match is the character.
func punctChar(acc *analysis.Accumulators, book canon.BookID, name string) string {
	for r := range acc.Punct[book] {
		if textstat.RuneName(r) == name {
			return string(r)
		}
	}
	return ""
}

// RunSummary is one row of the runs table.
type RunSummary struct {
	RunID    string
	Project  string
	Status   string
	Language string
	Script   string
	Books    int
	Files    int
	Analyzed string
}

// ListRuns returns stored runs, newest first, optionally restricted to
// one project name.
func (s *Store) ListRuns(ctx context.Context, project string) ([]RunSummary, error) {
	query := `SELECT run_id, project, status, language, script, books, files, analyzed_at
		FROM runs`
	var args []any
	if project != "" {
		query += ` WHERE project = ?`
		args = append(args, project)
	}
	query += ` ORDER BY analyzed_at DESC, run_id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query runs")
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.RunID, &r.Project, &r.Status, &r.Language, &r.Script,
			&r.Books, &r.Files, &r.Analyzed); err != nil {
			return nil, errors.Wrap(err, "scan run")
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// MarkerCounts returns a run's marker table for one book, or for all
// books when book is empty, ordered by descending count then marker.
func (s *Store) MarkerCounts(ctx context.Context, runID, book string) ([]analysis.CountRow, error) {
	query := `SELECT marker, SUM(count) FROM book_markers WHERE run_id = ?`
	args := []any{runID}
	if book != "" {
		query += ` AND book = ?`
		args = append(args, book)
	}
	query += ` GROUP BY marker ORDER BY SUM(count) DESC, marker`

	return s.countRows(ctx, query, args)
}

// PunctuationCounts mirrors MarkerCounts for the punctuation-by-name view.
func (s *Store) PunctuationCounts(ctx context.Context, runID, book string) ([]analysis.CountRow, error) {
	query := `SELECT name, SUM(count) FROM book_punctuation WHERE run_id = ?`
	args := []any{runID}
	if book != "" {
		query += ` AND book = ?`
		args = append(args, book)
	}
	query += ` GROUP BY name ORDER BY SUM(count) DESC, name`

	return s.countRows(ctx, query, args)
}

func (s *Store) countRows(ctx context.Context, query string, args []any) ([]analysis.CountRow, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query counts")
	}
	defer rows.Close()

	var out []analysis.CountRow
	for rows.Next() {
		var row analysis.CountRow
		if err := rows.Scan(&row.Name, &row.Count); err != nil {
			return nil, errors.Wrap(err, "scan count row")
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// VerseTotals returns a run's per-book verse counts.
func (s *Store) VerseTotals(ctx context.Context, runID string) (map[canon.BookID]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT book, verses FROM book_stats WHERE run_id = ?`, runID)
	if err != nil {
		return nil, errors.Wrap(err, "query verse totals")
	}
	defer rows.Close()

	totals := make(map[canon.BookID]int)
	for rows.Next() {
		var book string
		var verses int
		if err := rows.Scan(&book, &verses); err != nil {
			return nil, errors.Wrap(err, "scan verse row")
		}
		totals[canon.BookID(book)] = verses
	}
	return totals, rows.Err()
}
