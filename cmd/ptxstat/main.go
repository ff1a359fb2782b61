// Command ptxstat analyzes Paratext translation projects and reports
// marker, punctuation, word, and script statistics per project.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/ParatextStat/core/canon"
	"github.com/FocuswithJustin/ParatextStat/internal/analysis"
	"github.com/FocuswithJustin/ParatextStat/internal/archive"
	"github.com/FocuswithJustin/ParatextStat/internal/logging"
	"github.com/FocuswithJustin/ParatextStat/internal/project"
	"github.com/FocuswithJustin/ParatextStat/internal/report"
	"github.com/FocuswithJustin/ParatextStat/internal/store"
)

const version = "0.1.0"

// CLI defines the command-line interface for ptxstat.
var CLI struct {
	// Global flags
	ProjectsFolder string `name:"projects" env:"PROJECTS_FOLDER" default:"." help:"Folder containing the project folders" type:"path"`
	OutputFolder   string `name:"output" env:"OUTPUT_FOLDER" default:"./output" help:"Folder for reports and the results database" type:"path"`
	BookFilter     string `name:"books" env:"BOOK_FILTER" help:"Comma-separated book IDs to restrict analysis to (e.g. GEN,MAT)"`
	MaxProjects    int    `name:"max-projects" env:"PROCESS_N_PROJECTS" help:"Analyze at most N projects (0 = all)"`
	Workers        int    `name:"workers" env:"NUM_WORKERS" help:"Worker goroutines (0 = number of CPUs)"`
	TopN           int    `name:"top-n" default:"10" help:"Entries in ranked tables and word extreme lists"`
	LogLevel       string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level"`
	LogFormat      string `name:"log-format" default:"text" enum:"text,json" help:"Log format"`

	Scan    ScanCmd    `cmd:"" help:"List the projects a run would analyze"`
	Analyze AnalyzeCmd `cmd:"" help:"Analyze projects, store results, and write reports"`
	Report  ReportCmd  `cmd:"" help:"Analyze projects and write reports without storing results"`
	Query   QueryCmd   `cmd:"" help:"Query stored results"`
	Archive ArchiveCmd `cmd:"" help:"Bundle or restore an output folder"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

func bookFilter() (canon.BookSet, error) {
	filter := canon.ParseBookSet(CLI.BookFilter)
	for id := range filter {
		if !canon.IsBookID(id) {
			return nil, fmt.Errorf("unknown book ID %q in filter", id)
		}
	}
	return filter, nil
}

func databasePath() string {
	return filepath.Join(CLI.OutputFolder, "results.db")
}

func scanProjects() ([]project.Project, canon.BookSet, error) {
	filter, err := bookFilter()
	if err != nil {
		return nil, nil, err
	}
	projects, err := project.Scan(CLI.ProjectsFolder, filter, CLI.MaxProjects)
	if err != nil {
		return nil, nil, err
	}
	return projects, filter, nil
}

func runAnalysis(ctx context.Context) ([]*analysis.ProjectResult, error) {
	projects, filter, err := scanProjects()
	if err != nil {
		return nil, err
	}

	tasks := make([]analysis.ProjectTask, 0, len(projects))
	for _, p := range projects {
		tasks = append(tasks, analysis.ProjectTask{Name: p.Name, Dir: p.Dir})
	}

	analyzer := analysis.NewAnalyzer(analysis.Options{Filter: filter, TopN: CLI.TopN})
	pool := analysis.NewPool(analyzer, CLI.Workers)

	var results []*analysis.ProjectResult
	for result := range pool.Run(ctx, tasks) {
		results = append(results, result)
	}
	return results, nil
}

func writeReports(results []*analysis.ProjectResult) error {
	w, err := report.NewWriter(CLI.OutputFolder)
	if err != nil {
		return err
	}
	for _, result := range results {
		if _, err := w.WriteProject(result); err != nil {
			return err
		}
	}
	_, err = w.WriteSummary(results)
	return err
}

// ScanCmd lists the qualifying projects without analyzing them.
type ScanCmd struct{}

func (c *ScanCmd) Run() error {
	projects, _, err := scanProjects()
	if err != nil {
		return err
	}
	for _, p := range projects {
		fmt.Println(p.Name)
	}
	return nil
}

// AnalyzeCmd runs the full pipeline: analysis, database, reports.
type AnalyzeCmd struct{}

func (c *AnalyzeCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := runAnalysis(ctx)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(CLI.OutputFolder, 0o755); err != nil {
		return err
	}
	db, err := store.Open(databasePath())
	if err != nil {
		return err
	}
	defer db.Close()
	for _, result := range results {
		if err := db.SaveResult(ctx, result); err != nil {
			return err
		}
	}

	if err := writeReports(results); err != nil {
		return err
	}

	for _, result := range results {
		fmt.Printf("%-20s %-8s books=%-3d files=%-3d words=%d\n",
			result.Name, result.Status, result.BooksProcessed,
			result.FilesProcessed, result.Summary.TotalWords)
	}
	return nil
}

// ReportCmd analyzes and writes reports without touching the database.
type ReportCmd struct{}

func (c *ReportCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := runAnalysis(ctx)
	if err != nil {
		return err
	}
	return writeReports(results)
}

// QueryCmd reads stored results back out of the database.
type QueryCmd struct {
	Runs    QueryRunsCmd    `cmd:"" help:"List stored runs"`
	Markers QueryMarkersCmd `cmd:"" help:"Show marker counts for a run"`
	Punct   QueryPunctCmd   `cmd:"" help:"Show punctuation counts for a run"`
	Verses  QueryVersesCmd  `cmd:"" help:"Show per-book verse counts for a run"`
}

// QueryRunsCmd lists stored runs.
type QueryRunsCmd struct {
	Project string `help:"Restrict to one project name"`
}

func (c *QueryRunsCmd) Run() error {
	db, err := store.Open(databasePath())
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.ListRuns(context.Background(), c.Project)
	if err != nil {
		return err
	}
	for _, r := range runs {
		fmt.Printf("%s  %-20s %-8s %-6s %-10s books=%-3d files=%-3d %s\n",
			r.RunID, r.Project, r.Status, r.Language, r.Script, r.Books, r.Files, r.Analyzed)
	}
	return nil
}

// QueryMarkersCmd shows a run's marker counts.
type QueryMarkersCmd struct {
	RunID string `arg:"" help:"Run ID"`
	Book  string `help:"Restrict to one book ID"`
}

func (c *QueryMarkersCmd) Run() error {
	return printCounts(c.RunID, c.Book, (*store.Store).MarkerCounts)
}

// QueryPunctCmd shows a run's punctuation counts by character name.
type QueryPunctCmd struct {
	RunID string `arg:"" help:"Run ID"`
	Book  string `help:"Restrict to one book ID"`
}

func (c *QueryPunctCmd) Run() error {
	return printCounts(c.RunID, c.Book, (*store.Store).PunctuationCounts)
}

func printCounts(runID, book string, query func(*store.Store, context.Context, string, string) ([]analysis.CountRow, error)) error {
	db, err := store.Open(databasePath())
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := query(db, context.Background(), runID, book)
	if err != nil {
		return err
	}
	for _, row := range rows {
		fmt.Printf("%8d  %s\n", row.Count, row.Name)
	}
	return nil
}

// QueryVersesCmd shows a run's per-book verse counts.
type QueryVersesCmd struct {
	RunID string `arg:"" help:"Run ID"`
}

func (c *QueryVersesCmd) Run() error {
	db, err := store.Open(databasePath())
	if err != nil {
		return err
	}
	defer db.Close()

	totals, err := db.VerseTotals(context.Background(), c.RunID)
	if err != nil {
		return err
	}
	books := make([]canon.BookID, 0, len(totals))
	for book := range totals {
		books = append(books, book)
	}
	canon.SortCanonical(books)
	for _, book := range books {
		fmt.Printf("%8d  %s\n", totals[book], book)
	}
	return nil
}

// ArchiveCmd bundles or restores output folders.
type ArchiveCmd struct {
	Create  ArchiveCreateCmd  `cmd:"" help:"Pack the output folder into a .tar.xz"`
	Extract ArchiveExtractCmd `cmd:"" help:"Unpack a .tar.xz into a folder"`
}

// ArchiveCreateCmd packs the output folder.
type ArchiveCreateCmd struct {
	Dest string `arg:"" optional:"" help:"Archive path (default <output>.tar.xz)" type:"path"`
}

func (c *ArchiveCreateCmd) Run() error {
	dest := c.Dest
	if dest == "" {
		dest = filepath.Clean(CLI.OutputFolder) + ".tar.xz"
	}
	return archive.CreateTarXz(CLI.OutputFolder, dest)
}

// ArchiveExtractCmd unpacks an archive.
type ArchiveExtractCmd struct {
	Src  string `arg:"" help:"Archive path" type:"path"`
	Dest string `arg:"" optional:"" help:"Destination folder (default the output folder)" type:"path"`
}

func (c *ArchiveExtractCmd) Run() error {
	dest := c.Dest
	if dest == "" {
		dest = CLI.OutputFolder
	}
	return archive.ExtractTarXz(c.Src, dest)
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("ptxstat version %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("ptxstat"),
		kong.Description("Paratext project statistics analyzer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	logging.InitLogger(logging.ParseLevel(CLI.LogLevel), logging.ParseFormat(CLI.LogFormat))

	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
