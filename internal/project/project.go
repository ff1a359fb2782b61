// Package project discovers Paratext project folders and decides which of
// them a run should analyze.
package project

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/FocuswithJustin/ParatextStat/core/canon"
	"github.com/FocuswithJustin/ParatextStat/core/errors"
	"github.com/FocuswithJustin/ParatextStat/internal/logging"
	"github.com/FocuswithJustin/ParatextStat/internal/settings"
)

// Project is one discovered project folder.
type Project struct {
	Name string
	Dir  string
}

// dateSuffix matches backup-style folder names such as NAME_2023_05_01
// or NAME_20230501.
var dateSuffix = regexp.MustCompile(`_(\d{4})_?(\d{2})_?(\d{2})$`)

// splitDateSuffix returns the base name and a sortable date key. Folders
// without a date suffix sort before every dated copy of the same base.
func splitDateSuffix(name string) (base, date string) {
	m := dateSuffix.FindStringSubmatch(name)
	if m == nil {
		return name, ""
	}
	return name[:len(name)-len(m[0])], m[1] + m[2] + m[3]
}

// Discover lists the project folders directly under root: directories
// that carry a Settings.xml and at least one scripture file. The result
// is sorted by name.
func Discover(root string) ([]Project, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.NewIO("read dir", root, err)
	}

	var projects []Project
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		if !isProjectDir(dir) {
			continue
		}
		projects = append(projects, Project{Name: entry.Name(), Dir: dir})
	}
	if len(projects) == 0 {
		return nil, errors.Wrapf(errors.ErrNoProjects, "no projects under %s", root)
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].Name < projects[j].Name })
	return projects, nil
}

func isProjectDir(dir string) bool {
	if _, err := os.Stat(filepath.Join(dir, settings.SettingsFileName)); err != nil {
		return false
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".sfm", ".usfm":
			return true
		}
	}
	return false
}

// Deduplicate collapses dated backup copies of the same project down to
// the one with the latest date. Input order is preserved for the
// survivors.
func Deduplicate(projects []Project) []Project {
	best := make(map[string]int, len(projects))
	bestDate := make(map[string]string, len(projects))
	for i, p := range projects {
		base, date := splitDateSuffix(p.Name)
		prev, ok := best[base]
		if !ok || date > bestDate[base] {
			if ok {
				logging.ProjectEvent("superseded", projects[prev].Name, "by", p.Name)
			}
			best[base] = i
			bestDate[base] = date
		}
	}

	kept := make([]Project, 0, len(best))
	for i, p := range projects {
		base, _ := splitDateSuffix(p.Name)
		if best[base] == i {
			kept = append(kept, p)
		}
	}
	return kept
}

// Qualifies reports whether a project carries the expected file for
// every book the filter names. A nil filter admits every project.
// Projects whose settings cannot be read qualify so the analyzer can
// report the problem.
func Qualifies(p Project, filter canon.BookSet) bool {
	if filter == nil {
		return true
	}
	snap, err := settings.Load(p.Dir)
	if err != nil {
		return true
	}
	for id := range filter {
		name, err := snap.BookFileName(id)
		if err != nil {
			return false
		}
		if _, err := os.Stat(filepath.Join(p.Dir, name)); err != nil {
			return false
		}
	}
	return true
}

// Scan discovers, deduplicates, filters, and limits the projects under
// root. A limit of zero keeps them all.
func Scan(root string, filter canon.BookSet, limit int) ([]Project, error) {
	projects, err := Discover(root)
	if err != nil {
		return nil, err
	}
	projects = Deduplicate(projects)

	if filter != nil {
		kept := projects[:0]
		for _, p := range projects {
			if Qualifies(p, filter) {
				kept = append(kept, p)
			} else {
				logging.ProjectEvent("skipped", p.Name, "reason", "no filtered books")
			}
		}
		projects = kept
	}

	if limit > 0 && len(projects) > limit {
		projects = projects[:limit]
	}
	if len(projects) == 0 {
		return nil, errors.Wrapf(errors.ErrNoProjects, "no qualifying projects under %s", root)
	}
	return projects, nil
}
