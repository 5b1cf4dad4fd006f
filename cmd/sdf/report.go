package main

import (
	"io"
	"sort"

	json "github.com/goccy/go-json"

	"github.com/apraga/scidataflow/internal/manifest"
	"github.com/apraga/scidataflow/internal/scan"
	"github.com/apraga/scidataflow/internal/status"
	"github.com/apraga/scidataflow/internal/workspace"
)

type jsonEntry struct {
	Path     string `json:"path"`
	Tracked  *bool  `json:"tracked"`
	Local    string `json:"local_status"`
	Remote   string `json:"remote_status"`
	Severity string `json:"severity"`
}

type jsonGroup struct {
	Directory string      `json:"directory"`
	Remote    string      `json:"remote,omitempty"`
	Entries   []jsonEntry `json:"entries"`
}

type jsonProblem struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

type jsonReport struct {
	Root     string        `json:"root"`
	Files    int           `json:"files"`
	Groups   []jsonGroup   `json:"groups"`
	Problems []jsonProblem `json:"problems,omitempty"`
}

// writeJSONReport renders the same reconciliation as the table report in a
// machine-readable form. Groups come out in sorted directory order, rows in
// scan order.
func writeJSONReport(w io.Writer, ws *workspace.Workspace, mf *manifest.Manifest, res *scan.Result) error {
	groups := status.GroupByDirectory(res.Entries)

	dirs := make([]string, 0, len(groups))
	for dir := range groups {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	report := jsonReport{
		Root:   ws.Root,
		Files:  len(res.Entries),
		Groups: make([]jsonGroup, 0, len(dirs)),
	}
	for _, dir := range dirs {
		group := jsonGroup{Directory: dir}
		if r, ok := mf.RemoteFor(dir); ok {
			group.Remote = r.Name
		}
		for _, e := range groups[dir] {
			group.Entries = append(group.Entries, jsonEntry{
				Path:     e.Cols[0],
				Tracked:  e.Tracked,
				Local:    e.Local.String(),
				Remote:   e.Remote.String(),
				Severity: e.Severity().String(),
			})
		}
		report.Groups = append(report.Groups, group)
	}
	for _, p := range res.Problems {
		report.Problems = append(report.Problems, jsonProblem{Path: p.Path, Error: p.Err.Error()})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
