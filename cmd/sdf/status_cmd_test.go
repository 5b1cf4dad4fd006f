package main

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apraga/scidataflow/internal/workspace"
)

func digestOf(content string) string {
	sum := md5.Sum([]byte(content))
	return hex.EncodeToString(sum[:])
}

func writeProjectFile(t *testing.T, root, rel, content string) {
	t.Helper()
	abs := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755))
	require.NoError(t, os.WriteFile(abs, []byte(content), 0o644))
}

// newStatusProject lays out a project with one registered file in sync,
// one untracked file and one registered file missing from disk.
func newStatusProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeProjectFile(t, root, "data/a.tsv", "a\t1\n")
	writeProjectFile(t, root, "data/b.tsv", "b\t2\n")

	doc := fmt.Sprintf(`files:
  - path: data/a.tsv
    tracked: true
    md5: %s
  - path: data/gone.tsv
    tracked: true
    md5: %s
remotes:
  data:
    name: zenodo-1234
    service: zenodo
`, digestOf("a\t1\n"), digestOf("gone"))
	writeProjectFile(t, root, "data_manifest.yml", doc)
	return root
}

func runStatus(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := &cobra.Command{Use: "sdf"}
	root.AddCommand(newStatusCmd())

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"status"}, args...))

	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestStatusCommand_Report(t *testing.T) {
	root := newStatusProject(t)

	out, _, err := runStatus(t, "--dir", root)
	require.NoError(t, err)

	assert.Contains(t, out, "Project data status:\n")
	assert.Contains(t, out, "3 data files registered.\n")
	assert.Contains(t, out, "[data > zenodo-1234]\n")
	assert.Contains(t, out, "data/a.tsv")
	assert.Contains(t, out, "current")
	assert.Contains(t, out, "data/b.tsv")
	assert.Contains(t, out, "untracked")
	assert.Contains(t, out, "data/gone.tsv")
	assert.Contains(t, out, "missing")

	// buffers are not terminals, so nothing is styled
	assert.NotContains(t, out, "\x1b[")
}

func TestStatusCommand_Pattern(t *testing.T) {
	root := newStatusProject(t)

	out, _, err := runStatus(t, "--dir", root, "data/a.*")
	require.NoError(t, err)

	assert.Contains(t, out, "1 data file registered.\n")
	assert.Contains(t, out, "data/a.tsv")
	assert.NotContains(t, out, "data/b.tsv")
	assert.NotContains(t, out, "data/gone.tsv")
}

func TestStatusCommand_JSON(t *testing.T) {
	root := newStatusProject(t)

	out, _, err := runStatus(t, "--dir", root, "--json")
	require.NoError(t, err)

	var report jsonReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	assert.Equal(t, 3, report.Files)
	require.Len(t, report.Groups, 1)
	assert.Equal(t, "data", report.Groups[0].Directory)
	assert.Equal(t, "zenodo-1234", report.Groups[0].Remote)

	bySeverity := make(map[string]string)
	for _, e := range report.Groups[0].Entries {
		bySeverity[e.Path] = e.Severity
	}
	assert.Equal(t, "ok", bySeverity["data/a.tsv"])
	assert.Equal(t, "caution", bySeverity["data/b.tsv"])
	assert.Equal(t, "unknown", bySeverity["data/gone.tsv"])
}

func TestStatusCommand_RemoteListing(t *testing.T) {
	root := newStatusProject(t)
	listing := fmt.Sprintf("data/a.tsv: %s\n", digestOf("a\t1\n"))
	// the snapshot lives outside the project so the scan does not see it
	listingPath := filepath.Join(t.TempDir(), "listing.yml")
	require.NoError(t, os.WriteFile(listingPath, []byte(listing), 0o644))

	out, _, err := runStatus(t, "--dir", root, "--remote-listing", listingPath, "--json")
	require.NoError(t, err)

	var report jsonReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Groups, 1)

	byRemote := make(map[string]string)
	for _, e := range report.Groups[0].Entries {
		byRemote[e.Path] = e.Remote
	}
	assert.Equal(t, "current", byRemote["data/a.tsv"])
	assert.Equal(t, "not-exists", byRemote["data/b.tsv"])
}

func TestStatusCommand_ReadProblems(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation needs privileges on windows")
	}

	root := newStatusProject(t)
	// a symlink to a directory opens but cannot be read as content
	require.NoError(t, os.Symlink(t.TempDir(), filepath.Join(root, "data", "bad.tsv")))

	out, errOut, err := runStatus(t, "--dir", root)
	require.NoError(t, err)

	assert.Contains(t, out, "3 data files registered.\n")
	assert.NotContains(t, out, "data/bad.tsv")
	assert.Contains(t, errOut, "could not read file data/bad.tsv")

	out, _, err = runStatus(t, "--dir", root, "--json")
	require.NoError(t, err)

	var report jsonReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Problems, 1)
	assert.Equal(t, "data/bad.tsv", report.Problems[0].Path)
	assert.NotEmpty(t, report.Problems[0].Error)
}

func TestStatusCommand_NoProject(t *testing.T) {
	_, _, err := runStatus(t, "--dir", t.TempDir())
	require.ErrorIs(t, err, workspace.ErrNoProject)
}

func TestStatusCommand_BadPattern(t *testing.T) {
	root := newStatusProject(t)

	_, _, err := runStatus(t, "--dir", root, "data/[")
	require.Error(t, err)
}

func TestStatusCommand_RejectsZeroSpacing(t *testing.T) {
	root := newStatusProject(t)

	_, _, err := runStatus(t, "--dir", root, "--spacing", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spacing")
}
