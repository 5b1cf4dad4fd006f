package scan

import (
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/apraga/scidataflow/internal/manifest"
)

// IgnoreFile is the optional per-project ignore list at the workspace
// root, gitignore syntax.
const IgnoreFile = ".sdfignore"

var defaultIgnoreLines = []string{
	".scidataflow/",
	IgnoreFile,
	manifest.Filename,
	".git/",
	".DS_Store",
	"Thumbs.db",
	"*.tmp",
	"*.swp",
	"__pycache__/",
	".ipynb_checkpoints/",
}

type IgnoreList struct {
	ignore *gitignore.GitIgnore
}

// NewIgnoreList compiles the built-in rules plus the project's ignore
// file when root has one.
func NewIgnoreList(root string) *IgnoreList {
	lines := append([]string{}, defaultIgnoreLines...)
	if data, err := os.ReadFile(filepath.Join(root, IgnoreFile)); err == nil {
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			lines = append(lines, line)
		}
	}
	return &IgnoreList{ignore: gitignore.CompileIgnoreLines(lines...)}
}

// ShouldIgnore matches a slash-form project-relative path. Directory
// paths carry a trailing slash.
func (l *IgnoreList) ShouldIgnore(relPath string) bool {
	return l.ignore.MatchesPath(relPath)
}
