// Package manifest reads a project's data registry. The manifest is an
// input: registration and fingerprint updates belong to external tooling,
// so there is no write side here.
package manifest

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"gopkg.in/yaml.v3"

	"github.com/apraga/scidataflow/internal/remote"
	"github.com/apraga/scidataflow/internal/utils"
)

// Filename is the manifest document at a project's root. Its presence is
// what makes a directory tree a project.
const Filename = "data_manifest.yml"

var md5Pattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

// FileRecord registers one data file: its project-relative path, whether
// it is tracked, and the fingerprint captured when it was registered. An
// empty MD5 means the file was registered without content.
type FileRecord struct {
	Path     string    `yaml:"path"`
	Tracked  bool      `yaml:"tracked"`
	MD5      string    `yaml:"md5,omitempty"`
	Size     uint64    `yaml:"size,omitempty"`
	Modified time.Time `yaml:"modified,omitempty"`
}

// Manifest is a project's data registry: the registered files plus the
// remotes its directories are linked to.
type Manifest struct {
	Files   []FileRecord             `yaml:"files"`
	Remotes map[string]remote.Remote `yaml:"remotes,omitempty"`

	byPath map[string]*FileRecord
}

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := utils.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}

	m.byPath = make(map[string]*FileRecord, len(m.Files))
	for i := range m.Files {
		m.byPath[m.Files[i].Path] = &m.Files[i]
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	seen := make(map[string]struct{}, len(m.Files))
	for _, f := range m.Files {
		if err := checkRelPath(f.Path); err != nil {
			return err
		}
		if _, dup := seen[f.Path]; dup {
			return fmt.Errorf("duplicate file entry %q", f.Path)
		}
		seen[f.Path] = struct{}{}

		if f.MD5 != "" && !md5Pattern.MatchString(f.MD5) {
			return fmt.Errorf("malformed md5 for %q: %q", f.Path, f.MD5)
		}
	}

	for dir, r := range m.Remotes {
		if err := checkRelPath(dir); err != nil {
			return err
		}
		if r.Name == "" {
			return fmt.Errorf("remote for %q has no name", dir)
		}
	}
	return nil
}

func checkRelPath(p string) error {
	switch {
	case p == "":
		return fmt.Errorf("empty path")
	case strings.HasPrefix(p, "/"):
		return fmt.Errorf("absolute path %q", p)
	}
	for _, part := range strings.Split(p, "/") {
		if part == ".." {
			return fmt.Errorf("path %q escapes the project", p)
		}
	}
	return nil
}

// Lookup returns the record registered under the project-relative path.
func (m *Manifest) Lookup(rel string) (*FileRecord, bool) {
	rec, ok := m.byPath[rel]
	return rec, ok
}

// TrackedPaths returns the set of paths registered with tracking on.
func (m *Manifest) TrackedPaths() mapset.Set[string] {
	tracked := mapset.NewSet[string]()
	for _, f := range m.Files {
		if f.Tracked {
			tracked.Add(f.Path)
		}
	}
	return tracked
}

// RemoteFor returns the remote linked to the slash-form directory, if any.
func (m *Manifest) RemoteFor(dir string) (remote.Remote, bool) {
	r, ok := m.Remotes[dir]
	return r, ok
}
