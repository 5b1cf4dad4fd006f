// Package remote carries descriptors of the external services project
// directories are linked to, and point-in-time listings of their
// contents. Nothing here talks to a service; listings are produced
// out-of-band and consumed as snapshots.
package remote

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/apraga/scidataflow/internal/utils"
)

// Supported service labels. They identify where a directory's data lives;
// the tool only ever displays them.
const (
	ServiceZenodo   = "zenodo"
	ServiceFigshare = "figshare"
	ServiceDryad    = "dryad"
	ServiceS3       = "s3"
)

// Remote names an external location a project directory is linked to.
type Remote struct {
	Name    string `yaml:"name"`
	Service string `yaml:"service"`
}

func (r Remote) String() string {
	if r.Service == "" {
		return r.Name
	}
	return fmt.Sprintf("%s (%s)", r.Name, r.Service)
}

// Listing is a snapshot of a remote's contents: project-relative path to
// MD5 digest. An empty digest means the remote holds the path but its
// fingerprint is unknown.
type Listing map[string]string

// LoadListing reads a listing snapshot from a YAML file.
func LoadListing(path string) (Listing, error) {
	data, err := utils.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read remote listing: %w", err)
	}
	var l Listing
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse remote listing %s: %w", path, err)
	}
	if l == nil {
		l = Listing{}
	}
	return l, nil
}

// Has reports whether the listing contains the path.
func (l Listing) Has(path string) bool {
	_, ok := l[path]
	return ok
}

// Digest returns the recorded digest for the path, empty when absent.
func (l Listing) Digest(path string) string {
	return l[path]
}
