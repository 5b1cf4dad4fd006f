// Package status models the reconciled state of project data files and
// renders it as a grouped, aligned, color-coded report.
package status

// LocalStatus describes how a file's content on disk compares to its
// registered fingerprint.
type LocalStatus uint8

var localStatusNames = []string{
	"current",
	"modified",
	"missing",
}

const (
	LocalCurrent LocalStatus = iota
	LocalModified
	LocalMissing
)

func (s LocalStatus) String() string {
	if int(s) < len(localStatusNames) {
		return localStatusNames[s]
	}
	return "unknown"
}

// RemoteStatus describes how a file relates to the remote its directory is
// linked to. RemoteNone means no remote information applies to the row.
type RemoteStatus uint8

var remoteStatusNames = []string{
	"none",
	"current",
	"not-exists",
	"md5-mismatch",
}

const (
	RemoteNone RemoteStatus = iota
	RemoteCurrent
	RemoteNotExists
	RemoteMD5Mismatch
)

func (s RemoteStatus) String() string {
	if int(s) < len(remoteStatusNames) {
		return remoteStatusNames[s]
	}
	return "unknown"
}

// Entry is one reconciled status row.
//
// Tracked is tri-state: true when the file is under local tracking, false
// when it is known but untracked, nil when trackedness does not apply to
// the row's context. Cols holds the display cells; nil Cols means the
// entry has nothing to show and grouping drops it. Column i carries the
// same field across every entry of a report (path, status word, size,
// modification time).
type Entry struct {
	Tracked *bool
	Local   LocalStatus
	Remote  RemoteStatus
	Cols    []string
}

// Severity runs the entry through the classification table.
func (e Entry) Severity() Severity {
	return Classify(e.Tracked, e.Local, e.Remote)
}
