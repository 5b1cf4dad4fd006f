package status

// Severity is the reporting bucket a status row lands in. It drives row
// coloring and nothing else; the mapping from observations to severities
// lives entirely in Classify.
type Severity uint8

var severityNames = []string{
	"ok",
	"untracked",
	"caution",
	"drifted",
	"unknown",
}

const (
	// SeverityOK: tracked and in agreement everywhere it is expected.
	SeverityOK Severity = iota
	// SeverityUntracked: deliberately untracked locally yet present and
	// current on the remote.
	SeverityUntracked
	// SeverityCaution: content exists on one side the other does not
	// reflect (untracked-and-unpushed, remote missing or diverged).
	SeverityCaution
	// SeverityDrifted: local content no longer matches its fingerprint.
	SeverityDrifted
	// SeverityUnknown: the combination fits no known row.
	SeverityUnknown
)

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "unknown"
}

// Classify maps one (tracked, local, remote) observation onto a severity.
// Rows are ordered and the first match wins. Every combination that fits
// no row, including status variants added later, degrades to
// SeverityUnknown; classification never fails and never panics.
func Classify(tracked *bool, local LocalStatus, remote RemoteStatus) Severity {
	tr := func(v bool) bool { return tracked != nil && *tracked == v }

	switch {
	case tr(true) && local == LocalCurrent && (remote == RemoteCurrent || remote == RemoteNone):
		return SeverityOK
	case tr(false) && local == LocalCurrent && remote == RemoteCurrent:
		return SeverityUntracked
	case tr(false) && local == LocalCurrent && (remote == RemoteNone || remote == RemoteNotExists):
		return SeverityCaution
	case tracked != nil && local == LocalModified:
		return SeverityDrifted
	case tr(true) && local == LocalCurrent && (remote == RemoteNotExists || remote == RemoteMD5Mismatch):
		return SeverityCaution
	case tr(false) && local == LocalCurrent:
		return SeverityCaution
	case tracked == nil && local == LocalCurrent && remote == RemoteNone:
		return SeverityOK
	}
	return SeverityUnknown
}
