package status

import (
	"fmt"
	"path"
	"strings"

	"github.com/apraga/scidataflow/internal/remote"
)

// GroupByDirectory buckets entries by the lexical parent directory of
// their first display column. Paths are slash-separated and never touch
// the filesystem. Entries without columns, and entries whose first column
// has no directory separator, are dropped. Bucket order preserves input
// order; key order is decided at render time.
func GroupByDirectory(entries []Entry) map[string][]Entry {
	groups := make(map[string][]Entry)
	for _, e := range entries {
		if len(e.Cols) == 0 {
			continue
		}
		first := e.Cols[0]
		if !strings.Contains(first, "/") {
			continue
		}
		dir := path.Dir(first)
		groups[dir] = append(groups[dir], e)
	}
	return groups
}

// MergeRemoteNames rewrites the key of every group whose directory is
// linked to a remote as "<dir> > <remote-name>"; other keys pass through.
// Remotes are keyed one per directory, so rewrites do not collide; should
// a collision ever occur, the last write wins.
func MergeRemoteNames(groups map[string][]Entry, remotes map[string]remote.Remote) map[string][]Entry {
	if len(remotes) == 0 {
		return groups
	}
	merged := make(map[string][]Entry, len(groups))
	for dir, rows := range groups {
		key := dir
		if r, ok := remotes[dir]; ok {
			key = fmt.Sprintf("%s > %s", dir, r.Name)
		}
		merged[key] = rows
	}
	return merged
}
