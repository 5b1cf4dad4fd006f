// Package scan walks a project tree, fingerprints its data files and
// reconciles them against the manifest and an optional remote listing
// into renderable status entries.
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/sync/errgroup"

	"github.com/apraga/scidataflow/internal/fingerprint"
	"github.com/apraga/scidataflow/internal/manifest"
	"github.com/apraga/scidataflow/internal/remote"
	"github.com/apraga/scidataflow/internal/status"
	"github.com/apraga/scidataflow/internal/workspace"
)

const defaultWorkers = 8

// Options tunes a single scan pass.
type Options struct {
	// Workers caps concurrent fingerprint computations. Zero or negative
	// selects the default of 8.
	Workers int
	// Pattern filters entries to project-relative paths matching a
	// doublestar glob. Empty keeps everything.
	Pattern string
	// Listing is a snapshot of remote contents; without one every entry
	// carries RemoteNone.
	Listing remote.Listing
}

func (o Options) workers() int {
	if o.Workers <= 0 {
		return defaultWorkers
	}
	return o.Workers
}

// Problem is a file the scan could not read. Problems never abort a
// scan; the caller decides how to surface them.
type Problem struct {
	Path string
	Err  error
}

// Result is one scan pass over a project.
type Result struct {
	Entries  []status.Entry
	Problems []Problem
}

type candidate struct {
	rel  string
	abs  string
	size int64
	mod  time.Time
}

// Scanner builds status entries for a workspace.
type Scanner struct {
	ws     *workspace.Workspace
	mf     *manifest.Manifest
	ignore *IgnoreList
	cache  *DigestCache
}

// NewScanner wires a scanner. cache may be nil; pass one to make
// repeated scans skip unchanged files.
func NewScanner(ws *workspace.Workspace, mf *manifest.Manifest, ignore *IgnoreList, cache *DigestCache) *Scanner {
	if ignore == nil {
		ignore = NewIgnoreList(ws.Root)
	}
	return &Scanner{ws: ws, mf: mf, ignore: ignore, cache: cache}
}

// Scan walks the tree once and reconciles every file it finds, plus
// every registered file it does not find, into status entries. Entry
// order is walk order with manifest-only files appended in registration
// order.
func (s *Scanner) Scan(ctx context.Context, opts Options) (*Result, error) {
	tstart := time.Now()

	candidates, seen, err := s.collect(ctx, opts.Pattern)
	if err != nil {
		return nil, err
	}

	digests := make([]string, len(candidates))
	present := make([]bool, len(candidates))
	readErrs := make([]error, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, c := range candidates {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if digest, ok, hit := s.cache.get(c.rel, c.size, c.mod); hit {
				digests[i], present[i] = digest, ok
				return nil
			}

			digest, ok, err := fingerprint.File(c.abs)
			if err != nil {
				readErrs[i] = err
				return nil
			}
			digests[i], present[i] = digest, ok
			s.cache.put(c.rel, c.size, c.mod, digest, ok)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{}
	for i, c := range candidates {
		if readErrs[i] != nil {
			result.Problems = append(result.Problems, Problem{Path: c.rel, Err: readErrs[i]})
			continue
		}
		result.Entries = append(result.Entries, s.buildEntry(c, digests[i], present[i], opts.Listing))
	}
	result.Entries = append(result.Entries, s.missingEntries(seen, opts)...)

	slog.Debug("scan done",
		"files", len(result.Entries),
		"problems", len(result.Problems),
		"took", time.Since(tstart))
	return result, nil
}

// collect walks the workspace and gathers candidate files in walk order,
// plus the set of relative paths encountered.
func (s *Scanner) collect(ctx context.Context, pattern string) ([]candidate, mapset.Set[string], error) {
	var candidates []candidate
	seen := mapset.NewSet[string]()

	walkFn := func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk error: %w", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rel, err := s.ws.Rel(p)
		if err != nil {
			return err
		}

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if s.ignore.ShouldIgnore(rel + "/") {
				return fs.SkipDir
			}
			return nil
		}

		if s.ignore.ShouldIgnore(rel) {
			return nil
		}
		seen.Add(rel)

		if pattern != "" {
			match, merr := doublestar.Match(pattern, rel)
			if merr != nil {
				return fmt.Errorf("bad pattern %q: %w", pattern, merr)
			}
			if !match {
				return nil
			}
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		candidates = append(candidates, candidate{
			rel:  rel,
			abs:  p,
			size: info.Size(),
			mod:  info.ModTime(),
		})
		return nil
	}

	if err := filepath.WalkDir(s.ws.Root, walkFn); err != nil {
		return nil, nil, err
	}
	return candidates, seen, nil
}

func (s *Scanner) buildEntry(c candidate, digest string, present bool, listing remote.Listing) status.Entry {
	rec, known := s.mf.Lookup(c.rel)

	var tracked bool
	var local status.LocalStatus
	word := ""
	if known {
		tracked = rec.Tracked
		local = localStatusFor(rec.MD5, digest, present)
		word = local.String()
	} else {
		tracked = false
		local = status.LocalCurrent
		word = "untracked"
	}

	return status.Entry{
		Tracked: &tracked,
		Local:   local,
		Remote:  s.remoteStatusFor(c.rel, digest, listing),
		Cols: []string{
			c.rel,
			word,
			status.FormatSize(uint64(c.size)),
			status.FormatModTime(c.mod),
		},
	}
}

// missingEntries reports registered files the walk never met.
func (s *Scanner) missingEntries(seen mapset.Set[string], opts Options) []status.Entry {
	var entries []status.Entry
	for i := range s.mf.Files {
		rec := &s.mf.Files[i]
		if seen.Contains(rec.Path) || s.ignore.ShouldIgnore(rec.Path) {
			continue
		}
		if opts.Pattern != "" {
			if match, err := doublestar.Match(opts.Pattern, rec.Path); err != nil || !match {
				continue
			}
		}

		tracked := rec.Tracked
		entries = append(entries, status.Entry{
			Tracked: &tracked,
			Local:   status.LocalMissing,
			Remote:  s.remoteStatusFor(rec.Path, rec.MD5, opts.Listing),
			Cols:    []string{rec.Path, status.LocalMissing.String(), "-", "-"},
		})
	}
	return entries
}

// localStatusFor compares the registered fingerprint with the computed
// one. An absent digest on either side only matches an absent digest on
// the other.
func localStatusFor(expected, digest string, present bool) status.LocalStatus {
	if !present {
		if expected == "" {
			return status.LocalCurrent
		}
		return status.LocalModified
	}
	if expected == digest {
		return status.LocalCurrent
	}
	return status.LocalModified
}

// remoteStatusFor consults the listing only when the file's directory is
// linked to a remote. A listed path with an empty digest counts as
// current; such listings degrade to existence checks.
func (s *Scanner) remoteStatusFor(rel, digest string, listing remote.Listing) status.RemoteStatus {
	if listing == nil {
		return status.RemoteNone
	}
	if _, ok := s.mf.RemoteFor(path.Dir(rel)); !ok {
		return status.RemoteNone
	}
	if !listing.Has(rel) {
		return status.RemoteNotExists
	}
	remoteDigest := listing.Digest(rel)
	if remoteDigest == "" || remoteDigest == digest {
		return status.RemoteCurrent
	}
	return status.RemoteMD5Mismatch
}
