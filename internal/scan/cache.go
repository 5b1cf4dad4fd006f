package scan

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const cacheSize = 8192

type cachedDigest struct {
	size   int64
	mod    time.Time
	digest string
	ok     bool
}

// DigestCache memoizes fingerprints between rescans, keyed by relative
// path and validated against size plus mtime, so a watch loop only
// re-hashes files that actually changed. A nil cache is valid and caches
// nothing.
type DigestCache struct {
	lru *lru.Cache[string, cachedDigest]
}

func NewDigestCache() (*DigestCache, error) {
	c, err := lru.New[string, cachedDigest](cacheSize)
	if err != nil {
		return nil, err
	}
	return &DigestCache{lru: c}, nil
}

func (c *DigestCache) get(rel string, size int64, mod time.Time) (digest string, present bool, hit bool) {
	if c == nil {
		return "", false, false
	}
	v, ok := c.lru.Get(rel)
	if !ok || v.size != size || !v.mod.Equal(mod) {
		return "", false, false
	}
	return v.digest, v.ok, true
}

func (c *DigestCache) put(rel string, size int64, mod time.Time, digest string, present bool) {
	if c == nil {
		return
	}
	c.lru.Add(rel, cachedDigest{size: size, mod: mod, digest: digest, ok: present})
}
