package provider

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/obelus-labs/veritas-core/internal/fsutil"
)

// diskCache caches fetched filing text to disk keyed by a hash of its
// source URL, avoiding re-downloading the same filing across runs
// (spec.md §4.3 item 5).
type diskCache struct {
	dir string
}

func newDiskCache(dir string) *diskCache {
	return &diskCache{dir: dir}
}

func (c *diskCache) key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}

func (c *diskCache) get(url string) (string, bool) {
	if c.dir == "" {
		return "", false
	}
	raw, err := os.ReadFile(filepath.Join(c.dir, c.key(url)+".txt"))
	if err != nil {
		return "", false
	}
	return string(raw), true
}

func (c *diskCache) put(url, text string) {
	if c.dir == "" {
		return
	}
	_ = fsutil.WriteAtomic(filepath.Join(c.dir, c.key(url)+".txt"), []byte(text), 0o644)
}
