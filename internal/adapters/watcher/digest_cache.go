package watcher

import (
	"os"
	"sync"
	"unique"

	"github.com/cespare/xxhash/v2"
)

// DigestCache remembers content digests of watched descriptors so that
// touch-only events (same bytes, new mtime) do not trigger a re-run.
type DigestCache struct {
	mu      sync.Mutex
	digests map[unique.Handle[string]]uint64
}

// NewDigestCache creates an empty digest cache.
func NewDigestCache() *DigestCache {
	return &DigestCache{
		digests: make(map[unique.Handle[string]]uint64),
	}
}

// Changed reports whether the file's content differs from the last call.
// A file that cannot be read counts as changed; the pipeline surfaces the
// real error.
func (c *DigestCache) Changed(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		c.Forget(path)
		return true
	}

	digest := xxhash.Sum64(data)
	handle := unique.Make(path)

	c.mu.Lock()
	defer c.mu.Unlock()

	prev, seen := c.digests[handle]
	c.digests[handle] = digest
	return !seen || prev != digest
}

// Forget drops the cached digest for a path.
func (c *DigestCache) Forget(path string) {
	handle := unique.Make(path)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.digests, handle)
}
