package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
)

// PathAllocator hands out unique final output paths. Collisions with
// existing files are resolved with a numeric suffix: clip.mp4, clip (1).mp4,
// clip (2).mp4, and so on.
//
// Allocation is a check-then-act sequence, so it is serialized two ways: a
// process-wide mutex covers concurrent workers, and a per-directory flock
// covers concurrent filmpress processes. The winning candidate is reserved
// on disk with an exclusive create; the publish rename later replaces the
// reservation atomically.
type PathAllocator struct {
	mu sync.Mutex
}

// Allocate returns a reserved final path for stem+ext inside dir. ext must
// include the leading dot.
func (a *PathAllocator) Allocate(dir, stem, ext string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	lock := flock.New(lockPathFor(dir))
	if err := lock.Lock(); err != nil {
		return "", fmt.Errorf("lock output directory: %w", err)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	for n := 0; ; n++ {
		name := stem + ext
		if n > 0 {
			name = fmt.Sprintf("%s (%d)%s", stem, n, ext)
		}
		candidate := filepath.Join(dir, name)

		f, err := os.OpenFile(candidate, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err != nil {
			if os.IsExist(err) {
				continue
			}
			return "", fmt.Errorf("reserve output path: %w", err)
		}
		if err := f.Close(); err != nil {
			_ = os.Remove(candidate)
			return "", fmt.Errorf("reserve output path: %w", err)
		}
		return candidate, nil
	}
}

// Release removes a reservation that will not be published.
func (a *PathAllocator) Release(path string) {
	_ = os.Remove(path)
}

func lockPathFor(dir string) string {
	sum := sha256.Sum256([]byte(dir))
	return filepath.Join(os.TempDir(), "filmpress-"+hex.EncodeToString(sum[:8])+".lock")
}
