package migrate

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"phototitles/internal/logging"
	"phototitles/internal/textutil"
)

type libraryLocks []*flock.Flock

// acquireLocks takes an exclusive lock per library path. On failure any lock
// already taken is released.
func acquireLocks(dir string, paths ...string) (libraryLocks, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	var locks libraryLocks
	for _, path := range paths {
		lock := flock.New(filepath.Join(dir, textutil.PathToken(path)+".lock"))
		ok, err := lock.TryLock()
		if err != nil {
			locks.release(nil)
			return nil, fmt.Errorf("acquire lock for %s: %w", path, err)
		}
		if !ok {
			locks.release(nil)
			return nil, fmt.Errorf("%w: %s", ErrLibraryBusy, path)
		}
		locks = append(locks, lock)
	}
	return locks, nil
}

func (l libraryLocks) release(logger *slog.Logger) {
	for _, lock := range l {
		if err := lock.Unlock(); err != nil && logger != nil {
			logger.Warn("failed to release library lock", logging.String("lock", lock.Path()), logging.Error(err))
		}
	}
}
