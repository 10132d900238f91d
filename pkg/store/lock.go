package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/sirupsen/logrus"
)

const (
	lockFile  = "sidekick.lock"
	lockRetry = 20 * time.Millisecond
)

// Locker is implemented by persistence that can exclude other writers,
// including other processes, for the length of a read-modify-write.
type Locker interface {
	Lock(ctx context.Context) (unlock func(), err error)
}

// Lock takes an advisory lock on the journal directory, waiting until it is
// free or ctx is done.
func (p *persistence) Lock(ctx context.Context) (func(), error) {
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	fl := flock.New(filepath.Join(p.basePath, lockFile))
	ok, err := fl.TryLockContext(ctx, lockRetry)
	if err != nil {
		return nil, fmt.Errorf("store: lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("store: lock %s not acquired", fl.Path())
	}
	return func() {
		if err := fl.Unlock(); err != nil {
			logrus.WithField("component", "store").WithError(err).Warn("unlock failed")
		}
	}, nil
}
