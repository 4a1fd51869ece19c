package sessiondb

import (
	"strings"
	"time"

	"github.com/gmshoot/shotvision/internal/monitoring"
	"github.com/gmshoot/shotvision/internal/timeutil"
)

// isSQLiteBusy reports whether the error looks like sqlite lock contention.
func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

// retryOnBusy runs fn, retrying with backoff while it fails with a busy
// error. Non-busy errors fail immediately.
func retryOnBusy(clock timeutil.Clock, fn func() error) error {
	const maxAttempts = 5
	backoff := 10 * time.Millisecond

	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err = fn(); err == nil || !isSQLiteBusy(err) {
			return err
		}
		monitoring.Debugf("[sessiondb] database busy, retrying in %v", backoff)
		clock.Sleep(backoff)
		backoff *= 2
	}
	return err
}
