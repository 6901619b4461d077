package appointment

import "context"

// Locker provides the per-practitioner-day mutual exclusion held around
// the booking re-check and insert.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
