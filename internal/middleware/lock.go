package middleware

import (
	"sync"
	"time"

	tele "gopkg.in/telebot.v3"
)

type userLock struct {
	mu       sync.Mutex
	refs     int
	lastUsed time.Time
}

// UserLocks hands out one mutex per Telegram user
type UserLocks struct {
	mu    sync.Mutex
	locks map[int64]*userLock
	now   func() time.Time
}

// NewUserLocks creates an empty lock table
func NewUserLocks() *UserLocks {
	return &UserLocks{
		locks: make(map[int64]*userLock),
		now:   time.Now,
	}
}

// Lock blocks until the user's lock is held and returns its unlock func
func (l *UserLocks) Lock(tgID int64) func() {
	l.mu.Lock()
	lock, exists := l.locks[tgID]
	if !exists {
		lock = &userLock{}
		l.locks[tgID] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()

		l.mu.Lock()
		lock.refs--
		lock.lastUsed = l.now()
		l.mu.Unlock()
	}
}

// Prune drops the locks nobody holds or waits for that were last
// released more than maxAge ago. It returns the number dropped.
func (l *UserLocks) Prune(maxAge time.Duration) int {
	cutoff := l.now().Add(-maxAge)

	l.mu.Lock()
	defer l.mu.Unlock()

	pruned := 0
	for tgID, lock := range l.locks {
		if lock.refs == 0 && lock.lastUsed.Before(cutoff) {
			delete(l.locks, tgID)
			pruned++
		}
	}
	return pruned
}

// Size returns the number of tracked users
func (l *UserLocks) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

// Serialize processes the updates of one user one at a time.
// Updates of different users still run concurrently. Updates of one user
// waiting on the lock are not guaranteed to run in arrival order.
func Serialize(locks *UserLocks) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return next(c)
			}

			unlock := locks.Lock(sender.ID)
			defer unlock()

			return next(c)
		}
	}
}
