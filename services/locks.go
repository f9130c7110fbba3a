package services

import (
	"sync"

	"github.com/puzpuzpuz/xsync"
)

// userLocks serialises read-modify-write cycles on one user's state.
type userLocks struct {
	m *xsync.MapOf[string, *sync.Mutex]
}

func newUserLocks() *userLocks {
	return &userLocks{m: xsync.NewMapOf[*sync.Mutex]()}
}

func (l *userLocks) lock(userID string) func() {
	mu, _ := l.m.LoadOrStore(userID, &sync.Mutex{})
	mu.Lock()
	return mu.Unlock
}
