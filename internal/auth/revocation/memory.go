package revocation

import (
	"context"
	"sync"
	"time"
)

// MemoryList is a process-local List for single-node setups and
// tests.
type MemoryList struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func NewMemoryList() *MemoryList {
	return &MemoryList{entries: make(map[string]time.Time)}
}

func (l *MemoryList) Add(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[digest(token)] = time.Now().Add(ttl)
	return nil
}

func (l *MemoryList) Contains(_ context.Context, token string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	exp, ok := l.entries[digest(token)]
	if !ok {
		return false, nil
	}
	if time.Now().After(exp) {
		delete(l.entries, digest(token))
		return false, nil
	}
	return true, nil
}
