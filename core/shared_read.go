package core

import (
	"fmt"
	"net/http"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	"golang.org/x/sync/singleflight"
)

// sharedReads deduplicates concurrent reads by key. The group forgets a key
// before it delivers the outcome, so a read issued after settlement always
// starts a new call. waiting counts callers currently blocked on a key.
type sharedReads struct {
	group   singleflight.Group
	mu      sync.Mutex
	waiting map[string]int
}

func newSharedReads() *sharedReads {
	return &sharedReads{waiting: map[string]int{}}
}

func (s *sharedReads) enter(key string) {
	s.mu.Lock()
	s.waiting[key]++
	s.mu.Unlock()
}

func (s *sharedReads) leave(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.waiting[key] <= 1 {
		delete(s.waiting, key)
		return
	}
	s.waiting[key]--
}

func (s *sharedReads) waiters(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.waiting[key]
}

// panicFailure turns a panic raised while dispatching a shared read into a
// failure delivered to every waiter.
func panicFailure(recovered any, key string) error {
	return clientError(
		"core: shared read panicked",
		goerrors.CategoryInternal,
		http.StatusInternalServerError,
		ClientErrorInternal,
		map[string]any{"path": key, "panic": fmt.Sprint(recovered)},
	)
}
