// Package state holds the in-memory checklist shared by every surface.
//
// The tree is loaded once and then mutated in place. Persistence and
// rendering react to explicit domain.Change values published through Notify
// instead of observing the tree.
package state

import (
	"fmt"
	"sort"
	"sync"

	"github.com/runoshun/tick/internal/domain"
)

// Ensure Store implements the ports it serves.
var (
	_ domain.ChecklistRepository = (*Store)(nil)
	_ domain.ChangeNotifier      = (*Store)(nil)
	_ domain.ChecklistReplacer   = (*Store)(nil)
)

// Listener receives published changes.
type Listener func(domain.Change)

// Store wraps a repository with a shared in-memory checklist.
// Fields are ordered to minimize memory padding.
type Store struct {
	repo      domain.ChecklistRepository
	logger    domain.Logger
	checklist *domain.Checklist
	listeners map[int]Listener
	nextID    int
	mu        sync.Mutex // guards the fields above
	exclusive sync.Mutex // serializes Exclusive callers
}

// New creates a Store backed by repo.
func New(repo domain.ChecklistRepository, logger domain.Logger) *Store {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Store{
		repo:      repo,
		logger:    logger,
		listeners: make(map[int]Listener),
	}
}

// Load returns the shared checklist, reading the backend on first use.
func (s *Store) Load() (*domain.Checklist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.checklist != nil {
		return s.checklist, nil
	}
	c, err := s.repo.Load()
	if err != nil {
		return nil, err
	}
	s.checklist = c
	return c, nil
}

// Save persists c and makes it the shared checklist.
// On failure the cache is dropped so the next Load rereads the backend.
func (s *Store) Save(c *domain.Checklist) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Save(c); err != nil {
		s.checklist = nil
		return err
	}
	s.checklist = c
	return nil
}

// Replace swaps the whole tree, persists it and publishes a replace change.
func (s *Store) Replace(c *domain.Checklist) (domain.Change, error) {
	if c == nil {
		c = &domain.Checklist{}
	}
	if err := s.Save(c); err != nil {
		return domain.Change{}, err
	}
	change := domain.Change{Kind: domain.ChangeReplace, Affected: c.CountAll().Total}
	s.Notify(change)
	return change, nil
}

// Reload drops the shared checklist so the next Load rereads the backend.
func (s *Store) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checklist = nil
}

// Subscribe registers fn and returns a function that removes it.
// Listeners run in subscription order.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.listeners, id)
		})
	}
}

// Notify delivers change to every listener. A panicking listener is logged
// and the remaining listeners still run.
func (s *Store) Notify(change domain.Change) {
	for _, fn := range s.snapshot() {
		s.deliver(fn, change)
	}
}

// Exclusive runs fn while holding the store's serialization lock.
// Concurrent callers, such as HTTP handlers, use it so that a
// load-mutate-save sequence is never interleaved.
func (s *Store) Exclusive(fn func()) {
	s.exclusive.Lock()
	defer s.exclusive.Unlock()
	fn()
}

func (s *Store) snapshot() []Listener {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]Listener, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.listeners[id])
	}
	return out
}

func (s *Store) deliver(fn Listener, change domain.Change) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("state", fmt.Sprintf("listener panicked on %s: %v", change, r))
		}
	}()
	fn(change)
}
