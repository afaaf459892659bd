// Package filestore keeps the checklist as a single JSON or YAML file.
package filestore

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/runoshun/tick/internal/domain"
	"github.com/runoshun/tick/internal/infra/treecodec"
)

// Ensure Store implements the repository ports.
var (
	_ domain.ChecklistRepository = (*Store)(nil)
	_ domain.StoreInitializer    = (*Store)(nil)
)

// Store implements domain.ChecklistRepository using one document file.
// The format follows the file extension: .json is written as JSON,
// anything else as YAML.
type Store struct {
	path     string
	lockPath string
	format   domain.Format
}

// New creates a new Store for the given file path.
// The file does not need to exist until Load is called.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
		format:   domain.FormatForPath(path),
	}
}

// Path returns the document path.
func (s *Store) Path() string {
	return s.path
}

// Load reads and classifies the document.
func (s *Store) Load() (*domain.Checklist, error) {
	if !s.IsInitialized() {
		return nil, domain.ErrNotInitialized
	}
	var checklist *domain.Checklist
	err := s.withLock(syscall.LOCK_SH, func() error {
		c, err := s.read()
		checklist = c
		return err
	})
	return checklist, err
}

// Save replaces the document.
func (s *Store) Save(checklist *domain.Checklist) error {
	if !s.IsInitialized() {
		return domain.ErrNotInitialized
	}
	return s.withLock(syscall.LOCK_EX, func() error {
		if _, err := os.Stat(s.path); os.IsNotExist(err) {
			return domain.ErrNotInitialized
		}
		return s.write(checklist)
	})
}

// IsInitialized checks if the document exists.
func (s *Store) IsInitialized() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Initialize writes the initial document. A nil checklist writes an empty one.
func (s *Store) Initialize(initial *domain.Checklist) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	return s.withLock(syscall.LOCK_EX, func() error {
		if _, err := os.Stat(s.path); err == nil {
			return domain.ErrAlreadyInitialized
		}
		if initial == nil {
			initial = &domain.Checklist{}
		}
		return s.write(initial)
	})
}

func (s *Store) withLock(lockType int, fn func() error) error {
	lock, err := s.acquireLock(lockType)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)
	return fn()
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

func (s *Store) read() (*domain.Checklist, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotInitialized
		}
		return nil, fmt.Errorf("read checklist file: %w", err)
	}

	checklist, err := treecodec.DecodeChecklist(content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return checklist, nil
}

func (s *Store) write(checklist *domain.Checklist) error {
	content, err := treecodec.EncodeChecklist(checklist, s.format)
	if err != nil {
		return fmt.Errorf("encode checklist: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
