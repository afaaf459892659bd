// Package sqlitestore provides a SQLite implementation of ChecklistRepository.
// Every save appends a revision row; the newest row is the current document.
package sqlitestore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/runoshun/tick/internal/domain"
	"github.com/runoshun/tick/internal/infra/treecodec"
)

// Ensure Store implements the repository ports.
var (
	_ domain.ChecklistRepository = (*Store)(nil)
	_ domain.StoreInitializer    = (*Store)(nil)
	_ domain.RevisionLister      = (*Store)(nil)
)

const schema = `
	CREATE TABLE IF NOT EXISTS revisions (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		created_at INTEGER NOT NULL,
		message TEXT NOT NULL,
		completed INTEGER NOT NULL,
		total INTEGER NOT NULL,
		document TEXT NOT NULL
	);
`

// Store implements domain.ChecklistRepository on a revisions table.
type Store struct {
	db    *sql.DB
	clock domain.Clock
	path  string
	mu    sync.Mutex
}

// New opens (creating if needed) the database at path.
func New(path string, clock domain.Clock) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	if clock == nil {
		clock = domain.RealClock{}
	}
	return &Store{db: db, clock: clock, path: path}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load decodes the newest revision.
func (s *Store) Load() (*domain.Checklist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.latest()
	if err != nil {
		return nil, err
	}
	checklist, err := treecodec.DecodeChecklist([]byte(doc))
	if err != nil {
		return nil, fmt.Errorf("decode checklist: %w", err)
	}
	return checklist, nil
}

// Save appends a revision. Saving an unchanged document is a no-op.
func (s *Store) Save(checklist *domain.Checklist) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, err := s.latest()
	if err != nil {
		return err
	}
	progress := checklist.CountAll()
	return s.insert(checklist, prev,
		fmt.Sprintf("update checklist (%d/%d done)", progress.Completed, progress.Total))
}

// IsInitialized reports whether any revision exists.
func (s *Store) IsInitialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.latest()
	return err == nil
}

// Initialize writes the first revision.
func (s *Store) Initialize(initial *domain.Checklist) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.latest(); err == nil {
		return domain.ErrAlreadyInitialized
	} else if !errors.Is(err, domain.ErrNotInitialized) {
		return err
	}
	if initial == nil {
		initial = &domain.Checklist{}
	}
	return s.insert(initial, "", "init checklist")
}

// History returns up to limit revisions, newest first.
func (s *Store) History(limit int) ([]domain.Revision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.latest(); err != nil {
		return nil, err
	}

	query := `SELECT id, created_at, message, completed, total FROM revisions ORDER BY seq DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query revisions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var revisions []domain.Revision
	for rows.Next() {
		var rev domain.Revision
		var createdAt int64
		if err := rows.Scan(&rev.ID, &createdAt, &rev.Message, &rev.Progress.Completed, &rev.Progress.Total); err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}
		rev.CreatedAt = time.Unix(0, createdAt).UTC()
		revisions = append(revisions, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate revisions: %w", err)
	}
	return revisions, nil
}

// latest returns the newest document or ErrNotInitialized.
func (s *Store) latest() (string, error) {
	var doc string
	err := s.db.QueryRow(`SELECT document FROM revisions ORDER BY seq DESC LIMIT 1`).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotInitialized
	}
	if err != nil {
		return "", fmt.Errorf("read latest revision: %w", err)
	}
	return doc, nil
}

func (s *Store) insert(checklist *domain.Checklist, prev, message string) error {
	data, err := treecodec.EncodeChecklist(checklist, domain.FormatYAML)
	if err != nil {
		return fmt.Errorf("encode checklist: %w", err)
	}
	if prev != "" && prev == string(data) {
		return nil
	}

	progress := checklist.CountAll()
	_, err = s.db.Exec(
		`INSERT INTO revisions (id, created_at, message, completed, total, document) VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), s.clock.Now().UnixNano(), message, progress.Completed, progress.Total, string(data),
	)
	if err != nil {
		return fmt.Errorf("insert revision: %w", err)
	}
	return nil
}
