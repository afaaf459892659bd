// Package gitstore provides a Git plumbing-based implementation of
// ChecklistRepository. Every save is a commit, so the ref's log is the
// checklist history.
package gitstore

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/runoshun/tick/internal/domain"
	"github.com/runoshun/tick/internal/infra/crypto"
	"github.com/runoshun/tick/internal/infra/treecodec"
)

// ErrEncrypted is returned when reading a sealed document without a key.
var ErrEncrypted = errors.New("checklist is encrypted (set " + domain.EncryptionKeyEnv + ")")

// Ensure Store implements the repository ports.
var (
	_ domain.ChecklistRepository = (*Store)(nil)
	_ domain.StoreInitializer    = (*Store)(nil)
	_ domain.RevisionLister      = (*Store)(nil)
)

// Store implements domain.ChecklistRepository using Git objects.
//
// Data structure:
//
//	refs/<namespace>/checklist → commit
//	  tree
//	    checklist.yaml → blob (YAML, optionally sealed)
//
// Fields are ordered to minimize memory padding.
type Store struct {
	repo      *git.Repository
	cipher    *crypto.Cipher
	clock     domain.Clock
	namespace string
	mu        sync.RWMutex
}

// New opens the repository containing repoPath.
// A nil cipher stores plain YAML.
func New(repoPath, namespace string, cipher *crypto.Cipher, clock domain.Clock) (*Store, error) {
	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open git repository: %w", err)
	}
	return NewWithRepo(repo, namespace, cipher, clock), nil
}

// NewWithRepo creates a new Store with an existing repository instance.
func NewWithRepo(repo *git.Repository, namespace string, cipher *crypto.Cipher, clock domain.Clock) *Store {
	if namespace == "" {
		namespace = domain.DefaultNamespace
	}
	if clock == nil {
		clock = domain.RealClock{}
	}
	return &Store{
		repo:      repo,
		cipher:    cipher,
		clock:     clock,
		namespace: namespace,
	}
}

// checklistRef returns the ref name holding the latest commit.
func (s *Store) checklistRef() plumbing.ReferenceName {
	return plumbing.ReferenceName("refs/" + s.namespace + "/checklist")
}

// Load reads the checklist from the latest commit.
func (s *Store) Load() (*domain.Checklist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	commit, err := s.head()
	if err != nil {
		return nil, err
	}
	return s.readChecklist(commit)
}

// Save commits the checklist. Saving an unchanged document is a no-op.
func (s *Store) Save(checklist *domain.Checklist) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	parent, err := s.head()
	if err != nil {
		return err
	}
	return s.commit(checklist, parent)
}

// IsInitialized checks if the checklist ref exists.
func (s *Store) IsInitialized() bool {
	_, err := s.repo.Reference(s.checklistRef(), true)
	return err == nil
}

// Initialize creates the first commit.
func (s *Store) Initialize(initial *domain.Checklist) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.head(); err == nil {
		return domain.ErrAlreadyInitialized
	} else if !errors.Is(err, domain.ErrNotInitialized) {
		return err
	}
	if initial == nil {
		initial = &domain.Checklist{}
	}
	return s.commit(initial, nil)
}

// History returns up to limit revisions, newest first.
func (s *Store) History(limit int) ([]domain.Revision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	head, err := s.head()
	if err != nil {
		return nil, err
	}

	iter, err := s.repo.Log(&git.LogOptions{From: head.Hash})
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	defer iter.Close()

	var revisions []domain.Revision
	err = iter.ForEach(func(c *object.Commit) error {
		if limit > 0 && len(revisions) >= limit {
			return storer.ErrStop
		}
		rev := domain.Revision{
			ID:        c.Hash.String(),
			CreatedAt: c.Committer.When,
			Message:   strings.TrimSpace(c.Message),
		}
		if checklist, readErr := s.readChecklist(c); readErr == nil {
			rev.Progress = checklist.CountAll()
		}
		revisions = append(revisions, rev)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return revisions, nil
}

// head returns the latest commit or ErrNotInitialized.
func (s *Store) head() (*object.Commit, error) {
	ref, err := s.repo.Reference(s.checklistRef(), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, domain.ErrNotInitialized
		}
		return nil, fmt.Errorf("get checklist ref: %w", err)
	}
	commit, err := s.repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("get checklist commit: %w", err)
	}
	return commit, nil
}

func (s *Store) readChecklist(commit *object.Commit) (*domain.Checklist, error) {
	data, err := s.readDocument(commit)
	if err != nil {
		return nil, err
	}
	checklist, err := treecodec.DecodeChecklist(data)
	if err != nil {
		return nil, fmt.Errorf("decode checklist %s: %w", commit.Hash, err)
	}
	return checklist, nil
}

// readDocument returns the plain document bytes of a commit.
func (s *Store) readDocument(commit *object.Commit) ([]byte, error) {
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("get tree: %w", err)
	}
	entry, err := tree.FindEntry(domain.DocumentFileName)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", domain.DocumentFileName, err)
	}
	return s.readBlob(entry.Hash)
}

// commit writes blob, tree and commit objects and moves the ref.
func (s *Store) commit(checklist *domain.Checklist, parent *object.Commit) error {
	data, err := treecodec.EncodeChecklist(checklist, domain.FormatYAML)
	if err != nil {
		return fmt.Errorf("encode checklist: %w", err)
	}
	if parent != nil {
		if prev, readErr := s.readDocument(parent); readErr == nil && bytes.Equal(prev, data) {
			return nil
		}
	}
	blobHash, err := s.writeBlob(data)
	if err != nil {
		return err
	}

	tree := &object.Tree{Entries: []object.TreeEntry{{
		Name: domain.DocumentFileName,
		Mode: filemode.Regular,
		Hash: blobHash,
	}}}
	treeObj := s.repo.Storer.NewEncodedObject()
	if encodeErr := tree.Encode(treeObj); encodeErr != nil {
		return fmt.Errorf("encode tree: %w", encodeErr)
	}
	treeHash, err := s.repo.Storer.SetEncodedObject(treeObj)
	if err != nil {
		return fmt.Errorf("store tree: %w", err)
	}

	var parents []plumbing.Hash
	message := "init checklist"
	if parent != nil {
		parents = []plumbing.Hash{parent.Hash}
		progress := checklist.CountAll()
		message = fmt.Sprintf("update checklist (%d/%d done)", progress.Completed, progress.Total)
	}

	sig := s.signature()
	commit := &object.Commit{
		Author:       sig,
		Committer:    sig,
		Message:      message,
		TreeHash:     treeHash,
		ParentHashes: parents,
	}
	commitObj := s.repo.Storer.NewEncodedObject()
	if encodeErr := commit.Encode(commitObj); encodeErr != nil {
		return fmt.Errorf("encode commit: %w", encodeErr)
	}
	commitHash, err := s.repo.Storer.SetEncodedObject(commitObj)
	if err != nil {
		return fmt.Errorf("store commit: %w", err)
	}

	ref := plumbing.NewHashReference(s.checklistRef(), commitHash)
	if err := s.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("set checklist ref: %w", err)
	}
	return nil
}

// signature uses the git user when configured.
func (s *Store) signature() object.Signature {
	sig := object.Signature{Name: "tick", Email: "tick@localhost", When: s.clock.Now()}
	if cfg, err := s.repo.ConfigScoped(config.GlobalScope); err == nil {
		if cfg.User.Name != "" {
			sig.Name = cfg.User.Name
		}
		if cfg.User.Email != "" {
			sig.Email = cfg.User.Email
		}
	}
	return sig
}

// writeBlob seals data when a cipher is configured and stores it as a blob.
func (s *Store) writeBlob(data []byte) (plumbing.Hash, error) {
	blobData := data
	if s.cipher != nil {
		sealed, err := s.cipher.Seal(data)
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("encrypt data: %w", err)
		}
		blobData = sealed
	}

	obj := s.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	obj.SetSize(int64(len(blobData)))

	writer, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("create blob writer: %w", err)
	}
	if _, writeErr := writer.Write(blobData); writeErr != nil {
		_ = writer.Close()
		return plumbing.ZeroHash, fmt.Errorf("write blob: %w", writeErr)
	}
	_ = writer.Close()

	hash, err := s.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("store blob: %w", err)
	}
	return hash, nil
}

// readBlob reads a blob and opens it if sealed. Plain blobs are returned as
// is even with a cipher configured, so encryption can be turned on later.
func (s *Store) readBlob(hash plumbing.Hash) ([]byte, error) {
	blob, err := s.repo.BlobObject(hash)
	if err != nil {
		return nil, fmt.Errorf("get blob: %w", err)
	}

	reader, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read blob data: %w", err)
	}

	if !crypto.IsSealed(data) {
		return data, nil
	}
	if s.cipher == nil {
		return nil, ErrEncrypted
	}
	plain, err := s.cipher.Open(data)
	if err != nil {
		return nil, fmt.Errorf("decrypt data: %w", err)
	}
	return plain, nil
}
