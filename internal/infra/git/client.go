// Package git provides repository detection.
package git

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/runoshun/tick/internal/domain"
)

// Client wraps the repository containing a directory.
type Client struct {
	repo     *git.Repository
	repoRoot string // Worktree root (parent of .git)
	gitDir   string // .git directory
}

// NewClient opens the repository containing dir, walking up parent directories.
// Returns domain.ErrNotGitRepository if dir is not inside a repository.
func NewClient(dir string) (*Client, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}
	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, domain.ErrNotGitRepository
		}
		return nil, fmt.Errorf("open repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		// Bare repositories have no worktree to hold a .tick directory.
		return nil, domain.ErrNotGitRepository
	}
	root := filepath.Clean(wt.Filesystem.Root())
	return &Client{
		repo:     repo,
		repoRoot: root,
		gitDir:   filepath.Join(root, ".git"),
	}, nil
}

// Repository returns the underlying repository.
func (c *Client) Repository() *git.Repository {
	return c.repo
}

// RepoRoot returns the repository root directory.
func (c *Client) RepoRoot() string {
	return c.repoRoot
}

// GitDir returns the .git directory path.
func (c *Client) GitDir() string {
	return c.gitDir
}

// CurrentBranch returns the short name of the checked out branch.
// An unborn HEAD returns an empty name.
func (c *Client) CurrentBranch() (string, error) {
	head, err := c.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", nil
	}
	return head.Name().Short(), nil
}

// ProjectRoot returns the repository root containing dir, or dir itself when
// it is not inside a repository.
func ProjectRoot(dir string) string {
	client, err := NewClient(dir)
	if err != nil {
		if abs, absErr := filepath.Abs(dir); absErr == nil {
			return abs
		}
		return dir
	}
	return client.RepoRoot()
}
