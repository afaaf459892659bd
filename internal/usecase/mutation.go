// Package usecase contains the application use cases.
package usecase

import (
	"fmt"

	"github.com/runoshun/tick/internal/domain"
)

// mutation runs one core operation against the stored checklist:
// load, apply, save, log and publish the change.
type mutation struct {
	repo     domain.ChecklistRepository
	notifier domain.ChangeNotifier
	logger   domain.Logger
}

type nopNotifier struct{}

func (nopNotifier) Notify(domain.Change) {}

func newMutation(repo domain.ChecklistRepository, notifier domain.ChangeNotifier, logger domain.Logger) mutation {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return mutation{repo: repo, notifier: notifier, logger: logger}
}

// run applies op. When op reports failure, fail explains why against the
// unmodified checklist.
func (m mutation) run(
	op func(c *domain.Checklist) (domain.Change, bool),
	fail func(c *domain.Checklist) error,
) (domain.Change, error) {
	c, err := m.repo.Load()
	if err != nil {
		return domain.Change{}, fmt.Errorf("load checklist: %w", err)
	}

	change, ok := op(c)
	if !ok {
		return domain.Change{}, fail(c)
	}

	if err := m.repo.Save(c); err != nil {
		return domain.Change{}, fmt.Errorf("save checklist: %w", err)
	}
	m.logger.Info(string(change.Kind), change.String())
	m.notifier.Notify(change)
	return change, nil
}

// locateOr returns the not-found error for p, or fallback when p resolves.
func locateOr(p domain.Path, fallback error) func(c *domain.Checklist) error {
	return func(c *domain.Checklist) error {
		if err := c.Locate(p); err != nil {
			return err
		}
		return fallback
	}
}

// load reads a private copy of the checklist for query use cases, so that
// results never share nodes with a tree a later mutation edits in place.
func load(repo domain.ChecklistRepository) (*domain.Checklist, error) {
	c, err := repo.Load()
	if err != nil {
		return nil, fmt.Errorf("load checklist: %w", err)
	}
	return c.Clone(), nil
}
