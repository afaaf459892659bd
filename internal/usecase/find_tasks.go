package usecase

import (
	"context"

	"github.com/sahilm/fuzzy"

	"github.com/runoshun/tick/internal/domain"
)

// FindTasksInput contains the parameters for a fuzzy task search.
type FindTasksInput struct {
	Query string // Empty matches every task in outline order
	Limit int    // Maximum number of matches; 0 means no limit
}

// TaskMatch is one search hit.
// Fields are ordered to minimize memory padding.
type TaskMatch struct {
	Path           domain.Path
	MatchedIndexes []int // Byte offsets of the matched characters in Name
	Name           string
	Score          int
	Completed      bool
}

// FindTasksOutput contains the search hits, best first.
type FindTasksOutput struct {
	Matches []TaskMatch
}

// FindTasks searches addressable task names.
type FindTasks struct {
	repo domain.ChecklistRepository
}

// NewFindTasks creates a new FindTasks use case.
func NewFindTasks(repo domain.ChecklistRepository) *FindTasks {
	return &FindTasks{repo: repo}
}

// taskSource adapts outline nodes to fuzzy.Source.
type taskSource []domain.Node

func (s taskSource) String(i int) string { return s[i].Name() }
func (s taskSource) Len() int            { return len(s) }

// Execute runs the search.
func (uc *FindTasks) Execute(_ context.Context, in FindTasksInput) (*FindTasksOutput, error) {
	c, err := load(uc.repo)
	if err != nil {
		return nil, err
	}
	return &FindTasksOutput{Matches: MatchTasks(c.Tasks(), in.Query, in.Limit)}, nil
}

// MatchTasks fuzzy-matches query against task nodes.
func MatchTasks(tasks []domain.Node, query string, limit int) []TaskMatch {
	var matches []TaskMatch
	if query == "" {
		for _, n := range tasks {
			matches = append(matches, newTaskMatch(n, nil, 0))
		}
	} else {
		for _, m := range fuzzy.FindFrom(query, taskSource(tasks)) {
			matches = append(matches, newTaskMatch(tasks[m.Index], m.MatchedIndexes, m.Score))
		}
	}
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func newTaskMatch(n domain.Node, indexes []int, score int) TaskMatch {
	return TaskMatch{
		Path:           n.Path,
		Name:           n.Name(),
		MatchedIndexes: indexes,
		Score:          score,
		Completed:      n.Task.Completed,
	}
}
