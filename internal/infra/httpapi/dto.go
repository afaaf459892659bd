package httpapi

import (
	"github.com/runoshun/tick/internal/domain"
	"github.com/runoshun/tick/internal/usecase"
)

type progressJSON struct {
	Completed int  `json:"completed"`
	Total     int  `json:"total"`
	Percent   int  `json:"percent"`
	Done      bool `json:"done"`
}

type linkJSON struct {
	Title string `json:"title,omitempty"`
	URL   string `json:"url"`
}

// nodeJSON is one outline line. Path is empty for unaddressable nodes.
// Fields are ordered to minimize memory padding.
type nodeJSON struct {
	Path      string       `json:"path,omitempty"`
	Name      string       `json:"name"`
	Links     []linkJSON   `json:"links,omitempty"`
	Tags      []string     `json:"tags,omitempty"`
	Progress  progressJSON `json:"progress"`
	Depth     int          `json:"depth"`
	Task      bool         `json:"task"`
	Completed bool         `json:"completed"`
}

type outlineJSON struct {
	Nodes    []nodeJSON   `json:"nodes"`
	Progress progressJSON `json:"progress"`
}

type taskJSON struct {
	Task     nodeJSON     `json:"task"`
	Subtasks []nodeJSON   `json:"subtasks"`
	Progress progressJSON `json:"progress"`
}

type countJSON struct {
	Path     string       `json:"path"`
	Name     string       `json:"name,omitempty"`
	Level    string       `json:"level"`
	Progress progressJSON `json:"progress"`
}

type matchJSON struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	Completed bool   `json:"completed"`
}

type changeJSON struct {
	Change   domain.Change `json:"change"`
	Progress progressJSON  `json:"progress"`
}

type completedRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

type moveRequest struct {
	Path string `json:"path" binding:"required"`
	To   *int   `json:"to" binding:"required"`
}

func newProgressJSON(p domain.Progress) progressJSON {
	return progressJSON{
		Completed: p.Completed,
		Total:     p.Total,
		Percent:   p.Percent(),
		Done:      p.Done(),
	}
}

func newNodeJSON(n domain.Node) nodeJSON {
	out := nodeJSON{
		Name:     n.Name(),
		Depth:    n.Depth,
		Task:     n.IsTask(),
		Progress: newProgressJSON(n.Progress()),
	}
	if n.Path != nil {
		out.Path = n.Path.String()
	}
	if n.Task != nil {
		out.Completed = n.Task.Completed
		out.Tags = n.Task.Tags
		for _, l := range n.Task.Links {
			out.Links = append(out.Links, linkJSON{Title: l.Title, URL: l.URL})
		}
	}
	return out
}

func newNodesJSON(nodes []domain.Node) []nodeJSON {
	out := make([]nodeJSON, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, newNodeJSON(n))
	}
	return out
}

func newMatchesJSON(matches []usecase.TaskMatch) []matchJSON {
	out := make([]matchJSON, 0, len(matches))
	for _, m := range matches {
		out = append(out, matchJSON{
			Path:      m.Path.String(),
			Name:      m.Name,
			Score:     m.Score,
			Completed: m.Completed,
		})
	}
	return out
}
