package domain

import "errors"

// Domain errors.
var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrPhaseNotFound       = errors.New("phase not found")
	ErrSubcategoryNotFound = errors.New("subcategory not found")
	ErrTaskNotFound        = errors.New("task not found")
	ErrInvalidMove         = errors.New("invalid move")
	ErrInvalidPath         = errors.New("invalid path")
	ErrEmptyName           = errors.New("name cannot be empty")
	ErrNameUnchanged       = errors.New("name is unchanged")
	ErrNotInitialized      = errors.New("tick not initialized (run 'tick init' first)")
	ErrAlreadyInitialized  = errors.New("tick already initialized")
	ErrMalformedDocument   = errors.New("malformed checklist document")
	ErrHistoryUnsupported  = errors.New("store backend does not keep history")
	ErrConfigExists        = errors.New("config file already exists")
	ErrUnknownBackend      = errors.New("unknown store backend")
	ErrUnknownFormat       = errors.New("unknown document format")
	ErrNotGitRepository    = errors.New("not a git repository")
)

// NotFoundError returns the not-found error for the level p addresses.
func NotFoundError(p Path) error {
	switch len(p) {
	case DepthCategory:
		return ErrCategoryNotFound
	case DepthPhase:
		return ErrPhaseNotFound
	case DepthSubcategory:
		return ErrSubcategoryNotFound
	case DepthTask, DepthSubtask:
		return ErrTaskNotFound
	}
	return ErrInvalidPath
}

// IsNotFound reports whether err is any of the not-found errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrPhaseNotFound) ||
		errors.Is(err, ErrSubcategoryNotFound) ||
		errors.Is(err, ErrTaskNotFound)
}
