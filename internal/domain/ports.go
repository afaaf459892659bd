package domain

import (
	"time"
)

// StoreInitializer initializes the data store.
type StoreInitializer interface {
	// Initialize creates the store with the given document.
	// Returns ErrAlreadyInitialized if the store already exists.
	Initialize(initial *Checklist) error
}

// ChecklistRepository persists the checklist document.
type ChecklistRepository interface {
	// Load reads the whole checklist.
	// Returns ErrNotInitialized if the store does not exist yet.
	Load() (*Checklist, error)

	// Save replaces the stored checklist.
	Save(checklist *Checklist) error
}

// RevisionLister is implemented by backends that keep every saved version.
type RevisionLister interface {
	// History returns up to limit revisions, newest first.
	// A limit of 0 or less returns all revisions.
	History(limit int) ([]Revision, error)
}

// Revision is one saved version of the checklist.
// Fields are ordered to minimize memory padding.
type Revision struct {
	CreatedAt time.Time
	ID        string
	Message   string
	Progress  Progress
}

// ChecklistReplacer swaps the whole document.
type ChecklistReplacer interface {
	// Replace persists c as the new document and publishes a replace change.
	Replace(c *Checklist) (Change, error)
}

// DocumentCodec converts between checklists and serialized documents.
type DocumentCodec interface {
	// Decode parses a JSON or YAML document.
	Decode(data []byte) (*Checklist, error)

	// Encode serializes c in the given format.
	Encode(c *Checklist, format Format) ([]byte, error)
}

// ChangeNotifier publishes successful mutations to interested parties.
type ChangeNotifier interface {
	// Notify delivers the change to every subscriber.
	Notify(change Change)
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (defaults, global, repo).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	// GetRepoConfigInfo returns information about the repository config file.
	GetRepoConfigInfo() ConfigInfo

	// GetGlobalConfigInfo returns information about the global config file.
	GetGlobalConfigInfo() ConfigInfo

	// InitRepoConfig creates a repository config file from the template.
	// Returns ErrConfigExists if the file already exists.
	InitRepoConfig(cfg *Config) error

	// InitGlobalConfig creates a global config file from the template.
	InitGlobalConfig(cfg *Config) error
}

// ConfigInfo describes a config file.
type ConfigInfo struct {
	Path    string // Absolute path to the file
	Content string // File content, empty when missing
	Exists  bool
}

// Logger writes leveled log lines tagged with a category.
type Logger interface {
	Debug(category, msg string)
	Info(category, msg string)
	Warn(category, msg string)
	Error(category, msg string)
}

// NopLogger discards everything.
type NopLogger struct{}

// Ensure NopLogger implements Logger.
var _ Logger = NopLogger{}

func (NopLogger) Debug(string, string) {}
func (NopLogger) Info(string, string)  {}
func (NopLogger) Warn(string, string)  {}
func (NopLogger) Error(string, string) {}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
