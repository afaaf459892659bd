// Package testutil provides shared test doubles.
package testutil

import (
	"fmt"
	"sync"
	"time"

	"github.com/runoshun/tick/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockChecklistRepository is a test double for domain.ChecklistRepository,
// domain.StoreInitializer and domain.RevisionLister.
// Load returns a copy, so changes are only visible after Save.
// Fields are ordered to minimize memory padding.
type MockChecklistRepository struct {
	Checklist  *domain.Checklist
	LoadErr    error
	SaveErr    error
	InitErr    error
	HistoryErr error
	Revisions  []domain.Revision
	SaveCount  int
	LoadCount  int
}

// NewMockChecklistRepository creates a repository holding c.
// A nil c leaves the repository uninitialized.
func NewMockChecklistRepository(c *domain.Checklist) *MockChecklistRepository {
	return &MockChecklistRepository{Checklist: c}
}

// Load returns a copy of the stored checklist.
func (m *MockChecklistRepository) Load() (*domain.Checklist, error) {
	m.LoadCount++
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Checklist == nil {
		return nil, domain.ErrNotInitialized
	}
	return Clone(m.Checklist), nil
}

// Save stores a copy of the checklist.
func (m *MockChecklistRepository) Save(c *domain.Checklist) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if m.Checklist == nil {
		return domain.ErrNotInitialized
	}
	m.Checklist = Clone(c)
	m.SaveCount++
	return nil
}

// Initialize stores the initial checklist.
func (m *MockChecklistRepository) Initialize(initial *domain.Checklist) error {
	if m.InitErr != nil {
		return m.InitErr
	}
	if m.Checklist != nil {
		return domain.ErrAlreadyInitialized
	}
	if initial == nil {
		initial = &domain.Checklist{}
	}
	m.Checklist = Clone(initial)
	return nil
}

// History returns the configured revisions.
func (m *MockChecklistRepository) History(limit int) ([]domain.Revision, error) {
	if m.HistoryErr != nil {
		return nil, m.HistoryErr
	}
	if limit > 0 && limit < len(m.Revisions) {
		return m.Revisions[:limit], nil
	}
	return m.Revisions, nil
}

// Clone returns a deep copy of c.
func Clone(c *domain.Checklist) *domain.Checklist {
	clone, err := domain.NewChecklist(c.Raw())
	if err != nil {
		panic(fmt.Sprintf("clone checklist: %v", err))
	}
	return clone
}

// LogEntry is one line recorded by MockLogger.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
}

// MockLogger is a test double for domain.Logger that records entries.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

// Ensure MockLogger implements domain.Logger.
var _ domain.Logger = (*MockLogger)(nil)

func (m *MockLogger) record(level, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, Category: category, Msg: msg})
}

// Debug records a debug entry.
func (m *MockLogger) Debug(category, msg string) { m.record("DEBUG", category, msg) }

// Info records an info entry.
func (m *MockLogger) Info(category, msg string) { m.record("INFO", category, msg) }

// Warn records a warning entry.
func (m *MockLogger) Warn(category, msg string) { m.record("WARN", category, msg) }

// Error records an error entry.
func (m *MockLogger) Error(category, msg string) { m.record("ERROR", category, msg) }

// Categories returns the recorded categories in order.
func (m *MockLogger) Categories() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.Entries))
	for _, e := range m.Entries {
		out = append(out, e.Category)
	}
	return out
}

// MockNotifier is a test double for domain.ChangeNotifier.
type MockNotifier struct {
	Changes []domain.Change
}

// Notify records the change.
func (m *MockNotifier) Notify(change domain.Change) {
	m.Changes = append(m.Changes, change)
}

// MockConfigManager is a test double for domain.ConfigManager.
type MockConfigManager struct {
	InitRepoErr      error
	InitGlobalErr    error
	RepoConfigInfo   domain.ConfigInfo
	GlobalConfigInfo domain.ConfigInfo
	InitRepoCalled   bool
	InitGlobalCalled bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{}
}

// GetRepoConfigInfo returns the configured repo info.
func (m *MockConfigManager) GetRepoConfigInfo() domain.ConfigInfo {
	return m.RepoConfigInfo
}

// GetGlobalConfigInfo returns the configured global info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalConfigInfo
}

// InitRepoConfig records the call.
func (m *MockConfigManager) InitRepoConfig(_ *domain.Config) error {
	m.InitRepoCalled = true
	return m.InitRepoErr
}

// InitGlobalConfig records the call.
func (m *MockConfigManager) InitGlobalConfig(_ *domain.Config) error {
	m.InitGlobalCalled = true
	return m.InitGlobalErr
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config    *domain.Config
	LoadErr   error
	GlobalErr error
}

// NewMockConfigLoader creates a loader returning the default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{Config: domain.NewDefaultConfig()}
}

// Load returns the configured config.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// LoadGlobal returns the configured config.
func (m *MockConfigLoader) LoadGlobal() (*domain.Config, error) {
	if m.GlobalErr != nil {
		return nil, m.GlobalErr
	}
	return m.Config, nil
}
