// Package app provides the dependency injection container for the application.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/runoshun/tick/internal/domain"
	"github.com/runoshun/tick/internal/infra/config"
	"github.com/runoshun/tick/internal/infra/crypto"
	"github.com/runoshun/tick/internal/infra/filestore"
	"github.com/runoshun/tick/internal/infra/git"
	"github.com/runoshun/tick/internal/infra/gitstore"
	"github.com/runoshun/tick/internal/infra/logging"
	"github.com/runoshun/tick/internal/infra/sqlitestore"
	"github.com/runoshun/tick/internal/infra/treecodec"
	"github.com/runoshun/tick/internal/state"
	"github.com/runoshun/tick/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	ProjectRoot string              // Git repository root, or the working directory outside a repository
	TickDir     string              // Path to the .tick directory
	StorePath   string              // Document or database path for the file and sqlite backends
	Backend     domain.StoreBackend // Selected persistence backend
}

// newConfig resolves paths under the project root.
func newConfig(root string, appConfig *domain.Config) Config {
	tickDir := domain.TickDir(root)
	return Config{
		ProjectRoot: root,
		TickDir:     tickDir,
		StorePath:   domain.ResolveStorePath(tickDir, appConfig.StorePath()),
		Backend:     appConfig.Store.Backend,
	}
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	StoreInitializer domain.StoreInitializer
	History          domain.RevisionLister // nil when the backend keeps no history
	Codec            domain.DocumentCodec
	Clock            domain.Clock
	ConfigLoader     domain.ConfigLoader
	ConfigManager    domain.ConfigManager
	Logger           domain.Logger

	// Pointer fields
	State     *state.Store // Shared checklist wrapping the backend
	AppConfig *domain.Config

	closers []io.Closer

	// Configuration
	Config Config
}

// New creates a new Container for the project containing dir.
func New(dir string) (*Container, error) {
	root := git.ProjectRoot(dir)

	configLoader := config.NewLoader(domain.TickDir(root))
	appConfig, err := configLoader.Load()
	if err != nil {
		appConfig = domain.NewDefaultConfig()
		appConfig.Warnings = append(appConfig.Warnings, fmt.Sprintf("config ignored: %v", err))
	}
	cfg := newConfig(root, appConfig)

	c := &Container{
		Codec:         treecodec.Codec{},
		Clock:         domain.RealClock{},
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(cfg.TickDir),
		Logger:        domain.NopLogger{},
		AppConfig:     appConfig,
		Config:        cfg,
	}

	// Log only once the tick directory exists so read-only commands do not create it.
	if _, statErr := os.Stat(cfg.TickDir); statErr == nil {
		logger := logging.New(cfg.TickDir, logging.ParseLevel(appConfig.Log.Level))
		c.Logger = logger
		c.closers = append(c.closers, logger)
	}

	repo, err := c.openBackend()
	if err != nil {
		// Keep config commands usable; checklist commands report the error.
		c.Logger.Error("store", err.Error())
		b := brokenBackend{err: err}
		repo, c.StoreInitializer, c.History = b, b, nil
	}
	c.State = state.New(repo, c.Logger)
	return c, nil
}

// openBackend builds the configured backend.
func (c *Container) openBackend() (domain.ChecklistRepository, error) {
	switch c.Config.Backend {
	case domain.BackendFile:
		store := filestore.New(c.Config.StorePath)
		c.StoreInitializer = store
		return store, nil

	case domain.BackendGit:
		client, err := git.NewClient(c.Config.ProjectRoot)
		if err != nil {
			return nil, fmt.Errorf("git backend: %w", err)
		}
		var cipher *crypto.Cipher
		if c.AppConfig.Store.Encrypt {
			cipher, err = crypto.FromEnv(os.Getenv, domain.EncryptionKeyEnv)
			if err != nil {
				return nil, fmt.Errorf("git backend: %w", err)
			}
		}
		store := gitstore.NewWithRepo(client.Repository(), c.AppConfig.Store.Namespace, cipher, c.Clock)
		c.StoreInitializer = store
		c.History = store
		return store, nil

	case domain.BackendSQLite:
		store, err := sqlitestore.New(c.Config.StorePath, c.Clock)
		if err != nil {
			return nil, fmt.Errorf("sqlite backend: %w", err)
		}
		c.StoreInitializer = store
		c.History = store
		c.closers = append(c.closers, store)
		return store, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownBackend, c.Config.Backend)
}

// NewWithDeps creates a new Container with custom dependencies for testing.
// history may be nil.
func NewWithDeps(cfg Config, repo domain.ChecklistRepository, storeInit domain.StoreInitializer, history domain.RevisionLister, logger domain.Logger) *Container {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Container{
		StoreInitializer: storeInit,
		History:          history,
		Codec:            treecodec.Codec{},
		Clock:            domain.RealClock{},
		Logger:           logger,
		State:            state.New(repo, logger),
		AppConfig:        domain.NewDefaultConfig(),
		Config:           cfg,
	}
}

// Close releases open files and database handles.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

// brokenBackend reports a backend construction error from every operation.
type brokenBackend struct {
	err error
}

func (b brokenBackend) Load() (*domain.Checklist, error)   { return nil, b.err }
func (b brokenBackend) Save(*domain.Checklist) error       { return b.err }
func (b brokenBackend) Initialize(*domain.Checklist) error { return b.err }

// UseCase factory methods

// InitChecklistUseCase returns a new InitChecklist use case.
func (c *Container) InitChecklistUseCase() *usecase.InitChecklist {
	return usecase.NewInitChecklist(c.StoreInitializer, c.Codec, c.Logger)
}

// ShowChecklistUseCase returns a new ShowChecklist use case.
func (c *Container) ShowChecklistUseCase() *usecase.ShowChecklist {
	return usecase.NewShowChecklist(c.State)
}

// ShowTaskUseCase returns a new ShowTask use case.
func (c *Container) ShowTaskUseCase() *usecase.ShowTask {
	return usecase.NewShowTask(c.State)
}

// CountProgressUseCase returns a new CountProgress use case.
func (c *Container) CountProgressUseCase() *usecase.CountProgress {
	return usecase.NewCountProgress(c.State)
}

// ToggleTaskUseCase returns a new ToggleTask use case.
func (c *Container) ToggleTaskUseCase() *usecase.ToggleTask {
	return usecase.NewToggleTask(c.State, c.State, c.Logger)
}

// SetCompletedUseCase returns a new SetCompleted use case.
func (c *Container) SetCompletedUseCase() *usecase.SetCompleted {
	return usecase.NewSetCompleted(c.State, c.State, c.Logger)
}

// MoveEntryUseCase returns a new MoveEntry use case.
func (c *Container) MoveEntryUseCase() *usecase.MoveEntry {
	return usecase.NewMoveEntry(c.State, c.State, c.Logger)
}

// AddEntryUseCase returns a new AddEntry use case.
func (c *Container) AddEntryUseCase() *usecase.AddEntry {
	return usecase.NewAddEntry(c.State, c.State, c.Logger)
}

// DeleteEntryUseCase returns a new DeleteEntry use case.
func (c *Container) DeleteEntryUseCase() *usecase.DeleteEntry {
	return usecase.NewDeleteEntry(c.State, c.State, c.Logger)
}

// RenameEntryUseCase returns a new RenameEntry use case.
func (c *Container) RenameEntryUseCase() *usecase.RenameEntry {
	return usecase.NewRenameEntry(c.State, c.State, c.Logger)
}

// FindTasksUseCase returns a new FindTasks use case.
func (c *Container) FindTasksUseCase() *usecase.FindTasks {
	return usecase.NewFindTasks(c.State)
}

// ListHistoryUseCase returns a new ListHistory use case.
func (c *Container) ListHistoryUseCase() *usecase.ListHistory {
	return usecase.NewListHistory(c.History)
}

// ExportChecklistUseCase returns a new ExportChecklist use case.
func (c *Container) ExportChecklistUseCase() *usecase.ExportChecklist {
	return usecase.NewExportChecklist(c.State, c.Codec)
}

// ImportChecklistUseCase returns a new ImportChecklist use case.
func (c *Container) ImportChecklistUseCase() *usecase.ImportChecklist {
	return usecase.NewImportChecklist(c.State, c.Codec, c.Logger)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}
