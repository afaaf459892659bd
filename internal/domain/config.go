package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
)

//go:embed config_template.toml
var configTemplateContent string

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string     `toml:"-"`
	Store    StoreConfig  `toml:"store"`
	Server   ServerConfig `toml:"server"`
	Log      LogConfig    `toml:"log"`
	TUI      TUIConfig    `toml:"tui"`
}

// StoreBackend names a persistence backend.
type StoreBackend string

// Store backends.
const (
	BackendFile   StoreBackend = "file"
	BackendGit    StoreBackend = "git"
	BackendSQLite StoreBackend = "sqlite"
)

// AllBackends returns all valid backends.
func AllBackends() []StoreBackend {
	return []StoreBackend{BackendFile, BackendGit, BackendSQLite}
}

// IsValid returns true if the backend is known.
func (b StoreBackend) IsValid() bool {
	switch b {
	case BackendFile, BackendGit, BackendSQLite:
		return true
	default:
		return false
	}
}

// StoreConfig holds persistence settings from the [store] section.
type StoreConfig struct {
	Backend   StoreBackend `toml:"backend,omitempty"`   // file (default), git or sqlite
	Path      string       `toml:"path,omitempty"`      // Document or database path, relative to the tick directory
	Namespace string       `toml:"namespace,omitempty"` // Git ref namespace (default: "tick")
	Encrypt   bool         `toml:"encrypt,omitempty"`   // Encrypt git blobs with TICK_ENCRYPTION_KEY
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // Log level: debug, info, warn, error
}

// TUIConfig holds TUI settings from the [tui] section.
type TUIConfig struct {
	HideCompleted bool `toml:"hide_completed,omitempty"` // Start with completed tasks hidden
}

// ServerConfig holds HTTP settings from the [server] section.
type ServerConfig struct {
	Addr string `toml:"addr,omitempty"` // Listen address
}

// Default configuration values.
const (
	DefaultLogLevel   = "info"
	DefaultBackend    = BackendFile
	DefaultNamespace  = "tick"
	DefaultServerAddr = "127.0.0.1:8080"
)

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:   DefaultBackend,
			Namespace: DefaultNamespace,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Server: ServerConfig{
			Addr: DefaultServerAddr,
		},
	}
}

// StorePath returns the configured document path, or the backend default.
func (c *Config) StorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	switch c.Store.Backend {
	case BackendSQLite:
		return DatabaseFileName
	default:
		return DocumentFileName
	}
}

// RenderConfigTemplate renders the commented config template with the
// values of cfg.
func RenderConfigTemplate(cfg *Config) string {
	backends := make([]string, 0, len(AllBackends()))
	for _, b := range AllBackends() {
		backends = append(backends, fmt.Sprintf("%q", b))
	}
	data := struct {
		Backend   StoreBackend
		Backends  []string
		Namespace string
		LogLevel  string
		Addr      string
	}{
		Backend:   cfg.Store.Backend,
		Backends:  backends,
		Namespace: cfg.Store.Namespace,
		LogLevel:  cfg.Log.Level,
		Addr:      cfg.Server.Addr,
	}

	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}
	return buf.String()
}
