// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/tick/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	tickDir       string // Path to the .tick directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/tick)
}

// NewLoader creates a new Loader.
func NewLoader(tickDir string) *Loader {
	return &Loader{
		tickDir:       tickDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(tickDir, globalConfDir string) *Loader {
	return &Loader{
		tickDir:       tickDir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalTickDir(configHome)
}

// Load returns the merged configuration.
// Merge order is default <- global <- repo; later sources take precedence.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	repo, err := l.LoadRepo()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if repo != nil {
		base = mergeConfigs(base, repo)
	}
	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// LoadRepo returns only the repository configuration.
func (l *Loader) LoadRepo() (*domain.Config, error) {
	if l.tickDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(domain.RepoConfigPath(l.tickDir))
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
			continue
		}
		switch section {
		case "store":
			for k, v := range m {
				switch k {
				case "backend":
					if s, ok := v.(string); ok {
						res.Store.Backend = domain.StoreBackend(s)
						if !res.Store.Backend.IsValid() {
							warnings = append(warnings, fmt.Sprintf("invalid value in [store]: backend = %q", s))
						}
					}
				case "path":
					if s, ok := v.(string); ok {
						res.Store.Path = s
					}
				case "namespace":
					if s, ok := v.(string); ok {
						res.Store.Namespace = s
					}
				case "encrypt":
					if b, ok := v.(bool); ok {
						res.Store.Encrypt = b
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [store]: %s", k))
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					if s, ok := v.(string); ok {
						res.Log.Level = s
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		case "tui":
			for k, v := range m {
				switch k {
				case "hide_completed":
					if b, ok := v.(bool); ok {
						res.TUI.HideCompleted = b
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [tui]: %s", k))
				}
			}
		case "server":
			for k, v := range m {
				switch k {
				case "addr":
					if s, ok := v.(string); ok {
						res.Server.Addr = s
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [server]: %s", k))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		Store:    base.Store,
		Server:   base.Server,
		Log:      base.Log,
		TUI:      base.TUI,
		Warnings: append([]string{}, base.Warnings...),
	}
	result.Warnings = append(result.Warnings, override.Warnings...)

	if override.Store.Backend != "" {
		result.Store.Backend = override.Store.Backend
	}
	if override.Store.Path != "" {
		result.Store.Path = override.Store.Path
	}
	if override.Store.Namespace != "" {
		result.Store.Namespace = override.Store.Namespace
	}
	if override.Store.Encrypt {
		result.Store.Encrypt = override.Store.Encrypt
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.TUI.HideCompleted {
		result.TUI.HideCompleted = override.TUI.HideCompleted
	}
	if override.Server.Addr != "" {
		result.Server.Addr = override.Server.Addr
	}
	return result
}
