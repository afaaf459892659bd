package domain

import (
	"path/filepath"
	"strings"
)

// Directory and file names for tick.
const (
	TickDirName      = ".tick"          // Data directory in the repository or working directory
	GlobalDirName    = "tick"           // Directory name under the user config home
	ConfigFileName   = "config.toml"    // Config file name
	DocumentFileName = "checklist.yaml" // Default file backend document
	DatabaseFileName = "checklist.db"   // Default sqlite backend database
	LogFileName      = "tick.log"       // Log file name
	EncryptionKeyEnv = "TICK_ENCRYPTION_KEY"
)

// TickDir returns the tick directory for a project root.
func TickDir(root string) string {
	return filepath.Join(root, TickDirName)
}

// RepoConfigPath returns the repo config path.
func RepoConfigPath(tickDir string) string {
	return filepath.Join(tickDir, ConfigFileName)
}

// GlobalTickDir returns the global tick directory path.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalTickDir(configHome string) string {
	return filepath.Join(configHome, GlobalDirName)
}

// GlobalConfigPath returns the global config path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalTickDir(configHome), ConfigFileName)
}

// LogPath returns the path to the log file.
func LogPath(tickDir string) string {
	return filepath.Join(tickDir, "logs", LogFileName)
}

// ResolveStorePath resolves a configured store path against the tick directory.
func ResolveStorePath(tickDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(tickDir, path)
}

// Format is a document serialization format.
type Format string

// Document formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name. An empty name means YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", ErrUnknownFormat
}

// FormatForPath guesses the format from a file extension. Unknown extensions
// are read as YAML, which also accepts JSON.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}
