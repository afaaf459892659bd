package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tick/internal/domain"
)

func TestManager_GetRepoConfigInfo(t *testing.T) {
	t.Run("returns info when file exists", func(t *testing.T) {
		tickDir := t.TempDir()
		configContent := "[log]\nlevel = \"debug\""
		writeConfig(t, tickDir, configContent)

		info := NewManagerWithGlobalDir(tickDir, "").GetRepoConfigInfo()

		assert.Equal(t, filepath.Join(tickDir, domain.ConfigFileName), info.Path)
		assert.Equal(t, configContent, info.Content)
		assert.True(t, info.Exists)
	})

	t.Run("returns info when file does not exist", func(t *testing.T) {
		tickDir := t.TempDir()

		info := NewManagerWithGlobalDir(tickDir, "").GetRepoConfigInfo()

		assert.Equal(t, filepath.Join(tickDir, domain.ConfigFileName), info.Path)
		assert.Empty(t, info.Content)
		assert.False(t, info.Exists)
	})
}

func TestManager_GetGlobalConfigInfo(t *testing.T) {
	t.Run("returns info when file exists", func(t *testing.T) {
		globalDir := t.TempDir()
		writeConfig(t, globalDir, "[tui]\nhide_completed = true")

		info := NewManagerWithGlobalDir("", globalDir).GetGlobalConfigInfo()

		assert.Equal(t, filepath.Join(globalDir, domain.ConfigFileName), info.Path)
		assert.True(t, info.Exists)
	})

	t.Run("returns empty info when global dir is empty", func(t *testing.T) {
		info := NewManagerWithGlobalDir("", "").GetGlobalConfigInfo()

		assert.Empty(t, info.Path)
		assert.False(t, info.Exists)
	})
}

func TestManager_InitRepoConfig(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		tickDir := filepath.Join(t.TempDir(), domain.TickDirName)
		manager := NewManagerWithGlobalDir(tickDir, "")

		require.NoError(t, manager.InitRepoConfig(domain.NewDefaultConfig()))

		content, err := os.ReadFile(domain.RepoConfigPath(tickDir))
		require.NoError(t, err)
		assert.Contains(t, string(content), `backend = "file"`)
		assert.Contains(t, string(content), `"file", "git", "sqlite"`)
	})

	t.Run("returns error when file exists", func(t *testing.T) {
		tickDir := t.TempDir()
		writeConfig(t, tickDir, "")

		err := NewManagerWithGlobalDir(tickDir, "").InitRepoConfig(domain.NewDefaultConfig())
		assert.ErrorIs(t, err, domain.ErrConfigExists)
	})
}

func TestManager_InitGlobalConfig(t *testing.T) {
	t.Run("creates directory and file", func(t *testing.T) {
		globalDir := filepath.Join(t.TempDir(), "config", domain.GlobalDirName)
		manager := NewManagerWithGlobalDir("", globalDir)

		require.NoError(t, manager.InitGlobalConfig(domain.NewDefaultConfig()))
		assert.True(t, manager.GetGlobalConfigInfo().Exists)

		err := manager.InitGlobalConfig(domain.NewDefaultConfig())
		assert.ErrorIs(t, err, domain.ErrConfigExists)
	})

	t.Run("fails without global dir", func(t *testing.T) {
		err := NewManagerWithGlobalDir("", "").InitGlobalConfig(domain.NewDefaultConfig())
		assert.Error(t, err)
	})
}
