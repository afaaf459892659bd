package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tick/internal/app"
	"github.com/runoshun/tick/internal/domain"
	"github.com/runoshun/tick/internal/testutil"
)

func newConfigTestContainer() (*app.Container, *testutil.MockConfigManager, *testutil.MockConfigLoader) {
	c, _ := newTestContainer(testutil.SampleChecklist())
	manager := testutil.NewMockConfigManager()
	manager.GlobalConfigInfo = domain.ConfigInfo{Path: "/home/user/.config/tick/config.toml", Exists: true}
	manager.RepoConfigInfo = domain.ConfigInfo{Path: "/project/.tick/config.toml"}
	loader := testutil.NewMockConfigLoader()
	c.ConfigManager = manager
	c.ConfigLoader = loader
	return c, manager, loader
}

func TestConfigShowCommand(t *testing.T) {
	c, _, _ := newConfigTestContainer()

	out, err := execute(t, c, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "[Loaded from]\n- /home/user/.config/tick/config.toml\n- /project/.tick/config.toml (not found)\n")
	assert.Contains(t, out, "[Store]\n- backend: file\n- directory: /project/.tick\n")
	assert.Contains(t, out, "[Effective Config]\n")
	assert.Contains(t, out, "[store]")
	assert.Contains(t, out, "backend = ")
}

func TestConfigShowCommand_LoadError(t *testing.T) {
	c, _, loader := newConfigTestContainer()
	loader.LoadErr = assert.AnError

	_, err := execute(t, c, "config", "show")

	assert.ErrorIs(t, err, assert.AnError)
}

func TestConfigInitCommand(t *testing.T) {
	c, manager, _ := newConfigTestContainer()

	out, err := execute(t, c, "config", "init")

	require.NoError(t, err)
	assert.Equal(t, "Created config file: /project/.tick/config.toml\n", out)
	assert.True(t, manager.InitRepoCalled)
	assert.False(t, manager.InitGlobalCalled)
}

func TestConfigInitCommand_Global(t *testing.T) {
	c, manager, _ := newConfigTestContainer()

	out, err := execute(t, c, "config", "init", "--global")

	require.NoError(t, err)
	assert.Equal(t, "Created config file: /home/user/.config/tick/config.toml\n", out)
	assert.True(t, manager.InitGlobalCalled)
}

func TestConfigInitCommand_Exists(t *testing.T) {
	c, manager, _ := newConfigTestContainer()
	manager.InitRepoErr = domain.ErrConfigExists

	_, err := execute(t, c, "config", "init")

	assert.ErrorIs(t, err, domain.ErrConfigExists)
}

func TestConfigTemplateCommand(t *testing.T) {
	out, err := execute(t, nil, "config", "template")

	require.NoError(t, err)
	assert.Equal(t, domain.RenderConfigTemplate(domain.NewDefaultConfig()), out)
	assert.Contains(t, out, "[store]")
}
