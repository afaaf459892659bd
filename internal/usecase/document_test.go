package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tick/internal/domain"
	"github.com/runoshun/tick/internal/infra/treecodec"
	"github.com/runoshun/tick/internal/state"
	"github.com/runoshun/tick/internal/testutil"
	"github.com/runoshun/tick/internal/usecase"
)

// =============================================================================
// ExportChecklist
// =============================================================================

func TestExportChecklist_Execute(t *testing.T) {
	repo := testutil.NewMockChecklistRepository(testutil.SampleChecklist())
	uc := usecase.NewExportChecklist(repo, treecodec.Codec{})

	out, err := uc.Execute(context.Background(), usecase.ExportChecklistInput{Format: domain.FormatYAML})
	require.NoError(t, err)

	decoded, err := treecodec.Codec{}.Decode(out.Data)
	require.NoError(t, err)
	assert.Equal(t, repo.Checklist.Raw(), decoded.Raw())
}

func TestExportChecklist_Execute_JSON(t *testing.T) {
	repo := testutil.NewMockChecklistRepository(testutil.SampleChecklist())
	uc := usecase.NewExportChecklist(repo, treecodec.Codec{})

	out, err := uc.Execute(context.Background(), usecase.ExportChecklistInput{Format: domain.FormatJSON})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(out.Data), "["))
	assert.Contains(t, string(out.Data), `"steps"`)
}

func TestExportChecklist_Execute_NotInitialized(t *testing.T) {
	uc := usecase.NewExportChecklist(testutil.NewMockChecklistRepository(nil), treecodec.Codec{})

	_, err := uc.Execute(context.Background(), usecase.ExportChecklistInput{Format: domain.FormatYAML})

	assert.ErrorIs(t, err, domain.ErrNotInitialized)
}

// =============================================================================
// ImportChecklist
// =============================================================================

func TestImportChecklist_Execute(t *testing.T) {
	repo := testutil.NewMockChecklistRepository(&domain.Checklist{})
	store := state.New(repo, nil)
	var published []domain.Change
	store.Subscribe(func(c domain.Change) { published = append(published, c) })
	uc := usecase.NewImportChecklist(store, treecodec.Codec{}, nil)

	out, err := uc.Execute(context.Background(), usecase.ImportChecklistInput{Document: []byte(testutil.SampleYAML)})
	require.NoError(t, err)

	assert.Equal(t, domain.ChangeReplace, out.Change.Kind)
	assert.Equal(t, 7, out.Change.Affected)
	assert.Equal(t, domain.Progress{Completed: 2, Total: 7}, out.Progress)
	assert.Equal(t, []domain.Change{out.Change}, published)
	assert.Equal(t, testutil.SampleChecklist().Raw(), repo.Checklist.Raw())
}

func TestImportChecklist_Execute_Malformed(t *testing.T) {
	repo := testutil.NewMockChecklistRepository(testutil.SampleChecklist())
	uc := usecase.NewImportChecklist(state.New(repo, nil), treecodec.Codec{}, nil)

	_, err := uc.Execute(context.Background(), usecase.ImportChecklistInput{Document: []byte("{")})

	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
	assert.Zero(t, repo.SaveCount)
}

// =============================================================================
// InitChecklist
// =============================================================================

func TestInitChecklist_Execute(t *testing.T) {
	repo := testutil.NewMockChecklistRepository(nil)
	logger := &testutil.MockLogger{}
	uc := usecase.NewInitChecklist(repo, treecodec.Codec{}, logger)

	out, err := uc.Execute(context.Background(), usecase.InitChecklistInput{})
	require.NoError(t, err)

	assert.Equal(t, domain.Progress{}, out.Progress)
	require.NotNil(t, repo.Checklist)
	assert.Empty(t, repo.Checklist.Categories)
	assert.Equal(t, []string{"init"}, logger.Categories())
}

func TestInitChecklist_Execute_Seeded(t *testing.T) {
	repo := testutil.NewMockChecklistRepository(nil)
	uc := usecase.NewInitChecklist(repo, treecodec.Codec{}, nil)

	out, err := uc.Execute(context.Background(), usecase.InitChecklistInput{Document: []byte(testutil.SampleYAML)})
	require.NoError(t, err)

	assert.Equal(t, domain.Progress{Completed: 2, Total: 7}, out.Progress)
	assert.Equal(t, domain.Progress{Completed: 2, Total: 7}, repo.Checklist.CountAll())
}

func TestInitChecklist_Execute_Errors(t *testing.T) {
	uc := usecase.NewInitChecklist(testutil.NewMockChecklistRepository(testutil.SampleChecklist()), treecodec.Codec{}, nil)
	_, err := uc.Execute(context.Background(), usecase.InitChecklistInput{})
	assert.ErrorIs(t, err, domain.ErrAlreadyInitialized)

	repo := testutil.NewMockChecklistRepository(nil)
	uc = usecase.NewInitChecklist(repo, treecodec.Codec{}, nil)
	_, err = uc.Execute(context.Background(), usecase.InitChecklistInput{Document: []byte("name: not a list\n")})
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
	assert.Nil(t, repo.Checklist)
}

// =============================================================================
// Config
// =============================================================================

func TestShowConfig_Execute(t *testing.T) {
	manager := testutil.NewMockConfigManager()
	manager.RepoConfigInfo = domain.ConfigInfo{Path: "/p/.tick/config.toml", Exists: true}
	loader := testutil.NewMockConfigLoader()
	uc := usecase.NewShowConfig(manager, loader)

	out, err := uc.Execute(context.Background(), usecase.ShowConfigInput{})
	require.NoError(t, err)

	assert.Same(t, loader.Config, out.EffectiveConfig)
	assert.Equal(t, manager.RepoConfigInfo, out.RepoConfig)
	assert.Empty(t, out.GlobalConfig.Path)
}

func TestInitConfig_Execute(t *testing.T) {
	manager := testutil.NewMockConfigManager()
	manager.RepoConfigInfo = domain.ConfigInfo{Path: "/p/.tick/config.toml"}
	manager.GlobalConfigInfo = domain.ConfigInfo{Path: "/home/u/.config/tick/config.toml"}
	uc := usecase.NewInitConfig(manager)

	out, err := uc.Execute(context.Background(), usecase.InitConfigInput{})
	require.NoError(t, err)
	assert.Equal(t, "/p/.tick/config.toml", out.Path)
	assert.True(t, manager.InitRepoCalled)

	out, err = uc.Execute(context.Background(), usecase.InitConfigInput{Global: true})
	require.NoError(t, err)
	assert.Equal(t, "/home/u/.config/tick/config.toml", out.Path)
	assert.True(t, manager.InitGlobalCalled)

	manager.InitRepoErr = domain.ErrConfigExists
	_, err = uc.Execute(context.Background(), usecase.InitConfigInput{})
	assert.ErrorIs(t, err, domain.ErrConfigExists)
}
