package install_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tekdi/tekdi-cursor-rules/pkg/catalog"
	"github.com/tekdi/tekdi-cursor-rules/pkg/errors"
	"github.com/tekdi/tekdi-cursor-rules/pkg/filesystem"
	"github.com/tekdi/tekdi-cursor-rules/pkg/install"
	"github.com/tekdi/tekdi-cursor-rules/pkg/manifest"
	"github.com/tekdi/tekdi-cursor-rules/pkg/testutil"
	"github.com/tekdi/tekdi-cursor-rules/pkg/types"
)

var fixedNow = func() time.Time {
	return time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
}

func planFixture(t *testing.T, sel types.Selection) ([]types.CopyAction, string, types.FS) {
	t.Helper()
	fs := filesystem.NewOS()
	root := testutil.CreateRulesTree(t)
	targetDir := filepath.Join(t.TempDir(), ".cursor", "rules")

	cat, err := catalog.Scan(fs, root)
	require.NoError(t, err)
	layers, err := cat.Resolve(sel)
	require.NoError(t, err)

	return install.Plan(fs, layers, targetDir), targetDir, fs
}

func TestPlan_OrderAndDestination(t *testing.T) {
	sel := types.Selection{Type: "backend", Language: "python", Framework: "fastapi"}
	actions, targetDir, _ := planFixture(t, sel)

	var rels []string
	for _, action := range actions {
		rels = append(rels, action.RelPath)
		assert.Equal(t, filepath.Join(targetDir, action.RelPath), action.Dest)
		assert.False(t, action.Exists)
	}
	// Layer order first, then path order within a layer.
	assert.Equal(t, []string{"general.mdc", "api-standards.md", "security.mdc", "style.mdc", "routing.mdc"}, rels)
}

func TestPlan_LaterLayerWins(t *testing.T) {
	fs := filesystem.NewOS()
	root := testutil.CreateRulesTree(t)
	// Same filename at the language level overrides the common one.
	testutil.CreateFile(t, root, "backend/python/general.mdc", "# Python general\n")
	targetDir := filepath.Join(t.TempDir(), "rules")

	cat, err := catalog.Scan(fs, root)
	require.NoError(t, err)
	layers, err := cat.Resolve(types.Selection{Type: "backend", Language: "python"})
	require.NoError(t, err)

	actions := install.Plan(fs, layers, targetDir)

	count := 0
	for _, action := range actions {
		if action.RelPath == "general.mdc" {
			count++
			assert.Equal(t, types.LayerLanguage, action.Layer)
			assert.Equal(t, filepath.Join(root, "backend/python/general.mdc"), action.Source)
		}
	}
	assert.Equal(t, 1, count, "overridden file must be planned exactly once")
}

func TestExecute_FreshInstall(t *testing.T) {
	sel := types.Selection{Type: "backend", Language: "python", Framework: "fastapi"}
	actions, targetDir, fs := planFixture(t, sel)

	result, err := install.Execute(actions, install.Options{
		FS:             fs,
		TargetDir:      targetDir,
		Selection:      sel,
		SourceURL:      "https://example.com/rules.git",
		SourceRevision: "abc123",
		ToolVersion:    "test",
		Now:            fixedNow,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, result.Summary.Installed)
	assert.Zero(t, result.Summary.Updated)
	assert.Empty(t, result.BackupDir)
	assert.True(t, testutil.FileExists(filepath.Join(targetDir, "routing.mdc")))

	m, err := manifest.Load(fs, targetDir)
	require.NoError(t, err)
	assert.Len(t, m.Files, 5)
	assert.Equal(t, "abc123", m.Source.Revision)
	assert.Equal(t, sel, m.Selection)

	tracked, ok := m.Tracked("style.mdc")
	require.True(t, ok)
	assert.Equal(t, string(types.LayerLanguage), tracked.Layer)
}

func TestExecute_Reinstall_Unchanged(t *testing.T) {
	sel := types.Selection{Type: "backend", Language: "python"}
	actions, targetDir, fs := planFixture(t, sel)

	opts := install.Options{FS: fs, TargetDir: targetDir, Selection: sel, Now: fixedNow}
	_, err := install.Execute(actions, opts)
	require.NoError(t, err)

	// Re-plan so Exists is seen, then run again.
	actions2, _, _ := replan(t, fs, actions, targetDir)
	result, err := install.Execute(actions2, opts)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Summary.Unchanged)
	assert.Zero(t, result.Summary.Updated)
	assert.Empty(t, result.BackupDir, "identical content must not create backups")
}

func TestExecute_OverwriteBacksUp(t *testing.T) {
	sel := types.Selection{Type: "backend", Language: "python"}
	actions, targetDir, fs := planFixture(t, sel)

	opts := install.Options{FS: fs, TargetDir: targetDir, Selection: sel, Now: fixedNow}
	_, err := install.Execute(actions, opts)
	require.NoError(t, err)

	// Local edit drifts from the source.
	edited := filepath.Join(targetDir, "style.mdc")
	require.NoError(t, fs.WriteFile(edited, []byte("# my local tweaks\n"), 0644))

	actions2, _, _ := replan(t, fs, actions, targetDir)
	result, err := install.Execute(actions2, opts)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Summary.Updated)
	assert.Equal(t, 3, result.Summary.Unchanged)

	wantBackupDir := filepath.Join(filepath.Dir(targetDir), "rules-backups", "20240601-123000")
	assert.Equal(t, wantBackupDir, result.BackupDir)
	assert.Equal(t, "# my local tweaks\n", testutil.ReadFile(t, filepath.Join(wantBackupDir, "style.mdc")))

	// The target got the catalog content back.
	content := testutil.ReadFile(t, edited)
	assert.Contains(t, content, "# Python")
}

func TestExecute_Force(t *testing.T) {
	sel := types.Selection{Type: "backend", Language: "python"}
	actions, targetDir, fs := planFixture(t, sel)

	opts := install.Options{FS: fs, TargetDir: targetDir, Selection: sel, Now: fixedNow}
	_, err := install.Execute(actions, opts)
	require.NoError(t, err)

	actions2, _, _ := replan(t, fs, actions, targetDir)
	opts.Force = true
	result, err := install.Execute(actions2, opts)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Summary.Updated)
	assert.Zero(t, result.Summary.Unchanged)
	assert.NotEmpty(t, result.BackupDir)
}

func TestExecute_StopsAtFirstError(t *testing.T) {
	sel := types.Selection{Type: "backend", Language: "python"}
	actions, targetDir, fs := planFixture(t, sel)
	require.Len(t, actions, 4)

	// The third source vanishes between plan and execute.
	require.NoError(t, fs.Remove(actions[2].Source))

	result, err := install.Execute(actions, install.Options{
		FS:        fs,
		TargetDir: targetDir,
		Selection: sel,
		Now:       fixedNow,
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess), "got %v", err)

	// The first two actions completed and stay reported.
	require.Len(t, result.Files, 2)
	assert.Equal(t, 2, result.Summary.Installed)
	assert.True(t, testutil.FileExists(filepath.Join(targetDir, actions[0].RelPath)))
	assert.True(t, testutil.FileExists(filepath.Join(targetDir, actions[1].RelPath)))
	assert.False(t, testutil.FileExists(filepath.Join(targetDir, actions[3].RelPath)))
}

func TestExecute_DryRun(t *testing.T) {
	sel := types.Selection{Type: "backend", Language: "python"}
	actions, targetDir, fs := planFixture(t, sel)

	result, err := install.Execute(actions, install.Options{
		FS:        fs,
		TargetDir: targetDir,
		Selection: sel,
		DryRun:    true,
		Now:       fixedNow,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, result.Summary.Skipped)
	assert.False(t, testutil.FileExists(filepath.Join(targetDir, "style.mdc")))
	assert.False(t, testutil.FileExists(filepath.Join(targetDir, manifest.FileName)))
}

// replan re-evaluates Exists flags against the current filesystem.
func replan(t *testing.T, fs types.FS, actions []types.CopyAction, targetDir string) ([]types.CopyAction, string, types.FS) {
	t.Helper()
	out := make([]types.CopyAction, len(actions))
	copy(out, actions)
	for i := range out {
		out[i].Exists = testutil.FileExists(out[i].Dest)
	}
	return out, targetDir, fs
}
