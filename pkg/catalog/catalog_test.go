package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tekdi/tekdi-cursor-rules/pkg/catalog"
	"github.com/tekdi/tekdi-cursor-rules/pkg/errors"
	"github.com/tekdi/tekdi-cursor-rules/pkg/filesystem"
	"github.com/tekdi/tekdi-cursor-rules/pkg/testutil"
	"github.com/tekdi/tekdi-cursor-rules/pkg/types"
)

func scanFixture(t *testing.T) *catalog.Catalog {
	t.Helper()
	root := testutil.CreateRulesTree(t)
	cat, err := catalog.Scan(filesystem.NewOS(), root)
	require.NoError(t, err)
	return cat
}

func TestScan_Errors(t *testing.T) {
	fs := filesystem.NewOS()

	t.Run("missing root", func(t *testing.T) {
		_, err := catalog.Scan(fs, "/does/not/exist")
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	})

	t.Run("root is a file", func(t *testing.T) {
		dir := t.TempDir()
		path := testutil.CreateFile(t, dir, "rules", "not a dir")
		_, err := catalog.Scan(fs, path)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("empty root", func(t *testing.T) {
		_, err := catalog.Scan(fs, t.TempDir())
		assert.True(t, errors.IsErrorCode(err, errors.ErrCatalogEmpty))
	})
}

func TestCatalog_Options(t *testing.T) {
	cat := scanFixture(t)

	ptypes, err := cat.ProjectTypes()
	require.NoError(t, err)
	assert.Equal(t, []string{"backend", "frontend"}, ptypes)

	languages, err := cat.Languages("backend")
	require.NoError(t, err)
	assert.Equal(t, []string{"python"}, languages)

	frameworks, err := cat.Frameworks("backend", "python")
	require.NoError(t, err)
	assert.Equal(t, []string{"fastapi"}, frameworks)

	frameworks, err = cat.Frameworks("frontend", "javascript")
	require.NoError(t, err)
	assert.Equal(t, []string{"react"}, frameworks)
}

func TestCatalog_UnknownOptions(t *testing.T) {
	cat := scanFixture(t)

	_, err := cat.Languages("desktop")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	assert.Equal(t, []string{"backend", "frontend"}, errors.GetErrorDetails(err)["valid"])

	_, err = cat.Frameworks("backend", "rust")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestCatalog_Resolve(t *testing.T) {
	cat := scanFixture(t)

	layers, err := cat.Resolve(types.Selection{Type: "backend", Language: "python", Framework: "fastapi"})
	require.NoError(t, err)
	require.Len(t, layers, 4)

	assert.Equal(t, types.LayerCommon, layers[0].Kind)
	assert.Equal(t, []string{"general.mdc"}, relPaths(layers[0].Files))

	assert.Equal(t, types.LayerType, layers[1].Kind)
	assert.Equal(t, "backend", layers[1].Name)
	// Direct files plus the type-level common directory.
	assert.Equal(t, []string{"api-standards.md", "security.mdc"}, relPaths(layers[1].Files))

	assert.Equal(t, types.LayerLanguage, layers[2].Kind)
	assert.Equal(t, []string{"style.mdc"}, relPaths(layers[2].Files))

	assert.Equal(t, types.LayerFramework, layers[3].Kind)
	assert.Equal(t, []string{"routing.mdc"}, relPaths(layers[3].Files))

	// Frontmatter made it through the scan.
	assert.Equal(t, "Security baseline", layers[1].Files[1].Meta.Description)
	assert.Equal(t, types.StringList{"*.py"}, layers[2].Files[0].Meta.Globs)
}

func TestCatalog_ResolveWithoutFramework(t *testing.T) {
	cat := scanFixture(t)

	layers, err := cat.Resolve(types.Selection{Type: "backend", Language: "python"})
	require.NoError(t, err)
	require.Len(t, layers, 4)
	assert.Empty(t, layers[3].Files)
}

func TestCatalog_ResolveErrors(t *testing.T) {
	cat := scanFixture(t)

	tests := []struct {
		name string
		sel  types.Selection
		code errors.ErrorCode
	}{
		{"incomplete selection", types.Selection{Type: "backend"}, errors.ErrSelectionInvalid},
		{"unknown type", types.Selection{Type: "desktop", Language: "c"}, errors.ErrNotFound},
		{"unknown language", types.Selection{Type: "backend", Language: "rust"}, errors.ErrNotFound},
		{"unknown framework", types.Selection{Type: "backend", Language: "python", Framework: "django"}, errors.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cat.Resolve(tt.sel)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestCatalog_FindRule(t *testing.T) {
	cat := scanFixture(t)

	rule, err := cat.FindRule("routing.mdc")
	require.NoError(t, err)
	assert.Equal(t, "routing.mdc", rule.Name)

	// Extension is optional.
	rule, err = cat.FindRule("security")
	require.NoError(t, err)
	assert.Equal(t, "security.mdc", rule.Name)

	_, err = cat.FindRule("nonexistent")
	assert.True(t, errors.IsErrorCode(err, errors.ErrRuleNotFound))
}

func TestCatalog_IgnoresNonRuleFiles(t *testing.T) {
	root := testutil.CreateRulesTree(t)
	testutil.CreateFile(t, root, "common/README.txt", "not a rule")
	testutil.CreateFile(t, root, "common/.hidden.mdc", "hidden")
	// Hidden files sit directly in layer directories too, not only
	// under common/.
	testutil.CreateFile(t, root, "backend/.hidden.mdc", "hidden")
	testutil.CreateFile(t, root, "backend/python/.secret.md", "hidden")

	cat, err := catalog.Scan(filesystem.NewOS(), root)
	require.NoError(t, err)

	layers, err := cat.Resolve(types.Selection{Type: "backend", Language: "python"})
	require.NoError(t, err)
	assert.Equal(t, []string{"general.mdc"}, relPaths(layers[0].Files))
	assert.Equal(t, []string{"api-standards.md", "security.mdc"}, relPaths(layers[1].Files))
	assert.Equal(t, []string{"style.mdc"}, relPaths(layers[2].Files))
}

func relPaths(files []types.RuleFile) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.RelPath)
	}
	return out
}
