package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tekdi/tekdi-cursor-rules/pkg/types"
)

func TestParseFrontmatter(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantMeta types.RuleMeta
		wantBody string
		wantErr  bool
	}{
		{
			name:     "no frontmatter",
			content:  "# Just markdown\n",
			wantMeta: types.RuleMeta{},
			wantBody: "# Just markdown\n",
		},
		{
			name:    "full frontmatter with scalar glob",
			content: "---\ndescription: Python style\nglobs: \"*.py\"\nalwaysApply: true\n---\n# Body\n",
			wantMeta: types.RuleMeta{
				Description: "Python style",
				Globs:       types.StringList{"*.py"},
				AlwaysApply: true,
			},
			wantBody: "# Body\n",
		},
		{
			name:    "glob list",
			content: "---\nglobs:\n  - \"*.ts\"\n  - \"*.tsx\"\n---\nbody",
			wantMeta: types.RuleMeta{
				Globs: types.StringList{"*.ts", "*.tsx"},
			},
			wantBody: "body",
		},
		{
			name:     "unterminated fence is treated as body",
			content:  "---\ndescription: dangling\n",
			wantMeta: types.RuleMeta{},
			wantBody: "---\ndescription: dangling\n",
		},
		{
			name:     "fence must start its own line",
			content:  "--- not a fence\ncontent\n",
			wantMeta: types.RuleMeta{},
			wantBody: "--- not a fence\ncontent\n",
		},
		{
			name:    "crlf line endings",
			content: "---\r\ndescription: windows\r\n---\r\nbody\r\n",
			wantMeta: types.RuleMeta{
				Description: "windows",
			},
			wantBody: "body\r\n",
		},
		{
			name:    "malformed yaml",
			content: "---\ndescription: [unclosed\n---\nbody",
			wantErr: true,
		},
		{
			name:     "empty frontmatter block",
			content:  "---\n---\nbody\n",
			wantMeta: types.RuleMeta{},
			wantBody: "body\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, body, err := ParseFrontmatter([]byte(tt.content))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMeta, meta)
			assert.Equal(t, tt.wantBody, string(body))
		})
	}
}
