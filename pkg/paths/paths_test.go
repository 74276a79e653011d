package paths

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew_EnvOverrides(t *testing.T) {
	t.Setenv(EnvCacheDir, "/custom/cache")
	t.Setenv(EnvStateDir, "/custom/state")

	p := New()
	assert.Equal(t, "/custom/cache", p.CacheDir())
	assert.Equal(t, "/custom/state", p.StateDir())
	assert.Equal(t, filepath.Join("/custom/state", LogFileName), p.LogFilePath())
}

func TestSourceCheckoutDir(t *testing.T) {
	t.Setenv(EnvCacheDir, "/cache")
	p := New()

	tests := []struct {
		name string
		url  string
		base string
	}{
		{"https remote", "https://github.com/tekdi/tekdi-cursor-rules.git", "tekdi-cursor-rules"},
		{"ssh remote", "git@github.com:acme/rules.git", "rules"},
		{"trailing slash", "https://example.com/team/rules/", "rules"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := p.SourceCheckoutDir(tt.url)
			assert.True(t, strings.HasPrefix(dir, filepath.Join("/cache", SourcesDir)+"/"))
			name := filepath.Base(dir)
			assert.True(t, strings.HasPrefix(name, tt.base+"-"), "got %q", name)
		})
	}

	// Different URLs with the same repo name do not collide.
	a := p.SourceCheckoutDir("https://github.com/a/rules.git")
	b := p.SourceCheckoutDir("https://github.com/b/rules.git")
	assert.NotEqual(t, a, b)

	// Same URL is stable.
	assert.Equal(t, a, p.SourceCheckoutDir("https://github.com/a/rules.git"))
}

func TestTargetDir(t *testing.T) {
	assert.Equal(t, filepath.Join("/proj", ".cursor/rules"), TargetDir("/proj", ""))
	assert.Equal(t, filepath.Join("/proj", "docs/rules"), TargetDir("/proj", "docs/rules"))
	assert.Equal(t, "/abs/rules", TargetDir("/proj", "/abs/rules"))
}

func TestBackupDir(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	got := BackupDir("/proj/.cursor/rules", now)
	assert.Equal(t, "/proj/.cursor/rules-backups/20240601-123000", got)
}
