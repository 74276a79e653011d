// Package paths provides centralized path handling for cursor-rules.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvCacheDir overrides the XDG cache directory for cursor-rules
	EnvCacheDir = "CURSOR_RULES_CACHE_DIR"

	// EnvStateDir overrides the XDG state directory for cursor-rules
	EnvStateDir = "CURSOR_RULES_STATE_DIR"

	// EnvConfigDir overrides the XDG config directory for cursor-rules
	EnvConfigDir = "CURSOR_RULES_CONFIG_DIR"
)

// Default directories and files
const (
	// AppDirName is the directory name for cursor-rules-specific files
	AppDirName = "cursor-rules"

	// SourcesDir is the cache subdirectory holding cloned rules repositories
	SourcesDir = "sources"

	// DefaultTargetDir is the rules directory inside a project
	DefaultTargetDir = ".cursor/rules"

	// BackupDirName is the sibling directory holding per-run backups
	BackupDirName = "rules-backups"

	// BackupTimestampFormat names one backup run directory
	BackupTimestampFormat = "20060102-150405"

	// LogFileName is the name of the log file
	LogFileName = "cursor-rules.log"
)

// Paths provides centralized path management for cursor-rules
type Paths struct {
	cacheDir  string
	stateDir  string
	configDir string
}

// New resolves the XDG directories, honoring the CURSOR_RULES_*
// environment overrides.
func New() *Paths {
	p := &Paths{
		cacheDir:  filepath.Join(xdg.CacheHome, AppDirName),
		stateDir:  filepath.Join(xdg.StateHome, AppDirName),
		configDir: filepath.Join(xdg.ConfigHome, AppDirName),
	}
	if dir := os.Getenv(EnvCacheDir); dir != "" {
		p.cacheDir = dir
	}
	if dir := os.Getenv(EnvStateDir); dir != "" {
		p.stateDir = dir
	}
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = dir
	}
	return p
}

// CacheDir returns the cursor-rules cache directory.
func (p *Paths) CacheDir() string { return p.cacheDir }

// StateDir returns the cursor-rules state directory.
func (p *Paths) StateDir() string { return p.stateDir }

// ConfigDir returns the cursor-rules config directory.
func (p *Paths) ConfigDir() string { return p.configDir }

// LogFilePath returns the path to the log file.
func (p *Paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// SourceCheckoutDir returns the cache directory for a cloned rules
// repository. The directory name combines a sanitized repository name
// with a short URL hash so distinct remotes never collide.
func (p *Paths) SourceCheckoutDir(url string) string {
	return filepath.Join(p.cacheDir, SourcesDir, checkoutName(url))
}

// TargetDir resolves the rules directory for a project. An absolute
// configured dir is used as-is, a relative one is joined to the
// project root, and an empty one falls back to the default.
func TargetDir(projectRoot, configured string) string {
	if configured == "" {
		configured = DefaultTargetDir
	}
	if filepath.IsAbs(configured) {
		return configured
	}
	return filepath.Join(projectRoot, configured)
}

// BackupDir returns the backup directory for one install run, a
// timestamped folder next to the target directory.
func BackupDir(targetDir string, now time.Time) string {
	return filepath.Join(filepath.Dir(targetDir), BackupDirName, now.UTC().Format(BackupTimestampFormat))
}

// checkoutName derives a filesystem-safe directory name from a
// repository URL or local path.
func checkoutName(url string) string {
	base := strings.TrimSuffix(filepath.Base(strings.TrimRight(url, "/")), ".git")
	base = sanitize(base)
	if base == "" {
		base = "rules"
	}
	sum := sha256.Sum256([]byte(url))
	return base + "-" + hex.EncodeToString(sum[:])[:8]
}

func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-.")
}
