// Package types defines the shared domain types for cursor-rules.
//
// It is a leaf package: everything else imports it, it imports nothing
// from the rest of the codebase.
package types

import (
	"io/fs"
	"time"
)

// Well-known project types. The catalog discovers types from the rules
// tree, so this list is informational rather than exhaustive.
const (
	ProjectTypeBackend   = "backend"
	ProjectTypeFrontend  = "frontend"
	ProjectTypeMobileApp = "mobile-app"
)

// Selection is the user's answer to the three installation questions.
// Framework is optional; Type and Language are required for an install.
type Selection struct {
	Type      string `koanf:"type"      toml:"type"`
	Language  string `koanf:"language"  toml:"language"`
	Framework string `koanf:"framework" toml:"framework,omitempty"`
}

// Complete reports whether the selection carries enough information to
// resolve an install plan.
func (s Selection) Complete() bool {
	return s.Type != "" && s.Language != ""
}

// LayerKind identifies which level of the rules tree a file came from.
type LayerKind string

const (
	LayerCommon    LayerKind = "common"
	LayerType      LayerKind = "type"
	LayerLanguage  LayerKind = "language"
	LayerFramework LayerKind = "framework"
)

// Layer is one ordered slice of the install: the common rules, then the
// project-type rules, then language, then framework. Later layers win on
// filename collisions.
type Layer struct {
	Kind  LayerKind
	Name  string // "common", "backend", "python", "nestjs", ...
	Files []RuleFile
}

// RuleMeta is the YAML frontmatter carried by .mdc rule documents.
type RuleMeta struct {
	Description string     `yaml:"description"`
	Globs       StringList `yaml:"globs"`
	AlwaysApply bool       `yaml:"alwaysApply"`
}

// StringList unmarshals a YAML value that may be either a single string
// or a sequence of strings. Rule authors use both forms for globs.
type StringList []string

// RuleFile is a single Markdown rule document in the catalog.
type RuleFile struct {
	Name    string // base name, e.g. "api-design.mdc"
	Path    string // absolute path inside the rules checkout
	RelPath string // path relative to the layer directory
	Layer   LayerKind
	Meta    RuleMeta
}

// CopyAction is one planned file copy, in execution order.
type CopyAction struct {
	Source  string // absolute source path in the rules checkout
	Dest    string // absolute destination path in the target dir
	RelPath string // destination path relative to the target dir
	Layer   LayerKind
	Exists  bool // destination already present before the run
}

// FileOutcome describes what happened to one file during an install.
type FileOutcome string

const (
	OutcomeInstalled FileOutcome = "installed" // new file written
	OutcomeUpdated   FileOutcome = "updated"   // existing file backed up and replaced
	OutcomeUnchanged FileOutcome = "unchanged" // existing file already identical
	OutcomeSkipped   FileOutcome = "skipped"   // dry run, nothing written
)

// FileResult is the per-file record in an InstallResult.
type FileResult struct {
	RelPath    string
	Layer      LayerKind
	Outcome    FileOutcome
	BackupPath string // set only when Outcome is OutcomeUpdated
}

// InstallSummary aggregates an install run.
type InstallSummary struct {
	Installed int
	Updated   int
	Unchanged int
	Skipped   int
}

// InstallResult is the full report of one install run.
type InstallResult struct {
	Selection Selection
	TargetDir string
	BackupDir string // empty when no file was overwritten
	DryRun    bool
	Files     []FileResult
	Summary   InstallSummary
	StartedAt time.Time
}

// FileState classifies one target file in a status report.
type FileState string

const (
	StateUpToDate  FileState = "up-to-date"
	StateModified  FileState = "modified"  // content drifted from the manifest hash
	StateMissing   FileState = "missing"   // tracked in the manifest, gone on disk
	StateUntracked FileState = "untracked" // on disk, unknown to the manifest
)

// FileStatus is the per-file record in a StatusReport.
type FileStatus struct {
	RelPath string
	Layer   LayerKind
	State   FileState
}

// StatusReport compares a target directory against its manifest.
type StatusReport struct {
	TargetDir        string
	SourceRevision   string // current revision of the rules checkout
	ManifestRevision string // revision recorded at install time
	Stale            bool   // revisions differ, an update + reinstall is due
	Files            []FileStatus
}

// FS is the filesystem abstraction used by commands and the executor so
// tests can swap in a memory filesystem.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)
	Rename(oldpath, newpath string) error
	Remove(name string) error
	RemoveAll(path string) error
}
