package install

import (
	"bytes"
	"path/filepath"
	"time"

	"github.com/tekdi/tekdi-cursor-rules/pkg/errors"
	"github.com/tekdi/tekdi-cursor-rules/pkg/logging"
	"github.com/tekdi/tekdi-cursor-rules/pkg/manifest"
	"github.com/tekdi/tekdi-cursor-rules/pkg/paths"
	"github.com/tekdi/tekdi-cursor-rules/pkg/types"
)

// Options configures one install run.
type Options struct {
	FS        types.FS
	TargetDir string
	Selection types.Selection

	// SourceURL and SourceRevision are recorded in the manifest.
	SourceURL      string
	SourceRevision string

	// ToolVersion is recorded in the manifest.
	ToolVersion string

	// DryRun reports the plan without touching the filesystem.
	DryRun bool

	// Force copies files even when the destination content is identical.
	Force bool

	// Now is the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// Execute runs the planned actions in order. Execution stops at the
// first filesystem error; actions completed before it stay reported in
// the returned result.
func Execute(actions []types.CopyAction, opts Options) (*types.InstallResult, error) {
	logger := logging.GetLogger("install")
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	started := now()

	result := &types.InstallResult{
		Selection: opts.Selection,
		TargetDir: opts.TargetDir,
		DryRun:    opts.DryRun,
		StartedAt: started,
	}

	if opts.DryRun {
		for _, action := range actions {
			result.Files = append(result.Files, types.FileResult{
				RelPath: action.RelPath,
				Layer:   action.Layer,
				Outcome: types.OutcomeSkipped,
			})
			result.Summary.Skipped++
		}
		logger.Info().Int("files", len(actions)).Msg("Dry run, nothing written")
		return result, nil
	}

	if err := opts.FS.MkdirAll(opts.TargetDir, 0755); err != nil {
		return result, errors.Wrap(err, errors.ErrDirCreate, "cannot create target directory").
			WithDetail("dir", opts.TargetDir)
	}

	backupDir := paths.BackupDir(opts.TargetDir, started)
	backupMade := false

	m := &manifest.Manifest{
		Version:     opts.ToolVersion,
		Source:      manifest.Source{URL: opts.SourceURL, Revision: opts.SourceRevision},
		Selection:   opts.Selection,
		InstalledAt: started,
	}

	for _, action := range actions {
		content, err := opts.FS.ReadFile(action.Source)
		if err != nil {
			return result, errors.Wrap(err, errors.ErrFileAccess, "cannot read rule file").
				WithDetail("path", action.Source)
		}

		fileResult := types.FileResult{RelPath: action.RelPath, Layer: action.Layer}

		switch {
		case action.Exists:
			existing, err := opts.FS.ReadFile(action.Dest)
			if err != nil {
				return result, errors.Wrap(err, errors.ErrFileAccess, "cannot read existing file").
					WithDetail("path", action.Dest)
			}
			if bytes.Equal(existing, content) && !opts.Force {
				fileResult.Outcome = types.OutcomeUnchanged
				result.Summary.Unchanged++
				break
			}
			backupPath := filepath.Join(backupDir, action.RelPath)
			if err := backup(opts.FS, action.Dest, backupPath); err != nil {
				return result, err
			}
			backupMade = true
			if err := write(opts.FS, action.Dest, content); err != nil {
				return result, err
			}
			fileResult.Outcome = types.OutcomeUpdated
			fileResult.BackupPath = backupPath
			result.Summary.Updated++
			logger.Info().Str("file", action.RelPath).Str("backup", backupPath).Msg("Replaced rule file")

		default:
			if err := write(opts.FS, action.Dest, content); err != nil {
				return result, err
			}
			fileResult.Outcome = types.OutcomeInstalled
			result.Summary.Installed++
			logger.Info().Str("file", action.RelPath).Msg("Installed rule file")
		}

		result.Files = append(result.Files, fileResult)
		m.Files = append(m.Files, manifest.File{
			Path:  action.RelPath,
			Hash:  manifest.Hash(content),
			Layer: string(action.Layer),
		})
	}

	if backupMade {
		result.BackupDir = backupDir
	}

	if err := m.Save(opts.FS, opts.TargetDir); err != nil {
		return result, err
	}

	logger.Info().
		Int("installed", result.Summary.Installed).
		Int("updated", result.Summary.Updated).
		Int("unchanged", result.Summary.Unchanged).
		Msg("Install finished")
	return result, nil
}

// backup moves an existing destination file into the run's backup dir,
// preserving its relative path.
func backup(fsys types.FS, src, dest string) error {
	if err := fsys.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return errors.Wrap(err, errors.ErrBackupCreate, "cannot create backup directory").
			WithDetail("dir", filepath.Dir(dest))
	}
	if err := fsys.Rename(src, dest); err != nil {
		return errors.Wrap(err, errors.ErrBackupCreate, "cannot move file into backup").
			WithDetails(map[string]interface{}{"from": src, "to": dest})
	}
	return nil
}

func write(fsys types.FS, dest string, content []byte) error {
	if err := fsys.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "cannot create destination directory").
			WithDetail("dir", filepath.Dir(dest))
	}
	if err := fsys.WriteFile(dest, content, 0644); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot write rule file").
			WithDetail("path", dest)
	}
	return nil
}
