package commands

import (
	"os"
	"path/filepath"

	"github.com/tekdi/tekdi-cursor-rules/pkg/errors"
	"github.com/tekdi/tekdi-cursor-rules/pkg/logging"
	"github.com/tekdi/tekdi-cursor-rules/pkg/manifest"
)

// UninstallOptions defines the options for the Uninstall command.
type UninstallOptions struct {
	// KeepModified leaves files whose content no longer matches the
	// manifest hash.
	KeepModified bool
	// DryRun reports what would be removed without removing it.
	DryRun bool
}

// UninstallResult reports removed and kept files, relative to the
// target directory.
type UninstallResult struct {
	TargetDir string
	DryRun    bool
	Removed   []string
	Kept      []string
}

// Uninstall removes manifest-tracked rule files from the target
// directory. Files the manifest does not know about are never touched.
func Uninstall(env *Environment, opts UninstallOptions) (*UninstallResult, error) {
	logger := logging.GetLogger("commands")
	logger.Debug().Str("command", "Uninstall").Msg("Executing command")

	m, err := manifest.Load(env.FS, env.TargetDir)
	if err != nil {
		return nil, err
	}

	result := &UninstallResult{TargetDir: env.TargetDir, DryRun: opts.DryRun}
	var kept []manifest.File

	for _, tracked := range m.Files {
		path := filepath.Join(env.TargetDir, tracked.Path)
		content, err := env.FS.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				// Already gone; forget it.
				result.Removed = append(result.Removed, tracked.Path)
				continue
			}
			return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot read installed file").
				WithDetail("path", path)
		}

		if opts.KeepModified && manifest.Hash(content) != tracked.Hash {
			result.Kept = append(result.Kept, tracked.Path)
			kept = append(kept, tracked)
			continue
		}

		if !opts.DryRun {
			if err := env.FS.Remove(path); err != nil {
				return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot remove installed file").
					WithDetail("path", path)
			}
		}
		result.Removed = append(result.Removed, tracked.Path)
	}

	if opts.DryRun {
		return result, nil
	}

	manifestPath := filepath.Join(env.TargetDir, manifest.FileName)
	if len(kept) > 0 {
		m.Files = kept
		if err := m.Save(env.FS, env.TargetDir); err != nil {
			return nil, err
		}
	} else if !m.Empty() {
		if err := env.FS.Remove(manifestPath); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot remove manifest").
				WithDetail("path", manifestPath)
		}
	}

	logger.Info().Int("removed", len(result.Removed)).Int("kept", len(result.Kept)).Msg("Uninstall finished")
	return result, nil
}
