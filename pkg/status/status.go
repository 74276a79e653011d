// Package status compares an installed target directory against its
// manifest. It never mutates anything.
package status

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tekdi/tekdi-cursor-rules/pkg/errors"
	"github.com/tekdi/tekdi-cursor-rules/pkg/logging"
	"github.com/tekdi/tekdi-cursor-rules/pkg/manifest"
	"github.com/tekdi/tekdi-cursor-rules/pkg/types"
)

// Check builds a drift report for targetDir. sourceRevision is the
// current revision of the rules checkout ("" for local sources).
func Check(fsys types.FS, m *manifest.Manifest, targetDir, sourceRevision string) (*types.StatusReport, error) {
	logger := logging.GetLogger("status")

	report := &types.StatusReport{
		TargetDir:        targetDir,
		SourceRevision:   sourceRevision,
		ManifestRevision: m.Source.Revision,
	}
	if m.Source.Revision != "" && sourceRevision != "" && m.Source.Revision != sourceRevision {
		report.Stale = true
	}

	// Tracked files: up-to-date, modified, or missing.
	for _, tracked := range m.Files {
		path := filepath.Join(targetDir, tracked.Path)
		content, err := fsys.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				report.Files = append(report.Files, types.FileStatus{
					RelPath: tracked.Path,
					Layer:   types.LayerKind(tracked.Layer),
					State:   types.StateMissing,
				})
				continue
			}
			return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot read installed file").
				WithDetail("path", path)
		}
		state := types.StateUpToDate
		if manifest.Hash(content) != tracked.Hash {
			state = types.StateModified
		}
		report.Files = append(report.Files, types.FileStatus{
			RelPath: tracked.Path,
			Layer:   types.LayerKind(tracked.Layer),
			State:   state,
		})
	}

	// Untracked rule files present in the target dir.
	untracked, err := findUntracked(fsys, m, targetDir, "")
	if err != nil {
		return nil, err
	}
	report.Files = append(report.Files, untracked...)

	sort.Slice(report.Files, func(i, j int) bool {
		return report.Files[i].RelPath < report.Files[j].RelPath
	})

	logger.Debug().Str("target", targetDir).Int("files", len(report.Files)).Bool("stale", report.Stale).Msg("Status checked")
	return report, nil
}

// findUntracked walks the target dir for Markdown files the manifest
// does not know about. Hidden files (the manifest itself included) are
// skipped.
func findUntracked(fsys types.FS, m *manifest.Manifest, dir, rel string) ([]types.FileStatus, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot read target directory").
			WithDetail("dir", dir)
	}

	var out []types.FileStatus
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if entry.IsDir() {
			sub, err := findUntracked(fsys, m, filepath.Join(dir, name), filepath.Join(rel, name))
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".md" && ext != ".mdc" {
			continue
		}
		relPath := filepath.Join(rel, name)
		if _, ok := m.Tracked(relPath); ok {
			continue
		}
		out = append(out, types.FileStatus{RelPath: relPath, State: types.StateUntracked})
	}
	return out, nil
}
