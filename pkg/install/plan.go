// Package install plans and executes rule installations: ordered layer
// copies into the target directory, with backup-before-overwrite and a
// manifest refresh.
package install

import (
	"path/filepath"
	"sort"

	"github.com/tekdi/tekdi-cursor-rules/pkg/types"
)

// Plan flattens resolved layers into ordered copy actions. Layer order
// is fixed (common, type, language, framework); when two layers carry
// the same relative path the later layer wins and the earlier file is
// not copied at all.
func Plan(fsys types.FS, layers []types.Layer, targetDir string) []types.CopyAction {
	// Later layers override earlier ones on destination path.
	winners := make(map[string]types.RuleFile)
	order := make(map[string]int)
	for layerIdx, layer := range layers {
		for _, file := range layer.Files {
			winners[file.RelPath] = file
			order[file.RelPath] = layerIdx
		}
	}

	actions := make([]types.CopyAction, 0, len(winners))
	for rel, file := range winners {
		dest := filepath.Join(targetDir, rel)
		exists := false
		if info, err := fsys.Stat(dest); err == nil && !info.IsDir() {
			exists = true
		}
		actions = append(actions, types.CopyAction{
			Source:  file.Path,
			Dest:    dest,
			RelPath: rel,
			Layer:   file.Layer,
			Exists:  exists,
		})
	}

	// Deterministic order: layer first, then path.
	sort.Slice(actions, func(i, j int) bool {
		oi, oj := order[actions[i].RelPath], order[actions[j].RelPath]
		if oi != oj {
			return oi < oj
		}
		return actions[i].RelPath < actions[j].RelPath
	})
	return actions
}
