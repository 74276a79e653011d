package commands

import (
	"github.com/tekdi/tekdi-cursor-rules/internal/version"
	"github.com/tekdi/tekdi-cursor-rules/pkg/errors"
	"github.com/tekdi/tekdi-cursor-rules/pkg/install"
	"github.com/tekdi/tekdi-cursor-rules/pkg/logging"
	"github.com/tekdi/tekdi-cursor-rules/pkg/types"
)

// InstallOptions defines the options for the Install command.
type InstallOptions struct {
	// Selection answers the three install questions. Empty fields fall
	// back to the configured defaults.
	Selection types.Selection
	// DryRun reports the plan without writing anything.
	DryRun bool
	// Force rewrites files even when their content is unchanged.
	Force bool
}

// Install resolves the selection against the catalog and copies the
// rule layers into the target directory.
func Install(env *Environment, opts InstallOptions) (*types.InstallResult, error) {
	logger := logging.GetLogger("commands")
	logger.Debug().Str("command", "Install").Msg("Executing command")

	sel := env.MergeSelection(opts.Selection)
	if !sel.Complete() {
		return nil, errors.New(errors.ErrSelectionInvalid, "a project type and a language are required").
			WithDetails(map[string]interface{}{
				"type":     sel.Type,
				"language": sel.Language,
			})
	}

	layers, err := env.Catalog.Resolve(sel)
	if err != nil {
		return nil, err
	}

	actions := install.Plan(env.FS, layers, env.TargetDir)

	// Best effort: a failing rev-parse should not block an install.
	revision, err := env.Repo.Revision()
	if err != nil {
		logger.Warn().Err(err).Msg("Could not resolve source revision")
		revision = ""
	}

	return install.Execute(actions, install.Options{
		FS:             env.FS,
		TargetDir:      env.TargetDir,
		Selection:      sel,
		SourceURL:      env.Repo.URL,
		SourceRevision: revision,
		ToolVersion:    version.Version,
		DryRun:         opts.DryRun,
		Force:          opts.Force,
	})
}
