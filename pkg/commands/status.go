package commands

import (
	"github.com/tekdi/tekdi-cursor-rules/pkg/logging"
	"github.com/tekdi/tekdi-cursor-rules/pkg/manifest"
	"github.com/tekdi/tekdi-cursor-rules/pkg/status"
	"github.com/tekdi/tekdi-cursor-rules/pkg/types"
)

// Status builds a drift report for the target directory.
func Status(env *Environment) (*types.StatusReport, error) {
	logger := logging.GetLogger("commands")
	logger.Debug().Str("command", "Status").Msg("Executing command")

	m, err := manifest.Load(env.FS, env.TargetDir)
	if err != nil {
		return nil, err
	}

	revision, err := env.Repo.Revision()
	if err != nil {
		logger.Warn().Err(err).Msg("Could not resolve source revision")
		revision = ""
	}

	return status.Check(env.FS, m, env.TargetDir, revision)
}
