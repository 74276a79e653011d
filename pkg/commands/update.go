package commands

import (
	"github.com/tekdi/tekdi-cursor-rules/pkg/logging"
)

// UpdateResult reports the refreshed rules checkout.
type UpdateResult struct {
	URL      string
	Dir      string
	Revision string
	Local    bool
}

// Update refreshes the cached rules repository.
func Update(env *Environment) (*UpdateResult, error) {
	logger := logging.GetLogger("commands")
	logger.Debug().Str("command", "Update").Msg("Executing command")

	if err := env.Repo.Update(); err != nil {
		return nil, err
	}

	revision, err := env.Repo.Revision()
	if err != nil {
		logger.Warn().Err(err).Msg("Could not resolve source revision")
		revision = ""
	}

	return &UpdateResult{
		URL:      env.Repo.URL,
		Dir:      env.Repo.Dir,
		Revision: revision,
		Local:    env.Repo.Local(),
	}, nil
}
