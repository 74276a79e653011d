package commands

import (
	"path/filepath"

	"github.com/tekdi/tekdi-cursor-rules/pkg/config"
	"github.com/tekdi/tekdi-cursor-rules/pkg/errors"
	"github.com/tekdi/tekdi-cursor-rules/pkg/filesystem"
	"github.com/tekdi/tekdi-cursor-rules/pkg/logging"
	"github.com/tekdi/tekdi-cursor-rules/pkg/types"
)

// InitOptions defines the options for the Init command.
type InitOptions struct {
	ProjectRoot string
	// Force overwrites an existing config file.
	Force bool
	FS    types.FS
}

// InitResult reports the written config file.
type InitResult struct {
	Path    string
	Created bool
}

// Init writes a commented starter config into the project root. It
// needs no rules checkout, so it does not go through Prepare.
func Init(opts InitOptions) (*InitResult, error) {
	logger := logging.GetLogger("commands")
	logger.Debug().Str("command", "Init").Msg("Executing command")

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	projectRoot := opts.ProjectRoot
	if projectRoot == "" {
		projectRoot = "."
	}

	path := filepath.Join(projectRoot, config.ProjectFileNames[0])
	if _, err := fsys.Stat(path); err == nil && !opts.Force {
		return &InitResult{Path: path, Created: false}, nil
	}

	if err := fsys.WriteFile(path, []byte(config.StarterContent()), 0644); err != nil {
		return nil, errors.Wrap(err, errors.ErrFileWrite, "cannot write config file").
			WithDetail("path", path)
	}

	logger.Info().Str("path", path).Msg("Wrote starter config")
	return &InitResult{Path: path, Created: true}, nil
}
