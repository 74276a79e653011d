// Package commands implements the cursor-rules operations behind the
// CLI. Each command is a function taking an options struct and
// returning a result type; rendering happens in the cmd layer.
package commands

import (
	"github.com/tekdi/tekdi-cursor-rules/pkg/catalog"
	"github.com/tekdi/tekdi-cursor-rules/pkg/config"
	"github.com/tekdi/tekdi-cursor-rules/pkg/filesystem"
	"github.com/tekdi/tekdi-cursor-rules/pkg/logging"
	"github.com/tekdi/tekdi-cursor-rules/pkg/paths"
	"github.com/tekdi/tekdi-cursor-rules/pkg/source"
	"github.com/tekdi/tekdi-cursor-rules/pkg/types"
)

// Environment is the resolved context shared by the commands: config,
// rules checkout, scanned catalog, and target directory.
type Environment struct {
	FS          types.FS
	Config      *config.Config
	Paths       *paths.Paths
	Repo        *source.Repo
	Catalog     *catalog.Catalog
	ProjectRoot string
	TargetDir   string
}

// PrepareOptions configures environment resolution. The string fields
// are flag overrides; empty values defer to config.
type PrepareOptions struct {
	ProjectRoot string
	SourceURL   string
	SourceRef   string
	TargetDir   string
	FS          types.FS
}

// Prepare loads configuration, makes the rules checkout available, and
// scans the catalog.
func Prepare(opts PrepareOptions) (*Environment, error) {
	logger := logging.GetLogger("commands")
	defer logging.LogOperationStart(logger, "prepare")()

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	projectRoot := opts.ProjectRoot
	if projectRoot == "" {
		projectRoot = "."
	}

	cfg, err := config.Load(projectRoot, map[string]interface{}{
		"source.url": opts.SourceURL,
		"source.ref": opts.SourceRef,
		"target.dir": opts.TargetDir,
	})
	if err != nil {
		return nil, err
	}

	p := paths.New()
	repo := source.New(cfg.Source.URL, cfg.Source.Ref, p)
	if err := repo.Ensure(); err != nil {
		return nil, err
	}

	cat, err := catalog.Scan(fsys, repo.Dir)
	if err != nil {
		return nil, err
	}

	env := &Environment{
		FS:          fsys,
		Config:      cfg,
		Paths:       p,
		Repo:        repo,
		Catalog:     cat,
		ProjectRoot: projectRoot,
		TargetDir:   paths.TargetDir(projectRoot, cfg.Target.Dir),
	}
	logger.Debug().
		Str("source", cfg.Source.URL).
		Str("checkout", repo.Dir).
		Str("target", env.TargetDir).
		Msg("Environment prepared")
	return env, nil
}

// MergeSelection fills empty fields of sel from the configured
// defaults. Flag and prompt answers always win over config.
func (e *Environment) MergeSelection(sel types.Selection) types.Selection {
	if sel.Type == "" {
		sel.Type = e.Config.Defaults.Type
	}
	if sel.Language == "" {
		sel.Language = e.Config.Defaults.Language
	}
	if sel.Framework == "" {
		sel.Framework = e.Config.Defaults.Framework
	}
	return sel
}
