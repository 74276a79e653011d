package commands

import (
	"github.com/tekdi/tekdi-cursor-rules/pkg/catalog"
	"github.com/tekdi/tekdi-cursor-rules/pkg/errors"
	"github.com/tekdi/tekdi-cursor-rules/pkg/logging"
	"github.com/tekdi/tekdi-cursor-rules/pkg/types"
)

// ShowOptions defines the options for the Show command.
type ShowOptions struct {
	// Rule is the rule name, with or without its extension.
	Rule string
}

// ShowResult carries one rule document and its parsed metadata.
type ShowResult struct {
	Rule types.RuleFile
	Body string
}

// Show looks a rule up by name and returns its body for rendering.
func Show(env *Environment, opts ShowOptions) (*ShowResult, error) {
	logger := logging.GetLogger("commands")
	logger.Debug().Str("command", "Show").Str("rule", opts.Rule).Msg("Executing command")

	rule, err := env.Catalog.FindRule(opts.Rule)
	if err != nil {
		return nil, err
	}

	content, err := env.FS.ReadFile(rule.Path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot read rule file").
			WithDetail("path", rule.Path)
	}
	_, body, err := catalog.ParseFrontmatter(content)
	if err != nil {
		body = content
	}

	return &ShowResult{Rule: *rule, Body: string(body)}, nil
}
