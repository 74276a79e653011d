package commands

import (
	"github.com/tekdi/tekdi-cursor-rules/pkg/install"
	"github.com/tekdi/tekdi-cursor-rules/pkg/logging"
	"github.com/tekdi/tekdi-cursor-rules/pkg/types"
)

// ListOptions defines the options for the List command.
type ListOptions struct {
	// Selection narrows the listing. A complete selection lists the
	// files an install would copy; a partial or empty one lists the
	// catalog inventory.
	Selection types.Selection
}

// TypeListing is one project type and its languages.
type TypeListing struct {
	Name      string
	Languages []LanguageListing
}

// LanguageListing is one language and its frameworks.
type LanguageListing struct {
	Name       string
	Frameworks []string
}

// ListResult is the catalog inventory, plus the resolved file list when
// the selection was complete.
type ListResult struct {
	Selection types.Selection
	Types     []TypeListing
	Files     []types.RuleFile
}

// List reports what the catalog offers.
func List(env *Environment, opts ListOptions) (*ListResult, error) {
	logger := logging.GetLogger("commands")
	logger.Debug().Str("command", "List").Msg("Executing command")

	sel := env.MergeSelection(opts.Selection)
	result := &ListResult{Selection: sel}

	ptypes, err := env.Catalog.ProjectTypes()
	if err != nil {
		return nil, err
	}
	for _, ptype := range ptypes {
		listing := TypeListing{Name: ptype}
		languages, err := env.Catalog.Languages(ptype)
		if err != nil {
			return nil, err
		}
		for _, language := range languages {
			frameworks, err := env.Catalog.Frameworks(ptype, language)
			if err != nil {
				return nil, err
			}
			listing.Languages = append(listing.Languages, LanguageListing{
				Name:       language,
				Frameworks: frameworks,
			})
		}
		result.Types = append(result.Types, listing)
	}

	if sel.Complete() {
		layers, err := env.Catalog.Resolve(sel)
		if err != nil {
			return nil, err
		}
		for _, action := range install.Plan(env.FS, layers, env.TargetDir) {
			result.Files = append(result.Files, types.RuleFile{
				Name:    action.RelPath,
				Path:    action.Source,
				RelPath: action.RelPath,
				Layer:   action.Layer,
			})
		}
	}

	return result, nil
}
