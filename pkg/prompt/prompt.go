// Package prompt collects the install selection interactively.
package prompt

import (
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/tekdi/tekdi-cursor-rules/pkg/catalog"
	"github.com/tekdi/tekdi-cursor-rules/pkg/errors"
	"github.com/tekdi/tekdi-cursor-rules/pkg/types"
)

// noFramework is the select value for skipping the framework layer.
const noFramework = ""

// IsInteractive reports whether stdin is attached to a terminal.
func IsInteractive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Select walks the user through the three questions, offering only
// options the catalog actually has. defaults preselects answers where
// they are still valid.
func Select(cat *catalog.Catalog, defaults types.Selection) (types.Selection, error) {
	if !IsInteractive() {
		return types.Selection{}, errors.New(errors.ErrNotInteractive, "stdin is not a terminal, pass --type and --language instead")
	}

	sel := types.Selection{}

	ptypes, err := cat.ProjectTypes()
	if err != nil {
		return sel, err
	}
	if len(ptypes) == 0 {
		return sel, errors.New(errors.ErrCatalogEmpty, "the rules repository has no project types")
	}
	sel.Type = preselect(defaults.Type, ptypes)
	if err := runSelect("What kind of project is this?", ptypes, &sel.Type); err != nil {
		return sel, err
	}

	languages, err := cat.Languages(sel.Type)
	if err != nil {
		return sel, err
	}
	if len(languages) == 0 {
		return sel, errors.Newf(errors.ErrCatalogEmpty, "no languages available for %q", sel.Type)
	}
	sel.Language = preselect(defaults.Language, languages)
	if err := runSelect("Which language?", languages, &sel.Language); err != nil {
		return sel, err
	}

	frameworks, err := cat.Frameworks(sel.Type, sel.Language)
	if err != nil {
		return sel, err
	}
	if len(frameworks) == 0 {
		return sel, nil
	}

	options := make([]huh.Option[string], 0, len(frameworks)+1)
	options = append(options, huh.NewOption("None (language rules only)", noFramework))
	for _, fw := range frameworks {
		options = append(options, huh.NewOption(fw, fw))
	}
	sel.Framework = preselect(defaults.Framework, frameworks)

	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Which framework?").
			Options(options...).
			Value(&sel.Framework),
	))
	if err := form.Run(); err != nil {
		return sel, errors.Wrap(err, errors.ErrNotInteractive, "framework prompt failed")
	}

	return sel, nil
}

// runSelect shows one select question with plain string options.
func runSelect(title string, values []string, value *string) error {
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(title).
			Options(huh.NewOptions(values...)...).
			Value(value),
	))
	if err := form.Run(); err != nil {
		return errors.Wrapf(err, errors.ErrNotInteractive, "prompt %q failed", title)
	}
	return nil
}

// preselect keeps a default answer only when it is still offered.
func preselect(def string, options []string) string {
	for _, opt := range options {
		if opt == def {
			return def
		}
	}
	return ""
}
