// Package catalog models the rules repository tree.
//
// Layout:
//
//	common/                   rules installed for every project
//	<type>/                   project type: backend, frontend, mobile-app, ...
//	<type>/common/            type-level rules
//	<type>/<language>/        language rules
//	<type>/<language>/common/ more language rules (optional)
//	<type>/<language>/<framework>/  framework rules
//
// A directory named "common" contributes its files to the enclosing
// layer instead of appearing as a selectable option. Rule files are
// Markdown (.md or .mdc); everything else is ignored.
package catalog

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/tekdi/tekdi-cursor-rules/pkg/errors"
	"github.com/tekdi/tekdi-cursor-rules/pkg/logging"
	"github.com/tekdi/tekdi-cursor-rules/pkg/types"
)

// CommonDirName is the directory name treated as part of the enclosing
// layer at every level of the tree.
const CommonDirName = "common"

// Catalog is a scanned rules repository.
type Catalog struct {
	Root string

	fs types.FS
}

// Scan validates the rules root and returns a Catalog over it.
func Scan(fsys types.FS, root string) (*Catalog, error) {
	logger := logging.GetLogger("catalog")

	info, err := fsys.Stat(root)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrNotFound, "rules root does not exist").
			WithDetail("path", root)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrInvalidInput, "rules root is not a directory").
			WithDetail("path", root)
	}

	c := &Catalog{Root: root, fs: fsys}

	ptypes, err := c.ProjectTypes()
	if err != nil {
		return nil, err
	}
	common, err := c.commonFiles(root)
	if err != nil {
		return nil, err
	}
	if len(ptypes) == 0 && len(common) == 0 {
		return nil, errors.New(errors.ErrCatalogEmpty, "rules root has no common rules and no project types").
			WithDetail("path", root)
	}

	logger.Debug().Str("root", root).Int("types", len(ptypes)).Msg("Scanned rules catalog")
	return c, nil
}

// ProjectTypes lists the selectable project types, sorted.
func (c *Catalog) ProjectTypes() ([]string, error) {
	return c.options(c.Root)
}

// Languages lists the selectable languages for a project type, sorted.
func (c *Catalog) Languages(projectType string) ([]string, error) {
	if err := c.validateOption(c.Root, projectType, "project type"); err != nil {
		return nil, err
	}
	return c.options(filepath.Join(c.Root, projectType))
}

// Frameworks lists the selectable frameworks for a type and language,
// sorted. An empty list means the language has no framework subsets.
func (c *Catalog) Frameworks(projectType, language string) ([]string, error) {
	if err := c.validateOption(c.Root, projectType, "project type"); err != nil {
		return nil, err
	}
	typeDir := filepath.Join(c.Root, projectType)
	if err := c.validateOption(typeDir, language, "language"); err != nil {
		return nil, err
	}
	return c.options(filepath.Join(typeDir, language))
}

// Resolve turns a selection into the four ordered layers. The framework
// layer is empty when no framework is selected.
func (c *Catalog) Resolve(sel types.Selection) ([]types.Layer, error) {
	if !sel.Complete() {
		return nil, errors.New(errors.ErrSelectionInvalid, "selection needs at least a project type and a language")
	}
	if err := c.validateOption(c.Root, sel.Type, "project type"); err != nil {
		return nil, err
	}
	typeDir := filepath.Join(c.Root, sel.Type)
	if err := c.validateOption(typeDir, sel.Language, "language"); err != nil {
		return nil, err
	}
	langDir := filepath.Join(typeDir, sel.Language)
	if sel.Framework != "" {
		if err := c.validateOption(langDir, sel.Framework, "framework"); err != nil {
			return nil, err
		}
	}

	layers := make([]types.Layer, 0, 4)

	commonFiles, err := c.commonFiles(c.Root)
	if err != nil {
		return nil, err
	}
	layers = append(layers, types.Layer{Kind: types.LayerCommon, Name: CommonDirName, Files: tag(commonFiles, types.LayerCommon)})

	typeFiles, err := c.layerFiles(typeDir)
	if err != nil {
		return nil, err
	}
	layers = append(layers, types.Layer{Kind: types.LayerType, Name: sel.Type, Files: tag(typeFiles, types.LayerType)})

	langFiles, err := c.layerFiles(langDir)
	if err != nil {
		return nil, err
	}
	layers = append(layers, types.Layer{Kind: types.LayerLanguage, Name: sel.Language, Files: tag(langFiles, types.LayerLanguage)})

	fw := types.Layer{Kind: types.LayerFramework, Name: sel.Framework}
	if sel.Framework != "" {
		fwFiles, err := c.collect(filepath.Join(langDir, sel.Framework), "")
		if err != nil {
			return nil, err
		}
		fw.Files = tag(fwFiles, types.LayerFramework)
	}
	layers = append(layers, fw)

	return layers, nil
}

// FindRule looks a rule document up by name (with or without extension)
// across the whole tree. Used by the show command.
func (c *Catalog) FindRule(name string) (*types.RuleFile, error) {
	var found *types.RuleFile
	err := c.walk(c.Root, "", func(rf types.RuleFile) {
		if found != nil {
			return
		}
		base := strings.TrimSuffix(rf.Name, filepath.Ext(rf.Name))
		if rf.Name == name || base == name {
			f := rf
			found = &f
		}
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, errors.Newf(errors.ErrRuleNotFound, "no rule named %q in the catalog", name).
			WithDetail("root", c.Root)
	}
	return found, nil
}

// options lists the selectable subdirectories of dir: non-hidden
// directories, excluding "common".
func (c *Catalog) options(dir string) ([]string, error) {
	entries, err := c.fs.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCatalogScan, "cannot read rules directory").
			WithDetail("path", dir)
	}
	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || name == CommonDirName || strings.HasPrefix(name, ".") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// layerFiles gathers the rules belonging to a type or language layer:
// the Markdown files directly in dir plus everything under dir/common.
func (c *Catalog) layerFiles(dir string) ([]types.RuleFile, error) {
	files, err := c.directFiles(dir)
	if err != nil {
		return nil, err
	}
	common, err := c.commonFiles(dir)
	if err != nil {
		return nil, err
	}
	return append(files, common...), nil
}

// commonFiles gathers everything under dir/common, recursively. A
// missing common directory yields an empty slice.
func (c *Catalog) commonFiles(dir string) ([]types.RuleFile, error) {
	commonDir := filepath.Join(dir, CommonDirName)
	if _, err := c.fs.Stat(commonDir); err != nil {
		return nil, nil
	}
	return c.collect(commonDir, "")
}

// directFiles lists the Markdown files immediately inside dir.
func (c *Catalog) directFiles(dir string) ([]types.RuleFile, error) {
	entries, err := c.fs.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCatalogScan, "cannot read rules directory").
			WithDetail("path", dir)
	}
	var files []types.RuleFile
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") || !isRuleFile(entry.Name()) {
			continue
		}
		rf, err := c.load(filepath.Join(dir, entry.Name()), entry.Name())
		if err != nil {
			return nil, err
		}
		files = append(files, rf)
	}
	sortFiles(files)
	return files, nil
}

// collect gathers Markdown files under dir recursively, keeping paths
// relative to the layer root.
func (c *Catalog) collect(dir, rel string) ([]types.RuleFile, error) {
	entries, err := c.fs.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCatalogScan, "cannot read rules directory").
			WithDetail("path", dir)
	}
	var files []types.RuleFile
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if entry.IsDir() {
			sub, err := c.collect(filepath.Join(dir, name), filepath.Join(rel, name))
			if err != nil {
				return nil, err
			}
			files = append(files, sub...)
			continue
		}
		if !isRuleFile(name) {
			continue
		}
		rf, err := c.load(filepath.Join(dir, name), filepath.Join(rel, name))
		if err != nil {
			return nil, err
		}
		files = append(files, rf)
	}
	sortFiles(files)
	return files, nil
}

// walk visits every rule file in the tree, in no particular order.
func (c *Catalog) walk(dir, rel string, fn func(types.RuleFile)) error {
	entries, err := c.fs.ReadDir(dir)
	if err != nil {
		return errors.Wrap(err, errors.ErrCatalogScan, "cannot read rules directory").
			WithDetail("path", dir)
	}
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if entry.IsDir() {
			if err := c.walk(filepath.Join(dir, name), filepath.Join(rel, name), fn); err != nil {
				return err
			}
			continue
		}
		if !isRuleFile(name) {
			continue
		}
		rf, err := c.load(filepath.Join(dir, name), filepath.Join(rel, name))
		if err != nil {
			return err
		}
		fn(rf)
	}
	return nil
}

// load reads one rule file and parses its frontmatter.
func (c *Catalog) load(path, rel string) (types.RuleFile, error) {
	content, err := c.fs.ReadFile(path)
	if err != nil {
		return types.RuleFile{}, errors.Wrap(err, errors.ErrFileAccess, "cannot read rule file").
			WithDetail("path", path)
	}
	meta, _, err := ParseFrontmatter(content)
	if err != nil {
		// Malformed frontmatter is tolerated: the file still installs,
		// it just has no metadata for list/show.
		logger := logging.GetLogger("catalog")
		logger.Warn().Err(err).Str("path", path).Msg("Ignoring malformed frontmatter")
		meta = types.RuleMeta{}
	}
	return types.RuleFile{
		Name:    filepath.Base(path),
		Path:    path,
		RelPath: rel,
		Meta:    meta,
	}, nil
}

// validateOption checks that name is a selectable subdirectory of dir
// and reports the valid options when it is not.
func (c *Catalog) validateOption(dir, name, kind string) error {
	opts, err := c.options(dir)
	if err != nil {
		return err
	}
	for _, opt := range opts {
		if opt == name {
			return nil
		}
	}
	return errors.Newf(errors.ErrNotFound, "unknown %s %q", kind, name).
		WithDetail("valid", opts)
}

func isRuleFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".mdc":
		return true
	default:
		return false
	}
}

func sortFiles(files []types.RuleFile) {
	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
}

func tag(files []types.RuleFile, kind types.LayerKind) []types.RuleFile {
	for i := range files {
		files[i].Layer = kind
	}
	return files
}
