// Package manifest records what cursor-rules installed into a target
// directory, so status and uninstall can tell managed files from the
// user's own.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/tekdi/tekdi-cursor-rules/pkg/errors"
	"github.com/tekdi/tekdi-cursor-rules/pkg/types"
)

// FileName is the manifest file written into the target directory.
const FileName = ".rules-manifest.toml"

// Manifest is the installed-state record for one target directory.
type Manifest struct {
	Version     string          `toml:"version"`
	Source      Source          `toml:"source"`
	Selection   types.Selection `toml:"selection"`
	InstalledAt time.Time       `toml:"installed_at"`
	Files       []File          `toml:"files,omitempty"`
}

// Source records where the rules came from.
type Source struct {
	URL      string `toml:"url"`
	Revision string `toml:"revision,omitempty"`
}

// File is one installed rule file.
type File struct {
	Path  string `toml:"path"` // relative to the target dir
	Hash  string `toml:"hash"` // sha256 of the installed content
	Layer string `toml:"layer"`
}

// Load reads the manifest from a target directory. A missing manifest
// yields an empty one, not an error.
func Load(fsys types.FS, targetDir string) (*Manifest, error) {
	data, err := fsys.ReadFile(filepath.Join(targetDir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return &Manifest{}, nil
		}
		return nil, errors.Wrap(err, errors.ErrManifestLoad, "cannot read manifest").
			WithDetail("dir", targetDir)
	}
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestLoad, "cannot parse manifest").
			WithDetail("dir", targetDir)
	}
	return &m, nil
}

// Save writes the manifest into the target directory.
func (m *Manifest) Save(fsys types.FS, targetDir string) error {
	data, err := toml.Marshal(m)
	if err != nil {
		return errors.Wrap(err, errors.ErrManifestSave, "cannot encode manifest")
	}
	path := filepath.Join(targetDir, FileName)
	if err := fsys.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, errors.ErrManifestSave, "cannot write manifest").
			WithDetail("path", path)
	}
	return nil
}

// Tracked looks up a file by its path relative to the target dir.
func (m *Manifest) Tracked(relPath string) (File, bool) {
	for _, f := range m.Files {
		if f.Path == relPath {
			return f, true
		}
	}
	return File{}, false
}

// Empty reports whether the manifest tracks nothing.
func (m *Manifest) Empty() bool {
	return len(m.Files) == 0
}

// Hash returns the manifest hash for a blob of content.
func Hash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
