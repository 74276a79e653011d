// Package config loads cursor-rules configuration using koanf.
//
// Precedence, lowest to highest: embedded defaults, the project's
// .cursor-rules.toml (or cursor-rules.toml), CURSOR_RULES_* environment
// variables, then explicit overrides (CLI flags).
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/tekdi/tekdi-cursor-rules/pkg/errors"
	"github.com/tekdi/tekdi-cursor-rules/pkg/types"
)

// EnvPrefix is the prefix for environment variable overrides, e.g.
// CURSOR_RULES_SOURCE_URL maps to source.url.
const EnvPrefix = "CURSOR_RULES_"

// ProjectFileNames are the config file names probed in the project
// root, in order. The first one found wins.
var ProjectFileNames = []string{".cursor-rules.toml", "cursor-rules.toml"}

// Config is the resolved cursor-rules configuration.
type Config struct {
	Source   SourceConfig    `koanf:"source"`
	Target   TargetConfig    `koanf:"target"`
	Defaults types.Selection `koanf:"defaults"`
}

// SourceConfig describes where rules are installed from.
type SourceConfig struct {
	URL string `koanf:"url"`
	Ref string `koanf:"ref"`
}

// TargetConfig describes where rules are installed to.
type TargetConfig struct {
	Dir string `koanf:"dir"`
}

// Load resolves the configuration for a project. overrides carries
// flag values in koanf dotted-key form ("source.url", "target.dir");
// empty values in it are skipped.
func Load(projectRoot string, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load built-in defaults")
	}

	// 2. Project config file, if present
	if path := findProjectFile(projectRoot); path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse project config").
				WithDetail("path", path)
		}
	}

	// 3. Environment variables
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	// 4. Explicit overrides (flags)
	if cleaned := nonEmpty(overrides); len(cleaned) > 0 {
		if err := k.Load(confmap.Provider(cleaned, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load flag overrides")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal config")
	}
	return &cfg, nil
}

// findProjectFile returns the first existing project config file, or "".
func findProjectFile(projectRoot string) string {
	for _, name := range ProjectFileNames {
		path := filepath.Join(projectRoot, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

func nonEmpty(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for key, value := range m {
		if s, ok := value.(string); ok && s == "" {
			continue
		}
		if value == nil {
			continue
		}
		out[key] = value
	}
	return out
}
