// Package source acquires the rules repository: a git remote cloned
// into the cache directory, or a local directory used in place.
package source

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/tekdi/tekdi-cursor-rules/pkg/errors"
	"github.com/tekdi/tekdi-cursor-rules/pkg/logging"
	"github.com/tekdi/tekdi-cursor-rules/pkg/paths"
)

// Repo is one rules repository source.
type Repo struct {
	// URL is the git remote, or a local directory path.
	URL string
	// Ref is the branch or tag to track. Ignored for local sources.
	Ref string
	// Dir is where the checkout lives.
	Dir string

	local bool
}

// New resolves a source. A URL that exists as a local directory is used
// directly without git; anything else is treated as a git remote cached
// under the cursor-rules cache dir.
func New(url, ref string, p *paths.Paths) *Repo {
	if info, err := os.Stat(url); err == nil && info.IsDir() {
		return &Repo{URL: url, Dir: url, local: true}
	}
	return &Repo{URL: url, Ref: ref, Dir: p.SourceCheckoutDir(url)}
}

// Local reports whether the source is a plain local directory.
func (r *Repo) Local() bool { return r.local }

// Ensure makes the checkout available: a no-op for local sources, a
// clone for missing checkouts, and a re-clone for a cache directory
// that is not a git repository.
func (r *Repo) Ensure() error {
	if r.local {
		return nil
	}
	if err := checkGit(); err != nil {
		return err
	}

	logger := logging.GetLogger("source")

	if r.isCheckout() {
		logger.Debug().Str("dir", r.Dir).Msg("Reusing cached rules checkout")
		return nil
	}

	// A stale non-repo cache dir gets replaced.
	if _, err := os.Stat(r.Dir); err == nil {
		logger.Warn().Str("dir", r.Dir).Msg("Cache dir is not a git checkout, re-cloning")
		if err := os.RemoveAll(r.Dir); err != nil {
			return errors.Wrap(err, errors.ErrSourceClone, "cannot clear stale cache dir").
				WithDetail("dir", r.Dir)
		}
	}

	if err := os.MkdirAll(filepath.Dir(r.Dir), 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "cannot create cache dir").
			WithDetail("dir", filepath.Dir(r.Dir))
	}

	args := []string{"clone", "--depth", "1"}
	if r.Ref != "" {
		args = append(args, "--branch", r.Ref)
	}
	args = append(args, r.URL, r.Dir)

	logger.Info().Str("url", r.URL).Str("ref", r.Ref).Str("dir", r.Dir).Msg("Cloning rules repository")
	if output, err := runGit("", args...); err != nil {
		return errors.Wrap(fmt.Errorf("%s", output), errors.ErrSourceClone, "git clone failed").
			WithDetail("url", r.URL)
	}
	return nil
}

// Update refreshes the checkout with a fast-forward pull. Local
// sources are always current.
func (r *Repo) Update() error {
	if r.local {
		return nil
	}
	if !r.isCheckout() {
		return r.Ensure()
	}
	if err := checkGit(); err != nil {
		return err
	}

	logger := logging.GetLogger("source")
	logger.Info().Str("dir", r.Dir).Msg("Updating rules repository")
	if output, err := runGit(r.Dir, "pull", "--ff-only"); err != nil {
		return errors.Wrap(fmt.Errorf("%s", output), errors.ErrSourceUpdate, "git pull failed").
			WithDetail("dir", r.Dir)
	}
	return nil
}

// Revision returns the checked-out commit hash. Local directory
// sources have no revision and return "".
func (r *Repo) Revision() (string, error) {
	if r.local {
		return "", nil
	}
	output, err := runGit(r.Dir, "rev-parse", "HEAD")
	if err != nil {
		return "", errors.Wrap(fmt.Errorf("%s", output), errors.ErrSourceUpdate, "git rev-parse failed").
			WithDetail("dir", r.Dir)
	}
	return strings.TrimSpace(output), nil
}

// isCheckout reports whether Dir looks like a git checkout.
func (r *Repo) isCheckout() bool {
	info, err := os.Stat(filepath.Join(r.Dir, ".git"))
	return err == nil && info.IsDir()
}

// checkGit verifies the git binary is on PATH.
func checkGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return errors.Wrap(err, errors.ErrGitNotFound, "git is required to fetch remote rules repositories")
	}
	return nil
}

// runGit executes git with the given args and returns its combined
// output. dir may be empty for commands that take explicit paths.
func runGit(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	output, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(output)), err
}
