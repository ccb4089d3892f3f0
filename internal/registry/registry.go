// Package registry implements the local content-addressed skill registry:
// an immutable object store keyed by SHA-256, per-skill metadata documents,
// and the legacy per-skill version ledger with semver resolution.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/adrg/xdg"
	"golang.org/x/text/unicode/norm"
)

const (
	objectsDirName  = "objects"
	skillsDirName   = "skills"
	metadataName    = "skill.json"
	ledgerName      = "versions.json"
	workingCopyName = "SKILL.md"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Registry is a handle on one registry root. All operations take their paths
// from the root passed at Open time; there are no ambient globals.
type Registry struct {
	root string
}

// DefaultRoot returns the registry location used when the project does not
// override it: $XDG_DATA_HOME/quill/registry.
func DefaultRoot() string {
	return filepath.Join(xdg.DataHome, "quill", "registry")
}

// Open ensures the registry directory structure exists under root and
// returns a handle on it.
func Open(root string) (*Registry, error) {
	if root == "" {
		return nil, fmt.Errorf("registry root is empty: %w", ErrInvalidInput)
	}
	for _, dir := range []string{root, filepath.Join(root, objectsDirName), filepath.Join(root, skillsDirName)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("cannot create registry directory %s: %w", dir, err)
		}
	}
	return &Registry{root: root}, nil
}

// Root returns the registry root path.
func (r *Registry) Root() string { return r.root }

func (r *Registry) objectsDir() string {
	return filepath.Join(r.root, objectsDirName)
}

func (r *Registry) objectPath(hash string) string {
	return filepath.Join(r.objectsDir(), hash)
}

func (r *Registry) skillDir(slug string) string {
	return filepath.Join(r.root, skillsDirName, slug)
}

func (r *Registry) metadataPath(slug string) string {
	return filepath.Join(r.skillDir(slug), metadataName)
}

func (r *Registry) ledgerPath(slug string) string {
	return filepath.Join(r.skillDir(slug), ledgerName)
}

func (r *Registry) workingCopyPath(slug string) string {
	return filepath.Join(r.skillDir(slug), workingCopyName)
}

// ValidateSlug checks that slug is a canonical lowercase hyphenated
// identifier. Input is NFC-normalized first so visually identical unicode
// forms cannot alias distinct directories.
func ValidateSlug(slug string) error {
	if slug != norm.NFC.String(slug) || !slugPattern.MatchString(slug) {
		return fmt.Errorf("invalid slug %q (want lowercase hyphenated, e.g. \"code-review\"): %w", slug, ErrInvalidInput)
	}
	return nil
}

// ListSkills returns the slugs of every skill with a metadata document,
// sorted by directory order (lexicographic).
func (r *Registry) ListSkills() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(r.root, skillsDirName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot list skills: %w", err)
	}
	var slugs []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(r.metadataPath(e.Name())); err == nil {
			slugs = append(slugs, e.Name())
		}
	}
	return slugs, nil
}
