package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/quillhq/quill/internal/fsutil"
)

const (
	// InstalledContentName is the materialized skill document.
	InstalledContentName = "SKILL.md"
	// InstalledMetaName is the denormalized metadata next to it.
	InstalledMetaName = "meta.json"
)

// InstalledMeta is the denormalized copy of a skill's registry metadata plus
// its resolved version and hash, written alongside the materialized content
// so downstream tooling needs no registry access.
type InstalledMeta struct {
	Slug            string    `json:"slug"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
	Compat          []string  `json:"compat,omitempty"`
	ResolvedVersion string    `json:"resolved_version,omitempty"`
	ContentHash     string    `json:"content_hash"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// WriteInstalledSkill materializes a skill into its own directory under the
// install dir: the content as SKILL.md and the denormalized metadata as
// meta.json, both written atomically.
func WriteInstalledSkill(skillDir string, meta *InstalledMeta, content []byte) error {
	if err := os.MkdirAll(skillDir, 0o755); err != nil {
		return fmt.Errorf("cannot create skill directory %s: %w", skillDir, err)
	}
	if err := fsutil.WriteFileAtomic(filepath.Join(skillDir, InstalledContentName), content, 0o644); err != nil {
		return fmt.Errorf("cannot write skill content in %s: %w", skillDir, err)
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal installed metadata for %q: %w", meta.Slug, err)
	}
	data = append(data, '\n')
	if err := fsutil.WriteFileAtomic(filepath.Join(skillDir, InstalledMetaName), data, 0o644); err != nil {
		return fmt.Errorf("cannot write installed metadata in %s: %w", skillDir, err)
	}
	return nil
}

// ReadInstalledMeta loads the denormalized metadata from a materialized
// skill directory.
func ReadInstalledMeta(skillDir string) (*InstalledMeta, error) {
	path := filepath.Join(skillDir, InstalledMetaName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read installed metadata %s: %w", path, err)
	}
	var m InstalledMeta
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("malformed installed metadata %s: %w", path, err)
	}
	return &m, nil
}

// IsMaterialized reports whether a skill directory holds both the content
// and its metadata.
func IsMaterialized(skillDir string) bool {
	return fsutil.Exists(filepath.Join(skillDir, InstalledContentName)) &&
		fsutil.Exists(filepath.Join(skillDir, InstalledMetaName))
}
