// Package importer bulk-publishes existing skill directories into the
// registry. A source directory is expected to hold one subdirectory per
// skill, each with a SKILL.md at its root; the subdirectory name becomes the
// slug.
package importer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/quillhq/quill/internal/registry"
)

// Failure records one skill that could not be imported.
type Failure struct {
	Slug string
	Err  error
}

// Result is returned by ImportDir.
type Result struct {
	Imported int // skills published with new content
	Skipped  int // identical duplicates left alone
	Failures []Failure
}

// ImportDir publishes every <slug>/SKILL.md under srcDir into the registry.
// A skill whose content already matches its current pointer is skipped (the
// object store dedups anyway; skipping keeps the metadata timestamps
// untouched). Failures are collected per skill, never aborting the walk.
func ImportDir(reg *registry.Registry, srcDir string) (*Result, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, fmt.Errorf("cannot read import directory %s: %w", srcDir, err)
	}

	result := &Result{}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		slug := e.Name()
		skillPath := filepath.Join(srcDir, slug, "SKILL.md")
		content, err := os.ReadFile(skillPath)
		if err != nil {
			if os.IsNotExist(err) {
				continue // not a skill directory
			}
			result.Failures = append(result.Failures, Failure{Slug: slug, Err: err})
			continue
		}

		if err := registry.ValidateSlug(slug); err != nil {
			result.Failures = append(result.Failures, Failure{Slug: slug, Err: err})
			continue
		}

		// Identical to the current pointer — nothing to do.
		if meta, err := reg.LoadMetadata(slug); err == nil &&
			meta.ContentHash == registry.HashContent(content) {
			result.Skipped++
			continue
		}

		if _, err := reg.Publish(slug, content, registry.PublishOptions{Kind: "import"}); err != nil {
			result.Failures = append(result.Failures, Failure{Slug: slug, Err: err})
			continue
		}
		result.Imported++
	}
	return result, nil
}
