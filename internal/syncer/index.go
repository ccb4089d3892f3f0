package syncer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/quillhq/quill/internal/fsutil"
	"github.com/quillhq/quill/internal/project"
)

// IndexFileName is the generated discovery index in the install directory.
const IndexFileName = "index.md"

// writeIndex regenerates the discovery index from scratch — no incremental
// patching. Entries are ordered by slug so repeated generations are
// byte-stable.
func writeIndex(installDir string, metas []*project.InstalledMeta) error {
	if err := os.MkdirAll(installDir, 0o755); err != nil {
		return fmt.Errorf("cannot create install directory %s: %w", installDir, err)
	}

	sorted := make([]*project.InstalledMeta, len(metas))
	copy(sorted, metas)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Slug < sorted[j].Slug })

	var b strings.Builder
	b.WriteString("# Skill Index\n\n")
	b.WriteString("Generated by quill. Do not edit by hand.\n")

	if len(sorted) == 0 {
		b.WriteString("\nNo skills installed.\n")
	}
	for _, m := range sorted {
		fmt.Fprintf(&b, "\n## %s — %s\n\n", m.Slug, m.Name)
		if m.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", m.Description)
		}
		if m.ResolvedVersion != "" {
			fmt.Fprintf(&b, "- version: %s\n", m.ResolvedVersion)
		}
		if len(m.Tags) > 0 {
			fmt.Fprintf(&b, "- tags: %s\n", strings.Join(m.Tags, ", "))
		}
		if len(m.Compat) > 0 {
			fmt.Fprintf(&b, "- compat: %s\n", strings.Join(m.Compat, ", "))
		}
		fmt.Fprintf(&b, "- path: %s\n", filepath.ToSlash(filepath.Join(m.Slug, project.InstalledContentName)))
	}

	path := filepath.Join(installDir, IndexFileName)
	if err := fsutil.WriteFileAtomic(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("cannot write discovery index: %w", err)
	}
	return nil
}

// rebuildIndexFromDisk regenerates the index from the lockfile's skills by
// reading their installed metadata. Used by Remove, where no fresh resolve
// has happened. Skills whose metadata cannot be read are left out rather
// than failing the rebuild.
func rebuildIndexFromDisk(installDir string, lock *project.Lockfile) error {
	var metas []*project.InstalledMeta
	for _, ls := range lock.Skills {
		m, err := project.ReadInstalledMeta(filepath.Join(installDir, ls.Slug))
		if err != nil {
			continue
		}
		metas = append(metas, m)
	}
	return writeIndex(installDir, metas)
}
