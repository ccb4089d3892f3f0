package syncer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/quillhq/quill/internal/logging"
	"github.com/quillhq/quill/internal/project"
	"github.com/quillhq/quill/internal/registry"
)

// Remove immediately deletes slug's materialized directory, prunes its
// lockfile entry, and regenerates the discovery index — one operation, not
// something a later sync discovers lazily. It reports whether the skill was
// actually installed.
func (s *Syncer) Remove(slug string) (bool, error) {
	if err := registry.ValidateSlug(slug); err != nil {
		return false, err
	}

	skillDir := filepath.Join(s.installDir, slug)
	existed := project.IsMaterialized(skillDir)
	if err := os.RemoveAll(skillDir); err != nil {
		return false, fmt.Errorf("cannot remove %s: %w", skillDir, err)
	}

	lock, err := project.LoadLockfile(s.projectRoot)
	if err != nil {
		return existed, err
	}
	pruned := lock.Remove(slug)
	if pruned {
		if err := lock.Save(s.projectRoot); err != nil {
			return existed, err
		}
	}

	if err := rebuildIndexFromDisk(s.installDir, lock); err != nil {
		return existed, err
	}

	logging.Infow("removed skill", "slug", slug, "wasInstalled", existed, "lockPruned", pruned)
	return existed || pruned, nil
}
