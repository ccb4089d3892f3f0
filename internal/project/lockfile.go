package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quillhq/quill/internal/fsutil"
)

// LockFileName is the lockfile at the project root.
const LockFileName = "quill.lock.json"

const lockfileVersion = 1

// LockedSkill records the last actually-materialized state of one skill —
// deliberately decoupled from the declared entry in quill.yaml.
type LockedSkill struct {
	Slug            string `json:"slug"`
	Registry        string `json:"registry"`
	ResolvedVersion string `json:"resolved_version,omitempty"`
	ContentHash     string `json:"content_hash"`
}

// Lockfile is the whole-file representation of quill.lock.json. It is read
// whole and replaced whole; there is no incremental patching on disk.
type Lockfile struct {
	Version int           `json:"version"`
	Skills  []LockedSkill `json:"skills"`
}

// NewLockfile returns an empty lockfile at the current version.
func NewLockfile() *Lockfile {
	return &Lockfile{Version: lockfileVersion}
}

// LoadLockfile reads quill.lock.json under projectRoot. A missing lockfile
// is an empty one, not an error.
func LoadLockfile(projectRoot string) (*Lockfile, error) {
	path := filepath.Join(projectRoot, LockFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewLockfile(), nil
		}
		return nil, fmt.Errorf("cannot read lockfile %s: %w", path, err)
	}
	var lf Lockfile
	if err := json.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("malformed lockfile %s: %w", path, err)
	}
	if lf.Version == 0 {
		lf.Version = lockfileVersion
	}
	return &lf, nil
}

// Save writes the lockfile as a whole-file atomic replace.
func (l *Lockfile) Save(projectRoot string) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal lockfile: %w", err)
	}
	data = append(data, '\n')
	path := filepath.Join(projectRoot, LockFileName)
	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write lockfile %s: %w", path, err)
	}
	return nil
}

// Find returns the locked entry for slug, or nil.
func (l *Lockfile) Find(slug string) *LockedSkill {
	for i := range l.Skills {
		if l.Skills[i].Slug == slug {
			return &l.Skills[i]
		}
	}
	return nil
}

// Set replaces the entry for entry.Slug if present, appends it otherwise.
func (l *Lockfile) Set(entry LockedSkill) {
	for i := range l.Skills {
		if l.Skills[i].Slug == entry.Slug {
			l.Skills[i] = entry
			return
		}
	}
	l.Skills = append(l.Skills, entry)
}

// Remove drops the entry for slug, reporting whether it was present.
func (l *Lockfile) Remove(slug string) bool {
	for i := range l.Skills {
		if l.Skills[i].Slug == slug {
			l.Skills = append(l.Skills[:i], l.Skills[i+1:]...)
			return true
		}
	}
	return false
}
