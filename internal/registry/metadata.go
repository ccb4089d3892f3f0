package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/quillhq/quill/internal/fsutil"
	"github.com/quillhq/quill/internal/logging"
)

// metadataSchemaVersion is the current on-disk schema for skill.json.
// Version 1 predates the single-copy content pointer: those documents carry
// no content_hash and rely on the version ledger alone.
const metadataSchemaVersion = 2

// Metadata is the per-slug skill descriptor. Exactly one exists per slug and
// it is overwritten on every publish.
type Metadata struct {
	SchemaVersion int       `json:"schema_version"`
	Slug          string    `json:"slug"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
	Compat        []string  `json:"compat,omitempty"`
	ContentHash   string    `json:"content_hash,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (m *Metadata) validate() error {
	if err := ValidateSlug(m.Slug); err != nil {
		return err
	}
	if m.Name == "" {
		return fmt.Errorf("metadata for %q has no name: %w", m.Slug, ErrInvalidInput)
	}
	if m.ContentHash != "" && !validHash(m.ContentHash) {
		return fmt.Errorf("metadata for %q has malformed content hash %q: %w", m.Slug, m.ContentHash, ErrInvalidInput)
	}
	return nil
}

// migration upgrades a metadata document in place from exactly one schema
// version to the next. Steps compose: a version-0 document runs the whole
// chain.
type migration func(r *Registry, m *Metadata) error

var migrations = map[int]migration{
	// v1 → v2: backfill the single-copy content pointer from the legacy
	// ledger's latest entry.
	1: func(r *Registry, m *Metadata) error {
		if m.ContentHash != "" {
			return nil
		}
		entries, err := r.LoadLedger(m.Slug)
		if err != nil {
			return err
		}
		if len(entries) > 0 {
			m.ContentHash = entries[0].Hash
			logging.Infow("backfilled content hash from ledger",
				"slug", m.Slug, "version", entries[0].Version, "hash", entries[0].Hash)
		}
		return nil
	},
}

// LoadMetadata reads, validates, and — when the document is at an older
// schema — migrates the descriptor for slug. A migrated document is
// persisted once, so the upgrade happens on first read.
func (r *Registry) LoadMetadata(slug string) (*Metadata, error) {
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(r.metadataPath(slug))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("skill %q: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("cannot read metadata for %q: %w", slug, err)
	}
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("malformed metadata for %q: %v: %w", slug, err, ErrInvalidInput)
	}
	if m.SchemaVersion > metadataSchemaVersion {
		// Written by a newer tool; half-reading it could drop fields on the
		// next save.
		return nil, fmt.Errorf("metadata for %q has schema v%d, newer than supported v%d: %w",
			slug, m.SchemaVersion, metadataSchemaVersion, ErrInvalidInput)
	}

	if m.SchemaVersion < metadataSchemaVersion {
		// Documents written before schema versioning carry 0; they are
		// shape-identical to v1.
		if m.SchemaVersion == 0 {
			m.SchemaVersion = 1
		}
		for v := m.SchemaVersion; v < metadataSchemaVersion; v++ {
			step, ok := migrations[v]
			if !ok {
				return nil, fmt.Errorf("no migration from metadata schema v%d for %q: %w", v, slug, ErrInvalidInput)
			}
			if err := step(r, &m); err != nil {
				return nil, fmt.Errorf("cannot migrate metadata for %q from v%d: %w", slug, v, err)
			}
			m.SchemaVersion = v + 1
		}
		if err := r.SaveMetadata(&m); err != nil {
			return nil, err
		}
	}

	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveMetadata writes the descriptor atomically (temp file + rename in the
// skill's own directory).
func (r *Registry) SaveMetadata(m *Metadata) error {
	if err := m.validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(r.skillDir(m.Slug), 0o755); err != nil {
		return fmt.Errorf("cannot create skill directory for %q: %w", m.Slug, err)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal metadata for %q: %w", m.Slug, err)
	}
	data = append(data, '\n')
	if err := fsutil.WriteFileAtomic(r.metadataPath(m.Slug), data, 0o644); err != nil {
		return fmt.Errorf("cannot write metadata for %q: %w", m.Slug, err)
	}
	return nil
}
