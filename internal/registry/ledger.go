package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/quillhq/quill/internal/fsutil"
	"github.com/quillhq/quill/internal/semver"
)

// Provenance records where a ledger entry's content came from.
type Provenance struct {
	Kind        string     `json:"kind"` // "publish", "import", or "remote"
	Source      string     `json:"source,omitempty"`
	FetchedAt   *time.Time `json:"fetched_at,omitempty"`
	PublishedBy string     `json:"published_by,omitempty"`
}

// VersionEntry is one published version in a skill's legacy ledger.
type VersionEntry struct {
	Version    string     `json:"version"`
	Hash       string     `json:"hash"`
	CreatedAt  time.Time  `json:"created_at"`
	Provenance Provenance `json:"provenance"`
	Changelog  string     `json:"changelog,omitempty"`
}

// ledgerFile is the on-disk shape of versions.json.
type ledgerFile struct {
	Entries []VersionEntry `json:"entries"`
}

// HasLedger reports whether slug has a legacy version ledger. Its presence
// switches the sync engine from single-copy mode to ledger mode.
func (r *Registry) HasLedger(slug string) bool {
	return fsutil.Exists(r.ledgerPath(slug))
}

// LoadLedger returns the version entries for slug, highest version first.
// A missing ledger is not an error: the result is simply empty.
func (r *Registry) LoadLedger(slug string) ([]VersionEntry, error) {
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(r.ledgerPath(slug))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot read ledger for %q: %w", slug, err)
	}
	var lf ledgerFile
	if err := json.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("malformed ledger for %q: %v: %w", slug, err, ErrInvalidInput)
	}
	sortEntries(lf.Entries)
	return lf.Entries, nil
}

// AddVersionEntry upserts an entry into slug's ledger: an entry with the
// same exact version string is replaced, anything else is appended. The
// ledger is re-sorted descending by semantic version before the atomic
// write; unparsable versions sort last.
func (r *Registry) AddVersionEntry(slug string, entry VersionEntry) error {
	if entry.Version == "" {
		return fmt.Errorf("ledger entry for %q has no version: %w", slug, ErrInvalidInput)
	}
	if !validHash(entry.Hash) {
		return fmt.Errorf("ledger entry %s@%s has malformed hash %q: %w", slug, entry.Version, entry.Hash, ErrInvalidInput)
	}
	entries, err := r.LoadLedger(slug)
	if err != nil {
		return err
	}

	replaced := false
	for i := range entries {
		if entries[i].Version == entry.Version {
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}
	sortEntries(entries)

	if err := os.MkdirAll(r.skillDir(slug), 0o755); err != nil {
		return fmt.Errorf("cannot create skill directory for %q: %w", slug, err)
	}
	data, err := json.MarshalIndent(ledgerFile{Entries: entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal ledger for %q: %w", slug, err)
	}
	data = append(data, '\n')
	if err := fsutil.WriteFileAtomic(r.ledgerPath(slug), data, 0o644); err != nil {
		return fmt.Errorf("cannot write ledger for %q: %w", slug, err)
	}
	return nil
}

// CachedVersions returns the version strings in slug's ledger, highest
// first.
func (r *Registry) CachedVersions(slug string) ([]string, error) {
	entries, err := r.LoadLedger(slug)
	if err != nil {
		return nil, err
	}
	versions := make([]string, len(entries))
	for i, e := range entries {
		versions[i] = e.Version
	}
	return versions, nil
}

func sortEntries(entries []VersionEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return semver.Compare(entries[i].Version, entries[j].Version) > 0
	})
}
