package registry

import (
	"github.com/quillhq/quill/internal/logging"
	"github.com/quillhq/quill/internal/semver"
)

// ResolveVersion turns an optional constraint into a concrete ledger entry
// for slug. With no constraint it picks the highest valid cached version; an
// exact constraint must match a cached version exactly; a range constraint
// picks the highest cached version inside the range. When nothing satisfies,
// the error is a *ConstraintError carrying the cached versions.
func (r *Registry) ResolveVersion(slug, constraint string) (*VersionEntry, error) {
	entries, err := r.LoadLedger(slug)
	if err != nil {
		return nil, err
	}
	versions := make([]string, len(entries))
	for i, e := range entries {
		versions[i] = e.Version
	}

	picked, ok := semver.Resolve(versions, constraint)
	if !ok {
		return nil, &ConstraintError{Slug: slug, Constraint: constraint, Cached: versions}
	}
	logging.Debugw("resolved version", "slug", slug, "constraint", constraint, "version", picked)
	for i := range entries {
		if entries[i].Version == picked {
			return &entries[i], nil
		}
	}
	// Resolve only returns versions taken from the input set.
	return nil, &ConstraintError{Slug: slug, Constraint: constraint, Cached: versions}
}

// FindVersion returns the ledger entry for an exact version string, or nil
// when the ledger has no such entry.
func (r *Registry) FindVersion(slug, version string) (*VersionEntry, error) {
	entries, err := r.LoadLedger(slug)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].Version == version {
			return &entries[i], nil
		}
	}
	return nil, nil
}
