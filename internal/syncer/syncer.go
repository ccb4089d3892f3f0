// Package syncer reconciles a project's declared skills against the local
// registry: it resolves versions, materializes content into the install
// directory, rewrites the lockfile, and regenerates the discovery index.
// Skills are processed independently and sequentially; a failure on one
// never aborts its siblings.
package syncer

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/quillhq/quill/internal/logging"
	"github.com/quillhq/quill/internal/project"
	"github.com/quillhq/quill/internal/registry"
	"github.com/quillhq/quill/internal/remote"
)

// Syncer drives one project against one registry. Side effects per skill are
// confined to that skill's own directory, so the loop could be parallelized
// later without redesign.
type Syncer struct {
	reg         *registry.Registry
	projectRoot string
	installDir  string
	remote      remote.Source // optional alternate version source
}

// New returns a Syncer for projectRoot, materializing into installDir.
// src may be nil when no remote source is configured.
func New(reg *registry.Registry, projectRoot, installDir string, src remote.Source) *Syncer {
	return &Syncer{reg: reg, projectRoot: projectRoot, installDir: installDir, remote: src}
}

// Options controls a sync run.
type Options struct {
	// Force reinstalls every skill even when the lockfile says it is
	// already current, re-resolving constraints from scratch.
	Force bool
}

// SkillError is one per-skill failure in a sync report.
type SkillError struct {
	Slug   string
	Reason string
	Err    error
}

func (e SkillError) String() string {
	return fmt.Sprintf("%s: %s: %v", e.Slug, e.Reason, e.Err)
}

// Result is the final sync report.
type Result struct {
	Updated   int
	Unchanged int
	Errors    []SkillError
}

// Failed reports whether any skill could not be resolved or written.
func (r *Result) Failed() bool { return len(r.Errors) > 0 }

// Error reason labels, aligned with the registry failure taxonomy.
const (
	ReasonNotFound      = "not found"
	ReasonConstraint    = "constraint unsatisfiable"
	ReasonCorrupted     = "corrupted"
	ReasonInvalidInput  = "invalid input"
	ReasonIOFailure     = "io failure"
	ReasonRemoteFailure = "remote fetch failed"
)

// Sync materializes the declared skills. The new lockfile and discovery
// index always reflect the full set of successfully processed skills, not a
// delta, so repeated runs with no external change are idempotent and a run
// after a partial failure retries only the entries that failed.
func (s *Syncer) Sync(entries []project.SkillEntry, opts Options) (*Result, error) {
	prior, err := project.LoadLockfile(s.projectRoot)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	next := project.NewLockfile()
	var installed []*project.InstalledMeta

	for _, e := range entries {
		locked := prior.Find(e.Slug)
		out, serr := s.syncOne(e, locked, opts.Force)
		if serr != nil {
			logging.Warnw("skill failed", "slug", e.Slug, "reason", serr.Reason, "err", serr.Err)
			res.Errors = append(res.Errors, *serr)
			// A failure must not erase the last known-good state: the
			// materialized files were not touched, so the lock entry stays
			// until the skill syncs again or is removed.
			if locked != nil {
				next.Set(*locked)
			}
			continue
		}
		if out.changed {
			res.Updated++
		} else {
			res.Unchanged++
		}
		next.Set(out.locked)
		installed = append(installed, out.meta)
	}

	if err := writeBootstrap(s.installDir); err != nil {
		return res, err
	}
	if err := writeIndex(s.installDir, installed); err != nil {
		return res, err
	}
	if err := next.Save(s.projectRoot); err != nil {
		return res, err
	}

	logging.Infow("sync complete",
		"updated", res.Updated, "unchanged", res.Unchanged, "errors", len(res.Errors))
	return res, nil
}

type outcome struct {
	locked  project.LockedSkill
	meta    *project.InstalledMeta
	changed bool
}

func (s *Syncer) syncOne(e project.SkillEntry, prior *project.LockedSkill, force bool) (*outcome, *SkillError) {
	if err := registry.ValidateSlug(e.Slug); err != nil {
		return nil, &SkillError{Slug: e.Slug, Reason: ReasonInvalidInput, Err: err}
	}

	out, err := s.materialize(e, prior, force)
	if err != nil && s.remote != nil && e.Source != "" && isCacheMiss(err) {
		// Local resolution missed; try the declared remote source, then
		// resolve again from the freshly cached version.
		if ferr := s.fetchFromRemote(e); ferr != nil {
			return nil, &SkillError{Slug: e.Slug, Reason: ReasonRemoteFailure, Err: ferr}
		}
		out, err = s.materialize(e, prior, force)
	}
	if err != nil {
		return nil, &SkillError{Slug: e.Slug, Reason: classify(err), Err: err}
	}
	return out, nil
}

// materialize resolves one declared skill and writes its files when needed.
func (s *Syncer) materialize(e project.SkillEntry, prior *project.LockedSkill, force bool) (*outcome, error) {
	meta, err := s.reg.LoadMetadata(e.Slug)
	if err != nil {
		return nil, err
	}

	var resolvedVersion, hash string
	if s.reg.HasLedger(e.Slug) {
		entry, err := s.resolveLedger(e, prior, force)
		if err != nil {
			return nil, err
		}
		resolvedVersion, hash = entry.Version, entry.Hash
	} else {
		// Single-copy mode: no negotiation, the current pointer is the
		// only version there is.
		if meta.ContentHash == "" {
			return nil, fmt.Errorf("skill %q has no published content: %w", e.Slug, registry.ErrNotFound)
		}
		hash = meta.ContentHash
	}

	content, err := s.reg.ReadObject(hash)
	if err != nil {
		// A store miss at this point means the metadata or ledger points
		// at bytes that are gone or bad — corruption, not a missing skill.
		if errors.Is(err, registry.ErrNotFound) {
			err = fmt.Errorf("object %s referenced by %q is missing: %w", hash, e.Slug, registry.ErrCorrupted)
		}
		return nil, err
	}

	changed := force ||
		prior == nil ||
		prior.ContentHash != hash ||
		prior.ResolvedVersion != resolvedVersion

	skillDir := filepath.Join(s.installDir, e.Slug)
	if !changed && !project.IsMaterialized(skillDir) {
		// Lock says current but the files are gone; rewrite them.
		changed = true
	}

	installedMeta := &project.InstalledMeta{
		Slug:            meta.Slug,
		Name:            meta.Name,
		Description:     meta.Description,
		Tags:            meta.Tags,
		Compat:          meta.Compat,
		ResolvedVersion: resolvedVersion,
		ContentHash:     hash,
		UpdatedAt:       meta.UpdatedAt,
	}

	if changed {
		if err := project.WriteInstalledSkill(skillDir, installedMeta, content); err != nil {
			return nil, err
		}
		logging.Debugw("materialized skill", "slug", e.Slug, "version", resolvedVersion, "hash", hash)
	}

	return &outcome{
		locked: project.LockedSkill{
			Slug:            e.Slug,
			Registry:        "local",
			ResolvedVersion: resolvedVersion,
			ContentHash:     hash,
		},
		meta:    installedMeta,
		changed: changed,
	}, nil
}

// resolveLedger picks a concrete ledger entry. The locked version is reused
// while it is still cached and no force-reinstall was requested — repeated
// syncs reproduce the same state rather than silently upgrading.
func (s *Syncer) resolveLedger(e project.SkillEntry, prior *project.LockedSkill, force bool) (*registry.VersionEntry, error) {
	if prior != nil && prior.ResolvedVersion != "" && !force {
		entry, err := s.reg.FindVersion(e.Slug, prior.ResolvedVersion)
		if err != nil {
			return nil, err
		}
		if entry != nil {
			return entry, nil
		}
	}
	return s.reg.ResolveVersion(e.Slug, e.Version)
}

// fetchFromRemote pulls one version from the declared source, verifies the
// claimed hash against the actual bytes, and caches it through the normal
// publish path.
func (s *Syncer) fetchFromRemote(e project.SkillEntry) error {
	rv, err := s.remote.Fetch(e.Slug, e.Version)
	if err != nil {
		return err
	}
	if rv.Hash != "" && registry.HashContent(rv.Content) != rv.Hash {
		return fmt.Errorf("remote content for %q does not match its claimed hash: %w", e.Slug, registry.ErrCorrupted)
	}
	_, err = s.reg.Publish(e.Slug, rv.Content, registry.PublishOptions{
		Version: rv.Version,
		Kind:    "remote",
		Source:  e.Source,
	})
	if err != nil {
		return err
	}
	logging.Infow("cached remote skill", "slug", e.Slug, "version", rv.Version, "source", e.Source)
	return nil
}

// isCacheMiss reports whether err is the kind of local miss a remote source
// may be able to satisfy.
func isCacheMiss(err error) bool {
	var ce *registry.ConstraintError
	return errors.Is(err, registry.ErrNotFound) || errors.As(err, &ce)
}

func classify(err error) string {
	var ce *registry.ConstraintError
	switch {
	case errors.As(err, &ce):
		return ReasonConstraint
	case errors.Is(err, registry.ErrCorrupted):
		return ReasonCorrupted
	case errors.Is(err, registry.ErrNotFound):
		return ReasonNotFound
	case errors.Is(err, registry.ErrInvalidInput):
		return ReasonInvalidInput
	default:
		return ReasonIOFailure
	}
}
