package registry

import (
	"fmt"
	"time"

	"github.com/quillhq/quill/internal/fsutil"
	"github.com/quillhq/quill/internal/logging"
	"github.com/quillhq/quill/internal/semver"
	"github.com/quillhq/quill/internal/skillfile"
)

// PublishOptions controls a publish. Version is optional: without it the
// skill stays in single-copy mode (current pointer only); with it a ledger
// entry is recorded as well.
type PublishOptions struct {
	Version     string
	Changelog   string
	PublishedBy string
	Source      string
	Kind        string // provenance kind, defaults to "publish"
}

// Publish stores content as slug's current version: the blob goes into the
// object store, the metadata's current pointer moves to the new hash, the
// working copy is refreshed, and — when a version is given — a ledger entry
// is appended. Name, description, tags, and compat are taken from the
// SKILL.md frontmatter.
//
// The object write and the metadata write are not a joint transaction: a
// crash between them leaves an orphaned object in the store, which is
// harmless and accepted.
func (r *Registry) Publish(slug string, content []byte, opts PublishOptions) (*Metadata, error) {
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("skill %q has empty content: %w", slug, ErrInvalidInput)
	}
	if opts.Version != "" && !semver.IsValid(opts.Version) {
		return nil, fmt.Errorf("version %q is not a semantic version: %w", opts.Version, ErrInvalidInput)
	}

	hash, err := r.WriteObject(content)
	if err != nil {
		return nil, err
	}

	doc, _ := skillfile.Parse(content)
	if doc.Name == "" {
		doc.Name = skillfile.DeriveName(slug)
	}

	meta := &Metadata{
		SchemaVersion: metadataSchemaVersion,
		Slug:          slug,
		Name:          doc.Name,
		Description:   doc.Description,
		Tags:          doc.Tags,
		Compat:        doc.Compat,
		ContentHash:   hash,
		UpdatedAt:     time.Now().UTC(),
	}
	if err := r.SaveMetadata(meta); err != nil {
		return nil, err
	}

	if opts.Version != "" {
		kind := opts.Kind
		if kind == "" {
			kind = "publish"
		}
		entry := VersionEntry{
			Version:   opts.Version,
			Hash:      hash,
			CreatedAt: time.Now().UTC(),
			Provenance: Provenance{
				Kind:        kind,
				Source:      opts.Source,
				PublishedBy: opts.PublishedBy,
			},
			Changelog: opts.Changelog,
		}
		if kind == "remote" {
			now := time.Now().UTC()
			entry.Provenance.FetchedAt = &now
		}
		if err := r.AddVersionEntry(slug, entry); err != nil {
			return nil, err
		}
	}

	// Human-readable working copy next to the metadata.
	if err := fsutil.WriteFileAtomic(r.workingCopyPath(slug), content, 0o644); err != nil {
		return nil, fmt.Errorf("cannot write working copy for %q: %w", slug, err)
	}

	logging.Infow("published skill", "slug", slug, "version", opts.Version, "hash", hash)
	return meta, nil
}
