package registry

import (
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"
)

func TestMetadataRoundTrip(t *testing.T) {
	r := newTestRegistry(t)
	h, _ := r.WriteObject([]byte("content"))

	in := &Metadata{
		SchemaVersion: metadataSchemaVersion,
		Slug:          "code-review",
		Name:          "Code Review",
		Description:   "Reviews diffs",
		Tags:          []string{"review", "quality"},
		Compat:        []string{"claude", "cursor"},
		ContentHash:   h,
		UpdatedAt:     time.Now().UTC(),
	}
	if err := r.SaveMetadata(in); err != nil {
		t.Fatalf("SaveMetadata: %v", err)
	}

	out, err := r.LoadMetadata("code-review")
	if err != nil {
		t.Fatalf("LoadMetadata: %v", err)
	}
	if out.Name != in.Name || out.ContentHash != h || len(out.Tags) != 2 {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestLoadMetadataNotFound(t *testing.T) {
	r := newTestRegistry(t)
	if _, err := r.LoadMetadata("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveMetadataRejectsInvalid(t *testing.T) {
	r := newTestRegistry(t)
	cases := []*Metadata{
		{Slug: "Bad Slug", Name: "x"},
		{Slug: "ok-slug", Name: ""},
		{Slug: "ok-slug", Name: "x", ContentHash: "not-a-hash"},
	}
	for _, m := range cases {
		if err := r.SaveMetadata(m); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("SaveMetadata(%+v): expected ErrInvalidInput, got %v", m, err)
		}
	}
}

// A legacy document with no schema version and no content hash is upgraded
// from the ledger's latest entry on first read, and the upgrade is persisted.
func TestLoadMetadataMigratesLegacySchema(t *testing.T) {
	r := newTestRegistry(t)

	h1, _ := r.WriteObject([]byte("version one"))
	h2, _ := r.WriteObject([]byte("version two"))
	for v, h := range map[string]string{"1.0.0": h1, "1.1.0": h2} {
		err := r.AddVersionEntry("legacy-skill", VersionEntry{
			Version:    v,
			Hash:       h,
			CreatedAt:  time.Now().UTC(),
			Provenance: Provenance{Kind: "publish"},
		})
		if err != nil {
			t.Fatalf("AddVersionEntry: %v", err)
		}
	}

	// Hand-write a pre-schema-versioning document.
	legacy := map[string]any{
		"slug": "legacy-skill",
		"name": "Legacy Skill",
	}
	data, _ := json.Marshal(legacy)
	if err := os.WriteFile(r.metadataPath("legacy-skill"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := r.LoadMetadata("legacy-skill")
	if err != nil {
		t.Fatalf("LoadMetadata: %v", err)
	}
	if m.ContentHash != h2 {
		t.Fatalf("backfilled hash = %s, want ledger latest %s", m.ContentHash, h2)
	}
	if m.SchemaVersion != metadataSchemaVersion {
		t.Fatalf("schema version = %d, want %d", m.SchemaVersion, metadataSchemaVersion)
	}

	// The upgrade must be persisted, not recomputed on every read.
	raw, err := os.ReadFile(r.metadataPath("legacy-skill"))
	if err != nil {
		t.Fatal(err)
	}
	var onDisk Metadata
	if err := json.Unmarshal(raw, &onDisk); err != nil {
		t.Fatal(err)
	}
	if onDisk.SchemaVersion != metadataSchemaVersion || onDisk.ContentHash != h2 {
		t.Fatalf("migration not persisted: %+v", onDisk)
	}
}

func TestLoadMetadataRejectsFutureSchema(t *testing.T) {
	r := newTestRegistry(t)
	doc := map[string]any{
		"schema_version": metadataSchemaVersion + 1,
		"slug":           "from-the-future",
		"name":           "Future Skill",
	}
	data, _ := json.Marshal(doc)
	if err := os.MkdirAll(r.skillDir("from-the-future"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(r.metadataPath("from-the-future"), data, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := r.LoadMetadata("from-the-future"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("future schema: expected ErrInvalidInput, got %v", err)
	}
}

func TestLoadMetadataMalformedJSON(t *testing.T) {
	r := newTestRegistry(t)
	if err := os.MkdirAll(r.skillDir("garbled"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(r.metadataPath("garbled"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := r.LoadMetadata("garbled"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("malformed document: expected ErrInvalidInput, got %v", err)
	}
}

func TestValidateSlug(t *testing.T) {
	for _, slug := range []string{"code-review", "a", "x1", "multi-part-slug-2"} {
		if err := ValidateSlug(slug); err != nil {
			t.Errorf("ValidateSlug(%q) = %v, want nil", slug, err)
		}
	}
	for _, slug := range []string{"", "Upper", "has space", "-leading", "trailing-", "double--dash", "dot.slug"} {
		if err := ValidateSlug(slug); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ValidateSlug(%q) = %v, want ErrInvalidInput", slug, err)
		}
	}
}
