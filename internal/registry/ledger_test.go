package registry

import (
	"errors"
	"os"
	"testing"
	"time"
)

func addEntry(t *testing.T, r *Registry, slug, version string, content []byte) string {
	t.Helper()
	h, err := r.WriteObject(content)
	if err != nil {
		t.Fatalf("WriteObject: %v", err)
	}
	err = r.AddVersionEntry(slug, VersionEntry{
		Version:    version,
		Hash:       h,
		CreatedAt:  time.Now().UTC(),
		Provenance: Provenance{Kind: "publish"},
	})
	if err != nil {
		t.Fatalf("AddVersionEntry(%s): %v", version, err)
	}
	return h
}

func TestLedgerSortedDescending(t *testing.T) {
	r := newTestRegistry(t)
	addEntry(t, r, "sorted", "1.0.0", []byte("a"))
	addEntry(t, r, "sorted", "2.0.0", []byte("b"))
	addEntry(t, r, "sorted", "1.2.0", []byte("c"))

	versions, err := r.CachedVersions("sorted")
	if err != nil {
		t.Fatalf("CachedVersions: %v", err)
	}
	want := []string{"2.0.0", "1.2.0", "1.0.0"}
	for i, v := range want {
		if versions[i] != v {
			t.Fatalf("versions = %v, want %v", versions, want)
		}
	}
}

func TestLedgerUpsertByExactVersion(t *testing.T) {
	r := newTestRegistry(t)
	addEntry(t, r, "upsert", "1.0.0", []byte("first"))
	h2 := addEntry(t, r, "upsert", "1.0.0", []byte("second"))

	entries, err := r.LoadLedger("upsert")
	if err != nil {
		t.Fatalf("LoadLedger: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one entry after upsert, got %d", len(entries))
	}
	if entries[0].Hash != h2 {
		t.Fatalf("entry hash = %s, want replacement %s", entries[0].Hash, h2)
	}
}

func TestLedgerUnparsableVersionsSortLast(t *testing.T) {
	r := newTestRegistry(t)
	addEntry(t, r, "mixed", "nightly-build", []byte("n"))
	addEntry(t, r, "mixed", "1.0.0", []byte("a"))

	versions, _ := r.CachedVersions("mixed")
	if versions[0] != "1.0.0" || versions[1] != "nightly-build" {
		t.Fatalf("versions = %v, want valid semver first", versions)
	}
}

func TestAddVersionEntryRejectsBadInput(t *testing.T) {
	r := newTestRegistry(t)
	err := r.AddVersionEntry("x", VersionEntry{Version: "", Hash: HashContent(nil)})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty version: expected ErrInvalidInput, got %v", err)
	}
	err = r.AddVersionEntry("x", VersionEntry{Version: "1.0.0", Hash: "bogus"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad hash: expected ErrInvalidInput, got %v", err)
	}
}

func TestLoadLedgerMalformedJSON(t *testing.T) {
	r := newTestRegistry(t)
	addEntry(t, r, "garbled", "1.0.0", []byte("x"))
	if err := os.WriteFile(r.ledgerPath("garbled"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := r.LoadLedger("garbled"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("malformed ledger: expected ErrInvalidInput, got %v", err)
	}
}

func TestHasLedger(t *testing.T) {
	r := newTestRegistry(t)
	if r.HasLedger("nothing") {
		t.Fatal("HasLedger on missing skill")
	}
	addEntry(t, r, "something", "1.0.0", []byte("x"))
	if !r.HasLedger("something") {
		t.Fatal("HasLedger after AddVersionEntry")
	}
}
