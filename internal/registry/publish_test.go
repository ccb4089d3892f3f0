package registry

import (
	"errors"
	"os"
	"testing"
)

const reviewSkill = `---
name: Code Review
description: Reviews diffs for correctness and style.
tags: [review, quality]
compat: [claude, cursor]
---
# Code Review

Look at the diff and comment.
`

func TestPublishExtractsFrontmatter(t *testing.T) {
	r := newTestRegistry(t)

	meta, err := r.Publish("code-review", []byte(reviewSkill), PublishOptions{Version: "1.0.0"})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if meta.Name != "Code Review" {
		t.Fatalf("name = %q", meta.Name)
	}
	if meta.Description == "" || len(meta.Tags) != 2 || len(meta.Compat) != 2 {
		t.Fatalf("frontmatter not extracted: %+v", meta)
	}
	if !r.ObjectExists(meta.ContentHash) {
		t.Fatal("content object missing after publish")
	}
	// Working copy sits next to the metadata.
	if _, err := os.Stat(r.workingCopyPath("code-review")); err != nil {
		t.Fatalf("working copy: %v", err)
	}
}

// Republishing moves the current pointer and keeps the old object: content
// objects are never deleted by normal operation.
func TestRepublishKeepsOldObject(t *testing.T) {
	r := newTestRegistry(t)

	m1, err := r.Publish("code-review", []byte("---\nname: CR\n---\nX\n"), PublishOptions{Version: "1.0.0"})
	if err != nil {
		t.Fatalf("publish X: %v", err)
	}
	m2, err := r.Publish("code-review", []byte("---\nname: CR\n---\nY\n"), PublishOptions{Version: "1.1.0"})
	if err != nil {
		t.Fatalf("publish Y: %v", err)
	}
	if m1.ContentHash == m2.ContentHash {
		t.Fatal("distinct content must hash differently")
	}

	meta, err := r.LoadMetadata("code-review")
	if err != nil {
		t.Fatal(err)
	}
	if meta.ContentHash != m2.ContentHash {
		t.Fatalf("current pointer = %s, want %s", meta.ContentHash, m2.ContentHash)
	}
	if !r.ObjectExists(m1.ContentHash) {
		t.Fatal("old object was deleted")
	}

	versions, _ := r.CachedVersions("code-review")
	if len(versions) != 2 || versions[0] != "1.1.0" {
		t.Fatalf("ledger = %v", versions)
	}
}

func TestPublishWithoutVersionIsSingleCopy(t *testing.T) {
	r := newTestRegistry(t)
	if _, err := r.Publish("single", []byte("just a body\n"), PublishOptions{}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if r.HasLedger("single") {
		t.Fatal("versionless publish must not create a ledger")
	}
	meta, err := r.LoadMetadata("single")
	if err != nil {
		t.Fatal(err)
	}
	// Name derived from the slug when the frontmatter has none.
	if meta.Name != "Single" {
		t.Fatalf("derived name = %q", meta.Name)
	}
}

func TestPublishRejectsBadInput(t *testing.T) {
	r := newTestRegistry(t)
	if _, err := r.Publish("Bad Slug", []byte("x"), PublishOptions{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad slug: %v", err)
	}
	if _, err := r.Publish("ok", nil, PublishOptions{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty content: %v", err)
	}
	if _, err := r.Publish("ok", []byte("x"), PublishOptions{Version: "one-point-oh"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad version: %v", err)
	}
}
