package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/opencontainers/go-digest"

	"github.com/quillhq/quill/internal/fsutil"
	"github.com/quillhq/quill/internal/logging"
)

// HashContent returns the lowercase hex-64 SHA-256 of content — the key the
// object store files it under.
func HashContent(content []byte) string {
	return digest.SHA256.FromBytes(content).Encoded()
}

// validHash reports whether h looks like a lowercase hex-64 SHA-256.
func validHash(h string) bool {
	if len(h) != 64 {
		return false
	}
	for _, c := range h {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// WriteObject stores content under its SHA-256 hash and returns the hash.
// Writing the same content twice is a no-op: the existing object is kept and
// the same hash comes back. New objects land via a temp file in the objects
// directory and an atomic rename, so concurrent writers of identical content
// race harmlessly onto the same destination.
func (r *Registry) WriteObject(content []byte) (string, error) {
	hash := HashContent(content)
	path := r.objectPath(hash)
	if fsutil.Exists(path) {
		logging.Debugw("object already stored", "hash", hash)
		return hash, nil
	}
	if err := fsutil.WriteFileAtomic(path, content, 0o644); err != nil {
		return "", fmt.Errorf("cannot store object %s: %w", hash, err)
	}
	logging.Debugw("object stored", "hash", hash, "bytes", len(content))
	return hash, nil
}

// ReadObject returns the content stored under hash. The bytes are re-hashed
// on every read; a mismatch means the object is corrupted and no bytes are
// returned. Unverified content is never served.
func (r *Registry) ReadObject(hash string) ([]byte, error) {
	if !validHash(hash) {
		return nil, fmt.Errorf("malformed object hash %q: %w", hash, ErrInvalidInput)
	}
	content, err := os.ReadFile(r.objectPath(hash))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("object %s: %w", hash, ErrNotFound)
		}
		return nil, fmt.Errorf("cannot read object %s: %w", hash, err)
	}
	if got := HashContent(content); got != hash {
		logging.Warnw("object failed verification", "want", hash, "got", got)
		return nil, fmt.Errorf("object %s: %w", hash, ErrCorrupted)
	}
	return content, nil
}

// ObjectExists reports whether an object is stored under hash.
func (r *Registry) ObjectExists(hash string) bool {
	return validHash(hash) && fsutil.Exists(r.objectPath(hash))
}

// DeleteObject removes the object stored under hash. Normal operation never
// deletes objects; this exists for manual remediation of corrupted ones.
func (r *Registry) DeleteObject(hash string) error {
	if !validHash(hash) {
		return fmt.Errorf("malformed object hash %q: %w", hash, ErrInvalidInput)
	}
	if err := os.Remove(r.objectPath(hash)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("object %s: %w", hash, ErrNotFound)
		}
		return fmt.Errorf("cannot delete object %s: %w", hash, err)
	}
	return nil
}

// ListObjects returns the hashes of all stored objects, skipping in-flight
// temp files and anything that is not a well-formed hash name.
func (r *Registry) ListObjects() ([]string, error) {
	entries, err := os.ReadDir(r.objectsDir())
	if err != nil {
		return nil, fmt.Errorf("cannot list objects: %w", err)
	}
	var hashes []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, fsutil.TempPrefix) || !validHash(name) {
			continue
		}
		hashes = append(hashes, name)
	}
	return hashes, nil
}

// VerifyObjects re-hashes every stored object and returns the hashes whose
// bytes no longer match. Nothing is repaired or deleted — remediation is
// manual.
func (r *Registry) VerifyObjects() ([]string, error) {
	hashes, err := r.ListObjects()
	if err != nil {
		return nil, err
	}
	var corrupted []string
	for _, h := range hashes {
		content, err := os.ReadFile(r.objectPath(h))
		if err != nil {
			return nil, fmt.Errorf("cannot read object %s: %w", h, err)
		}
		if HashContent(content) != h {
			corrupted = append(corrupted, h)
		}
	}
	return corrupted, nil
}

// CleanupTempFiles removes orphaned temp files from the objects directory.
// Only files older than maxAge are touched, so an in-flight write is never
// raced. Returns the number of files removed.
func (r *Registry) CleanupTempFiles(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(r.objectsDir())
	if err != nil {
		return 0, fmt.Errorf("cannot scan objects directory: %w", err)
	}
	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), fsutil.TempPrefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(r.objectsDir(), e.Name())
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("cannot remove temp file %s: %w", path, err)
		}
		logging.Debugw("removed orphaned temp file", "path", path)
		removed++
	}
	return removed, nil
}
