// Package fsutil provides the atomic file-write primitive shared by the
// registry and the project lockfile. A reader must never observe a
// half-written metadata or lockfile document.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// TempPrefix is the name prefix for in-flight temp files. Directory listings
// and object scans must skip entries carrying it.
const TempPrefix = ".tmp-"

// WriteFileAtomic writes data to path by writing a uniquely-named temp file
// in the same directory and renaming it into place. On any failure the temp
// file is removed before the error is returned.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, TempPrefix+"*")
	if err != nil {
		return fmt.Errorf("cannot create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("cannot write %s: %w", tmpName, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("cannot chmod %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("cannot close %s: %w", tmpName, err)
	}
	// Rename is atomic at the filesystem level.
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("cannot rename %s to %s: %w", tmpName, path, err)
	}
	return nil
}

// Exists reports whether path exists (file or directory).
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
