package platform

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// fontStore is the OS font directory. A font is present when a file with
// the same base name exists; contents are never compared.
type fontStore struct {
	dir string
}

func (s fontStore) destination(path string) string {
	return filepath.Join(s.dir, filepath.Base(path))
}

func (s fontStore) contains(path string) bool {
	_, err := os.Lstat(s.destination(path))
	return err == nil
}

// place copies src into the store and returns the destination path. The
// bytes go to a temporary file in the store first and are renamed into place
// once complete, so the destination never exists half-written.
func (s fontStore) place(src string) (string, error) {
	dst := s.destination(src)

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("opening source font: %w", err)
	}
	defer in.Close()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("creating font directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".fontsync-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temporary file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, in); err != nil {
		return "", fmt.Errorf("copying font contents: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return "", fmt.Errorf("syncing font file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing font file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return "", fmt.Errorf("setting font permissions: %w", err)
	}

	// Rename replaces silently on most systems, so look again right before.
	if _, err := os.Lstat(dst); err == nil {
		return "", fmt.Errorf("%s: %w", dst, os.ErrExist)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		return "", fmt.Errorf("moving font into place: %w", err)
	}
	committed = true
	return dst, nil
}

// remove deletes a font placed by this run. Used to roll back a copy whose
// registration failed.
func (s fontStore) remove(dst string) error {
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %s: %w", dst, err)
	}
	return nil
}
