package localfs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

func AtomicWrite(dst string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create parent dir: %w", err)
	}

	tmp := dst + ".resolvo.tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to rename: %w", err)
	}

	return nil
}

func RemoveIfExists(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}

	return nil
}

// MakeWritable drops the read-only attribute so the file can be replaced.
func MakeWritable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	mode := info.Mode()
	if mode&0200 != 0 {
		return nil
	}

	if err := os.Chmod(path, mode|0200); err != nil {
		return fmt.Errorf("failed to clear read-only on %s: %w", path, err)
	}

	return nil
}
