package cli

import (
	"fmt"
	"os"
	"path/filepath"
)

// fileStore implements release.DocumentStore against a file on disk.
// Writes go through a temp file in the same directory followed by a
// rename, so the changelog is never observed half-written.
type fileStore struct {
	path string
}

func (s *fileStore) Read() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *fileStore) Write(text string) error {
	dir := filepath.Dir(s.path)

	tmp, err := os.CreateTemp(dir, ".fraglog-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}
