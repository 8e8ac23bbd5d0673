package storage

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStore persists raw uploaded bytes under generated filenames in one
// directory. A document's file_path is the only pointer back to its content.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create sources directory failed: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Save writes content under a fresh <uuid><ext> name, keeping only the
// extension of the original filename, and returns the stored path.
func (s *FileStore) Save(originalFilename string, content []byte) (string, error) {
	name := uuid.NewString() + filepath.Ext(originalFilename)
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("save uploaded file failed: %w", err)
	}
	return path, nil
}

// Delete removes the stored file. A missing file reports false without
// erroring; deletion is best-effort cleanup.
func (s *FileStore) Delete(path string) bool {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("file store: %s not found for deletion", path)
		return false
	}
	if err := os.Remove(path); err != nil {
		log.Printf("file store: delete %s failed: %v", path, err)
		return false
	}
	return true
}

// Exists reports whether the stored file is still present.
func (s *FileStore) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
