package draft

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const backendFile = "file"

// FileStore keeps the draft as a JSON file named after Key inside a directory.
// Writes go to a temporary file that is renamed into place, so readers never see
// a partially written draft.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir. The directory is created on first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Path returns the file holding the draft.
func (s *FileStore) Path() string {
	return filepath.Join(s.dir, Key+".json")
}

func (s *FileStore) Save(ctx context.Context, d ProfileDraft) error {
	err := s.save(d)
	auditSave(ctx, backendFile, err)
	return err
}

func (s *FileStore) save(d ProfileDraft) error {
	data, err := encodeDraft(d)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	tmp, err := os.CreateTemp(s.dir, Key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	tmpName := tmp.Name()
	cleanup := func(cause error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrSaveFailed, cause)
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	if err := os.Rename(tmpName, s.Path()); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	return nil
}

func (s *FileStore) Load(ctx context.Context) (*ProfileDraft, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read draft: %w", err)
	}
	return decodeDraft(ctx, backendFile, data)
}

// Compile-time interface check
var _ Store = (*FileStore)(nil)
