// SPDX-License-Identifier: EPL-2.0

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/ik5/sfxkit/catalog"
	"github.com/ik5/sfxkit/transform"
)

// FileStore is a Memory store mirrored to a JSON file. Every mutation
// rewrites the file; if the write fails the mutation is rolled back.
type FileStore struct {
	*Memory

	path string
	wmu  sync.Mutex
}

var (
	_ Persistence = (*FileStore)(nil)
	_ Categories  = (*FileStore)(nil)
)

// OpenFile loads path if it exists. A missing file is an empty store.
func OpenFile(path string, opts ...Option) (*FileStore, error) {
	f := &FileStore{Memory: NewMemory(opts...), path: path}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return f, nil
	case err != nil:
		return nil, &PersistenceError{Op: "open", ID: path, Err: err}
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, &PersistenceError{Op: "open", ID: path, Err: fmt.Errorf("%w: %w", ErrInvalidRecord, err)}
	}
	f.Restore(snap)

	log.Printf("store: loaded %d records and %d categories from %s", len(snap.Records), len(snap.Categories), path)
	return f, nil
}

func (f *FileStore) Path() string { return f.path }

// mutate runs fn and persists the result, restoring the previous state
// when fn or the write fails.
func (f *FileStore) mutate(op string, fn func() error) error {
	f.wmu.Lock()
	defer f.wmu.Unlock()

	before := f.Snapshot()
	if err := fn(); err != nil {
		return err
	}
	if err := f.flush(); err != nil {
		f.Restore(before)
		return &PersistenceError{Op: op, ID: f.path, Err: err}
	}
	return nil
}

// flush writes the snapshot to a temporary file and renames it into place.
func (f *FileStore) flush() error {
	data, err := json.MarshalIndent(f.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w", err)
	}

	tmp, err := os.CreateTemp(dir, ".store-*.json")
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return os.Rename(tmp.Name(), f.path)
}

func (f *FileStore) SaveCustomization(ctx context.Context, soundID string, params transform.Params, userID string, original *catalog.CustomizableSound, name string) (bool, error) {
	if userID == "" {
		return false, nil
	}

	var saved bool
	err := f.mutate("save", func() error {
		var err error
		saved, err = f.Memory.SaveCustomization(ctx, soundID, params, userID, original, name)
		return err
	})
	if err != nil {
		return false, err
	}
	return saved, nil
}

func (f *FileStore) Save(ctx context.Context, userID, originalSoundID string, sound catalog.CustomizableSound) (Record, error) {
	var rec Record
	err := f.mutate("save", func() error {
		var err error
		rec, err = f.Memory.Save(ctx, userID, originalSoundID, sound)
		return err
	})
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (f *FileStore) DeleteCustomSound(ctx context.Context, soundID, userID string) error {
	if userID == "" {
		return nil
	}
	return f.mutate("delete", func() error {
		return f.Memory.DeleteCustomSound(ctx, soundID, userID)
	})
}

func (f *FileStore) CreateCategory(ctx context.Context, userID, name string) (UserCategory, error) {
	var c UserCategory
	err := f.mutate("create category", func() error {
		var err error
		c, err = f.Memory.CreateCategory(ctx, userID, name)
		return err
	})
	if err != nil {
		return UserCategory{}, err
	}
	return c, nil
}

func (f *FileStore) UpdateCategory(ctx context.Context, userID, categoryID, name string) (UserCategory, error) {
	var c UserCategory
	err := f.mutate("update category", func() error {
		var err error
		c, err = f.Memory.UpdateCategory(ctx, userID, categoryID, name)
		return err
	})
	if err != nil {
		return UserCategory{}, err
	}
	return c, nil
}

func (f *FileStore) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	return f.mutate("delete category", func() error {
		return f.Memory.DeleteCategory(ctx, userID, categoryID)
	})
}
