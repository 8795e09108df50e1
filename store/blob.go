// SPDX-License-Identifier: EPL-2.0

package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// BlobPrefix is the object path prefix of every uploaded sound.
const BlobPrefix = "custom-sounds"

// DirBlobStore keeps blobs as files under a root directory and hands out
// file:// URLs for them.
type DirBlobStore struct {
	root string
}

var _ BlobStore = (*DirBlobStore)(nil)

func NewDirBlobStore(root string) (*DirBlobStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, &StorageError{Op: "open", Path: root, Err: err}
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, &StorageError{Op: "open", Path: root, Err: err}
	}
	return &DirBlobStore{root: abs}, nil
}

func (d *DirBlobStore) Root() string { return d.root }

// ObjectPath is the store-relative path of a user's file.
func ObjectPath(userID, filename string) string {
	return BlobPrefix + "/" + userID + "/" + filename
}

func (d *DirBlobStore) Upload(ctx context.Context, data []byte, filename, userID string) (string, error) {
	object := ObjectPath(userID, filename)
	if err := ctx.Err(); err != nil {
		return "", &StorageError{Op: "upload", Path: object, Err: err}
	}
	if !validSegment(userID) || !validSegment(filename) {
		return "", &StorageError{Op: "upload", Path: object, Err: ErrInvalidPath}
	}

	dst := filepath.Join(d.root, filepath.FromSlash(object))
	if err := writeFile(dst, data); err != nil {
		return "", &StorageError{Op: "upload", Path: object, Err: err}
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(dst)}).String(), nil
}

// Delete accepts a URL returned by Upload or an object path.
func (d *DirBlobStore) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return &StorageError{Op: "delete", Path: path, Err: err}
	}

	file, err := d.resolve(path)
	if err != nil {
		return &StorageError{Op: "delete", Path: path, Err: err}
	}
	if err := os.Remove(file); err != nil {
		return &StorageError{Op: "delete", Path: path, Err: err}
	}
	return nil
}

func (d *DirBlobStore) resolve(path string) (string, error) {
	var file string
	if strings.HasPrefix(path, "file://") {
		u, err := url.Parse(path)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrInvalidPath, err)
		}
		file = filepath.Clean(filepath.FromSlash(u.Path))
	} else {
		file = filepath.Join(d.root, filepath.FromSlash(strings.TrimPrefix(path, "/")))
	}

	rel, err := filepath.Rel(filepath.Join(d.root, BlobPrefix), file)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", ErrInvalidPath
	}
	return file, nil
}

func validSegment(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}

// writeFile writes through a temporary file so a failed upload leaves
// nothing behind.
func writeFile(dst string, data []byte) error {
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w", err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w", err)
	}
	return nil
}
