// SPDX-License-Identifier: EPL-2.0

package store

import (
	"context"
	"errors"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDirBlobStore_UploadAndDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	d, err := NewDirBlobStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirBlobStore() error = %v", err)
	}

	link, err := d.Upload(ctx, []byte("RIFF"), "alert.wav", "u1")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if !strings.HasPrefix(link, "file://") {
		t.Fatalf("Upload() = %q, want a file URL", link)
	}

	u, err := url.Parse(link)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(d.Root(), "custom-sounds", "u1", "alert.wav")
	if filepath.FromSlash(u.Path) != want {
		t.Errorf("blob path = %s, want %s", u.Path, want)
	}
	if data, err := os.ReadFile(want); err != nil || string(data) != "RIFF" {
		t.Errorf("blob content = (%q, %v)", data, err)
	}

	if err := d.Delete(ctx, link); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := os.Stat(want); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("blob still present after Delete: %v", err)
	}

	err = d.Delete(ctx, link)
	var serr *StorageError
	if !errors.As(err, &serr) || !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("second Delete() error = %v, want StorageError wrapping fs.ErrNotExist", err)
	}
}

func TestDirBlobStore_DeleteByObjectPath(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	d, err := NewDirBlobStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirBlobStore() error = %v", err)
	}

	if _, err := d.Upload(ctx, []byte("x"), "a.wav", "u1"); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if err := d.Delete(ctx, ObjectPath("u1", "a.wav")); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestDirBlobStore_RejectsEscapes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	root := t.TempDir()
	d, err := NewDirBlobStore(filepath.Join(root, "blobs"))
	if err != nil {
		t.Fatalf("NewDirBlobStore() error = %v", err)
	}

	outside := filepath.Join(root, "keep.txt")
	if err := os.WriteFile(outside, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	uploads := []struct{ filename, user string }{
		{"../x.wav", "u1"},
		{"a.wav", "../u1"},
		{"a.wav", ""},
		{"", "u1"},
		{"..", "u1"},
	}
	for _, up := range uploads {
		if _, err := d.Upload(ctx, []byte("x"), up.filename, up.user); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("Upload(%q, %q) error = %v, want ErrInvalidPath", up.filename, up.user, err)
		}
	}

	for _, p := range []string{
		"file://" + filepath.ToSlash(outside),
		"custom-sounds/../../keep.txt",
		"custom-sounds",
	} {
		if err := d.Delete(ctx, p); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("Delete(%q) error = %v, want ErrInvalidPath", p, err)
		}
	}
	if _, err := os.Stat(outside); err != nil {
		t.Errorf("file outside the store was touched: %v", err)
	}
}
