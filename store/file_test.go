// SPDX-License-Identifier: EPL-2.0

package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/sfxkit/transform"
)

func TestFileStore_Reopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "store.json")

	fs, err := OpenFile(path, WithClock(fixedClock))
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}

	params := transform.Params{Volume: 50, Pitch: -3, Speed: 90, Duration: 120}
	if ok, err := fs.SaveCustomization(ctx, "synth-alert", params, "u1", &alert, ""); !ok || err != nil {
		t.Fatalf("SaveCustomization() = (%v, %v)", ok, err)
	}
	cat, err := fs.CreateCategory(ctx, "u1", "Work")
	if err != nil {
		t.Fatalf("CreateCategory() error = %v", err)
	}

	reopened, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() reopen error = %v", err)
	}

	sounds, err := reopened.UserSavedSounds(ctx, "u1")
	if err != nil || len(sounds) != 1 {
		t.Fatalf("UserSavedSounds() = (%v, %v), want one sound", sounds, err)
	}
	if got := sounds[0].Params(); got != params {
		t.Errorf("reloaded params = %+v, want %+v", got, params)
	}
	if sounds[0].Name != "Synth Alert" {
		t.Errorf("reloaded name = %q, want the original's", sounds[0].Name)
	}

	cats, _ := reopened.UserCategories(ctx, "u1")
	if len(cats) != 1 || cats[0].ID != cat.ID {
		t.Errorf("reloaded categories = %+v", cats)
	}
}

func TestFileStore_RollsBackOnWriteFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")
	path := filepath.Join(dir, "store.json")

	fs, err := OpenFile(path, WithClock(fixedClock))
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}

	// A regular file where the store directory should be makes every
	// write fail.
	if err := os.WriteFile(dir, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err = fs.Save(ctx, "u1", "synth-alert", alert)
	var perr *PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("Save() error = %v, want *PersistenceError", err)
	}

	if sounds, _ := fs.UserSavedSounds(ctx, "u1"); len(sounds) != 0 {
		t.Errorf("failed save left %d sounds in memory", len(sounds))
	}
	if _, err := fs.CreateCategory(ctx, "u1", "Work"); err == nil {
		t.Error("CreateCategory() error = nil, want write failure")
	}
	if cats, _ := fs.UserCategories(ctx, "u1"); len(cats) != 0 {
		t.Errorf("failed create left %d categories", len(cats))
	}
}

func TestOpenFile_Corrupt(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := OpenFile(path); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("OpenFile() error = %v, want ErrInvalidRecord", err)
	}
}

func TestFileStore_NoOpsDoNotWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	fs, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}

	if ok, err := fs.SaveCustomization(ctx, "synth-alert", transform.DefaultParams(), "", &alert, ""); ok || err != nil {
		t.Errorf("anonymous save = (%v, %v), want (false, nil)", ok, err)
	}
	if err := fs.DeleteCustomSound(ctx, "x", ""); err != nil {
		t.Errorf("anonymous delete error = %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("store file written by no-op calls: %v", err)
	}
}
