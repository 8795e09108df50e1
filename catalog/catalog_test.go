// SPDX-License-Identifier: EPL-2.0

package catalog

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	c := Default()

	if got := len(c.All()); got != 12 {
		t.Errorf("len(All()) = %d, want 12", got)
	}

	var ids []string
	for _, cat := range c.Categories() {
		ids = append(ids, cat.ID)
		for _, s := range cat.Sounds {
			if s.Category != cat.ID {
				t.Errorf("%s: category %q, want %q", s.ID, s.Category, cat.ID)
			}
			if !strings.HasPrefix(s.Path, "/sounds/") || !strings.HasSuffix(s.Path, ".mp3") {
				t.Errorf("%s: unexpected path %q", s.ID, s.Path)
			}
		}
	}
	if want := []string{"clicks", "notifications", "transitions", "feedback"}; !slices.Equal(ids, want) {
		t.Errorf("category ids = %v, want %v", ids, want)
	}
}

func TestCatalog_Sound(t *testing.T) {
	t.Parallel()

	c := Default()

	s, err := c.Sound("synth-alert")
	if err != nil {
		t.Fatalf("Sound() error = %v", err)
	}
	if s.Path != "/sounds/notifications/noti-synthalert.mp3" {
		t.Errorf("Path = %q", s.Path)
	}

	if _, err := c.Sound("nope"); !errors.Is(err, ErrSoundNotFound) {
		t.Errorf("Sound(nope) error = %v, want ErrSoundNotFound", err)
	}
}

func TestCatalog_Queries(t *testing.T) {
	t.Parallel()

	c := Default()

	tests := []struct {
		name string
		got  []Sound
		want []string
	}{
		{"category", c.InCategory("transitions"), []string{"short-swipe1", "scroll-up"}},
		{"unknown category", c.InCategory("ambient"), nil},
		{"tag", c.WithTag("success"), []string{"bright-alert"}},
		{"tag case", c.WithTag("TAP"), []string{"bouncy-click", "menu-click", "double-tap"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var ids []string
			for _, s := range tt.got {
				ids = append(ids, s.ID)
			}
			if !slices.Equal(ids, tt.want) {
				t.Errorf("ids = %v, want %v", ids, tt.want)
			}
		})
	}
}

func TestCatalog_ResultsAreCopies(t *testing.T) {
	t.Parallel()

	c := Default()

	c.Categories()[0].Sounds[0].Name = "changed"
	c.InCategory("clicks")[0].Name = "changed"

	if s, _ := c.Sound("ui-click-1"); s.Name != "UI Click" {
		t.Errorf("catalog modified through a result: %q", s.Name)
	}
	if c.Categories()[0].Sounds[0].Name != "UI Click" {
		t.Error("category listing modified through a result")
	}
}

func TestNew_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cats []Category
	}{
		{"missing path", []Category{{ID: "a", Sounds: []Sound{{ID: "x"}}}}},
		{"missing id", []Category{{ID: "a", Sounds: []Sound{{Path: "/x.wav"}}}}},
		{"duplicate", []Category{
			{ID: "a", Sounds: []Sound{{ID: "x", Path: "/x.wav"}}},
			{ID: "b", Sounds: []Sound{{ID: "x", Path: "/y.wav"}}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := New(tt.cats); !errors.Is(err, ErrInvalidSound) {
				t.Errorf("New() error = %v, want ErrInvalidSound", err)
			}
		})
	}
}
