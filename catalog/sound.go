// SPDX-License-Identifier: EPL-2.0

package catalog

import (
	"fmt"
	"slices"

	"github.com/ik5/sfxkit/transform"
)

// Sound describes one asset. It is never mutated once defined.
type Sound struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Path     string   `json:"path"`
	Tags     []string `json:"tags,omitempty"`
}

func (s Sound) Validate() error {
	switch {
	case s.ID == "":
		return fmt.Errorf("%w: missing id", ErrInvalidSound)
	case s.Path == "":
		return fmt.Errorf("%w: %s has no path", ErrInvalidSound, s.ID)
	}
	return nil
}

// HasTag reports whether tag is one of the sound's tags.
func (s Sound) HasTag(tag string) bool {
	return slices.Contains(s.Tags, tag)
}

// Category groups catalog sounds for display.
type Category struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Sounds      []Sound `json:"sounds"`
}

// LayerRef is one layer of a saved composition.
type LayerRef struct {
	Sound Sound `json:"sound"`
	// Volume is a percentage, 0 to 100.
	Volume float64 `json:"volume"`
	// Delay is the start offset in seconds.
	Delay float64 `json:"delay"`
}

// CustomizableSound is a user's saved sound: a catalog sound with either
// transform settings or a list of layers, never both.
type CustomizableSound struct {
	Sound

	Customization *transform.Params `json:"customization,omitempty"`
	Layers        []LayerRef        `json:"layers,omitempty"`
	CategoryID    string            `json:"categoryId,omitempty"`
}

// IsComposition reports whether the sound is a layered composition.
func (c CustomizableSound) IsComposition() bool { return len(c.Layers) > 0 }

// Params returns the saved customization, or the defaults when there is
// none.
func (c CustomizableSound) Params() transform.Params {
	if c.Customization == nil {
		return transform.DefaultParams()
	}
	return *c.Customization
}

func (c CustomizableSound) Validate() error {
	if err := c.Sound.Validate(); err != nil {
		return err
	}
	if c.Customization != nil && len(c.Layers) > 0 {
		return fmt.Errorf("%w: %s", ErrMixedSound, c.ID)
	}
	if c.Customization != nil {
		if err := c.Customization.Validate(); err != nil {
			return fmt.Errorf("%s: %w", c.ID, err)
		}
	}
	for i, l := range c.Layers {
		if err := l.Sound.Validate(); err != nil {
			return fmt.Errorf("%s layer %d: %w", c.ID, i, err)
		}
		if l.Volume < 0 || l.Volume > 100 || l.Delay < 0 {
			return fmt.Errorf("%w: %s layer %d volume %v delay %v", ErrInvalidSound, c.ID, i, l.Volume, l.Delay)
		}
	}
	return nil
}

// Clone returns a copy that shares no slices or pointers with c.
func (c CustomizableSound) Clone() CustomizableSound {
	out := c
	out.Tags = slices.Clone(c.Tags)
	if c.Customization != nil {
		p := *c.Customization
		out.Customization = &p
	}
	if c.Layers != nil {
		out.Layers = make([]LayerRef, len(c.Layers))
		for i, l := range c.Layers {
			l.Sound.Tags = slices.Clone(l.Sound.Tags)
			out.Layers[i] = l
		}
	}
	return out
}
