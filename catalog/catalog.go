// SPDX-License-Identifier: EPL-2.0

package catalog

import (
	"fmt"
	"slices"
	"strings"
)

// Catalog is a read-only set of categorised sounds.
type Catalog struct {
	categories []Category
	byID       map[string]Sound
}

// New indexes categories. Sound ids must be unique and valid.
func New(categories []Category) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]Sound)}
	for _, cat := range categories {
		for _, s := range cat.Sounds {
			if err := s.Validate(); err != nil {
				return nil, err
			}
			if _, dup := c.byID[s.ID]; dup {
				return nil, fmt.Errorf("%w: duplicate id %s", ErrInvalidSound, s.ID)
			}
			c.byID[s.ID] = s
		}
		cat.Sounds = slices.Clone(cat.Sounds)
		c.categories = append(c.categories, cat)
	}
	return c, nil
}

// Default is the built-in catalog.
func Default() *Catalog {
	c, err := New(seed)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		cat.Sounds = slices.Clone(cat.Sounds)
		out[i] = cat
	}
	return out
}

func (c *Catalog) Sound(id string) (Sound, error) {
	s, ok := c.byID[id]
	if !ok {
		return Sound{}, fmt.Errorf("%w: %s", ErrSoundNotFound, id)
	}
	return s, nil
}

// All returns every sound in category order.
func (c *Catalog) All() []Sound {
	var out []Sound
	for _, cat := range c.categories {
		out = append(out, cat.Sounds...)
	}
	return out
}

// InCategory returns the sounds of one category, nil when it is unknown.
func (c *Catalog) InCategory(id string) []Sound {
	for _, cat := range c.categories {
		if cat.ID == id {
			return slices.Clone(cat.Sounds)
		}
	}
	return nil
}

// WithTag returns sounds carrying tag, compared case-insensitively.
func (c *Catalog) WithTag(tag string) []Sound {
	tag = strings.ToLower(tag)

	var out []Sound
	for _, s := range c.All() {
		if s.HasTag(tag) {
			out = append(out, s)
		}
	}
	return out
}

var seed = []Category{
	{
		ID:          "clicks",
		Name:        "Clicks & Taps",
		Description: "Subtle interaction sounds for buttons and UI elements.",
		Sounds: []Sound{
			{ID: "ui-click-1", Name: "UI Click", Category: "clicks", Path: "/sounds/clicks/ui-click.mp3", Tags: []string{"click", "button", "bright"}},
			{ID: "bouncy-click", Name: "Bouncy", Category: "clicks", Path: "/sounds/clicks/click-bouncy.mp3", Tags: []string{"click", "button", "tap", "organic"}},
			{ID: "menu-click", Name: "Menu Tap", Category: "clicks", Path: "/sounds/clicks/menu-click.mp3", Tags: []string{"modern", "menu", "tap"}},
			{ID: "wood-click", Name: "Wood", Category: "clicks", Path: "/sounds/clicks/wood-click.mp3", Tags: []string{"click", "wood", "short", "natural"}},
			{ID: "select-click", Name: "Select", Category: "clicks", Path: "/sounds/clicks/select-click.mp3", Tags: []string{"click", "select", "toggle"}},
			{ID: "double-tap", Name: "Double Tap", Category: "clicks", Path: "/sounds/clicks/double-tap.mp3", Tags: []string{"analog", "tap", "short"}},
		},
	},
	{
		ID:          "notifications",
		Name:        "Notifications & Alerts",
		Description: "Attention-grabbing sounds for important updates.",
		Sounds: []Sound{
			{ID: "synth-alert", Name: "Synth Alert", Category: "notifications", Path: "/sounds/notifications/noti-synthalert.mp3", Tags: []string{"notification", "alert", "synth", "modern"}},
			{ID: "synth-notification", Name: "Synth Notification", Category: "notifications", Path: "/sounds/notifications/synth-notification.mp3", Tags: []string{"notification", "synth", "modern"}},
		},
	},
	{
		ID:          "transitions",
		Name:        "Transitions",
		Description: "Smooth sounds for state changes and animations.",
		Sounds: []Sound{
			{ID: "short-swipe1", Name: "Short Swipe 1", Category: "transitions", Path: "/sounds/transitions/short-swipe1.mp3", Tags: []string{"swipe", "transition", "navigation"}},
			{ID: "scroll-up", Name: "Scroll Up", Category: "transitions", Path: "/sounds/transitions/scroll-up.mp3", Tags: []string{"scroll", "transition", "navigation"}},
		},
	},
	{
		ID:          "feedback",
		Name:        "Success & Error",
		Description: "Clear audio feedback for user actions.",
		Sounds: []Sound{
			{ID: "alert-negative", Name: "Negative Alert", Category: "feedback", Path: "/sounds/successAndError/alert-negative.mp3", Tags: []string{"alert", "error", "negative"}},
			{ID: "bright-alert", Name: "Bright Alert", Category: "feedback", Path: "/sounds/successAndError/bright-alert.mp3", Tags: []string{"alert", "success", "positive"}},
		},
	},
}
