// SPDX-License-Identifier: EPL-2.0

package store

import (
	"context"
	"time"

	"github.com/ik5/sfxkit/catalog"
	"github.com/ik5/sfxkit/transform"
)

// Record is one saved sound as persisted.
type Record struct {
	UserID          string                    `json:"userId"`
	SoundID         string                    `json:"soundId"`
	OriginalSoundID string                    `json:"originalSoundId"`
	Sound           catalog.CustomizableSound `json:"sound"`
	SavedAt         time.Time                 `json:"savedAt"`
}

// UserCategory is a user-defined folder for saved sounds.
type UserCategory struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// Persistence stores saved sounds. Every save creates a new record under
// a new id; records are never updated in place.
type Persistence interface {
	// SaveCustomization stores params applied to original under a new id.
	// It reports false without error when userID is empty.
	SaveCustomization(ctx context.Context, soundID string, params transform.Params, userID string, original *catalog.CustomizableSound, name string) (bool, error)
	// Save stores sound for userID under a new id and returns the record.
	Save(ctx context.Context, userID, originalSoundID string, sound catalog.CustomizableSound) (Record, error)
	GetCustomization(ctx context.Context, soundID string) (transform.Params, bool, error)
	UserSavedSounds(ctx context.Context, userID string) ([]catalog.CustomizableSound, error)
	Record(ctx context.Context, soundID string) (Record, error)
	DeleteCustomSound(ctx context.Context, soundID, userID string) error
}

// Categories stores user categories.
type Categories interface {
	CreateCategory(ctx context.Context, userID, name string) (UserCategory, error)
	UserCategories(ctx context.Context, userID string) ([]UserCategory, error)
	UpdateCategory(ctx context.Context, userID, categoryID, name string) (UserCategory, error)
	DeleteCategory(ctx context.Context, userID, categoryID string) error
}

// BlobStore holds rendered audio files.
type BlobStore interface {
	// Upload stores data as custom-sounds/<userID>/<filename> and returns
	// a URL the decoder can fetch.
	Upload(ctx context.Context, data []byte, filename, userID string) (string, error)
	// Delete removes a blob given its URL or object path.
	Delete(ctx context.Context, path string) error
}
