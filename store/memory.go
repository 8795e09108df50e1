// SPDX-License-Identifier: EPL-2.0

package store

import (
	"cmp"
	"context"
	"fmt"
	"log"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ik5/sfxkit/catalog"
	"github.com/ik5/sfxkit/transform"
)

const (
	defaultSoundName = "Custom Sound"
	defaultCategory  = "custom"
)

// Option configures a Memory store.
type Option func(*Memory)

// WithClock replaces time.Now for record timestamps and ids.
func WithClock(now func() time.Time) Option {
	return func(m *Memory) { m.now = now }
}

// Memory keeps records in maps guarded by a mutex. Values are copied on
// the way in and out, so callers never share state with the store.
type Memory struct {
	mu         sync.RWMutex
	records    map[string]Record
	categories map[string]UserCategory
	now        func() time.Time
}

var (
	_ Persistence = (*Memory)(nil)
	_ Categories  = (*Memory)(nil)
)

func NewMemory(opts ...Option) *Memory {
	m := &Memory{
		records:    make(map[string]Record),
		categories: make(map[string]UserCategory),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Snapshot is the serialisable state of a Memory store.
type Snapshot struct {
	Records    map[string]Record       `json:"records"`
	Categories map[string]UserCategory `json:"categories"`
}

func (m *Memory) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Snapshot{
		Records:    make(map[string]Record, len(m.records)),
		Categories: maps.Clone(m.categories),
	}
	for k, r := range m.records {
		s.Records[k] = cloneRecord(r)
	}
	return s
}

// Restore replaces the whole state with s.
func (m *Memory) Restore(s Snapshot) {
	records := make(map[string]Record, len(s.Records))
	for k, r := range s.Records {
		records[k] = cloneRecord(r)
	}
	categories := maps.Clone(s.Categories)
	if categories == nil {
		categories = make(map[string]UserCategory)
	}

	m.mu.Lock()
	m.records = records
	m.categories = categories
	m.mu.Unlock()
}

func (m *Memory) SaveCustomization(ctx context.Context, soundID string, params transform.Params, userID string, original *catalog.CustomizableSound, name string) (bool, error) {
	if userID == "" {
		return false, nil
	}

	var sound catalog.CustomizableSound
	if original != nil {
		sound = original.Clone()
	}
	sound.Layers = nil
	sound.Customization = &params
	sound.Name = cmp.Or(name, sound.Name)

	if _, err := m.Save(ctx, userID, soundID, sound); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Memory) Save(ctx context.Context, userID, originalSoundID string, sound catalog.CustomizableSound) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, &PersistenceError{Op: "save", ID: originalSoundID, Err: err}
	}
	if userID == "" || originalSoundID == "" {
		return Record{}, &PersistenceError{Op: "save", ID: originalSoundID, Err: fmt.Errorf("%w: missing user or sound id", ErrInvalidRecord)}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now().UTC()
	id := m.freeID(userID, originalSoundID, now)

	sound = sound.Clone()
	sound.ID = id
	sound.Name = cmp.Or(sound.Name, defaultSoundName)
	sound.Category = cmp.Or(sound.Category, defaultCategory)
	if err := sound.Validate(); err != nil {
		return Record{}, &PersistenceError{Op: "save", ID: originalSoundID, Err: fmt.Errorf("%w: %w", ErrInvalidRecord, err)}
	}

	rec := Record{
		UserID:          userID,
		SoundID:         id,
		OriginalSoundID: originalSoundID,
		Sound:           sound,
		SavedAt:         now,
	}
	m.records[id] = rec
	return cloneRecord(rec), nil
}

// freeID builds <userID>_<soundID>_<unixMillis>, moving to the next
// millisecond while the id is taken. Callers hold m.mu.
func (m *Memory) freeID(userID, soundID string, at time.Time) string {
	ms := at.UnixMilli()
	for {
		id := fmt.Sprintf("%s_%s_%d", userID, soundID, ms)
		if _, taken := m.records[id]; !taken {
			return id
		}
		ms++
	}
}

func (m *Memory) GetCustomization(ctx context.Context, soundID string) (transform.Params, bool, error) {
	if err := ctx.Err(); err != nil {
		return transform.Params{}, false, &PersistenceError{Op: "get", ID: soundID, Err: err}
	}

	m.mu.RLock()
	rec, ok := m.records[soundID]
	m.mu.RUnlock()

	if !ok || rec.Sound.Customization == nil {
		return transform.Params{}, false, nil
	}
	return *rec.Sound.Customization, true, nil
}

func (m *Memory) Record(ctx context.Context, soundID string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, &PersistenceError{Op: "get", ID: soundID, Err: err}
	}

	m.mu.RLock()
	rec, ok := m.records[soundID]
	m.mu.RUnlock()

	if !ok {
		return Record{}, &PersistenceError{Op: "get", ID: soundID, Err: ErrNotFound}
	}
	return cloneRecord(rec), nil
}

// UserSavedSounds lists a user's sounds oldest first. Records without an
// id or path are skipped.
func (m *Memory) UserSavedSounds(ctx context.Context, userID string) ([]catalog.CustomizableSound, error) {
	if err := ctx.Err(); err != nil {
		return nil, &PersistenceError{Op: "list", ID: userID, Err: err}
	}

	m.mu.RLock()
	var recs []Record
	for _, r := range m.records {
		if r.UserID == userID {
			recs = append(recs, r)
		}
	}
	m.mu.RUnlock()

	slices.SortFunc(recs, func(a, b Record) int {
		return cmp.Or(a.SavedAt.Compare(b.SavedAt), strings.Compare(a.SoundID, b.SoundID))
	})

	sounds := make([]catalog.CustomizableSound, 0, len(recs))
	for _, r := range recs {
		if r.Sound.ID == "" || r.Sound.Path == "" {
			log.Printf("store: skipping malformed record %s", r.SoundID)
			continue
		}
		sounds = append(sounds, r.Sound.Clone())
	}
	return sounds, nil
}

// DeleteCustomSound removes a record owned by userID. An empty userID is
// a no-op.
func (m *Memory) DeleteCustomSound(ctx context.Context, soundID, userID string) error {
	if userID == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return &PersistenceError{Op: "delete", ID: soundID, Err: err}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[soundID]
	switch {
	case !ok:
		return &PersistenceError{Op: "delete", ID: soundID, Err: ErrNotFound}
	case rec.UserID != userID:
		return &PersistenceError{Op: "delete", ID: soundID, Err: ErrForbidden}
	}
	delete(m.records, soundID)
	return nil
}

func (m *Memory) CreateCategory(ctx context.Context, userID, name string) (UserCategory, error) {
	if err := ctx.Err(); err != nil {
		return UserCategory{}, &PersistenceError{Op: "create category", Err: err}
	}
	if userID == "" || strings.TrimSpace(name) == "" {
		return UserCategory{}, &PersistenceError{Op: "create category", Err: fmt.Errorf("%w: missing user or name", ErrInvalidRecord)}
	}

	c := UserCategory{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		UserID:    userID,
		CreatedAt: m.now().UTC(),
	}

	m.mu.Lock()
	m.categories[c.ID] = c
	m.mu.Unlock()

	return c, nil
}

// UserCategories lists a user's categories by creation time.
func (m *Memory) UserCategories(ctx context.Context, userID string) ([]UserCategory, error) {
	if err := ctx.Err(); err != nil {
		return nil, &PersistenceError{Op: "list categories", ID: userID, Err: err}
	}

	m.mu.RLock()
	var out []UserCategory
	for _, c := range m.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	m.mu.RUnlock()

	slices.SortFunc(out, func(a, b UserCategory) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), strings.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (m *Memory) UpdateCategory(ctx context.Context, userID, categoryID, name string) (UserCategory, error) {
	if err := ctx.Err(); err != nil {
		return UserCategory{}, &PersistenceError{Op: "update category", ID: categoryID, Err: err}
	}
	if strings.TrimSpace(name) == "" {
		return UserCategory{}, &PersistenceError{Op: "update category", ID: categoryID, Err: fmt.Errorf("%w: empty name", ErrInvalidRecord)}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c, err := m.ownedCategory("update category", userID, categoryID)
	if err != nil {
		return UserCategory{}, err
	}
	c.Name = strings.TrimSpace(name)
	c.UpdatedAt = m.now().UTC()
	m.categories[categoryID] = c
	return c, nil
}

func (m *Memory) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	if err := ctx.Err(); err != nil {
		return &PersistenceError{Op: "delete category", ID: categoryID, Err: err}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.ownedCategory("delete category", userID, categoryID); err != nil {
		return err
	}
	delete(m.categories, categoryID)
	return nil
}

// Callers hold m.mu.
func (m *Memory) ownedCategory(op, userID, categoryID string) (UserCategory, error) {
	c, ok := m.categories[categoryID]
	switch {
	case !ok:
		return UserCategory{}, &PersistenceError{Op: op, ID: categoryID, Err: ErrNotFound}
	case c.UserID != userID:
		return UserCategory{}, &PersistenceError{Op: op, ID: categoryID, Err: ErrForbidden}
	}
	return c, nil
}

func cloneRecord(r Record) Record {
	r.Sound = r.Sound.Clone()
	return r
}
