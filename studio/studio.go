// SPDX-License-Identifier: EPL-2.0

package studio

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ik5/sfxkit/audio"
	"github.com/ik5/sfxkit/catalog"
	"github.com/ik5/sfxkit/formats/wav"
	"github.com/ik5/sfxkit/mixer"
	"github.com/ik5/sfxkit/preview"
	"github.com/ik5/sfxkit/store"
	"github.com/ik5/sfxkit/transform"
)

const (
	customCategory  = "custom"
	layeredCategory = "layered"
	layeredSoundID  = "layered"
)

// Studio ties decoding, rendering, persistence and preview together.
type Studio struct {
	dec     mixer.Decoder
	records store.Persistence
	blobs   store.BlobStore
	session *preview.Session
	mix     mixer.Options
	workers int
	now     func() time.Time
}

type Option func(*Studio)

func WithSession(s *preview.Session) Option {
	return func(st *Studio) { st.session = s }
}

func WithMixOptions(o mixer.Options) Option {
	return func(st *Studio) { st.mix = o }
}

// WithWorkers bounds concurrent decodes and renders.
func WithWorkers(n int) Option {
	return func(st *Studio) { st.workers = n }
}

// WithClock replaces time.Now for blob file names.
func WithClock(now func() time.Time) Option {
	return func(st *Studio) { st.now = now }
}

func New(dec mixer.Decoder, records store.Persistence, blobs store.BlobStore, opts ...Option) *Studio {
	s := &Studio{
		dec:     dec,
		records: records,
		blobs:   blobs,
		mix:     mixer.DefaultOptions(),
		workers: mixer.DefaultWorkers,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Export renders sound with p and returns the WAV file.
func (s *Studio) Export(ctx context.Context, sound catalog.Sound, p transform.Params) ([]byte, error) {
	buf, err := s.dec.Decode(ctx, sound.Path)
	if err != nil {
		return nil, err
	}
	return transform.EncodeWAV(ctx, buf, p)
}

// ExportComposition mixes layers and returns the WAV file.
func (s *Studio) ExportComposition(ctx context.Context, layers []catalog.LayerRef) ([]byte, error) {
	buf, err := mixer.Compose(ctx, s.dec, specs(layers), s.mix, s.workers)
	if err != nil {
		return nil, err
	}
	return wav.EncodeBytes(buf)
}

// SaveCustomization renders sound with p, uploads the file and stores a
// new record pointing at it.
func (s *Studio) SaveCustomization(ctx context.Context, userID string, sound catalog.Sound, p transform.Params, name, categoryID string) (store.Record, error) {
	if userID == "" {
		return store.Record{}, ErrNoUser
	}

	data, err := s.Export(ctx, sound, p)
	if err != nil {
		return store.Record{}, err
	}

	saved := catalog.CustomizableSound{
		Sound: catalog.Sound{
			Name:     cmp.Or(name, sound.Name),
			Category: customCategory,
			Tags:     sound.Tags,
		},
		Customization: &p,
		CategoryID:    categoryID,
	}
	filename := fmt.Sprintf("custom-%s-%d.wav", sound.ID, s.now().UnixMilli())
	return s.upload(ctx, userID, sound.ID, filename, data, saved)
}

// SaveComposition mixes layers, uploads the file and stores a new record
// that keeps the layer list.
func (s *Studio) SaveComposition(ctx context.Context, userID string, layers []catalog.LayerRef, name, categoryID string) (store.Record, error) {
	if userID == "" {
		return store.Record{}, ErrNoUser
	}

	data, err := s.ExportComposition(ctx, layers)
	if err != nil {
		return store.Record{}, err
	}

	saved := catalog.CustomizableSound{
		Sound: catalog.Sound{
			Name:     name,
			Category: layeredCategory,
		},
		Layers:     layers,
		CategoryID: categoryID,
	}
	filename := fmt.Sprintf("layered-sound-%d.wav", s.now().UnixMilli())
	return s.upload(ctx, userID, layeredSoundID, filename, data, saved)
}

// upload stores the blob before the record. If the record cannot be
// stored the blob is removed again.
func (s *Studio) upload(ctx context.Context, userID, originalID, filename string, data []byte, saved catalog.CustomizableSound) (store.Record, error) {
	url, err := s.blobs.Upload(ctx, data, filename, userID)
	if err != nil {
		return store.Record{}, err
	}
	saved.Path = url

	rec, err := s.records.Save(ctx, userID, originalID, saved)
	if err != nil {
		if derr := s.blobs.Delete(context.WithoutCancel(ctx), url); derr != nil {
			log.Printf("studio: removing orphaned blob %s: %v", url, derr)
			return store.Record{}, errors.Join(err, derr)
		}
		return store.Record{}, err
	}

	log.Printf("studio: saved %s for %s (%d bytes)", rec.SoundID, userID, len(data))
	return rec, nil
}

// DeleteSound removes a saved sound's blob and then its record. A blob
// that is already gone does not block removing the record.
func (s *Studio) DeleteSound(ctx context.Context, userID, soundID string) error {
	if userID == "" {
		return ErrNoUser
	}

	rec, err := s.records.Record(ctx, soundID)
	if err != nil {
		return err
	}
	if rec.UserID != userID {
		return &store.PersistenceError{Op: "delete", ID: soundID, Err: store.ErrForbidden}
	}

	if err := s.blobs.Delete(ctx, rec.Sound.Path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		log.Printf("studio: blob for %s already missing: %v", soundID, err)
	}
	return s.records.DeleteCustomSound(ctx, soundID, userID)
}

// Variant is one rendered variation of a sound.
type Variant struct {
	Params transform.Params
	WAV    []byte
}

// Variants renders n subtle variations of base. The source is decoded
// once; renders run concurrently.
func (s *Studio) Variants(ctx context.Context, sound catalog.Sound, base transform.Params, n int) ([]Variant, error) {
	if err := base.Validate(); err != nil {
		return nil, &transform.RenderError{Op: "variants", Err: err}
	}

	buf, err := s.dec.Decode(ctx, sound.Path)
	if err != nil {
		return nil, err
	}

	params := transform.Variants(base, n)
	out := make([]Variant, len(params))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.workers, 1))
	for i, p := range params {
		g.Go(func() error {
			data, err := transform.EncodeWAV(gctx, buf, p)
			if err != nil {
				return fmt.Errorf("variant %d: %w", i, err)
			}
			out[i] = Variant{Params: p, WAV: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// PreviewSound plays sound with p on the session, stopping every other
// preview first.
func (s *Studio) PreviewSound(ctx context.Context, sound catalog.Sound, p transform.Params) (*preview.Handle, error) {
	if s.session == nil {
		return nil, ErrNoSession
	}

	return s.session.Switch(ctx, sound.ID, func(ctx context.Context, f preview.Format) (preview.Graph, error) {
		buf, err := s.dec.Decode(ctx, sound.Path)
		if err != nil {
			return preview.Graph{}, err
		}
		src, window, err := transform.Stream(buf, p, transform.Device{SampleRate: f.SampleRate, Channels: f.Channels})
		if err != nil {
			return preview.Graph{}, err
		}
		return preview.Graph{Source: src, Window: window}, nil
	})
}

// PreviewComposition plays layers under key. Layers are scheduled on the
// mix stream's sample clock, at the device rate.
func (s *Studio) PreviewComposition(ctx context.Context, key string, layers []catalog.LayerRef) (*preview.Handle, error) {
	if s.session == nil {
		return nil, ErrNoSession
	}

	return s.session.Switch(ctx, key, func(ctx context.Context, f preview.Format) (preview.Graph, error) {
		decoded, err := mixer.DecodeLayers(ctx, s.dec, specs(layers), s.workers)
		if err != nil {
			return preview.Graph{}, err
		}

		opts := s.mix
		opts.SampleRate = f.SampleRate
		stream, err := mixer.NewStream(decoded, opts)
		if err != nil {
			return preview.Graph{}, err
		}

		var src audio.Source = stream.WithContext(ctx)
		if f.Channels != mixer.Channels {
			src = audio.NewChannelMixer(src, f.Channels)
		}
		return preview.Graph{Source: src}, nil
	})
}

// StopPreview stops the preview under key.
func (s *Studio) StopPreview(key string) bool {
	if s.session == nil {
		return false
	}
	return s.session.Stop(key)
}

// StopAll stops every preview, as when leaving the layering view.
func (s *Studio) StopAll() {
	if s.session != nil {
		s.session.StopAll()
	}
}

func specs(layers []catalog.LayerRef) []mixer.Spec {
	out := make([]mixer.Spec, len(layers))
	for i, l := range layers {
		out[i] = mixer.Spec{ID: l.Sound.ID, Locator: l.Sound.Path, Volume: l.Volume, Delay: l.Delay}
	}
	return out
}
