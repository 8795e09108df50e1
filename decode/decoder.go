// SPDX-License-Identifier: EPL-2.0

package decode

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ik5/sfxkit/audio"
	"github.com/ik5/sfxkit/formats/aiff"
	"github.com/ik5/sfxkit/formats/flac"
	"github.com/ik5/sfxkit/formats/mp3"
	"github.com/ik5/sfxkit/formats/vorbis"
	"github.com/ik5/sfxkit/formats/wav"
)

const (
	DefaultMaxBytes    = 32 << 20
	DefaultHTTPTimeout = 15 * time.Second
)

// Decoder turns locators into fully decoded buffers. It holds no cache and
// is safe for concurrent use.
type Decoder struct {
	fetcher  Fetcher
	registry *audio.Registry
}

type Option func(*Decoder)

// WithFetcher replaces the default Resolver.
func WithFetcher(f Fetcher) Option {
	return func(d *Decoder) { d.fetcher = f }
}

// WithRegistry replaces the built-in container decoders.
func WithRegistry(r *audio.Registry) Option {
	return func(d *Decoder) { d.registry = r }
}

// NewRegistry returns a registry holding every supported container.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register(FormatWAV, wav.Decoder{})
	r.Register(FormatMP3, mp3.Decoder{})
	r.Register(FormatVorbis, vorbis.Decoder{})
	r.Register(FormatAIFF, aiff.Decoder{})
	r.Register(FormatFLAC, flac.Decoder{})
	return r
}

// New returns a Decoder that reads local files and fetches http(s) URLs
// with DefaultHTTPTimeout and DefaultMaxBytes.
func New(opts ...Option) *Decoder {
	d := &Decoder{
		fetcher: &Resolver{
			Client:   &http.Client{Timeout: DefaultHTTPTimeout},
			MaxBytes: DefaultMaxBytes,
		},
		registry: NewRegistry(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode fetches locator and decodes it completely. It returns either the
// whole buffer or a *DecodeError, never a partial buffer.
func (d *Decoder) Decode(ctx context.Context, locator string) (*audio.Buffer, error) {
	fail := func(err error) (*audio.Buffer, error) {
		return nil, &DecodeError{Locator: locator, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	data, err := d.fetcher.Fetch(ctx, locator)
	if err != nil {
		return fail(err)
	}

	buf, err := d.DecodeBytes(data, FormatFromLocator(locator))
	if err != nil {
		return fail(err)
	}
	return buf, nil
}

// DecodeBytes decodes an in-memory resource. The hint, usually taken from
// a file extension, is tried first; the content's magic bytes win when the
// hint fails.
func (d *Decoder) DecodeBytes(data []byte, hint string) (*audio.Buffer, error) {
	if len(data) == 0 {
		return nil, ErrEmptyAudio
	}

	formats := make([]string, 0, 2)
	if sniffed := Sniff(data); sniffed != "" {
		formats = append(formats, sniffed)
	}
	if hint != "" && (len(formats) == 0 || formats[0] != hint) {
		formats = append(formats, hint)
	}
	if len(formats) == 0 {
		return nil, ErrUnsupportedFormat
	}

	var errs []error
	for _, name := range formats {
		dec, ok := d.registry.Get(name)
		if !ok {
			errs = append(errs, ErrUnsupportedFormat)
			continue
		}
		buf, err := decodeAll(dec, data)
		if err == nil {
			return buf, nil
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

func decodeAll(dec audio.Decoder, data []byte) (*audio.Buffer, error) {
	src, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer src.Close()

	buf, err := audio.ReadAll(src)
	if err != nil {
		return nil, err
	}
	if buf.Frames() == 0 {
		return nil, ErrEmptyAudio
	}
	return buf, nil
}
