// SPDX-License-Identifier: EPL-2.0

package sfxkit

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/ik5/sfxkit/decode"
	"github.com/ik5/sfxkit/formats/wav"
	"github.com/ik5/sfxkit/mixer"
	"github.com/ik5/sfxkit/transform"
)

// ExportWAV decodes the sound at locator, applies p and writes the result
// to w as a 16-bit PCM WAV file. Nothing is written unless the whole
// render succeeds.
//
// Example:
//
//	p := transform.Params{Volume: 80, Pitch: 2, Speed: 100, Duration: 100}
//	f, _ := os.Create("click.wav")
//	defer f.Close()
//	err := sfxkit.ExportWAV(ctx, "/sounds/clicks/ui-click.mp3", p, f,
//	    decode.WithFetcher(&decode.Resolver{AssetRoot: "./public"}))
func ExportWAV(ctx context.Context, locator string, p transform.Params, w io.Writer, opts ...decode.Option) error {
	buf, err := decode.New(opts...).Decode(ctx, locator)
	if err != nil {
		return err
	}
	return transform.ExportWAV(ctx, buf, p, w)
}

// MixWAV decodes every layer, mixes them at the default rate with the
// default safety tail and writes the mix to w as a 16-bit PCM WAV file.
// A layer that fails to decode fails the whole mix.
func MixWAV(ctx context.Context, layers []mixer.Spec, w io.Writer, opts ...decode.Option) error {
	buf, err := mixer.Compose(ctx, decode.New(opts...), layers, mixer.DefaultOptions(), mixer.DefaultWorkers)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	if err := wav.Encode(&out, buf); err != nil {
		return fmt.Errorf("%w", err)
	}
	if _, err := out.WriteTo(w); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
