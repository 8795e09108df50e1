// SPDX-License-Identifier: EPL-2.0

// Package decode is the asset decoder: it resolves a locator, fetches the
// encoded bytes and decodes them completely into an audio.Buffer at the
// container's native sample rate and channel count.
//
// Supported locators:
//   - filesystem paths
//   - file:// URLs
//   - http:// and https:// URLs
//   - catalog paths such as /sounds/clicks/ui-click.mp3, resolved under
//     Resolver.AssetRoot
//
// The container is identified from its magic bytes, with the locator's
// extension as a fallback. WAV, MP3, Ogg Vorbis, AIFF and FLAC are
// registered by default.
//
// Decoding is all-or-nothing. Every failure is returned as a *DecodeError
// naming the locator, and no buffer is returned with it:
//
//	dec := decode.New()
//	buf, err := dec.Decode(ctx, "/sounds/clicks/ui-click.mp3")
//	var de *decode.DecodeError
//	if errors.As(err, &de) {
//	    log.Printf("cannot load %s: %v", de.Locator, de.Err)
//	}
//
// Results are not cached.
package decode
