// SPDX-License-Identifier: EPL-2.0

// Package mixer is the composition mixer. It places decoded layers on a
// shared timeline and sums them into one stereo buffer.
//
// Each layer is resampled to the mix rate and mapped to stereo (mono is
// duplicated, wider layouts are averaged), scaled by volume/100 and added
// starting at frame round(delay * sampleRate). The output runs until the
// latest-starting layer ends, plus a fixed safety tail of silence (two
// seconds by default) that leaves room for decay. The tail is a heuristic;
// it does not look at the audio.
//
// Layers are summed in a canonical order derived from their content, so
// the result is identical for any ordering of the input list. Sums may
// leave [-1, 1]; clipping happens only when the mix is quantised.
//
// Stream is the sample-clocked form of the same mix: layers start at their
// frame offsets as samples are read, with no wall-clock timers. Mix reads
// a Stream to the end, and Compose decodes layers concurrently first:
//
//	buf, err := mixer.Compose(ctx, decode.New(), []mixer.Spec{
//	    {Locator: "/sounds/clicks/ui-click.mp3", Volume: 100, Delay: 0},
//	    {Locator: "/sounds/notifications/bright-alert.mp3", Volume: 80, Delay: 0.5},
//	}, mixer.DefaultOptions(), 0)
//
// A layer that fails to decode or is invalid aborts the whole mix with a
// *MixError naming it.
package mixer
