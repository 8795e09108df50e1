// SPDX-License-Identifier: EPL-2.0

// Package transform is the transform engine. It applies a Params snapshot
// (volume, pitch, speed and duration) to a decoded buffer for one of two
// targets:
//
//   - Export renders offline. The whole result is computed before anything
//     is returned and is exactly ceil(frames * duration/100) frames long.
//   - Preview builds a streaming graph for a live output device. Duration
//     sets how long the stream stays audible instead of its frame count.
//
// Both targets read the source through a single resampler whose playback
// rate is 2^(pitch/12) * speed/100, followed by a gain of volume/100.
// Pitch and speed are coupled: raising the pitch also shortens the sound.
//
// Samples are never clipped while rendering. ExportWAV clamps only when
// quantising to 16-bit PCM, and writes nothing unless the render and the
// encoding both succeed:
//
//	f, _ := os.Create("click.wav")
//	err := transform.ExportWAV(ctx, buf, transform.Params{
//	    Volume: 80, Pitch: 3, Speed: 100, Duration: 120,
//	}, f)
package transform
