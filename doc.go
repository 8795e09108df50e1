// SPDX-License-Identifier: EPL-2.0

// Package sfxkit is the audio core of a UI sound-effect editor: it loads
// short sounds, reshapes them, layers them into compositions and renders
// the results as WAV files.
//
// # Packages
//
//   - decode: fetches a sound by path, file:// or http(s) URL and decodes
//     it into an audio.Buffer
//   - transform: volume, pitch, speed and duration, for live preview or
//     offline export
//   - mixer: sums layers with per-layer volume and delay into a stereo mix
//   - preview: a live session that plays one preview per sound id
//   - catalog, store, studio: the built-in library, persistence and the
//     save/export/delete flows
//
// # Supported Formats
//
//   - WAV (PCM 8/16/24/32-bit) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF (PCM 8/16/24/32-bit) via formats/aiff
//   - FLAC via formats/flac
//
// # Quick Start
//
// Render a customized sound to a file:
//
//	p := transform.Params{Volume: 80, Pitch: 3, Speed: 100, Duration: 120}
//	f, _ := os.Create("alert.wav")
//	defer f.Close()
//	err := sfxkit.ExportWAV(ctx, "alert.mp3", p, f)
//
// Mix a composition:
//
//	err := sfxkit.MixWAV(ctx, []mixer.Spec{
//	    {ID: "click", Locator: "click.mp3", Volume: 100, Delay: 0},
//	    {ID: "swipe", Locator: "swipe.mp3", Volume: 60, Delay: 1.2},
//	}, f)
//
// # Processing Pipeline
//
// Every render is built from audio.Source stages:
//
//	src := buf.Source()
//	rs := audio.NewResampler(src, 44100, audio.WithPlaybackRate(p.PlaybackRate()))
//	out, err := audio.ReadFrames(audio.NewGain(rs, p.Gain()), p.RenderFrames(buf.Frames()))
//
// Offline renders never depend on the live preview device: each one builds
// its own graph and reads it to the end.
//
// # Writing WAV Files
//
// Exports are canonical 44-byte-header PCM16 files:
//
//	data, err := wav.EncodeBytes(buf)
//	info, err := wav.Validate(data) // chunk sizes match the payload
//
// See the individual subpackages for more detailed documentation.
package sfxkit
