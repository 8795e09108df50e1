// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams into an audio.Source using
// github.com/jfreymuth/oggvorbis.
//
// The decoder keeps the stream's native sample rate and channel count.
// Samples are already float32 in [-1, 1], so no conversion is applied.
//
//	f, _ := os.Open("chime.ogg")
//	src, err := vorbis.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	stereo := audio.NewStereoMixer(src)
package vorbis
