// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio into an audio.Source.
//
// Decoding is done by github.com/hajimehoshi/go-mp3, which always yields
// 16-bit stereo; mono files are returned with both channels identical.
//
// # Basic Usage
//
//	f, _ := os.Open("click.mp3")
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	buf, err := audio.ReadAll(src)
//
// # Reading
//
// ReadSamples always returns whole stereo frames, even when the
// underlying decoder hands back a partial frame. A trailing half frame at
// the end of the stream is dropped.
//
// # Limitations
//
//   - Decoding only
//   - Output is always stereo (use audio.NewMonoMixer to fold it)
package mp3
