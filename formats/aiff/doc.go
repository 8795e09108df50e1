// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes uncompressed AIFF and AIFF-C files into an
// audio.Source using github.com/go-audio/aiff.
//
// Signed integer PCM at 8, 16, 24 and 32 bits is supported and
// normalised to float32 in [-1, 1). The decoder needs random access, so
// inputs that are not an io.ReadSeeker are buffered in memory first.
//
//	f, _ := os.Open("whoosh.aiff")
//	src, err := aiff.Decoder{}.Decode(f)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // try another decoder
//	}
package aiff
