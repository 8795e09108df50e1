// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC streams into an audio.Source using
// github.com/mewkiz/flac.
//
// Frames are decoded lazily as samples are read. Integer samples of any
// bit depth are normalised to float32 in [-1, 1).
package flac
