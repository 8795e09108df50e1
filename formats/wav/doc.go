// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV decoding and the 16-bit PCM export writer.
//
// # Decoding
//
// Decoder reads integer PCM WAV files (8, 16, 24 and 32-bit, any channel
// count and sample rate) through github.com/go-audio/wav. Extra chunks
// such as LIST are skipped. IEEE float and compressed WAV are rejected with
// ErrUnsupportedEncoding.
//
//	source, err := wav.Decoder{}.Decode(file)
//	buf, err := audio.ReadAll(source)
//
// # Writing
//
// WriteWAV16 writes interleaved int16 samples behind a canonical 44-byte
// header. Encode and EncodeBytes quantise a float buffer first, each sample
// becoming round(clamp(s, -1, 1) * 32767):
//
//	data, err := wav.EncodeBytes(buf)
//
// WriteFile produces the same samples through the go-audio encoder and
// renames the file into place only after it is complete.
//
// # Validation
//
// Validate walks the chunk list of a complete file and checks that the
// RIFF size, every chunk size and the data block alignment agree with the
// payload actually present.
package wav
