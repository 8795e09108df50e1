// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	ErrUnsupportedEncoding  = errors.New("only integer PCM WAV is supported")
	ErrUnsupportedBitDepth  = errors.New("unsupported WAV bit depth")
	ErrInvalidChannels      = errors.New("channel count must be between 1 and 65535")
	ErrSampleCount          = errors.New("sample count must be a multiple of channels")
	ErrTruncated            = errors.New("WAV payload shorter than declared")
	ErrSizeMismatch         = errors.New("WAV chunk sizes do not match payload")
)
