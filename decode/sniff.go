// SPDX-License-Identifier: EPL-2.0

package decode

import (
	"bytes"
	"path"
	"strings"

	"github.com/ik5/sfxkit/formats/aiff"
	"github.com/ik5/sfxkit/formats/flac"
)

// Format names match the keys in the decoder registry.
const (
	FormatWAV    = "wav"
	FormatMP3    = "mp3"
	FormatVorbis = "ogg"
	FormatAIFF   = "aiff"
	FormatFLAC   = "flac"
)

var extensions = map[string]string{
	".wav":  FormatWAV,
	".wave": FormatWAV,
	".mp3":  FormatMP3,
	".ogg":  FormatVorbis,
	".oga":  FormatVorbis,
	".aif":  FormatAIFF,
	".aiff": FormatAIFF,
	".aifc": FormatAIFF,
	".flac": FormatFLAC,
}

// Sniff identifies a container from its leading bytes. It returns "" when
// nothing matches.
func Sniff(data []byte) string {
	switch {
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")):
		return FormatWAV
	case aiff.Sniff(data):
		return FormatAIFF
	case flac.Sniff(data):
		return FormatFLAC
	case len(data) >= 4 && bytes.Equal(data[:4], []byte("OggS")):
		return FormatVorbis
	case len(data) >= 3 && bytes.Equal(data[:3], []byte("ID3")):
		return FormatMP3
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		// MPEG audio frame sync
		return FormatMP3
	}
	return ""
}

// FormatFromLocator guesses the container from the locator's extension,
// ignoring any query string.
func FormatFromLocator(locator string) string {
	if i := strings.IndexAny(locator, "?#"); i >= 0 {
		locator = locator[:i]
	}
	return extensions[strings.ToLower(path.Ext(locator))]
}
