// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"time"
)

// Info describes a structurally valid WAV file.
type Info struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
	AudioFormat   int
	DataSize      int
	Frames        int
}

func (i Info) Duration() time.Duration {
	if i.SampleRate <= 0 {
		return 0
	}
	return time.Duration(i.Frames) * time.Second / time.Duration(i.SampleRate)
}

// Validate walks the RIFF chunk list of a complete file and checks that every
// declared size agrees with the bytes actually present.
func Validate(data []byte) (Info, error) {
	var info Info

	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return info, ErrNotWavFile
	}
	if riff := binary.LittleEndian.Uint32(data[4:8]); int(riff) != len(data)-8 {
		return info, fmt.Errorf("%w: RIFF size %d, payload %d", ErrSizeMismatch, riff, len(data)-8)
	}

	var haveFmt, haveData bool
	pos := 12
	for pos < len(data) {
		if pos+8 > len(data) {
			return info, fmt.Errorf("%w: chunk header at %d", ErrTruncated, pos)
		}
		id := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8
		if body+size > len(data) {
			return info, fmt.Errorf("%w: %q declares %d bytes, %d present", ErrTruncated, id, size, len(data)-body)
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return info, fmt.Errorf("%w: fmt chunk of %d bytes", ErrUnsupportedWavLayout, size)
			}
			f := data[body : body+size]
			info.AudioFormat = int(binary.LittleEndian.Uint16(f[0:2]))
			info.Channels = int(binary.LittleEndian.Uint16(f[2:4]))
			info.SampleRate = int(binary.LittleEndian.Uint32(f[4:8]))
			info.BitsPerSample = int(binary.LittleEndian.Uint16(f[14:16]))
			haveFmt = true
		case "data":
			info.DataSize = size
			haveData = true
		}

		pos = body + size + size%2
	}
	if pos != len(data) {
		return info, fmt.Errorf("%w: padding runs past end of file", ErrSizeMismatch)
	}

	if !haveFmt || !haveData {
		return info, fmt.Errorf("%w: missing fmt or data chunk", ErrUnsupportedWavLayout)
	}
	if info.Channels < 1 || info.BitsPerSample < 8 {
		return info, ErrUnsupportedWavLayout
	}

	blockAlign := info.Channels * ((info.BitsPerSample + 7) / 8)
	if info.DataSize%blockAlign != 0 {
		return info, fmt.Errorf("%w: data size %d is not a multiple of block size %d", ErrSizeMismatch, info.DataSize, blockAlign)
	}
	info.Frames = info.DataSize / blockAlign

	return info, nil
}
