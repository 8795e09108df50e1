// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/sfxkit/audio"
	"github.com/ik5/sfxkit/utils"
)

// Quantize interleaves buf and converts every sample with
// round(clamp(s, -1, 1) * 32767).
func Quantize(buf *audio.Buffer) []int16 {
	channels := buf.Channels()
	out := make([]int16, buf.Frames()*channels)
	for c, ch := range buf.Data {
		for f, s := range ch {
			out[f*channels+c] = utils.Float32ToInt16(s)
		}
	}
	return out
}

// Encode writes buf as a 16-bit PCM WAV.
func Encode(w io.Writer, buf *audio.Buffer) error {
	if err := buf.Validate(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return WriteWAV16(w, buf.SampleRate, buf.Channels(), Quantize(buf))
}

// EncodeBytes renders the complete file in memory.
func EncodeBytes(buf *audio.Buffer) ([]byte, error) {
	var out bytes.Buffer
	out.Grow(HeaderSize + buf.Frames()*buf.Channels()*2)
	if err := Encode(&out, buf); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// WriteFile encodes buf to path through the go-audio encoder. The file is
// written next to path and renamed into place only once complete.
func WriteFile(path string, buf *audio.Buffer) (err error) {
	if err := buf.Validate(); err != nil {
		return fmt.Errorf("%w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".sfx-*.wav")
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	samples := Quantize(buf)
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}

	enc := wav.NewEncoder(tmp, buf.SampleRate, 16, buf.Channels(), formatPCM)
	intBuf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			SampleRate:  buf.SampleRate,
			NumChannels: buf.Channels(),
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err = enc.Write(intBuf); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err = enc.Close(); err != nil {
		return fmt.Errorf("finalising %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
