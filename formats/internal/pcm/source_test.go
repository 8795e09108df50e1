// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"errors"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"
)

type mockReader struct {
	samples []int
	offset  int
	err     error
}

func (m *mockReader) Format() *goaudio.Format {
	return &goaudio.Format{SampleRate: 8000, NumChannels: 1}
}

func (m *mockReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	n := copy(buf.Data, m.samples[m.offset:])
	m.offset += n
	return n, nil
}

func TestSource_Normalises(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bitDepth int
		opts     []Option
		in       []int
		want     []float32
	}{
		{"16-bit", 16, nil, []int{0, 32767, -32767, -32768}, []float32{0, 1, -1, -1}},
		{"24-bit", 24, nil, []int{8388607, -8388608}, []float32{1, -1}},
		{"8-bit unsigned", 8, []Option{Unsigned()}, []int{128, 255, 0}, []float32{0, 1, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := NewSource(&mockReader{samples: tt.in}, 8000, 1, tt.bitDepth, tt.opts...)
			dst := make([]float32, 16)

			n, err := src.ReadSamples(dst)
			if err != io.EOF {
				t.Fatalf("ReadSamples() error = %v, want io.EOF", err)
			}
			if n != len(tt.want) {
				t.Fatalf("ReadSamples() n = %d, want %d", n, len(tt.want))
			}
			for i := range tt.want {
				if dst[i] != tt.want[i] {
					t.Errorf("dst[%d] = %v, want %v", i, dst[i], tt.want[i])
				}
			}
		})
	}
}

func TestSource_EOFIsSticky(t *testing.T) {
	t.Parallel()

	src := NewSource(&mockReader{samples: []int{1, 2, 3, 4}}, 8000, 1, 16)
	dst := make([]float32, 4)

	n, err := src.ReadSamples(dst)
	if n != 4 || err != nil {
		t.Fatalf("ReadSamples() = (%d, %v), want (4, nil)", n, err)
	}
	n, err = src.ReadSamples(dst)
	if n != 0 || err != io.EOF {
		t.Fatalf("ReadSamples() = (%d, %v), want (0, io.EOF)", n, err)
	}
	n, err = src.ReadSamples(dst)
	if n != 0 || err != io.EOF {
		t.Fatalf("ReadSamples() after EOF = (%d, %v), want (0, io.EOF)", n, err)
	}
}

func TestSource_ReaderError(t *testing.T) {
	t.Parallel()

	src := NewSource(&mockReader{err: io.ErrUnexpectedEOF}, 8000, 1, 16)

	_, err := src.ReadSamples(make([]float32, 4))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := NewSource(&mockReader{}, 44100, 2, 24)

	if src.SampleRate() != 44100 || src.Channels() != 2 || src.BitDepth() != 24 {
		t.Errorf("metadata = %d Hz %d ch %d bit", src.SampleRate(), src.Channels(), src.BitDepth())
	}
	if src.BufSize() != 4096 {
		t.Errorf("BufSize() = %d, want 4096", src.BufSize())
	}
	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}
}
