// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"
)

func TestChannelMixer_Passthrough(t *testing.T) {
	t.Parallel()

	src := newConstantSource(8000, 1, 100, 0.5)
	mixer := NewMonoMixer(src)

	if mixer.Channels() != 1 {
		t.Errorf("ChannelMixer.Channels() = %d, want 1", mixer.Channels())
	}

	buf := make([]float32, 10)
	n, err := mixer.ReadSamples(buf)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 10 {
		t.Errorf("ReadSamples() n = %d, want 10", n)
	}
	for i := range n {
		if buf[i] != 0.5 {
			t.Errorf("buf[%d] = %v, want 0.5", i, buf[i])
		}
	}
}

func TestChannelMixer_Downmix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in, out  int
		expected float32
	}{
		{"stereo to mono", 2, 1, 0.05},
		{"quad to mono", 4, 1, 0.15},
		{"5.1 to stereo", 6, 2, 0.25},
		{"quad to stereo", 4, 2, 0.15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := newMockSource(8000, tt.in, 100, func(sample int, channel int) float32 {
				return float32(channel) / 10.0
			})
			mixer := NewChannelMixer(src, tt.out)

			buf := make([]float32, 10*tt.out)
			n, err := mixer.ReadSamples(buf)
			if err != nil {
				t.Fatalf("ReadSamples() error = %v", err)
			}
			if n != len(buf) {
				t.Fatalf("ReadSamples() n = %d, want %d", n, len(buf))
			}
			for i := range n {
				if math.Abs(float64(buf[i]-tt.expected)) > 0.001 {
					t.Errorf("buf[%d] = %v, want %v", i, buf[i], tt.expected)
				}
			}
		})
	}
}

func TestChannelMixer_MonoToStereo(t *testing.T) {
	t.Parallel()

	src := newRampSource(8000, 1, 50, 0.01)
	mixer := NewStereoMixer(src)

	buf := make([]float32, 100)
	n, err := mixer.ReadSamples(buf)
	if err != io.EOF {
		t.Fatalf("ReadSamples() error = %v, want io.EOF", err)
	}
	if n != 100 {
		t.Fatalf("ReadSamples() n = %d, want 100", n)
	}
	for f := range 50 {
		want := float32(f) * 0.01
		if buf[2*f] != want || buf[2*f+1] != want {
			t.Fatalf("frame %d = (%v, %v), want (%v, %v)", f, buf[2*f], buf[2*f+1], want, want)
		}
	}
}

func TestChannelMixer_Upmix(t *testing.T) {
	t.Parallel()

	src := newMockSource(8000, 2, 10, func(sample int, channel int) float32 {
		return float32(channel + 1)
	})
	mixer := NewChannelMixer(src, 4)

	buf := make([]float32, 8)
	n, err := mixer.ReadSamples(buf)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	want := []float32{1, 2, 1, 2, 1, 2, 1, 2}
	for i := range n {
		if buf[i] != want[i] {
			t.Errorf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestChannelMixer_EOF(t *testing.T) {
	t.Parallel()

	src := newSilentSource(8000, 2, 5)
	mixer := NewMonoMixer(src)

	buf := make([]float32, 10)
	n, err := mixer.ReadSamples(buf)
	if err != io.EOF {
		t.Errorf("ReadSamples() error = %v, want io.EOF", err)
	}
	if n != 5 {
		t.Errorf("ReadSamples() n = %d, want 5", n)
	}

	n, err = mixer.ReadSamples(buf)
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() after EOF = (%d, %v), want (0, io.EOF)", n, err)
	}
}

func TestChannelMixer_InvalidDstSize(t *testing.T) {
	t.Parallel()

	mixer := NewStereoMixer(newSilentSource(8000, 1, 100))

	_, err := mixer.ReadSamples(make([]float32, 3))
	if !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestChannelMixer_EmptyBuffer(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(newSilentSource(8000, 2, 100))

	n, err := mixer.ReadSamples(nil)
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}
}

func TestChannelMixer_PreservesMetadata(t *testing.T) {
	t.Parallel()

	mixer := NewChannelMixer(newSilentSource(22050, 6, 100), 2)

	if mixer.SampleRate() != 22050 {
		t.Errorf("SampleRate() = %d, want 22050", mixer.SampleRate())
	}
	if mixer.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", mixer.Channels())
	}
	if mixer.BufSize() != 4096 {
		t.Errorf("BufSize() = %d, want 4096", mixer.BufSize())
	}
}

func TestChannelMixer_Close(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	mixer := NewMonoMixer(&failingSource{err: boom})

	if err := mixer.Close(); !errors.Is(err, boom) {
		t.Errorf("Close() error = %v, want %v", err, boom)
	}
}

func TestChannelMixer_LargeBuffer(t *testing.T) {
	t.Parallel()

	src := newSineSource(44100, 2, 44100, 440.0)
	mixer := NewMonoMixer(src)

	buf := make([]float32, 16384)
	total := 0
	for {
		n, err := mixer.ReadSamples(buf)
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
	if total != 44100 {
		t.Errorf("total samples = %d, want 44100", total)
	}
}

func BenchmarkChannelMixer_StereoToMono(b *testing.B) {
	src := newSineSource(44100, 2, 44100, 440.0)
	mixer := NewMonoMixer(src)
	buf := make([]float32, 4096)

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		src.Reset()
		_, _ = mixer.ReadSamples(buf)
	}
}

func BenchmarkChannelMixer_MonoToStereo(b *testing.B) {
	src := newSineSource(44100, 1, 44100, 440.0)
	mixer := NewStereoMixer(src)
	buf := make([]float32, 4096)

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		src.Reset()
		_, _ = mixer.ReadSamples(buf)
	}
}
