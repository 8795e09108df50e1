// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMixer maps a source onto a fixed output channel count:
//   - same count: pass-through
//   - N -> 1: average of all channels
//   - 1 -> N: the mono channel duplicated to every output
//   - N -> M with N > M > 1: averaged to mono, then duplicated
//   - N -> M with 1 < N < M: output channel c takes input channel c mod N
type ChannelMixer struct {
	src Source
	out int
	tmp []float32
}

func NewChannelMixer(src Source, channels int) *ChannelMixer {
	return &ChannelMixer{
		src: src,
		out: channels,
		tmp: make([]float32, 4096),
	}
}

// NewMonoMixer downmixes src to a single channel.
func NewMonoMixer(src Source) *ChannelMixer {
	return NewChannelMixer(src, 1)
}

// NewStereoMixer maps src onto two channels.
func NewStereoMixer(src Source) *ChannelMixer {
	return NewChannelMixer(src, 2)
}

func (m *ChannelMixer) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMixer) Channels() int   { return m.out }
func (m *ChannelMixer) BufSize() int    { return m.src.BufSize() }
func (m *ChannelMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (m *ChannelMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if m.out <= 0 {
		return 0, ErrInvalidChannels
	}
	if len(dst)%m.out != 0 {
		return 0, ErrInvalidDstSize
	}

	in := m.src.Channels()
	if in == m.out {
		return m.src.ReadSamples(dst)
	}

	maxFrames := len(dst) / m.out
	samplesNeeded := maxFrames * in

	// Grow tmp buffer if needed (but don't shrink to avoid thrashing)
	if cap(m.tmp) < samplesNeeded {
		m.tmp = make([]float32, max(samplesNeeded, 8192))
	}
	m.tmp = m.tmp[:samplesNeeded]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}
	frames := n / in

	switch {
	case in == 1:
		for f := range frames {
			v := m.tmp[f]
			base := f * m.out
			for c := range m.out {
				dst[base+c] = v
			}
		}
	case m.out == 1 || in > m.out:
		m.downmix(dst, frames, in)
	default:
		for f := range frames {
			src := m.tmp[f*in : f*in+in]
			base := f * m.out
			for c := range m.out {
				dst[base+c] = src[c%in]
			}
		}
	}

	return frames * m.out, err
}

func (m *ChannelMixer) downmix(dst []float32, frames, in int) {
	invChannels := float32(1.0) / float32(in)

	for f := range frames {
		var v float32
		switch in {
		case 2:
			idx := f << 1
			v = (m.tmp[idx] + m.tmp[idx+1]) * 0.5
		default:
			sum := float32(0)
			baseIdx := f * in
			for c := range in {
				sum += m.tmp[baseIdx+c]
			}
			v = sum * invChannels
		}

		base := f * m.out
		for c := range m.out {
			dst[base+c] = v
		}
	}
}
