// SPDX-License-Identifier: EPL-2.0

package preview

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/sfxkit/audio"
)

const pollInterval = 10 * time.Millisecond

// OtoOutput plays on the system audio device. oto allows a single context
// per process, so create one OtoOutput at start-up and share it.
type OtoOutput struct {
	ctx        *oto.Context
	sampleRate int
	channels   int
}

// NewOtoOutput opens the device with float32 samples. bufferSize 0 uses
// the driver default.
func NewOtoOutput(sampleRate, channels int, bufferSize time.Duration) (*OtoOutput, error) {
	if channels != 1 && channels != 2 {
		return nil, fmt.Errorf("%w: %d", audio.ErrInvalidChannels, channels)
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}
	<-ready

	log.Printf("preview: audio output initialized: %dHz, %d channels", sampleRate, channels)

	return &OtoOutput{ctx: ctx, sampleRate: sampleRate, channels: channels}, nil
}

func (o *OtoOutput) SampleRate() int { return o.sampleRate }
func (o *OtoOutput) Channels() int   { return o.channels }

// Start plays src on a new oto player. src must already match the
// output's rate and channel count.
func (o *OtoOutput) Start(src audio.Source) (Voice, error) {
	if src.SampleRate() != o.sampleRate || src.Channels() != o.channels {
		return nil, fmt.Errorf("source is %d Hz %d ch, output is %d Hz %d ch",
			src.SampleRate(), src.Channels(), o.sampleRate, o.channels)
	}

	r := newSourceReader(src)
	p := o.ctx.NewPlayer(r)
	p.Play()

	v := &otoVoice{player: p, reader: r, done: make(chan struct{}), quit: make(chan struct{})}
	go v.poll()
	return v, nil
}

// Suspend pauses the device for every player.
func (o *OtoOutput) Suspend() error {
	if err := o.ctx.Suspend(); err != nil {
		return fmt.Errorf("suspending output: %w", err)
	}
	return nil
}

type otoVoice struct {
	player *oto.Player
	reader *sourceReader
	done   chan struct{}
	quit   chan struct{}
	once   sync.Once
}

func (v *otoVoice) Done() <-chan struct{} { return v.done }

func (v *otoVoice) poll() {
	t := time.NewTicker(pollInterval)
	defer t.Stop()

	for {
		select {
		case <-v.quit:
			return
		case <-t.C:
			if v.reader.finished() && !v.player.IsPlaying() {
				if err := v.player.Err(); err != nil {
					log.Printf("preview: player error: %v", err)
				}
				close(v.done)
				return
			}
		}
	}
}

func (v *otoVoice) Stop() error {
	var err error
	v.once.Do(func() {
		close(v.quit)
		v.player.Pause()
		err = v.player.Close()
	})
	if err != nil {
		return fmt.Errorf("closing player: %w", err)
	}
	return nil
}

// sourceReader serialises a Source as little-endian float32 bytes for oto.
type sourceReader struct {
	src audio.Source
	buf []float32

	mu  sync.Mutex
	eof bool
}

func newSourceReader(src audio.Source) *sourceReader {
	return &sourceReader{src: src}
}

func (r *sourceReader) finished() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.eof
}

func (r *sourceReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.eof {
		return 0, io.EOF
	}

	channels := r.src.Channels()
	samples := len(p) / 4
	samples -= samples % channels
	if samples == 0 {
		return 0, nil
	}
	if cap(r.buf) < samples {
		r.buf = make([]float32, samples)
	}
	r.buf = r.buf[:samples]

	n, err := r.src.ReadSamples(r.buf)
	for i := range n {
		binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(r.buf[i]))
	}

	if err != nil {
		r.eof = true
		if !errors.Is(err, io.EOF) {
			log.Printf("preview: source error: %v", err)
		}
		if n == 0 {
			return 0, io.EOF
		}
	}
	return 4 * n, nil
}
