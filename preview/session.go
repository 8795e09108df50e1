// SPDX-License-Identifier: EPL-2.0

package preview

import (
	"context"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/ik5/sfxkit/audio"
)

// Voice is one source playing on an Output.
type Voice interface {
	// Done is closed when the source has been played to the end.
	Done() <-chan struct{}
	Stop() error
}

// Output is the live device. A process holds one Output and shares it
// through a Session.
type Output interface {
	SampleRate() int
	Channels() int
	Start(src audio.Source) (Voice, error)
}

// Format is what a Loader must produce for the session's output.
type Format struct {
	SampleRate int
	Channels   int
}

// Graph is a loaded preview. Window, when positive, stops playback after
// that long even if the source has not ended.
type Graph struct {
	Source audio.Source
	Window time.Duration
}

// Loader decodes a sound and builds its graph for the output format.
type Loader func(ctx context.Context, f Format) (Graph, error)

// Observer is told about every state change.
type Observer func(key string, state State)

type Option func(*Session)

func WithObserver(fn Observer) Option {
	return func(s *Session) { s.observers = append(s.observers, fn) }
}

// Session is the live playback context. It owns a registry of handles
// keyed by sound id; at most one handle per key is active.
type Session struct {
	out       Output
	observers []Observer

	mu      sync.Mutex
	handles map[string]*Handle
	closed  bool
}

func NewSession(out Output, opts ...Option) *Session {
	s := &Session{
		out:     out,
		handles: make(map[string]*Handle),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Format() Format {
	return Format{SampleRate: s.out.SampleRate(), Channels: s.out.Channels()}
}

// Play stops whatever is playing under key, then loads and starts a new
// preview. It returns once playback has started; the handle is released
// when the source ends, the window elapses or Stop is called.
func (s *Session) Play(ctx context.Context, key string, load Loader) (*Handle, error) {
	loadCtx, cancel := context.WithCancel(ctx)
	h := &Handle{key: key, session: s, cancel: cancel, state: Loading, done: make(chan struct{})}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		cancel()
		return nil, ErrClosed
	}
	prev := s.handles[key]
	s.handles[key] = h
	s.mu.Unlock()

	if prev != nil {
		prev.release()
	}
	s.notify(key, Loading)

	g, err := load(loadCtx, s.Format())
	if err == nil && g.Source == nil {
		err = errNoSource
	}
	if err != nil {
		h.release()
		return nil, fmt.Errorf("loading %s: %w", key, err)
	}
	if !h.set(Armed, func() { h.src = g.Source }) {
		closeLogged(key, g.Source)
		return nil, ErrStopped
	}
	s.notify(key, Armed)

	voice, err := s.out.Start(g.Source)
	if err != nil {
		h.release()
		return nil, fmt.Errorf("starting %s: %w", key, err)
	}
	if !h.set(Playing, func() { h.voice = voice }) {
		stopLogged(key, voice)
		return nil, ErrStopped
	}
	s.notify(key, Playing)

	go h.watch(voice, g.Window)
	return h, nil
}

// Switch stops every other preview before playing key, so no two sounds
// overlap.
func (s *Session) Switch(ctx context.Context, key string, load Loader) (*Handle, error) {
	for _, k := range s.Active() {
		if k != key {
			s.Stop(k)
		}
	}
	return s.Play(ctx, key, load)
}

// Stop releases the handle for key. It reports whether one was active.
func (s *Session) Stop(key string) bool {
	s.mu.Lock()
	h := s.handles[key]
	s.mu.Unlock()

	if h == nil {
		return false
	}
	h.release()
	return true
}

func (s *Session) StopAll() {
	for _, k := range s.Active() {
		s.Stop(k)
	}
}

// State of the handle for key; Idle when there is none.
func (s *Session) State(key string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h := s.handles[key]; h != nil {
		return h.state
	}
	return Idle
}

// Active returns the keys with a live handle, sorted.
func (s *Session) Active() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.handles))
	for k := range s.handles {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Close stops every preview and rejects further Play calls.
func (s *Session) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.StopAll()
	return nil
}

func (s *Session) notify(key string, st State) {
	for _, fn := range s.observers {
		fn(key, st)
	}
}

// Handle is one acquired preview. Its resources are released exactly once.
type Handle struct {
	key     string
	session *Session
	cancel  context.CancelFunc

	// guarded by session.mu
	state    State
	src      audio.Source
	voice    Voice
	released bool

	once sync.Once
	done chan struct{}
}

func (h *Handle) Key() string { return h.key }

func (h *Handle) State() State {
	h.session.mu.Lock()
	defer h.session.mu.Unlock()
	return h.state
}

// Done is closed once the handle has been released.
func (h *Handle) Done() <-chan struct{} { return h.done }

func (h *Handle) Stop() { h.release() }

// set moves the handle to st unless it was released meanwhile.
func (h *Handle) set(st State, fn func()) bool {
	h.session.mu.Lock()
	defer h.session.mu.Unlock()

	if h.released {
		return false
	}
	fn()
	h.state = st
	return true
}

func (h *Handle) watch(voice Voice, window time.Duration) {
	var timeout <-chan time.Time
	if window > 0 {
		t := time.NewTimer(window)
		defer t.Stop()
		timeout = t.C
	}

	select {
	case <-voice.Done():
	case <-timeout:
	case <-h.done:
		return
	}
	h.release()
}

func (h *Handle) release() {
	h.once.Do(func() {
		h.cancel()

		s := h.session
		s.mu.Lock()
		if s.handles[h.key] == h {
			delete(s.handles, h.key)
		}
		h.released = true
		h.state = Idle
		voice, src := h.voice, h.src
		s.mu.Unlock()

		if voice != nil {
			stopLogged(h.key, voice)
		}
		if src != nil {
			closeLogged(h.key, src)
		}
		s.notify(h.key, Idle)
		close(h.done)
	})
}

func stopLogged(key string, v Voice) {
	if err := v.Stop(); err != nil {
		log.Printf("preview: stopping %s: %v", key, err)
	}
}

func closeLogged(key string, src audio.Source) {
	if err := src.Close(); err != nil {
		log.Printf("preview: closing %s: %v", key, err)
	}
}
