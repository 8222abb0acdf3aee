// Package oto binds the mixing engine to the system audio output through
// github.com/ebitengine/oto/v3.
package oto

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/airdaw/airdaw"
	"github.com/ebitengine/oto/v3"
)

type (
	// Context is an airdaw.AudioContext playing through oto. oto supports
	// only one context per process, so create one Context and open and
	// close streams on it as needed.
	Context struct {
		ctx    *oto.Context
		pcm16  bool
		format airdaw.AudioFormat
	}

	// Options configure NewContext.
	Options struct {
		// Latency is the size of the device buffer. 0 uses the driver
		// default.
		Latency time.Duration
		// PCM16 sends 16-bit integer samples to the driver instead of
		// float32.
		PCM16 bool
	}

	// stream renders periods on demand when the oto player reads from it.
	stream struct {
		player  *oto.Player
		render  airdaw.AudioRenderer
		encode  func(airdaw.AudioBuffer, []byte) []byte
		buf     airdaw.AudioBuffer
		bytes   []byte
		pending []byte

		// reading is held for the duration of each Read. It is only ever
		// contended by Close, which uses it to wait for an in-flight Read.
		reading sync.Mutex
		closed  atomic.Bool
	}
)

var errFormat = errors.New("oto: only the engine's default format is supported")

// NewContext creates the oto context for the engine's fixed format and waits
// until the driver is ready.
func NewContext(opts Options) (*Context, error) {
	format := oto.FormatFloat32LE
	if opts.PCM16 {
		format = oto.FormatSignedInt16LE
	}
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   airdaw.SampleRate,
		ChannelCount: airdaw.NumChannels,
		Format:       format,
		BufferSize:   opts.Latency,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return &Context{ctx: ctx, pcm16: opts.PCM16, format: airdaw.DefaultFormat}, nil
}

// Open creates a paused oto player that pulls audio from render.
func (c *Context) Open(format airdaw.AudioFormat, render airdaw.AudioRenderer) (airdaw.AudioStream, error) {
	if format != c.format {
		return nil, fmt.Errorf("%w: got %+v", errFormat, format)
	}
	if err := c.ctx.Err(); err != nil {
		return nil, fmt.Errorf("oto context is unusable: %w", err)
	}
	bytesPerSample := 4
	encode := FloatBufferToFloat32LE
	if c.pcm16 {
		bytesPerSample = 2
		encode = FloatBufferTo16BitLE
	}
	s := &stream{
		render: render,
		encode: encode,
		buf:    make(airdaw.AudioBuffer, format.PeriodFrames),
		bytes:  make([]byte, 0, format.PeriodFrames*format.Channels*bytesPerSample),
	}
	s.player = c.ctx.NewPlayer(s)
	return s, nil
}

func (s *stream) Start() error {
	s.player.Play()
	if err := s.player.Err(); err != nil {
		return fmt.Errorf("cannot start oto player: %w", err)
	}
	return nil
}

// Close pauses the player, waits for a Read in progress to return and
// disposes of the player. Later reads report io.EOF without rendering.
func (s *stream) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	s.player.Pause()
	s.reading.Lock()
	s.reading.Unlock()
	if err := s.player.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	return nil
}

// Read implements io.Reader for the oto player. It renders whole periods and
// hands them out in whatever byte counts the player asks for; nothing is
// allocated here.
func (s *stream) Read(p []byte) (n int, err error) {
	s.reading.Lock()
	defer s.reading.Unlock()
	if s.closed.Load() {
		return 0, io.EOF
	}
	for n < len(p) {
		if len(s.pending) == 0 {
			s.render(s.buf)
			s.pending = s.encode(s.buf, s.bytes)
		}
		c := copy(p[n:], s.pending)
		s.pending = s.pending[c:]
		n += c
	}
	return n, nil
}
