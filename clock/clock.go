// Package clock is a headless airdaw.AudioContext. Instead of a sound card,
// a goroutine calls the renderer once per period on a ticker, which makes
// the engine usable (and testable) on machines without audio output.
package clock

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/airdaw/airdaw"
)

type (
	// Context opens clock streams. Sink, if not nil, receives every
	// rendered period on the clock goroutine; it must not retain the buffer.
	Context struct {
		Sink func(buf airdaw.AudioBuffer)
		// Period overrides the tick interval; 0 means real time
		// (PeriodFrames / SampleRate).
		Period time.Duration
	}

	// Stream renders on its own goroutine. close has a capacity of 1 so
	// asking for closure never blocks; finished is closed by the goroutine
	// once it has returned.
	Stream struct {
		render   airdaw.AudioRenderer
		sink     func(buf airdaw.AudioBuffer)
		buf      airdaw.AudioBuffer
		period   time.Duration
		close    chan struct{}
		finished chan struct{}
		started  bool
		mu       sync.Mutex
	}
)

var ErrAlreadyStarted = errors.New("clock: stream already started")

func NewContext() *Context {
	return &Context{}
}

func (c *Context) Open(format airdaw.AudioFormat, render airdaw.AudioRenderer) (airdaw.AudioStream, error) {
	if format.PeriodFrames <= 0 || format.SampleRate <= 0 {
		return nil, fmt.Errorf("clock: invalid format %+v", format)
	}
	period := c.Period
	if period <= 0 {
		period = format.Period()
	}
	return &Stream{
		render:   render,
		sink:     c.Sink,
		buf:      make(airdaw.AudioBuffer, format.PeriodFrames),
		period:   period,
		close:    make(chan struct{}, 1),
		finished: make(chan struct{}),
	}, nil
}

// Start launches the clock goroutine.
func (s *Stream) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true
	go s.run()
	return nil
}

// Close stops the clock goroutine and waits for the period being rendered,
// if any, to finish.
func (s *Stream) Close() error {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if !started {
		return nil
	}
	select {
	case s.close <- struct{}{}:
	default: // someone already asked
	}
	<-s.finished
	return nil
}

func (s *Stream) run() {
	defer close(s.finished)
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()
	for {
		select {
		case <-s.close:
			return
		case <-ticker.C:
			s.render(s.buf)
			if s.sink != nil {
				s.sink(s.buf)
			}
		}
	}
}
