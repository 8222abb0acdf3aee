package engine

import (
	"time"

	"github.com/airdaw/airdaw"
)

type (
	// Broker carries messages from the audio goroutine to the control
	// goroutine. The audio side only ever uses TrySend, so a slow or absent
	// reader makes reports drop instead of stalling the mix callback.
	//
	// Reports are sent by value: a Report contains no pointers, so sending
	// it does not allocate.
	Broker struct {
		ToControl chan Report
	}

	// Report summarizes one Process call.
	Report struct {
		Frames  int
		Load    float64 // render time relative to the real-time duration of Frames
		Overrun bool    // Load > 1: the callback missed its deadline
		Clipped [airdaw.NumChannels]bool
	}
)

func NewBroker() *Broker {
	return &Broker{
		ToControl: make(chan Report, 1024),
	}
}

// TrySend is a helper function to send a value to a channel if it is not full.
// It is guaranteed to be non-blocking. Return true if the value was sent, false
// otherwise.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}

// TimeoutReceive is a helper function to block until a value is received from a
// channel, or timing out after t. ok will be false if the timeout occurred or
// if the channel is closed.
func TimeoutReceive[T any](c <-chan T, t time.Duration) (v T, ok bool) {
	select {
	case v, ok = <-c:
		return v, ok
	case <-time.After(t):
		return v, false
	}
}

func newReport(frames int, elapsed time.Duration, master Levels) Report {
	r := Report{Frames: frames}
	if frames > 0 {
		budget := time.Duration(frames) * time.Second / airdaw.SampleRate
		r.Load = float64(elapsed) / float64(budget)
		r.Overrun = r.Load > 1
	}
	for c, p := range master.Peak {
		r.Clipped[c] = p > 1
	}
	return r
}
