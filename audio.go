// Package airdaw holds the types shared by the AirDAW mixing engine, its audio
// backends and its configuration.
package airdaw

import "time"

const (
	SampleRate   = 48000 // fixed device sample rate in Hz
	NumChannels  = 2     // stereo; AudioBuffer frames are [left, right]
	PeriodFrames = 512   // frames rendered per device period

	MaxTracks          = 16
	MaxEffectsPerTrack = 8
)

type (
	// AudioBuffer is a buffer of stereo frames. In memory it is laid out
	// exactly like frames*2 interleaved float32 samples: L, R, L, R...
	AudioBuffer [][2]float32

	// AudioFormat describes the stream an AudioContext should open.
	AudioFormat struct {
		SampleRate   int
		Channels     int
		PeriodFrames int
	}

	// AudioRenderer is called by the audio backend, on its own thread, every
	// time it needs more audio. It must fill every frame of buf and must not
	// retain buf after returning.
	AudioRenderer func(buf AudioBuffer)

	// AudioContext binds streams to an audio output. Open acquires the
	// device; nothing is rendered until the returned stream is started.
	AudioContext interface {
		Open(format AudioFormat, render AudioRenderer) (AudioStream, error)
	}

	// AudioStream is a bound output stream. Close stops the stream
	// synchronously: after it returns, the renderer is not running and will
	// not be called again.
	AudioStream interface {
		Start() error
		Close() error
	}
)

// DefaultFormat is the only format the mixing engine renders.
var DefaultFormat = AudioFormat{SampleRate: SampleRate, Channels: NumChannels, PeriodFrames: PeriodFrames}

// Period returns the wall-clock duration of one period in this format.
func (f AudioFormat) Period() time.Duration {
	if f.SampleRate <= 0 {
		return 0
	}
	return time.Duration(f.PeriodFrames) * time.Second / time.Duration(f.SampleRate)
}
