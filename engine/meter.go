package engine

import (
	"math"

	"github.com/airdaw/airdaw"
	"github.com/viterin/vek/vek32"
)

type (
	// Levels are the peak and RMS levels of one period, per channel
	// (0 = left, 1 = right), as linear amplitudes where 1 is full scale.
	Levels struct {
		Peak [airdaw.NumChannels]float32
		RMS  [airdaw.NumChannels]float32
	}

	// Decibel is a level relative to full scale.
	Decibel float32

	// Meter publishes Levels from the audio goroutine to readers on other
	// goroutines. Each field is independently atomic, so a reader may see
	// the peak of one period next to the RMS of the next; for display that
	// is fine.
	Meter struct {
		peak [airdaw.NumChannels]atomicFloat32
		rms  [airdaw.NumChannels]atomicFloat32
	}

	// levelAccumulator gathers peak and sum of squares over the frames of
	// one Process call. It lives on the audio goroutine's stack.
	levelAccumulator struct {
		peak       [airdaw.NumChannels]float32
		sumSquares [airdaw.NumChannels]float64
		frames     int
	}
)

// MinDecibel is reported for silence instead of negative infinity.
const MinDecibel Decibel = -96

func (m *Meter) Levels() Levels {
	var l Levels
	for c := range l.Peak {
		l.Peak[c] = m.peak[c].Load()
		l.RMS[c] = m.rms[c].Load()
	}
	return l
}

func (m *Meter) store(l Levels) {
	for c := range l.Peak {
		m.peak[c].Store(l.Peak[c])
		m.rms[c].Store(l.RMS[c])
	}
}

func (m *Meter) reset() {
	m.store(Levels{})
}

// Decibels converts the levels for display, clamping silence to MinDecibel.
func (l Levels) Decibels() (peak, rms [airdaw.NumChannels]Decibel) {
	for c := range l.Peak {
		peak[c] = AmplitudeToDecibel(l.Peak[c])
		rms[c] = AmplitudeToDecibel(l.RMS[c])
	}
	return
}

// AmplitudeToDecibel converts a linear amplitude to dBFS, never returning
// less than MinDecibel.
func AmplitudeToDecibel(a float32) Decibel {
	if a <= 0 || math.IsNaN(float64(a)) {
		return MinDecibel
	}
	db := Decibel(20 * math.Log10(float64(a)))
	if db < MinDecibel {
		return MinDecibel
	}
	return db
}

// add accumulates one chunk of left and right samples, which must have the
// same length.
func (a *levelAccumulator) add(left, right []float32) {
	if len(left) == 0 {
		return
	}
	a.addChannel(0, left)
	a.addChannel(1, right)
	a.frames += len(left)
}

func (a *levelAccumulator) addChannel(c int, buf []float32) {
	if p := peak(buf); p > a.peak[c] {
		a.peak[c] = p
	}
	a.sumSquares[c] += float64(vek32.Dot(buf, buf))
}

func (a *levelAccumulator) levels() Levels {
	var l Levels
	if a.frames == 0 {
		return l
	}
	l.Peak = a.peak
	for c := range l.RMS {
		l.RMS[c] = float32(math.Sqrt(a.sumSquares[c] / float64(a.frames)))
	}
	return l
}

// peak is the largest absolute sample value in a non-empty buffer.
func peak(buf []float32) float32 {
	return max(vek32.Max(buf), -vek32.Min(buf))
}
