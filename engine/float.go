package engine

import (
	"math"
	"sync/atomic"
)

// atomicFloat32 is a float32 that can be written by the control goroutine
// and read by the audio goroutine without tearing.
type atomicFloat32 struct {
	bits atomic.Uint32
}

func (f *atomicFloat32) Load() float32 {
	return math.Float32frombits(f.bits.Load())
}

func (f *atomicFloat32) Store(v float32) {
	f.bits.Store(math.Float32bits(v))
}
