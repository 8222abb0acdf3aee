package oto

import (
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/airdaw/airdaw"
)

func TestStreamReadSplitsPeriods(t *testing.T) {
	const frames = 4
	calls := 0
	s := &stream{
		render: func(buf airdaw.AudioBuffer) {
			for i := range buf {
				v := float32(calls*frames + i)
				buf[i] = [2]float32{v, -v}
			}
			calls++
		},
		encode: FloatBufferToFloat32LE,
		buf:    make(airdaw.AudioBuffer, frames),
		bytes:  make([]byte, 0, frames*8),
	}
	// reads that do not line up with frames or periods
	var out []byte
	for _, n := range []int{3, 29, 8, 24} {
		p := make([]byte, n)
		got, err := s.Read(p)
		if err != nil || got != n {
			t.Fatalf("Read(%d) = %d, %v", n, got, err)
		}
		out = append(out, p...)
	}
	if calls != 2 {
		t.Errorf("rendered %d periods, want 2", calls)
	}
	for i := 0; i+8 <= len(out); i += 8 {
		l := math.Float32frombits(binary.LittleEndian.Uint32(out[i:]))
		r := math.Float32frombits(binary.LittleEndian.Uint32(out[i+4:]))
		if want := float32(i / 8); l != want || r != -want {
			t.Fatalf("frame %d = %v, %v; want %v, %v", i/8, l, r, want, -want)
		}
	}
	s.closed.Store(true)
	if _, err := s.Read(make([]byte, 8)); err != io.EOF {
		t.Errorf("Read after close: got %v, want io.EOF", err)
	}
}
