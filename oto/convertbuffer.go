package oto

import (
	"encoding/binary"
	"math"

	"github.com/airdaw/airdaw"
)

// FloatBufferToFloat32LE encodes buf as interleaved little-endian float32
// samples, appending to dst[:0]. If dst has enough capacity, nothing is
// allocated.
func FloatBufferToFloat32LE(buf airdaw.AudioBuffer, dst []byte) []byte {
	dst = dst[:0]
	for _, frame := range buf {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(frame[0]))
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(frame[1]))
	}
	return dst
}

// FloatBufferTo16BitLE converts buf to interleaved little-endian int16
// samples, clipping to [-1, 1], appending to dst[:0]. If dst has enough
// capacity, nothing is allocated.
func FloatBufferTo16BitLE(buf airdaw.AudioBuffer, dst []byte) []byte {
	dst = dst[:0]
	for _, frame := range buf {
		for _, v := range frame {
			dst = binary.LittleEndian.AppendUint16(dst, uint16(floatToInt16(v)))
		}
	}
	return dst
}

func floatToInt16(v float32) int16 {
	switch {
	case v < -1:
		return -math.MaxInt16
	case v > 1:
		return math.MaxInt16
	case v != v: // NaN
		return 0
	}
	return int16(v * math.MaxInt16)
}
