package engine

import (
	"time"

	"github.com/airdaw/airdaw"
	"github.com/viterin/vek/vek32"
)

// Process is the mix callback. It fills every frame of buf with the mix of
// all audible tracks and refreshes the track and master meters. It is called
// from the audio goroutine and never blocks or allocates, so it is safe to
// call while the control API is being used.
//
// When the transport is stopped, buf is filled with silence and all meters
// are zeroed. Buffers longer than one period are rendered in period-sized
// chunks; the meters then describe the whole buffer.
func (e *Engine) Process(buf airdaw.AudioBuffer) {
	start := time.Now()
	if !e.playing.Load() {
		clear(buf)
		e.silenceMeters()
		return
	}

	tracks := e.tracks[:e.count.Load()]
	anySolo := false
	for i := range tracks {
		if tracks[i].solo.Load() {
			anySolo = true
			break
		}
	}
	var (
		chains   [airdaw.MaxTracks]*chain
		trackAcc [airdaw.MaxTracks]levelAccumulator
		master   levelAccumulator
	)
	for i := range tracks {
		if tracks[i].audible(anySolo) {
			chains[i] = tracks[i].chain.Load()
		}
	}
	masterVolume := e.masterVolume.Load()

	for len(buf) > 0 {
		frames := buf[:min(len(buf), airdaw.PeriodFrames)]
		buf = buf[len(frames):]
		n := len(frames)
		mixL, mixR := e.mixL[:n], e.mixR[:n]
		clear(mixL)
		clear(mixR)
		for i := range tracks {
			if chains[i] == nil {
				continue
			}
			left, right := e.left[:n], e.right[:n]
			tracks[i].render(left, right)
			chains[i].process(left, right)
			vek32.Add_Inplace(mixL, left)
			vek32.Add_Inplace(mixR, right)
			trackAcc[i].add(left, right)
		}
		vek32.MulNumber_Inplace(mixL, masterVolume)
		vek32.MulNumber_Inplace(mixR, masterVolume)
		master.add(mixL, mixR)
		for j := range frames {
			frames[j] = [2]float32{mixL[j], mixR[j]}
		}
	}

	for i := range tracks {
		if chains[i] == nil {
			tracks[i].meter.reset()
			continue
		}
		tracks[i].meter.store(trackAcc[i].levels())
	}
	levels := master.levels()
	e.masterMeter.store(levels)
	TrySend(e.broker.ToControl, newReport(master.frames, time.Since(start), levels))
}

func (e *Engine) silenceMeters() {
	e.masterMeter.reset()
	tracks := e.tracks[:e.count.Load()]
	for i := range tracks {
		tracks[i].meter.reset()
	}
}
