package main

import (
	"log/slog"

	"github.com/airdaw/airdaw/engine"
)

// reportStats folds the reports received between two meter log lines.
type reportStats struct {
	callbacks int
	frames    int
	maxLoad   float64
	overruns  int
	clipped   int
}

func (s *reportStats) add(r engine.Report) {
	s.callbacks++
	s.frames += r.Frames
	s.maxLoad = max(s.maxLoad, r.Load)
	if r.Overrun {
		s.overruns++
	}
	if r.Clipped[0] || r.Clipped[1] {
		s.clipped++
	}
}

func logMeters(logger *slog.Logger, e *engine.Engine, s *reportStats) {
	peak, rms := e.MasterMeter().Decibels()
	logger.Info("master",
		"peakL", peak[0], "peakR", peak[1],
		"rmsL", rms[0], "rmsR", rms[1],
		"callbacks", s.callbacks,
		"frames", s.frames,
		"maxLoad", s.maxLoad)
	if s.overruns > 0 {
		logger.Warn("audio callback overran its deadline", "count", s.overruns)
	}
	if s.clipped > 0 {
		logger.Warn("master output clipped", "periods", s.clipped)
	}
	for i := 0; i < e.NumTracks(); i++ {
		t, _ := e.Track(i)
		tp, _ := t.Meter().Decibels()
		logger.Debug("track", "index", i, "name", t.Name(), "peakL", tp[0], "peakR", tp[1])
	}
	*s = reportStats{}
}
