package engine

import (
	"math"
	"sync/atomic"

	"github.com/airdaw/airdaw"
)

// Track is one synthesized sound source with its mix controls, its effect
// chain and its meter. Tracks are created by Engine.AddTrack and live as
// long as the engine.
type Track struct {
	engine *Engine
	name   string

	volume    atomicFloat32
	pan       atomicFloat32
	frequency atomicFloat32
	mute      atomic.Bool
	solo      atomic.Bool
	armed     atomic.Bool // reserved for record arming; not used when mixing
	playing   atomic.Bool

	phase float64 // radians in [0, 2π); audio goroutine only
	chain atomic.Pointer[chain]
	meter Meter
}

const (
	defaultTrackVolume = 0.75
	// attenuation leaves headroom so that a few full-volume tracks can be
	// summed before clipping.
	attenuation = 0.3
	maxNameLen  = 63
	twoPi       = 2 * math.Pi
)

// init writes every field of a fresh slot. It runs before the slot is
// published to the audio goroutine.
func (t *Track) init(e *Engine, name string, frequency float32) {
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}
	t.engine = e
	t.name = name
	t.volume.Store(defaultTrackVolume)
	t.pan.Store(0)
	t.frequency.Store(frequency)
	t.mute.Store(false)
	t.solo.Store(false)
	t.armed.Store(false)
	t.playing.Store(false)
	t.phase = 0
	t.chain.Store(&chain{})
	t.meter.reset()
}

func (t *Track) Name() string { return t.name }

func (t *Track) Volume() float32    { return t.volume.Load() }
func (t *Track) Pan() float32       { return t.pan.Load() }
func (t *Track) Frequency() float32 { return t.frequency.Load() }
func (t *Track) Mute() bool         { return t.mute.Load() }
func (t *Track) Solo() bool         { return t.solo.Load() }
func (t *Track) Armed() bool        { return t.armed.Load() }
func (t *Track) Playing() bool      { return t.playing.Load() }

// SetVolume sets the linear track volume. It is not clamped.
func (t *Track) SetVolume(v float32) { t.volume.Store(v) }

// SetPan sets the pan position, -1 is hard left and 1 hard right. Values
// outside [-1, 1] are clamped.
func (t *Track) SetPan(v float32) { t.pan.Store(min(max(v, -1), 1)) }

func (t *Track) SetFrequency(hz float32) { t.frequency.Store(hz) }
func (t *Track) SetMute(v bool)          { t.mute.Store(v) }
func (t *Track) SetSolo(v bool)          { t.solo.Store(v) }
func (t *Track) SetArmed(v bool)         { t.armed.Store(v) }
func (t *Track) SetPlaying(v bool)       { t.playing.Store(v) }

func (t *Track) ToggleMute() bool {
	t.engine.mu.Lock()
	defer t.engine.mu.Unlock()
	v := !t.mute.Load()
	t.mute.Store(v)
	t.engine.logger.Debug("track mute toggled", "track", t.name, "mute", v)
	return v
}

func (t *Track) ToggleSolo() bool {
	t.engine.mu.Lock()
	defer t.engine.mu.Unlock()
	v := !t.solo.Load()
	t.solo.Store(v)
	t.engine.logger.Debug("track solo toggled", "track", t.name, "solo", v)
	return v
}

func (t *Track) TogglePlaying() bool {
	t.engine.mu.Lock()
	defer t.engine.mu.Unlock()
	v := !t.playing.Load()
	t.playing.Store(v)
	t.engine.logger.Debug("track playing toggled", "track", t.name, "playing", v)
	return v
}

// Meter returns the levels of the most recent period. Tracks that were not
// mixed in that period (stopped, muted or not soloed) report zero.
func (t *Track) Meter() Levels { return t.meter.Levels() }

// NumEffects is the length of the effect chain.
func (t *Track) NumEffects() int { return t.chain.Load().n }

// Effect returns the effect at the given chain position.
func (t *Track) Effect(index int) (*Effect, error) {
	c := t.chain.Load()
	if index < 0 || index >= c.n {
		return nil, &RangeError{What: "effect", Index: index, Len: c.n}
	}
	return c.effects[index], nil
}

// Effects returns the chain in processing order.
func (t *Track) Effects() []*Effect {
	c := t.chain.Load()
	return append([]*Effect(nil), c.effects[:c.n]...)
}

// AddEffect appends a new effect of the given kind with its default
// parameters, enabled. It returns the chain position of the new effect.
func (t *Track) AddEffect(kind airdaw.EffectKind) (int, error) {
	e := t.engine
	if !kind.Valid() {
		e.logger.Warn("cannot add effect: unknown kind", "track", t.name, "kind", int(kind))
		return -1, &RangeError{What: "effect kind", Index: int(kind), Len: int(airdaw.NumEffectKinds)}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	c := t.chain.Load()
	if c.n >= airdaw.MaxEffectsPerTrack {
		e.logger.Warn("cannot add effect: maximum effects reached", "track", t.name, "max", airdaw.MaxEffectsPerTrack)
		return -1, &CapacityError{What: "effect", Limit: airdaw.MaxEffectsPerTrack}
	}
	t.chain.Store(c.with(newEffect(kind)))
	e.logger.Info("added effect", "track", t.name, "kind", kind, "index", c.n)
	return c.n, nil
}

// RemoveEffect removes the effect at index, shifting the later effects down
// by one and keeping their order. A callback already running keeps using the
// previous chain until it returns.
func (t *Track) RemoveEffect(index int) error {
	e := t.engine
	e.mu.Lock()
	defer e.mu.Unlock()
	c := t.chain.Load()
	if index < 0 || index >= c.n {
		e.logger.Warn("invalid effect index", "track", t.name, "index", index)
		return &RangeError{What: "effect", Index: index, Len: c.n}
	}
	kind := c.effects[index].kind
	t.chain.Store(c.without(index))
	e.logger.Info("removed effect", "track", t.name, "kind", kind, "index", index)
	return nil
}

// ToggleEffect flips the enabled flag of the effect at index.
func (t *Track) ToggleEffect(index int) error {
	f, err := t.Effect(index)
	if err != nil {
		t.engine.logger.Warn("invalid effect index", "track", t.name, "index", index)
		return err
	}
	t.engine.mu.Lock()
	defer t.engine.mu.Unlock()
	v := !f.enabled.Load()
	f.enabled.Store(v)
	t.engine.logger.Debug("toggled effect", "track", t.name, "index", index, "enabled", v)
	return nil
}

// SetEffectParam is Effect(index).SetParam(param, value).
func (t *Track) SetEffectParam(index, param int, value float32) error {
	f, err := t.Effect(index)
	if err != nil {
		return err
	}
	return f.SetParam(param, value)
}

// audible decides whether the track is mixed this period.
func (t *Track) audible(anySolo bool) bool {
	if t.mute.Load() || !t.playing.Load() {
		return false
	}
	return !anySolo || t.solo.Load()
}

// render synthesizes the oscillator into left and right, applying volume,
// attenuation and constant-power panning, and advances the phase.
func (t *Track) render(left, right []float32) {
	gain := t.volume.Load() * attenuation
	lg, rg := PanGains(t.pan.Load())
	step := twoPi * float64(t.frequency.Load()) / airdaw.SampleRate
	phase := t.phase
	for i := range left {
		s := float32(math.Sin(phase)) * gain
		left[i] = s * lg
		right[i] = s * rg
		phase = wrapPhase(phase + step)
	}
	t.phase = phase
}

// PanGains is the constant-power pan law: left² + right² = 1 for every pan
// in [-1, 1].
func PanGains(pan float32) (left, right float32) {
	angle := (float64(pan) + 1) * math.Pi / 4
	return float32(math.Cos(angle)), float32(math.Sin(angle))
}

func wrapPhase(p float64) float64 {
	if p >= 0 && p < twoPi {
		return p
	}
	p = math.Mod(p, twoPi)
	if p < 0 {
		p += twoPi
	}
	return p
}
