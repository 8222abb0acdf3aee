package engine

import (
	"sync/atomic"

	"github.com/airdaw/airdaw"
	"github.com/viterin/vek/vek32"
)

type (
	// Effect is one DSP stage in a track's chain. Its kind is fixed at
	// creation; the enabled flag and the parameters may be changed at any
	// time from the control goroutine.
	Effect struct {
		kind    airdaw.EffectKind
		enabled atomic.Bool
		params  [airdaw.MaxEffectParams]atomicFloat32

		// one-pole filter history for the left and right channel. Only the
		// audio goroutine touches it, and it belongs to this instance alone.
		state [airdaw.NumChannels]float32
	}

	// chain is an immutable snapshot of a track's effects. The control
	// goroutine builds a new snapshot for every structural change and
	// publishes it with an atomic pointer swap.
	chain struct {
		effects [airdaw.MaxEffectsPerTrack]*Effect
		n       int
	}
)

func newEffect(kind airdaw.EffectKind) *Effect {
	f := &Effect{kind: kind}
	for i, p := range kind.Params() {
		f.params[i].Store(p.Default)
	}
	f.enabled.Store(true)
	return f
}

func (f *Effect) Kind() airdaw.EffectKind { return f.kind }
func (f *Effect) Enabled() bool           { return f.enabled.Load() }
func (f *Effect) SetEnabled(v bool)       { f.enabled.Store(v) }

// NumParams is the number of parameter slots of the effect's kind.
func (f *Effect) NumParams() int { return len(f.kind.Params()) }

// Param returns the value in the given slot, or 0 if the kind has no such
// slot.
func (f *Effect) Param(index int) float32 {
	if index < 0 || index >= f.NumParams() {
		return 0
	}
	return f.params[index].Load()
}

// SetParam writes the parameter slot index, as documented by
// airdaw.EffectKinds. Indices the kind does not map are silently ignored.
func (f *Effect) SetParam(index int, value float32) error {
	if index < 0 || index >= f.NumParams() {
		return nil
	}
	f.params[index].Store(value)
	return nil
}

// SetParamByName is SetParam addressed by parameter name. Unlike SetParam,
// an unknown name is reported.
func (f *Effect) SetParamByName(name string, value float32) error {
	i, ok := f.kind.ParamIndex(name)
	if !ok {
		return &RangeError{What: f.kind.String() + " parameter " + name, Index: -1, Len: f.NumParams()}
	}
	return f.SetParam(i, value)
}

// process runs the effect in place over one period. Disabled effects, and
// the delay and reverb kinds which are not implemented yet, leave the
// buffers untouched.
func (f *Effect) process(left, right []float32) {
	if !f.enabled.Load() || len(left) == 0 {
		return
	}
	switch f.kind {
	case airdaw.Gain:
		g := f.params[0].Load()
		vek32.MulNumber_Inplace(left, g)
		vek32.MulNumber_Inplace(right, g)
	case airdaw.Lowpass:
		cutoff := f.params[0].Load()
		alpha := cutoff / (cutoff + 1)
		f.state[0] = lowpass(left, alpha, f.state[0])
		f.state[1] = lowpass(right, alpha, f.state[1])
	case airdaw.Highpass:
		cutoff := f.params[0].Load()
		alpha := 1 / (cutoff + 1)
		f.state[0] = highpass(left, alpha, f.state[0])
		f.state[1] = highpass(right, alpha, f.state[1])
	case airdaw.Delay, airdaw.Reverb:
		// TODO: delay needs a per-instance circular buffer sized from time_ms,
		// reverb a comb/allpass network; until then both pass audio through.
	}
}

// lowpass is a one-pole lowpass: y = alpha*x + (1-alpha)*y[n-1]. The cutoff
// is used directly as the coefficient domain, without pre-warping.
func lowpass(buf []float32, alpha, state float32) float32 {
	for i, x := range buf {
		state = alpha*x + (1-alpha)*state
		buf[i] = state
	}
	return state
}

// highpass is the complementary one-pole: the output is the input minus a
// tracking state that follows it with coefficient alpha.
func highpass(buf []float32, alpha, state float32) float32 {
	for i, x := range buf {
		y := x - state
		state += alpha * y
		buf[i] = y
	}
	return state
}

func (c *chain) process(left, right []float32) {
	for _, f := range c.effects[:c.n] {
		f.process(left, right)
	}
}

func (c *chain) with(f *Effect) *chain {
	ret := *c
	ret.effects[ret.n] = f
	ret.n++
	return &ret
}

func (c *chain) without(index int) *chain {
	ret := &chain{}
	for i, f := range c.effects[:c.n] {
		if i != index {
			ret.effects[ret.n] = f
			ret.n++
		}
	}
	return ret
}
