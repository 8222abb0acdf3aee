package airdaw

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// EffectKind selects the DSP stage an effect performs and which parameter
// set it carries.
type EffectKind int

const (
	Gain EffectKind = iota
	Lowpass
	Highpass
	Delay  // declared extension point; processes as a pass-through
	Reverb // declared extension point; processes as a pass-through
	NumEffectKinds
)

// MaxEffectParams is the largest parameter count of any effect kind.
const MaxEffectParams = 3

// EffectParameter documents one parameter slot of an effect kind.
type EffectParameter struct {
	Name     string  // name used in configuration files
	Default  float32 // value given to a freshly added effect
	MinValue float32 // suggested lower bound for controls; not enforced
	MaxValue float32 // suggested upper bound for controls; not enforced
}

// EffectType documents one effect kind: its name and its ordered parameters.
// The parameter index used by the control API is the index into Params.
type EffectType struct {
	Name   string
	Params []EffectParameter
}

// EffectKinds documents all the effect kinds, indexed by EffectKind.
var EffectKinds = [NumEffectKinds]EffectType{
	Gain: {Name: "gain", Params: []EffectParameter{
		{Name: "gain", Default: 1, MinValue: 0, MaxValue: 4}}},
	Lowpass: {Name: "lowpass", Params: []EffectParameter{
		{Name: "cutoff", Default: 1000, MinValue: 0, MaxValue: 20000},
		{Name: "resonance", Default: 1, MinValue: 0, MaxValue: 10}}},
	Highpass: {Name: "highpass", Params: []EffectParameter{
		{Name: "cutoff", Default: 1000, MinValue: 0, MaxValue: 20000},
		{Name: "resonance", Default: 1, MinValue: 0, MaxValue: 10}}},
	Delay: {Name: "delay", Params: []EffectParameter{
		{Name: "time_ms", Default: 250, MinValue: 0, MaxValue: 2000},
		{Name: "feedback", Default: 0.3, MinValue: 0, MaxValue: 1},
		{Name: "mix", Default: 0.5, MinValue: 0, MaxValue: 1}}},
	Reverb: {Name: "reverb", Params: []EffectParameter{
		{Name: "room_size", Default: 0.5, MinValue: 0, MaxValue: 1},
		{Name: "damping", Default: 0.5, MinValue: 0, MaxValue: 1},
		{Name: "mix", Default: 0.3, MinValue: 0, MaxValue: 1}}},
}

// Valid reports whether k names one of the declared effect kinds.
func (k EffectKind) Valid() bool {
	return k >= 0 && k < NumEffectKinds
}

func (k EffectKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("EffectKind(%d)", int(k))
	}
	return EffectKinds[k].Name
}

// Title is the human readable label of the kind, e.g. "Lowpass".
func (k EffectKind) Title() string {
	return cases.Title(language.English).String(k.String())
}

// Params returns the parameter documentation of the kind, or nil for an
// invalid kind.
func (k EffectKind) Params() []EffectParameter {
	if !k.Valid() {
		return nil
	}
	return EffectKinds[k].Params
}

// ParamIndex finds the slot of the named parameter, case-insensitively.
func (k EffectKind) ParamIndex(name string) (int, bool) {
	for i, p := range k.Params() {
		if strings.EqualFold(p.Name, name) {
			return i, true
		}
	}
	return -1, false
}

// ParseEffectKind is the inverse of EffectKind.String.
func ParseEffectKind(s string) (EffectKind, error) {
	for k := range EffectKinds {
		if strings.EqualFold(EffectKinds[k].Name, s) {
			return EffectKind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown effect kind %q", s)
}

func (k EffectKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid effect kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *EffectKind) UnmarshalText(text []byte) error {
	v, err := ParseEffectKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
