package airdaw_test

import (
	"testing"

	"github.com/airdaw/airdaw"
)

func TestEffectKindNames(t *testing.T) {
	tests := []struct {
		kind  airdaw.EffectKind
		name  string
		title string
	}{
		{airdaw.Gain, "gain", "Gain"},
		{airdaw.Lowpass, "lowpass", "Lowpass"},
		{airdaw.Highpass, "highpass", "Highpass"},
		{airdaw.Delay, "delay", "Delay"},
		{airdaw.Reverb, "reverb", "Reverb"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
		if got := tt.kind.Title(); got != tt.title {
			t.Errorf("Title() = %q, want %q", got, tt.title)
		}
		k, err := airdaw.ParseEffectKind(tt.name)
		if err != nil {
			t.Fatalf("ParseEffectKind(%q) failed: %v", tt.name, err)
		}
		if k != tt.kind {
			t.Errorf("ParseEffectKind(%q) = %v, want %v", tt.name, k, tt.kind)
		}
	}
	if airdaw.NumEffectKinds.Valid() {
		t.Error("NumEffectKinds should not be a valid kind")
	}
	if _, err := airdaw.ParseEffectKind("flanger"); err == nil {
		t.Error("ParseEffectKind accepted an unknown kind")
	}
}

func TestEffectKindDefaults(t *testing.T) {
	tests := []struct {
		kind     airdaw.EffectKind
		defaults []float32
	}{
		{airdaw.Gain, []float32{1}},
		{airdaw.Lowpass, []float32{1000, 1}},
		{airdaw.Highpass, []float32{1000, 1}},
		{airdaw.Delay, []float32{250, 0.3, 0.5}},
		{airdaw.Reverb, []float32{0.5, 0.5, 0.3}},
	}
	for _, tt := range tests {
		params := tt.kind.Params()
		if len(params) != len(tt.defaults) {
			t.Fatalf("%v has %d params, want %d", tt.kind, len(params), len(tt.defaults))
		}
		if len(params) > airdaw.MaxEffectParams {
			t.Errorf("%v has more than MaxEffectParams params", tt.kind)
		}
		for i, p := range params {
			if p.Default != tt.defaults[i] {
				t.Errorf("%v param %s default = %v, want %v", tt.kind, p.Name, p.Default, tt.defaults[i])
			}
		}
	}
}

func TestParamIndex(t *testing.T) {
	if i, ok := airdaw.Delay.ParamIndex("Feedback"); !ok || i != 1 {
		t.Errorf("Delay.ParamIndex(Feedback) = %d, %v; want 1, true", i, ok)
	}
	if _, ok := airdaw.Gain.ParamIndex("cutoff"); ok {
		t.Error("Gain should have no cutoff parameter")
	}
	if _, ok := airdaw.EffectKind(42).ParamIndex("gain"); ok {
		t.Error("an invalid kind should have no parameters")
	}
}
