package airdaw_test

import (
	"strings"
	"testing"
	"time"

	"github.com/airdaw/airdaw"
)

func TestLoadConfigEmpty(t *testing.T) {
	cfg, err := airdaw.LoadConfig(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	def := airdaw.DefaultConfig()
	if cfg.MasterVolume != def.MasterVolume || cfg.Backend != def.Backend {
		t.Errorf("empty document should give the defaults, got %+v", cfg)
	}
	if len(cfg.Tracks) != 3 {
		t.Fatalf("got %d tracks, want the 3 demo tracks", len(cfg.Tracks))
	}
	want := []struct {
		name string
		freq float32
		kind airdaw.EffectKind
	}{
		{"Bass", 110, airdaw.Lowpass},
		{"Lead", 440, airdaw.Highpass},
		{"Pad", 220, airdaw.Gain},
	}
	for i, w := range want {
		tr := cfg.Tracks[i]
		if tr.Name != w.name || tr.Frequency != w.freq || len(tr.Effects) != 1 || tr.Effects[0].Kind != w.kind {
			t.Errorf("track %d = %+v, want %s %v Hz with %v", i, tr, w.name, w.freq, w.kind)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	doc := `
master_volume: 0.5
backend: clock
latency: 20ms
log_level: debug
tracks:
  - name: Kick
    frequency: 55
    volume: 1
    pan: -0.5
    playing: true
    effects:
      - kind: lowpass
        params: {cutoff: 400}
      - kind: delay
        disabled: true
  - frequency: 330
`
	cfg, err := airdaw.LoadConfig(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.MasterVolume != 0.5 {
		t.Errorf("master volume = %v, want 0.5", cfg.MasterVolume)
	}
	if cfg.Backend != airdaw.BackendClock {
		t.Errorf("backend = %q, want clock", cfg.Backend)
	}
	if cfg.Latency != 20*time.Millisecond {
		t.Errorf("latency = %v, want 20ms", cfg.Latency)
	}
	if cfg.TrackNameTemplate != airdaw.DefaultTrackNameTemplate {
		t.Errorf("track name template should keep its default, got %q", cfg.TrackNameTemplate)
	}
	if len(cfg.Tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(cfg.Tracks))
	}
	kick := cfg.Tracks[0]
	if kick.Volume == nil || *kick.Volume != 1 {
		t.Errorf("kick volume = %v, want 1", kick.Volume)
	}
	if kick.Pan != -0.5 || !kick.Playing {
		t.Errorf("kick = %+v", kick)
	}
	if len(kick.Effects) != 2 || kick.Effects[0].Params["cutoff"] != 400 || !kick.Effects[1].Disabled {
		t.Errorf("kick effects = %+v", kick.Effects)
	}
	if cfg.Tracks[1].Volume != nil {
		t.Error("volume not given in the document should stay nil")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown field", "master_gain: 1\n"},
		{"unknown backend", "backend: alsa\n"},
		{"unknown effect kind", "tracks: [{name: a, effects: [{kind: flanger}]}]\n"},
		{"unknown param", "tracks: [{name: a, effects: [{kind: gain, params: {cutoff: 1}}]}]\n"},
		{"too many tracks", "tracks: [" + repeatList("{name: a}", airdaw.MaxTracks+1) + "]\n"},
		{"too many effects", "tracks: [{name: a, effects: [" + repeatList("{kind: gain}", airdaw.MaxEffectsPerTrack+1) + "]}]\n"},
		{"bad duration", "latency: soon\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := airdaw.LoadConfig(strings.NewReader(tt.doc)); err == nil {
				t.Error("LoadConfig should have failed")
			}
		})
	}
}

func TestEmptyTrackListIsKept(t *testing.T) {
	cfg, err := airdaw.LoadConfig(strings.NewReader("tracks: []\n"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if len(cfg.Tracks) != 0 {
		t.Errorf("an explicit empty list should replace the demo rack, got %d tracks", len(cfg.Tracks))
	}
}

func repeatList(item string, n int) string {
	items := make([]string, n)
	for i := range items {
		items[i] = item
	}
	return strings.Join(items, ", ")
}
