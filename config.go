package airdaw

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

type (
	// Config is the startup configuration of the engine and the player
	// command. It is only ever read; engine state is never written back.
	Config struct {
		MasterVolume      float32       `yaml:"master_volume"`
		Backend           string        `yaml:"backend"`             // "oto" or "clock"
		Latency           time.Duration `yaml:"latency,omitempty"`   // device buffer size; 0 = driver default
		LogLevel          string        `yaml:"log_level,omitempty"` // debug, info, warn, error
		TrackNameTemplate string        `yaml:"track_name_template,omitempty"`
		Tracks            []TrackConfig `yaml:"tracks,omitempty"`
	}

	// TrackConfig describes a track added at startup.
	TrackConfig struct {
		Name      string         `yaml:"name"`
		Frequency float32        `yaml:"frequency"`
		Volume    *float32       `yaml:"volume,omitempty"` // nil keeps the engine default
		Pan       float32        `yaml:"pan,omitempty"`
		Mute      bool           `yaml:"mute,omitempty"`
		Solo      bool           `yaml:"solo,omitempty"`
		Playing   bool           `yaml:"playing,omitempty"`
		Effects   []EffectConfig `yaml:"effects,omitempty"`
	}

	// EffectConfig describes an effect added to a startup track. Parameters
	// are given by name; missing ones keep the kind's defaults.
	EffectConfig struct {
		Kind     EffectKind         `yaml:"kind"`
		Disabled bool               `yaml:"disabled,omitempty"`
		Params   map[string]float32 `yaml:"params,omitempty,flow"`
	}
)

const (
	BackendOto   = "oto"
	BackendClock = "clock"
)

// DefaultTrackNameTemplate names tracks added without an explicit name.
// .Index is the zero-based slot the track will occupy.
const DefaultTrackNameTemplate = "Track {{ add .Index 1 }}"

// DefaultConfig returns the demo rack: a bass, a lead and a pad, each with
// one effect.
func DefaultConfig() Config {
	return Config{
		MasterVolume:      0.75,
		Backend:           BackendOto,
		LogLevel:          "info",
		TrackNameTemplate: DefaultTrackNameTemplate,
		Tracks: []TrackConfig{
			{Name: "Bass", Frequency: 110, Effects: []EffectConfig{{Kind: Lowpass}}},
			{Name: "Lead", Frequency: 440, Effects: []EffectConfig{{Kind: Highpass}}},
			{Name: "Pad", Frequency: 220, Effects: []EffectConfig{{Kind: Gain}}},
		},
	}
}

// LoadConfig reads a YAML configuration on top of DefaultConfig. Fields not
// present in the document keep their default values; a tracks list in the
// document replaces the demo rack.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	doc := cfg
	doc.Tracks = nil
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("could not parse config: %w", err)
	}
	if doc.Tracks == nil {
		doc.Tracks = cfg.Tracks
	}
	if err := doc.Validate(); err != nil {
		return Config{}, err
	}
	return doc, nil
}

// Validate checks the limits the engine would otherwise reject at runtime.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendOto, BackendClock:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if len(c.Tracks) > MaxTracks {
		return fmt.Errorf("%d tracks configured, at most %d allowed", len(c.Tracks), MaxTracks)
	}
	for i, t := range c.Tracks {
		if len(t.Effects) > MaxEffectsPerTrack {
			return fmt.Errorf("track %d (%s): %d effects configured, at most %d allowed", i, t.Name, len(t.Effects), MaxEffectsPerTrack)
		}
		for _, e := range t.Effects {
			for name := range e.Params {
				if _, ok := e.Kind.ParamIndex(name); !ok {
					return fmt.Errorf("track %d (%s): effect %s has no parameter %q", i, t.Name, e.Kind, name)
				}
			}
		}
	}
	return nil
}
