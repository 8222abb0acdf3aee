package engine

import (
	"fmt"

	"github.com/airdaw/airdaw"
)

// Configure applies the engine-wide settings of cfg: the master volume, the
// track name template and the startup tracks. It is meant to be called on a
// fresh engine; tracks are appended to those already present.
func (e *Engine) Configure(cfg airdaw.Config) error {
	e.SetMasterVolume(cfg.MasterVolume)
	if cfg.TrackNameTemplate != "" {
		tmpl, err := ParseTrackNameTemplate(cfg.TrackNameTemplate)
		if err != nil {
			return err
		}
		e.mu.Lock()
		e.nameTmpl = tmpl
		e.mu.Unlock()
	}
	for i, tc := range cfg.Tracks {
		if err := e.addConfiguredTrack(tc); err != nil {
			return fmt.Errorf("track %d: %w", i, err)
		}
	}
	return nil
}

func (e *Engine) addConfiguredTrack(tc airdaw.TrackConfig) error {
	var (
		index int
		err   error
	)
	if tc.Name == "" {
		index, err = e.AddNextTrack()
	} else {
		index, err = e.AddTrack(tc.Name, tc.Frequency)
	}
	if err != nil {
		return err
	}
	t := &e.tracks[index]
	if tc.Frequency != 0 {
		t.SetFrequency(tc.Frequency)
	}
	if tc.Volume != nil {
		t.SetVolume(*tc.Volume)
	}
	t.SetPan(tc.Pan)
	t.SetMute(tc.Mute)
	t.SetSolo(tc.Solo)
	t.SetPlaying(tc.Playing)
	for _, ec := range tc.Effects {
		j, err := t.AddEffect(ec.Kind)
		if err != nil {
			return err
		}
		f, _ := t.Effect(j)
		for name, v := range ec.Params {
			if err := f.SetParamByName(name, v); err != nil {
				return err
			}
		}
		f.SetEnabled(!ec.Disabled)
	}
	return nil
}
