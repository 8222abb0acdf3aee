package engine

import (
	"bytes"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/airdaw/airdaw"
)

type (
	// Engine owns the tracks, the transport, the master bus and the binding
	// to the audio device. Create it with New; the zero value is not usable.
	Engine struct {
		tracks [airdaw.MaxTracks]Track
		count  atomic.Int32 // published only after tracks[count-1] is fully written

		masterVolume atomicFloat32
		masterMeter  Meter
		playing      atomic.Bool
		initialized  atomic.Bool

		// scratch buffers of the audio goroutine
		left, right [airdaw.PeriodFrames]float32
		mixL, mixR  [airdaw.PeriodFrames]float32

		mu       sync.Mutex // serializes control goroutine writers; never taken by Process
		stream   airdaw.AudioStream
		broker   *Broker
		logger   *slog.Logger
		nameTmpl *template.Template
	}

	// Option configures an Engine in New.
	Option func(*Engine)

	// trackNameData is the data the track name template is executed with.
	trackNameData struct {
		Index     int
		Frequency float32
	}
)

const defaultMasterVolume = 0.75

// WithLogger sets the structured logger the control API reports to.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMasterVolume sets the initial master volume.
func WithMasterVolume(v float32) Option {
	return func(e *Engine) { e.masterVolume.Store(v) }
}

// WithBroker sets the broker the mix callback sends its reports to.
func WithBroker(b *Broker) Option {
	return func(e *Engine) {
		if b != nil {
			e.broker = b
		}
	}
}

// WithTrackNameTemplate sets the text/template used by AddNextTrack to name
// tracks. The template can use the sprig functions and is executed with
// .Index (zero-based slot) and .Frequency.
func WithTrackNameTemplate(tmpl *template.Template) Option {
	return func(e *Engine) {
		if tmpl != nil {
			e.nameTmpl = tmpl
		}
	}
}

// ParseTrackNameTemplate parses a track name template for
// WithTrackNameTemplate.
func ParseTrackNameTemplate(text string) (*template.Template, error) {
	tmpl, err := template.New("trackname").Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("could not parse track name template: %w", err)
	}
	return tmpl, nil
}

var defaultNameTmpl = template.Must(ParseTrackNameTemplate(airdaw.DefaultTrackNameTemplate))

func New(opts ...Option) *Engine {
	e := &Engine{
		broker:   NewBroker(),
		logger:   slog.Default(),
		nameTmpl: defaultNameTmpl,
	}
	e.masterVolume.Store(defaultMasterVolume)
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Init binds the engine to an audio output through ctx and starts the
// device. If either step fails, everything acquired so far is released, a
// *DeviceError is returned and the engine stays uninitialized. The transport
// starts stopped.
func (e *Engine) Init(ctx airdaw.AudioContext) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.initialized.Load() {
		return ErrAlreadyInitialized
	}
	e.playing.Store(false)
	stream, err := ctx.Open(airdaw.DefaultFormat, e.Process)
	if err != nil {
		e.logger.Error("failed to initialize audio device", "err", err)
		return &DeviceError{Op: "open", Err: err}
	}
	if err := stream.Start(); err != nil {
		e.logger.Error("failed to start audio device", "err", err)
		if cerr := stream.Close(); cerr != nil {
			e.logger.Error("failed to release audio device", "err", cerr)
		}
		return &DeviceError{Op: "start", Err: err}
	}
	e.stream = stream
	e.initialized.Store(true)
	e.logger.Info("audio engine started",
		"sampleRate", airdaw.SampleRate,
		"channels", airdaw.NumChannels,
		"periodFrames", airdaw.PeriodFrames)
	return nil
}

// Shutdown stops the transport, stops and releases the device and marks the
// engine uninitialized. It is a no-op on an engine that is not initialized.
// Tracks are kept.
func (e *Engine) Shutdown() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.initialized.Load() {
		return nil
	}
	e.logger.Info("shutting down audio engine")
	e.playing.Store(false)
	err := e.stream.Close()
	e.stream = nil
	e.initialized.Store(false)
	if err != nil {
		return &DeviceError{Op: "close", Err: err}
	}
	e.logger.Info("audio engine shut down")
	return nil
}

func (e *Engine) IsInitialized() bool { return e.initialized.Load() }

// AddTrack adds a track with the default mix settings (volume 0.75, centered,
// stopped, no effects) and returns its index.
func (e *Engine) AddTrack(name string, frequency float32) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.addTrack(name, frequency)
}

func (e *Engine) addTrack(name string, frequency float32) (int, error) {
	n := int(e.count.Load())
	if n >= airdaw.MaxTracks {
		e.logger.Warn("cannot add track: maximum tracks reached", "max", airdaw.MaxTracks)
		return -1, &CapacityError{What: "track", Limit: airdaw.MaxTracks}
	}
	e.tracks[n].init(e, name, frequency)
	e.count.Store(int32(n + 1))
	e.logger.Info("added track", "index", n, "name", e.tracks[n].name, "frequency", frequency)
	return n, nil
}

// AddNextTrack adds a track named by the track name template, tuned a
// semitone above the previous one starting from 220 Hz.
func (e *Engine) AddNextTrack() (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := int(e.count.Load())
	frequency := NextTrackFrequency(n)
	var name bytes.Buffer
	if err := e.nameTmpl.Execute(&name, trackNameData{Index: n, Frequency: frequency}); err != nil {
		return -1, fmt.Errorf("could not name track %d: %w", n, err)
	}
	return e.addTrack(name.String(), frequency)
}

// NextTrackFrequency is the oscillator frequency given to the track in slot
// index by AddNextTrack: 220 Hz raised by index semitones.
func NextTrackFrequency(index int) float32 {
	return float32(220 * math.Pow(2, float64(index)/12))
}

func (e *Engine) NumTracks() int { return int(e.count.Load()) }

// Track returns the track in slot index.
func (e *Engine) Track(index int) (*Track, error) {
	n := int(e.count.Load())
	if index < 0 || index >= n {
		return nil, &RangeError{What: "track", Index: index, Len: n}
	}
	return &e.tracks[index], nil
}

// SetPlaying starts or stops the transport. The change is picked up at the
// start of the next period.
func (e *Engine) SetPlaying(v bool) { e.playing.Store(v) }

func (e *Engine) TogglePlaying() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	v := !e.playing.Load()
	e.playing.Store(v)
	e.logger.Info("master play toggled", "playing", v)
	return v
}

func (e *Engine) IsPlaying() bool { return e.playing.Load() }

// SetMasterVolume sets the linear master volume. It is not clamped.
func (e *Engine) SetMasterVolume(v float32) { e.masterVolume.Store(v) }
func (e *Engine) MasterVolume() float32     { return e.masterVolume.Load() }

// MasterMeter returns the levels of the final mix of the most recent period.
func (e *Engine) MasterMeter() Levels { return e.masterMeter.Levels() }

// Reports delivers one Report per Process call while someone is reading.
func (e *Engine) Reports() <-chan Report { return e.broker.ToControl }

// Status is a one-line summary for a status bar.
func (e *Engine) Status() string {
	state := "STOPPED"
	if e.IsPlaying() {
		state = "PLAYING"
	}
	return fmt.Sprintf("Tracks: %d/%d | %s | %d Hz", e.NumTracks(), airdaw.MaxTracks, state, airdaw.SampleRate)
}
