package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/airdaw/airdaw"
	"github.com/airdaw/airdaw/clock"
	"github.com/airdaw/airdaw/engine"
	"github.com/airdaw/airdaw/oto"
	"github.com/airdaw/airdaw/version"
)

func main() {
	configFile := flag.String("config", "", "YAML file with the startup configuration. By default, the built-in demo rack is used.")
	backend := flag.String("backend", "", "Audio backend: oto (sound card) or clock (headless). Overrides the config.")
	duration := flag.Duration("duration", 0, "Stop after this long. 0 plays until interrupted.")
	latency := flag.Duration("latency", 0, "Device buffer size for the oto backend. Overrides the config.")
	pcm16 := flag.Bool("pcm16", false, "Send 16-bit signed PCM to the device instead of float32.")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn or error. Overrides the config.")
	meterInterval := flag.Duration("meters", time.Second, "How often to log the master meter and the callback load.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *latency != 0 {
		cfg.Latency = *latency
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		log.Fatalf("invalid log level: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	var audioContext airdaw.AudioContext
	switch cfg.Backend {
	case airdaw.BackendClock:
		audioContext = clock.NewContext()
	default:
		audioContext, err = oto.NewContext(oto.Options{Latency: cfg.Latency, PCM16: *pcm16})
		if err != nil {
			log.Fatalf("could not acquire oto AudioContext: %v", err)
		}
	}

	e := engine.New(engine.WithLogger(logger))
	if err := e.Configure(cfg); err != nil {
		log.Fatalf("could not configure engine: %v", err)
	}
	if err := e.Init(audioContext); err != nil {
		log.Fatal(err)
	}
	e.SetPlaying(true)
	logger.Info(e.Status())

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	var timeout <-chan time.Time
	if *duration > 0 {
		timeout = time.After(*duration)
	}
	ticker := time.NewTicker(*meterInterval)
	defer ticker.Stop()
	var stats reportStats
loop:
	for {
		select {
		case r := <-e.Reports():
			stats.add(r)
		case <-ticker.C:
			logMeters(logger, e, &stats)
		case <-stop:
			break loop
		case <-timeout:
			break loop
		}
	}
	if err := e.Shutdown(); err != nil {
		logger.Error("shutdown failed", "err", err)
		os.Exit(1)
	}
}

func loadConfig(filename string) (airdaw.Config, error) {
	if filename == "" {
		return airdaw.DefaultConfig(), nil
	}
	f, err := os.Open(filename)
	if err != nil {
		return airdaw.Config{}, fmt.Errorf("could not read config: %w", err)
	}
	defer f.Close()
	cfg, err := airdaw.LoadConfig(f)
	if err != nil {
		return airdaw.Config{}, fmt.Errorf("%v: %w", filename, err)
	}
	return cfg, nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "AirDAW command line player: mixes the configured tracks to the audio device.\nUsage: %s [flags]\n", os.Args[0])
	flag.PrintDefaults()
}
