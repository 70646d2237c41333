package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/scenarch/scenarch/pkg/config"
	"github.com/scenarch/scenarch/pkg/llm"
	"github.com/scenarch/scenarch/pkg/room"
	"github.com/scenarch/scenarch/pkg/speech"
	"github.com/scenarch/scenarch/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"f" long:"config" env:"CONFIG" default:"config.yml" description:"config file path"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	// pick up local .env before config expansion, missing file is fine
	_ = godotenv.Load()

	cfg, err := config.Load(opts.Config)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	setupLog(opts.Debug, cfg.LLM.APIKey, cfg.TTS.APIKey, cfg.STT.APIKey)

	log.Printf("[INFO] starting scenarch server version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	if err := run(ctx, cfg, opts.Debug); err != nil {
		log.Printf("[ERROR] server failed: %v", err)
		cancel()
		os.Exit(1)
	}
	cancel()

	log.Print("[INFO] shutdown complete")
}

// run wires the services together and blocks until ctx is canceled
func run(ctx context.Context, cfg *config.Config, debug bool) error {
	provider, err := llm.New(cfg.LLM.Provider, cfg.LLM.Endpoint, cfg.LLM.APIKey, cfg.LLM.Model)
	if err != nil {
		return fmt.Errorf("create llm provider: %w", err)
	}

	// local model loading needs the ollama blob API, other providers skip it
	var loader server.ModelLoader
	if o, ok := provider.(*llm.Ollama); ok {
		loader = o
	}

	var speechSvc server.Speech
	if cfg.TTS.Endpoint != "" || cfg.STT.Endpoint != "" {
		speechSvc = speech.New(speech.Config{
			TTSEndpoint: cfg.TTS.Endpoint,
			TTSModel:    cfg.TTS.Model,
			STTEndpoint: cfg.STT.Endpoint,
			STTModel:    cfg.STT.Model,
			APIKey:      cfg.TTS.APIKey,
		})
	}

	rooms := room.NewManager(cfg.Room.TTL)

	srv := server.New(cfg, rooms, provider, loader, speechSvc, revision, debug)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rooms.Run(gctx, cfg.Room.PruneInterval)
		return nil
	})
	g.Go(func() error {
		return srv.Run(gctx)
	})
	return g.Wait()
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = append(logOpts, lgr.Debug)
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	for _, s := range secs {
		if s != "" {
			logOpts = append(logOpts, lgr.Secret(s))
		}
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
