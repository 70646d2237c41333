package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/scenarch/scenarch/pkg/client"
	"github.com/scenarch/scenarch/pkg/prefs"
	"github.com/scenarch/scenarch/pkg/repository"
	"github.com/scenarch/scenarch/pkg/session"
)

// Opts with all CLI options
type Opts struct {
	Server string `short:"s" long:"server" env:"SCENARCH_SERVER" default:"http://localhost:8080" description:"scenarch server URL"`
	DB     string `long:"db" env:"SCENARCH_DB" default:"scenecli.db" description:"local preference database path"`
	Name   string `short:"n" long:"name" env:"SCENARCH_NAME" description:"participant name used in prompts"`

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

	_ = godotenv.Load()
	setupLog(opts.Debug)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	if err := run(ctx, opts); err != nil {
		log.Printf("[ERROR] %v", err)
		cancel()
		os.Exit(1)
	}
	cancel()
}

func run(ctx context.Context, opts Opts) error {
	repos, err := repository.NewRepositories(ctx, repository.Config{DSN: "file:" + opts.DB + "?cache=shared&mode=rwc&_txlock=immediate"})
	if err != nil {
		return fmt.Errorf("open local database: %w", err)
	}
	defer repos.Close() //nolint:errcheck // shutdown path

	store := prefs.NewStore(repos.Setting)
	if err := store.Load(ctx); err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}

	api := client.New(opts.Server, &http.Client{Timeout: 5 * time.Minute})
	coord := session.NewCoordinator(store, api, session.Config{})

	app := &App{
		prefs: store,
		coord: coord,
		api:   api,
		repos: repos,
		name:  opts.Name,
		out:   os.Stdout,
	}
	return app.Run(ctx, os.Stdin)
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Out(io.Discard), lgr.Err(io.Discard)}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
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
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
