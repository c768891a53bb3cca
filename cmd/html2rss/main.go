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

	"github.com/umputun/html2rss/pkg/clean"
	"github.com/umputun/html2rss/pkg/config"
	"github.com/umputun/html2rss/pkg/fetcher"
	"github.com/umputun/html2rss/pkg/reader"
	"github.com/umputun/html2rss/pkg/service"
	"github.com/umputun/html2rss/pkg/store"
	"github.com/umputun/html2rss/server"
)

// Opts with all CLI options
type Opts struct {
	Config  string `short:"c" long:"config" env:"CONFIG" description:"configuration file, defaults are used if empty"`
	Listen  string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides server.listen"`
	Code    string `long:"code" env:"CODE" description:"verification code, overrides auth.code"`
	BaseURL string `long:"base-url" env:"BASE_URL" description:"public url, overrides server.base_url"`

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

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug, opts.Code)

	log.Printf("[INFO] starting html2rss version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run wires the components and serves until ctx is canceled
func run(ctx context.Context, opts Opts) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if cfg.Auth.Code != opts.Code {
		setupLog(opts.Debug, cfg.Auth.Code) // mask the code taken from the config file
	}

	fetch := fetcher.New(fetcher.Config{
		Timeout:         cfg.Fetch.Timeout,
		Attempts:        cfg.Fetch.Attempts,
		RetryDelay:      cfg.Fetch.RetryDelay,
		UserAgent:       cfg.Fetch.UserAgent,
		FallbackCharset: cfg.Fetch.FallbackCharset,
		MinConfidence:   cfg.Fetch.MinConfidence,
	})
	rd := reader.New(fetch, clean.New(), reader.Config{
		MaxPages:            cfg.Reader.MaxPages,
		TrafilaturaFallback: cfg.Reader.TrafilaturaFallback,
	})
	conv := service.NewConverter(service.Config{Code: cfg.Auth.Code, BaseURL: cfg.Server.BaseURL}, fetch, rd)

	var presets server.PresetStore
	if cfg.Store.Enabled {
		st, err := store.New(ctx, store.Config{DSN: cfg.Store.DSN})
		if err != nil {
			return fmt.Errorf("failed to open presets store: %w", err)
		}
		defer func() {
			if err := st.Close(); err != nil {
				log.Printf("[WARN] failed to close presets store: %v", err)
			}
		}()
		presets = st
		log.Printf("[INFO] presets storage enabled")
	}

	srv := server.New(cfg, conv, presets, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// loadConfig reads the config file if given and applies command line overrides
func loadConfig(opts Opts) (*config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.Code != "" {
		cfg.Auth.Code = opts.Code
	}
	if opts.BaseURL != "" {
		cfg.Server.BaseURL = opts.BaseURL
	}

	if err := cfg.CheckCode(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
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

	var secrets []string
	for _, s := range secs {
		if s != "" {
			secrets = append(secrets, s)
		}
	}
	if len(secrets) > 0 {
		logOpts = append(logOpts, lgr.Secret(secrets...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
