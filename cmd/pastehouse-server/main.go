// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/klauspost/compress/gzhttp"
	"github.com/spf13/pflag"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/pastehouse/pastehouse/lib/clock"
	"github.com/pastehouse/pastehouse/lib/config"
	"github.com/pastehouse/pastehouse/lib/highlight"
	"github.com/pastehouse/pastehouse/lib/pastestore"
	"github.com/pastehouse/pastehouse/lib/process"
	"github.com/pastehouse/pastehouse/lib/service"
	"github.com/pastehouse/pastehouse/lib/version"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		process.Fatal(err)
	}
}

// options holds the command-line flags. Flags win over the config
// file.
type options struct {
	configPath  string
	uploadDir   string
	address     string
	showVersion bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	flagSet := pflag.NewFlagSet("pastehouse-server", pflag.ContinueOnError)
	flagSet.StringVar(&opts.configPath, "config", "", "path to pastehouse.yaml (default: $"+config.EnvironmentVariable+", else built-in defaults)")
	flagSet.StringVar(&opts.uploadDir, "upload-dir", "", "directory pastes are read from (overrides paths.upload_dir)")
	flagSet.StringVar(&opts.address, "address", "", "TCP listen address (overrides server.address)")
	flagSet.BoolVar(&opts.showVersion, "version", false, "print version information and exit")

	if err := flagSet.Parse(args); err != nil {
		return options{}, err
	}
	if flagSet.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", flagSet.Args())
	}
	return opts, nil
}

// loadConfig resolves the configuration: --config, then
// $PASTEHOUSE_CONFIG, then defaults. Flag overrides are applied last
// and the result is validated.
func loadConfig(opts options) (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case opts.configPath != "":
		cfg, err = config.LoadFile(opts.configPath)
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
		cfg.Finalize()
	}
	if err != nil {
		return nil, err
	}

	if opts.uploadDir != "" {
		cfg.Paths.UploadDir = filepath.Clean(opts.uploadDir)
	}
	if opts.address != "" {
		cfg.Server.Address = opts.address
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// wrapHandler layers tracing, optional compression and access logging
// around the router, outermost last.
func wrapHandler(router http.Handler, logger *slog.Logger, clk clock.Clock, compress bool) http.Handler {
	var handler http.Handler = otelhttp.NewHandler(router, "pastehouse.retrieve")
	if compress {
		handler = gzhttp.GzipHandler(handler)
	}
	return service.RequestLogger(handler, logger, clk)
}

func run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if opts.showVersion {
		version.Print("pastehouse-server")
		return nil
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	level, _ := cfg.LogLevel()
	logger := service.NewLogger(level)

	catalog, err := highlight.LoadCatalog()
	if err != nil {
		return fmt.Errorf("loading syntax catalog: %w", err)
	}

	if info, err := os.Stat(cfg.Paths.UploadDir); err != nil || !info.IsDir() {
		// Not fatal: every lookup answers 404 until the uploader
		// creates the directory.
		logger.Warn("upload directory is not present", "upload_dir", cfg.Paths.UploadDir)
	}

	clk := clock.Real()
	metrics := NewMetrics()
	resolver := pastestore.NewResolver(cfg.Paths.UploadDir)
	router := NewHandler(HandlerConfig{
		Resolver:      resolver,
		Catalog:       catalog,
		Metrics:       metrics,
		Clock:         clk,
		ExposeMetrics: cfg.Metrics.Enabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpServer := service.NewHTTPServer(service.HTTPServerConfig{
		Address:           cfg.Server.Address,
		Handler:           wrapHandler(router, logger, clk, cfg.CompressResponses()),
		ShutdownTimeout:   cfg.ShutdownTimeout(),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout(),
		WriteTimeout:      cfg.WriteTimeout(),
		Logger:            logger,
	})

	httpDone := make(chan error, 1)
	go func() {
		httpDone <- httpServer.Serve(ctx)
	}()

	select {
	case <-httpServer.Ready():
		logger.Info("pastehouse server running",
			"version", version.Info(),
			"address", httpServer.Addr().String(),
			"upload_dir", resolver.Root(),
			"environment", string(cfg.Environment),
			"grammars", len(catalog.Grammars()),
			"theme", catalog.Theme().Name,
		)
	case err := <-httpDone:
		return err
	}

	<-ctx.Done()
	logger.Info("shutting down")
	return <-httpDone
}
