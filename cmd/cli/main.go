package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophmovies/internal/buildinfo"
	"github.com/dmitrijs2005/gophmovies/internal/client/cli"
	"github.com/dmitrijs2005/gophmovies/internal/client/config"
	"github.com/dmitrijs2005/gophmovies/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(2)
	}

	log, closer, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if closer != nil {
		defer closer.Close()
	}

	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to start", "error", err)
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return
	}

	app.Run(ctx)
}

func newLogger(cfg *config.Config) (logging.Logger, io.Closer, error) {
	if cfg.LogFile == "" {
		return logging.New(os.Stderr, cfg.LogLevel), nil, nil
	}
	return logging.NewFile(cfg.LogFile, cfg.LogLevel)
}
