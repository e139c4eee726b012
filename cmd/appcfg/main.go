package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/appcfg/internal/app"
	"github.com/MKhiriev/appcfg/internal/config"
	"github.com/MKhiriev/appcfg/internal/logger"
	"github.com/MKhiriev/appcfg/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return app.ExitOK
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "appcfg: %v\n", err)
		return app.ExitUsage
	}

	log := logger.NewLogger("appcfg", cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.NewApp(cfg, log,
		app.WithBuildInfo(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)),
	)
	return a.Run(ctx)
}
