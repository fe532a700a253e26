package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/billed/internal/buildinfo"
	"github.com/dmitrijs2005/billed/internal/client/cli"
	"github.com/dmitrijs2005/billed/internal/client/config"
	"github.com/dmitrijs2005/billed/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.NewConsoleLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	ctx := context.Background()
	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
