package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	moderatorcmd "github.com/bicheichane/millers-hollow/internal/cmd/moderator"
	"github.com/bicheichane/millers-hollow/internal/platform/config"
)

func main() {
	cfg, err := moderatorcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := moderatorcmd.Run(ctx, cfg); err != nil {
		config.Exitf("failed to serve: %v", err)
	}
}
