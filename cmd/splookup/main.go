// Command splookup searches SharePoint for entities.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/sharepoint-lookup/internal/adapters/driving/cli"
)

// Set at build time via -ldflags "-X main.version=... -X main.commit=... -X main.date=...".
var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBuildInfo(commit, date)
	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
