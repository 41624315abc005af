// Command cli is an interactive itemkeeper client talking gRPC to the server.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/itemkeeper/internal/client/cli"
	"github.com/dmitrijs2005/itemkeeper/internal/client/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(config.LoadConfig())
	if err != nil {
		stop()
		log.Fatalf("itemkeeper cli: %v", err)
	}

	app.Run(ctx)
}
