// Command server runs the itemkeeper REST and gRPC endpoints over one store.
package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/itemkeeper/internal/server"
	"github.com/dmitrijs2005/itemkeeper/internal/server/config"
)

func main() {
	ctx := context.Background()

	app, err := server.NewApp(ctx, config.LoadConfig())
	if err != nil {
		log.Fatalf("itemkeeper server: %v", err)
	}

	app.Run(ctx)
}
