package main

import (
	"context"

	"github.com/feas-project/feas-server/internal/client/cli"
	"github.com/feas-project/feas-server/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	app.Root(ctx)
}
