package main

import (
	"context"
	"os"

	"github.com/powerdown/wikipost/internal/buildinfo"
	"github.com/powerdown/wikipost/internal/client/cli"
	"github.com/powerdown/wikipost/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	app.Run(ctx)

}
