package main

import (
	"log"
	"os"

	"github.com/powerdown/wikipost/internal/buildinfo"
	"github.com/powerdown/wikipost/internal/logging"
	"github.com/powerdown/wikipost/internal/server"
	"github.com/powerdown/wikipost/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()
	logger := logging.NewJSONLogger(os.Stderr)

	app := server.NewApp(cfg, logger)
	if err := app.Run(); err != nil {
		log.Fatal(err)
	}

}
