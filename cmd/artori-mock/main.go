// artori-mock serves the in-memory artori backend for local development.
package main

import (
	"flag"
	"os"

	"github.com/brunopinheiroeu/artori-sub001/internal/artoritest"
	"github.com/brunopinheiroeu/artori-sub001/internal/pkg/logger"
)

func main() {
	addr := flag.String("addr", ":8000", "listen address")
	flag.Parse()

	srv := artoritest.New()
	logger.Info().Str("addr", *addr).Msg("Serving mock artori backend")
	if err := srv.Engine.Run(*addr); err != nil {
		logger.Error().Err(err).Msg("Mock backend stopped")
		os.Exit(1)
	}
}
