// artorictl is a terminal client for the artori exam-preparation platform.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/brunopinheiroeu/artori-sub001/internal/api"
	"github.com/brunopinheiroeu/artori-sub001/internal/config"
	"github.com/brunopinheiroeu/artori-sub001/internal/pkg/logger"
	"github.com/brunopinheiroeu/artori-sub001/internal/queries"
	"github.com/brunopinheiroeu/artori-sub001/internal/query"
	"github.com/brunopinheiroeu/artori-sub001/internal/session"
)

func main() {
	// A missing .env is fine; env vars and the config file still apply.
	_ = godotenv.Load()

	configPath := os.Getenv("ARTORI_CONFIG")
	if configPath == "" {
		configPath = "artori.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}
	logger.Configure(logger.Config{Level: cfg.Logging.Level, Pretty: cfg.PrettyLogging()})

	store, err := session.Open(cfg.Storage.Path)
	if err != nil {
		logger.Error().Err(err).Str("path", cfg.Storage.Path).Msg("Failed to open session store")
		os.Exit(1)
	}
	defer store.Close()

	client := api.New(cfg.API.BaseURL,
		api.WithSessionStore(store),
		api.WithUserAgent(cfg.API.UserAgent),
	)
	q := queries.New(client, query.NewCache(),
		queries.WithSessionStore(store),
		queries.WithNotifier(query.LogNotifier{Logger: logger.WithComponent("cli")}),
	)

	cli := &commandLine{queries: q, out: os.Stdout}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error().Err(err).Msg("Command failed")
		}
		os.Exit(1)
	}
}
