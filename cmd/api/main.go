package main

import (
	"flag"
	"log"

	"github.com/blogserver-io/blogserver/internal/api"
	"github.com/blogserver-io/blogserver/internal/config"
	"github.com/blogserver-io/blogserver/internal/database"
)

const version = "0.1.0"

func initializeAPI(configPath string) (*api.Api, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}

	return api.NewApi(*cfg, store)
}

func main() {
	configPath := flag.String("config", "app.yml", "Path to configuration file")
	flag.Parse()

	log.Printf("Starting blogserver API v%s with config: %s", version, *configPath)

	api, err := initializeAPI(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	api.Serve()
}
