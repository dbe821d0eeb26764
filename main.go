package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"logipack-console/internal/api"
	"logipack-console/internal/auth"
	"logipack-console/internal/config"
	"logipack-console/internal/database"
	"logipack-console/internal/session"
	"logipack-console/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var stores *store.Stores
	switch cfg.Store {
	case "sqlite":
		log.Printf("Initializing database at %s", cfg.DBPath)
		if err := database.Open(database.Config{Path: cfg.DBPath}); err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer database.Close()
		stores = database.Stores()
	default:
		stores = store.NewMemory().Stores()
	}

	codec, err := session.NewCodec(cfg.SessionSecret)
	if err != nil {
		log.Fatalf("Failed to build session codec: %v", err)
	}

	refresher := &session.Refresher{
		TokenEndpoint: cfg.TokenEndpoint(),
		ClientID:      cfg.Auth0ClientID,
		ClientSecret:  cfg.Auth0ClientSecret,
		Audience:      cfg.Auth0Audience,
	}

	flow, err := auth.NewFlow(context.Background(), cfg, codec)
	if err != nil {
		log.Fatalf("Failed to initialize identity provider: %v", err)
	}

	sessions := session.NewMiddleware(codec, refresher)
	sessions.SkipRedirect = []string{"/api/"}

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(sessions.Middleware())

	api.RegisterRoutes(e, stores, flow)

	log.Printf("Starting LogiPack console on port %s", cfg.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
