package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"    // optional .env loading for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/edurelief/edurelief-backend/internal/config"
	"github.com/edurelief/edurelief-backend/internal/database"
	"github.com/edurelief/edurelief-backend/internal/handler"
	"github.com/edurelief/edurelief-backend/internal/queue"
	"github.com/edurelief/edurelief-backend/internal/repository"
	"github.com/edurelief/edurelief-backend/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set env vars directly

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()
	if err := database.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("schema setup failed: %v", err)
	}

	// Redis is optional; cache and rate limiting disable themselves when nil.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}

	// Background consumer that tails donation events from RabbitMQ.  It
	// runs its own reconnect loop, so a broker outage never affects the API.
	go func() {
		if err := queue.StartDonationConsumer(); err != nil {
			log.Printf("donation consumer stopped: %v", err)
		}
	}()

	users := repository.NewUserRepo(db)
	campaigns := repository.NewCampaignRepo(db)

	authHandler := handler.NewAuthHandler(cfg, users)
	ownerHandler := handler.NewOwnerHandler(cfg, campaigns)
	publicHandler := handler.NewPublicHandler(campaigns)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg, rdb)
	router.RegisterCampaigns(e, ownerHandler, publicHandler, cfg, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
