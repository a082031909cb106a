package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/planet-stamp-roulette/internal/config"
	"github.com/iliyamo/planet-stamp-roulette/internal/database"
	"github.com/iliyamo/planet-stamp-roulette/internal/draw"
	"github.com/iliyamo/planet-stamp-roulette/internal/handler"
	"github.com/iliyamo/planet-stamp-roulette/internal/middleware"
	"github.com/iliyamo/planet-stamp-roulette/internal/notify"
	"github.com/iliyamo/planet-stamp-roulette/internal/queue"
	"github.com/iliyamo/planet-stamp-roulette/internal/repository"
	"github.com/iliyamo/planet-stamp-roulette/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(migrateCtx, db, cfg.BcryptCost); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	// Optional infrastructure: Redis for rate limiting and response
	// caching, RabbitMQ for the redemption audit trail.  The server runs
	// without either.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and response cache disabled")
	}
	go func() {
		if err := queue.StartRedemptionConsumer(); err != nil {
			log.Printf("redemption consumer stopped: %v", err)
		}
	}()

	participants := repository.NewParticipantRepo(db)
	prizes := repository.NewPrizeRepo(db)
	admins := repository.NewAdminRepo(db)
	stats := repository.NewStatsRepo(db)
	engine := draw.NewEngine(repository.NewCampaignStore(db))
	hub := notify.NewHub()

	public := handler.NewPublicHandler(prizes, participants, cfg.StampLocations)
	spin := handler.NewSpinHandler(participants, engine, hub)
	admin := handler.NewAdminHandler(cfg, admins, stats, prizes)
	observer := handler.NewObserverHandler(hub)

	e := echo.New()
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	rateMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	router.RegisterRoutes(e)
	router.RegisterPublic(e, public, spin, cacheMW, rateMW)
	router.RegisterAdmin(e, admin, observer, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, stamps=%d)", addr, cfg.Env, cfg.TotalStamps())

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
