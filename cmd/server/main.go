package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/stagebook/booking-directory/internal/config"
	"github.com/stagebook/booking-directory/internal/database"
	"github.com/stagebook/booking-directory/internal/handler"
	"github.com/stagebook/booking-directory/internal/middleware"
	"github.com/stagebook/booking-directory/internal/monitoring"
	"github.com/stagebook/booking-directory/internal/queue"
	"github.com/stagebook/booking-directory/internal/repository"
	"github.com/stagebook/booking-directory/internal/router"
	"github.com/stagebook/booking-directory/internal/view"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	venues := repository.NewVenueRepo(db)
	artists := repository.NewArtistRepo(db)
	shows := repository.NewShowRepo(db)

	renderer, err := view.New()
	if err != nil {
		log.Fatalf("parse templates: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.HTTPErrorHandler = handler.HTTPErrorHandler
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(monitoring.Middleware())

	// Redis is optional: a nil client turns the limiter into a pass-through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterPages(e,
		&handler.VenueHandler{Venues: venues},
		&handler.ArtistHandler{Artists: artists},
		&handler.ShowHandler{Shows: shows, Venues: venues, Artists: artists},
	)

	// Background consumer appends show.listed events to logs/shows.log.
	go func() {
		if err := queue.StartShowConsumer(); err != nil {
			log.Printf("show consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
