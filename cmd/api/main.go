package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fitcoach/dietplan-backend/config"
	"github.com/fitcoach/dietplan-backend/internal/api"
	"github.com/fitcoach/dietplan-backend/internal/database"
	"github.com/fitcoach/dietplan-backend/internal/middleware"
	"github.com/fitcoach/dietplan-backend/internal/router"
	"github.com/fitcoach/dietplan-backend/internal/server"
	"github.com/fitcoach/dietplan-backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	var writeLimiter *middleware.RateLimiter
	if redisClient != nil {
		writeLimiter = middleware.NewPlanWriteRateLimiter(redisClient)
	}

	planService := service.NewDietPlanService(db)
	historyService := service.NewHistoryService(db)
	statsService := service.NewStatsService(db)
	tokenService := service.NewTokenService(cfg.JWTSecret)

	engine := router.Setup(router.Options{
		DB:           db,
		PlanHandler:  api.NewDietPlanHandler(planService),
		HistHandler:  api.NewHistoryHandler(historyService, statsService),
		Validator:    tokenService,
		WriteLimiter: writeLimiter,
		AdminKeyHash: cfg.AdminKeyHash,
		CORSOrigins:  cfg.CORSOrigins,
	})

	srv := server.New(cfg, engine)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s:%s", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
