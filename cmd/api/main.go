package main

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"finance/internal/config"
	"finance/internal/database"
	"finance/internal/logger"
	"finance/internal/server"
	"finance/internal/validator"
)

// @title           Finance API
// @version         1.0
// @description     Personal finance backend: categories, transactions, savings goals and monthly/yearly reports.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey SessionCookie
// @in header
// @name Authorization
// @description Session token issued by POST /auth/login. Browsers send it in the session cookie; other clients use "Bearer <token>".

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger.Init(cfg.Env)
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	log := logger.Get()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	validator.Register(cfg.Now)

	// Create database manager
	dbManager, err := database.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	router := server.NewRouter(server.Options{
		Config:         cfg,
		DB:             dbManager.DB(),
		RequestLogging: true,
	})

	log.Infof("Starting finance API on port %s (db: %s, timezone: %s)", cfg.Port, cfg.DBDriver, cfg.Location)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", cfg.Port)
	return router.Run(":" + cfg.Port)
}
