package main

import (
	"log"

	"gamelibrary/backend/internal/config"
	"gamelibrary/backend/internal/database"
	"gamelibrary/backend/internal/logger"
	"gamelibrary/backend/internal/router"

	"github.com/gin-gonic/gin"
)

// @title           Video Game Library API
// @version         1.0
// @description     JSON API for the video game library catalog.
// @host            localhost:8080
// @BasePath        /api/v1
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	gin.SetMode(cfg.GinMode)
	appLog := logger.New(logger.Options{Level: cfg.LogLevel, GinMode: cfg.GinMode, File: cfg.LogFile})

	// Connect to the database
	db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseURL, appLog)
	if err != nil {
		appLog.Fatal(err)
	}
	defer database.Close(db)

	if err := database.Migrate(db, cfg.NewestGamesLimit); err != nil {
		appLog.Fatal(err)
	}
	appLog.Info("Database migrated successfully.")

	r, err := router.New(router.Deps{
		DB:             db,
		Log:            appLog,
		AllowedOrigins: cfg.AllowedOrigins(),
	})
	if err != nil {
		appLog.Fatalf("Failed to build router: %v", err)
	}

	appLog.Infof("Server is running on %s", cfg.Addr())
	appLog.Infof("Swagger UI is available at http://localhost:%s/swagger/index.html", cfg.Port)
	if err := r.Run(cfg.Addr()); err != nil {
		appLog.Fatal(err)
	}
}
