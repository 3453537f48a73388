package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"trustyhands-server/config"
	"trustyhands-server/database"
	"trustyhands-server/logger"
	"trustyhands-server/middleware"
	"trustyhands-server/routes"
	"trustyhands-server/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	config.Load()
	logger.Setup()

	if err := database.Initialize(); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize database")
	}

	files, err := storage.New()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize file store")
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.CORSMiddleware())

	// Locally stored uploads are served back under /uploads.
	router.Static("/uploads", config.AppConfig.Upload.Dir)

	routes.Setup(router, files)

	port := config.AppConfig.Server.Port
	logrus.Infof("TrustyHands server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		logrus.WithError(err).Fatal("Failed to start server")
	}
}
