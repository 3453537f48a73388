package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"trustyhands-server/storage"
)

// Setup mounts every API route group on the router.
func Setup(router *gin.Engine, files storage.Store) {
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"message":   "TrustyHands API is running",
			"timestamp": time.Now().UTC(),
		})
	})

	api := router.Group("/api")
	RegisterAuthRoutes(api.Group("/auth"), files)
	RegisterWorkerRoutes(api.Group("/workers"), files)
	RegisterBookingRoutes(api.Group("/bookings"), files)
	RegisterFeedbackRoutes(api.Group("/feedback"))
	RegisterContactRoutes(api.Group("/contact"))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Route not found",
		})
	})
}
