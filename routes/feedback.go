package routes

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"trustyhands-server/database"
	"trustyhands-server/middleware"
	"trustyhands-server/models"
)

// RegisterFeedbackRoutes registers feedback eligibility and submission
// routes; both require an authenticated session.
func RegisterFeedbackRoutes(router *gin.RouterGroup) {
	router.Use(middleware.AuthMiddleware())
	router.GET("/pending", pendingFeedback)
	router.POST("", submitFeedback)
}

// pendingFeedback lists the caller's completed bookings that they have not
// reviewed yet, as lightweight projections.
func pendingFeedback(c *gin.Context) {
	userID := c.GetUint("user_id")
	email := c.GetString("email")

	customerIDs, workerIDs, err := identityIDSets(database.DB, email)
	if err != nil {
		logrus.WithError(err).Error("identity resolution failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Server error fetching pending feedback",
		})
		return
	}

	var completed []models.Booking
	if err := database.DB.
		Where("customer_id IN ? OR worker_id IN ?", customerIDs, workerIDs).
		Where("status = ?", models.BookingStatusCompleted).
		Preload("Customer").
		Preload("Worker").
		Order("preferred_date DESC").
		Find(&completed).Error; err != nil {
		logrus.WithError(err).Error("completed booking list failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Server error fetching pending feedback",
		})
		return
	}

	var reviewedIDs []uint
	if err := database.DB.Model(&models.Feedback{}).
		Where("user_id = ?", userID).
		Pluck("booking_id", &reviewedIDs).Error; err != nil {
		logrus.WithError(err).Error("feedback lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Server error fetching pending feedback",
		})
		return
	}
	reviewed := make(map[uint]bool, len(reviewedIDs))
	for _, id := range reviewedIDs {
		reviewed[id] = true
	}

	items := make([]models.PendingFeedbackItem, 0, len(completed))
	for _, booking := range completed {
		if reviewed[booking.ID] {
			continue
		}
		item := models.PendingFeedbackItem{
			ID:            booking.ID,
			ServiceType:   booking.ServiceType,
			PreferredDate: booking.PreferredDate,
		}
		if booking.Worker != nil {
			name := booking.Worker.FullName
			item.WorkerName = &name
		}
		if booking.Customer.ID != 0 {
			name := booking.Customer.FullName
			item.CustomerName = &name
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"completed_work": items,
	})
}

// submitFeedback records one rating per (booking, caller). The caller must
// be the booking's customer or worker by email, the booking must be
// completed, and a second submission is rejected.
func submitFeedback(c *gin.Context) {
	userID := c.GetUint("user_id")
	email := c.GetString("email")

	var req struct {
		BookingID uint   `json:"booking_id"`
		Rating    int    `json:"rating"`
		Comments  string `json:"comments"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.BookingID == 0 || req.Rating == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Booking ID and rating are required",
		})
		return
	}

	if req.Rating < 1 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Rating must be between 1 and 5",
		})
		return
	}

	var booking models.Booking
	if err := database.DB.
		Preload("Customer").
		Preload("Worker").
		First(&booking, req.BookingID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Booking not found",
			})
			return
		}
		logrus.WithError(err).Error("booking lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Server error submitting feedback",
		})
		return
	}

	hasAccess := (booking.Worker != nil && strings.EqualFold(booking.Worker.Email, email)) ||
		(booking.Customer.ID != 0 && strings.EqualFold(booking.Customer.Email, email))
	if !hasAccess {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   "You do not have access to this booking",
		})
		return
	}

	if booking.Status != models.BookingStatusCompleted {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Can only provide feedback for completed bookings",
		})
		return
	}

	var existing models.Feedback
	if err := database.DB.
		Where("booking_id = ? AND user_id = ?", req.BookingID, userID).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error":   "You have already submitted feedback for this booking",
		})
		return
	}

	feedback := models.Feedback{
		BookingID: req.BookingID,
		UserID:    userID,
		Rating:    req.Rating,
		Comments:  req.Comments,
	}
	if err := database.DB.Create(&feedback).Error; err != nil {
		// The composite unique index catches the concurrent-duplicate race
		// the read check above cannot.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error":   "You have already submitted feedback for this booking",
			})
			return
		}
		logrus.WithError(err).Error("feedback creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Server error submitting feedback",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Thank you for your feedback!",
	})
}
