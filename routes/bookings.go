package routes

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"trustyhands-server/config"
	"trustyhands-server/database"
	"trustyhands-server/middleware"
	"trustyhands-server/models"
	"trustyhands-server/storage"
)

// RegisterBookingRoutes registers booking lifecycle routes.
func RegisterBookingRoutes(router *gin.RouterGroup, files storage.Store) {
	router.POST("", createBooking(files))
	router.GET("", listBookings)
	router.GET("/user", middleware.AuthMiddleware(), listUserBookings)
	router.PUT("/:id/worker", assignWorker)
	router.PUT("/:id/status", updateBookingStatus)
}

func parsePreferredDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// createBooking saves a fresh customer record and a pending booking, then
// returns the candidate workers matching the requested service and city so
// the caller can pick one in a follow-up assignment step. The customer row is
// intentionally not deduplicated against earlier submissions with the same
// email.
func createBooking(files storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		fullName := c.PostForm("full_name")
		phone := c.PostForm("phone")
		email := c.PostForm("email")
		address := c.PostForm("address")
		city := c.PostForm("city")
		service := c.PostForm("service")
		date := c.PostForm("date")

		if fullName == "" || phone == "" || email == "" || address == "" || service == "" || date == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Please fill all required fields",
			})
			return
		}

		preferredDate, err := parsePreferredDate(date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Invalid date, expected YYYY-MM-DD",
			})
			return
		}

		payment := models.PaymentMode(c.PostForm("payment"))
		if payment == "" {
			payment = models.PaymentModeCash
		}
		if !payment.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Payment mode must be Cash, UPI or Card",
			})
			return
		}

		var workerID *uint
		if raw := c.PostForm("worker_id"); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"success": false,
					"error":   "Invalid worker ID",
				})
				return
			}
			uid := uint(id)
			workerID = &uid
		}

		imagePath := ""
		if header, err := c.FormFile("image"); err == nil && header != nil {
			if err := storage.ValidateUpload(header, storage.ImageExts, config.AppConfig.Upload.MaxImageSizeMB); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"success": false,
					"error":   "Invalid image: " + err.Error(),
				})
				return
			}
			path, err := files.Save(c.Request.Context(), header, "bookings")
			if err != nil {
				logrus.WithError(err).Error("booking image upload failed")
				c.JSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error":   "Failed to store uploaded image",
				})
				return
			}
			imagePath = path
		}

		customer := models.Customer{
			FullName:    fullName,
			PhoneNumber: phone,
			Email:       strings.ToLower(strings.TrimSpace(email)),
			Address:     strings.TrimRight(address+", "+city, ", "),
		}
		if err := database.DB.Create(&customer).Error; err != nil {
			logrus.WithError(err).Error("customer creation failed")
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Server error creating booking",
			})
			return
		}

		booking := models.Booking{
			CustomerID:         customer.ID,
			WorkerID:           workerID,
			ServiceType:        service,
			PreferredDate:      preferredDate,
			ProblemDescription: c.PostForm("problem_description"),
			ToolsRequired:      c.PostForm("tools_required"),
			ImagePath:          imagePath,
			PaymentMode:        payment,
			Status:             models.BookingStatusPending,
		}
		if err := database.DB.Create(&booking).Error; err != nil {
			logrus.WithError(err).Error("booking creation failed")
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Server error creating booking",
			})
			return
		}

		workers, err := findWorkers(database.DB, service, city)
		if err != nil {
			logrus.WithError(err).Error("candidate worker search failed")
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Server error creating booking",
			})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success":    true,
			"message":    "Your booking details have been saved. Please contact the worker using their phone number and confirm the worker.",
			"booking_id": booking.ID,
			"workers":    workers,
		})
	}
}

// assignWorker unconditionally overwrites the booking's worker reference.
// There is deliberately no check that the worker exists or that the booking
// is still pending.
func assignWorker(c *gin.Context) {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid booking ID",
		})
		return
	}

	var req struct {
		WorkerID uint `json:"worker_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.WorkerID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Worker ID is required",
		})
		return
	}

	var booking models.Booking
	if err := database.DB.First(&booking, bookingID).Error; err != nil {
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
			"error":   "Server error assigning worker",
		})
		return
	}

	booking.WorkerID = &req.WorkerID
	if err := database.DB.Save(&booking).Error; err != nil {
		logrus.WithError(err).Error("worker assignment failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Server error assigning worker",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Worker selected successfully! Booking is now complete.",
		"booking": booking,
	})
}

// updateBookingStatus sets the booking status. Any valid status may be set
// from any other; an invalid value leaves the booking untouched.
func updateBookingStatus(c *gin.Context) {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid booking ID",
		})
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid status value",
		})
		return
	}

	status := models.BookingStatus(req.Status)
	if !status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid status value",
		})
		return
	}

	var booking models.Booking
	if err := database.DB.First(&booking, bookingID).Error; err != nil {
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
			"error":   "Server error updating status",
		})
		return
	}

	booking.Status = status
	if err := database.DB.Save(&booking).Error; err != nil {
		logrus.WithError(err).Error("status update failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Server error updating status",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking status updated",
		"booking": booking,
	})
}

func listBookings(c *gin.Context) {
	bookings := make([]models.Booking, 0)
	if err := database.DB.
		Preload("Customer").
		Preload("Worker").
		Order("created_at DESC").
		Order("id DESC").
		Find(&bookings).Error; err != nil {
		logrus.WithError(err).Error("booking list failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Server error fetching bookings",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"bookings": bookings,
	})
}

// identityIDSets resolves the weak email cross-reference: every customer and
// worker row sharing the identity's email. Either set may hold zero, one or
// many ids since customers are never deduplicated.
func identityIDSets(db *gorm.DB, email string) (customerIDs, workerIDs []uint, err error) {
	if err = db.Model(&models.Customer{}).Where("email = ?", email).Pluck("id", &customerIDs).Error; err != nil {
		return nil, nil, err
	}
	if err = db.Model(&models.Worker{}).Where("email = ?", email).Pluck("id", &workerIDs).Error; err != nil {
		return nil, nil, err
	}
	return customerIDs, workerIDs, nil
}

// listUserBookings returns every booking the caller participates in, on
// either side, matched through the email sets.
func listUserBookings(c *gin.Context) {
	email := c.GetString("email")

	customerIDs, workerIDs, err := identityIDSets(database.DB, email)
	if err != nil {
		logrus.WithError(err).Error("identity resolution failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Server error fetching bookings",
		})
		return
	}

	bookings := make([]models.Booking, 0)
	if err := database.DB.
		Where("customer_id IN ? OR worker_id IN ?", customerIDs, workerIDs).
		Preload("Customer").
		Preload("Worker").
		Order("created_at DESC").
		Order("id DESC").
		Find(&bookings).Error; err != nil {
		logrus.WithError(err).Error("user booking list failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Server error fetching bookings",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"bookings": bookings,
	})
}
