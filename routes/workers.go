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
	"trustyhands-server/models"
	"trustyhands-server/storage"
)

// RegisterWorkerRoutes registers worker directory routes.
func RegisterWorkerRoutes(router *gin.RouterGroup, files storage.Store) {
	router.POST("/register", registerWorker(files))
	router.GET("/search", searchWorkersHandler)
	router.GET("/:id", getWorker)
}

// findWorkers answers the matching query shared by the directory search and
// booking creation: exact service type, case-insensitive substring on the
// free-text location.
func findWorkers(db *gorm.DB, serviceType, city string) ([]models.Worker, error) {
	workers := make([]models.Worker, 0)
	err := db.
		Where("service_type = ?", serviceType).
		Where("LOWER(location) LIKE ?", "%"+strings.ToLower(city)+"%").
		Find(&workers).Error
	return workers, err
}

func registerWorker(files storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		required := []string{
			"full_name", "phone", "email", "dob", "gender", "location",
			"service_type", "experience", "languages", "available_hours",
			"min_price_per_hour", "max_price_per_hour",
		}
		missing := make([]string, 0)
		for _, field := range required {
			if strings.TrimSpace(c.PostForm(field)) == "" {
				missing = append(missing, field)
			}
		}
		if len(missing) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success":        false,
				"error":          "Please fill all required fields",
				"missing_fields": missing,
			})
			return
		}

		if c.PostForm("agreement") != "true" || c.PostForm("confirmation") != "true" {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "You must agree to the terms and confirm your information",
			})
			return
		}

		dob, err := time.Parse("2006-01-02", c.PostForm("dob"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Invalid date of birth, expected YYYY-MM-DD",
			})
			return
		}

		gender := models.Gender(c.PostForm("gender"))
		if !gender.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Gender must be Male, Female or Other",
			})
			return
		}

		experience, err := strconv.Atoi(c.PostForm("experience"))
		if err != nil || experience < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Experience must be a number of years",
			})
			return
		}

		minPrice, errMin := strconv.ParseFloat(c.PostForm("min_price_per_hour"), 64)
		maxPrice, errMax := strconv.ParseFloat(c.PostForm("max_price_per_hour"), 64)
		if errMin != nil || errMax != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Price range must be numeric",
			})
			return
		}

		// Four independently optional documents; a missing upload stays "".
		uploadCfg := config.AppConfig.Upload
		documents := []struct {
			field   string
			allowed []string
			maxMB   int64
		}{
			{"id_proof", storage.IDProofExts, uploadCfg.MaxImageSizeMB},
			{"resume", storage.DocumentExts, uploadCfg.MaxUploadSizeMB},
			{"profile_picture", storage.ImageExts, uploadCfg.MaxUploadSizeMB},
			{"work_samples", storage.DocumentExts, uploadCfg.MaxUploadSizeMB},
		}
		paths := make(map[string]string, len(documents))
		for _, doc := range documents {
			header, err := c.FormFile(doc.field)
			if err != nil || header == nil {
				paths[doc.field] = ""
				continue
			}
			if err := storage.ValidateUpload(header, doc.allowed, doc.maxMB); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"success": false,
					"error":   "Invalid " + doc.field + ": " + err.Error(),
				})
				return
			}
			path, err := files.Save(c.Request.Context(), header, "workers")
			if err != nil {
				logrus.WithError(err).Errorf("worker %s upload failed", doc.field)
				c.JSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error":   "Failed to store uploaded file",
				})
				return
			}
			paths[doc.field] = path
		}

		worker := models.Worker{
			FullName:           c.PostForm("full_name"),
			PhoneNumber:        c.PostForm("phone"),
			Email:              strings.ToLower(strings.TrimSpace(c.PostForm("email"))),
			DateOfBirth:        dob,
			Gender:             gender,
			Location:           c.PostForm("location"),
			ServiceType:        c.PostForm("service_type"),
			Experience:         experience,
			Skills:             c.PostForm("skills"),
			Languages:          c.PostForm("languages"),
			AvailableHours:     c.PostForm("available_hours"),
			MinPricePerHour:    minPrice,
			MaxPricePerHour:    maxPrice,
			IDProofPath:        paths["id_proof"],
			ResumePath:         paths["resume"],
			ProfilePicturePath: paths["profile_picture"],
			WorkSamplesPath:    paths["work_samples"],
			AgreementAccepted:  true,
			InfoConfirmed:      true,
		}

		if err := database.DB.Create(&worker).Error; err != nil {
			logrus.WithError(err).Error("worker registration failed")
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Server error during registration",
			})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Registration successful! Welcome to TrustyHands.",
			"worker": gin.H{
				"id":           worker.ID,
				"full_name":    worker.FullName,
				"service_type": worker.ServiceType,
				"location":     worker.Location,
			},
		})
	}
}

func searchWorkersHandler(c *gin.Context) {
	service := c.Query("service")
	city := c.Query("city")

	if service == "" || city == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Service type and city are required",
		})
		return
	}

	workers, err := findWorkers(database.DB, service, city)
	if err != nil {
		logrus.WithError(err).Error("worker search failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Server error during search",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"workers": workers,
	})
}

func getWorker(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid worker ID",
		})
		return
	}

	var worker models.Worker
	if err := database.DB.First(&worker, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Worker not found",
			})
			return
		}
		logrus.WithError(err).Error("worker lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Server error fetching worker",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"worker":  worker,
	})
}
