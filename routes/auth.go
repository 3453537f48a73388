package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"trustyhands-server/config"
	"trustyhands-server/database"
	"trustyhands-server/middleware"
	"trustyhands-server/models"
	"trustyhands-server/storage"
	"trustyhands-server/utils"
)

// RegisterAuthRoutes registers registration, login and session routes.
func RegisterAuthRoutes(router *gin.RouterGroup, files storage.Store) {
	router.POST("/register", registerUser)
	router.POST("/login", loginUser)
	router.POST("/logout", logoutUser)
	router.GET("/session", middleware.OptionalAuthMiddleware(), getSession)
	router.GET("/profile", middleware.AuthMiddleware(), getProfile)
	router.PUT("/profile", middleware.AuthMiddleware(), updateProfile(files))
}

func setSessionCookie(c *gin.Context, token string) {
	session := config.AppConfig.Session
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, token, session.ExpiryHours*3600, "/", "", session.Secure, true)
}

func clearSessionCookie(c *gin.Context) {
	session := config.AppConfig.Session
	c.SetCookie(session.CookieName, "", -1, "/", "", session.Secure, true)
}

func registerUser(c *gin.Context) {
	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"errors":  []string{"Invalid request body"},
		})
		return
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	validationErrors := make([]string, 0)
	if !utils.IsValidName(req.FirstName) {
		validationErrors = append(validationErrors, "First name must be 2-50 letters")
	}
	if !utils.IsValidName(req.LastName) {
		validationErrors = append(validationErrors, "Last name must be 2-50 letters")
	}
	if !utils.IsValidEmail(req.Email) {
		validationErrors = append(validationErrors, "Invalid email format")
	}
	if len(req.Password) < 8 {
		validationErrors = append(validationErrors, "Password must be at least 8 characters")
	}
	if len(validationErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"errors":  validationErrors,
		})
		return
	}

	var existing models.User
	if err := database.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"errors":  []string{"Email Address Already Exists!"},
		})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logrus.WithError(err).Error("password hashing failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"errors":  []string{"Server error during registration"},
		})
		return
	}

	user := models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		logrus.WithError(err).Error("user creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"errors":  []string{"Server error during registration"},
		})
		return
	}

	token, err := utils.GenerateSessionToken(user.ID, user.Email)
	if err != nil {
		logrus.WithError(err).Error("session token generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"errors":  []string{"Server error during registration"},
		})
		return
	}
	setSessionCookie(c, token)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Registration successful",
		"token":   token,
		"user": gin.H{
			"id":         user.ID,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"email":      user.Email,
		},
	})
}

func loginUser(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"errors":  []string{"Email and password are required"},
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"errors":  []string{"Email not found"},
			})
			return
		}
		logrus.WithError(err).Error("user lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"errors":  []string{"Server error during login"},
		})
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"errors":  []string{"Incorrect password"},
		})
		return
	}

	token, err := utils.GenerateSessionToken(user.ID, user.Email)
	if err != nil {
		logrus.WithError(err).Error("session token generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"errors":  []string{"Server error during login"},
		})
		return
	}
	setSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user": gin.H{
			"id":         user.ID,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"email":      user.Email,
		},
	})
}

func logoutUser(c *gin.Context) {
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logout successful",
	})
}

func getSession(c *gin.Context) {
	value, ok := c.Get("user")
	if !ok {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	user := value.(models.User)
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user": gin.H{
			"id":         user.ID,
			"first_name": user.FirstName,
			"email":      user.Email,
		},
	})
}

// getProfile returns the user plus the first worker and customer rows
// sharing the user's email, with convenience flags.
func getProfile(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	var worker *models.Worker
	var w models.Worker
	if err := database.DB.Where("email = ?", user.Email).First(&w).Error; err == nil {
		worker = &w
	}

	var customer *models.Customer
	var cu models.Customer
	if err := database.DB.Where("email = ?", user.Email).First(&cu).Error; err == nil {
		customer = &cu
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"user":        user,
		"worker":      worker,
		"customer":    customer,
		"is_worker":   worker != nil,
		"is_customer": customer != nil,
	})
}

// updateProfile mutates the optional contact fields and the profile image.
func updateProfile(files storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(models.User)

		if phone := c.PostForm("phone"); phone != "" {
			user.PhoneNumber = phone
		}
		if city := c.PostForm("city"); city != "" {
			user.City = city
		}
		if address := c.PostForm("address"); address != "" {
			user.Address = address
		}

		if header, err := c.FormFile("profile_image"); err == nil && header != nil {
			if err := storage.ValidateUpload(header, storage.ImageExts, config.AppConfig.Upload.MaxUploadSizeMB); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"success": false,
					"error":   "Invalid profile image: " + err.Error(),
				})
				return
			}
			path, err := files.Save(c.Request.Context(), header, "profiles")
			if err != nil {
				logrus.WithError(err).Error("profile image upload failed")
				c.JSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error":   "Failed to store profile image",
				})
				return
			}
			user.ProfileImage = path
		}

		if err := database.DB.Save(&user).Error; err != nil {
			logrus.WithError(err).Error("profile update failed")
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Server error updating profile",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Profile updated",
			"user":    user,
		})
	}
}
