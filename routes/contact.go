package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"trustyhands-server/database"
	"trustyhands-server/models"
)

// RegisterContactRoutes registers the contact-us submission route.
func RegisterContactRoutes(router *gin.RouterGroup) {
	router.POST("", submitContact)
}

func submitContact(c *gin.Context) {
	var req struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Subject  string `json:"subject"`
		Message  string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil ||
		req.FullName == "" || req.Email == "" || req.Subject == "" || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Please fill all required fields",
		})
		return
	}

	submission := models.ContactSubmission{
		FullName: req.FullName,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:    req.Phone,
		Subject:  req.Subject,
		Message:  req.Message,
	}
	if err := database.DB.Create(&submission).Error; err != nil {
		logrus.WithError(err).Error("contact submission failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Server error submitting contact form",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Thank you for contacting us! We will get back to you soon.",
	})
}
