package handlers

import (
	"net/http"
	"strings"

	"github.com/fliprlabs/portfolio-api/internal/models"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ContactHandler manages contact form submissions.
type ContactHandler struct {
	db *gorm.DB
}

// NewContactHandler constructs a ContactHandler.
func NewContactHandler(db *gorm.DB) *ContactHandler {
	return &ContactHandler{db: db}
}

// contactRequest defines the request body for a contact submission.
type contactRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	City     string `json:"city"`
}

// Create stores a visitor contact submission. No gate, no uniqueness.
func (h *ContactHandler) Create(c *gin.Context) {
	var body contactRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	fullName := strings.TrimSpace(body.FullName)
	email := strings.TrimSpace(body.Email)
	mobile := strings.TrimSpace(body.Mobile)
	city := strings.TrimSpace(body.City)
	if fullName == "" || email == "" || mobile == "" || city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "all fields are required"})
		return
	}

	row := models.ContactSubmission{
		FullName: fullName,
		Email:    email,
		Mobile:   mobile,
		City:     city,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&row).Error; errCreate != nil {
		log.WithError(errCreate).Error("create contact failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error submitting contact"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "contact submitted successfully"})
}

// List returns all contact submissions for the admin back office.
func (h *ContactHandler) List(c *gin.Context) {
	var rows []models.ContactSubmission
	if errFind := h.db.WithContext(c.Request.Context()).Order("created_at DESC").Find(&rows).Error; errFind != nil {
		log.WithError(errFind).Error("list contacts failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error fetching contacts"})
		return
	}
	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, gin.H{
			"id":        row.ID,
			"fullName":  row.FullName,
			"email":     row.Email,
			"mobile":    row.Mobile,
			"city":      row.City,
			"createdAt": row.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

// SubscriberHandler manages newsletter signups.
type SubscriberHandler struct {
	db *gorm.DB
}

// NewSubscriberHandler constructs a SubscriberHandler.
func NewSubscriberHandler(db *gorm.DB) *SubscriberHandler {
	return &SubscriberHandler{db: db}
}

// subscriberRequest defines the request body for a newsletter signup.
type subscriberRequest struct {
	Email string `json:"email"`
}

// Create stores a newsletter signup. Duplicate emails are accepted.
func (h *SubscriberHandler) Create(c *gin.Context) {
	var body subscriberRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	email := strings.TrimSpace(body.Email)
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email is required"})
		return
	}

	row := models.Subscriber{Email: email}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&row).Error; errCreate != nil {
		log.WithError(errCreate).Error("create subscriber failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error subscribing"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "subscribed successfully"})
}

// List returns all subscribers for the admin back office.
func (h *SubscriberHandler) List(c *gin.Context) {
	var rows []models.Subscriber
	if errFind := h.db.WithContext(c.Request.Context()).Order("created_at DESC").Find(&rows).Error; errFind != nil {
		log.WithError(errFind).Error("list subscribers failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error fetching subscribers"})
		return
	}
	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, gin.H{
			"id":        row.ID,
			"email":     row.Email,
			"createdAt": row.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}
