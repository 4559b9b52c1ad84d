package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/fliprlabs/portfolio-api/internal/models"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ClientHandler manages client testimonial endpoints.
type ClientHandler struct {
	db            *gorm.DB
	maxImageBytes int64
}

// NewClientHandler constructs a ClientHandler.
func NewClientHandler(db *gorm.DB, maxImageBytes int64) *ClientHandler {
	return &ClientHandler{db: db, maxImageBytes: maxImageBytes}
}

// List returns all clients with the image inlined as a data URI.
func (h *ClientHandler) List(c *gin.Context) {
	var rows []models.Client
	if errFind := h.db.WithContext(c.Request.Context()).Order("created_at DESC").Find(&rows).Error; errFind != nil {
		log.WithError(errFind).Error("list clients failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error fetching clients"})
		return
	}
	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, gin.H{
			"id":          row.ID,
			"name":        row.Name,
			"designation": row.Designation,
			"description": row.Description,
			"createdAt":   row.CreatedAt,
			"imageUrl":    dataURI(row.ImageData, row.ImageContentType),
		})
	}
	c.JSON(http.StatusOK, out)
}

// Create persists a new client from a multipart form. The image upload is
// mandatory.
func (h *ClientHandler) Create(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	designation := strings.TrimSpace(c.PostForm("designation"))
	description := strings.TrimSpace(c.PostForm("description"))
	if name == "" || designation == "" || description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "all fields are required"})
		return
	}

	header, errFile := c.FormFile("image")
	if errFile != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "client image is required"})
		return
	}
	data, contentType, errRead := readImageFile(header, h.maxImageBytes)
	if errRead != nil {
		respondImageError(c, errRead)
		return
	}
	if len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "client image is required"})
		return
	}

	client := models.Client{
		Name:             name,
		Designation:      designation,
		Description:      description,
		ImageData:        data,
		ImageContentType: contentType,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&client).Error; errCreate != nil {
		log.WithError(errCreate).Error("create client failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error adding client"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "client added successfully",
		"id":      client.ID,
	})
}

// Update applies a partial update from a multipart form, replacing the image
// only when new bytes are supplied.
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	form, errForm := c.MultipartForm()
	if errForm != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid form"})
		return
	}

	updates := map[string]any{}
	for _, key := range []string{"name", "designation", "description"} {
		value, present := formValue(form, key)
		if !present {
			continue
		}
		if value == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": key + " cannot be empty"})
			return
		}
		updates[key] = value
	}

	header := firstFileHeader(form, "image")
	data, contentType, errRead := readImageFile(header, h.maxImageBytes)
	if errRead != nil {
		respondImageError(c, errRead)
		return
	}
	if len(data) > 0 {
		updates["image_data"] = data
		updates["image_content_type"] = contentType
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "no fields provided to update"})
		return
	}

	var client models.Client
	if errFind := h.db.WithContext(c.Request.Context()).First(&client, id).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "client not found"})
			return
		}
		log.WithError(errFind).Error("get client failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error updating client"})
		return
	}
	if errUpdate := h.db.WithContext(c.Request.Context()).Model(&client).Updates(updates).Error; errUpdate != nil {
		log.WithError(errUpdate).Error("update client failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error updating client"})
		return
	}
	if errReload := h.db.WithContext(c.Request.Context()).First(&client, id).Error; errReload != nil {
		log.WithError(errReload).Error("reload client failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error updating client"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "client updated successfully",
		"client": gin.H{
			"id":          client.ID,
			"name":        client.Name,
			"designation": client.Designation,
			"description": client.Description,
			"imageUrl":    dataURI(client.ImageData, client.ImageContentType),
		},
	})
}

// Delete removes a client by ID.
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	result := h.db.WithContext(c.Request.Context()).Delete(&models.Client{}, id)
	if result.Error != nil {
		log.WithError(result.Error).Error("delete client failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error deleting client"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "client not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "client deleted successfully"})
}
