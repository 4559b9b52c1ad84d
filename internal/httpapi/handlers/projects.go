package handlers

import (
	"encoding/base64"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	dbutil "github.com/fliprlabs/portfolio-api/internal/db"
	"github.com/fliprlabs/portfolio-api/internal/models"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ProjectHandler manages portfolio project endpoints.
type ProjectHandler struct {
	db            *gorm.DB
	maxImageBytes int64
}

// NewProjectHandler constructs a ProjectHandler.
func NewProjectHandler(db *gorm.DB, maxImageBytes int64) *ProjectHandler {
	return &ProjectHandler{db: db, maxImageBytes: maxImageBytes}
}

// List returns all projects with the image inlined as a data URI, so the
// frontend never issues a second request for image bytes. An optional
// category query filters case-insensitively.
func (h *ProjectHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Model(&models.Project{})
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		pattern := dbutil.NormalizeLikePattern(h.db, "%"+category+"%")
		q = q.Where(dbutil.CaseInsensitiveLikeExpr(h.db, "category"), pattern)
	}

	var rows []models.Project
	if errFind := q.Order("created_at DESC").Find(&rows).Error; errFind != nil {
		log.WithError(errFind).Error("list projects failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error fetching projects"})
		return
	}
	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, gin.H{
			"id":          row.ID,
			"projectName": row.Name,
			"description": row.Description,
			"location":    row.Location,
			"category":    row.Category,
			"createdAt":   row.CreatedAt,
			"imageUrl":    dataURI(row.ImageData, row.ImageContentType),
		})
	}
	c.JSON(http.StatusOK, out)
}

// Get returns one project with the image as a {contentType, base64} pair.
// This shape intentionally differs from List, which inlines a data URI; the
// frontend consumes both.
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var row models.Project
	if errFind := h.db.WithContext(c.Request.Context()).First(&row, id).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "project not found"})
			return
		}
		log.WithError(errFind).Error("get project failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error fetching project"})
		return
	}

	var image gin.H
	if len(row.ImageData) > 0 && row.ImageContentType != "" {
		image = gin.H{
			"contentType": row.ImageContentType,
			"base64":      base64.StdEncoding.EncodeToString(row.ImageData),
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"id":          row.ID,
		"projectName": row.Name,
		"description": row.Description,
		"location":    row.Location,
		"category":    row.Category,
		"createdAt":   row.CreatedAt,
		"image":       image,
	})
}

// Create persists a new project from a multipart form. The image upload is
// mandatory.
func (h *ProjectHandler) Create(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("projectName"))
	description := strings.TrimSpace(c.PostForm("description"))
	location := strings.TrimSpace(c.PostForm("location"))
	category := strings.TrimSpace(c.PostForm("category"))
	if name == "" || description == "" || location == "" || category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "all fields are required"})
		return
	}

	header, errFile := c.FormFile("image")
	if errFile != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "project image is required"})
		return
	}
	data, contentType, errRead := readImageFile(header, h.maxImageBytes)
	if errRead != nil {
		respondImageError(c, errRead)
		return
	}
	if len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "project image is required"})
		return
	}

	project := models.Project{
		Name:             name,
		Description:      description,
		Location:         location,
		Category:         category,
		ImageData:        data,
		ImageContentType: contentType,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&project).Error; errCreate != nil {
		log.WithError(errCreate).Error("create project failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error adding project"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "project added successfully",
		"id":      project.ID,
	})
}

// Update applies a partial update from a multipart form. Supplying a new
// image replaces the stored one wholesale; omitting it leaves the prior
// image intact.
func (h *ProjectHandler) Update(c *gin.Context) {
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
	for key, column := range map[string]string{
		"projectName": "name",
		"description": "description",
		"location":    "location",
		"category":    "category",
	} {
		value, present := formValue(form, key)
		if !present {
			continue
		}
		if value == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": key + " cannot be empty"})
			return
		}
		updates[column] = value
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

	var project models.Project
	if errFind := h.db.WithContext(c.Request.Context()).First(&project, id).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "project not found"})
			return
		}
		log.WithError(errFind).Error("get project failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error updating project"})
		return
	}
	if errUpdate := h.db.WithContext(c.Request.Context()).Model(&project).Updates(updates).Error; errUpdate != nil {
		log.WithError(errUpdate).Error("update project failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error updating project"})
		return
	}
	if errReload := h.db.WithContext(c.Request.Context()).First(&project, id).Error; errReload != nil {
		log.WithError(errReload).Error("reload project failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error updating project"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "project updated successfully",
		"project": gin.H{
			"id":          project.ID,
			"projectName": project.Name,
			"description": project.Description,
			"location":    project.Location,
			"category":    project.Category,
			"imageUrl":    dataURI(project.ImageData, project.ImageContentType),
		},
	})
}

// Delete removes a project by ID.
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	result := h.db.WithContext(c.Request.Context()).Delete(&models.Project{}, id)
	if result.Error != nil {
		log.WithError(result.Error).Error("delete project failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error deleting project"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "project deleted successfully"})
}

// firstFileHeader returns the first uploaded file for a form key, or nil.
func firstFileHeader(form *multipart.Form, key string) *multipart.FileHeader {
	if form == nil {
		return nil
	}
	files := form.File[key]
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

// respondImageError maps image read failures to responses.
func respondImageError(c *gin.Context, err error) {
	if errors.Is(err, errImageTooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"message": "image exceeds size limit"})
		return
	}
	log.WithError(err).Error("read image failed")
	c.JSON(http.StatusInternalServerError, gin.H{"message": "error reading image"})
}
