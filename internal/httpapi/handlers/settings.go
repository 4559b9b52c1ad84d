package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fliprlabs/portfolio-api/internal/models"
	"github.com/fliprlabs/portfolio-api/internal/settings"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsHandler manages site settings.
type SettingsHandler struct {
	db *gorm.DB
}

// NewSettingsHandler constructs a SettingsHandler.
func NewSettingsHandler(db *gorm.DB) *SettingsHandler {
	return &SettingsHandler{db: db}
}

// Get returns the current site settings snapshot.
func (h *SettingsHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, settings.All())
}

// Update upserts the provided setting keys and refreshes the in-memory
// snapshot. The body is a JSON object; each value is stored verbatim.
func (h *SettingsHandler) Update(c *gin.Context) {
	var body map[string]json.RawMessage
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "no settings provided"})
		return
	}

	for key, value := range body {
		key = strings.TrimSpace(key)
		if key == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "setting key cannot be empty"})
			return
		}
		row := models.Setting{
			Key:   key,
			Value: datatypes.JSON(value),
		}
		errUpsert := h.db.WithContext(c.Request.Context()).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).
			Create(&row).Error
		if errUpsert != nil {
			log.WithError(errUpsert).WithField("key", key).Error("upsert setting failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "error updating settings"})
			return
		}
	}

	if errRefresh := settings.Refresh(c.Request.Context(), h.db); errRefresh != nil {
		log.WithError(errRefresh).Error("refresh settings failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error updating settings"})
		return
	}
	c.JSON(http.StatusOK, settings.All())
}
