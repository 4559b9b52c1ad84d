package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/fliprlabs/portfolio-api/internal/config"
	"github.com/fliprlabs/portfolio-api/internal/models"
	"github.com/fliprlabs/portfolio-api/internal/security"
	"github.com/fliprlabs/portfolio-api/internal/session"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuthHandler handles administrator authentication and account management.
type AuthHandler struct {
	db       *gorm.DB
	sessions *session.Store
	cfg      *config.Config
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, sessions *session.Store, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, sessions: sessions, cfg: cfg}
}

// registerRequest defines the request body for admin registration.
type registerRequest struct {
	Fullname string `json:"fullname"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a new administrator account.
//
// When open registration is disabled, the endpoint requires an authenticated
// session once at least one administrator exists; the very first account can
// always be created so a fresh deployment can bootstrap itself.
func (h *AuthHandler) Register(c *gin.Context) {
	var body registerRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	fullname := strings.TrimSpace(body.Fullname)
	username := strings.TrimSpace(body.Username)
	password := strings.TrimSpace(body.Password)
	if fullname == "" || username == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "all fields required"})
		return
	}

	if !h.cfg.Auth.OpenRegistration {
		var count int64
		if errCount := h.db.WithContext(c.Request.Context()).Model(&models.Admin{}).Count(&count).Error; errCount != nil {
			log.WithError(errCount).Error("count admins failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "register failed"})
			return
		}
		if count > 0 && !h.hasAuthenticatedSession(c) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
			return
		}
	}

	var exists models.Admin
	errCheck := h.db.WithContext(c.Request.Context()).Where("username = ?", username).First(&exists).Error
	if errCheck == nil {
		c.JSON(http.StatusConflict, gin.H{"message": "admin already exists"})
		return
	}
	if !errors.Is(errCheck, gorm.ErrRecordNotFound) {
		log.WithError(errCheck).Error("query admin failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "register failed"})
		return
	}

	hash, errHash := security.HashPassword(password)
	if errHash != nil {
		log.WithError(errHash).Error("hash password failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "register failed"})
		return
	}

	admin := models.Admin{
		Fullname: fullname,
		Username: username,
		Password: hash,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&admin).Error; errCreate != nil {
		log.WithError(errCreate).Error("create admin failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "register failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "admin created successfully",
		"id":      admin.ID,
	})
}

// loginRequest defines the request body for login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials and establishes a session. Unknown usernames
// and wrong passwords produce the same response so usernames cannot be
// enumerated.
func (h *AuthHandler) Login(c *gin.Context) {
	var body loginRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}
	username := strings.TrimSpace(body.Username)
	password := strings.TrimSpace(body.Password)
	if username == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "missing username or password"})
		return
	}

	var admin models.Admin
	if errFind := h.db.WithContext(c.Request.Context()).Where("username = ?", username).First(&admin).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
			return
		}
		log.WithError(errFind).Error("query admin failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "login failed"})
		return
	}

	if !security.CheckPassword(admin.Password, password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
		return
	}

	sess := h.sessions.Create(admin.ID)
	h.setSessionCookie(c, sess.Token, int(h.sessions.TTL().Seconds()))

	c.JSON(http.StatusOK, gin.H{
		"message":  "login successful",
		"id":       admin.ID,
		"fullname": admin.Fullname,
		"username": admin.Username,
	})
}

// Logout destroys the caller's session. Destroying an absent or expired
// session is not an error.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, errCookie := c.Cookie(h.cfg.Session.CookieName); errCookie == nil {
		h.sessions.Delete(token)
	}
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}

// Check reports whether the caller holds an authenticated session. It has no
// side effects beyond lazy expiry.
func (h *AuthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"authenticated": h.hasAuthenticatedSession(c)})
}

// ListUsers returns all administrators with the password omitted.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	var rows []models.Admin
	if errFind := h.db.WithContext(c.Request.Context()).Order("created_at ASC").Find(&rows).Error; errFind != nil {
		log.WithError(errFind).Error("list admins failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "list admins failed"})
		return
	}
	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, adminJSON(row))
	}
	c.JSON(http.StatusOK, out)
}

// updateUserRequest defines the request body for admin updates. Pointer
// fields distinguish "absent" from "provided empty".
type updateUserRequest struct {
	Fullname *string `json:"fullname"`
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// UpdateUser applies a partial update to an administrator. A provided
// password is re-hashed before storage.
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var body updateUserRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}

	updates := map[string]any{}
	if body.Fullname != nil {
		fullname := strings.TrimSpace(*body.Fullname)
		if fullname == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "fullname cannot be empty"})
			return
		}
		updates["fullname"] = fullname
	}
	if body.Username != nil {
		username := strings.TrimSpace(*body.Username)
		if username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "username cannot be empty"})
			return
		}
		var taken models.Admin
		errCheck := h.db.WithContext(c.Request.Context()).
			Where("username = ? AND id <> ?", username, id).
			First(&taken).Error
		if errCheck == nil {
			c.JSON(http.StatusConflict, gin.H{"message": "admin already exists"})
			return
		}
		if !errors.Is(errCheck, gorm.ErrRecordNotFound) {
			log.WithError(errCheck).Error("query admin failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "update failed"})
			return
		}
		updates["username"] = username
	}
	if body.Password != nil {
		password := strings.TrimSpace(*body.Password)
		if password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "password cannot be empty"})
			return
		}
		hash, errHash := security.HashPassword(password)
		if errHash != nil {
			log.WithError(errHash).Error("hash password failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "update failed"})
			return
		}
		updates["password"] = hash
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "no fields provided to update"})
		return
	}

	var admin models.Admin
	if errFind := h.db.WithContext(c.Request.Context()).First(&admin, id).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "admin not found"})
			return
		}
		log.WithError(errFind).Error("query admin failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "update failed"})
		return
	}
	if errUpdate := h.db.WithContext(c.Request.Context()).Model(&admin).Updates(updates).Error; errUpdate != nil {
		log.WithError(errUpdate).Error("update admin failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "update failed"})
		return
	}
	if errReload := h.db.WithContext(c.Request.Context()).First(&admin, id).Error; errReload != nil {
		log.WithError(errReload).Error("reload admin failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "update failed"})
		return
	}
	c.JSON(http.StatusOK, adminJSON(admin))
}

// DeleteUser removes an administrator by ID. Deleting an absent record is
// not an error.
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if errDelete := h.db.WithContext(c.Request.Context()).Delete(&models.Admin{}, id).Error; errDelete != nil {
		log.WithError(errDelete).Error("delete admin failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "delete failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

// hasAuthenticatedSession reports whether the request cookie resolves to an
// authenticated session.
func (h *AuthHandler) hasAuthenticatedSession(c *gin.Context) bool {
	token, errCookie := c.Cookie(h.cfg.Session.CookieName)
	if errCookie != nil {
		return false
	}
	sess, ok := h.sessions.Get(token)
	return ok && sess.Authenticated
}

// setSessionCookie writes or clears the session cookie. Production mode uses
// Secure + SameSite=None so a frontend on another origin can send it.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	if h.cfg.Server.Production {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(h.cfg.Session.CookieName, token, maxAge, "/", "", h.cfg.Server.Production, true)
}

// adminJSON shapes an administrator for responses, omitting the password.
func adminJSON(admin models.Admin) gin.H {
	return gin.H{
		"id":         admin.ID,
		"fullname":   admin.Fullname,
		"username":   admin.Username,
		"created_at": admin.CreatedAt,
		"updated_at": admin.UpdatedAt,
	}
}
