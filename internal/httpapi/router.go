package httpapi

import (
	"net/http"
	"time"

	"github.com/fliprlabs/portfolio-api/internal/config"
	"github.com/fliprlabs/portfolio-api/internal/httpapi/handlers"
	"github.com/fliprlabs/portfolio-api/internal/session"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewRouter builds the gin engine with middleware and every API route.
func NewRouter(db *gorm.DB, sessions *session.Store, cfg *config.Config) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestLogger())

	if len(cfg.CORS.AllowedOrigins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Multipart bodies above the image ceiling spill to disk instead of
	// memory; the per-file ceiling itself is enforced in the handlers.
	engine.MaxMultipartMemory = cfg.Uploads.MaxImageBytes

	RegisterRoutes(engine, db, sessions, cfg)
	return engine
}

// RegisterRoutes wires all handlers onto the engine.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, sessions *session.Store, cfg *config.Config) {
	if r == nil || db == nil || sessions == nil {
		return
	}

	r.GET("/healthz", handlers.Healthz)
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "portfolio backend is up")
	})

	gate := RequireSession(sessions, cfg.Session.CookieName)
	api := r.Group("/api")

	authHandler := handlers.NewAuthHandler(db, sessions, cfg)
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/check", authHandler.Check)
	auth.GET("/users", gate, authHandler.ListUsers)
	auth.PUT("/users/:id", gate, authHandler.UpdateUser)
	auth.DELETE("/users/:id", gate, authHandler.DeleteUser)

	projectHandler := handlers.NewProjectHandler(db, cfg.Uploads.MaxImageBytes)
	projects := api.Group("/projects")
	projects.GET("", projectHandler.List)
	projects.GET("/:id", projectHandler.Get)
	projects.POST("", gate, projectHandler.Create)
	projects.PUT("/:id", gate, projectHandler.Update)
	projects.DELETE("/:id", gate, projectHandler.Delete)

	clientHandler := handlers.NewClientHandler(db, cfg.Uploads.MaxImageBytes)
	clients := api.Group("/clients")
	clients.GET("", clientHandler.List)
	clients.POST("", gate, clientHandler.Create)
	clients.PUT("/:id", gate, clientHandler.Update)
	clients.DELETE("/:id", gate, clientHandler.Delete)

	contactHandler := handlers.NewContactHandler(db)
	api.POST("/contacts", contactHandler.Create)
	api.GET("/contacts", gate, contactHandler.List)

	subscriberHandler := handlers.NewSubscriberHandler(db)
	api.POST("/subscribers", subscriberHandler.Create)
	api.GET("/subscribers", gate, subscriberHandler.List)

	settingsHandler := handlers.NewSettingsHandler(db)
	api.GET("/settings", settingsHandler.Get)
	api.PUT("/settings", gate, settingsHandler.Update)
}
