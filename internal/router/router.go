// Package router assembles the HTTP surface.
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/lift-project-api/internal/catalog"
	"github.com/yukikurage/lift-project-api/internal/constants"
	"github.com/yukikurage/lift-project-api/internal/handlers"
	"github.com/yukikurage/lift-project-api/internal/middleware"
	"github.com/yukikurage/lift-project-api/internal/render"
	"github.com/yukikurage/lift-project-api/internal/repository"
	"github.com/yukikurage/lift-project-api/internal/services"
	"github.com/yukikurage/lift-project-api/internal/validation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the collaborators the router wires together.
type Deps struct {
	DB             *gorm.DB
	Logger         *zap.Logger
	SessionStore   sessions.Store
	AllowedOrigins []string
	Catalog        *catalog.Data
	Engine         render.Engine
	Hasher         services.PasswordHasher
	// LoginThrottle is optional
	LoginThrottle middleware.Throttler
	// Now defaults to time.Now
	Now func() time.Time
}

// New builds the gin engine with every route registered.
func New(d Deps) *gin.Engine {
	if d.Hasher == nil {
		d.Hasher = services.BcryptHasher{}
	}

	userRepo := repository.NewUserRepository(d.DB)
	projectRepo := repository.NewProjectRepository(d.DB)
	catalogRepo := repository.NewCatalogRepository(d.DB)

	authService := services.NewAuthService(userRepo, validation.NewTagEmailValidator(), d.Hasher)
	projectService := services.NewProjectService(projectRepo, catalogRepo)
	documentService := services.NewDocumentService(projectRepo, d.Engine, d.Now)

	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService, documentService)
	catalogHandler := handlers.NewCatalogHandler(catalogRepo, d.Catalog)

	r := gin.New()
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(gin.Recovery())
	if len(d.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", constants.HeaderRequestID},
			ExposeHeaders:    []string{"Content-Disposition", constants.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.Use(middleware.NoCache())
	r.Use(sessions.Sessions(constants.SessionCookieName, d.SessionStore))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Lift Project API is running",
		})
	})

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			if d.LoginThrottle != nil {
				auth.POST("/login", middleware.LoginThrottle(d.LoginThrottle), authHandler.Login)
			} else {
				auth.POST("/login", authHandler.Login)
			}
			auth.POST("/logout", authHandler.Logout)
			auth.POST("/validate-field", authHandler.ValidateField)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		api.GET("/catalogs", middleware.RequireAuth(), catalogHandler.ListCatalogs)

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.POST("/validate-field", projectHandler.ValidateField)

			owned := projects.Group("/:id", middleware.RequireProjectAccess(projectRepo))
			{
				owned.GET("", projectHandler.GetProject)
				owned.PUT("", projectHandler.UpdateProject)
				owned.DELETE("", projectHandler.DeleteProject)
				owned.GET("/document", projectHandler.GetDocument)
			}
		}
	}

	return r
}
