package routes

import (
	"path/filepath"

	"contacts_backend/internal/config"
	"contacts_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every handler group under /api and, in local storage
// mode, serves the stored avatars as static files.
func RegisterRoutes(router *gin.Engine, appHandlers *handlers.AppHandlers, authRequired gin.HandlerFunc, cfg *config.Config) {
	api := router.Group("/api")
	{
		appHandlers.AuthHandler.RegisterRoutes(api, authRequired)
		appHandlers.UserHandler.RegisterRoutes(api, authRequired)
		appHandlers.ContactHandler.RegisterRoutes(api, authRequired)
	}

	if cfg.Storage.Type == "local" {
		router.Static("/avatars", filepath.Join(cfg.Storage.BasePath, "avatars"))
	}
}
