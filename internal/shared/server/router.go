package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/ai"
	"jobtrack-backend/internal/aiusage"
	"jobtrack-backend/internal/llm/anthropic"
	"jobtrack-backend/internal/match"
	"jobtrack-backend/internal/shared/config"
	"jobtrack-backend/internal/shared/server/middleware"
	"jobtrack-backend/internal/shared/server/respond"
	"jobtrack-backend/internal/shared/storage/db"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	// Dependencies
	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	var usageStore aiusage.Store
	if sqlDB != nil {
		usageStore = aiusage.NewPGStore(sqlDB)
	} else {
		usageStore = aiusage.NewMemoryStore()
	}

	aiSvc := ai.NewService(cfg, usageStore)
	if cfg.AnthropicAPIKey != "" {
		client, err := anthropic.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicBaseURL)
		if err != nil {
			log.Printf("anthropic client init failed: %v", err)
		} else {
			aiSvc.Provider = client
		}
	}

	aiHandler := ai.NewHandler(aiSvc)
	quotaHandler := aiusage.NewHandler(aiSvc.Limiter)
	matchHandler := match.NewHandler()

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true, "db": sqlDB != nil})
	})

	authed := api.Group("")
	authed.Use(middleware.Auth(cfg.Env))
	aiHandler.RegisterRoutes(authed)
	quotaHandler.RegisterRoutes(authed)
	matchHandler.RegisterRoutes(authed)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
