package aiusage

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/shared/server/middleware"
	"jobtrack-backend/internal/shared/server/respond"
)

// Handler exposes quota endpoints.
type Handler struct {
	Limiter *RateLimiter
}

// NewHandler constructs a Handler.
func NewHandler(limiter *RateLimiter) *Handler {
	return &Handler{Limiter: limiter}
}

// RegisterRoutes attaches quota routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ai/quota", h.getQuota)
}

type quotaEntry struct {
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`
}

func (h *Handler) getQuota(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing identity", nil)
		return
	}

	quotas := make(map[string]quotaEntry, len(Operations))
	for _, op := range Operations {
		quotas[string(op)] = quotaEntry{
			Limit:     h.Limiter.Limit(op),
			Remaining: h.Limiter.RemainingQuota(c.Request.Context(), userID, op),
		}
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"windowSeconds": int(Window / time.Second),
		"operations":    quotas,
	})
}
