package match

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/shared/server/respond"
)

// Handler exposes the rule-based scoring endpoint. Scoring is pure
// computation; it needs no identity, store or provider.
type Handler struct{}

// NewHandler constructs a Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes attaches match routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/match/score", h.score)
}

type scoreRequest struct {
	Job     JobDetails  `json:"job"`
	Profile UserProfile `json:"profile"`
}

func (h *Handler) score(c *gin.Context) {
	var req scoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}
	if req.Job.Title == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "job title is required", nil)
		return
	}

	respond.OK(c, CalculateBaseScore(req.Job, req.Profile))
}
