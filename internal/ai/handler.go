package ai

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/aiusage"
	"jobtrack-backend/internal/extract"
	"jobtrack-backend/internal/match"
	"jobtrack-backend/internal/shared/server/middleware"
	"jobtrack-backend/internal/shared/server/respond"
)

const maxUploadBytes = 10 << 20

// Handler exposes the AI feature endpoints.
type Handler struct {
	Service *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Service: svc}
}

// RegisterRoutes attaches AI routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ai/resume/parse", h.parseResume)
	rg.POST("/ai/notes/summarize", h.summarizeNotes)
	rg.POST("/ai/followups", h.generateFollowUps)
	rg.POST("/match/analyze", h.analyzeMatch)
}

type parseResumeRequest struct {
	Text string `json:"text"`
}

func (h *Handler) parseResume(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing identity", nil)
		return
	}

	c.Set("aiOperation", string(aiusage.OpResumeParse))

	text, ok := h.resumeText(c)
	if !ok {
		return
	}

	parsed, err := h.Service.ParseResumeText(c.Request.Context(), text, userID)
	if err != nil {
		writeAIError(c, err)
		return
	}
	respond.OK(c, parsed)
}

// resumeText accepts either a JSON body with a text field or a multipart
// upload under the "file" field.
func (h *Handler) resumeText(c *gin.Context) (string, bool) {
	contentType := c.ContentType()
	if contentType != "multipart/form-data" {
		var req parseResumeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
			return "", false
		}
		if req.Text == "" {
			respond.Error(c, http.StatusBadRequest, "invalid_request", "text is required", nil)
			return "", false
		}
		return req.Text, true
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "file is required", nil)
		return "", false
	}
	if fileHeader.Size > maxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds 10MB", nil)
		return "", false
	}

	f, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "could not read file", nil)
		return "", false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil || len(data) > maxUploadBytes {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "could not read file", nil)
		return "", false
	}

	text, err := extract.TextFromBytes(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"), fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusUnprocessableEntity, "unsupported_file", err.Error(), nil)
		return "", false
	}
	return text, true
}

type summarizeNotesRequest struct {
	Application Application `json:"application"`
	Notes       []Note      `json:"notes"`
}

func (h *Handler) summarizeNotes(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing identity", nil)
		return
	}

	c.Set("aiOperation", string(aiusage.OpSummarizeNotes))

	var req summarizeNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}

	summary, err := h.Service.SummarizeApplicationNotes(c.Request.Context(), req.Notes, req.Application, userID)
	if err != nil {
		writeAIError(c, err)
		return
	}
	respond.OK(c, summary)
}

type followUpsRequest struct {
	Application Application `json:"application"`
}

func (h *Handler) generateFollowUps(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing identity", nil)
		return
	}

	c.Set("aiOperation", string(aiusage.OpGenerateFollowups))

	var req followUpsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}
	if req.Application.Company == "" || req.Application.Position == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "application company and position are required", nil)
		return
	}

	suggestions, err := h.Service.GenerateFollowUpSuggestions(c.Request.Context(), req.Application, userID)
	if err != nil {
		writeAIError(c, err)
		return
	}
	respond.OK(c, suggestions)
}

type analyzeMatchRequest struct {
	Job     match.JobDetails  `json:"job"`
	Profile match.UserProfile `json:"profile"`
}

// analyzeMatch always succeeds for valid input: the rule-based score is
// computed locally and the model adjustment degrades to a no-op on failure.
func (h *Handler) analyzeMatch(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing identity", nil)
		return
	}

	c.Set("aiOperation", string(aiusage.OpJobAnalysis))

	var req analyzeMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}
	if req.Job.Title == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "job title is required", nil)
		return
	}

	breakdown := match.CalculateBaseScore(req.Job, req.Profile)
	analysis := h.Service.AdjustScore(c.Request.Context(), breakdown, req.Job, req.Profile, userID)
	respond.OK(c, analysis)
}

// writeAIError maps orchestration errors onto the HTTP surface.
func writeAIError(c *gin.Context, err error) {
	var rateErr *aiusage.RateLimitError
	if errors.As(err, &rateErr) {
		c.Header("Retry-After", rateErr.ResetAt.UTC().Format(time.RFC3339))
		respond.Error(c, http.StatusTooManyRequests, "rate_limited", rateErr.Error(), gin.H{
			"operation": string(rateErr.Operation),
			"limit":     rateErr.Limit,
			"resetAt":   rateErr.ResetAt.UTC().Format(time.RFC3339),
		})
		return
	}

	var quotaErr *QuotaExceededError
	if errors.As(err, &quotaErr) {
		respond.Error(c, http.StatusServiceUnavailable, "provider_quota", quotaErr.Error(), nil)
		return
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		code := "ai_error"
		if apiErr.Status == http.StatusBadRequest {
			code = "invalid_request"
		}
		respond.Error(c, apiErr.Status, code, apiErr.Message, nil)
		return
	}

	respond.Error(c, http.StatusInternalServerError, "internal", "AI request failed", nil)
}
