package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/privnurse/privnurse/internal/pkg/errcode"
	"github.com/privnurse/privnurse/internal/pkg/response"
	"github.com/privnurse/privnurse/internal/service"
)

type AIHandler struct {
	generation    *service.GenerationService
	models        *service.ModelService
	confirmations *service.ConfirmationService
}

func NewAIHandler(generation *service.GenerationService, models *service.ModelService, confirmations *service.ConfirmationService) *AIHandler {
	return &AIHandler{generation: generation, models: models, confirmations: confirmations}
}

type summaryRequest struct {
	Content string `json:"content" binding:"required"`
}

// GenSummary streams orchestrator events to the client as NDJSON, one event
// per line, flushed after every chunk.
func (h *AIHandler) GenSummary(c *gin.Context) {
	var req summaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "content is required")
		return
	}
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		response.Error(c, http.StatusInternalServerError, errcode.ErrInternal, "streaming unsupported")
		return
	}
	c.Writer.Header().Set("Content-Type", "application/x-ndjson")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.WriteHeader(http.StatusOK)

	encoder := json.NewEncoder(c.Writer)
	emit := func(ev service.GenerationEvent) error {
		if err := encoder.Encode(ev); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}
	// Headers are already out; stream errors surface as an error event, not
	// a status code.
	_ = h.generation.GenerateSummary(c.Request.Context(), req.Content, emit)
}

type validationRequest struct {
	Original string `json:"original" binding:"required"`
	Summary  string `json:"summary" binding:"required"`
}

func (h *AIHandler) GenValidation(c *gin.Context) {
	var req validationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "original and summary are required")
		return
	}
	relevant, err := h.generation.Validate(c.Request.Context(), req.Original, req.Summary)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"relevant_text": relevant})
}

func (h *AIHandler) SubmitConfirmation(c *gin.Context) {
	var req service.ConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	if err := h.confirmations.Submit(c.Request.Context(), getUserID(c), req, c.ClientIP()); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "confirmation submitted"})
}

func (h *AIHandler) ListInferences(c *gin.Context) {
	items, err := h.confirmations.ListByUser(c.Request.Context(), getUserID(c), queryInt(c, "limit", 50))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"items": items})
}

// Tags proxies the provider's model listing, mirroring the runner's
// /api/tags response shape.
func (h *AIHandler) Tags(c *gin.Context) {
	models, err := h.generation.ListModels(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"models": models})
}

func (h *AIHandler) GetActiveModels(c *gin.Context) {
	models, err := h.models.ActiveModels(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, models)
}

func (h *AIHandler) UpdateActiveModels(c *gin.Context) {
	var req service.ActiveModelsUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	if err := h.models.UpdateActiveModels(c.Request.Context(), req); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "active models updated"})
}
