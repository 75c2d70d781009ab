package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/privnurse/privnurse/internal/pkg/errcode"
	"github.com/privnurse/privnurse/internal/pkg/response"
	"github.com/privnurse/privnurse/internal/repo"
	"github.com/privnurse/privnurse/internal/service"
)

type ConsultationHandler struct {
	consultations *service.ConsultationService
}

func NewConsultationHandler(consultations *service.ConsultationService) *ConsultationHandler {
	return &ConsultationHandler{consultations: consultations}
}

func (h *ConsultationHandler) Create(c *gin.Context) {
	var req service.CreateConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	rec, err := h.consultations.Create(c.Request.Context(), getUserID(c), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, rec)
}

func (h *ConsultationHandler) List(c *gin.Context) {
	page, limit := pageArgs(c)
	filter := repo.ConsultationFilter{
		PatientID:  int64(queryInt(c, "patient_id", 0)),
		Department: c.Query("department"),
		Status:     c.Query("status"),
		Page:       page,
		Limit:      limit,
	}
	records, total, err := h.consultations.List(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"items": records, "total": total})
}

func (h *ConsultationHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rec, err := h.consultations.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, rec)
}

func (h *ConsultationHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.UpdateConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	rec, err := h.consultations.Update(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, rec)
}

func (h *ConsultationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.consultations.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
