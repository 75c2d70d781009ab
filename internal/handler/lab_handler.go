package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/privnurse/privnurse/internal/pkg/errcode"
	"github.com/privnurse/privnurse/internal/pkg/response"
	"github.com/privnurse/privnurse/internal/repo"
	"github.com/privnurse/privnurse/internal/service"
)

type LabHandler struct {
	reports *service.LabService
}

func NewLabHandler(reports *service.LabService) *LabHandler {
	return &LabHandler{reports: reports}
}

func (h *LabHandler) Create(c *gin.Context) {
	var req service.CreateLabReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	report, err := h.reports.Create(c.Request.Context(), getUserID(c), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, report)
}

func (h *LabHandler) List(c *gin.Context) {
	page, limit := pageArgs(c)
	filter := repo.LabFilter{
		PatientID: int64(queryInt(c, "patient_id", 0)),
		Flag:      c.Query("flag"),
		Page:      page,
		Limit:     limit,
	}
	reports, total, err := h.reports.List(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"items": reports, "total": total})
}

func (h *LabHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	report, err := h.reports.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, report)
}

func (h *LabHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.reports.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
