package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/privnurse/privnurse/internal/pkg/errcode"
	"github.com/privnurse/privnurse/internal/pkg/response"
	"github.com/privnurse/privnurse/internal/repo"
	"github.com/privnurse/privnurse/internal/service"
)

type DischargeHandler struct {
	notes *service.DischargeService
}

func NewDischargeHandler(notes *service.DischargeService) *DischargeHandler {
	return &DischargeHandler{notes: notes}
}

func (h *DischargeHandler) Create(c *gin.Context) {
	var req service.CreateDischargeNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	note, err := h.notes.Create(c.Request.Context(), getUserID(c), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, note)
}

func (h *DischargeHandler) List(c *gin.Context) {
	page, limit := pageArgs(c)
	filter := repo.DischargeFilter{
		PatientID: int64(queryInt(c, "patient_id", 0)),
		Status:    c.Query("status"),
		Page:      page,
		Limit:     limit,
	}
	notes, total, err := h.notes.List(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"items": notes, "total": total})
}

func (h *DischargeHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	note, err := h.notes.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, note)
}

func (h *DischargeHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.UpdateDischargeNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	note, err := h.notes.Update(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, note)
}

func (h *DischargeHandler) Approve(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	note, err := h.notes.Approve(c.Request.Context(), getUserID(c), id, c.ClientIP())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, note)
}

func (h *DischargeHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.notes.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
