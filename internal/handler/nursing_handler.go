package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/privnurse/privnurse/internal/pkg/errcode"
	"github.com/privnurse/privnurse/internal/pkg/response"
	"github.com/privnurse/privnurse/internal/repo"
	"github.com/privnurse/privnurse/internal/service"
)

type NursingHandler struct {
	notes *service.NursingService
}

func NewNursingHandler(notes *service.NursingService) *NursingHandler {
	return &NursingHandler{notes: notes}
}

func (h *NursingHandler) Create(c *gin.Context) {
	var req service.CreateNursingNoteRequest
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

func (h *NursingHandler) List(c *gin.Context) {
	page, limit := pageArgs(c)
	filter := repo.NursingFilter{
		PatientID:  int64(queryInt(c, "patient_id", 0)),
		RecordType: c.Query("record_type"),
		Shift:      c.Query("shift"),
		Page:       page,
		Limit:      limit,
	}
	notes, total, err := h.notes.List(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"items": notes, "total": total})
}

func (h *NursingHandler) Get(c *gin.Context) {
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

func (h *NursingHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.UpdateNursingNoteRequest
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

func (h *NursingHandler) Delete(c *gin.Context) {
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
