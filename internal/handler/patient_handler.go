package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/privnurse/privnurse/internal/pkg/errcode"
	"github.com/privnurse/privnurse/internal/pkg/response"
	"github.com/privnurse/privnurse/internal/repo"
	"github.com/privnurse/privnurse/internal/service"
)

type PatientHandler struct {
	patients *service.PatientService
}

func NewPatientHandler(patients *service.PatientService) *PatientHandler {
	return &PatientHandler{patients: patients}
}

func (h *PatientHandler) Create(c *gin.Context) {
	var req service.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	patient, err := h.patients.Create(c.Request.Context(), getUserID(c), req, c.ClientIP())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, patient)
}

func (h *PatientHandler) List(c *gin.Context) {
	page, limit := pageArgs(c)
	filter := repo.PatientFilter{
		Department: c.Query("department"),
		Status:     c.Query("status"),
		Page:       page,
		Limit:      limit,
	}
	patients, total, err := h.patients.List(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"items": patients, "total": total})
}

func (h *PatientHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	patient, err := h.patients.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, patient)
}

func (h *PatientHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	patient, err := h.patients.Update(c.Request.Context(), getUserID(c), id, req, c.ClientIP())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, patient)
}

func (h *PatientHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.patients.Delete(c.Request.Context(), getUserID(c), id, c.ClientIP()); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *PatientHandler) History(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	history, err := h.patients.History(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"patient_id": id, "history": history})
}
