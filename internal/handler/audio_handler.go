package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/privnurse/privnurse/internal/pkg/errcode"
	"github.com/privnurse/privnurse/internal/pkg/response"
	"github.com/privnurse/privnurse/internal/service"
)

type AudioHandler struct {
	transcribe *service.TranscribeService
}

func NewAudioHandler(transcribe *service.TranscribeService) *AudioHandler {
	return &AudioHandler{transcribe: transcribe}
}

func (h *AudioHandler) Transcribe(c *gin.Context) {
	patientID, err := strconv.ParseInt(c.PostForm("patient_id"), 10, 64)
	if err != nil || patientID <= 0 {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "patient_id is required")
		return
	}
	header, err := c.FormFile("audio_file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalidAudioFile, "audio_file is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalidAudioFile, "cannot read audio file")
		return
	}
	defer file.Close()

	result, err := h.transcribe.Transcribe(c.Request.Context(), service.TranscribeInput{
		PatientID:  patientID,
		Filename:   header.Filename,
		Size:       header.Size,
		RecordType: c.PostForm("record_type"),
		Context:    c.PostForm("context"),
		File:       file,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

func (h *AudioHandler) TestConnection(c *gin.Context) {
	if err := h.transcribe.TestConnection(c.Request.Context()); err != nil {
		response.Error(c, http.StatusServiceUnavailable, errcode.ErrUpstreamFailed, "transcription service unreachable")
		return
	}
	response.Success(c, gin.H{"status": "connected"})
}
