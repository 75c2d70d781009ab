package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/privnurse/privnurse/internal/model"
	appErr "github.com/privnurse/privnurse/internal/pkg/errors"
	"github.com/privnurse/privnurse/internal/repo"
)

// recordTypeAliases maps the legacy free-form record labels onto the six
// canonical types. Keys are matched case-insensitively.
var recordTypeAliases = map[string]string{
	"vital signs":               model.NursingTypeVitalSign,
	"vitalsigns":                model.NursingTypeVitalSign,
	"assessment":                model.NursingTypeObjective,
	"observation":               model.NursingTypeObjective,
	"patient education":         model.NursingTypeIntervention,
	"medication administration": model.NursingTypeIntervention,
	"procedure":                 model.NursingTypeIntervention,
	"treatment":                 model.NursingTypeIntervention,
	"care plan":                 model.NursingTypeIntervention,
	"discharge planning":        model.NursingTypeIntervention,
	"patient complaint":         model.NursingTypeSubjective,
	"patient response":          model.NursingTypeEvaluation,
	"shift report":              model.NursingTypeNarrativeNote,
	"progress note":             model.NursingTypeNarrativeNote,
	"general note":              model.NursingTypeNarrativeNote,
	"incident report":           model.NursingTypeNarrativeNote,
	"subjective":                model.NursingTypeSubjective,
	"objective":                 model.NursingTypeObjective,
	"intervention":              model.NursingTypeIntervention,
	"evaluation":                model.NursingTypeEvaluation,
	"narrativenote":             model.NursingTypeNarrativeNote,
	"vitalsign":                 model.NursingTypeVitalSign,
}

// NormalizeRecordType resolves a record-type label to its canonical form.
func NormalizeRecordType(label string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(label))
	if canonical, ok := recordTypeAliases[key]; ok {
		return canonical, nil
	}
	return "", fmt.Errorf("%w: unknown record type %q", appErr.ErrInvalid, label)
}

type CreateNursingNoteRequest struct {
	PatientID         int64      `json:"patient_id" binding:"required"`
	RecordTime        *time.Time `json:"record_time"`
	RecordType        string     `json:"record_type" binding:"required"`
	Content           string     `json:"content" binding:"required"`
	AudioFilePath     *string    `json:"audio_file_path"`
	TranscriptionText *string    `json:"transcription_text"`
	Shift             *string    `json:"shift"`
	Priority          string     `json:"priority"`
}

type UpdateNursingNoteRequest struct {
	RecordType        *string `json:"record_type"`
	Content           *string `json:"content"`
	AudioFilePath     *string `json:"audio_file_path"`
	TranscriptionText *string `json:"transcription_text"`
	Shift             *string `json:"shift"`
	Priority          *string `json:"priority"`
}

type NursingService struct {
	notes    *repo.NursingRepo
	patients *repo.PatientRepo
}

func NewNursingService(notes *repo.NursingRepo, patients *repo.PatientRepo) *NursingService {
	return &NursingService{notes: notes, patients: patients}
}

func validShift(shift string) bool {
	switch shift {
	case "day", "evening", "night":
		return true
	}
	return false
}

func validPriority(priority string) bool {
	switch priority {
	case "low", "medium", "high":
		return true
	}
	return false
}

func (s *NursingService) Create(ctx context.Context, userID int64, req CreateNursingNoteRequest) (*model.NursingNote, error) {
	if _, err := s.patients.GetByID(ctx, req.PatientID); err != nil {
		return nil, err
	}
	recordType, err := NormalizeRecordType(req.RecordType)
	if err != nil {
		return nil, err
	}
	if req.Shift != nil && !validShift(*req.Shift) {
		return nil, fmt.Errorf("%w: unknown shift %q", appErr.ErrInvalid, *req.Shift)
	}
	if req.Priority == "" {
		req.Priority = "medium"
	}
	if !validPriority(req.Priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", appErr.ErrInvalid, req.Priority)
	}
	recordTime := time.Now()
	if req.RecordTime != nil {
		recordTime = *req.RecordTime
	}
	note := &model.NursingNote{
		PatientID:         req.PatientID,
		RecordTime:        recordTime,
		RecordType:        recordType,
		Content:           req.Content,
		AudioFilePath:     req.AudioFilePath,
		TranscriptionText: req.TranscriptionText,
		CreatedBy:         userID,
		Shift:             req.Shift,
		Priority:          req.Priority,
	}
	id, err := s.notes.Create(ctx, note)
	if err != nil {
		return nil, err
	}
	return s.notes.GetByID(ctx, id)
}

func (s *NursingService) Get(ctx context.Context, id int64) (*model.NursingNote, error) {
	return s.notes.GetByID(ctx, id)
}

func (s *NursingService) List(ctx context.Context, filter repo.NursingFilter) ([]model.NursingNote, int64, error) {
	return s.notes.List(ctx, filter)
}

func (s *NursingService) Update(ctx context.Context, id int64, req UpdateNursingNoteRequest) (*model.NursingNote, error) {
	if _, err := s.notes.GetByID(ctx, id); err != nil {
		return nil, err
	}
	update := map[string]interface{}{}
	if req.RecordType != nil {
		recordType, err := NormalizeRecordType(*req.RecordType)
		if err != nil {
			return nil, err
		}
		update["record_type"] = recordType
	}
	if req.Content != nil {
		update["content"] = *req.Content
	}
	if req.AudioFilePath != nil {
		update["audio_file_path"] = *req.AudioFilePath
	}
	if req.TranscriptionText != nil {
		update["transcription_text"] = *req.TranscriptionText
	}
	if req.Shift != nil {
		if !validShift(*req.Shift) {
			return nil, fmt.Errorf("%w: unknown shift %q", appErr.ErrInvalid, *req.Shift)
		}
		update["shift"] = *req.Shift
	}
	if req.Priority != nil {
		if !validPriority(*req.Priority) {
			return nil, fmt.Errorf("%w: unknown priority %q", appErr.ErrInvalid, *req.Priority)
		}
		update["priority"] = *req.Priority
	}
	if len(update) > 0 {
		if err := s.notes.Update(ctx, id, update); err != nil {
			return nil, err
		}
	}
	return s.notes.GetByID(ctx, id)
}

func (s *NursingService) Delete(ctx context.Context, id int64) error {
	return s.notes.Delete(ctx, id)
}
