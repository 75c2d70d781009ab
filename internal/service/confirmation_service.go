package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/privnurse/privnurse/internal/model"
	appErr "github.com/privnurse/privnurse/internal/pkg/errors"
	"github.com/privnurse/privnurse/internal/repo"
)

// Defaults stamped onto consultation records created from a confirmation.
const (
	confirmationDoctorName = "AI-Assisted Consultation"
	confirmationDepartment = "General"
	confirmationType       = "initial"
)

type ConfirmationRequest struct {
	PatientID         *int64          `json:"patient_id"`
	InferenceType     string          `json:"inference_type"`
	OriginalContent   string          `json:"original_content" binding:"required"`
	AIGeneratedResult string          `json:"ai_generated_result" binding:"required"`
	NurseConfirmation string          `json:"nurse_confirmation" binding:"required"`
	RelevantText      json.RawMessage `json:"relevant_text"`
}

// ConfirmationService persists the human review of a generation: an
// AIInference row always, plus a confirmed consultation record when the
// submission is consultation-shaped.
type ConfirmationService struct {
	inferences    *repo.InferenceRepo
	consultations *repo.ConsultationRepo
	models        *ModelService
	audits        *AuditService
}

func NewConfirmationService(inferences *repo.InferenceRepo, consultations *repo.ConsultationRepo, models *ModelService, audits *AuditService) *ConfirmationService {
	return &ConfirmationService{
		inferences:    inferences,
		consultations: consultations,
		models:        models,
		audits:        audits,
	}
}

func (s *ConfirmationService) Submit(ctx context.Context, userID int64, req ConfirmationRequest, ip string) error {
	inferenceType := req.InferenceType
	if inferenceType == "" {
		inferenceType = model.ModelTypeConsultationSummary
	}

	// An untouched nurse confirmation means the model output was accepted
	// as-is; any edit downgrades the status.
	isModified := strings.TrimSpace(req.AIGeneratedResult) != strings.TrimSpace(req.NurseConfirmation)
	status := model.InferenceStatusConfirmed
	if isModified {
		status = model.InferenceStatusCompleted
	}

	relevant, err := wrapRelevantText(req.RelevantText)
	if err != nil {
		return fmt.Errorf("%w: relevant_text is not valid JSON", appErr.ErrInvalid)
	}

	var modelUsed *string
	if name, err := s.models.ActiveModelName(ctx, model.ModelTypeConsultationSummary); err == nil {
		modelUsed = &name
	}

	isConsultation := req.PatientID != nil && inferenceType == model.ModelTypeConsultationSummary
	if isConsultation {
		dup, err := s.consultations.FindDuplicate(ctx, map[string]interface{}{
			"patient_id":         *req.PatientID,
			"original_content":   req.OriginalContent,
			"ai_summary":         req.AIGeneratedResult,
			"nurse_confirmation": req.NurseConfirmation,
			"doctor_name":        confirmationDoctorName,
			"department":         confirmationDepartment,
			"consultation_type":  confirmationType,
		})
		if err != nil {
			return err
		}
		if dup {
			return fmt.Errorf("%w: this exact consultation already exists", appErr.ErrDuplicate)
		}
	}

	now := time.Now()
	ai := req.AIGeneratedResult
	nurse := req.NurseConfirmation
	inference := &model.AIInference{
		UserID:            userID,
		PatientID:         req.PatientID,
		InferenceType:     inferenceType,
		OriginalContent:   req.OriginalContent,
		AIGeneratedResult: &ai,
		NurseConfirmation: &nurse,
		RelevantText:      relevant,
		ModelUsed:         modelUsed,
		Status:            status,
		ConfirmedAt:       &now,
	}
	inferenceID, err := s.inferences.Create(ctx, inference)
	if err != nil {
		return err
	}

	if isConsultation {
		doctor := confirmationDoctorName
		department := confirmationDepartment
		rec := &model.ConsultationRecord{
			PatientID:          *req.PatientID,
			DoctorName:         &doctor,
			ConsultationDate:   now,
			Department:         &department,
			ConsultationType:   confirmationType,
			OriginalContent:    req.OriginalContent,
			AISummary:          &ai,
			NurseConfirmation:  &nurse,
			RelevantHighlights: relevant,
			Status:             model.ConsultationStatusConfirmed,
			CreatedBy:          userID,
			ConfirmedBy:        &userID,
			ConfirmedAt:        &now,
		}
		if _, err := s.consultations.Create(ctx, rec); err != nil {
			return err
		}
	}

	s.audits.Record(ctx, userID, "ai.confirm", "ai_inferences", inferenceID,
		map[string]interface{}{"status": status, "inference_type": inferenceType}, ip)
	return nil
}

func (s *ConfirmationService) ListByUser(ctx context.Context, userID int64, limit int) ([]model.AIInference, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.inferences.ListByUser(ctx, userID, limit)
}

// wrapRelevantText normalizes the submitted highlight payload into the
// stored {"relevant_highlights": ...} envelope.
func wrapRelevantText(raw json.RawMessage) (json.RawMessage, error) {
	if len(raw) == 0 {
		raw = json.RawMessage("null")
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("invalid json")
	}
	return json.Marshal(map[string]json.RawMessage{"relevant_highlights": raw})
}
