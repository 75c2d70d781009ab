package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/privnurse/privnurse/internal/model"
	appErr "github.com/privnurse/privnurse/internal/pkg/errors"
	"github.com/privnurse/privnurse/internal/repo"
)

type CreateConsultationRequest struct {
	PatientID          int64           `json:"patient_id" binding:"required"`
	DoctorName         *string         `json:"doctor_name"`
	ConsultationDate   *time.Time      `json:"consultation_date"`
	Department         *string         `json:"department"`
	ConsultationType   string          `json:"consultation_type"`
	OriginalContent    string          `json:"original_content" binding:"required"`
	AISummary          *string         `json:"ai_summary"`
	NurseConfirmation  *string         `json:"nurse_confirmation"`
	RelevantHighlights json.RawMessage `json:"relevant_highlights"`
}

type UpdateConsultationRequest struct {
	DoctorName         *string         `json:"doctor_name"`
	Department         *string         `json:"department"`
	ConsultationType   *string         `json:"consultation_type"`
	OriginalContent    *string         `json:"original_content"`
	AISummary          *string         `json:"ai_summary"`
	NurseConfirmation  *string         `json:"nurse_confirmation"`
	RelevantHighlights json.RawMessage `json:"relevant_highlights"`
	Status             *string         `json:"status"`
}

type ConsultationService struct {
	consultations *repo.ConsultationRepo
	patients      *repo.PatientRepo
}

func NewConsultationService(consultations *repo.ConsultationRepo, patients *repo.PatientRepo) *ConsultationService {
	return &ConsultationService{consultations: consultations, patients: patients}
}

func validConsultationType(t string) bool {
	switch t {
	case "initial", "follow_up", "emergency", "specialist":
		return true
	}
	return false
}

func (s *ConsultationService) Create(ctx context.Context, userID int64, req CreateConsultationRequest) (*model.ConsultationRecord, error) {
	if _, err := s.patients.GetByID(ctx, req.PatientID); err != nil {
		return nil, err
	}
	if req.ConsultationType == "" {
		req.ConsultationType = "initial"
	}
	if !validConsultationType(req.ConsultationType) {
		return nil, fmt.Errorf("%w: unknown consultation type %q", appErr.ErrInvalid, req.ConsultationType)
	}
	date := time.Now()
	if req.ConsultationDate != nil {
		date = *req.ConsultationDate
	}
	rec := &model.ConsultationRecord{
		PatientID:          req.PatientID,
		DoctorName:         req.DoctorName,
		ConsultationDate:   date,
		Department:         req.Department,
		ConsultationType:   req.ConsultationType,
		OriginalContent:    req.OriginalContent,
		AISummary:          req.AISummary,
		NurseConfirmation:  req.NurseConfirmation,
		RelevantHighlights: req.RelevantHighlights,
		Status:             model.ConsultationStatusDraft,
		CreatedBy:          userID,
	}
	id, err := s.consultations.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	return s.consultations.GetByID(ctx, id)
}

func (s *ConsultationService) Get(ctx context.Context, id int64) (*model.ConsultationRecord, error) {
	return s.consultations.GetByID(ctx, id)
}

func (s *ConsultationService) List(ctx context.Context, filter repo.ConsultationFilter) ([]model.ConsultationRecord, int64, error) {
	return s.consultations.List(ctx, filter)
}

func (s *ConsultationService) Update(ctx context.Context, id int64, req UpdateConsultationRequest) (*model.ConsultationRecord, error) {
	if _, err := s.consultations.GetByID(ctx, id); err != nil {
		return nil, err
	}
	update := map[string]interface{}{}
	if req.DoctorName != nil {
		update["doctor_name"] = *req.DoctorName
	}
	if req.Department != nil {
		update["department"] = *req.Department
	}
	if req.ConsultationType != nil {
		if !validConsultationType(*req.ConsultationType) {
			return nil, fmt.Errorf("%w: unknown consultation type %q", appErr.ErrInvalid, *req.ConsultationType)
		}
		update["consultation_type"] = *req.ConsultationType
	}
	if req.OriginalContent != nil {
		update["original_content"] = *req.OriginalContent
	}
	if req.AISummary != nil {
		update["ai_summary"] = *req.AISummary
	}
	if req.NurseConfirmation != nil {
		update["nurse_confirmation"] = *req.NurseConfirmation
	}
	if len(req.RelevantHighlights) > 0 {
		update["relevant_highlights"] = []byte(req.RelevantHighlights)
	}
	if req.Status != nil {
		switch *req.Status {
		case model.ConsultationStatusDraft, model.ConsultationStatusConfirmed, model.ConsultationStatusArchived:
		default:
			return nil, fmt.Errorf("%w: unknown status %q", appErr.ErrInvalid, *req.Status)
		}
		update["status"] = *req.Status
	}
	if len(update) > 0 {
		if err := s.consultations.Update(ctx, id, update); err != nil {
			return nil, err
		}
	}
	return s.consultations.GetByID(ctx, id)
}

func (s *ConsultationService) Delete(ctx context.Context, id int64) error {
	return s.consultations.Delete(ctx, id)
}
