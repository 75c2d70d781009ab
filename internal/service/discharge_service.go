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

type CreateDischargeNoteRequest struct {
	PatientID       int64             `json:"patient_id" binding:"required"`
	ChiefComplaint  *string           `json:"chief_complaint"`
	Diagnosis       []model.Diagnosis `json:"diagnosis"`
	TreatmentCourse *string           `json:"treatment_course"`
	DischargeDate   *time.Time        `json:"discharge_date"`
}

type UpdateDischargeNoteRequest struct {
	ChiefComplaint  *string           `json:"chief_complaint"`
	Diagnosis       []model.Diagnosis `json:"diagnosis"`
	TreatmentCourse *string           `json:"treatment_course"`
	DischargeDate   *time.Time        `json:"discharge_date"`
	Status          *string           `json:"status"`
}

type DischargeService struct {
	notes    *repo.DischargeRepo
	patients *repo.PatientRepo
	audits   *AuditService
}

func NewDischargeService(notes *repo.DischargeRepo, patients *repo.PatientRepo, audits *AuditService) *DischargeService {
	return &DischargeService{notes: notes, patients: patients, audits: audits}
}

func marshalDiagnosis(list []model.Diagnosis) (json.RawMessage, error) {
	if list == nil {
		list = []model.Diagnosis{}
	}
	for _, d := range list {
		if d.Diagnosis == "" {
			return nil, fmt.Errorf("%w: diagnosis text is required", appErr.ErrInvalid)
		}
	}
	return json.Marshal(list)
}

func (s *DischargeService) Create(ctx context.Context, userID int64, req CreateDischargeNoteRequest) (*model.DischargeNote, error) {
	if _, err := s.patients.GetByID(ctx, req.PatientID); err != nil {
		return nil, err
	}
	diagnosis, err := marshalDiagnosis(req.Diagnosis)
	if err != nil {
		return nil, err
	}
	note := &model.DischargeNote{
		PatientID:       req.PatientID,
		ChiefComplaint:  req.ChiefComplaint,
		Diagnosis:       diagnosis,
		TreatmentCourse: req.TreatmentCourse,
		DischargeDate:   req.DischargeDate,
		CreatedBy:       userID,
		Status:          model.DischargeStatusDraft,
	}
	id, err := s.notes.Create(ctx, note)
	if err != nil {
		return nil, err
	}
	return s.notes.GetByID(ctx, id)
}

func (s *DischargeService) Get(ctx context.Context, id int64) (*model.DischargeNote, error) {
	return s.notes.GetByID(ctx, id)
}

func (s *DischargeService) List(ctx context.Context, filter repo.DischargeFilter) ([]model.DischargeNote, int64, error) {
	return s.notes.List(ctx, filter)
}

func (s *DischargeService) Update(ctx context.Context, id int64, req UpdateDischargeNoteRequest) (*model.DischargeNote, error) {
	note, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note.Status == model.DischargeStatusApproved {
		return nil, fmt.Errorf("%w: approved note is read-only", appErr.ErrConflict)
	}
	update := map[string]interface{}{}
	if req.ChiefComplaint != nil {
		update["chief_complaint"] = *req.ChiefComplaint
	}
	if req.Diagnosis != nil {
		diagnosis, err := marshalDiagnosis(req.Diagnosis)
		if err != nil {
			return nil, err
		}
		update["diagnosis"] = []byte(diagnosis)
	}
	if req.TreatmentCourse != nil {
		update["treatment_course"] = *req.TreatmentCourse
	}
	if req.DischargeDate != nil {
		update["discharge_date"] = *req.DischargeDate
	}
	if req.Status != nil {
		switch *req.Status {
		case model.DischargeStatusDraft, model.DischargeStatusPendingApproval:
		default:
			return nil, fmt.Errorf("%w: status %q not settable here", appErr.ErrInvalid, *req.Status)
		}
		update["status"] = *req.Status
	}
	if len(update) > 0 {
		if err := s.notes.Update(ctx, id, update); err != nil {
			return nil, err
		}
	}
	return s.notes.GetByID(ctx, id)
}

// Approve moves a note to approved and stamps the approver. Admin only,
// enforced by the caller.
func (s *DischargeService) Approve(ctx context.Context, adminID, id int64, ip string) (*model.DischargeNote, error) {
	note, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note.Status == model.DischargeStatusApproved {
		return nil, fmt.Errorf("%w: already approved", appErr.ErrConflict)
	}
	update := map[string]interface{}{
		"status":      model.DischargeStatusApproved,
		"approved_by": adminID,
		"approved_at": time.Now(),
	}
	if err := s.notes.Update(ctx, id, update); err != nil {
		return nil, err
	}
	s.audits.Record(ctx, adminID, "discharge.approve", "discharge_notes", id, nil, ip)
	return s.notes.GetByID(ctx, id)
}

func (s *DischargeService) Delete(ctx context.Context, id int64) error {
	return s.notes.Delete(ctx, id)
}
