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

// Patient fields whose changes are written to patient_history on update.
var trackedPatientFields = []string{"medical_record_no", "name", "department", "status", "bed_number"}

type CreatePatientRequest struct {
	MedicalRecordNo       string     `json:"medical_record_no" binding:"required"`
	PatientCategory       string     `json:"patient_category"`
	Name                  string     `json:"name" binding:"required"`
	Gender                string     `json:"gender" binding:"required"`
	Weight                *float64   `json:"weight"`
	Department            string     `json:"department" binding:"required"`
	Birthday              time.Time  `json:"birthday" binding:"required"`
	AdmissionTime         *time.Time `json:"admission_time"`
	BedNumber             *string    `json:"bed_number"`
	Status                string     `json:"status"`
	EmergencyContactName  *string    `json:"emergency_contact_name"`
	EmergencyContactPhone *string    `json:"emergency_contact_phone"`
	InsuranceNumber       *string    `json:"insurance_number"`
}

// UpdatePatientRequest carries only the fields the caller wants changed;
// nil means leave as-is.
type UpdatePatientRequest struct {
	MedicalRecordNo       *string    `json:"medical_record_no"`
	PatientCategory       *string    `json:"patient_category"`
	Name                  *string    `json:"name"`
	Gender                *string    `json:"gender"`
	Weight                *float64   `json:"weight"`
	Department            *string    `json:"department"`
	AdmissionTime         *time.Time `json:"admission_time"`
	DischargeTime         *time.Time `json:"discharge_time"`
	BedNumber             *string    `json:"bed_number"`
	Status                *string    `json:"status"`
	EmergencyContactName  *string    `json:"emergency_contact_name"`
	EmergencyContactPhone *string    `json:"emergency_contact_phone"`
	InsuranceNumber       *string    `json:"insurance_number"`
}

type PatientService struct {
	patients *repo.PatientRepo
	history  *repo.PatientHistoryRepo
	audits   *AuditService
}

func NewPatientService(patients *repo.PatientRepo, history *repo.PatientHistoryRepo, audits *AuditService) *PatientService {
	return &PatientService{patients: patients, history: history, audits: audits}
}

func validPatientStatus(status string) bool {
	switch status {
	case model.PatientStatusHospitalized, model.PatientStatusDischarged, model.PatientStatusTransferred:
		return true
	}
	return false
}

func validPatientCategory(category string) bool {
	switch category {
	case "NHI General", "NHI Injury", "Self-Pay":
		return true
	}
	return false
}

func (s *PatientService) Create(ctx context.Context, userID int64, req CreatePatientRequest, ip string) (*model.Patient, error) {
	if req.Status == "" {
		req.Status = model.PatientStatusHospitalized
	}
	if !validPatientStatus(req.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", appErr.ErrInvalid, req.Status)
	}
	if req.PatientCategory == "" {
		req.PatientCategory = "NHI General"
	}
	if !validPatientCategory(req.PatientCategory) {
		return nil, fmt.Errorf("%w: unknown patient category %q", appErr.ErrInvalid, req.PatientCategory)
	}
	if req.Gender != "M" && req.Gender != "F" {
		return nil, fmt.Errorf("%w: gender must be M or F", appErr.ErrInvalid)
	}
	if _, err := s.patients.GetByMedicalRecordNo(ctx, req.MedicalRecordNo); err == nil {
		return nil, fmt.Errorf("%w: medical record no already registered", appErr.ErrDuplicate)
	} else if !appErr.IsNotFound(err) {
		return nil, err
	}
	p := &model.Patient{
		MedicalRecordNo:       strings.TrimSpace(req.MedicalRecordNo),
		PatientCategory:       req.PatientCategory,
		Name:                  req.Name,
		Gender:                req.Gender,
		Weight:                req.Weight,
		Department:            req.Department,
		Birthday:              req.Birthday,
		AdmissionTime:         req.AdmissionTime,
		BedNumber:             req.BedNumber,
		Status:                req.Status,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
		InsuranceNumber:       req.InsuranceNumber,
		CreatedBy:             &userID,
	}
	id, err := s.patients.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.audits.Record(ctx, userID, "patient.create", "patients", id, nil, ip)
	return s.patients.GetByID(ctx, id)
}

func (s *PatientService) Get(ctx context.Context, id int64) (*model.Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *PatientService) List(ctx context.Context, filter repo.PatientFilter) ([]model.Patient, int64, error) {
	return s.patients.List(ctx, filter)
}

// Update applies the changed fields and appends one history row per tracked
// field whose value actually changed.
func (s *PatientService) Update(ctx context.Context, userID, id int64, req UpdatePatientRequest, ip string) (*model.Patient, error) {
	before, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	update := map[string]interface{}{}
	put := func(col string, v interface{}) { update[col] = v }
	if req.MedicalRecordNo != nil {
		put("medical_record_no", *req.MedicalRecordNo)
	}
	if req.PatientCategory != nil {
		if !validPatientCategory(*req.PatientCategory) {
			return nil, fmt.Errorf("%w: unknown patient category %q", appErr.ErrInvalid, *req.PatientCategory)
		}
		put("patient_category", *req.PatientCategory)
	}
	if req.Name != nil {
		put("name", *req.Name)
	}
	if req.Gender != nil {
		put("gender", *req.Gender)
	}
	if req.Weight != nil {
		put("weight", *req.Weight)
	}
	if req.Department != nil {
		put("department", *req.Department)
	}
	if req.AdmissionTime != nil {
		put("admission_time", *req.AdmissionTime)
	}
	if req.DischargeTime != nil {
		put("discharge_time", *req.DischargeTime)
	}
	if req.BedNumber != nil {
		put("bed_number", *req.BedNumber)
	}
	if req.Status != nil {
		if !validPatientStatus(*req.Status) {
			return nil, fmt.Errorf("%w: unknown status %q", appErr.ErrInvalid, *req.Status)
		}
		put("status", *req.Status)
	}
	if req.EmergencyContactName != nil {
		put("emergency_contact_name", *req.EmergencyContactName)
	}
	if req.EmergencyContactPhone != nil {
		put("emergency_contact_phone", *req.EmergencyContactPhone)
	}
	if req.InsuranceNumber != nil {
		put("insurance_number", *req.InsuranceNumber)
	}
	if len(update) == 0 {
		return before, nil
	}
	if err := s.patients.Update(ctx, id, update); err != nil {
		return nil, err
	}
	after, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entries := diffTrackedFields(before, after, userID); len(entries) > 0 {
		if err := s.history.Append(ctx, entries); err != nil {
			return nil, err
		}
	}
	s.audits.Record(ctx, userID, "patient.update", "patients", id, update, ip)
	return after, nil
}

func (s *PatientService) Delete(ctx context.Context, userID, id int64, ip string) error {
	if err := s.patients.Delete(ctx, id); err != nil {
		return err
	}
	s.audits.Record(ctx, userID, "patient.delete", "patients", id, nil, ip)
	return nil
}

func (s *PatientService) History(ctx context.Context, patientID int64) ([]model.PatientHistory, error) {
	if _, err := s.patients.GetByID(ctx, patientID); err != nil {
		return nil, err
	}
	return s.history.ListByPatient(ctx, patientID)
}

func diffTrackedFields(before, after *model.Patient, userID int64) []model.PatientHistory {
	pick := func(p *model.Patient, field string) string {
		switch field {
		case "medical_record_no":
			return p.MedicalRecordNo
		case "name":
			return p.Name
		case "department":
			return p.Department
		case "status":
			return p.Status
		case "bed_number":
			if p.BedNumber == nil {
				return ""
			}
			return *p.BedNumber
		}
		return ""
	}
	var entries []model.PatientHistory
	for _, field := range trackedPatientFields {
		oldVal, newVal := pick(before, field), pick(after, field)
		if oldVal == newVal {
			continue
		}
		o, n := oldVal, newVal
		entries = append(entries, model.PatientHistory{
			PatientID: after.ID,
			FieldName: field,
			OldValue:  &o,
			NewValue:  &n,
			ChangedBy: userID,
		})
	}
	return entries
}
