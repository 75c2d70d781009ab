package model

import (
	"encoding/json"
	"time"
)

const (
	DischargeStatusDraft           = "draft"
	DischargeStatusPendingApproval = "pending_approval"
	DischargeStatusApproved        = "approved"
)

// Diagnosis is one entry of a discharge note's diagnosis list.
type Diagnosis struct {
	Category      string  `json:"category"`
	Diagnosis     string  `json:"diagnosis"`
	Code          *string `json:"code,omitempty"`
	DateDiagnosed *string `json:"date_diagnosed,omitempty"`
}

type DischargeNote struct {
	ID              int64           `db:"id" json:"id"`
	PatientID       int64           `db:"patient_id" json:"patient_id"`
	ChiefComplaint  *string         `db:"chief_complaint" json:"chief_complaint"`
	Diagnosis       json.RawMessage `db:"diagnosis" json:"diagnosis"`
	TreatmentCourse *string         `db:"treatment_course" json:"treatment_course"`
	DischargeDate   *time.Time      `db:"discharge_date" json:"discharge_date"`
	CreatedBy       int64           `db:"created_by" json:"created_by"`
	ApprovedBy      *int64          `db:"approved_by" json:"approved_by"`
	ApprovedAt      *time.Time      `db:"approved_at" json:"approved_at"`
	Status          string          `db:"status" json:"status"`
}
