package model

import (
	"encoding/json"
	"time"
)

const (
	ConsultationStatusDraft     = "draft"
	ConsultationStatusConfirmed = "confirmed"
	ConsultationStatusArchived  = "archived"
)

type ConsultationRecord struct {
	ID                 int64           `db:"id" json:"id"`
	PatientID          int64           `db:"patient_id" json:"patient_id"`
	DoctorName         *string         `db:"doctor_name" json:"doctor_name"`
	ConsultationDate   time.Time       `db:"consultation_date" json:"consultation_date"`
	Department         *string         `db:"department" json:"department"`
	ConsultationType   string          `db:"consultation_type" json:"consultation_type"`
	OriginalContent    string          `db:"original_content" json:"original_content"`
	AISummary          *string         `db:"ai_summary" json:"ai_summary"`
	NurseConfirmation  *string         `db:"nurse_confirmation" json:"nurse_confirmation"`
	RelevantHighlights json.RawMessage `db:"relevant_highlights" json:"relevant_highlights"`
	Status             string          `db:"status" json:"status"`
	CreatedBy          int64           `db:"created_by" json:"created_by"`
	ConfirmedBy        *int64          `db:"confirmed_by" json:"confirmed_by"`
	ConfirmedAt        *time.Time      `db:"confirmed_at" json:"confirmed_at"`
}
