package model

import (
	"encoding/json"
	"time"
)

const (
	InferenceStatusPending   = "pending"
	InferenceStatusCompleted = "completed"
	InferenceStatusConfirmed = "confirmed"
	InferenceStatusRejected  = "rejected"
)

// AIInference is one human-reviewed generation: the source content, the raw
// model output, the nurse's confirmed version and the highlight terms the
// validator returned.
type AIInference struct {
	ID                int64           `db:"id" json:"id"`
	UserID            int64           `db:"user_id" json:"user_id"`
	PatientID         *int64          `db:"patient_id" json:"patient_id"`
	InferenceType     string          `db:"inference_type" json:"inference_type"`
	OriginalContent   string          `db:"original_content" json:"original_content"`
	AIGeneratedResult *string         `db:"ai_generated_result" json:"ai_generated_result"`
	NurseConfirmation *string         `db:"nurse_confirmation" json:"nurse_confirmation"`
	RelevantText      json.RawMessage `db:"relevant_text" json:"relevant_text"`
	ModelUsed         *string         `db:"model_used" json:"model_used"`
	Status            string          `db:"status" json:"status"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	ConfirmedAt       *time.Time      `db:"confirmed_at" json:"confirmed_at"`
}
