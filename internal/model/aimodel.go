package model

import "time"

// Model types recognized by the model registry.
const (
	ModelTypeConsultationSummary     = "consultation_summary"
	ModelTypeConsultationValidation  = "consultation_validation"
	ModelTypeDischargeNoteSummary    = "discharge_note_summary"
	ModelTypeDischargeNoteValidation = "discharge_note_validation"
	ModelTypeAudioTranscription      = "audio_transcription"
)

type AIModel struct {
	ID           int64     `db:"id" json:"id"`
	ModelName    string    `db:"model_name" json:"model_name"`
	ModelType    string    `db:"model_type" json:"model_type"`
	ModelVersion *string   `db:"model_version" json:"model_version"`
	Description  *string   `db:"description" json:"description"`
	EndpointURL  *string   `db:"endpoint_url" json:"endpoint_url"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
