package model

import "time"

const (
	NursingTypeSubjective    = "Subjective"
	NursingTypeObjective     = "Objective"
	NursingTypeIntervention  = "Intervention"
	NursingTypeEvaluation    = "Evaluation"
	NursingTypeNarrativeNote = "NarrativeNote"
	NursingTypeVitalSign     = "VitalSign"
)

type NursingNote struct {
	ID                int64     `db:"id" json:"id"`
	PatientID         int64     `db:"patient_id" json:"patient_id"`
	RecordTime        time.Time `db:"record_time" json:"record_time"`
	RecordType        string    `db:"record_type" json:"record_type"`
	Content           string    `db:"content" json:"content"`
	AudioFilePath     *string   `db:"audio_file_path" json:"audio_file_path"`
	TranscriptionText *string   `db:"transcription_text" json:"transcription_text"`
	CreatedBy         int64     `db:"created_by" json:"created_by"`
	Shift             *string   `db:"shift" json:"shift"`
	Priority          string    `db:"priority" json:"priority"`
}
